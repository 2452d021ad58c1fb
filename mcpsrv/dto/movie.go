package dto

type Movie struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Date          string   `json:"date"`
	ImageURL      string   `json:"image_url"`
	CoverProxyURL string   `json:"cover_proxy_url"`
	Tags          []string `json:"tags"`
	HasMagnet     string   `json:"has_magnet"`
}
