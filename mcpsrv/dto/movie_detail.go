package dto

type MovieDetail struct {
	Movie
	GID         string       `json:"gid,omitempty"`
	UC          string       `json:"uc,omitempty"`
	Director    string       `json:"director,omitempty"`
	Studio      string       `json:"studio,omitempty"`
	Label       string       `json:"label,omitempty"`
	Cast        []CastMember `json:"cast"`
	Screenshots []string     `json:"screenshots"`
	Genres      []string     `json:"genres"`
	WatchLinks  []WatchLink  `json:"watch_links"`
}

type CastMember struct {
	Name       string `json:"name"`
	ImageURL   string `json:"image_url,omitempty"`
	ExternalID string `json:"external_id,omitempty"`
}

type WatchLink struct {
	Site string `json:"site"`
	URL  string `json:"url"`
}

type Magnet struct {
	ID        string `json:"id"`
	Link      string `json:"link"`
	Name      string `json:"name"`
	Size      string `json:"size"`
	SizeBytes uint64 `json:"size_bytes,omitempty"`
	Date      string `json:"date"`
}
