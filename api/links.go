package api

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	imageProxyBase = "https://wsrv.nl/"

	// PlaceholderImage stands in for records without a cover.
	PlaceholderImage = "https://picsum.photos/300/400?blur=2"

	DefaultImageWidth = 400
)

// ProxyImageURL rewrites an upstream image URL to go through the image
// proxy, which strips the hotlink protection of the origin. An empty URL
// maps to PlaceholderImage; width <= 0 means DefaultImageWidth.
func ProxyImageURL(raw string, width int) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return PlaceholderImage
	}
	if width <= 0 {
		width = DefaultImageWidth
	}
	// encodeURIComponent semantics: spaces as %20, not '+'
	enc := strings.ReplaceAll(url.QueryEscape(raw), "+", "%20")
	return imageProxyBase + "?url=" + enc + "&w=" + strconv.Itoa(width) + "&q=80&output=webp&n=-1"
}

// WatchLinks returns the external search pages for a movie id, keyed by
// site name in display order.
func WatchLinks(id string) []WatchLink {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}
	esc := url.PathEscape(id)
	return []WatchLink{
		{Site: "missav", URL: "https://missav.ai/search/" + esc},
		{Site: "jable", URL: "https://jable.tv/search/" + esc + "/"},
	}
}

// WatchLink is an external page that may carry the movie.
type WatchLink struct {
	Site string
	URL  string
}
