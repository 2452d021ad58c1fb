package dto

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/qyinm/bustui/api"
	"github.com/qyinm/bustui/types"
)

func FromMovie(m types.Movie) Movie {
	return Movie{
		ID:            m.ID(),
		Title:         m.Name(),
		Date:          m.Date(),
		ImageURL:      m.ImageURL(),
		CoverProxyURL: api.ProxyImageURL(m.ImageURL(), 0),
		Tags:          append([]string{}, m.Tags()...),
		HasMagnet:     m.HasMagnet().String(),
	}
}

func FromMovies(movies []types.Movie) []Movie {
	out := make([]Movie, 0, len(movies))
	for _, m := range movies {
		out = append(out, FromMovie(m))
	}
	return out
}

func FromMovieDetail(d types.MovieDetail) MovieDetail {
	cast := make([]CastMember, 0, len(d.Cast()))
	for _, c := range d.Cast() {
		cast = append(cast, CastMember{Name: c.Name(), ImageURL: c.ImageURL(), ExternalID: c.ExternalID()})
	}
	links := make([]WatchLink, 0, 2)
	for _, l := range api.WatchLinks(d.Movie().ID()) {
		links = append(links, WatchLink{Site: l.Site, URL: l.URL})
	}

	return MovieDetail{
		Movie:       FromMovie(d.Movie()),
		GID:         d.GID(),
		UC:          d.UC(),
		Director:    d.Director(),
		Studio:      d.Studio(),
		Label:       d.Label(),
		Cast:        cast,
		Screenshots: append([]string{}, d.Screenshots()...),
		Genres:      append([]string{}, d.Genres()...),
		WatchLinks:  links,
	}
}

func FromMagnet(m types.Magnet) Magnet {
	return Magnet{
		ID:        m.ID(),
		Link:      m.Link(),
		Name:      m.Name(),
		Size:      m.Size(),
		SizeBytes: parseSize(m.Size()),
		Date:      m.Date(),
	}
}

func FromMagnets(magnets []types.Magnet) []Magnet {
	out := make([]Magnet, 0, len(magnets))
	for _, m := range magnets {
		out = append(out, FromMagnet(m))
	}
	return out
}

// parseSize reads sizes such as "4.5GB" or "700 MiB"; 0 when unparseable.
func parseSize(raw string) uint64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0
	}
	return n
}
