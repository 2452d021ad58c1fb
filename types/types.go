package types

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/list"
)

// Category represents the listing channel of the catalog
type Category int

const (
	Normal Category = iota
	Uncensored
)

// String returns the value used for the type query parameter
func (c Category) String() string {
	switch c {
	case Normal:
		return "normal"
	case Uncensored:
		return "uncensored"
	default:
		return "unknown"
	}
}

// Label returns the tab label shown in the UI
func (c Category) Label() string {
	switch c {
	case Uncensored:
		return "Uncensored"
	default:
		return "Latest"
	}
}

// ParseCategory maps a query value back to a Category.
func ParseCategory(raw string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "normal":
		return Normal, true
	case "uncensored":
		return Uncensored, true
	default:
		return Normal, false
	}
}

// Availability is a tri-state flag: the backend may not populate it.
type Availability int

const (
	Unknown Availability = iota
	Available
	Missing
)

// AvailabilityOf converts an optional wire flag.
func AvailabilityOf(flag *bool) Availability {
	switch {
	case flag == nil:
		return Unknown
	case *flag:
		return Available
	default:
		return Missing
	}
}

func (a Availability) String() string {
	switch a {
	case Available:
		return "yes"
	case Missing:
		return "no"
	default:
		return "unknown"
	}
}

// Movie represents a catalog entry as returned by list and search
type Movie struct {
	id        string
	date      string
	title     string
	imageURL  string
	tags      []string
	hasMagnet Availability
}

// NewMovie creates a new Movie with the given fields
func NewMovie(id, date, title, imageURL string, tags []string, hasMagnet Availability) Movie {
	return Movie{
		id:        id,
		date:      date,
		title:     title,
		imageURL:  imageURL,
		tags:      tags,
		hasMagnet: hasMagnet,
	}
}

// Getters for Movie fields
func (m Movie) ID() string              { return m.id }
func (m Movie) Date() string            { return m.date }
func (m Movie) Name() string            { return m.title }
func (m Movie) ImageURL() string        { return m.imageURL }
func (m Movie) Tags() []string          { return m.tags }
func (m Movie) HasMagnet() Availability { return m.hasMagnet }

// list.Item interface implementation
func (m Movie) Title() string       { return m.title }
func (m Movie) Description() string { return m.id + "  " + m.date }
func (m Movie) FilterValue() string { return m.id + " " + m.title }

// Compile-time check that Movie implements list.Item
var _ list.Item = Movie{}

// CastMember is one performer credited on a detail record
type CastMember struct {
	name       string
	imageURL   string
	externalID string
}

func NewCastMember(name, imageURL, externalID string) CastMember {
	return CastMember{name: name, imageURL: imageURL, externalID: externalID}
}

func (c CastMember) Name() string       { return c.name }
func (c CastMember) ImageURL() string   { return c.imageURL }
func (c CastMember) ExternalID() string { return c.externalID }

// MovieDetail extends Movie with the detail endpoint data.
// gid and uc are only usable together: they unlock the magnet endpoint.
type MovieDetail struct {
	movie       Movie
	gid         string
	uc          string
	director    string
	studio      string
	label       string
	cast        []CastMember
	screenshots []string
	genres      []string
}

// NewMovieDetail creates a new MovieDetail
func NewMovieDetail(movie Movie, gid, uc, director, studio, label string, cast []CastMember, screenshots, genres []string) MovieDetail {
	return MovieDetail{
		movie:       movie,
		gid:         gid,
		uc:          uc,
		director:    director,
		studio:      studio,
		label:       label,
		cast:        cast,
		screenshots: screenshots,
		genres:      genres,
	}
}

// Getters for MovieDetail fields
func (d MovieDetail) Movie() Movie          { return d.movie }
func (d MovieDetail) GID() string           { return d.gid }
func (d MovieDetail) UC() string            { return d.uc }
func (d MovieDetail) Director() string      { return d.director }
func (d MovieDetail) Studio() string        { return d.studio }
func (d MovieDetail) Label() string         { return d.label }
func (d MovieDetail) Cast() []CastMember    { return d.cast }
func (d MovieDetail) Screenshots() []string { return d.screenshots }
func (d MovieDetail) Genres() []string      { return d.genres }

// HasMagnetKeys reports whether both identifiers needed by the magnet
// endpoint are present.
func (d MovieDetail) HasMagnetKeys() bool {
	return strings.TrimSpace(d.gid) != "" && strings.TrimSpace(d.uc) != ""
}

// Magnet is a downloadable resource attached to one detail record
type Magnet struct {
	id   string
	link string
	name string
	size string
	date string
}

func NewMagnet(id, link, name, size, date string) Magnet {
	return Magnet{id: id, link: link, name: name, size: size, date: date}
}

func (m Magnet) ID() string   { return m.id }
func (m Magnet) Link() string { return m.link }
func (m Magnet) Name() string { return m.name }
func (m Magnet) Size() string { return m.size }
func (m Magnet) Date() string { return m.date }

// PageEnvelope is the normalized pagination contract for list and search.
// HasNextPage=false is terminal for the browsing session.
type PageEnvelope struct {
	Records     []Movie
	HasNextPage bool
	NextPage    int // 0 when unknown
}

// MovieSource is the core abstraction for data access.
// Sync methods only, no bubbletea dependency.
type MovieSource interface {
	FetchPage(ctx context.Context, page int, mode Mode) (PageEnvelope, error)
	FetchDetail(ctx context.Context, id string) (MovieDetail, error)
	FetchMagnets(ctx context.Context, id, gid, uc string) ([]Magnet, error)
}
