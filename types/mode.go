package types

import "fmt"

// ModeKind distinguishes category listing from keyword search
type ModeKind int

const (
	Listing ModeKind = iota
	Search
)

func (k ModeKind) String() string {
	if k == Search {
		return "search"
	}
	return "listing"
}

// Mode is what a browsing session shows: a category listing or the results
// of one search query. The zero value lists the Normal category.
type Mode struct {
	kind     ModeKind
	category Category
	query    string
}

// ListingMode returns a mode listing the given category
func ListingMode(c Category) Mode {
	return Mode{kind: Listing, category: c}
}

// SearchMode returns a mode showing results for query
func SearchMode(query string) Mode {
	return Mode{kind: Search, query: query}
}

func (m Mode) Kind() ModeKind     { return m.kind }
func (m Mode) Category() Category { return m.category }
func (m Mode) Query() string      { return m.query }
func (m Mode) IsSearch() bool     { return m.kind == Search }

// CategoryOrQuery is the category value for listings and the keyword for searches.
func (m Mode) CategoryOrQuery() string {
	if m.kind == Search {
		return m.query
	}
	return m.category.String()
}

func (m Mode) String() string {
	if m.kind == Search {
		return fmt.Sprintf("search(%q)", m.query)
	}
	return "listing(" + m.category.String() + ")"
}
