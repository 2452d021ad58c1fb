package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/qyinm/bustui/types"
)

// MovieDelegate is a custom list delegate for rendering Movie items
type MovieDelegate struct{}

// Height returns the height of a list item (2 lines)
func (d MovieDelegate) Height() int {
	return 2
}

// Spacing returns the spacing between list items
func (d MovieDelegate) Spacing() int {
	return 0
}

// Update handles updates for the delegate (no-op for movies)
func (d MovieDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd {
	return nil
}

// Render renders a single movie item
func (d MovieDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	movie, ok := item.(types.Movie)
	if !ok {
		return
	}

	isSelected := index == m.Index()

	// Line 1: ID + Title + magnet flag
	// Format: "ABC-123  Title of the movie                 ● magnet"
	idStr := runewidth.FillRight(movie.ID(), 12)
	flag, flagStyle := magnetFlag(movie.HasMagnet())
	flagWidth := runewidth.StringWidth(flag) + 1
	availableForName := m.Width() - runewidth.StringWidth(idStr) - 1 - flagWidth
	if availableForName < 0 {
		availableForName = 0
	}
	nameStr := fit(movie.Name(), availableForName)

	var line1 string
	if isSelected {
		line1 = MovieIDSelectedStyle.Render(idStr) + " " + MovieTitleSelectedStyle.Render(nameStr)
	} else {
		line1 = MovieIDStyle.Render(idStr) + " " + MovieTitleStyle.Render(nameStr)
	}
	if flag != "" {
		line1 += " " + flagStyle.Render(flag)
	}

	// Line 2: date and tags (indented, dimmed)
	meta := movie.Date()
	if tags := movie.Tags(); len(tags) > 0 {
		if meta != "" {
			meta += " • "
		}
		meta += strings.Join(tags, " ")
	}
	indent := "    "
	metaAvailable := m.Width() - len(indent)
	if metaAvailable < 0 {
		metaAvailable = 0
	}
	line2 := indent + MovieMetaStyle.Render(runewidth.Truncate(meta, metaAvailable, "…"))

	fmt.Fprint(w, line1+"\n"+line2)
}

// fit truncates s to width display cells and pads short strings so the
// trailing flag column lines up.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) > width {
		return runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}

func magnetFlag(a types.Availability) (string, lipgloss.Style) {
	switch a {
	case types.Available:
		return "● magnet", MagnetFlagStyle
	case types.Missing:
		return "○ none", MagnetMissingStyle
	default:
		return "", MovieMetaStyle
	}
}
