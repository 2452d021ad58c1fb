package ui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/qyinm/bustui/api"
	"github.com/qyinm/bustui/browse"
	"github.com/qyinm/bustui/types"
)

// renderDetail builds the scrollable body of the detail view. Fields the
// detail record does not carry fall back to the list record or are left out.
func renderDetail(d *browse.Detail, magnetCursor, width int) string {
	var b strings.Builder

	b.WriteString(DetailTitleStyle.Width(width).Render(d.Title()))
	b.WriteString("\n")
	sub := d.ID()
	if date := d.Date(); date != "" {
		sub += " • " + date
	}
	b.WriteString(DetailSubtitleStyle.Render(sub))
	b.WriteString("\n")

	switch d.State() {
	case browse.DetailLoading:
		b.WriteString(LoadingStyle.Render("Loading detail..."))
		b.WriteString("\n")
	case browse.DetailFailed:
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("Detail unavailable: %v", d.Err())))
		b.WriteString("\n")
	}

	if detail, ok := d.Detail(); ok {
		writeField(&b, "Director", detail.Director())
		writeField(&b, "Studio", detail.Studio())
		writeField(&b, "Label", detail.Label())
		if genres := detail.Genres(); len(genres) > 0 {
			writeField(&b, "Genres", strings.Join(genres, " • "))
		}
		if cast := detail.Cast(); len(cast) > 0 {
			names := make([]string, 0, len(cast))
			for _, c := range cast {
				names = append(names, c.Name())
			}
			writeField(&b, "Cast", strings.Join(names, ", "))
		}
	}

	covers := d.Covers()
	b.WriteString(DetailSectionStyle.Render("Cover"))
	b.WriteString("\n")
	if len(covers) == 0 {
		b.WriteString(MovieMetaStyle.Render("  no image"))
	} else {
		label := fmt.Sprintf("  [%d/%d] ", d.CoverIndex()+1, len(covers))
		b.WriteString(MovieMetaStyle.Render(label))
		b.WriteString(runewidth.Truncate(api.ProxyImageURL(d.Cover(), 0), max(width-len(label), 0), "…"))
	}
	b.WriteString("\n")

	b.WriteString(DetailSectionStyle.Render("Magnets"))
	b.WriteString("\n")
	b.WriteString(renderMagnets(d, magnetCursor, width))

	if links := api.WatchLinks(d.ID()); len(links) > 0 {
		b.WriteString(DetailSectionStyle.Render("Watch"))
		b.WriteString("\n")
		for _, l := range links {
			b.WriteString("  " + DetailLabelStyle.Render(l.Site) + " " + l.URL + "\n")
		}
	}

	return b.String()
}

func renderMagnets(d *browse.Detail, cursor, width int) string {
	if d.DetailLoading() {
		return MovieMetaStyle.Render("  waiting for detail") + "\n"
	}
	if d.ResourcesLoading() {
		return LoadingStyle.Render("  Loading magnets...") + "\n"
	}
	if err := d.MagnetErr(); err != nil {
		return ErrorStyle.Render(fmt.Sprintf("  Magnets unavailable: %v", err)) + "\n"
	}
	magnets := d.Magnets()
	if len(magnets) == 0 {
		if detail, ok := d.Detail(); ok && !detail.HasMagnetKeys() {
			return MovieMetaStyle.Render("  no magnet lookup for this title") + "\n"
		}
		return MovieMetaStyle.Render("  none") + "\n"
	}

	var b strings.Builder
	for i, m := range magnets {
		line := magnetLine(m, width-4)
		if i == cursor {
			b.WriteString(SelectedMagnetStyle.Render(line))
		} else {
			b.WriteString(MagnetStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func magnetLine(m types.Magnet, width int) string {
	meta := strings.TrimSpace(m.Size() + "  " + m.Date())
	name := m.Name()
	if name == "" {
		name = m.Link()
	}
	avail := width - runewidth.StringWidth(meta) - 2
	if avail < 0 {
		avail = 0
	}
	return fit(name, avail) + "  " + MovieMetaStyle.Render(meta)
}

func writeField(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	b.WriteString(DetailLabelStyle.Render(label + ": "))
	b.WriteString(value)
	b.WriteString("\n")
}
