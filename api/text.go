package api

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// cleanText collapses whitespace and, when s carries markup (search
// highlight tags, HTML entities), reduces it to its text content.
func cleanText(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if strings.ContainsAny(s, "<&") {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
		if err == nil {
			s = doc.Text()
		}
	}
	return strings.Join(strings.Fields(s), " ")
}
