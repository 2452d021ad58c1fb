package api

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeKeyword folds full-width input (common with CJK IMEs, e.g.
// "ＡＢＣ－１２３") to its compatibility form and trims it. Chinese text is
// left untouched.
func NormalizeKeyword(raw string) string {
	s := norm.NFKC.String(raw)
	return strings.Join(strings.Fields(s), " ")
}
