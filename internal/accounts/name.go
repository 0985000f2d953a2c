package accounts

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeName cleans an extracted account label: leading punctuation and
// bullets are dropped, runs of whitespace collapse to one space, and the
// result is upper-cased with Turkish rules (i -> İ, ı -> I).
func NormalizeName(s string) string {
	s = strings.TrimLeftFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r)
	})
	s = strings.Join(strings.Fields(s), " ")
	return cases.Upper(language.Turkish).String(s)
}

// FoldName prepares a label for loose comparison: normalized, then
// lower-cased with Turkish rules.
func FoldName(s string) string {
	return cases.Lower(language.Turkish).String(NormalizeName(s))
}
