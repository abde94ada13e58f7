package main

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts text into a lowercase ASCII identifier safe for URLs and
// filenames: diacritics are folded away ("Šplhání" becomes "splhani"), runs
// of anything else collapse to single hyphens.
func Slugify(text string) string {
	// Decompose and drop combining marks. The transformer carries state, so
	// build it per call.
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, text)
	if err != nil {
		folded = text
	}
	s := strings.ToLower(folded)
	s = nonAlnumRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
