// Package namenorm canonicalizes venue names for comparison. Normalization
// is deterministic and idempotent; it is the shared front-end of the
// duplicate matcher and must never consult external state.
package namenorm

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	parenthetical  = regexp.MustCompile(`\([^)]*\)`)
	trailingAt     = regexp.MustCompile(`\s+@\s+.*$`)
	nonWord        = regexp.MustCompile(`[^\w\s']+`)
	whitespaceRuns = regexp.MustCompile(`\s+`)

	quoteFolder = strings.NewReplacer(
		"‘", "'", // left single quote
		"’", "'", // right single quote
		"‛", "'",
		"`", "'",
		"“", " ", // double quotes carry no name content
		"”", " ",
	)

	// stripDiacritics decomposes and drops combining marks so "café" and
	// "cafe" compare equal.
	stripDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// suffixVocabulary lists mall/location and generic business words stripped
// from the end of a normalized name when extracting the core name.
var suffixVocabulary = map[string]bool{
	"mall":       true,
	"square":     true,
	"centre":     true,
	"center":     true,
	"plaza":      true,
	"city":       true,
	"point":      true,
	"junction":   true,
	"outlet":     true,
	"restaurant": true,
	"express":    true,
	"branch":     true,
	"singapore":  true,
	"sg":         true,
}

// minCommaPrefix is the shortest prefix that can stand alone as a name when
// dropping trailing comma clauses. Names like "Eat, Drink & Be Merry" use
// the comma as part of the name, not to introduce a unit or floor clause,
// so a shorter prefix keeps the full name and only the commas are stripped.
const minCommaPrefix = 4

// Normalize canonicalizes a venue name: lowercase with quote and diacritic
// folding, parentheticals removed (they are location notes, not name
// content), trailing "@ location" and comma-delimited clauses dropped, and
// everything outside word characters, spaces and apostrophes stripped.
func Normalize(name string) string {
	s := strings.ToLower(name)
	s = quoteFolder.Replace(s)
	if folded, _, err := transform.String(stripDiacritics, s); err == nil {
		s = folded
	}
	s = parenthetical.ReplaceAllString(s, " ")
	s = trailingAt.ReplaceAllString(s, "")
	if i := strings.Index(s, ","); i >= 0 {
		if prefix := strings.TrimSpace(s[:i]); utf8.RuneCountInString(prefix) >= minCommaPrefix {
			s = prefix
		}
	}
	s = nonWord.ReplaceAllString(s, " ")
	s = whitespaceRuns.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// ExtractCoreName normalizes the name and strips suffix-vocabulary words
// from the end, so "Restaurant X" compares against "Restaurant X Some Mall".
// Returns "" when the remaining core is shorter than minLen runes: short
// cores collapse generic names into false matches.
func ExtractCoreName(name string, minLen int) string {
	words := strings.Fields(Normalize(name))
	for len(words) > 1 && suffixVocabulary[words[len(words)-1]] {
		words = words[:len(words)-1]
	}
	core := strings.Join(words, " ")
	if utf8.RuneCountInString(core) < minLen {
		return ""
	}
	return core
}
