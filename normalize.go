package folio

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize case-folds s and, for locales that fold diacritics, strips
// combining marks so that accented and unaccented forms compare equal.
// The same function must be applied to indexed text and to queries.
func Normalize(l Locale, s string) string {
	// Casers and transformers keep state, so each call builds its own.
	s = cases.Fold().String(s)
	if l.FoldsDiacritics() {
		s = foldDiacritics(s)
	}
	return s
}

func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Tokenize normalizes s and splits it into tokens on every rune that is
// neither a letter nor a digit.
func Tokenize(l Locale, s string) []string {
	return strings.FieldsFunc(Normalize(l, s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// NormalizePhrase normalizes s and collapses all whitespace to single spaces.
func NormalizePhrase(l Locale, s string) string {
	return strings.Join(strings.Fields(Normalize(l, s)), " ")
}
