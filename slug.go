package folio

import (
	"strings"
	"unicode"
)

// Slugify creates a URL-safe slug from a title.
// Converts to lowercase, removes diacritics, and joins runs of letters and
// digits with single hyphens.
func Slugify(title string) string {
	var sb strings.Builder
	prevHyphen := false

	for _, r := range foldDiacritics(strings.ToLower(title)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			prevHyphen = false
		} else if !prevHyphen && sb.Len() > 0 {
			sb.WriteRune('-')
			prevHyphen = true
		}
	}

	return strings.TrimSuffix(sb.String(), "-")
}

// Excerpt collapses whitespace in text and truncates it to max runes,
// appending "..." when truncated.
func Excerpt(text string, max int) string {
	cleaned := strings.Join(strings.Fields(text), " ")
	if max <= 0 {
		return cleaned
	}
	r := []rune(cleaned)
	if len(r) <= max {
		return cleaned
	}
	return strings.TrimRightFunc(string(r[:max]), unicode.IsSpace) + "..."
}
