package folio

import "strings"

// Locale identifies one of the site's content languages.
type Locale string

// Supported locales.
const (
	LocaleEN Locale = "en"
	LocaleES Locale = "es"
)

// DefaultLocale is served without a path prefix.
const DefaultLocale = LocaleEN

// Locales lists every supported locale in a stable order.
var Locales = []Locale{LocaleEN, LocaleES}

// ParseLocale returns the Locale for s.
// Returns EINVALID if s is not a supported locale.
func ParseLocale(s string) (Locale, error) {
	l := Locale(strings.ToLower(strings.TrimSpace(s)))
	if !l.Valid() {
		return "", Errorf(EINVALID, "unsupported locale %q", s)
	}
	return l, nil
}

// Valid reports whether l is a supported locale.
func (l Locale) Valid() bool {
	for _, v := range Locales {
		if l == v {
			return true
		}
	}
	return false
}

// FoldsDiacritics reports whether text in this locale is matched
// diacritic-insensitively.
func (l Locale) FoldsDiacritics() bool {
	return l == LocaleES
}

// Root returns the content root of the locale, used when a document has no
// sibling in the locale.
func (l Locale) Root() string {
	return LocalizePath(l, "/")
}

// Other returns the first supported locale that is not l.
func (l Locale) Other() Locale {
	for _, v := range Locales {
		if v != l {
			return v
		}
	}
	return l
}

// LocaleFromPath returns the locale encoded in the first segment of a URL
// path. Paths without a known locale prefix belong to DefaultLocale.
func LocaleFromPath(path string) Locale {
	seg := strings.SplitN(strings.TrimPrefix(path, "/"), "/", 2)[0]
	if l := Locale(seg); l.Valid() && l != DefaultLocale {
		return l
	}
	return DefaultLocale
}

// RouteFromPath strips the locale prefix from a URL path.
func RouteFromPath(path string) string {
	l := LocaleFromPath(path)
	if l == DefaultLocale {
		if path == "" {
			return "/"
		}
		return path
	}
	route := strings.TrimPrefix(strings.TrimPrefix(path, "/"), string(l))
	if route == "" {
		return "/"
	}
	return route
}

// LocalizePath prefixes route with the locale segment.
// The default locale is left unprefixed.
func LocalizePath(l Locale, route string) string {
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	if l == DefaultLocale || l == "" {
		return route
	}
	return "/" + string(l) + route
}
