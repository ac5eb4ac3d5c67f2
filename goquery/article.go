package goquery

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/folio"
)

var _ folio.ArticleExtractor = (*ArticleExtractor)(nil)

// Selectors of the legacy article template.
const (
	selectorTitle    = "h1"
	selectorSubtitle = ".article-subtitle"
	selectorDate     = ".article-date"
	selectorCategory = ".article-category"
	selectorTags     = ".tags .tag"
	selectorContent  = ".article-content"
)

var spanishDate = regexp.MustCompile(`(?i)(\d{1,2})\s+de\s+([a-z]+)\s+de\s+(\d{4})`)

var spanishMonths = map[string]time.Month{
	"enero":      time.January,
	"febrero":    time.February,
	"marzo":      time.March,
	"abril":      time.April,
	"mayo":       time.May,
	"junio":      time.June,
	"julio":      time.July,
	"agosto":     time.August,
	"septiembre": time.September,
	"setiembre":  time.September,
	"octubre":    time.October,
	"noviembre":  time.November,
	"diciembre":  time.December,
}

// ArticleExtractor reads pages built from the legacy article template.
type ArticleExtractor struct{}

// NewArticleExtractor creates a new ArticleExtractor.
func NewArticleExtractor() *ArticleExtractor {
	return &ArticleExtractor{}
}

// ExtractArticle returns the fields found in html. Missing fields are left
// empty; ContentHTML is empty when the page has no article container.
func (e *ArticleExtractor) ExtractArticle(html string) (*folio.LegacyArticle, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, folio.Errorf(folio.EINVALID, "failed to parse HTML: %v", err)
	}

	a := &folio.LegacyArticle{
		Title:    firstText(doc, selectorTitle),
		Subtitle: firstText(doc, selectorSubtitle),
		Category: firstText(doc, selectorCategory),
	}
	a.PublishedAt, _ = ParseLegacyDate(firstText(doc, selectorDate))

	doc.Find(selectorTags).Each(func(_ int, sel *goquery.Selection) {
		if tag := strings.TrimSpace(sel.Text()); tag != "" {
			a.Tags = append(a.Tags, tag)
		}
	})

	if content := doc.Find(selectorContent).First(); content.Length() > 0 {
		a.ContentHTML, err = content.Html()
		if err != nil {
			return nil, folio.Errorf(folio.EINVALID, "failed to read article content: %v", err)
		}
	}

	return a, nil
}

// ParseLegacyDate parses dates such as "14 de mayo de 2023" or
// "May 14, 2023". Reports false when s has no recognizable date.
func ParseLegacyDate(s string) (time.Time, bool) {
	if m := spanishDate.FindStringSubmatch(s); m != nil {
		month, ok := spanishMonths[strings.ToLower(m[2])]
		if !ok {
			return time.Time{}, false
		}
		day, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[3])
		return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), true
	}
	for _, layout := range []string{"January 2, 2006", "Jan 2, 2006", "2006-01-02"} {
		if t, err := time.Parse(layout, strings.TrimSpace(s)); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func firstText(doc *goquery.Document, selector string) string {
	return strings.Join(strings.Fields(doc.Find(selector).First().Text()), " ")
}
