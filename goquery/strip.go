package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/folio"
)

var _ folio.MarkupStripper = (*Stripper)(nil)

// Markdown syntax removed before the remaining text is parsed as HTML.
var (
	fencedCode = regexp.MustCompile("(?s)```[^\n]*\n(.*?)```")
	image      = regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`)
	link       = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	heading    = regexp.MustCompile(`(?m)^[ \t]{0,3}#{1,6}[ \t]*`)
	blockquote = regexp.MustCompile(`(?m)^[ \t]*>[ \t]?`)
	listMarker = regexp.MustCompile(`(?m)^[ \t]*(?:[-*+]|\d+\.)[ \t]+`)
	rule       = regexp.MustCompile(`(?m)^[ \t]*(?:-{3,}|\*{3,}|_{3,})[ \t]*$`)
	emphasis   = regexp.MustCompile("\\*\\*|__|~~|\\*|`")
)

// blockElements get a trailing space so adjacent blocks do not run together.
const blockElements = "p, div, li, br, h1, h2, h3, h4, h5, h6, tr, td, th, blockquote, pre, section, article"

// Stripper reduces markdown with inline HTML to plain text.
type Stripper struct{}

// NewStripper creates a new Stripper.
func NewStripper() *Stripper {
	return &Stripper{}
}

// StripMarkup removes markdown syntax and HTML tags, drops script and style
// content, decodes entities and collapses whitespace.
func (s *Stripper) StripMarkup(body string) string {
	text := fencedCode.ReplaceAllString(body, "$1")
	text = image.ReplaceAllString(text, "$1")
	text = link.ReplaceAllString(text, "$1")
	text = rule.ReplaceAllString(text, "")
	text = heading.ReplaceAllString(text, "")
	text = blockquote.ReplaceAllString(text, "")
	text = listMarker.ReplaceAllString(text, "")
	text = emphasis.ReplaceAllString(text, "")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return strings.Join(strings.Fields(text), " ")
	}
	doc.Find("script, style, noscript, template").Remove()
	doc.Find(blockElements).AppendHtml(" ")
	return strings.Join(strings.Fields(doc.Text()), " ")
}
