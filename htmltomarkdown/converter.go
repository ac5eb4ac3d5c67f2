// Package htmltomarkdown converts imported article bodies to Markdown using
// github.com/JohannesKaufmann/html-to-markdown/v2.
package htmltomarkdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/folio"
)

// DefaultCodeLanguage labels fenced code blocks that carry no language hint.
// The legacy blog only ever published Kotlin snippets.
const DefaultCodeLanguage = "kotlin"

var _ folio.Converter = (*Converter)(nil)

var blankRuns = regexp.MustCompile(`\n{3,}`)

// Converter turns legacy article HTML into Markdown bodies.
type Converter struct {
	conv *converter.Converter

	// CodeLanguage is written on code fences without a language.
	// Empty leaves them unlabeled.
	CodeLanguage string

	// Domain resolves relative links and images when non-empty.
	Domain string
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv, CodeLanguage: DefaultCodeLanguage}
}

// Convert transforms HTML content into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", folio.Errorf(folio.EINVALID, "empty HTML input")
	}

	var md string
	var err error
	if c.Domain != "" {
		md, err = c.conv.ConvertString(html, converter.WithDomain(c.Domain))
	} else {
		md, err = c.conv.ConvertString(html)
	}
	if err != nil {
		return "", err
	}

	if c.CodeLanguage != "" {
		md = labelFences(md, c.CodeLanguage)
	}
	md = blankRuns.ReplaceAllString(md, "\n\n")
	return strings.TrimSpace(md) + "\n", nil
}

// labelFences adds lang to every opening ``` fence that has none. Closing
// fences are told apart from opening ones by tracking whether a block is
// open.
func labelFences(md, lang string) string {
	lines := strings.Split(md, "\n")
	open := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "```") {
			continue
		}
		if !open && trimmed == "```" {
			lines[i] = strings.Replace(line, "```", "```"+lang, 1)
		}
		open = !open
	}
	return strings.Join(lines, "\n")
}
