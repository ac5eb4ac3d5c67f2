// Package yaml implements content front-matter parsing and rewriting, and
// configuration loading, using gopkg.in/yaml.v3.
package yaml

import (
	"bytes"
	"strings"
	"time"

	"github.com/fwojciec/folio"
	"gopkg.in/yaml.v3"
)

// FrontMatter is the metadata block at the top of a content item.
type FrontMatter struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description,omitempty"`
	PubDate     string   `yaml:"pubDate,omitempty"`
	UpdatedDate string   `yaml:"updatedDate,omitempty"`
	Category    string   `yaml:"category,omitempty"`
	Tags        []string `yaml:"tags,omitempty"`
	Draft       bool     `yaml:"draft,omitempty"`
	ReferenceID string   `yaml:"reference_id,omitempty"`
	HeroImage   string   `yaml:"heroImage,omitempty"`
}

// dateLayouts are the accepted pubDate formats.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"Jan 2 2006",
	"Jan 02 2006",
	"January 2, 2006",
}

// ParseDate parses a pubDate value.
// Returns EINVALID if no accepted layout matches.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, folio.Errorf(folio.EINVALID, "unrecognized date %q", s)
}

// block locates the front-matter inside a raw content item.
type block struct {
	content []byte // between the delimiters
	start   int    // offset of content
	end     int    // offset of the closing delimiter line
	body    []byte
	newline string
}

const delimiter = "---"

// split locates the front-matter delimiters.
// Returns EINVALID if the opening delimiter is missing or the block is
// unterminated.
func split(raw []byte) (*block, error) {
	var nl string
	switch {
	case bytes.HasPrefix(raw, []byte(delimiter+"\r\n")):
		nl = "\r\n"
	case bytes.HasPrefix(raw, []byte(delimiter+"\n")):
		nl = "\n"
	default:
		return nil, folio.Errorf(folio.EINVALID, "missing front-matter")
	}

	start := len(delimiter) + len(nl)
	for pos := start; pos <= len(raw); {
		i := bytes.IndexByte(raw[pos:], '\n')
		line, next := raw[pos:], len(raw)
		if i >= 0 {
			line, next = raw[pos:pos+i], pos+i+1
		}
		if string(bytes.TrimRight(line, "\r")) == delimiter {
			return &block{
				content: raw[start:pos],
				start:   start,
				end:     pos,
				body:    raw[next:],
				newline: nl,
			}, nil
		}
		if i < 0 {
			break
		}
		pos = next
	}
	return nil, folio.Errorf(folio.EINVALID, "unterminated front-matter")
}

// SplitFrontMatter returns the front-matter text and the body of raw.
func SplitFrontMatter(raw []byte) (frontMatter, body []byte, err error) {
	b, err := split(raw)
	if err != nil {
		return nil, nil, err
	}
	return b.content, b.body, nil
}

// ParseFrontMatter decodes the front-matter of raw and returns it with the
// body.
// Returns EINVALID if the block is missing, unterminated or not valid YAML.
func ParseFrontMatter(raw []byte) (*FrontMatter, []byte, error) {
	b, err := split(raw)
	if err != nil {
		return nil, nil, err
	}
	fm, err := decode(b.content)
	if err != nil {
		return nil, nil, err
	}
	return fm, b.body, nil
}

func decode(content []byte) (*FrontMatter, error) {
	var fm FrontMatter
	if err := yaml.Unmarshal(content, &fm); err != nil {
		return nil, folio.Errorf(folio.EINVALID, "invalid front-matter: %v", err)
	}
	return &fm, nil
}
