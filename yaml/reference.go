package yaml

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/fwojciec/folio"
	"github.com/google/uuid"
)

var _ folio.ReferenceAssigner = (*ReferenceAssigner)(nil)

// referenceKey matches a top-level reference_id line.
var referenceKey = regexp.MustCompile(`^reference_id\s*:`)

// ReferenceAssigner writes a reference_id into front-matter that lacks one.
type ReferenceAssigner struct {
	// NewID generates identifiers. Defaults to random UUIDs.
	NewID func() string
}

// NewReferenceAssigner returns an assigner drawing random UUIDs.
func NewReferenceAssigner() *ReferenceAssigner {
	return &ReferenceAssigner{NewID: uuid.NewString}
}

// AssignReference returns raw untouched when it already has a reference ID.
// Otherwise the ID line is appended to the front-matter, or replaces an
// empty or blank reference_id line, leaving every other byte as it was.
func (a *ReferenceAssigner) AssignReference(raw []byte) ([]byte, string, error) {
	b, err := split(raw)
	if err != nil {
		return nil, "", err
	}
	fm, err := decode(b.content)
	if err != nil {
		return nil, "", err
	}
	if strings.TrimSpace(fm.ReferenceID) != "" {
		return raw, "", nil
	}

	newID := a.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	id := newID()
	line := []byte(`reference_id: "` + id + `"` + b.newline)

	// Replace an existing blank key in place.
	for pos := b.start; pos < b.end; {
		i := bytes.IndexByte(raw[pos:b.end], '\n')
		next := b.end
		if i >= 0 {
			next = pos + i + 1
		}
		if referenceKey.Match(raw[pos:next]) {
			return splice(raw, pos, next, line), id, nil
		}
		pos = next
	}
	return splice(raw, b.end, b.end, line), id, nil
}

// splice returns raw with raw[from:to] replaced by insert.
func splice(raw []byte, from, to int, insert []byte) []byte {
	out := make([]byte, 0, len(raw)-(to-from)+len(insert))
	out = append(out, raw[:from]...)
	out = append(out, insert...)
	out = append(out, raw[to:]...)
	return out
}
