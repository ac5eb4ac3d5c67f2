package index

import (
	"encoding/json"
	"io"

	"github.com/fwojciec/folio"
)

// Marshal serializes an index. Map keys are emitted in sorted order and
// postings are pre-sorted, so equal indexes serialize to equal bytes.
func Marshal(idx *folio.SearchIndex) ([]byte, error) {
	data, err := json.Marshal(idx)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Encode writes the serialized index to w.
func Encode(w io.Writer, idx *folio.SearchIndex) error {
	data, err := Marshal(idx)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Unmarshal parses and validates a serialized index.
// Returns EINVALID for malformed assets or assets that break locale isolation.
func Unmarshal(data []byte) (*folio.SearchIndex, error) {
	var idx folio.SearchIndex
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, folio.Errorf(folio.EINVALID, "malformed index asset: %v", err)
	}
	if idx.Documents == nil {
		idx.Documents = make(map[string]*folio.IndexEntry)
	}
	if idx.Tokens == nil {
		idx.Tokens = make(map[string][]folio.Posting)
	}
	if err := idx.Validate(); err != nil {
		return nil, err
	}
	return &idx, nil
}

// Decode reads and validates a serialized index from r.
func Decode(r io.Reader) (*folio.SearchIndex, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Unmarshal(data)
}
