// Package index builds per-locale search indexes at build time and matches
// queries against them at runtime.
package index

import (
	"sort"
	"time"

	"github.com/fwojciec/folio"
)

// Builder builds the search index of one locale.
type Builder struct {
	Weights folio.FieldWeights
}

// NewBuilder creates a Builder with the given field weights.
func NewBuilder(weights folio.FieldWeights) *Builder {
	return &Builder{Weights: weights}
}

// Build indexes docs for locale. Drafts are skipped. The result is a pure
// function of the document set: the same documents in any order produce an
// identical index.
// Returns EINVALID if a document belongs to another locale or an ID repeats.
func (b *Builder) Build(locale folio.Locale, docs []*folio.Document, refs *folio.ReferenceTable) (*folio.SearchIndex, error) {
	idx := &folio.SearchIndex{
		Locale:    locale,
		Documents: make(map[string]*folio.IndexEntry),
		Tokens:    make(map[string][]folio.Posting),
	}

	acc := make(map[string]map[string]*folio.Posting)

	for _, doc := range docs {
		if doc.Locale != locale {
			return nil, folio.Errorf(folio.EINVALID, "document %s has locale %s, building %s index", doc.ID, doc.Locale, locale)
		}
		if doc.Draft {
			continue
		}
		if _, dup := idx.Documents[doc.ID]; dup {
			return nil, folio.Errorf(folio.EINVALID, "duplicate document ID %s", doc.ID)
		}

		idx.Documents[doc.ID] = newEntry(doc, refs)

		b.addField(acc, locale, doc.ID, doc.Title, b.Weights.Title)
		for _, tag := range doc.Tags {
			b.addField(acc, locale, doc.ID, tag, b.Weights.Tags)
		}
		b.addField(acc, locale, doc.ID, doc.Excerpt, b.Weights.Excerpt)
		b.addField(acc, locale, doc.ID, doc.PlainText, b.Weights.Body)
	}

	for token, byDoc := range acc {
		postings := make([]folio.Posting, 0, len(byDoc))
		for _, p := range byDoc {
			postings = append(postings, *p)
		}
		sortPostings(postings, idx.Documents)
		idx.Tokens[token] = postings
	}

	return idx, nil
}

func (b *Builder) addField(acc map[string]map[string]*folio.Posting, locale folio.Locale, docID, text string, weight int) {
	if weight <= 0 || text == "" {
		return
	}
	for _, token := range folio.Tokenize(locale, text) {
		byDoc, ok := acc[token]
		if !ok {
			byDoc = make(map[string]*folio.Posting)
			acc[token] = byDoc
		}
		p, ok := byDoc[docID]
		if !ok {
			p = &folio.Posting{DocumentID: docID}
			byDoc[docID] = p
		}
		p.TermFrequency++
		p.Score += weight
		if weight > p.FieldWeight {
			p.FieldWeight = weight
		}
	}
}

func newEntry(doc *folio.Document, refs *folio.ReferenceTable) *folio.IndexEntry {
	var tags []string
	if len(doc.Tags) > 0 {
		tags = make([]string, len(doc.Tags))
		copy(tags, doc.Tags)
		sort.Strings(tags)
	}

	e := &folio.IndexEntry{
		ID:          doc.ID,
		Locale:      doc.Locale,
		ReferenceID: doc.ReferenceID,
		Kind:        doc.Collection.Kind(),
		Title:       doc.Title,
		Path:        doc.Path,
		Excerpt:     doc.Excerpt,
		Tags:        tags,
		PublishedAt: doc.PublishedAt.UTC(),
	}
	if refs != nil {
		e.Alternates = refs.Alternates(doc)
	}
	return e
}

// sortPostings orders postings by score descending, then publication date
// descending, then document ID ascending.
func sortPostings(postings []folio.Posting, docs map[string]*folio.IndexEntry) {
	sort.Slice(postings, func(i, j int) bool {
		a, b := postings[i], postings[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		ta, tb := publishedAt(docs, a.DocumentID), publishedAt(docs, b.DocumentID)
		if !ta.Equal(tb) {
			return ta.After(tb)
		}
		return a.DocumentID < b.DocumentID
	})
}

func publishedAt(docs map[string]*folio.IndexEntry, id string) time.Time {
	if e, ok := docs[id]; ok {
		return e.PublishedAt
	}
	return time.Time{}
}
