package index

import (
	"sort"
	"strings"

	"github.com/fwojciec/folio"
)

// Matcher evaluates queries against a loaded index.
// It only reads the index, so a Matcher may be shared freely.
type Matcher struct {
	idx   *folio.SearchIndex
	terms []string // sorted, for prefix lookup
}

// NewMatcher prepares idx for matching.
func NewMatcher(idx *folio.SearchIndex) *Matcher {
	terms := make([]string, 0, len(idx.Tokens))
	for t := range idx.Tokens {
		terms = append(terms, t)
	}
	sort.Strings(terms)
	return &Matcher{idx: idx, terms: terms}
}

// Locale returns the locale of the underlying index.
func (m *Matcher) Locale() folio.Locale {
	return m.idx.Locale
}

// Len returns the number of indexed documents.
func (m *Matcher) Len() int {
	return len(m.idx.Documents)
}

// Search evaluates query. Every token but the last must match an index
// token exactly; the last matches by prefix. A document is a candidate only
// if every query token matches it. A query without tokens yields the idle
// state; a query with tokens but no candidates yields no-results.
func (m *Matcher) Search(query string, opts folio.SearchOptions) folio.Outcome {
	locale := m.idx.Locale
	tokens := folio.Tokenize(locale, query)
	if len(tokens) == 0 {
		return folio.Outcome{Query: query, State: folio.SearchIdle}
	}

	var scores map[string]int
	for i, token := range tokens {
		var matched map[string]int
		if i == len(tokens)-1 {
			matched = m.matchPrefix(token)
		} else {
			matched = m.matchExact(token)
		}

		if scores == nil {
			scores = matched
		} else {
			for id, s := range scores {
				if ms, ok := matched[id]; ok {
					scores[id] = s + ms
				} else {
					delete(scores, id)
				}
			}
		}
		if len(scores) == 0 {
			return folio.Outcome{Query: query, State: folio.SearchNoResults}
		}
	}

	phrase := folio.NormalizePhrase(locale, query)
	hits := make([]folio.Hit, 0, len(scores))
	for id, score := range scores {
		entry := m.idx.Documents[id]
		if entry == nil || entry.Locale != locale {
			continue
		}
		if opts.TitleBoost > 0 && strings.Contains(folio.NormalizePhrase(locale, entry.Title), phrase) {
			score += opts.TitleBoost
		}
		hits = append(hits, folio.Hit{Entry: entry, Score: score})
	}
	if len(hits) == 0 {
		return folio.Outcome{Query: query, State: folio.SearchNoResults}
	}

	sortHits(hits)
	if opts.Limit > 0 && len(hits) > opts.Limit {
		hits = hits[:opts.Limit]
	}

	return folio.Outcome{Query: query, State: folio.SearchResults, Hits: hits}
}

func (m *Matcher) matchExact(token string) map[string]int {
	matched := make(map[string]int)
	for _, p := range m.idx.Tokens[token] {
		matched[p.DocumentID] += p.Score
	}
	return matched
}

func (m *Matcher) matchPrefix(prefix string) map[string]int {
	matched := make(map[string]int)
	for i := sort.SearchStrings(m.terms, prefix); i < len(m.terms) && strings.HasPrefix(m.terms[i], prefix); i++ {
		for _, p := range m.idx.Tokens[m.terms[i]] {
			matched[p.DocumentID] += p.Score
		}
	}
	return matched
}

// sortHits orders hits by score descending, then publication date
// descending, then path ascending.
func sortHits(hits []folio.Hit) {
	sort.Slice(hits, func(i, j int) bool {
		a, b := hits[i], hits[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if !a.Entry.PublishedAt.Equal(b.Entry.PublishedAt) {
			return a.Entry.PublishedAt.After(b.Entry.PublishedAt)
		}
		return a.Entry.Path < b.Entry.Path
	})
}
