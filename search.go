package folio

// SearchState is the observable state of the search status region.
type SearchState int

// Search states.
const (
	// SearchIdle means nothing has been searched: the query has no tokens.
	SearchIdle SearchState = iota
	// SearchLoading means a query is waiting for the index to arrive.
	SearchLoading
	// SearchResults means at least one document matched.
	SearchResults
	// SearchNoResults means the query had tokens but nothing matched.
	SearchNoResults
	// SearchFailed means the index could not be loaded.
	SearchFailed
)

// String returns the state name used in the status region.
func (s SearchState) String() string {
	switch s {
	case SearchIdle:
		return "idle"
	case SearchLoading:
		return "loading"
	case SearchResults:
		return "results"
	case SearchNoResults:
		return "no-results"
	case SearchFailed:
		return "error"
	default:
		return "unknown"
	}
}

// Hit is a ranked search result.
type Hit struct {
	Entry *IndexEntry `json:"entry"`
	Score int         `json:"score"`
}

// Outcome is the result of evaluating one query.
type Outcome struct {
	Query string      `json:"query"`
	State SearchState `json:"state"`
	Hits  []Hit       `json:"hits,omitempty"`
}

// SearchOptions configures query evaluation.
type SearchOptions struct {
	// Limit caps the number of hits.
	Limit int

	// TitleBoost is added when the whole query occurs in the title.
	TitleBoost int
}

// Default search tuning.
const (
	DefaultSearchLimit = 10
	DefaultTitleBoost  = 10
)

// DefaultSearchOptions returns the default search tuning.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{Limit: DefaultSearchLimit, TitleBoost: DefaultTitleBoost}
}
