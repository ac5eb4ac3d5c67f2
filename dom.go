package folio

// DOM contract consumed by external black-box checks. Each ID identifies
// exactly one element on every page that embeds the search modal.
const (
	DOMSearchButton = "search-button"
	DOMSearchModal  = "search-modal"
	DOMSearchInput  = "search-input"
	DOMResults      = "search-results"
	DOMStatus       = "search-status"
	DOMCloseButton  = "close-search"
	DOMEscapeHint   = "search-escape-hint"
)

// DOMContractIDs lists every ID of the DOM contract.
var DOMContractIDs = []string{
	DOMSearchButton,
	DOMSearchModal,
	DOMSearchInput,
	DOMResults,
	DOMStatus,
	DOMCloseButton,
	DOMEscapeHint,
}
