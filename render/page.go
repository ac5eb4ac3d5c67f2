package render

import (
	"sync"

	"github.com/fwojciec/folio"
)

var _ folio.ModalView = (*Page)(nil)

// Page is a headless model of the search region of a rendered page. It
// applies modal side effects the way the browser script mutates the DOM.
type Page struct {
	renderer *Renderer

	mu    sync.Mutex
	state PageState
}

// PageState is a snapshot of the observable DOM state.
type PageState struct {
	ModalHidden   bool
	Expanded      bool   // aria-expanded on the search button
	Focus         string // ID of the focused element
	FocusTrapped  bool
	Query         string // value of the query field
	ResultsHidden bool
	ResultsHTML   string
	StatusHidden  bool
	StatusState   string // data-state of the status region
	StatusText    string
	BodyScroll    bool
}

// NewPage returns a page with the modal closed.
func NewPage(r *Renderer) *Page {
	return &Page{
		renderer: r,
		state: PageState{
			ModalHidden:   true,
			ResultsHidden: true,
			StatusState:   folio.SearchIdle.String(),
			StatusText:    r.Messages.Idle,
			BodyScroll:    true,
		},
	}
}

// State returns a snapshot of the page.
func (p *Page) State() PageState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Type sets the query field value as the user types.
func (p *Page) Type(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Query = text
}

// Focus moves focus to the element with the given ID. While the focus trap
// is active, focus cannot leave the modal.
func (p *Page) Focus(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state.FocusTrapped && !insideModal(id) {
		return false
	}
	p.state.Focus = id
	return true
}

func insideModal(id string) bool {
	switch id {
	case folio.DOMSearchInput, folio.DOMCloseButton, folio.DOMResults, folio.DOMSearchModal:
		return true
	}
	return false
}

func (p *Page) Show() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.ModalHidden = false
	p.state.Expanded = true
	p.state.BodyScroll = false
}

func (p *Page) Hide() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.ModalHidden = true
	p.state.Expanded = false
	p.state.BodyScroll = true
}

func (p *Page) FocusInput() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Focus = folio.DOMSearchInput
}

func (p *Page) TrapFocus() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.FocusTrapped = true
}

func (p *Page) ReleaseFocus() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.FocusTrapped = false
}

func (p *Page) RestoreFocus(trigger string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Focus = trigger
}

func (p *Page) ClearQuery() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Query = ""
}

// Render updates the results and status regions. A rendering failure
// leaves the page in the error state.
func (p *Page) Render(out folio.Outcome) {
	var html string
	if out.State == folio.SearchResults {
		var err error
		html, err = p.renderer.RenderResults(out.Hits)
		if err != nil {
			out = folio.Outcome{Query: out.Query, State: folio.SearchFailed}
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.ResultsHTML = html
	p.state.ResultsHidden = out.State != folio.SearchResults
	p.state.StatusHidden = out.State == folio.SearchResults
	p.state.StatusState = out.State.String()
	p.state.StatusText = p.renderer.StatusText(out)
}
