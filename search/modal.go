package search

import (
	"strings"
	"sync"

	"github.com/fwojciec/folio"
)

// transitions is the modal's state table. Pairs that are absent are no-ops.
var transitions = map[folio.ModalState]map[folio.ModalEvent]folio.ModalState{
	folio.ModalClosed: {folio.EventActivate: folio.ModalOpen},
	folio.ModalOpen:   {folio.EventDeactivate: folio.ModalClosed},
}

// Modal is the search modal controller. Every input event is reduced to
// an activate or deactivate event and run through the transition table;
// side effects happen only on entry into a new state.
type Modal struct {
	view    folio.ModalView
	session *Session

	mu      sync.Mutex
	state   folio.ModalState
	trigger string
}

// NewModal returns a closed Modal driving view and session.
func NewModal(view folio.ModalView, session *Session) *Modal {
	return &Modal{view: view, session: session, state: folio.ModalClosed}
}

// State returns the current state.
func (m *Modal) State() folio.ModalState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Activate opens the modal. trigger is the ID of the control that opened
// it; focus returns there on close. Reports whether the state changed.
func (m *Modal) Activate(trigger string) bool {
	return m.fire(folio.EventActivate, trigger)
}

// Deactivate closes the modal. Reports whether the state changed.
func (m *Modal) Deactivate() bool {
	return m.fire(folio.EventDeactivate, "")
}

func (m *Modal) fire(ev folio.ModalEvent, trigger string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	next, ok := transitions[m.state][ev]
	if !ok {
		return false
	}
	m.state = next

	switch next {
	case folio.ModalOpen:
		if trigger == "" {
			trigger = folio.DOMSearchButton
		}
		m.trigger = trigger
		m.view.Show()
		m.view.FocusInput()
		m.view.TrapFocus()
		m.session.Prefetch()
	case folio.ModalClosed:
		m.view.Hide()
		m.view.ReleaseFocus()
		m.view.RestoreFocus(m.trigger)
		m.trigger = ""
		m.session.Reset()
		m.view.ClearQuery()
		m.view.Render(folio.Outcome{State: folio.SearchIdle})
	}
	return true
}

// HandleKey applies a key press. Ctrl+K, Cmd+K and "/" open the modal;
// "/" is ignored while typing in the query field. Escape closes it.
// Reports whether the key was consumed.
func (m *Modal) HandleKey(ev folio.KeyEvent) bool {
	switch {
	case ev.Key == "Escape":
		return m.Deactivate()
	case (ev.Ctrl || ev.Meta) && strings.EqualFold(ev.Key, "k"):
		return m.Activate(ev.Target)
	case ev.Key == "/" && !ev.Ctrl && !ev.Meta && ev.Target != folio.DOMSearchInput:
		return m.Activate(ev.Target)
	}
	return false
}

// HandleClick applies a click on the element with the given ID. Clicking
// the modal container itself means the backdrop outside the dialog.
func (m *Modal) HandleClick(target string) bool {
	switch target {
	case folio.DOMSearchButton:
		return m.Activate(folio.DOMSearchButton)
	case folio.DOMCloseButton, folio.DOMSearchModal:
		return m.Deactivate()
	}
	return false
}

// Intent signals the user is likely to search soon, e.g. by hovering the
// search button. It prefetches the index.
func (m *Modal) Intent() {
	m.session.Prefetch()
}

// Input forwards typed text to the session while the modal is open.
func (m *Modal) Input(text string) {
	if m.State() != folio.ModalOpen {
		return
	}
	m.session.Input(text)
}
