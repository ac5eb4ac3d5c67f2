package folio

// ModalState is the state of the search modal.
type ModalState int

// Modal states.
const (
	ModalClosed ModalState = iota
	ModalOpen
)

// String returns the state name.
func (s ModalState) String() string {
	if s == ModalOpen {
		return "open"
	}
	return "closed"
}

// ModalEvent drives a modal transition.
type ModalEvent int

// Modal events.
const (
	EventActivate ModalEvent = iota
	EventDeactivate
)

// String returns the event name.
func (e ModalEvent) String() string {
	if e == EventActivate {
		return "activate"
	}
	return "deactivate"
}

// KeyEvent is a key press delivered to the modal controller.
type KeyEvent struct {
	Key  string // e.g. "Escape", "k", "/"
	Ctrl bool
	Meta bool

	// Target is the ID of the element that had focus.
	Target string
}

// ModalView receives the side effects of modal transitions and query
// evaluation. Implementations must not call back into the controller.
type ModalView interface {
	// Show reveals the modal container.
	Show()
	// Hide conceals the modal container.
	Hide()
	// FocusInput moves focus into the query field.
	FocusInput()
	// TrapFocus keeps keyboard focus within the modal region.
	TrapFocus()
	// ReleaseFocus ends the focus trap.
	ReleaseFocus()
	// RestoreFocus returns focus to the control that opened the modal.
	RestoreFocus(trigger string)
	// ClearQuery empties the query field.
	ClearQuery()
	// Render displays the outcome in the results and status regions.
	Render(out Outcome)
}
