package mock

import "github.com/fwojciec/folio"

var _ folio.ModalView = (*ModalView)(nil)

// ModalView is a mock implementation of folio.ModalView.
// Nil functions are no-ops so tests only stub the calls they inspect.
type ModalView struct {
	ShowFn         func()
	HideFn         func()
	FocusInputFn   func()
	TrapFocusFn    func()
	ReleaseFocusFn func()
	RestoreFocusFn func(trigger string)
	ClearQueryFn   func()
	RenderFn       func(out folio.Outcome)
}

func (v *ModalView) Show() {
	if v.ShowFn != nil {
		v.ShowFn()
	}
}

func (v *ModalView) Hide() {
	if v.HideFn != nil {
		v.HideFn()
	}
}

func (v *ModalView) FocusInput() {
	if v.FocusInputFn != nil {
		v.FocusInputFn()
	}
}

func (v *ModalView) TrapFocus() {
	if v.TrapFocusFn != nil {
		v.TrapFocusFn()
	}
}

func (v *ModalView) ReleaseFocus() {
	if v.ReleaseFocusFn != nil {
		v.ReleaseFocusFn()
	}
}

func (v *ModalView) RestoreFocus(trigger string) {
	if v.RestoreFocusFn != nil {
		v.RestoreFocusFn(trigger)
	}
}

func (v *ModalView) ClearQuery() {
	if v.ClearQueryFn != nil {
		v.ClearQueryFn()
	}
}

func (v *ModalView) Render(out folio.Outcome) {
	if v.RenderFn != nil {
		v.RenderFn(out)
	}
}
