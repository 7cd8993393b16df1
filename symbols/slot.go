package symbols

import (
	"reflect"

	physicsshim "github.com/wippyai/physics-shim"
	"github.com/wippyai/physics-shim/errors"
)

// Slot holds one entry point: either a bound typed reference or the reason
// it is unbound.
type Slot[F any] struct {
	fn    F
	err   error
	name  string
	bound bool
}

// Name returns the canonical name the slot resolves.
func (s *Slot[F]) Name() string {
	return s.name
}

// Bound reports whether the slot holds a callable reference.
func (s *Slot[F]) Bound() bool {
	return s.bound
}

// Err returns why the slot is unbound, or nil when bound.
func (s *Slot[F]) Err() error {
	if s.bound {
		return nil
	}
	return s.err
}

// Func returns the bound reference, or an error matching errors.ErrUnbound.
func (s *Slot[F]) Func() (F, error) {
	if !s.bound {
		var zero F
		return zero, errors.Unbound(s.name, s.err)
	}
	return s.fn, nil
}

func (s *Slot[F]) bind(lib physicsshim.Library) {
	if lib == nil {
		s.err = errors.Load("no module", nil)
		return
	}

	// A panicking backend must not stop the remaining slots from binding.
	defer func() {
		if r := recover(); r != nil {
			s.err = errors.New(errors.PhaseResolve, errors.KindInvalidData).
				Symbol(s.name).
				Detail("bind panicked: %v", r).
				Build()
			s.bound = false
		}
	}()

	var fn F
	if err := lib.Bind(s.name, &fn); err != nil {
		s.err = err
		return
	}
	if reflect.ValueOf(&fn).Elem().IsNil() {
		s.err = errors.SymbolNotFound(s.name, nil)
		return
	}

	s.fn = fn
	s.bound = true
}

// slotState is the type-erased view of a Slot used for iteration.
type slotState interface {
	Name() string
	Bound() bool
	Err() error
	bind(lib physicsshim.Library)
}
