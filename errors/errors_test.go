package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseResolve,
				Kind:   KindTypeMismatch,
				Symbol: "HP_StepWorld",
				Detail: "export has 2 params, want 3",
			},
			contains: []string{"[resolve]", "type_mismatch", "HP_StepWorld", "2 params"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseDispatch,
				Kind:  KindUnbound,
			},
			contains: []string{"[dispatch]", "unbound"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseLoad,
				Kind:   KindNotFound,
				Detail: "open module",
				Cause:  errors.New("dlopen failed"),
			},
			contains: []string{"[load]", "not_found", "open module", "caused by", "dlopen failed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseLoad,
		Kind:  KindNotFound,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is did not find cause in chain")
	}
}

func TestError_Is(t *testing.T) {
	err := Unbound("HP_InjectContacts", nil)

	if !errors.Is(err, ErrUnbound) {
		t.Error("Unbound should match ErrUnbound")
	}
	if errors.Is(err, ErrNotInitialized) {
		t.Error("Unbound should not match ErrNotInitialized")
	}
	if err.Is(&Error{Phase: PhaseResolve, Kind: KindUnbound}) {
		t.Error("Is should not match different phase")
	}

	wrapped := Wrap(PhaseHandshake, KindTrap, err, "handshake")
	if !errors.Is(wrapped, ErrUnbound) {
		t.Error("errors.Is should see unbound through the cause chain")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseResolve, KindTypeMismatch).
		Symbol("HP_AllocateWorld").
		Value(42).
		Cause(cause).
		Detail("expected %d params, got %d", 2, 3).
		Build()

	if err.Phase != PhaseResolve {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseResolve)
	}
	if err.Kind != KindTypeMismatch {
		t.Errorf("Kind = %v, want %v", err.Kind, KindTypeMismatch)
	}
	if err.Symbol != "HP_AllocateWorld" {
		t.Errorf("Symbol = %v, want HP_AllocateWorld", err.Symbol)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected 2 params, got 3" {
		t.Errorf("Detail = %q", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("SymbolNotFound", func(t *testing.T) {
		err := SymbolNotFound("HP_StepWorld", nil)
		if err.Phase != PhaseResolve || err.Kind != KindNotFound {
			t.Errorf("got %v/%v", err.Phase, err.Kind)
		}
		if err.Symbol != "HP_StepWorld" {
			t.Errorf("Symbol = %q", err.Symbol)
		}
	})

	t.Run("NotInitialized", func(t *testing.T) {
		err := NotInitialized("shim")
		if !errors.Is(err, ErrNotInitialized) {
			t.Error("should match ErrNotInitialized")
		}
		if !strings.Contains(err.Detail, "shim") {
			t.Errorf("Detail = %q", err.Detail)
		}
	})

	t.Run("Trap", func(t *testing.T) {
		err := Trap("HP_ProcessStep", errors.New("unreachable"))
		if err.Kind != KindTrap {
			t.Errorf("Kind = %v, want %v", err.Kind, KindTrap)
		}
	})

	t.Run("OutOfBounds", func(t *testing.T) {
		err := OutOfBounds(PhaseDispatch, "HP_StepWorld", uint64(1)<<40, "32-bit address space")
		if err.Kind != KindOutOfBounds {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOutOfBounds)
		}
		if err.Value != uint64(1)<<40 {
			t.Errorf("Value = %v", err.Value)
		}
	})

	t.Run("Unsupported", func(t *testing.T) {
		err := Unsupported(PhaseLoad, "dynamic loading on js")
		if err.Kind != KindUnsupported {
			t.Errorf("Kind = %v, want %v", err.Kind, KindUnsupported)
		}
	})
}

func TestMissingSymbolsError(t *testing.T) {
	t.Run("lists symbols", func(t *testing.T) {
		err := &MissingSymbolsError{
			Module: "libHavokNative.so",
			Symbols: []MissingSymbol{
				{Name: "HP_InjectContacts", Cause: SymbolNotFound("HP_InjectContacts", nil)},
				{Name: "UnityPluginLoad"},
			},
		}
		msg := err.Error()
		for _, s := range []string{"2 entry point(s)", "libHavokNative.so", "HP_InjectContacts", "UnityPluginLoad"} {
			if !strings.Contains(msg, s) {
				t.Errorf("message %q does not contain %q", msg, s)
			}
		}
	})

	t.Run("empty", func(t *testing.T) {
		err := &MissingSymbolsError{}
		if !strings.Contains(err.Error(), "no symbols specified") {
			t.Errorf("unexpected message: %s", err.Error())
		}
	})

	t.Run("errors.Is", func(t *testing.T) {
		err := &MissingSymbolsError{Symbols: []MissingSymbol{{Name: "HP_StepWorld"}}}
		if !errors.Is(err, &MissingSymbolsError{}) {
			t.Error("errors.Is should match MissingSymbolsError")
		}
	})
}
