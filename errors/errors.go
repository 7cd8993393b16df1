package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in the shim lifecycle the error occurred
type Phase string

const (
	PhaseLoad      Phase = "load"      // module loading
	PhaseResolve   Phase = "resolve"   // symbol binding
	PhaseHandshake Phase = "handshake" // load entry point call
	PhaseDispatch  Phase = "dispatch"  // forwarding calls
	PhaseConfig    Phase = "config"    // configuration parsing
)

// Kind says what went wrong within a phase.
type Kind string

const (
	KindNotFound       Kind = "not_found"
	KindUnbound        Kind = "unbound"
	KindTypeMismatch   Kind = "type_mismatch"
	KindNotInitialized Kind = "not_initialized"
	KindInvalidInput   Kind = "invalid_input"
	KindInvalidData    Kind = "invalid_data"
	KindUnsupported    Kind = "unsupported"
	KindOutOfBounds    Kind = "out_of_bounds"
	KindTrap           Kind = "trap"
)

// Sentinels for errors.Is checks.
var (
	ErrUnbound        = &Error{Phase: PhaseDispatch, Kind: KindUnbound}
	ErrNotInitialized = &Error{Phase: PhaseDispatch, Kind: KindNotInitialized}
)

// Error is the structured error type used throughout the shim
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Symbol string
	Detail string
}

// Error renders phase, kind, symbol, detail and cause on one line.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Symbol != "" {
		b.WriteString(" at ")
		b.WriteString(e.Symbol)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches another *Error with the same phase and kind.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder assembles an Error field by field.
type Builder struct {
	err Error
}

// New starts a Builder for phase and kind.
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Symbol sets the canonical symbol name
func (b *Builder) Symbol(name string) *Builder {
	b.err.Symbol = name
	return b
}

// Value attaches the offending value.
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause records the lower-level failure.
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail formats the message.
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build finishes the error.
func (b *Builder) Build() *Error {
	return &b.err
}

// Shorthands for the failures the loaders and relay report.

// Load reports a module that could not be opened.
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindNotFound,
		Detail: detail,
		Cause:  cause,
	}
}

// SymbolNotFound creates an error for a name the module does not export
func SymbolNotFound(name string, cause error) *Error {
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindNotFound,
		Symbol: name,
		Detail: "symbol not exported by module",
		Cause:  cause,
	}
}

// TypeMismatch creates an error for an export whose signature does not match
func TypeMismatch(name, detail string) *Error {
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindTypeMismatch,
		Symbol: name,
		Detail: detail,
	}
}

// Unbound creates the error returned when a forwarding call hits an unbound slot
func Unbound(name string, cause error) *Error {
	return &Error{
		Phase:  PhaseDispatch,
		Kind:   KindUnbound,
		Symbol: name,
		Detail: "entry point is not bound",
		Cause:  cause,
	}
}

// NotInitialized creates a not-initialized error for calls made before the handshake
func NotInitialized(component string) *Error {
	return &Error{
		Phase:  PhaseDispatch,
		Kind:   KindNotInitialized,
		Detail: fmt.Sprintf("%s not initialized", component),
	}
}

// Trap creates an error for a call that aborted inside the loaded module
func Trap(name string, cause error) *Error {
	return &Error{
		Phase:  PhaseDispatch,
		Kind:   KindTrap,
		Symbol: name,
		Detail: "call aborted in module",
		Cause:  cause,
	}
}

// OutOfBounds reports a value that does not fit the target, such as a
// pointer above the guest address space.
func OutOfBounds(phase Phase, name string, value any, limit string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Symbol: name,
		Detail: fmt.Sprintf("value %v exceeds %s", value, limit),
		Value:  value,
	}
}

// InvalidInput reports a bad argument or configuration value.
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Unsupported reports a backend or platform that cannot do what was asked.
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// Wrap attaches phase, kind and detail to cause.
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// MissingSymbol represents a single unbound entry point
type MissingSymbol struct {
	Cause error
	Name  string
}

// MissingSymbolsError summarizes the entry points a module failed to provide.
// It is informational: resolution never fails because of it.
type MissingSymbolsError struct {
	Module  string
	Symbols []MissingSymbol
}

func (e *MissingSymbolsError) Error() string {
	if len(e.Symbols) == 0 {
		return "[resolve] not_found: no symbols specified"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d entry point(s) unbound", len(e.Symbols))
	if e.Module != "" {
		fmt.Fprintf(&b, " in %s", e.Module)
	}
	b.WriteByte(':')

	for _, s := range e.Symbols {
		b.WriteString("\n  - ")
		b.WriteString(s.Name)
		if s.Cause != nil {
			b.WriteString(": ")
			b.WriteString(s.Cause.Error())
		}
	}

	return b.String()
}

// Is matches any *MissingSymbolsError.
func (e *MissingSymbolsError) Is(target error) bool {
	_, ok := target.(*MissingSymbolsError)
	return ok
}
