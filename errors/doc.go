// Package errors provides structured error types for the physics shim.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the canonical symbol name when one is involved, a
// human-readable detail and the cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseResolve, errors.KindTypeMismatch).
//		Symbol("HP_StepWorld").
//		Detail("export has 2 params, want 3").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Unbound("HP_InjectContacts", cause)
//	err := errors.Load("open module", cause)
//
// All errors implement the standard error interface and support errors.Is/As.
// ErrUnbound and ErrNotInitialized match any error of the same phase and kind.
package errors
