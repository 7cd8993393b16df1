package physicsshim

import "context"

// Ptr is an opaque pointer relayed between the host and the loaded module.
// It is never dereferenced by this module. Zero is null.
type Ptr uintptr

// IsNull reports whether p is the null pointer.
func (p Ptr) IsNull() bool {
	return p == 0
}

// World identifies a simulation instance owned by the loaded module.
type World int32

// Buffer describes a caller-owned array of fixed-layout records.
// Fields are relayed in declaration order: pointer, element count, byte stride.
type Buffer struct {
	Ptr    Ptr
	Count  int32
	Stride int32
}

// Loader opens a module by name.
//
// A missing module is not fatal: implementations return a Library whose
// Bind always fails, together with the load error for diagnostics.
type Loader interface {
	Open(ctx context.Context, name string) (Library, error)
}

// Library is an opened module.
type Library interface {
	// Bind resolves name and stores a typed reference into fptr,
	// which must be a non-nil pointer to a func variable.
	Bind(name string, fptr any) error

	// Token returns the non-null value passed to the module's load entry point.
	Token() Ptr
}
