// Package static binds entry points to Go functions linked into the binary.
//
// It serves deployments without the late-binding constraint and stands in
// for a module in tests: the "module" is an Exports map from canonical name
// to a function whose type matches the symbols package.
//
//	lib := static.New(static.Exports{
//	    symbols.StepWorld: symbols.StepWorldFunc(engine.Step),
//	})
//	shim := relay.New(static.Loader(lib), "linked")
package static

import (
	"context"
	"reflect"
	"unsafe"

	physicsshim "github.com/wippyai/physics-shim"
	"github.com/wippyai/physics-shim/errors"
)

// registry is the handshake token target. Package-level, so its address is
// stable for the life of the process.
var registry int32

// Exports maps canonical names to implementations.
type Exports map[string]any

// Library is a linked-in module.
type Library struct {
	exports Exports
	token   physicsshim.Ptr
}

// New creates a library over exports. The map is copied.
func New(exports Exports) *Library {
	copied := make(Exports, len(exports))
	for name, fn := range exports {
		copied[name] = fn
	}
	return &Library{
		exports: copied,
		token:   physicsshim.Ptr(unsafe.Pointer(&registry)),
	}
}

// WithToken overrides the handshake token.
func (l *Library) WithToken(token physicsshim.Ptr) *Library {
	l.token = token
	return l
}

// Token implements physicsshim.Library.
func (l *Library) Token() physicsshim.Ptr {
	return l.token
}

// Bind implements physicsshim.Library. The export must be assignable to the
// func type fptr points at; untyped funcs with an identical underlying
// signature are converted.
func (l *Library) Bind(name string, fptr any) error {
	target := reflect.ValueOf(fptr)
	if target.Kind() != reflect.Pointer || target.IsNil() || target.Elem().Kind() != reflect.Func {
		return errors.New(errors.PhaseResolve, errors.KindInvalidInput).
			Symbol(name).
			Detail("bind target must be a pointer to a func, got %T", fptr).
			Build()
	}

	impl, ok := l.exports[name]
	if !ok || impl == nil {
		return errors.SymbolNotFound(name, nil)
	}

	v := reflect.ValueOf(impl)
	want := target.Elem().Type()
	switch {
	case v.Type().AssignableTo(want):
	case v.Kind() == reflect.Func && v.Type().ConvertibleTo(want):
		v = v.Convert(want)
	default:
		return errors.TypeMismatch(name, "export is "+v.Type().String()+", want "+want.String())
	}

	if v.IsNil() {
		return errors.SymbolNotFound(name, nil)
	}
	target.Elem().Set(v)
	return nil
}

type loader struct {
	lib *Library
}

// Loader returns a physicsshim.Loader that always opens lib, whatever the name.
func Loader(lib *Library) physicsshim.Loader {
	return loader{lib: lib}
}

func (l loader) Open(_ context.Context, _ string) (physicsshim.Library, error) {
	return l.lib, nil
}
