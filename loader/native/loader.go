package native

import (
	"context"
	"fmt"
	"runtime"
	"unsafe"

	"go.uber.org/zap"

	physicsshim "github.com/wippyai/physics-shim"
	"github.com/wippyai/physics-shim/errors"
)

// registry is the handshake token target. The module only checks the
// pointer for presence and never dereferences it.
var registry int32

// DefaultModule returns the module path used when none is configured.
func DefaultModule() string {
	switch runtime.GOOS {
	case "darwin", "ios":
		return "HavokNative.bundle/HavokNative.dylib"
	case "windows":
		return "HavokNative.dll"
	default:
		return "libHavokNative.so"
	}
}

// Loader opens shared libraries.
type Loader struct{}

// NewLoader creates a native loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Open loads the library at name. On failure the returned Library is null
// (every Bind fails) and the error describes why.
func (l *Loader) Open(_ context.Context, name string) (physicsshim.Library, error) {
	return Open(name)
}

// Open is Loader.Open returning the concrete type.
func Open(name string) (*Library, error) {
	handle, err := openLibrary(name)
	if err != nil || handle == 0 {
		if err == nil {
			err = fmt.Errorf("null handle")
		}
		loadErr := errors.Load(fmt.Sprintf("open %s", name), err)
		Logger().Warn("module not loaded", zap.String("module", name), zap.Error(err))
		return &Library{name: name, loadErr: loadErr}, loadErr
	}

	Logger().Debug("module loaded", zap.String("module", name))
	return &Library{name: name, handle: handle}, nil
}

// Library is an opened shared library, or a null one if loading failed.
type Library struct {
	loadErr error
	name    string
	handle  uintptr
}

// Name returns the path the library was opened with.
func (l *Library) Name() string {
	return l.name
}

// Null reports whether loading failed.
func (l *Library) Null() bool {
	return l.handle == 0
}

// Token implements physicsshim.Library.
func (l *Library) Token() physicsshim.Ptr {
	return physicsshim.Ptr(unsafe.Pointer(&registry))
}

// Bind implements physicsshim.Library.
func (l *Library) Bind(name string, fptr any) error {
	if l.handle == 0 {
		return errors.SymbolNotFound(name, l.loadErr)
	}

	sym, err := getSymbol(l.handle, name)
	if err != nil || sym == 0 {
		return errors.SymbolNotFound(name, err)
	}

	return register(name, fptr, sym)
}

// Close unloads the library. The shim itself never calls it: the module
// stays loaded for the life of the process.
func (l *Library) Close() error {
	if l.handle == 0 {
		return nil
	}
	err := closeLibrary(l.handle)
	l.handle = 0
	return err
}
