//go:build !(darwin || linux || freebsd || windows)

package native

import (
	"runtime"

	"github.com/wippyai/physics-shim/errors"
)

func openLibrary(string) (uintptr, error) {
	return 0, errors.Unsupported(errors.PhaseLoad, "dynamic loading on "+runtime.GOOS)
}

func getSymbol(uintptr, string) (uintptr, error) {
	return 0, errors.Unsupported(errors.PhaseResolve, "dynamic loading on "+runtime.GOOS)
}

func closeLibrary(uintptr) error {
	return nil
}

func register(name string, _ any, _ uintptr) error {
	return errors.Unsupported(errors.PhaseResolve, name+": dynamic binding on "+runtime.GOOS)
}
