//go:build darwin || linux || freebsd

package native

import (
	"fmt"

	"github.com/ebitengine/purego"

	"github.com/wippyai/physics-shim/errors"
)

func openLibrary(path string) (uintptr, error) {
	return purego.Dlopen(path, purego.RTLD_LAZY|purego.RTLD_LOCAL)
}

func getSymbol(handle uintptr, name string) (uintptr, error) {
	return purego.Dlsym(handle, name)
}

func closeLibrary(handle uintptr) error {
	return purego.Dlclose(handle)
}

func register(name string, fptr any, sym uintptr) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.TypeMismatch(name, fmt.Sprint(r))
		}
	}()
	purego.RegisterFunc(fptr, sym)
	return nil
}
