//go:build windows

package native

import (
	"fmt"

	"github.com/ebitengine/purego"
	"golang.org/x/sys/windows"

	"github.com/wippyai/physics-shim/errors"
)

func openLibrary(path string) (uintptr, error) {
	h, err := windows.LoadLibrary(path)
	if err != nil {
		return 0, err
	}
	return uintptr(h), nil
}

func getSymbol(handle uintptr, name string) (uintptr, error) {
	return windows.GetProcAddress(windows.Handle(handle), name)
}

func closeLibrary(handle uintptr) error {
	return windows.FreeLibrary(windows.Handle(handle))
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
