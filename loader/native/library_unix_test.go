//go:build darwin || linux || freebsd

package native

import (
	"errors"
	"runtime"
	"testing"

	shimerrors "github.com/wippyai/physics-shim/errors"
	"github.com/wippyai/physics-shim/symbols"
)

func systemMath() string {
	switch runtime.GOOS {
	case "darwin":
		return "/usr/lib/libSystem.B.dylib"
	case "freebsd":
		return "libm.so.5"
	default:
		return "libm.so.6"
	}
}

// openMath opens the system math library, skipping where float calls are
// not supported by the dynamic binder.
func openMath(t *testing.T) *Library {
	t.Helper()
	if runtime.GOARCH != "amd64" && runtime.GOARCH != "arm64" {
		t.Skipf("float arguments not supported on %s", runtime.GOARCH)
	}
	lib, err := Open(systemMath())
	if err != nil {
		t.Skipf("system math library unavailable: %v", err)
	}
	t.Cleanup(func() { _ = lib.Close() })
	return lib
}

func TestLibrary_BindSystemFunction(t *testing.T) {
	lib := openMath(t)
	if lib.Null() {
		t.Fatal("opened library is null")
	}

	var cosf, fabsf func(float32) float32
	if err := lib.Bind("cosf", &cosf); err != nil {
		t.Fatalf("Bind(cosf): %v", err)
	}
	var missing func(int32) int32
	err := lib.Bind("HP_NotInLibm", &missing)
	if !errors.Is(err, &shimerrors.Error{Phase: shimerrors.PhaseResolve, Kind: shimerrors.KindNotFound}) {
		t.Errorf("missing name err = %v, want resolve/not_found", err)
	}
	if missing != nil {
		t.Error("missing name left a func behind")
	}
	if err := lib.Bind("fabsf", &fabsf); err != nil {
		t.Fatalf("Bind(fabsf) after a failed bind: %v", err)
	}

	if got := cosf(0); got != 1 {
		t.Errorf("cosf(0) = %v, want 1", got)
	}
	if got := fabsf(-2.5); got != 2.5 {
		t.Errorf("fabsf(-2.5) = %v, want 2.5", got)
	}
}

func TestLibrary_ResolveForeignLibrary(t *testing.T) {
	lib := openMath(t)

	table := symbols.Resolve(lib)
	if table.BoundCount() != 0 {
		t.Errorf("BoundCount = %d, want 0", table.BoundCount())
	}
	for _, st := range table.Report() {
		if !errors.Is(st.Err, &shimerrors.Error{Phase: shimerrors.PhaseResolve, Kind: shimerrors.KindNotFound}) {
			t.Errorf("%s: err = %v, want resolve/not_found", st.Name, st.Err)
		}
	}
}

func TestLibrary_CloseNullsHandle(t *testing.T) {
	lib := openMath(t)
	if err := lib.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !lib.Null() {
		t.Error("closed library should be null")
	}
	var cosf func(float32) float32
	if err := lib.Bind("cosf", &cosf); err == nil {
		t.Error("Bind after Close should fail")
	}
}
