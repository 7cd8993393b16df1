//go:build darwin || linux || freebsd

package native

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	shimerrors "github.com/wippyai/physics-shim/errors"
	"github.com/wippyai/physics-shim/symbols"
)

func TestOpen_MissingModule(t *testing.T) {
	path := filepath.Join(t.TempDir(), "libMissing.so")

	lib, err := NewLoader().Open(context.Background(), path)
	if err == nil {
		t.Fatal("expected load error for missing module")
	}
	if lib == nil {
		t.Fatal("missing module must still yield a library")
	}
	if !errors.Is(err, &shimerrors.Error{Phase: shimerrors.PhaseLoad, Kind: shimerrors.KindNotFound}) {
		t.Errorf("error = %v, want load/not_found", err)
	}

	native := lib.(*Library)
	if !native.Null() {
		t.Error("library should be null")
	}
	if native.Name() != path {
		t.Errorf("Name() = %q, want %q", native.Name(), path)
	}
	if err := native.Close(); err != nil {
		t.Errorf("Close on null library: %v", err)
	}
}

func TestBind_NullLibraryDegradesToUnbound(t *testing.T) {
	lib, _ := Open(filepath.Join(t.TempDir(), "libMissing.so"))

	var fn symbols.StepWorldFunc
	err := lib.Bind(symbols.StepWorld, &fn)
	if !errors.Is(err, &shimerrors.Error{Phase: shimerrors.PhaseResolve, Kind: shimerrors.KindNotFound}) {
		t.Fatalf("Bind error = %v, want resolve/not_found", err)
	}
	if fn != nil {
		t.Error("fn should stay nil")
	}

	table := symbols.Resolve(lib)
	if table.BoundCount() != 0 {
		t.Errorf("BoundCount = %d, want 0", table.BoundCount())
	}
	if _, err := table.AllocateWorld().Func(); !errors.Is(err, shimerrors.ErrUnbound) {
		t.Errorf("Func error = %v, want ErrUnbound", err)
	}
}

func TestToken_NonNull(t *testing.T) {
	lib, _ := Open(filepath.Join(t.TempDir(), "libMissing.so"))
	if lib.Token().IsNull() {
		t.Fatal("token must be non-null")
	}
	other, _ := Open(filepath.Join(t.TempDir(), "libOther.so"))
	if lib.Token() != other.Token() {
		t.Error("token should be stable across libraries")
	}
}

func TestDefaultModule(t *testing.T) {
	if DefaultModule() == "" {
		t.Fatal("DefaultModule should not be empty")
	}
}
