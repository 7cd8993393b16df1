package wasm

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"go.uber.org/zap"

	physicsshim "github.com/wippyai/physics-shim"
	"github.com/wippyai/physics-shim/errors"
)

// DefaultTokenAddr is the guest address handed to UnityPluginLoad.
// It is non-null and never dereferenced by the shim.
const DefaultTokenAddr uint32 = 8

// Config holds configuration for the wasm loader
type Config struct {
	// MemoryLimitPages sets the maximum memory per module in pages (64KB each).
	// 0 means the wazero default.
	MemoryLimitPages uint32

	// TokenAddr overrides DefaultTokenAddr. Zero means default.
	TokenAddr uint32

	// DisableWASI skips instantiating wasi_snapshot_preview1 for modules
	// that do not import it.
	DisableWASI bool
}

// Loader compiles and instantiates wasm modules in a shared wazero runtime.
type Loader struct {
	runtime wazero.Runtime
	cfg     Config
}

// NewLoader creates a loader with its own wazero runtime.
func NewLoader(ctx context.Context, cfg *Config) (*Loader, error) {
	var c Config
	if cfg != nil {
		c = *cfg
	}

	runtimeCfg := wazero.NewRuntimeConfig()
	if c.MemoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(c.MemoryLimitPages)
	}
	rt := wazero.NewRuntimeWithConfig(ctx, runtimeCfg)

	if !c.DisableWASI {
		if _, err := wasi_snapshot_preview1.Instantiate(ctx, rt); err != nil {
			_ = rt.Close(ctx)
			return nil, errors.Wrap(errors.PhaseLoad, errors.KindInvalidData, err, "instantiate WASI")
		}
	}

	return &Loader{runtime: rt, cfg: c}, nil
}

// Runtime exposes the underlying wazero runtime, e.g. to register host modules
// the physics module imports.
func (l *Loader) Runtime() wazero.Runtime {
	return l.runtime
}

// Close releases the runtime and every module opened through it.
func (l *Loader) Close(ctx context.Context) error {
	return l.runtime.Close(ctx)
}

// Open reads, compiles and instantiates the module at path. On failure the
// returned Library is null and the error describes why.
func (l *Loader) Open(ctx context.Context, path string) (physicsshim.Library, error) {
	lib, err := l.open(ctx, path)
	if err != nil {
		Logger().Warn("module not loaded", zap.String("module", path), zap.Error(err))
		return &Library{name: path, loadErr: err, token: l.token()}, err
	}
	Logger().Debug("module loaded", zap.String("module", path))
	return lib, nil
}

func (l *Loader) open(ctx context.Context, path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Load(fmt.Sprintf("read %s", path), err)
	}

	compiled, err := l.runtime.CompileModule(ctx, data)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindInvalidData, err, fmt.Sprintf("compile %s", path))
	}

	modCfg := wazero.NewModuleConfig().
		WithName(moduleName(path)).
		WithStartFunctions("_initialize")

	mod, err := l.runtime.InstantiateModule(ctx, compiled, modCfg)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindInvalidData, err, fmt.Sprintf("instantiate %s", path))
	}

	return &Library{ctx: ctx, mod: mod, name: path, token: l.token()}, nil
}

func (l *Loader) token() uint32 {
	if l.cfg.TokenAddr != 0 {
		return l.cfg.TokenAddr
	}
	return DefaultTokenAddr
}

func moduleName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// FromModule wraps an instantiated module. Calls made through bound
// functions use ctx.
func FromModule(ctx context.Context, mod api.Module, tokenAddr uint32) *Library {
	if tokenAddr == 0 {
		tokenAddr = DefaultTokenAddr
	}
	name := ""
	if mod != nil {
		name = mod.Name()
	}
	return &Library{ctx: ctx, mod: mod, name: name, token: tokenAddr}
}

// Library is an instantiated wasm module, or a null one if loading failed.
type Library struct {
	ctx     context.Context
	mod     api.Module
	loadErr error
	name    string
	token   uint32
}

// Name returns the path or module name the library was created from.
func (l *Library) Name() string {
	return l.name
}

// Null reports whether loading failed.
func (l *Library) Null() bool {
	return l.mod == nil
}

// Token implements physicsshim.Library.
func (l *Library) Token() physicsshim.Ptr {
	return physicsshim.Ptr(l.token)
}
