// Command hpshim builds the shim as a C library the host links against.
//
//	go build -buildmode=c-archive -o libhpshim.a ./cmd/hpshim
//	go build -buildmode=c-shared  -o libhpshim.so ./cmd/hpshim
//
// The host calls HP_InitStaticPlugin once, then the HP_* entry points. The
// module to forward to is chosen by the HP_SHIM_* environment (see package
// config); with nothing set it is the platform's native physics library.
// A module override is logged at warn level. The static backend is refused
// here since a C library has no linked exports to offer it.
//
// The C signatures carry no error channel. A call whose entry point is
// unbound returns -1 (int), false (bool) or does nothing (void), and the
// first such call per entry point is logged at error level.
package main

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/physics-shim/config"
	"github.com/wippyai/physics-shim/loader/native"
	"github.com/wippyai/physics-shim/loader/wasm"
	"github.com/wippyai/physics-shim/relay"
)

func main() {}

var (
	setupOnce sync.Once
	shim      *relay.Shim
	logger    = zap.NewNop()
	reported  sync.Map
)

func instance() *relay.Shim {
	setupOnce.Do(setup)
	return shim
}

func setup() {
	cfg, cfgErr := config.Load("")
	if cfgErr != nil {
		cfg = config.Default()
	}
	if l, err := config.NewLogger(cfg); err == nil {
		logger = l.Named("hpshim")
	}

	relay.SetLogger(logger.Named("relay"))
	native.SetLogger(logger.Named("native"))
	wasm.SetLogger(logger.Named("wasm"))

	shim = newShim(context.Background(), cfg, cfgErr)
}

// newShim builds the process-wide shim from cfg. The static backend has no
// linked exports in the C library, so it falls back to the native one.
func newShim(ctx context.Context, cfg *config.Config, cfgErr error) *relay.Shim {
	if cfgErr != nil {
		logger.Error("invalid configuration; using defaults", zap.Error(cfgErr))
	}
	if cfg.Backend == config.BackendStatic {
		logger.Error("static backend is not available in the C library; using native",
			zap.String("backend", cfg.Backend))
		cfg.Backend = config.BackendNative
		cfg.Module = ""
	}
	if cfg.Module != "" {
		logger.Warn("module overridden by configuration",
			zap.String("module", cfg.Module),
			zap.String("backend", cfg.Backend))
	}

	loader, err := config.NewLoader(ctx, cfg, nil)
	if err != nil {
		// relay.Shim treats a missing loader as a missing module.
		logger.Error("create loader", zap.String("backend", cfg.Backend), zap.Error(err))
		loader = nil
	}
	logger.Debug("configured", zap.Stringer("config", cfg))
	return relay.New(loader, cfg.ModuleName())
}

// report logs err the first time name fails.
func report(name string, err error) {
	if _, seen := reported.LoadOrStore(name, struct{}{}); seen {
		return
	}
	logger.Error("entry point unavailable", zap.String("symbol", name), zap.Error(err))
}
