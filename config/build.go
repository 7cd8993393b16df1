package config

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	physicsshim "github.com/wippyai/physics-shim"
	"github.com/wippyai/physics-shim/errors"
	"github.com/wippyai/physics-shim/loader/native"
	"github.com/wippyai/physics-shim/loader/static"
	"github.com/wippyai/physics-shim/loader/wasm"
)

// NewLoader returns the loader for c.Backend. linked supplies the exports of
// the static backend and is ignored by the others. The wasm loader owns a
// runtime; callers that are done with it may release it through its Close
// method.
func NewLoader(ctx context.Context, c *Config, linked static.Exports) (physicsshim.Loader, error) {
	switch c.Backend {
	case BackendNative:
		return native.NewLoader(), nil
	case BackendWasm:
		l, err := wasm.NewLoader(ctx, &wasm.Config{
			TokenAddr:        c.WasmTokenAddr,
			MemoryLimitPages: c.WasmMemoryLimitPages,
		})
		if err != nil {
			return nil, err
		}
		return l, nil
	case BackendStatic:
		return static.Loader(static.New(linked)), nil
	default:
		return nil, errors.Unsupported(errors.PhaseConfig, "backend "+c.Backend)
	}
}

// NewLogger builds a production zap logger at c.LogLevel, writing to stderr.
func NewLogger(c *Config) (*zap.Logger, error) {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "log_level")
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.DisableStacktrace = true
	return zc.Build()
}

func parseLevel(s string) (zapcore.Level, error) {
	if s == "" {
		return zapcore.InfoLevel, nil
	}
	return zapcore.ParseLevel(s)
}
