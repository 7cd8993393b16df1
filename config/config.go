// Package config resolves which module the shim opens and how.
//
// Values come from three layers, later ones winning: built-in defaults, an
// optional HCL file, then HP_SHIM_* environment variables.
//
//	module          = "HavokNative.wasm"
//	backend         = "wasm"
//	log_level       = "debug"
//	wasm_token_addr = 16
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/wippyai/physics-shim/errors"
	"github.com/wippyai/physics-shim/loader/native"
	"github.com/wippyai/physics-shim/loader/wasm"
)

// Loader backends.
const (
	BackendNative = "native"
	BackendWasm   = "wasm"
	BackendStatic = "static"
)

// DefaultWasmModule is opened by the wasm backend when no module is configured.
const DefaultWasmModule = "HavokNative.wasm"

// DefaultStaticModule names the linked-in module in logs.
const DefaultStaticModule = "linked"

// Config is the resolved shim configuration.
type Config struct {
	Module               string `hcl:"module,optional" env:"HP_SHIM_MODULE"`
	Backend              string `hcl:"backend,optional" env:"HP_SHIM_BACKEND"`
	LogLevel             string `hcl:"log_level,optional" env:"HP_SHIM_LOG_LEVEL"`
	WasmTokenAddr        uint32 `hcl:"wasm_token_addr,optional" env:"HP_SHIM_WASM_TOKEN_ADDR"`
	WasmMemoryLimitPages uint32 `hcl:"wasm_memory_limit_pages,optional" env:"HP_SHIM_WASM_MEMORY_LIMIT_PAGES"`
}

type fileEnv struct {
	Path string `env:"HP_SHIM_CONFIG"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Backend:       BackendNative,
		LogLevel:      "info",
		WasmTokenAddr: wasm.DefaultTokenAddr,
	}
}

// Load builds a Config from defaults, the HCL file at path and the
// environment. An empty path falls back to HP_SHIM_CONFIG; if that is unset
// too, no file is read.
func Load(path string) (*Config, error) {
	if path == "" {
		var fe fileEnv
		if err := env.Parse(&fe); err != nil {
			return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "parse env")
		}
		path = fe.Path
	}

	cfg := Default()
	if path != "" {
		if err := cfg.decodeFile(path); err != nil {
			return nil, err
		}
	}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "parse env")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decodeFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(errors.PhaseConfig, errors.KindNotFound, err, "read "+path)
	}
	return c.decode(src, path)
}

func (c *Config) decode(src []byte, filename string) error {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return errors.Wrap(errors.PhaseConfig, errors.KindInvalidData, diags, "parse "+filename)
	}
	if diags := gohcl.DecodeBody(file.Body, nil, c); diags.HasErrors() {
		return errors.Wrap(errors.PhaseConfig, errors.KindInvalidData, diags, "decode "+filename)
	}
	return nil
}

// Validate rejects unknown backends, unknown log levels and a null token address.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendNative, BackendWasm, BackendStatic:
	default:
		return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Value(c.Backend).
			Detail("unknown backend %q", c.Backend).
			Build()
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "log_level")
	}
	if c.WasmTokenAddr == 0 {
		return errors.InvalidInput(errors.PhaseConfig, "wasm_token_addr must be non-zero")
	}
	return nil
}

// ModuleName returns the configured module, or the backend's default.
func (c *Config) ModuleName() string {
	if c.Module != "" {
		return c.Module
	}
	switch c.Backend {
	case BackendWasm:
		return DefaultWasmModule
	case BackendStatic:
		return DefaultStaticModule
	default:
		return native.DefaultModule()
	}
}

// String renders the effective configuration on one line.
func (c *Config) String() string {
	return fmt.Sprintf("backend=%s module=%s log_level=%s", c.Backend, c.ModuleName(), c.LogLevel)
}
