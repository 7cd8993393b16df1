// Command hpinspect reports which entry points a physics module exports and
// whether they match the shim's signatures.
//
//	hpinspect                              # platform default native module
//	hpinspect -backend wasm -module physics.wasm
//	hpinspect -handshake                   # also run UnityPluginLoad
//	hpinspect -i                           # interactive view
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/physics-shim/config"
	"github.com/wippyai/physics-shim/loader/native"
	"github.com/wippyai/physics-shim/loader/wasm"
	"github.com/wippyai/physics-shim/relay"
)

func main() {
	var (
		configFile  = flag.String("config", "", "HCL config file (default $HP_SHIM_CONFIG)")
		module      = flag.String("module", "", "Module to open (overrides config)")
		backend     = flag.String("backend", "", "Loader backend: native, wasm or static (overrides config)")
		logLevel    = flag.String("log", "", "Log level (overrides config)")
		handshake   = flag.Bool("handshake", false, "Run the load entry point and query the unlock state")
		plain       = flag.Bool("plain", false, "Plain output even on a terminal")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	cfg, err := loadConfig(*configFile, *module, *backend, *logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	if *interactive {
		// Log lines would tear the alt screen.
		logger = zap.NewNop()
	}
	relay.SetLogger(logger.Named("relay"))
	native.SetLogger(logger.Named("native"))
	wasm.SetLogger(logger.Named("wasm"))

	if *interactive {
		if err := runInteractive(cfg, *handshake); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	in, err := inspect(context.Background(), cfg, nil, *handshake)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !*plain && term.IsTerminal(int(os.Stdout.Fd())) {
		renderStyled(os.Stdout, in)
	} else {
		renderPlain(os.Stdout, in)
	}

	if in.boundCount() < len(in.slots) {
		os.Exit(2)
	}
}

func loadConfig(path, module, backend, logLevel string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if module != "" {
		cfg.Module = module
	}
	if backend != "" {
		cfg.Backend = backend
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
