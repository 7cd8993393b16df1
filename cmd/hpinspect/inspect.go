package main

import (
	"context"

	"github.com/wippyai/physics-shim/config"
	"github.com/wippyai/physics-shim/loader/static"
	"github.com/wippyai/physics-shim/relay"
	"github.com/wippyai/physics-shim/symbols"
)

type inspection struct {
	loadErr   error
	initErr   error
	unlockErr error
	unlocked  *bool
	module    string
	backend   string
	slots     []slotInfo
	handshake bool
}

type slotInfo struct {
	err   error
	sig   symbols.Signature
	bound bool
}

func (in *inspection) boundCount() int {
	n := 0
	for _, s := range in.slots {
		if s.bound {
			n++
		}
	}
	return n
}

type closer interface {
	Close(ctx context.Context) error
}

// inspect opens the configured module and resolves every entry point. With
// handshake set it also runs the load entry point and queries the unlock
// state, which executes module code.
func inspect(ctx context.Context, cfg *config.Config, linked static.Exports, handshake bool) (*inspection, error) {
	loader, err := config.NewLoader(ctx, cfg, linked)
	if err != nil {
		return nil, err
	}
	if c, ok := loader.(closer); ok {
		defer c.Close(ctx)
	}

	in := &inspection{
		module:    cfg.ModuleName(),
		backend:   cfg.Backend,
		handshake: handshake,
	}

	var table *symbols.Table
	if handshake {
		shim := relay.New(loader, in.module)
		in.initErr = shim.Initialize(ctx)
		in.loadErr = shim.LoadErr()
		table = shim.Table()

		unlocked, err := shim.IsPluginUnlocked()
		if err != nil {
			in.unlockErr = err
		} else {
			in.unlocked = &unlocked
		}
	} else {
		lib, err := loader.Open(ctx, in.module)
		in.loadErr = err
		table = symbols.Resolve(lib)
	}

	for _, st := range table.Report() {
		sig, _ := symbols.SignatureOf(st.Name)
		in.slots = append(in.slots, slotInfo{sig: sig, bound: st.Bound, err: st.Err})
	}
	return in, nil
}
