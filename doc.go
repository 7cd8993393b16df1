// Package physicsshim is a late-binding relay for a native physics plugin.
//
// A host links a fixed set of entry points unconditionally. This module
// resolves each entry point against a separately shipped implementation at
// runtime and forwards calls to it unchanged.
//
// # Architecture Overview
//
//	physicsshim/        Root package with pass-through value types and loader interfaces
//	├── symbols/        Canonical names, typed signatures and the symbol table
//	├── loader/native/  dlopen/LoadLibrary backend (purego)
//	├── loader/wasm/    WebAssembly module backend (wazero)
//	├── loader/static/  Direct-link backend for builds without late binding
//	├── relay/          Handshake and forwarding dispatch
//	├── config/         Environment and HCL configuration
//	├── errors/         Structured error types
//	└── cmd/            C ABI surface (hpshim) and inspector (hpinspect)
//
// # Quick Start
//
//	shim := relay.New(native.NewLoader(), native.DefaultModule())
//	if err := shim.Initialize(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	world, err := shim.AllocateWorld(configPtr, stepContextPtr)
//	if err != nil {
//	    // the module does not export HP_AllocateWorld
//	}
//
// # Opaque Values
//
// Pointers and buffers are relayed as raw values. The shim never reads,
// copies or retains the memory they describe; layout and lifetime belong to
// the caller and the loaded module.
//
// # Thread Safety
//
// The symbol table is written once during Initialize and is read-only
// afterwards. Forwarding calls are as reentrant as the loaded module is.
package physicsshim
