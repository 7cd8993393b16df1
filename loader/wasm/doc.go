// Package wasm loads the physics module as a WebAssembly core module.
//
// The module runs inside a wazero runtime and must export the canonical
// entry points with their wasm32 core signatures:
//
//	HP_AllocateWorld      (i32, i32) -> i32
//	HP_SyncWorldIn        (i32, i32 x 12)
//	HP_StepVisualDebugger (i32, f32, i32)
//	HP_CheckCompatibility (i32) -> i32      ;; bool
//	UnityPluginLoad       (i32)
//
// Each export is checked against the WIT signature from the symbols package
// before it is bound. A mismatched export stays unbound.
//
// # Pointers
//
// Pointers are guest linear-memory addresses. The host is responsible for
// placing records in guest memory; this package relays the addresses
// unchanged. An address that does not fit in 32 bits, or a trap inside the
// guest, aborts the call with a panic carrying *errors.Error (kind
// out_of_bounds or trap). The relay package turns those into returned errors.
//
// # Thread Safety
//
// A Library serializes nothing. Guest code is single-threaded; callers must
// not forward calls into the same module from multiple goroutines at once.
package wasm
