// Package relay performs the one-time handshake with the physics module and
// forwards every host call to it unchanged.
//
// A Shim is the owned context object for one module. It is created once,
// initialized once and then shared by everything that issues forwarding
// calls:
//
//	shim := relay.New(native.NewLoader(), native.DefaultModule())
//	if err := shim.Initialize(ctx); err != nil {
//	    return err // handshake trapped; a missing module is not an error
//	}
//	world, err := shim.AllocateWorld(cfg, stepCtx)
//
// # Lifecycle
//
//	Unloaded --Initialize--> Loading --resolve all symbols--> Bound
//
// Initialize opens the module, binds every slot and calls UnityPluginLoad
// with a non-null token. A missing module or missing symbol does not fail
// Initialize: the affected slots stay unbound and each forwarding call
// against them returns an error matching errors.ErrUnbound. Calling
// Initialize again is a no-op that returns the first outcome.
//
// Initialize must complete before forwarding calls are made. The shim does
// not enforce that ordering beyond returning errors.ErrNotInitialized when
// no table exists yet.
//
// # Forwarding
//
// Forwarding methods pass their arguments in declaration order, buffers
// expanded to (ptr, count, stride), and return the module's result as is.
// They do not validate, copy, log, cache or retry.
package relay
