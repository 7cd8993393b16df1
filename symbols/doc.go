// Package symbols holds the canonical entry point names, their typed Go
// signatures and the symbol table that binds them against a loaded module.
//
// Each forwarded operation owns one Slot. A slot is either bound to a typed
// function reference or unbound with the reason binding failed. Resolve
// binds every slot independently: a name missing from the module leaves
// only its own slot unbound.
//
//	lib, _ := loader.Open(ctx, name) // a missing module still yields a Library
//	table := symbols.Resolve(lib)
//
//	step, err := table.StepWorld().Func()
//	if errors.Is(err, errors.ErrUnbound) {
//	    // module does not export HP_StepWorld
//	}
//
// A Table has no mutators. Once Resolve returns it is safe for concurrent reads.
package symbols
