package wasm

import (
	"fmt"
	"math"
	"reflect"
	"slices"

	"github.com/tetratelabs/wazero/api"
	"go.bytecodealliance.org/wit"

	"github.com/wippyai/physics-shim/errors"
	"github.com/wippyai/physics-shim/symbols"
)

// Bind implements physicsshim.Library.
func (l *Library) Bind(name string, fptr any) error {
	if l.mod == nil {
		return errors.SymbolNotFound(name, l.loadErr)
	}

	target := reflect.ValueOf(fptr)
	if target.Kind() != reflect.Pointer || target.IsNil() || target.Elem().Kind() != reflect.Func {
		return errors.New(errors.PhaseResolve, errors.KindInvalidInput).
			Symbol(name).
			Detail("bind target must be a pointer to a func, got %T", fptr).
			Build()
	}
	ft := target.Elem().Type()

	fn := l.mod.ExportedFunction(name)
	if fn == nil {
		return errors.SymbolNotFound(name, nil)
	}
	def := fn.Definition()

	goParams, goResults, err := goCoreTypes(ft)
	if err != nil {
		return errors.TypeMismatch(name, err.Error())
	}
	if err := matchTypes(name, "Go", goParams, goResults, def.ParamTypes(), def.ResultTypes()); err != nil {
		return err
	}

	if sig, ok := symbols.SignatureOf(name); ok {
		witParams, witResults := witCoreTypes(sig)
		if err := matchTypes(name, "WIT", witParams, witResults, def.ParamTypes(), def.ResultTypes()); err != nil {
			return err
		}
	}

	target.Elem().Set(l.makeFunc(name, ft))
	return nil
}

// makeFunc builds a typed closure that encodes its arguments onto the wasm
// stack in order, calls the export and decodes the single result, if any.
func (l *Library) makeFunc(name string, ft reflect.Type) reflect.Value {
	return reflect.MakeFunc(ft, func(args []reflect.Value) []reflect.Value {
		params := make([]uint64, len(args))
		for i, arg := range args {
			params[i] = encode(name, arg)
		}

		// api.Function is not safe for concurrent calls; look it up per call.
		results, err := l.mod.ExportedFunction(name).Call(l.ctx, params...)
		if err != nil {
			panic(errors.Trap(name, err))
		}

		if ft.NumOut() == 0 {
			return nil
		}
		return []reflect.Value{decode(ft.Out(0), results[0])}
	})
}

func encode(name string, v reflect.Value) uint64 {
	switch v.Kind() {
	case reflect.Int32:
		return api.EncodeI32(int32(v.Int()))
	case reflect.Uint32:
		return api.EncodeU32(uint32(v.Uint()))
	case reflect.Uintptr:
		p := v.Uint()
		if p > math.MaxUint32 {
			panic(errors.OutOfBounds(errors.PhaseDispatch, name, p, "32-bit guest address space"))
		}
		return api.EncodeU32(uint32(p))
	case reflect.Bool:
		if v.Bool() {
			return 1
		}
		return 0
	case reflect.Int64:
		return api.EncodeI64(v.Int())
	case reflect.Uint64:
		return v.Uint()
	case reflect.Float32:
		return api.EncodeF32(float32(v.Float()))
	case reflect.Float64:
		return api.EncodeF64(v.Float())
	}
	// goCoreTypes rejects every other kind at bind time.
	panic(fmt.Sprintf("wasm: unsupported kind %s", v.Kind()))
}

func decode(t reflect.Type, raw uint64) reflect.Value {
	out := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.Int32:
		out.SetInt(int64(api.DecodeI32(raw)))
	case reflect.Uint32:
		out.SetUint(uint64(api.DecodeU32(raw)))
	case reflect.Uintptr:
		out.SetUint(uint64(api.DecodeU32(raw)))
	case reflect.Bool:
		out.SetBool(api.DecodeU32(raw) != 0)
	case reflect.Int64:
		out.SetInt(int64(raw))
	case reflect.Uint64:
		out.SetUint(raw)
	case reflect.Float32:
		out.SetFloat(float64(api.DecodeF32(raw)))
	case reflect.Float64:
		out.SetFloat(api.DecodeF64(raw))
	}
	return out
}

func coreType(k reflect.Kind) (api.ValueType, bool) {
	switch k {
	case reflect.Int32, reflect.Uint32, reflect.Uintptr, reflect.Bool:
		return api.ValueTypeI32, true
	case reflect.Int64, reflect.Uint64:
		return api.ValueTypeI64, true
	case reflect.Float32:
		return api.ValueTypeF32, true
	case reflect.Float64:
		return api.ValueTypeF64, true
	default:
		return 0, false
	}
}

func goCoreTypes(ft reflect.Type) (params, results []api.ValueType, err error) {
	if ft.IsVariadic() {
		return nil, nil, fmt.Errorf("variadic func %s", ft)
	}
	if ft.NumOut() > 1 {
		return nil, nil, fmt.Errorf("func %s has %d results, want at most 1", ft, ft.NumOut())
	}
	for i := 0; i < ft.NumIn(); i++ {
		vt, ok := coreType(ft.In(i).Kind())
		if !ok {
			return nil, nil, fmt.Errorf("param %d: unsupported Go type %s", i, ft.In(i))
		}
		params = append(params, vt)
	}
	for i := 0; i < ft.NumOut(); i++ {
		vt, ok := coreType(ft.Out(i).Kind())
		if !ok {
			return nil, nil, fmt.Errorf("result %d: unsupported Go type %s", i, ft.Out(i))
		}
		results = append(results, vt)
	}
	return params, results, nil
}

// witCoreType flattens a WIT primitive to its wasm32 core type.
func witCoreType(t wit.Type) api.ValueType {
	switch t.(type) {
	case wit.S64, wit.U64:
		return api.ValueTypeI64
	case wit.F32:
		return api.ValueTypeF32
	case wit.F64:
		return api.ValueTypeF64
	default:
		return api.ValueTypeI32
	}
}

func witCoreTypes(sig symbols.Signature) (params, results []api.ValueType) {
	for _, p := range sig.Params {
		params = append(params, witCoreType(p.Type))
	}
	for _, r := range sig.Results {
		results = append(results, witCoreType(r))
	}
	return params, results
}

func matchTypes(name, source string, wantParams, wantResults, gotParams, gotResults []api.ValueType) error {
	if !slices.Equal(wantParams, gotParams) {
		return errors.TypeMismatch(name, fmt.Sprintf("export params %s, %s signature wants %s",
			typeList(gotParams), source, typeList(wantParams)))
	}
	if !slices.Equal(wantResults, gotResults) {
		return errors.TypeMismatch(name, fmt.Sprintf("export results %s, %s signature wants %s",
			typeList(gotResults), source, typeList(wantResults)))
	}
	return nil
}

func typeList(ts []api.ValueType) string {
	s := "("
	for i, t := range ts {
		if i > 0 {
			s += ", "
		}
		s += api.ValueTypeName(t)
	}
	return s + ")"
}
