package symbols

import (
	"strings"

	"go.bytecodealliance.org/wit"
)

// Param is a named parameter of an entry point.
type Param struct {
	Type    wit.Type
	Name    string
	Pointer bool
}

// Signature describes an entry point in WIT primitive types.
// Pointers are u32 addresses when the module is a wasm32 guest and
// pointer-sized otherwise; Param.Pointer marks them.
type Signature struct {
	Name    string
	Params  []Param
	Results []wit.Type
}

func ptr(name string) Param { return Param{Name: name, Type: wit.U32{}, Pointer: true} }
func s32(name string) Param { return Param{Name: name, Type: wit.S32{}} }
func f32(name string) Param { return Param{Name: name, Type: wit.F32{}} }
func buffer(name string) []Param {
	return []Param{ptr(name), s32("num-" + name), s32(name + "-stride")}
}

func params(groups ...[]Param) []Param {
	var out []Param
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

var signatures = []Signature{
	{
		Name:    AllocateWorld,
		Params:  []Param{ptr("config"), ptr("step-context")},
		Results: []wit.Type{wit.S32{}},
	},
	{
		Name:   DestroyWorld,
		Params: []Param{s32("world")},
	},
	{
		Name: SyncWorldIn,
		Params: params(
			[]Param{s32("world")},
			buffer("bodies"),
			buffer("motion-datas"),
			buffer("motion-velocities"),
			buffer("joints"),
		),
	},
	{
		Name: SyncMotionsOut,
		Params: params(
			[]Param{s32("world")},
			buffer("motion-datas"),
			buffer("motion-velocities"),
			[]Param{s32("start-index"), s32("num")},
		),
	},
	{
		Name:   StepWorld,
		Params: []Param{s32("world"), ptr("input"), ptr("step-context")},
	},
	{
		Name:   ProcessStep,
		Params: []Param{ptr("task")},
	},
	{
		Name:   StepVisualDebugger,
		Params: []Param{s32("world"), f32("timestep"), ptr("camera")},
	},
	{
		Name:   InjectContacts,
		Params: []Param{s32("world"), ptr("first-block"), s32("total-num-items"), s32("block-size")},
	},
	{
		Name:    CheckCompatibility,
		Params:  []Param{ptr("type-check-info")},
		Results: []wit.Type{wit.Bool{}},
	},
	{
		Name:    UnlockPlugin,
		Params:  []Param{ptr("token")},
		Results: []wit.Type{wit.Bool{}},
	},
	{
		Name:    IsPluginUnlocked,
		Results: []wit.Type{wit.Bool{}},
	},
	{
		Name:   PluginLoad,
		Params: []Param{ptr("interfaces")},
	},
}

// Signatures returns the signature of every resolved name, in table order.
func Signatures() []Signature {
	out := make([]Signature, len(signatures))
	copy(out, signatures)
	return out
}

// SignatureOf returns the signature registered for name.
func SignatureOf(name string) (Signature, bool) {
	for _, sig := range signatures {
		if sig.Name == name {
			return sig, true
		}
	}
	return Signature{}, false
}

// String renders the signature as name(param: type, ...) -> result.
func (s Signature) String() string {
	var b strings.Builder
	b.WriteString(s.Name)
	b.WriteByte('(')
	for i, p := range s.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Name)
		b.WriteString(": ")
		if p.Pointer {
			b.WriteString("ptr")
		} else {
			b.WriteString(TypeName(p.Type))
		}
	}
	b.WriteByte(')')
	if len(s.Results) > 0 {
		b.WriteString(" -> ")
		b.WriteString(TypeName(s.Results[0]))
	}
	return b.String()
}

// TypeName returns the WIT spelling of a primitive type.
func TypeName(t wit.Type) string {
	switch t.(type) {
	case wit.Bool:
		return "bool"
	case wit.S32:
		return "s32"
	case wit.U32:
		return "u32"
	case wit.S64:
		return "s64"
	case wit.U64:
		return "u64"
	case wit.F32:
		return "f32"
	case wit.F64:
		return "f64"
	default:
		return "unknown"
	}
}
