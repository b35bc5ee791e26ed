package actions

import (
	"github.com/skosovsky/toolgen/ir"
	"github.com/skosovsky/toolgen/schemadef"
)

// Synthesize produces a sync and a stream Spec for every imported function, in import
// order. A function imported more than once keeps its first import; later ones are
// dropped silently. Types are rendered with q (nil means ir.Local).
func Synthesize(def *schemadef.Definition, imports []Import, m *ir.Mapper, q ir.Qualifier) ([]Spec, []ir.Warning, error) {
	if m == nil {
		m = ir.NewMapper(def)
	}
	var (
		specs    []Spec
		warnings []ir.Warning
		seen     = make(map[string]bool)
		owners   = make(map[string]string) // action name -> function
	)
	for _, imp := range imports {
		if seen[imp.Function] {
			continue
		}
		var fn *schemadef.FunctionDef
		if def != nil {
			fn = def.Functions[imp.Function]
		}
		if fn == nil {
			return nil, nil, &UnknownFunctionError{Function: imp.Function}
		}
		name := ir.Snake(fn.Name)
		for _, n := range []string{name, name + StreamSuffix} {
			if prev, ok := owners[n]; ok {
				return nil, nil, &DuplicateActionError{Name: n, First: prev, Second: fn.Name}
			}
		}
		seen[imp.Function] = true
		owners[name] = fn.Name
		owners[name+StreamSuffix] = fn.Name

		args, argWarnings := mapArgs(fn, m, q)
		ret, retWarnings := m.MapField(fn.Name, "", fn.Returns, false)
		warnings = append(warnings, argWarnings...)
		warnings = append(warnings, retWarnings...)
		goType := ir.GoType(ret, q)
		params := ParamSchema(args, fn.Description, def, m)

		syncSpec := Spec{
			Name:        name,
			Function:    fn.Name,
			Description: fn.Description,
			Args:        args,
			Return:      Return{Type: ret, GoType: goType},
			Tag:         TagSync,
			Binding:     Binding{Kind: CallFunction, Function: fn.Name, Module: imp.Module, Options: imp.Options},
			Parameters:  params,
		}
		streaming := syncSpec
		streaming.Name = name + StreamSuffix
		streaming.Args = append([]Arg(nil), args...)
		streaming.Return = Return{Type: ret, GoType: "*stream.Handle[" + goType + "]", Stream: true}
		streaming.Tag = TagStream
		streaming.Binding.Kind = CallFunctionStreaming
		specs = append(specs, syncSpec, streaming)
	}
	return specs, warnings, nil
}

func mapArgs(fn *schemadef.FunctionDef, m *ir.Mapper, q ir.Qualifier) ([]Arg, []ir.Warning) {
	args := make([]Arg, 0, len(fn.Params))
	var warnings []ir.Warning
	for _, p := range fn.Params {
		t, w := m.MapField(fn.Name, p.Name, p.Type, p.Optional)
		warnings = append(warnings, w...)
		args = append(args, Arg{
			Name:        p.Name,
			Type:        t,
			GoType:      ir.GoType(t, q),
			Nullable:    ir.IsNullable(t),
			Description: p.Description,
		})
	}
	return args, warnings
}
