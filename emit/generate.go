package emit

import (
	"github.com/skosovsky/toolgen/ir"
	"github.com/skosovsky/toolgen/schemadef"
)

// Modules builds the generated modules for every class and enum in def: classes first, then
// enums, each sorted by name. Degraded field types are reported as warnings.
func Modules(def *schemadef.Definition, m *ir.Mapper, pkg string) ([]*Module, []ir.Warning, error) {
	if m == nil {
		m = ir.NewMapper(def)
	}
	if err := ir.DetectClassCycles(def, m); err != nil {
		return nil, nil, err
	}
	source := def.SourceLabel()
	var (
		mods     []*Module
		warnings []ir.Warning
	)
	for _, name := range def.ClassNames() {
		cd := def.Classes[name]
		mod := &Module{
			Name:        name,
			Package:     packageName(pkg),
			Kind:        KindStruct,
			Description: cd.Description,
			Provenance:  source,
			Fields:      make([]Field, 0, len(cd.Fields)),
		}
		for _, f := range cd.Fields {
			t, warns := m.MapField(name, f.Name, f.Type, f.Optional)
			warnings = append(warnings, warns...)
			mod.Fields = append(mod.Fields, Field{Name: f.Name, Type: t, Description: f.Description})
		}
		mods = append(mods, mod)
	}
	for _, name := range def.EnumNames() {
		ed := def.Enums[name]
		mods = append(mods, &Module{
			Name:        name,
			Package:     packageName(pkg),
			Kind:        KindEnum,
			Description: ed.Description,
			Variants:    NewVariants(ed.Values),
			Provenance:  source,
		})
	}
	return mods, warnings, nil
}

// Generate emits one Unit per generated module. Declarations that would share a file name
// or a package-level identifier are rejected with a *CollisionError before anything is
// emitted.
func Generate(def *schemadef.Definition, m *ir.Mapper, pkg string) ([]Unit, []ir.Warning, error) {
	mods, warnings, err := Modules(def, m, pkg)
	if err != nil {
		return nil, nil, err
	}
	if err := checkCollisions(mods); err != nil {
		return nil, nil, err
	}
	units := make([]Unit, 0, len(mods))
	for _, mod := range mods {
		file := mod.FileName()
		src, err := Emit(mod)
		if err != nil {
			return nil, nil, err
		}
		units = append(units, Unit{FileName: file, Module: mod, Source: src})
	}
	return units, warnings, nil
}

func checkCollisions(mods []*Module) error {
	files := make(map[string]string, len(mods))
	idents := make(map[string]string)
	for _, mod := range mods {
		decls := mod.Declarations()
		file := mod.FileName()
		if prev, dup := files[file]; dup {
			return &CollisionError{Name: file, First: prev, Second: decls[0].Origin}
		}
		files[file] = decls[0].Origin
		for _, d := range decls {
			if prev, dup := idents[d.Ident]; dup {
				return &CollisionError{Name: d.Ident, First: prev, Second: d.Origin}
			}
			idents[d.Ident] = d.Origin
		}
	}
	return nil
}
