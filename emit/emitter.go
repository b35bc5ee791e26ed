package emit

import (
	"bytes"
	"fmt"
	"go/format"
	"strings"

	"github.com/skosovsky/toolgen/ir"
)

const generatedHeader = "// Code generated by toolgen. DO NOT EDIT."

// EmitStruct renders a struct declaration with fields in the given order.
func EmitStruct(name string, fields []Field, targetPackage, source string) ([]byte, error) {
	return Emit(&Module{
		Name:       name,
		Package:    targetPackage,
		Kind:       KindStruct,
		Fields:     fields,
		Provenance: source,
	})
}

// EmitEnum renders a string enum from schema-declared variant names in the given order.
func EmitEnum(name string, variants []string, targetPackage, source string) ([]byte, error) {
	return Emit(&Module{
		Name:       name,
		Package:    targetPackage,
		Kind:       KindEnum,
		Variants:   NewVariants(variants),
		Provenance: source,
	})
}

// Emit renders m and formats the result with go/format.
func Emit(m *Module) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(generatedHeader + "\n")
	fmt.Fprintf(&buf, "// Source: %s\n\n", provenance(m.Provenance))
	fmt.Fprintf(&buf, "package %s\n\n", packageName(m.Package))

	var err error
	switch m.Kind {
	case KindStruct:
		err = writeStruct(&buf, m)
	case KindEnum:
		err = writeEnum(&buf, m)
	default:
		err = fmt.Errorf("module %s: unknown kind %q", m.Name, m.Kind)
	}
	if err != nil {
		return nil, err
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", m.Name, err)
	}
	return src, nil
}

func writeStruct(buf *bytes.Buffer, m *Module) error {
	typeName := m.TypeName()
	writeDoc(buf, "", typeName, m.Description, "is generated from class "+m.Name+".")
	fmt.Fprintf(buf, "type %s struct {\n", typeName)
	seen := make(map[string]string, len(m.Fields))
	for _, f := range m.Fields {
		goName := ir.Pascal(f.Name)
		if prev, dup := seen[goName]; dup {
			return fmt.Errorf("class %s: fields %q and %q both map to %s", m.Name, prev, f.Name, goName)
		}
		seen[goName] = f.Name
		writeComment(buf, "\t", f.Description)
		tag := f.Name
		if ir.IsNullable(f.Type) {
			tag += ",omitempty"
		}
		fmt.Fprintf(buf, "\t%s %s `json:%q`\n", goName, ir.GoType(f.Type, ir.Local), tag)
	}
	buf.WriteString("}\n")
	return nil
}

func writeEnum(buf *bytes.Buffer, m *Module) error {
	typeName := m.TypeName()
	writeDoc(buf, "", typeName, m.Description, "is generated from enum "+m.Name+".")
	fmt.Fprintf(buf, "type %s string\n\n", typeName)

	consts := make([]string, 0, len(m.Variants))
	seen := make(map[string]string, len(m.Variants))
	buf.WriteString("const (\n")
	for _, v := range m.Variants {
		name := constName(typeName, v)
		if prev, dup := seen[name]; dup {
			return fmt.Errorf("enum %s: variants %q and %q both map to %s", m.Name, prev, v.Original, name)
		}
		seen[name] = v.Original
		consts = append(consts, name)
		fmt.Fprintf(buf, "\t// %s — %s\n", v.Name, v.Original)
		fmt.Fprintf(buf, "\t%s %s = %q\n", name, typeName, v.Original)
	}
	buf.WriteString(")\n\n")

	fmt.Fprintf(buf, "// %sValues lists every %s in declaration order.\n", typeName, typeName)
	fmt.Fprintf(buf, "func %sValues() []%s {\n\treturn []%s{%s}\n}\n\n", typeName, typeName, typeName, strings.Join(consts, ", "))

	fmt.Fprintf(buf, "// IsValid reports whether v is a declared %s.\n", typeName)
	fmt.Fprintf(buf, "func (v %s) IsValid() bool {\n", typeName)
	if len(consts) > 0 {
		fmt.Fprintf(buf, "\tswitch v {\n\tcase %s:\n\t\treturn true\n\t}\n", strings.Join(consts, ", "))
	}
	buf.WriteString("\treturn false\n}\n")
	return nil
}

// writeDoc writes a declaration comment starting with the identifier, using fallback
// when the schema carries no description.
func writeDoc(buf *bytes.Buffer, indent, ident, description, fallback string) {
	if strings.TrimSpace(description) == "" {
		fmt.Fprintf(buf, "%s// %s %s\n", indent, ident, fallback)
		return
	}
	writeComment(buf, indent, ident+": "+description)
}

// writeComment writes text as line comments; empty text writes nothing.
func writeComment(buf *bytes.Buffer, indent, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	for line := range strings.SplitSeq(text, "\n") {
		line = strings.TrimRight(line, " \t\r")
		if line == "" {
			fmt.Fprintf(buf, "%s//\n", indent)
			continue
		}
		fmt.Fprintf(buf, "%s// %s\n", indent, line)
	}
}
