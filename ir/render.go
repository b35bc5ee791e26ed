package ir

// Qualifier turns a schema class or enum name into the Go identifier used to reference the
// generated type, including any package qualifier.
type Qualifier func(name string) string

// Local references generated types from inside their own package.
func Local(name string) string { return TypeName(name) }

// Qualified references generated types from another package named pkg.
func Qualified(pkg string) Qualifier {
	if pkg == "" {
		return Local
	}
	return func(name string) string { return pkg + "." + TypeName(name) }
}

// TypeName is the exported Go identifier generated for a schema class or enum.
func TypeName(name string) string { return Pascal(name) }

// GoType renders t as a Go type expression. Optional renders as a pointer, List as a slice
// and Unknown as any. A nil Qualifier means Local.
func GoType(t FieldType, q Qualifier) string {
	if q == nil {
		q = Local
	}
	switch v := t.(type) {
	case Primitive:
		switch v.Kind {
		case PrimString:
			return "string"
		case PrimInt:
			return "int64"
		case PrimFloat:
			return "float64"
		case PrimBool:
			return "bool"
		}
		return "any"
	case Optional:
		inner := GoType(v.Inner, q)
		if inner == "any" {
			return "any"
		}
		return "*" + inner
	case List:
		return "[]" + GoType(v.Inner, q)
	case ClassRef:
		if v.Name != "" {
			return q(v.Name)
		}
	case EnumRef:
		if v.Name != "" {
			return q(v.Name)
		}
	}
	return "any"
}

// Describe renders t as a phrase, e.g. "nullable array of Item".
func Describe(t FieldType) string {
	switch v := t.(type) {
	case Primitive:
		switch v.Kind {
		case PrimString:
			return "string"
		case PrimInt:
			return "integer"
		case PrimFloat:
			return "float"
		case PrimBool:
			return "boolean"
		}
		return "any"
	case Optional:
		return "nullable " + Describe(v.Inner)
	case List:
		return "array of " + Describe(v.Inner)
	case ClassRef:
		if v.Name != "" {
			return v.Name
		}
	case EnumRef:
		if v.Name != "" {
			return v.Name
		}
	case Unknown:
		if v.Tag == "" {
			return "any"
		}
		return "any (" + v.Tag + ")"
	}
	return "any"
}
