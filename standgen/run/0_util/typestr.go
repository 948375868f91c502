// Package astutil renders dst type expressions back to Go source, rewriting
// package references on the way.
package astutil

import (
	"fmt"
	"strings"

	"github.com/dave/dst"
)

// TypeFormatter renders type expressions for use in another package.
type TypeFormatter struct {
	// Local rewrites an identifier declared in the source package, e.g. adding a
	// package qualifier. Nil leaves identifiers unchanged.
	Local func(name string) string
	// Package rewrites the package name of a selector such as io.Reader. Nil
	// leaves package names unchanged.
	Package func(name string) string
}

// Format renders expr as Go source.
//
//nolint:cyclop,funlen // Type-switch dispatcher handling all DST type expressions; complexity is inherent
func (f TypeFormatter) Format(expr dst.Expr) string {
	if expr == nil {
		return ""
	}

	switch typed := expr.(type) {
	case *dst.Ident:
		return f.ident(typed.Name)
	case *dst.BasicLit:
		return typed.Value
	case *dst.SelectorExpr:
		if pkg, ok := typed.X.(*dst.Ident); ok {
			return f.pkg(pkg.Name) + "." + typed.Sel.Name
		}

		return f.Format(typed.X) + "." + typed.Sel.Name
	case *dst.StarExpr:
		return "*" + f.Format(typed.X)
	case *dst.ArrayType:
		if typed.Len != nil {
			return "[" + f.Format(typed.Len) + "]" + f.Format(typed.Elt)
		}

		return "[]" + f.Format(typed.Elt)
	case *dst.MapType:
		return "map[" + f.Format(typed.Key) + "]" + f.Format(typed.Value)
	case *dst.ChanType:
		switch typed.Dir {
		case dst.SEND:
			return "chan<- " + f.Format(typed.Value)
		case dst.RECV:
			return "<-chan " + f.Format(typed.Value)
		default:
			return "chan " + f.Format(typed.Value)
		}
	case *dst.Ellipsis:
		return "..." + f.Format(typed.Elt)
	case *dst.FuncType:
		return "func" + f.Signature(typed)
	case *dst.InterfaceType:
		return f.interfaceType(typed)
	case *dst.StructType:
		return f.structType(typed)
	case *dst.IndexExpr:
		return f.Format(typed.X) + "[" + f.Format(typed.Index) + "]"
	case *dst.IndexListExpr:
		indices := make([]string, len(typed.Indices))
		for i, idx := range typed.Indices {
			indices[i] = f.Format(idx)
		}

		return f.Format(typed.X) + "[" + strings.Join(indices, ", ") + "]"
	case *dst.ParenExpr:
		return "(" + f.Format(typed.X) + ")"
	default:
		return fmt.Sprintf("%T", expr)
	}
}

// FieldTypes renders one type per declared name, so "a, b int" yields two entries.
func (f TypeFormatter) FieldTypes(fields *dst.FieldList) []string {
	if fields == nil {
		return nil
	}

	var out []string

	for _, field := range fields.List {
		typeStr := f.Format(field.Type)

		count := len(field.Names)
		if count == 0 {
			count = 1
		}

		for range count {
			out = append(out, typeStr)
		}
	}

	return out
}

// Signature renders a function type without the func keyword: "(int, string) (bool, error)".
func (f TypeFormatter) Signature(fn *dst.FuncType) string {
	params := "(" + strings.Join(f.FieldTypes(fn.Params), ", ") + ")"

	results := f.FieldTypes(fn.Results)

	switch len(results) {
	case 0:
		return params
	case 1:
		return params + " " + results[0]
	default:
		return params + " (" + strings.Join(results, ", ") + ")"
	}
}

// IsBuiltin reports whether name is a predeclared type.
func IsBuiltin(name string) bool {
	return builtinTypes[name]
}

// unexported variables.
var (
	//nolint:gochecknoglobals // predeclared identifiers never get a package qualifier
	builtinTypes = map[string]bool{
		"any": true, "bool": true, "byte": true, "comparable": true,
		"complex64": true, "complex128": true, "error": true,
		"float32": true, "float64": true,
		"int": true, "int8": true, "int16": true, "int32": true, "int64": true,
		"rune": true, "string": true,
		"uint": true, "uint8": true, "uint16": true, "uint32": true, "uint64": true, "uintptr": true,
	}
)

func (f TypeFormatter) ident(name string) string {
	if f.Local == nil || IsBuiltin(name) {
		return name
	}

	return f.Local(name)
}

func (f TypeFormatter) interfaceType(iface *dst.InterfaceType) string {
	if iface.Methods == nil || len(iface.Methods.List) == 0 {
		return "interface{}"
	}

	parts := make([]string, 0, len(iface.Methods.List))

	for _, field := range iface.Methods.List {
		fn, ok := field.Type.(*dst.FuncType)
		if !ok || len(field.Names) == 0 {
			parts = append(parts, f.Format(field.Type))

			continue
		}

		for _, name := range field.Names {
			parts = append(parts, name.Name+f.Signature(fn))
		}
	}

	return "interface{ " + strings.Join(parts, "; ") + " }"
}

func (f TypeFormatter) pkg(name string) string {
	if f.Package == nil {
		return name
	}

	return f.Package(name)
}

func (f TypeFormatter) structType(st *dst.StructType) string {
	if st.Fields == nil || len(st.Fields.List) == 0 {
		return "struct{}"
	}

	fields := make([]string, 0, len(st.Fields.List))

	for _, field := range st.Fields.List {
		var b strings.Builder

		if len(field.Names) > 0 {
			names := make([]string, len(field.Names))
			for i, name := range field.Names {
				names[i] = name.Name
			}

			b.WriteString(strings.Join(names, ", "))
			b.WriteString(" ")
		}

		b.WriteString(f.Format(field.Type))

		if field.Tag != nil {
			b.WriteString(" ")
			b.WriteString(field.Tag.Value)
		}

		fields = append(fields, b.String())
	}

	return "struct{ " + strings.Join(fields, "; ") + " }"
}
