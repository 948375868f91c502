// Package detect finds the interface to stand in for and flattens its method set.
package detect

import (
	"errors"
	"fmt"
	"go/token"
	"path"
	"strings"

	"github.com/dave/dst"
	load "github.com/toejough/standin/standgen/run/2_load"
)

// Home is the package a declaration lives in. Identifiers in its signatures
// resolve against its files and its declaring file's imports.
type Home struct {
	PkgPath string
	PkgName string
	Files   []*dst.File
	Imports []*dst.ImportSpec
}

// Interface is a located interface declaration.
type Interface struct {
	Name string
	Decl *dst.InterfaceType
	Home Home
}

// Method is one method of a flattened interface.
type Method struct {
	Name string
	Func *dst.FuncType
	Home Home
}

// PackageLoader defines an interface for loading Go packages.
type PackageLoader interface {
	Load(importPath string) (load.Package, error)
}

// Exported variables.
var (
	ErrGenericInterface  = errors.New("generic interfaces are not supported")
	ErrInterfaceNotFound = errors.New("interface not found")
	ErrNotAnInterface    = errors.New("not an interface")
	ErrPackageNotFound   = errors.New("package not found in imports")
	ErrUnsupportedEmbed  = errors.New("unsupported embedded type")
)

// FindImportPath returns the import path that alias refers to in imports.
// Imports without an explicit name match on their last path element, then on
// the package clause of the loaded package.
func FindImportPath(imports []*dst.ImportSpec, alias string, loader PackageLoader) (string, error) {
	var unnamed []string

	for _, imp := range imports {
		importPath := strings.Trim(imp.Path.Value, `"`)

		if imp.Name != nil {
			if imp.Name.Name == alias {
				return importPath, nil
			}

			continue
		}

		if path.Base(importPath) == alias {
			return importPath, nil
		}

		unnamed = append(unnamed, importPath)
	}

	// Paths like gopkg.in/yaml.v3 or .../v2 declare a package name that
	// differs from their last element.
	for _, importPath := range unnamed {
		pkg, err := loader.Load(importPath)
		if err == nil && len(pkg.Files) > 0 && pkg.Files[0].Name.Name == alias {
			return importPath, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrPackageNotFound, alias)
}

// FindInterface locates the interface declaration called name. When pkgName is
// not empty only files of that package clause are searched.
func FindInterface(files []*dst.File, name, pkgPath, pkgName string) (Interface, error) {
	for _, file := range files {
		if pkgName != "" && file.Name.Name != pkgName {
			continue
		}

		for _, decl := range file.Decls {
			genDecl, ok := decl.(*dst.GenDecl)
			if !ok || genDecl.Tok != token.TYPE {
				continue
			}

			for _, spec := range genDecl.Specs {
				typeSpec, ok := spec.(*dst.TypeSpec)
				if !ok || typeSpec.Name.Name != name {
					continue
				}

				iface, ok := typeSpec.Type.(*dst.InterfaceType)
				if !ok {
					return Interface{}, fmt.Errorf("%w: %s in package %s is a %s",
						ErrNotAnInterface, name, pkgPath, describeTypeExpr(typeSpec.Type))
				}

				if typeSpec.TypeParams != nil && len(typeSpec.TypeParams.List) > 0 {
					return Interface{}, fmt.Errorf("%w: %s in package %s", ErrGenericInterface, name, pkgPath)
				}

				return Interface{
					Name: name,
					Decl: iface,
					Home: Home{PkgPath: pkgPath, PkgName: file.Name.Name, Files: files, Imports: file.Imports},
				}, nil
			}
		}
	}

	return Interface{}, fmt.Errorf("%w: %s in package %s", ErrInterfaceNotFound, name, pkgPath)
}

// Methods flattens iface's method set, expanding embedded interfaces from the
// same or imported packages. A method reached twice is kept once, first wins.
func Methods(iface Interface, loader PackageLoader) ([]Method, error) {
	var (
		methods []Method
		seen    = make(map[string]bool)
	)

	err := collectMethods(iface, loader, map[string]bool{}, func(m Method) {
		if seen[m.Name] {
			return
		}

		seen[m.Name] = true
		methods = append(methods, m)
	})
	if err != nil {
		return nil, err
	}

	return methods, nil
}

// errorMethod is the method set of the predeclared error interface.
func errorMethod() *dst.FuncType {
	return &dst.FuncType{
		Params:  &dst.FieldList{},
		Results: &dst.FieldList{List: []*dst.Field{{Type: dst.NewIdent("string")}}},
	}
}

func collectMethods(iface Interface, loader PackageLoader, visiting map[string]bool, add func(Method)) error {
	key := iface.Home.PkgPath + "." + iface.Name
	if visiting[key] {
		return nil
	}

	visiting[key] = true
	defer delete(visiting, key)

	if iface.Decl.Methods == nil {
		return nil
	}

	for _, field := range iface.Decl.Methods.List {
		if len(field.Names) == 0 {
			err := expandEmbedded(field.Type, iface.Home, loader, visiting, add)
			if err != nil {
				return fmt.Errorf("in %s: %w", iface.Name, err)
			}

			continue
		}

		fn, ok := field.Type.(*dst.FuncType)
		if !ok {
			continue
		}

		for _, name := range field.Names {
			add(Method{Name: name.Name, Func: fn, Home: iface.Home})
		}
	}

	return nil
}

func describeTypeExpr(expr dst.Expr) string {
	switch expr.(type) {
	case *dst.StructType:
		return "struct"
	case *dst.FuncType:
		return "function type"
	default:
		return fmt.Sprintf("%T", expr)
	}
}

func expandEmbedded(
	expr dst.Expr, home Home, loader PackageLoader, visiting map[string]bool, add func(Method),
) error {
	switch typed := expr.(type) {
	case *dst.Ident:
		switch typed.Name {
		case "error":
			add(Method{Name: "Error", Func: errorMethod(), Home: home})

			return nil
		case "any":
			return nil
		}

		embedded, err := FindInterface(home.Files, typed.Name, home.PkgPath, home.PkgName)
		if err != nil {
			return err
		}

		return collectMethods(embedded, loader, visiting, add)
	case *dst.SelectorExpr:
		pkgIdent, ok := typed.X.(*dst.Ident)
		if !ok {
			return fmt.Errorf("%w: %T", ErrUnsupportedEmbed, typed.X)
		}

		importPath, err := FindImportPath(home.Imports, pkgIdent.Name, loader)
		if err != nil {
			return fmt.Errorf("embedded %s.%s: %w", pkgIdent.Name, typed.Sel.Name, err)
		}

		pkg, err := loader.Load(importPath)
		if err != nil {
			return fmt.Errorf("failed to load package %s for embedded %s.%s: %w",
				importPath, pkgIdent.Name, typed.Sel.Name, err)
		}

		embedded, err := FindInterface(pkg.Files, typed.Sel.Name, importPath, "")
		if err != nil {
			return err
		}

		return collectMethods(embedded, loader, visiting, add)
	default:
		// Unions, ~T terms and comparable only appear in constraint interfaces.
		return fmt.Errorf("%w: %T (constraint interfaces cannot have stand-ins)", ErrUnsupportedEmbed, expr)
	}
}
