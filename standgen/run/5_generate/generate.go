// Package generate renders the Go source of a stand-in.
package generate

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"go/token"
	"slices"
	"strings"

	astutil "github.com/toejough/standin/standgen/run/0_util"
	detect "github.com/toejough/standin/standgen/run/3_detect"
)

// StandinImportPath is the import path of the runtime package generated code uses.
const StandinImportPath = "github.com/toejough/standin"

// Info describes one stand-in to generate.
type Info struct {
	PkgName     string // package clause of the generated file
	PkgPath     string // import path of the directory the file is written to
	StandInName string
	Interface   detect.Interface
	Methods     []detect.Method
	Loader      detect.PackageLoader
}

// Exported variables.
var (
	ErrUnexportedMethod = errors.New("unexported method")
	ErrUnexportedType   = errors.New("unexported type")
)

// Code renders and formats the stand-in source.
func Code(info Info) (string, error) {
	gen := newGenerator(info)

	data, err := gen.templateData()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer

	templates := NewTemplateRegistry()
	templates.WriteHeader(&buf, data)
	templates.WriteStruct(&buf, data)

	for _, method := range data.Methods {
		templates.WriteMethod(&buf, method)
	}

	templates.WriteAccessors(&buf, data)
	templates.WriteRegister(&buf, data)

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return "", fmt.Errorf("error formatting generated code: %w", err)
	}

	return string(formatted), nil
}

// unexported constants.
const (
	pkgStandin = "_standin"
)

type generator struct {
	info    Info
	imports *importSet
	errs    []error
}

// importInfo holds information about an import of the generated file.
type importInfo struct {
	Alias string
	Path  string
}

type importSet struct {
	byPath  map[string]string
	aliases map[string]bool
}

type methodData struct {
	StandInName string
	PkgStandin  string
	Name        string
	Params      string
	Args        []string
	Results     string
	ResultTypes []string

	paramTypes []string
}

type templateData struct {
	PkgName     string
	PkgStandin  string
	StandInName string
	Target      string
	Imports     []importInfo
	Methods     []methodData
}

// add returns the alias for path, choosing preferred unless another path took it.
func (s *importSet) add(path, preferred string) string {
	if alias, ok := s.byPath[path]; ok {
		return alias
	}

	alias := preferred
	for i := 2; s.aliases[alias] || token.Lookup(alias).IsKeyword(); i++ {
		alias = fmt.Sprintf("%s%d", preferred, i)
	}

	s.byPath[path] = alias
	s.aliases[alias] = true

	return alias
}

func (s *importSet) sorted() []importInfo {
	out := make([]importInfo, 0, len(s.byPath))
	for path, alias := range s.byPath {
		out = append(out, importInfo{Alias: alias, Path: path})
	}

	slices.SortFunc(out, func(a, b importInfo) int {
		return strings.Compare(a.Path, b.Path)
	})

	return out
}

// formatter renders types declared in home for use in the generated package.
func (gen *generator) formatter(home detect.Home) astutil.TypeFormatter {
	var formatter astutil.TypeFormatter

	if !gen.samePackage(home) {
		formatter.Local = func(name string) string {
			if !token.IsExported(name) {
				gen.errs = append(gen.errs, fmt.Errorf("%w: %s.%s cannot be named from package %s",
					ErrUnexportedType, home.PkgName, name, gen.info.PkgName))
			}

			return gen.imports.add(home.PkgPath, home.PkgName) + "." + name
		}
	}

	formatter.Package = func(alias string) string {
		path, err := detect.FindImportPath(home.Imports, alias, gen.info.Loader)
		if err != nil {
			gen.errs = append(gen.errs, err)

			return alias
		}

		return gen.imports.add(path, alias)
	}

	return formatter
}

func (gen *generator) methodData(method detect.Method) methodData {
	formatter := gen.formatter(method.Home)

	var (
		paramNames []string
		paramTypes []string
	)

	if method.Func.Params != nil {
		for _, field := range method.Func.Params.List {
			typeStr := formatter.Format(field.Type)

			if len(field.Names) == 0 {
				paramNames = append(paramNames, "")
				paramTypes = append(paramTypes, typeStr)

				continue
			}

			for _, name := range field.Names {
				paramNames = append(paramNames, name.Name)
				paramTypes = append(paramTypes, typeStr)
			}
		}
	}

	resultTypes := formatter.FieldTypes(method.Func.Results)

	return methodData{
		StandInName: gen.info.StandInName,
		PkgStandin:  pkgStandin,
		Name:        method.Name,
		Args:        paramNames,
		Results:     resultList(resultTypes),
		ResultTypes: resultTypes,
		paramTypes:  paramTypes,
	}
}

func (gen *generator) samePackage(home detect.Home) bool {
	return home.PkgPath == gen.info.PkgPath && home.PkgName == gen.info.PkgName
}

func (gen *generator) target() string {
	home := gen.info.Interface.Home
	if gen.samePackage(home) {
		return gen.info.Interface.Name
	}

	return gen.imports.add(home.PkgPath, home.PkgName) + "." + gen.info.Interface.Name
}

func (gen *generator) templateData() (templateData, error) {
	target := gen.target()

	methods := make([]methodData, 0, len(gen.info.Methods))

	for _, method := range gen.info.Methods {
		if !token.IsExported(method.Name) && !gen.samePackage(method.Home) {
			return templateData{}, fmt.Errorf("%w: %s.%s cannot be implemented outside package %s",
				ErrUnexportedMethod, gen.info.Interface.Name, method.Name, method.Home.PkgName)
		}

		methods = append(methods, gen.methodData(method))
	}

	if len(gen.errs) > 0 {
		return templateData{}, errors.Join(gen.errs...)
	}

	// Parameter names are settled once every import alias is known.
	for i := range methods {
		methods[i].Args = uniqueParamNames(methods[i].Args, gen.imports.aliases)
		methods[i].Params = joinParams(methods[i].Args, methods[i].paramTypes)
	}

	return templateData{
		PkgName:     gen.info.PkgName,
		PkgStandin:  pkgStandin,
		StandInName: gen.info.StandInName,
		Target:      target,
		Imports:     gen.imports.sorted(),
		Methods:     methods,
	}, nil
}

func joinParams(names, types []string) string {
	parts := make([]string, len(types))

	for i, typeStr := range types {
		if names[i] == "" {
			parts[i] = typeStr

			continue
		}

		parts[i] = names[i] + " " + typeStr
	}

	return strings.Join(parts, ", ")
}

func newGenerator(info Info) *generator {
	imports := &importSet{byPath: make(map[string]string), aliases: make(map[string]bool)}
	imports.add(StandinImportPath, pkgStandin)

	return &generator{info: info, imports: imports}
}

func resultList(types []string) string {
	switch len(types) {
	case 0:
		return ""
	case 1:
		return types[0]
	default:
		return "(" + strings.Join(types, ", ") + ")"
	}
}

// uniqueParamNames names every parameter, replacing blank, missing and
// colliding names with argN.
func uniqueParamNames(names []string, taken map[string]bool) []string {
	out := make([]string, len(names))
	used := map[string]bool{"s": true, "out": true}

	for i, name := range names {
		if name == "" || name == "_" || used[name] || taken[name] {
			name = fmt.Sprintf("arg%d", i)
			for used[name] || taken[name] {
				name += "_"
			}
		}

		used[name] = true
		out[i] = name
	}

	return out
}
