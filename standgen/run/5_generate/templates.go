package generate

import (
	"bytes"
	"fmt"
	"text/template"
)

// TemplateRegistry holds all parsed text templates for code generation.
// Create a registry using NewTemplateRegistry() to initialize all templates.
type TemplateRegistry struct {
	headerTmpl    *template.Template
	structTmpl    *template.Template
	methodTmpl    *template.Template
	accessorsTmpl *template.Template
	registerTmpl  *template.Template
}

// NewTemplateRegistry creates and initializes a new template registry with all templates parsed.
// Templates are hardcoded constants, so parsing cannot fail at runtime.
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		headerTmpl:    parseTemplate("header", tmplHeader),
		structTmpl:    parseTemplate("struct", tmplStruct),
		methodTmpl:    parseTemplate("method", tmplMethod),
		accessorsTmpl: parseTemplate("accessors", tmplAccessors),
		registerTmpl:  parseTemplate("register", tmplRegister),
	}
}

// WriteAccessors writes the router accessor methods.
func (r *TemplateRegistry) WriteAccessors(buf *bytes.Buffer, data any) {
	execute(r.accessorsTmpl, buf, data)
}

// WriteHeader writes the generated-code banner, package clause and imports.
func (r *TemplateRegistry) WriteHeader(buf *bytes.Buffer, data any) {
	execute(r.headerTmpl, buf, data)
}

// WriteMethod writes one forwarding method.
func (r *TemplateRegistry) WriteMethod(buf *bytes.Buffer, data any) {
	execute(r.methodTmpl, buf, data)
}

// WriteRegister writes the interface assertion and the init registration.
func (r *TemplateRegistry) WriteRegister(buf *bytes.Buffer, data any) {
	execute(r.registerTmpl, buf, data)
}

// WriteStruct writes the stand-in struct.
func (r *TemplateRegistry) WriteStruct(buf *bytes.Buffer, data any) {
	execute(r.structTmpl, buf, data)
}

// unexported constants.
const (
	tmplAccessors = `
// SetStandInRouter attaches the router that handles every call.
func (s *{{.StandInName}}) SetStandInRouter(r *{{.PkgStandin}}.Router) {
	s.router = r
}

// StandInRouter returns the router that handles every call.
func (s *{{.StandInName}}) StandInRouter() *{{.PkgStandin}}.Router {
	return s.router
}
`
	tmplHeader = `// Code generated by standgen. DO NOT EDIT.

package {{.PkgName}}

import (
{{- range .Imports}}
	{{.Alias}} "{{.Path}}"
{{- end}}
)
`
	tmplMethod = `
func (s *{{.StandInName}}) {{.Name}}({{.Params}}){{if .Results}} {{.Results}}{{end}} {
{{- if .ResultTypes}}
	out := s.router.Route("{{.Name}}"{{range .Args}}, {{.}}{{end}})

	return {{range $i, $t := .ResultTypes}}{{if $i}}, {{end}}{{$.PkgStandin}}.Result[{{$t}}](out, {{$i}}){{end}}
{{- else}}
	s.router.Route("{{.Name}}"{{range .Args}}, {{.}}{{end}})
{{- end}}
}
`
	tmplRegister = `
var _ {{.Target}} = (*{{.StandInName}})(nil)

func init() {
	{{.PkgStandin}}.Register[{{.Target}}](func() {{.PkgStandin}}.StandIn { return &{{.StandInName}}{} })
}
`
	tmplStruct = `
// {{.StandInName}} stands in for {{.Target}}. Create one with {{.PkgStandin}}.Mock or {{.PkgStandin}}.Spy.
type {{.StandInName}} struct {
	router *{{.PkgStandin}}.Router
}
`
)

func execute(tmpl *template.Template, buf *bytes.Buffer, data any) {
	err := tmpl.Execute(buf, data)
	if err != nil {
		panic(fmt.Sprintf("failed to execute %s template: %v", tmpl.Name(), err))
	}
}

// parseTemplate is a helper function that parses a template using template.Must().
// Templates are hardcoded constants, so parsing cannot fail at runtime.
// Panics if the template is invalid (programming error, caught at startup).
func parseTemplate(name, content string) *template.Template {
	return template.Must(template.New(name).Parse(content))
}
