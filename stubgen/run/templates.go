package run

import (
	"bytes"
	"fmt"
	"text/template"
)

// templateRegistry holds the parsed templates for stub generation.
type templateRegistry struct {
	headerTmpl     *template.Template
	mockStructTmpl *template.Template
	mockMethodTmpl *template.Template
	stubFuncTmpl   *template.Template
}

// newTemplateRegistry parses all templates.
// Templates are hardcoded constants, so parsing cannot fail at runtime.
func newTemplateRegistry() *templateRegistry {
	return &templateRegistry{
		headerTmpl:     template.Must(template.New("header").Parse(headerTemplate)),
		mockStructTmpl: template.Must(template.New("mockStruct").Parse(mockStructTemplate)),
		mockMethodTmpl: template.Must(template.New("mockMethod").Parse(mockMethodTemplate)),
		stubFuncTmpl:   template.Must(template.New("stubFunc").Parse(stubFuncTemplate)),
	}
}

// writeHeader writes the generated-code notice, build constraint, package clause and imports.
func (r *templateRegistry) writeHeader(buf *bytes.Buffer, data fileTemplateData) {
	execute(r.headerTmpl, buf, data)
}

// writeMockMethod writes the mock method that dispatches to a Func field.
func (r *templateRegistry) writeMockMethod(buf *bytes.Buffer, data funcTemplateData) {
	execute(r.mockMethodTmpl, buf, data)
}

// writeMockStruct writes the mock type declaration.
func (r *templateRegistry) writeMockStruct(buf *bytes.Buffer, data fileTemplateData) {
	execute(r.mockStructTmpl, buf, data)
}

// writeStubFunc writes the package-level stub that forwards to the installed mock.
func (r *templateRegistry) writeStubFunc(buf *bytes.Buffer, data funcTemplateData) {
	execute(r.stubFuncTmpl, buf, data)
}

func execute(tmpl *template.Template, buf *bytes.Buffer, data any) {
	err := tmpl.Execute(buf, data)
	if err != nil {
		panic(fmt.Sprintf("failed to execute %s template: %v", tmpl.Name(), err))
	}
}

// Template text.
const (
	headerTemplate = `// Code generated by stubgen. DO NOT EDIT.

//go:build {{.Tag}}

package {{.PkgName}}

import (
{{- range .Imports}}
	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{- end}}

	"github.com/toejough/staticmock"
)
`

	mockStructTemplate = `
// {{.MockName}} replaces the package-level functions of {{.PkgName}} in builds tagged {{.Tag}}.
// Install it with staticmock.Install; each stub forwards to the matching Func field.
type {{.MockName}} struct {
{{- range .Funcs}}
	{{.Name}}Func {{.FieldType}}
{{- end}}
}
`

	mockMethodTemplate = `
// {{.Name}} calls {{.Name}}Func.
func (m *{{.MockName}}) {{.Name}}({{.Params}}) {{.Results}} {
	if m.{{.Name}}Func == nil {
		panic("{{.MockName}}.{{.Name}} called without {{.Name}}Func set")
	}

	{{if .HasResults}}return {{end}}m.{{.Name}}Func({{.Args}})
}
`

	stubFuncTemplate = `
// {{.Name}} forwards to the installed {{.MockName}}.
func {{.Name}}({{.Params}}) {{.Results}} {
	{{if .HasResults}}return {{end}}staticmock.MustInstance[{{.MockName}}]().{{.Name}}({{.Args}})
}
`
)
