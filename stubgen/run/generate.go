package run

import (
	"bytes"
	"fmt"
	"go/format"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/dave/dst"
)

// fileTemplateData feeds the header and mock struct templates.
type fileTemplateData struct {
	PkgName  string
	MockName string
	Tag      string
	Imports  []importSpec
	Funcs    []funcTemplateData
}

// funcTemplateData feeds the per-function templates.
type funcTemplateData struct {
	MockName   string
	Name       string
	FieldType  string // e.g. "func(int, bool) error"
	Params     string // e.g. "pin int, high bool"
	Args       string // e.g. "pin, high"
	Results    string // e.g. "error" or "(bool, error)"
	HasResults bool
}

// importSpec is one import of the generated file.
type importSpec struct {
	Alias string
	Path  string
}

// buildFuncTemplateData renders the signature pieces of fn.
func buildFuncTemplateData(mockName string, fn stubFunc) funcTemplateData {
	params := make([]string, len(fn.Params))
	args := make([]string, len(fn.Params))

	for i, param := range fn.Params {
		if param.Variadic {
			params[i] = param.Name + " ..." + param.Type
			args[i] = param.Name + "..."

			continue
		}

		params[i] = param.Name + " " + param.Type
		args[i] = param.Name
	}

	return funcTemplateData{
		MockName:   mockName,
		Name:       fn.Name,
		FieldType:  fn.FieldType,
		Params:     strings.Join(params, ", "),
		Args:       strings.Join(args, ", "),
		Results:    resultList(fn.Results),
		HasResults: len(fn.Results) > 0,
	}
}

// generateStubCode renders and formats the generated file for funcs.
func generateStubCode(file *dst.File, funcs []stubFunc, info generatorInfo) (string, error) {
	templates := newTemplateRegistry()

	data := fileTemplateData{
		PkgName:  file.Name.Name,
		MockName: info.mockName,
		Tag:      info.tag,
		Funcs:    make([]funcTemplateData, len(funcs)),
	}

	imports, err := usedImports(file, funcs)
	if err != nil {
		return "", fmt.Errorf("cannot stub %s: %w", info.source, err)
	}

	data.Imports = imports

	for i, fn := range funcs {
		data.Funcs[i] = buildFuncTemplateData(info.mockName, fn)
	}

	var buf bytes.Buffer

	templates.writeHeader(&buf, data)
	templates.writeMockStruct(&buf, data)

	for _, fn := range data.Funcs {
		templates.writeMockMethod(&buf, fn)
		templates.writeStubFunc(&buf, fn)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return "", fmt.Errorf("failed to format generated code for %s: %w", info.mockName, err)
	}

	return string(formatted), nil
}

// importName returns the identifier an import is referred to by when it has no alias:
// the last path element, skipping a major-version suffix and dropping gopkg.in-style
// ".vN" suffixes and a "go-" prefix.
func importName(importPath string) string {
	name := path.Base(importPath)

	if majorVersion.MatchString(name) {
		if parent := path.Base(path.Dir(importPath)); parent != "." && parent != "/" {
			name = parent
		}
	}

	if idx := strings.Index(name, "."); idx > 0 {
		name = name[:idx]
	}

	name = strings.TrimPrefix(name, "go-")

	return strings.ReplaceAll(name, "-", "_")
}

// referencedPackages returns the package qualifiers used in the signatures of funcs.
func referencedPackages(funcs []stubFunc) map[string]bool {
	used := make(map[string]bool)

	for _, fn := range funcs {
		dst.Inspect(fn.decl.Type, func(node dst.Node) bool {
			selector, ok := node.(*dst.SelectorExpr)
			if !ok {
				return true
			}

			if ident, ok := selector.X.(*dst.Ident); ok {
				used[ident.Name] = true
			}

			return false
		})
	}

	return used
}

// usedImports returns the imports of file that the stub signatures refer to, sorted by path.
// An unaliased import matches a qualifier by its path's last element or by its derived name;
// when only the derived name matches, the import keeps it as an explicit alias.
// A qualifier that matches no import is an error.
func usedImports(file *dst.File, funcs []stubFunc) ([]importSpec, error) {
	used := referencedPackages(funcs)
	resolved := make(map[string]bool, len(used))

	var imports []importSpec

	for _, spec := range file.Imports {
		importPath, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}

		name, alias, ok := importQualifier(spec, importPath, used)
		if !ok {
			continue
		}

		resolved[name] = true

		imports = append(imports, importSpec{Alias: alias, Path: importPath})
	}

	var unresolved []string

	for name := range used {
		if !resolved[name] {
			unresolved = append(unresolved, name)
		}
	}

	if len(unresolved) > 0 {
		sort.Strings(unresolved)

		return nil, fmt.Errorf("%w: %s", errUnresolvedQualifier, strings.Join(unresolved, ", "))
	}

	sort.Slice(imports, func(i, j int) bool { return imports[i].Path < imports[j].Path })

	return imports, nil
}

// importQualifier returns the qualifier by which the signatures use an import, and the
// alias the generated file must give it. It reports false for an import nothing uses.
func importQualifier(spec *dst.ImportSpec, importPath string, used map[string]bool) (string, string, bool) {
	if spec.Name != nil {
		return spec.Name.Name, spec.Name.Name, used[spec.Name.Name]
	}

	base := path.Base(importPath)
	if used[base] {
		return base, "", true
	}

	derived := importName(importPath)
	if derived != base && used[derived] {
		return derived, derived, true
	}

	return "", "", false
}

// unexported variables.
var (
	//nolint:gochecknoglobals // Compiled once
	majorVersion = regexp.MustCompile(`^v[0-9]+$`)
)
