package run

import (
	"fmt"
	"go/parser"
	"go/token"
	"strconv"
	"strings"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
)

// stubFunc describes one package-level function to replace with a stub.
type stubFunc struct {
	Name      string
	FieldType string // e.g. "func(int, bool) error"
	Params    []stubParam
	Results   []string
	decl      *dst.FuncDecl
}

// stubParam is one expanded parameter: "a, b int" becomes two.
type stubParam struct {
	Name     string
	Type     string // element type for the variadic parameter, without "..."
	Variadic bool
}

// detectFunctions returns the exported package-level functions of file that can be stubbed,
// in source order, and a description of each exported function it had to skip.
func detectFunctions(file *dst.File) ([]stubFunc, []string) {
	var (
		funcs   []stubFunc
		skipped []string
	)

	for _, decl := range file.Decls {
		funcDecl, ok := decl.(*dst.FuncDecl)
		if !ok || funcDecl.Recv != nil || !token.IsExported(funcDecl.Name.Name) {
			continue
		}

		if funcDecl.Type.TypeParams != nil && len(funcDecl.Type.TypeParams.List) > 0 {
			skipped = append(skipped, "generic function "+funcDecl.Name.Name)

			continue
		}

		fn, err := newStubFunc(funcDecl)
		if err != nil {
			skipped = append(skipped, fmt.Sprintf("function %s: %v", funcDecl.Name.Name, err))

			continue
		}

		funcs = append(funcs, fn)
	}

	return funcs, skipped
}

// checkNameClashes reports generated declarations that would collide: a stub's Func field
// sharing its name with another stub's method, or a stub sharing its name with the mock type.
func checkNameClashes(funcs []stubFunc, mockName string) error {
	names := make(map[string]bool, len(funcs))
	for _, fn := range funcs {
		names[fn.Name] = true
	}

	var clashes []string

	for _, fn := range funcs {
		if names[fn.Name+"Func"] {
			clashes = append(clashes, fmt.Sprintf("field %sFunc and method %sFunc", fn.Name, fn.Name))
		}

		if fn.Name == mockName {
			clashes = append(clashes, "function "+fn.Name+" and mock type "+mockName)
		}
	}

	if len(clashes) > 0 {
		return fmt.Errorf("%w: %s", errNameClash, strings.Join(clashes, "; "))
	}

	return nil
}

// expandParams expands a parameter list into one stubParam per name, renaming blank,
// missing, and reserved names to the first unused p<index>.
func expandParams(params *dst.FieldList) ([]stubParam, error) {
	var expanded []stubParam

	taken := make(map[string]bool)

	for _, field := range fieldList(params) {
		variadic := false
		typeExpr := field.Type

		if ellipsis, ok := typeExpr.(*dst.Ellipsis); ok {
			variadic = true
			typeExpr = ellipsis.Elt
		}

		typeStr, err := TypeString(typeExpr)
		if err != nil {
			return nil, err
		}

		if len(field.Names) == 0 {
			expanded = append(expanded, stubParam{Name: "_", Type: typeStr, Variadic: variadic})

			continue
		}

		for _, ident := range field.Names {
			taken[ident.Name] = true
			expanded = append(expanded, stubParam{Name: ident.Name, Type: typeStr, Variadic: variadic})
		}
	}

	for i := range expanded {
		if !reservedParamNames[expanded[i].Name] {
			continue
		}

		name := "p" + strconv.Itoa(i)
		for suffix := 0; taken[name]; suffix++ {
			name = "p" + strconv.Itoa(i) + "_" + strconv.Itoa(suffix)
		}

		taken[name] = true
		expanded[i].Name = name
	}

	return expanded, nil
}

// fieldList returns the fields of list, tolerating a nil list.
func fieldList(list *dst.FieldList) []*dst.Field {
	if list == nil {
		return nil
	}

	return list.List
}

// newStubFunc renders the signature pieces of funcDecl.
func newStubFunc(funcDecl *dst.FuncDecl) (stubFunc, error) {
	fieldType, err := TypeString(funcDecl.Type)
	if err != nil {
		return stubFunc{}, err
	}

	params, err := expandParams(funcDecl.Type.Params)
	if err != nil {
		return stubFunc{}, err
	}

	results, err := FieldTypes(funcDecl.Type.Results)
	if err != nil {
		return stubFunc{}, err
	}

	return stubFunc{
		Name:      funcDecl.Name.Name,
		FieldType: fieldType,
		Params:    params,
		Results:   results,
		decl:      funcDecl,
	}, nil
}

// parseSource parses a Go source file into DST.
func parseSource(name string, src []byte) (*dst.File, error) {
	file, err := decorator.ParseFile(token.NewFileSet(), name, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}

	return file, nil
}

// unexported variables.
var (
	// reservedParamNames would be blank, or would shadow the receiver or the
	// staticmock import inside generated bodies.
	//nolint:gochecknoglobals // Read-only lookup table
	reservedParamNames = map[string]bool{
		"_":          true,
		"m":          true,
		"staticmock": true,
	}
)
