package run_test

import (
	"testing"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
	. "github.com/onsi/gomega"

	"github.com/toejough/staticmock/stubgen/run"
)

// TestTypeString_RoundTripsParameterTypes verifies that parameter types are
// rendered back to the Go source they were parsed from.
func TestTypeString_RoundTripsParameterTypes(t *testing.T) {
	t.Parallel()

	for _, typeSrc := range []string{
		"int",
		"*bytes.Buffer",
		"[]byte",
		"[4]uint8",
		"[pins.Count]bool",
		"[N * 2]byte",
		"map[string][]int",
		"chan int",
		"chan<- error",
		"<-chan struct{}",
		"func(int, string) (bool, error)",
		"func(a, b int) error",
		"func()",
		"interface{}",
		"interface{ Read([]byte) (int, error) }",
		"interface{ io.Reader; Close() error }",
		"struct{ X, Y int }",
		"struct{ Name string `json:\"name\"` }",
		"Pair[int, string]",
		"List[int]",
	} {
		t.Run(typeSrc, func(t *testing.T) {
			t.Parallel()
			g := NewWithT(t)

			rendered, err := run.TypeString(paramType(t, typeSrc))
			g.Expect(err).NotTo(HaveOccurred())
			g.Expect(rendered).To(Equal(expectedRendering(typeSrc)))
		})
	}
}

// TestTypeString_Variadic verifies the ellipsis rendering.
func TestTypeString_Variadic(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(run.TypeString(paramType(t, "...any"))).To(Equal("...any"))
}

// TestTypeString_UnsupportedExpressions verifies that expressions which cannot be
// rendered are reported instead of being written into generated code.
func TestTypeString_UnsupportedExpressions(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	_, err := run.TypeString(paramType(t, `[len("ab")]byte`))
	g.Expect(err).To(MatchError(ContainSubstring("unsupported type expression: array length *dst.CallExpr")))

	_, err = run.TypeString(nil)
	g.Expect(err).To(MatchError(ContainSubstring("unsupported type expression")))
}

// TestFieldTypes verifies that grouped names repeat their type.
func TestFieldTypes(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	file, err := decorator.Parse("package p\n\nfunc F(a, b int, _ string, c ...bool) {}\n")
	g.Expect(err).NotTo(HaveOccurred())

	funcDecl := file.Decls[0].(*dst.FuncDecl) //nolint:forcetypeassert // fixed source

	g.Expect(run.FieldTypes(funcDecl.Type.Params)).To(Equal([]string{"int", "int", "string", "...bool"}))
	g.Expect(run.FieldTypes(funcDecl.Type.Results)).To(BeEmpty())
}

// expectedRendering is typeSrc as rendered: parameter names inside func types are dropped.
func expectedRendering(typeSrc string) string {
	if typeSrc == "func(a, b int) error" {
		return "func(int, int) error"
	}

	return typeSrc
}

// paramType parses typeSrc as the type of a function's only parameter.
func paramType(t *testing.T, typeSrc string) dst.Expr {
	t.Helper()

	file, err := decorator.Parse("package p\n\nfunc F(v " + typeSrc + ") {}\n")
	if err != nil {
		t.Fatalf("failed to parse %q: %v", typeSrc, err)
	}

	funcDecl := file.Decls[0].(*dst.FuncDecl) //nolint:forcetypeassert // fixed source

	return funcDecl.Type.Params.List[0].Type
}
