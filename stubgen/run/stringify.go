package run

import (
	"fmt"
	"strings"

	"github.com/dave/dst"
)

// FieldTypes returns one rendered type per declared name of list, so "a, b int" yields
// "int" twice. An unnamed field yields its type once.
func FieldTypes(list *dst.FieldList) ([]string, error) {
	var types []string

	for _, field := range fieldList(list) {
		typeStr, err := TypeString(field.Type)
		if err != nil {
			return nil, err
		}

		for range max(len(field.Names), 1) {
			types = append(types, typeStr)
		}
	}

	return types, nil
}

// TypeString renders a type expression from a function signature as Go source.
// Expressions that cannot appear in a signature's types are an errUnsupportedType error.
func TypeString(expr dst.Expr) (string, error) {
	var writer typeWriter

	writer.expr(expr)

	if writer.err != nil {
		return "", writer.err
	}

	return writer.String(), nil
}

// typeWriter accumulates rendered type source, stopping at the first unsupported expression.
type typeWriter struct {
	strings.Builder

	err error
}

//nolint:cyclop // Type-switch dispatcher over DST type kinds
func (w *typeWriter) expr(expr dst.Expr) {
	if w.err != nil {
		return
	}

	switch typed := expr.(type) {
	case *dst.Ident:
		w.WriteString(typed.Name)
	case *dst.SelectorExpr:
		w.expr(typed.X)
		w.WriteString("." + typed.Sel.Name)
	case *dst.StarExpr:
		w.WriteString("*")
		w.expr(typed.X)
	case *dst.Ellipsis:
		w.WriteString("...")
		w.expr(typed.Elt)
	case *dst.ArrayType:
		w.WriteString("[")

		if typed.Len != nil {
			w.length(typed.Len)
		}

		w.WriteString("]")
		w.expr(typed.Elt)
	case *dst.MapType:
		w.WriteString("map[")
		w.expr(typed.Key)
		w.WriteString("]")
		w.expr(typed.Value)
	case *dst.ChanType:
		switch typed.Dir {
		case dst.SEND:
			w.WriteString("chan<- ")
		case dst.RECV:
			w.WriteString("<-chan ")
		default:
			w.WriteString("chan ")
		}

		w.expr(typed.Value)
	case *dst.FuncType:
		w.WriteString("func")
		w.signature(typed)
	case *dst.InterfaceType:
		w.interfaceType(typed)
	case *dst.StructType:
		w.structType(typed)
	case *dst.IndexExpr:
		w.expr(typed.X)
		w.WriteString("[")
		w.expr(typed.Index)
		w.WriteString("]")
	case *dst.IndexListExpr:
		w.expr(typed.X)
		w.WriteString("[")

		for i, index := range typed.Indices {
			if i > 0 {
				w.WriteString(", ")
			}

			w.expr(index)
		}

		w.WriteString("]")
	case *dst.ParenExpr:
		w.WriteString("(")
		w.expr(typed.X)
		w.WriteString(")")
	default:
		w.err = fmt.Errorf("%w: %T", errUnsupportedType, expr)
	}
}

// fields writes the types of list, one per declared name, comma separated.
func (w *typeWriter) fields(list *dst.FieldList) {
	first := true

	for _, field := range fieldList(list) {
		for range max(len(field.Names), 1) {
			if !first {
				w.WriteString(", ")
			}

			first = false

			w.expr(field.Type)
		}
	}
}

// interfaceType writes an interface literal on one line.
func (w *typeWriter) interfaceType(interfaceType *dst.InterfaceType) {
	methods := fieldList(interfaceType.Methods)
	if len(methods) == 0 {
		w.WriteString("interface{}")

		return
	}

	w.WriteString("interface{ ")

	for i, method := range methods {
		if i > 0 {
			w.WriteString("; ")
		}

		funcType, ok := method.Type.(*dst.FuncType)
		if !ok || len(method.Names) == 0 {
			w.expr(method.Type) // embedded interface

			continue
		}

		w.WriteString(method.Names[0].Name)
		w.signature(funcType)
	}

	w.WriteString(" }")
}

// length writes an array length, which may be a constant expression.
func (w *typeWriter) length(expr dst.Expr) {
	switch typed := expr.(type) {
	case *dst.BasicLit:
		w.WriteString(typed.Value)
	case *dst.BinaryExpr:
		w.length(typed.X)
		w.WriteString(" " + typed.Op.String() + " ")
		w.length(typed.Y)
	case *dst.ParenExpr:
		w.WriteString("(")
		w.length(typed.X)
		w.WriteString(")")
	case *dst.Ident, *dst.SelectorExpr:
		w.expr(typed)
	default:
		w.err = fmt.Errorf("%w: array length %T", errUnsupportedType, expr)
	}
}

// signature writes a function type without the func keyword: "(int, string) error".
func (w *typeWriter) signature(funcType *dst.FuncType) {
	w.WriteString("(")
	w.fields(funcType.Params)
	w.WriteString(")")

	switch fieldCount(funcType.Results) {
	case 0:
	case 1:
		w.WriteString(" ")
		w.fields(funcType.Results)
	default:
		w.WriteString(" (")
		w.fields(funcType.Results)
		w.WriteString(")")
	}
}

// structType writes a struct literal on one line, keeping field tags.
func (w *typeWriter) structType(structType *dst.StructType) {
	fields := fieldList(structType.Fields)
	if len(fields) == 0 {
		w.WriteString("struct{}")

		return
	}

	w.WriteString("struct{ ")

	for i, field := range fields {
		if i > 0 {
			w.WriteString("; ")
		}

		for j, name := range field.Names {
			if j > 0 {
				w.WriteString(", ")
			}

			w.WriteString(name.Name)
		}

		if len(field.Names) > 0 {
			w.WriteString(" ")
		}

		w.expr(field.Type)

		if field.Tag != nil {
			w.WriteString(" " + field.Tag.Value)
		}
	}

	w.WriteString(" }")
}

// fieldCount returns the number of values list declares.
func fieldCount(list *dst.FieldList) int {
	count := 0

	for _, field := range fieldList(list) {
		count += max(len(field.Names), 1)
	}

	return count
}

// resultList renders result types the way they follow a parameter list:
// nothing, a bare type, or a parenthesized list.
func resultList(results []string) string {
	switch len(results) {
	case 0:
		return ""
	case 1:
		return results[0]
	default:
		return "(" + strings.Join(results, ", ") + ")"
	}
}
