package main

import (
	"fmt"

	"github.com/go-openapi/inflect"

	"github.com/cboragen/cboragen/pkg/ast"
)

// pluralizeCount renders "1 error" / "3 errors" using the pack's
// pluralization library rather than a hand-rolled `if n == 1` branch.
func pluralizeCount(n int, noun string) string {
	word := noun
	if n != 1 {
		word = inflect.Pluralize(noun)
	}

	return fmt.Sprintf("%d %s", n, word)
}

// typeExprKind names a type-expression's syntactic form for the summary
// line (not its full structure — that belongs to a future --tokens-style
// detailed dump, not this one-liner-per-definition view).
func typeExprKind(ty ast.TypeExpr) string {
	switch t := ty.(type) {
	case ast.BoolType:
		return "bool"
	case ast.StringType:
		return "string"
	case ast.BytesType:
		return "bytes"
	case ast.IntType:
		return t.Kind.String()
	case ast.FloatType:
		return t.Kind.String()
	case ast.OptionType:
		return "?" + typeExprKind(t.Child)
	case ast.ArrayType:
		return arrayKindPrefix(t) + typeExprKind(t.Element)
	case ast.StructType:
		return fmt.Sprintf("struct{%s}", pluralizeCount(len(t.Fields), "field"))
	case ast.EnumType:
		return fmt.Sprintf("enum{%s}", pluralizeCount(len(t.Variants), "variant"))
	case ast.UnionType:
		return fmt.Sprintf("union{%s}", pluralizeCount(len(t.Variants), "variant"))
	case ast.NamedType:
		return t.Name
	case ast.QualifiedType:
		return t.Namespace + "." + t.Name
	default:
		return "?"
	}
}

func arrayKindPrefix(t ast.ArrayType) string {
	switch t.Kind {
	case ast.ArrayFixed:
		return fmt.Sprintf("[%d]", t.Length)
	case ast.ArrayExternalLength:
		return fmt.Sprintf("[.%s]", t.Field)
	default:
		return "[]"
	}
}
