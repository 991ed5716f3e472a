package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cboragen/cboragen/pkg/ast"
)

func TestDocLenIsZeroWhenAbsent(t *testing.T) {
	assert.Equal(t, 0, ast.NoDoc().Len())
	assert.False(t, ast.NoDoc().HasValue())
}

func TestDocLenCountsBytes(t *testing.T) {
	d := ast.NewDoc("hello")
	assert.Equal(t, 5, d.Len())
	assert.Equal(t, "hello", d.Text())
}

func TestDocArenaSizeSumsAcrossNesting(t *testing.T) {
	schema := ast.Schema{
		Definitions: []ast.Definition{
			{
				Doc:  ast.NewDoc("top"), // 3
				Name: "S",
				Type: ast.StructType{Fields: []ast.Field{
					{Doc: ast.NewDoc("ab"), Name: "x", Type: ast.IntType{Kind: ast.U8}}, // 2
					{Doc: ast.NoDoc(), Name: "y", Type: ast.IntType{Kind: ast.U8}},       // 0
				}},
			},
			{
				Doc:  ast.NoDoc(),
				Name: "E",
				Type: ast.EnumType{Variants: []ast.EnumVariant{
					{Doc: ast.NewDoc("v"), Name: "A", Tag: 0}, // 1
				}},
			},
		},
	}

	assert.Equal(t, 6, ast.DocArenaSize(schema))
}
