package diag_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cboragen/cboragen/pkg/diag"
	"github.com/cboragen/cboragen/pkg/source"
)

func TestRenderWithoutColourIncludesFilenameLineAndMessage(t *testing.T) {
	file := source.NewFile("s.cbgs", []byte("X = !!!\n"))
	span := source.NewSpan(4, 5)

	var diags diag.Diagnostics
	diags.Emit(diag.Error, span, "expected a type expression, found invalid")

	var out strings.Builder
	diag.Render(&out, file, diags.Slice(), false)

	rendered := out.String()
	assert.Contains(t, rendered, "error: expected a type expression, found invalid")
	assert.Contains(t, rendered, "s.cbgs:1:5")
	assert.Contains(t, rendered, "X = !!!")
	assert.Contains(t, rendered, "^")
	assert.NotContains(t, rendered, "\x1b[")
}

func TestRenderWithColourEmitsAnsiEscapes(t *testing.T) {
	file := source.NewFile("s.cbgs", []byte("X = u32\n"))
	span := source.NewSpan(0, 1)

	var diags diag.Diagnostics
	diags.Emit(diag.Warning, span, "unused import")

	var out strings.Builder
	diag.Render(&out, file, diags.Slice(), true)

	assert.Contains(t, out.String(), "\x1b[")
}

func TestRenderIncludesHelpNote(t *testing.T) {
	file := source.NewFile("s.cbgs", []byte("X = u32\n"))
	span := source.NewSpan(0, 1)

	var diags diag.Diagnostics
	diags.EmitWithNote(diag.Error, span, "duplicate definition", span, true, "first defined here")

	var out strings.Builder
	diag.Render(&out, file, diags.Slice(), false)

	assert.Contains(t, out.String(), "= help: first defined here")
}

func TestDiagnosticsCounts(t *testing.T) {
	var diags diag.Diagnostics
	diags.Emit(diag.Error, source.NewSpan(0, 1), "e1")
	diags.Emit(diag.Warning, source.NewSpan(0, 1), "w1")
	diags.Emit(diag.Error, source.NewSpan(0, 1), "e2")

	assert.True(t, diags.HasErrors())
	assert.Equal(t, 2, diags.ErrorCount())
	assert.Equal(t, 1, diags.WarningCount())

	var other diag.Diagnostics
	other.Emit(diag.Note, source.NewSpan(0, 1), "n1")

	diags.Append(&other)
	assert.Len(t, diags.Slice(), 4)
}
