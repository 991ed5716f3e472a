package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cboragen/cboragen/pkg/diag"
	"github.com/cboragen/cboragen/pkg/driver"
	"github.com/cboragen/cboragen/pkg/parser"
	"github.com/cboragen/cboragen/pkg/source"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	return path
}

func TestResolveImportsTransitiveAndIdempotent(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "leaf.cbgs", "Leaf = u8\n")
	writeFile(t, dir, "mid.cbgs", "leaf = @import(\"leaf.cbgs\")\nMid = leaf.Leaf\n")
	rootPath := writeFile(t, dir, "root.cbgs", "mid = @import(\"mid.cbgs\")\nleaf = @import(\"leaf.cbgs\")\nRoot = mid.Mid\n")

	rootFile, err := source.ReadFile(rootPath)
	require.NoError(t, err)

	rootResult := parser.Parse(rootFile)
	require.False(t, rootResult.Diagnostics.HasErrors())

	root := &driver.ParsedFile{File: rootFile, Schema: rootResult.Schema, Diagnostics: rootResult.Diagnostics}

	resolved, err := driver.ResolveImports(context.Background(), root, dir, driver.Options{})
	require.NoError(t, err)

	assert.Contains(t, resolved.Imports, "mid")
	assert.Contains(t, resolved.Imports, "leaf")
	assert.Len(t, resolved.Imports, 2)

	ty, ok := resolved.Resolve("leaf", "Leaf")
	assert.True(t, ok)
	assert.NotNil(t, ty)
}

func TestResolveImportsMissingFileWarnsAndContinues(t *testing.T) {
	dir := t.TempDir()
	rootPath := writeFile(t, dir, "root.cbgs", "missing = @import(\"does-not-exist.cbgs\")\nRoot = u8\n")

	rootFile, err := source.ReadFile(rootPath)
	require.NoError(t, err)

	rootResult := parser.Parse(rootFile)
	root := &driver.ParsedFile{File: rootFile, Schema: rootResult.Schema, Diagnostics: rootResult.Diagnostics}

	resolved, err := driver.ResolveImports(context.Background(), root, dir, driver.Options{})
	require.NoError(t, err)
	assert.NotContains(t, resolved.Imports, "missing")

	require.Len(t, resolved.Diagnostics.Slice(), 1)
	got := resolved.Diagnostics.Slice()[0]
	assert.Equal(t, diag.Warning, got.Severity)
	assert.Contains(t, got.Message, "does-not-exist.cbgs")
}
