package wire

import "github.com/cboragen/cboragen/pkg/ast"

// Resolver looks up the TypeExpr a named or qualified type reference points
// at. namespace is empty for a local (NamedType) reference. Implementations
// typically wrap a resolved multi-file schema (see pkg/driver).
type Resolver interface {
	Resolve(namespace, name string) (ast.TypeExpr, bool)
}

// MapResolver is the simplest Resolver: a flat name -> TypeExpr table for a
// single schema with no imports.
type MapResolver map[string]ast.TypeExpr

// Resolve implements Resolver. A non-empty namespace always misses, since
// MapResolver has no notion of imports.
func (m MapResolver) Resolve(namespace, name string) (ast.TypeExpr, bool) {
	if namespace != "" {
		return nil, false
	}

	ty, ok := m[name]

	return ty, ok
}
