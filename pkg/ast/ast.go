// Package ast defines the schema abstract syntax tree produced by
// pkg/parser. Every node's string fields are copied out of the source buffer
// that was parsed (source.File.Text); spans are byte offsets into that buffer.
package ast

import (
	"github.com/cboragen/cboragen/pkg/source"
)

// Node provides common functionality across every element of the AST: a
// reference point for reporting diagnostics against the originating text.
type Node interface {
	// NodeSpan returns the span of source text this node was parsed from.
	NodeSpan() source.Span
}

// Schema is the root of a parsed schema file: zero or more imports followed
// by zero or more type definitions, in source order.
type Schema struct {
	Imports     []Import
	Definitions []Definition
}

// Import is a single `name = @import("path")` declaration.
type Import struct {
	Namespace string
	Path      string
	Span      source.Span
}

// NodeSpan implements Node.
func (i Import) NodeSpan() source.Span { return i.Span }

// Definition is a single top-level `Name = TypeExpr` declaration.
type Definition struct {
	Doc      Doc
	Name     string
	Type     TypeExpr
	Span     source.Span
	NameSpan source.Span
}

// NodeSpan implements Node.
func (d Definition) NodeSpan() source.Span { return d.Span }
