// Package parser implements a hand-written recursive-descent parser for the
// cboragen schema language, with panic-mode error recovery and an
// arena-free (garbage-collected) AST.
package parser

import (
	"fmt"

	"github.com/cboragen/cboragen/pkg/ast"
	"github.com/cboragen/cboragen/pkg/diag"
	"github.com/cboragen/cboragen/pkg/lex"
	"github.com/cboragen/cboragen/pkg/source"
)

// ParseResult bundles a (possibly partial) Schema with the diagnostics
// produced while parsing it. Callers must check Diagnostics.HasErrors before
// trusting Schema.
type ParseResult struct {
	Schema      ast.Schema
	Diagnostics *diag.Diagnostics
}

// Parse lexes and parses a source file into a Schema. On a syntactically
// valid source, Parse emits zero error diagnostics and every top-level form
// is represented in the returned Schema. On a malformed source, Parse
// recovers via panic mode and still returns a best-effort Schema; the caller
// must gate on ParseResult.Diagnostics.HasErrors.
func Parse(file *source.File) ParseResult {
	diags := &diag.Diagnostics{}
	p := &Parser{
		file:  file,
		lx:    lex.New(file, diags),
		diags: diags,
	}
	p.fill(2)

	schema := p.parseSchema()

	return ParseResult{Schema: schema, Diagnostics: diags}
}

// Parser holds the mutable state of one recursive-descent parse. It reads
// tokens from a Lexer one at a time, buffering up to two so that import
// disambiguation (§4.4) can peek a second token without losing it.
type Parser struct {
	file    *source.File
	lx      *lex.Lexer
	diags   *diag.Diagnostics
	buf     []lex.Token
	panicking bool
}

// fill ensures at least n tokens are buffered.
func (p *Parser) fill(n int) {
	for len(p.buf) < n {
		p.buf = append(p.buf, p.lx.Next())
	}
}

// cur returns the current lookahead token without consuming it.
func (p *Parser) cur() lex.Token {
	p.fill(1)

	return p.buf[0]
}

// peek2 returns the token after the current lookahead, without consuming
// either.
func (p *Parser) peek2() lex.Token {
	p.fill(2)

	return p.buf[1]
}

// advance consumes and returns the current lookahead token.
func (p *Parser) advance() lex.Token {
	p.fill(1)
	tok := p.buf[0]
	p.buf = p.buf[1:]

	return tok
}

// at reports whether the current lookahead has the given tag.
func (p *Parser) at(tag lex.Tag) bool {
	return p.cur().Tag == tag
}

// match consumes and returns the current token if it has the given tag.
func (p *Parser) match(tag lex.Tag) (lex.Token, bool) {
	if p.at(tag) {
		return p.advance(), true
	}

	return lex.Token{}, false
}

// expect consumes the current token if it has the given tag, or else emits a
// single "expected X, found Y" diagnostic (suppressed while panicking) and
// returns ok=false without consuming anything.
func (p *Parser) expect(tag lex.Tag) (lex.Token, bool) {
	if tok, ok := p.match(tag); ok {
		return tok, true
	}

	p.errorf(p.cur().Span, "expected %s, found %s", tag, p.cur().Tag)

	return lex.Token{}, false
}

// skipNewlines consumes zero or more Newline tokens.
func (p *Parser) skipNewlines() {
	for p.at(lex.Newline) {
		p.advance()
	}
}

// errorf emits one error diagnostic, unless a panic-mode episode is already
// in flight; panic mode suppresses further diagnostics until it clears.
func (p *Parser) errorf(span source.Span, format string, args ...any) {
	if p.panicking {
		return
	}

	p.diags.Emit(diag.Error, span, fmt.Sprintf(format, args...))
}

// text returns the literal source text covered by a token.
func (p *Parser) text(tok lex.Token) string {
	return p.file.Text(tok.Span)
}
