package lex

import (
	"github.com/cboragen/cboragen/pkg/diag"
	"github.com/cboragen/cboragen/pkg/source"
)

// Lexer is a demand-driven tokenizer over a byte slice. It performs no
// allocation of its own; every Token's Span is a view into the caller-owned
// buffer. Lexical errors (an invalid character, an unterminated string) are
// reported into the Diagnostics accumulator supplied at construction, but a
// Token is still produced so the parser can continue.
type Lexer struct {
	src   []byte
	pos   int
	diags *diag.Diagnostics
}

// New constructs a lexer over file's contents, reporting lexical errors into
// diags.
func New(file *source.File, diags *diag.Diagnostics) *Lexer {
	return &Lexer{src: file.Contents(), diags: diags}
}

func (l *Lexer) byteAt(i int) byte {
	if i < 0 || i >= len(l.src) {
		return 0
	}

	return l.src[i]
}

func isHorizontalSpace(b byte) bool {
	return b == ' ' || b == '\t'
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_'
}

func isAlphaNum(b byte) bool {
	return isAlpha(b) || isDigit(b)
}

func isUpper(b byte) bool {
	return b >= 'A' && b <= 'Z'
}

// Collect lexes the remainder of the buffer into a slice of tokens, including
// the trailing EOF token. Used by the --tokens CLI mode; the parser itself
// drives the lexer one token at a time.
func (l *Lexer) Collect() []Token {
	var toks []Token

	for {
		tok := l.Next()
		toks = append(toks, tok)

		if tok.Tag == EOF {
			return toks
		}
	}
}

// Next consumes and returns the next token, advancing the lexer. Calling Next
// again after it has returned an EOF token keeps returning EOF tokens at the
// end of the buffer.
func (l *Lexer) Next() Token {
	l.skipHorizontalSpace()

	start := l.pos

	if l.pos >= len(l.src) {
		return Token{EOF, source.NewSpan(start, start)}
	}

	b := l.src[l.pos]

	switch {
	case b == '\n' || b == '\r':
		return l.lexNewline()
	case b == '/' && l.byteAt(l.pos+1) == '/' && l.byteAt(l.pos+2) == '/':
		return l.lexDocComment()
	case b == '/' && l.byteAt(l.pos+1) == '/':
		l.skipLineComment()
		return l.Next()
	case b == '"':
		return l.lexString()
	case isDigit(b):
		return l.lexInt()
	case isAlpha(b):
		return l.lexIdentifier()
	default:
		return l.lexSymbolOrInvalid()
	}
}

func (l *Lexer) skipHorizontalSpace() {
	for l.pos < len(l.src) && isHorizontalSpace(l.src[l.pos]) {
		l.pos++
	}
}

// lexNewline collapses `\n`, `\r`, `\r\n` and any run of subsequent newlines
// (possibly interleaved with horizontal whitespace or line comments) into a
// single Newline token.
func (l *Lexer) lexNewline() Token {
	start := l.pos
	l.consumeOneNewline()

	for {
		save := l.pos
		l.skipHorizontalSpace()

		if l.pos < len(l.src) && l.src[l.pos] == '/' && l.byteAt(l.pos+1) == '/' && l.byteAt(l.pos+2) != '/' {
			l.skipLineComment()
		}

		if l.pos < len(l.src) && (l.src[l.pos] == '\n' || l.src[l.pos] == '\r') {
			l.consumeOneNewline()
			continue
		}

		l.pos = save

		break
	}

	return Token{Newline, source.NewSpan(start, l.pos)}
}

func (l *Lexer) consumeOneNewline() {
	if l.pos < len(l.src) && l.src[l.pos] == '\r' {
		l.pos++

		if l.pos < len(l.src) && l.src[l.pos] == '\n' {
			l.pos++
		}

		return
	}

	if l.pos < len(l.src) && l.src[l.pos] == '\n' {
		l.pos++
	}
}

func (l *Lexer) skipLineComment() {
	for l.pos < len(l.src) && l.src[l.pos] != '\n' && l.src[l.pos] != '\r' {
		l.pos++
	}
}

func (l *Lexer) lexDocComment() Token {
	start := l.pos
	l.pos += 3

	for l.pos < len(l.src) && l.src[l.pos] != '\n' && l.src[l.pos] != '\r' {
		l.pos++
	}

	return Token{DocComment, source.NewSpan(start, l.pos)}
}

func (l *Lexer) lexInt() Token {
	start := l.pos

	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}

	return Token{IntLiteral, source.NewSpan(start, l.pos)}
}

func (l *Lexer) lexIdentifier() Token {
	start := l.pos

	for l.pos < len(l.src) && isAlphaNum(l.src[l.pos]) {
		l.pos++
	}

	span := source.NewSpan(start, l.pos)
	word := string(l.src[start:l.pos])

	if tag, ok := keywords[word]; ok {
		return Token{tag, span}
	}

	if isUpper(l.src[start]) {
		return Token{TypeIdentifier, span}
	}

	return Token{Identifier, span}
}

func (l *Lexer) lexString() Token {
	start := l.pos
	l.pos++ // opening quote

	for {
		if l.pos >= len(l.src) {
			span := source.NewSpan(start, l.pos)
			l.diags.Emit(diag.Error, span, "unterminated string literal: reached end of file")

			return Token{StringLiteral, span}
		}

		c := l.src[l.pos]

		if c == '\n' || c == '\r' {
			span := source.NewSpan(start, l.pos)
			l.diags.Emit(diag.Error, span, "unterminated string literal: newline before closing quote")

			return Token{StringLiteral, span}
		}

		if c == '\\' && l.pos+1 < len(l.src) {
			l.pos += 2

			continue
		}

		l.pos++

		if c == '"' {
			return Token{StringLiteral, source.NewSpan(start, l.pos)}
		}
	}
}

func (l *Lexer) lexSymbolOrInvalid() Token {
	start := l.pos
	b := l.src[l.pos]

	tag, ok := symbolTag(b)
	if !ok {
		l.pos++
		span := source.NewSpan(start, l.pos)
		l.diags.Emit(diag.Error, span, "invalid character")

		return Token{Invalid, span}
	}

	l.pos++

	return Token{tag, source.NewSpan(start, l.pos)}
}

func symbolTag(b byte) (Tag, bool) {
	switch b {
	case '=':
		return Equals, true
	case ':':
		return Colon, true
	case '@':
		return At, true
	case '.':
		return Dot, true
	case '?':
		return Question, true
	case '[':
		return LBracket, true
	case ']':
		return RBracket, true
	case '{':
		return LBrace, true
	case '}':
		return RBrace, true
	case '(':
		return LParen, true
	case ')':
		return RParen, true
	case ',':
		return Comma, true
	default:
		return Invalid, false
	}
}

// DocCommentText extracts the content of a `///`-line token, stripping the
// `///` prefix and a single optional leading space.
func DocCommentText(tok Token, src []byte) string {
	text := string(tok.Span.Slice(src))
	text = text[3:]

	if len(text) > 0 && text[0] == ' ' {
		text = text[1:]
	}

	return text
}
