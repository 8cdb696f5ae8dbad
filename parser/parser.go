// Package parser builds an *ast.Program from a lexer.Token stream using
// recursive descent over the precedence ladder in spec.md §4.2.
//
// The parser is a single-token-lookahead cursor over the token slice
// (Current, Peek), in the shape of the teacher's advance/expectAdvance/
// expectNext cursor (parser.Parser in the retrieval pack), but it fails
// fast: the first mismatch returns a non-nil *Error instead of being
// collected into an Errors slice. A batch, one-shot compiler has no use
// for multi-error recovery — spec.md §7 requires the whole compilation
// to fail on the first problem, and an explicit error return is the
// idiomatic Go way to signal an expected, well-typed failure.
package parser

import (
	"fmt"

	"github.com/gomixc/gomixc/ast"
	"github.com/gomixc/gomixc/lexer"
)

// Error reports a parse failure: a token kind mismatch, an unexpected
// end of stream, or an unsupported (compound-assignment) token.
type Error struct {
	Message string
	Token   lexer.Token
	AtEOF   bool
}

func (e *Error) Error() string {
	if e.AtEOF {
		return fmt.Sprintf("parse error: %s (at end of input)", e.Message)
	}
	return fmt.Sprintf("parse error: %s, got %s", e.Message, e.Token)
}

// cursor walks a token slice with one token of lookahead.
type cursor struct {
	tokens []lexer.Token
	pos    int
}

func (c *cursor) current() (lexer.Token, bool) {
	if c.pos >= len(c.tokens) {
		return lexer.Token{}, false
	}
	return c.tokens[c.pos], true
}

func (c *cursor) peek() (lexer.Token, bool) {
	if c.pos+1 >= len(c.tokens) {
		return lexer.Token{}, false
	}
	return c.tokens[c.pos+1], true
}

func (c *cursor) advance() {
	c.pos++
}

// Parser converts a token stream into an AST. Use Parse for the full
// program entry point.
type Parser struct {
	cur cursor
}

// New creates a Parser over an already-lexed token stream.
func New(tokens []lexer.Token) *Parser {
	return &Parser{cur: cursor{tokens: tokens}}
}

// Parse lexes nothing itself — it consumes tokens — and parses a
// complete program: one or more function definitions.
func Parse(tokens []lexer.Token) (*ast.Program, error) {
	return New(tokens).parseProgram()
}

// expect requires the current token to have kind k, returning it and
// advancing past it. Returns an *Error otherwise.
func (p *Parser) expect(k lexer.Kind) (lexer.Token, error) {
	tok, ok := p.cur.current()
	if !ok {
		return lexer.Token{}, &Error{Message: fmt.Sprintf("expected %s", k), AtEOF: true}
	}
	if tok.Kind != k {
		return lexer.Token{}, &Error{Message: fmt.Sprintf("expected %s", k), Token: tok}
	}
	p.cur.advance()
	return tok, nil
}

// unexpectedEOF builds the hard-failure error for end-of-stream during
// a production that still needed a token.
func unexpectedEOF(context string) error {
	return &Error{Message: fmt.Sprintf("unexpected end of input while parsing %s", context), AtEOF: true}
}
