package parser

import (
	"fmt"

	"github.com/gomixc/gomixc/ast"
	"github.com/gomixc/gomixc/lexer"
)

// parseExpression implements `expression := IDENT '=' expression | conditional`.
//
// The only lookahead past the head token anywhere in this grammar
// happens here: an IDENT followed directly by '=' commits to the
// assignment production; anything else falls through to conditional.
// An IDENT followed by a compound-assignment token is rejected
// explicitly — compound assignment is lexed but reserved, per
// spec.md §4.2.
func (p *Parser) parseExpression() (ast.Expression, error) {
	if tok, ok := p.cur.current(); ok && tok.Kind == lexer.Identifier {
		if next, ok := p.cur.peek(); ok {
			if next.Kind == lexer.Assign {
				p.cur.advance() // IDENT
				p.cur.advance() // '='
				value, err := p.parseExpression()
				if err != nil {
					return nil, err
				}
				return &ast.AssignExpr{Name: tok.Lexeme, Value: value}, nil
			}
			if next.Kind.IsCompoundAssign() {
				return nil, &Error{Message: fmt.Sprintf("compound assignment %q is reserved and not supported", next.Lexeme), Token: next}
			}
		}
	}
	return p.parseConditional()
}

// parseConditional implements `conditional := logical-or ('?' expression ':' conditional)?`.
func (p *Parser) parseConditional() (*ast.CondExpr, error) {
	or, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}
	cond := &ast.CondExpr{Or: or}

	tok, ok := p.cur.current()
	if !ok || tok.Kind != lexer.Question {
		return cond, nil
	}
	p.cur.advance()

	then, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Colon); err != nil {
		return nil, err
	}
	elseArm, err := p.parseConditional()
	if err != nil {
		return nil, err
	}
	cond.Then = then
	cond.Else = elseArm
	return cond, nil
}

// parseLogicalOr implements `logical-or := logical-and ('||' logical-and)*`.
func (p *Parser) parseLogicalOr() (*ast.LogicalOrExpr, error) {
	head, err := p.parseLogicalAnd()
	if err != nil {
		return nil, err
	}
	node := &ast.LogicalOrExpr{Head: head}
	for {
		tok, ok := p.cur.current()
		if !ok || tok.Kind != lexer.OrOr {
			break
		}
		p.cur.advance()
		right, err := p.parseLogicalAnd()
		if err != nil {
			return nil, err
		}
		node.Rest = append(node.Rest, right)
	}
	return node, nil
}

// parseLogicalAnd implements `logical-and := bit-or ('&&' bit-or)*`.
func (p *Parser) parseLogicalAnd() (*ast.LogicalAndExpr, error) {
	head, err := p.parseBitOr()
	if err != nil {
		return nil, err
	}
	node := &ast.LogicalAndExpr{Head: head}
	for {
		tok, ok := p.cur.current()
		if !ok || tok.Kind != lexer.AndAnd {
			break
		}
		p.cur.advance()
		right, err := p.parseBitOr()
		if err != nil {
			return nil, err
		}
		node.Rest = append(node.Rest, right)
	}
	return node, nil
}

// parseBitOr implements `bit-or := bit-xor ('|' bit-xor)*`.
func (p *Parser) parseBitOr() (*ast.BitOrExpr, error) {
	head, err := p.parseBitXor()
	if err != nil {
		return nil, err
	}
	node := &ast.BitOrExpr{Head: head}
	for {
		tok, ok := p.cur.current()
		if !ok || tok.Kind != lexer.Pipe {
			break
		}
		p.cur.advance()
		right, err := p.parseBitXor()
		if err != nil {
			return nil, err
		}
		node.Rest = append(node.Rest, right)
	}
	return node, nil
}

// parseBitXor implements `bit-xor := bit-and ('^' bit-and)*`.
func (p *Parser) parseBitXor() (*ast.BitXorExpr, error) {
	head, err := p.parseBitAnd()
	if err != nil {
		return nil, err
	}
	node := &ast.BitXorExpr{Head: head}
	for {
		tok, ok := p.cur.current()
		if !ok || tok.Kind != lexer.Caret {
			break
		}
		p.cur.advance()
		right, err := p.parseBitAnd()
		if err != nil {
			return nil, err
		}
		node.Rest = append(node.Rest, right)
	}
	return node, nil
}

// parseBitAnd implements `bit-and := equality ('&' equality)*`.
func (p *Parser) parseBitAnd() (*ast.BitAndExpr, error) {
	head, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	node := &ast.BitAndExpr{Head: head}
	for {
		tok, ok := p.cur.current()
		if !ok || tok.Kind != lexer.Amp {
			break
		}
		p.cur.advance()
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		node.Rest = append(node.Rest, right)
	}
	return node, nil
}

// parseEquality implements `equality := relational (('==' | '!=') relational)*`.
func (p *Parser) parseEquality() (*ast.EqualityExpr, error) {
	head, err := p.parseRelational()
	if err != nil {
		return nil, err
	}
	node := &ast.EqualityExpr{Head: head}
	for {
		tok, ok := p.cur.current()
		if !ok || (tok.Kind != lexer.Eq && tok.Kind != lexer.NotEq) {
			break
		}
		p.cur.advance()
		right, err := p.parseRelational()
		if err != nil {
			return nil, err
		}
		node.Rest = append(node.Rest, ast.EqOp{Op: tok.Kind, Right: right})
	}
	return node, nil
}

// parseRelational implements `relational := shift (('<'|'<='|'>'|'>=') shift)*`.
func (p *Parser) parseRelational() (*ast.RelationalExpr, error) {
	head, err := p.parseShift()
	if err != nil {
		return nil, err
	}
	node := &ast.RelationalExpr{Head: head}
	for {
		tok, ok := p.cur.current()
		if !ok || !isRelationalOp(tok.Kind) {
			break
		}
		p.cur.advance()
		right, err := p.parseShift()
		if err != nil {
			return nil, err
		}
		node.Rest = append(node.Rest, ast.RelOp{Op: tok.Kind, Right: right})
	}
	return node, nil
}

func isRelationalOp(k lexer.Kind) bool {
	switch k {
	case lexer.Lt, lexer.Le, lexer.Gt, lexer.Ge:
		return true
	}
	return false
}

// parseShift implements `shift := additive (('<<' | '>>') additive)*`.
func (p *Parser) parseShift() (*ast.ShiftExpr, error) {
	head, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	node := &ast.ShiftExpr{Head: head}
	for {
		tok, ok := p.cur.current()
		if !ok || (tok.Kind != lexer.ShiftL && tok.Kind != lexer.ShiftR) {
			break
		}
		p.cur.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		node.Rest = append(node.Rest, ast.ShiftOp{Op: tok.Kind, Right: right})
	}
	return node, nil
}

// parseAdditive implements `additive := term (('+' | '-') term)*`.
func (p *Parser) parseAdditive() (*ast.AdditiveExpr, error) {
	head, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	node := &ast.AdditiveExpr{Head: head}
	for {
		tok, ok := p.cur.current()
		if !ok || (tok.Kind != lexer.Plus && tok.Kind != lexer.Minus) {
			break
		}
		p.cur.advance()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		node.Rest = append(node.Rest, ast.AdditiveOp{Op: tok.Kind, Right: right})
	}
	return node, nil
}

// parseTerm implements `term := factor (('*' | '/') factor)*`.
func (p *Parser) parseTerm() (*ast.Term, error) {
	head, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	node := &ast.Term{Head: head}
	for {
		tok, ok := p.cur.current()
		if !ok || (tok.Kind != lexer.Star && tok.Kind != lexer.Slash) {
			break
		}
		p.cur.advance()
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		node.Rest = append(node.Rest, ast.TermOp{Op: tok.Kind, Right: right})
	}
	return node, nil
}

// parseFactor implements
// `factor := '(' expression ')' | unary factor | INT_LIT | IDENT`.
func (p *Parser) parseFactor() (ast.Factor, error) {
	tok, ok := p.cur.current()
	if !ok {
		return nil, unexpectedEOF("factor")
	}

	switch tok.Kind {
	case lexer.LParen:
		p.cur.advance()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RParen); err != nil {
			return nil, err
		}
		return &ast.ParenFactor{Inner: inner}, nil

	case lexer.Minus, lexer.Complement, lexer.Not:
		p.cur.advance()
		operand, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryFactor{Op: tok.Kind, Operand: operand}, nil

	case lexer.IntLiteral:
		p.cur.advance()
		value, err := parseInt32(tok.Lexeme)
		if err != nil {
			return nil, &Error{Message: err.Error(), Token: tok}
		}
		return &ast.IntLiteral{Value: value}, nil

	case lexer.Identifier:
		p.cur.advance()
		return &ast.IdentFactor{Name: tok.Lexeme}, nil

	default:
		return nil, &Error{Message: "expected an expression", Token: tok}
	}
}

func parseInt32(lexeme string) (int32, error) {
	var value int64
	for _, r := range lexeme {
		value = value*10 + int64(r-'0')
		if value > (1<<31)-1 {
			return 0, fmt.Errorf("integer literal %q overflows a 32-bit signed integer", lexeme)
		}
	}
	return int32(value), nil
}
