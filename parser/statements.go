package parser

import (
	"fmt"

	"github.com/gomixc/gomixc/ast"
	"github.com/gomixc/gomixc/lexer"
)

// parseProgram implements `program := function+`.
func (p *Parser) parseProgram() (*ast.Program, error) {
	prog := &ast.Program{}
	if _, ok := p.cur.current(); !ok {
		return nil, unexpectedEOF("program (expected at least one function)")
	}
	for {
		if _, ok := p.cur.current(); !ok {
			break
		}
		fn, err := p.parseFunction()
		if err != nil {
			return nil, err
		}
		prog.Functions = append(prog.Functions, fn)
	}
	return prog, nil
}

// parseFunction implements `function := 'int' IDENT '(' ')' '{' block-item* '}'`.
func (p *Parser) parseFunction() (*ast.Function, error) {
	if _, err := p.expect(lexer.Int); err != nil {
		return nil, err
	}
	name, err := p.expect(lexer.Identifier)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LParen); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RParen); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LBrace); err != nil {
		return nil, err
	}

	fn := &ast.Function{Name: name.Lexeme}
	for {
		tok, ok := p.cur.current()
		if !ok {
			return nil, unexpectedEOF(fmt.Sprintf("body of function %q", fn.Name))
		}
		if tok.Kind == lexer.RBrace {
			p.cur.advance()
			break
		}
		item, err := p.parseBlockItem()
		if err != nil {
			return nil, err
		}
		fn.Body = append(fn.Body, item)
	}
	return fn, nil
}

// parseBlockItem implements `block-item := declaration | statement`.
func (p *Parser) parseBlockItem() (ast.BlockItem, error) {
	tok, ok := p.cur.current()
	if !ok {
		return nil, unexpectedEOF("block item")
	}
	if tok.Kind == lexer.Int {
		return p.parseDeclaration()
	}
	return p.parseStatement()
}

// parseDeclaration implements `declaration := 'int' IDENT ('=' expression)? ';'`.
func (p *Parser) parseDeclaration() (*ast.Declaration, error) {
	if _, err := p.expect(lexer.Int); err != nil {
		return nil, err
	}
	name, err := p.expect(lexer.Identifier)
	if err != nil {
		return nil, err
	}
	decl := &ast.Declaration{Name: name.Lexeme}

	tok, ok := p.cur.current()
	if !ok {
		return nil, unexpectedEOF(fmt.Sprintf("declaration of %q", name.Lexeme))
	}
	if tok.Kind == lexer.Assign {
		p.cur.advance()
		init, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		decl.Init = init
	}
	if _, err := p.expect(lexer.Semicolon); err != nil {
		return nil, err
	}
	return decl, nil
}

// parseStatement implements the `statement` production: return, if, or a
// bare expression statement.
func (p *Parser) parseStatement() (ast.Statement, error) {
	tok, ok := p.cur.current()
	if !ok {
		return nil, unexpectedEOF("statement")
	}

	switch tok.Kind {
	case lexer.Return:
		p.cur.advance()
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Semicolon); err != nil {
			return nil, err
		}
		return &ast.ReturnStmt{Value: value}, nil

	case lexer.If:
		p.cur.advance()
		if _, err := p.expect(lexer.LParen); err != nil {
			return nil, err
		}
		cond, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RParen); err != nil {
			return nil, err
		}
		then, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		ifStmt := &ast.IfStmt{Cond: cond, Then: then}

		if tok, ok := p.cur.current(); ok && tok.Kind == lexer.Else {
			p.cur.advance()
			elseStmt, err := p.parseStatement()
			if err != nil {
				return nil, err
			}
			ifStmt.Else = elseStmt
		}
		return ifStmt, nil

	default:
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Semicolon); err != nil {
			return nil, err
		}
		return &ast.ExprStmt{Value: value}, nil
	}
}
