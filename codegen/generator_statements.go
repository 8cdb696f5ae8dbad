package codegen

import "github.com/gomixc/gomixc/ast"

func (g *Generator) genBlockItem(item ast.BlockItem) error {
	switch n := item.(type) {
	case *ast.Declaration:
		return g.genDeclaration(n)
	case ast.Statement:
		return g.genStatement(n)
	default:
		panic("codegen: unhandled block item type")
	}
}

// genDeclaration implements spec.md §4.3's Declaration rule: evaluate
// the initializer (or default to zero), bind the name to the next slot
// symbolTable.declare hands out, then push the value — which both
// stores it and reserves that stack slot in one instruction.
func (g *Generator) genDeclaration(decl *ast.Declaration) error {
	if decl.Init != nil {
		if err := g.genExpression(decl.Init); err != nil {
			return err
		}
	} else {
		g.line("\tmovl $0, %%eax")
	}
	if _, dup := g.syms.declare(decl.Name); dup {
		return duplicateDeclarationError(decl.Name)
	}
	g.line("\tpushq %%rax")
	return nil
}

func (g *Generator) genStatement(stmt ast.Statement) error {
	switch n := stmt.(type) {
	case *ast.ReturnStmt:
		if err := g.genExpression(n.Value); err != nil {
			return err
		}
		g.emitEpilogue()
		return nil

	case *ast.ExprStmt:
		return g.genExpression(n.Value)

	case *ast.IfStmt:
		return g.genIf(n)

	default:
		panic("codegen: unhandled statement type")
	}
}

// genIf implements spec.md §4.3's If-statement rule. One counter value
// serves both of this construct's labels, per §4.3's label-uniqueness
// rule ("consumes one new counter value ... uses it for all labels it
// generates").
func (g *Generator) genIf(stmt *ast.IfStmt) error {
	if err := g.genExpression(stmt.Cond); err != nil {
		return err
	}
	n := g.newLabel()
	elseLabel := g.label("e", n)
	g.line("\tcmpl $0, %%eax")
	g.line("\tje %s", elseLabel)

	if err := g.genStatement(stmt.Then); err != nil {
		return err
	}

	if stmt.Else == nil {
		g.line("%s:", elseLabel)
		return nil
	}

	postLabel := g.label("post_cond", n)
	g.line("\tjmp %s", postLabel)
	g.line("%s:", elseLabel)
	if err := g.genStatement(stmt.Else); err != nil {
		return err
	}
	g.line("%s:", postLabel)
	return nil
}
