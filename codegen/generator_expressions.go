package codegen

import (
	"github.com/gomixc/gomixc/ast"
	"github.com/gomixc/gomixc/lexer"
)

// genExpression dispatches on the two Expression forms: assignment and
// conditional. Every case below leaves its 32-bit result in %eax, per
// spec.md §4.3's accumulator convention.
func (g *Generator) genExpression(expr ast.Expression) error {
	switch n := expr.(type) {
	case *ast.AssignExpr:
		return g.genAssign(n)
	case *ast.CondExpr:
		return g.genCond(n)
	default:
		panic("codegen: unhandled expression type")
	}
}

// genAssign implements spec.md §4.3's Assignment rule.
func (g *Generator) genAssign(n *ast.AssignExpr) error {
	if err := g.genExpression(n.Value); err != nil {
		return err
	}
	offset, ok := g.syms.lookup(n.Name)
	if !ok {
		return unresolvedIdentifierError(n.Name)
	}
	g.line("\tmovl %%eax, %d(%%rbp)", offset)
	return nil
}

// genCond implements the ternary `c ? a : b`, or passes through to the
// logical-or level when Then/Else are absent.
func (g *Generator) genCond(n *ast.CondExpr) error {
	if n.Then == nil {
		return g.genLogicalOr(n.Or)
	}
	if err := g.genLogicalOr(n.Or); err != nil {
		return err
	}
	id := g.newLabel()
	elseLabel := g.label("e", id)
	postLabel := g.label("post_cond", id)
	g.line("\tcmpl $0, %%eax")
	g.line("\tje %s", elseLabel)
	if err := g.genExpression(n.Then); err != nil {
		return err
	}
	g.line("\tjmp %s", postLabel)
	g.line("%s:", elseLabel)
	if err := g.genCond(n.Else); err != nil {
		return err
	}
	g.line("%s:", postLabel)
	return nil
}

// genLogicalOr implements `||`'s short-circuit lowering from spec.md
// §4.3: when the left operand is already nonzero, the right operand
// (and any side effects or division-by-zero traps in it) must never
// execute.
func (g *Generator) genLogicalOr(n *ast.LogicalOrExpr) error {
	if err := g.genLogicalAnd(n.Head); err != nil {
		return err
	}
	for _, right := range n.Rest {
		id := g.newLabel()
		clauseLabel := g.label("clause", id)
		endLabel := g.label("end", id)
		g.line("\tcmpl $0, %%eax")
		g.line("\tje %s", clauseLabel)
		g.line("\tmovl $1, %%eax")
		g.line("\tjmp %s", endLabel)
		g.line("%s:", clauseLabel)
		if err := g.genLogicalAnd(right); err != nil {
			return err
		}
		g.line("\tcmpl $0, %%eax")
		g.line("\tmovl $0, %%eax")
		g.line("\tsetne %%al")
		g.line("%s:", endLabel)
	}
	return nil
}

// genLogicalAnd implements `&&`'s short-circuit lowering: when the
// left operand is already zero, %eax already holds 0 and the right
// operand is skipped entirely.
func (g *Generator) genLogicalAnd(n *ast.LogicalAndExpr) error {
	if err := g.genBitOr(n.Head); err != nil {
		return err
	}
	for _, right := range n.Rest {
		id := g.newLabel()
		clauseLabel := g.label("clause", id)
		endLabel := g.label("end", id)
		g.line("\tcmpl $0, %%eax")
		g.line("\tjne %s", clauseLabel)
		g.line("\tjmp %s", endLabel)
		g.line("%s:", clauseLabel)
		if err := g.genBitOr(right); err != nil {
			return err
		}
		g.line("\tcmpl $0, %%eax")
		g.line("\tmovl $0, %%eax")
		g.line("\tsetne %%al")
		g.line("%s:", endLabel)
	}
	return nil
}

func (g *Generator) genBitOr(n *ast.BitOrExpr) error {
	if err := g.genBitXor(n.Head); err != nil {
		return err
	}
	for _, right := range n.Rest {
		if err := genCommutative(g, right, (*Generator).genBitXor, "orl"); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) genBitXor(n *ast.BitXorExpr) error {
	if err := g.genBitAnd(n.Head); err != nil {
		return err
	}
	for _, right := range n.Rest {
		if err := genCommutative(g, right, (*Generator).genBitAnd, "xorl"); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) genBitAnd(n *ast.BitAndExpr) error {
	if err := g.genEquality(n.Head); err != nil {
		return err
	}
	for _, right := range n.Rest {
		if err := genCommutative(g, right, (*Generator).genEquality, "andl"); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) genEquality(n *ast.EqualityExpr) error {
	if err := g.genRelational(n.Head); err != nil {
		return err
	}
	for _, pair := range n.Rest {
		setcc := "sete"
		if pair.Op == lexer.NotEq {
			setcc = "setne"
		}
		if err := genCompare(g, pair.Right, (*Generator).genRelational, setcc); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) genRelational(n *ast.RelationalExpr) error {
	if err := g.genShift(n.Head); err != nil {
		return err
	}
	for _, pair := range n.Rest {
		var setcc string
		switch pair.Op {
		case lexer.Lt:
			setcc = "setl"
		case lexer.Le:
			setcc = "setle"
		case lexer.Gt:
			setcc = "setg"
		case lexer.Ge:
			setcc = "setge"
		}
		if err := genCompare(g, pair.Right, (*Generator).genShift, setcc); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) genShift(n *ast.ShiftExpr) error {
	if err := g.genAdditive(n.Head); err != nil {
		return err
	}
	for _, pair := range n.Rest {
		mnemonic := "sall"
		if pair.Op == lexer.ShiftR {
			mnemonic = "sarl"
		}
		// Right operand is the shift count: push the shift target
		// first, evaluate it, move it to %cl, pop the shift target
		// back into %eax, then shift — the non-commutative ordering
		// spec.md §4.3 calls for.
		g.line("\tpushq %%rax")
		if err := g.genAdditive(pair.Right); err != nil {
			return err
		}
		g.line("\tmovl %%eax, %%ecx")
		g.line("\tpopq %%rax")
		g.line("\t%s %%cl, %%eax", mnemonic)
	}
	return nil
}

func (g *Generator) genAdditive(n *ast.AdditiveExpr) error {
	if err := g.genTerm(n.Head); err != nil {
		return err
	}
	for _, pair := range n.Rest {
		if pair.Op == lexer.Plus {
			if err := genCommutative(g, pair.Right, (*Generator).genTerm, "addl"); err != nil {
				return err
			}
			continue
		}
		// '-': push A; evaluate right into A; move A to C; pop A; A <- A - C.
		g.line("\tpushq %%rax")
		if err := g.genTerm(pair.Right); err != nil {
			return err
		}
		g.line("\tmovl %%eax, %%ecx")
		g.line("\tpopq %%rax")
		g.line("\tsubl %%ecx, %%eax")
	}
	return nil
}

func (g *Generator) genTerm(n *ast.Term) error {
	if err := g.genFactor(n.Head); err != nil {
		return err
	}
	for _, pair := range n.Rest {
		if pair.Op == lexer.Star {
			if err := genCommutative(g, pair.Right, (*Generator).genFactor, "imull"); err != nil {
				return err
			}
			continue
		}
		// '/': push A; evaluate right into A; move A to C; pop A;
		// sign-extend; idivl C; quotient in A.
		g.line("\tpushq %%rax")
		if err := g.genFactor(pair.Right); err != nil {
			return err
		}
		g.line("\tmovl %%eax, %%ecx")
		g.line("\tpopq %%rax")
		g.line("\tcdq")
		g.line("\tidivl %%ecx")
	}
	return nil
}

// genCommutative implements the shared pattern behind '+', '*', '&',
// '|', '^': push the left operand (already in %eax), evaluate the
// right operand, pop the left back into %ecx, combine with mnemonic.
// Order does not matter for these operators, so no operand-ordering
// care is needed beyond keeping both values live across the call to
// genRight.
func genCommutative[T any](g *Generator, right T, genRight func(*Generator, T) error, mnemonic string) error {
	g.line("\tpushq %%rax")
	if err := genRight(g, right); err != nil {
		return err
	}
	g.line("\tpopq %%rcx")
	g.line("\t%s %%ecx, %%eax", mnemonic)
	return nil
}

// genCompare implements the shared relational/equality pattern: push
// the left operand, evaluate the right, pop the left into %ecx,
// compare, zero the accumulator, then set its low byte per setcc.
func genCompare[T any](g *Generator, right T, genRight func(*Generator, T) error, setcc string) error {
	g.line("\tpushq %%rax")
	if err := genRight(g, right); err != nil {
		return err
	}
	g.line("\tpopq %%rcx")
	g.line("\tcmpl %%eax, %%ecx")
	g.line("\tmovl $0, %%eax")
	g.line("\t%s %%al", setcc)
	return nil
}

// genFactor implements the leaf-level Factor production.
func (g *Generator) genFactor(f ast.Factor) error {
	switch n := f.(type) {
	case *ast.ParenFactor:
		return g.genExpression(n.Inner)

	case *ast.UnaryFactor:
		if err := g.genFactor(n.Operand); err != nil {
			return err
		}
		switch n.Op {
		case lexer.Minus:
			g.line("\tnegl %%eax")
		case lexer.Complement:
			g.line("\tnotl %%eax")
		case lexer.Not:
			g.line("\tcmpl $0, %%eax")
			g.line("\tmovl $0, %%eax")
			g.line("\tsete %%al")
		}
		return nil

	case *ast.IntLiteral:
		g.line("\tmovl $%d, %%eax", n.Value)
		return nil

	case *ast.IdentFactor:
		offset, ok := g.syms.lookup(n.Name)
		if !ok {
			return unresolvedIdentifierError(n.Name)
		}
		g.line("\tmovl %d(%%rbp), %%eax", offset)
		return nil

	default:
		panic("codegen: unhandled factor type")
	}
}
