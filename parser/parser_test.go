package parser

import (
	"testing"

	"github.com/gomixc/gomixc/ast"
	"github.com/gomixc/gomixc/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	tokens, err := lexer.Lex(src)
	require.NoError(t, err)
	prog, err := Parse(tokens)
	require.NoError(t, err)
	return prog
}

// termOf descends a CondExpr's logical-or chain down to the Term level,
// one ladder rung at a time, so a mistake in counting hops can't hide in
// a long dotted chain.
func termOf(cond *ast.CondExpr) *ast.Term {
	logicalAnd := cond.Or.Head
	bitOr := logicalAnd.Head
	bitXor := bitOr.Head
	bitAnd := bitXor.Head
	equality := bitAnd.Head
	relational := equality.Head
	shift := relational.Head
	additive := shift.Head
	return additive.Head
}

func additiveOf(cond *ast.CondExpr) *ast.AdditiveExpr {
	logicalAnd := cond.Or.Head
	bitOr := logicalAnd.Head
	bitXor := bitOr.Head
	bitAnd := bitXor.Head
	equality := bitAnd.Head
	relational := equality.Head
	shift := relational.Head
	return shift.Head
}

func factorOf(cond *ast.CondExpr) ast.Factor {
	return termOf(cond).Head
}

func TestParse_SimpleReturn(t *testing.T) {
	prog := mustParse(t, "int main() { return 2; }")
	require.Len(t, prog.Functions, 1)
	fn := prog.Functions[0]
	assert.Equal(t, "main", fn.Name)
	require.Len(t, fn.Body, 1)
	ret, ok := fn.Body[0].(*ast.ReturnStmt)
	require.True(t, ok)
	lit := factorOf(ret.Value.(*ast.CondExpr)).(*ast.IntLiteral)
	assert.EqualValues(t, 2, lit.Value)
}

// Precedence: `1 + 2 * 3` must nest `*` as a child of the additive level.
func TestParse_Precedence(t *testing.T) {
	prog := mustParse(t, "int main() { return 1 + 2 * 3; }")
	ret := prog.Functions[0].Body[0].(*ast.ReturnStmt)
	add := additiveOf(ret.Value.(*ast.CondExpr))
	require.Len(t, add.Rest, 1)
	assert.Equal(t, lexer.Plus, add.Rest[0].Op)
	require.Len(t, add.Rest[0].Right.Rest, 1)
	assert.Equal(t, lexer.Star, add.Rest[0].Right.Rest[0].Op)
}

// `1 * 2 + 3` must instead fold the multiplication into the head term.
func TestParse_PrecedenceOtherOrder(t *testing.T) {
	prog := mustParse(t, "int main() { return 1 * 2 + 3; }")
	ret := prog.Functions[0].Body[0].(*ast.ReturnStmt)
	add := additiveOf(ret.Value.(*ast.CondExpr))
	require.Len(t, add.Rest, 1)
	assert.Equal(t, lexer.Plus, add.Rest[0].Op)
	require.Len(t, add.Head.Rest, 1)
	assert.Equal(t, lexer.Star, add.Head.Rest[0].Op)
	assert.Empty(t, add.Rest[0].Right.Rest)
}

func TestParse_ParenthesizationEquivalence(t *testing.T) {
	plain := mustParse(t, "int main() { return 1 + 2; }")
	parenthesized := mustParse(t, "int main() { return (1) + (2); }")

	addPlain := additiveOf(plain.Functions[0].Body[0].(*ast.ReturnStmt).Value.(*ast.CondExpr))
	addParen := additiveOf(parenthesized.Functions[0].Body[0].(*ast.ReturnStmt).Value.(*ast.CondExpr))

	litPlain := addPlain.Head.Head.(*ast.IntLiteral)
	paren := addParen.Head.Head.(*ast.ParenFactor)
	litParen := factorOf(paren.Inner.(*ast.CondExpr)).(*ast.IntLiteral)
	assert.Equal(t, litPlain.Value, litParen.Value)
}

// Associativity: `a = b = c` must parse as `a = (b = c)`.
func TestParse_AssignmentIsRightAssociative(t *testing.T) {
	prog := mustParse(t, "int main() { int a = 0; int b = 0; int c = 0; a = b = c; return a; }")
	exprStmt := prog.Functions[0].Body[3].(*ast.ExprStmt)
	outer := exprStmt.Value.(*ast.AssignExpr)
	assert.Equal(t, "a", outer.Name)
	inner, ok := outer.Value.(*ast.AssignExpr)
	require.True(t, ok)
	assert.Equal(t, "b", inner.Name)
}

// Associativity: `a - b - c` must parse as `(a - b) - c`: a single
// AdditiveExpr with two trailing operands off one head.
func TestParse_SubtractionIsLeftAssociative(t *testing.T) {
	prog := mustParse(t, "int main() { int a=0;int b=0;int c=0; return a - b - c; }")
	ret := prog.Functions[0].Body[3].(*ast.ReturnStmt)
	add := additiveOf(ret.Value.(*ast.CondExpr))
	require.Len(t, add.Rest, 2)
	assert.Equal(t, lexer.Minus, add.Rest[0].Op)
	assert.Equal(t, lexer.Minus, add.Rest[1].Op)
}

func TestParse_ConditionalExpression(t *testing.T) {
	prog := mustParse(t, "int main() { int x = 5; return x > 3 ? x - 1 : x + 1; }")
	ret := prog.Functions[0].Body[1].(*ast.ReturnStmt)
	cond := ret.Value.(*ast.CondExpr)
	require.NotNil(t, cond.Then)
	require.NotNil(t, cond.Else)
}

func TestParse_MultipleFunctions(t *testing.T) {
	prog := mustParse(t, "int f() { return 1; } int g() { return 2; }")
	require.Len(t, prog.Functions, 2)
	assert.Equal(t, "f", prog.Functions[0].Name)
	assert.Equal(t, "g", prog.Functions[1].Name)
}

func TestParse_IfElse(t *testing.T) {
	prog := mustParse(t, "int main() { if (1) return 1; else return 0; }")
	ifStmt := prog.Functions[0].Body[0].(*ast.IfStmt)
	require.NotNil(t, ifStmt.Else)
}

func TestParse_TrailingOperatorIsHardError(t *testing.T) {
	tokens, err := lexer.Lex("int main() { return 1 +; }")
	require.NoError(t, err)
	_, err = Parse(tokens)
	require.Error(t, err)
	var perr *Error
	require.ErrorAs(t, err, &perr)
}

func TestParse_CompoundAssignmentIsRejected(t *testing.T) {
	tokens, err := lexer.Lex("int main() { int a = 0; a += 1; return a; }")
	require.NoError(t, err)
	_, err = Parse(tokens)
	require.Error(t, err)
}

func TestParse_UnexpectedEOFInBody(t *testing.T) {
	tokens, err := lexer.Lex("int main() { return 1;")
	require.NoError(t, err)
	_, err = Parse(tokens)
	require.Error(t, err)
	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.True(t, perr.AtEOF)
}
