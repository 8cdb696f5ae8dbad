package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(tokens []Token) []Kind {
	out := make([]Kind, len(tokens))
	for i, t := range tokens {
		out[i] = t.Kind
	}
	return out
}

func TestLex_Punctuation(t *testing.T) {
	tokens, err := Lex("int main() { return 0; }")
	require.NoError(t, err)
	assert.Equal(t, []Kind{Int, Identifier, LParen, RParen, LBrace, Return, IntLiteral, Semicolon, RBrace}, kinds(tokens))
}

func TestLex_KeywordOutranksIdentifier(t *testing.T) {
	tokens, err := Lex("int intern = 1;")
	require.NoError(t, err)
	require.Len(t, tokens, 5)
	assert.Equal(t, Int, tokens[0].Kind)
	assert.Equal(t, Identifier, tokens[1].Kind)
	assert.Equal(t, "intern", tokens[1].Lexeme)
}

func TestLex_LongestMatchCompoundOperators(t *testing.T) {
	tokens, err := Lex("a <<= b; a << b; a < b;")
	require.NoError(t, err)
	var shiftKinds []Kind
	for _, tok := range tokens {
		if tok.Kind == ShiftLAssign || tok.Kind == ShiftL || tok.Kind == Lt {
			shiftKinds = append(shiftKinds, tok.Kind)
		}
	}
	assert.Equal(t, []Kind{ShiftLAssign, ShiftL, Lt}, shiftKinds)
}

func TestLex_AssignVsEquality(t *testing.T) {
	tokens, err := Lex("a = b == c;")
	require.NoError(t, err)
	assert.Equal(t, []Kind{Identifier, Assign, Identifier, Eq, Identifier, Semicolon}, kinds(tokens))
}

func TestLex_SpansAreDisjointAndSorted(t *testing.T) {
	tokens, err := Lex("int x = 12 + y;")
	require.NoError(t, err)
	for i := 1; i < len(tokens); i++ {
		assert.LessOrEqual(t, tokens[i-1].Start, tokens[i].Start)
		assert.LessOrEqual(t, tokens[i-1].End, tokens[i].Start)
	}
}

func TestLex_CompoundAssignRecognized(t *testing.T) {
	tokens, err := Lex("x += 1;")
	require.NoError(t, err)
	assert.Equal(t, PlusAssign, tokens[1].Kind)
	assert.True(t, tokens[1].Kind.IsCompoundAssign())
}

func TestLex_UnrecognizedByteIsLexicalError(t *testing.T) {
	_, err := Lex("int x = 1 @ 2;")
	require.Error(t, err)
	var lexErr *Error
	require.ErrorAs(t, err, &lexErr)
	assert.Equal(t, "@", lexErr.Snippet)
}

func TestLex_WhitespaceGapIsNotAnError(t *testing.T) {
	_, err := Lex("int   x\t=\n1 ;")
	require.NoError(t, err)
}
