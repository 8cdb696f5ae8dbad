package lexer

import (
	"fmt"
	"regexp"
	"sort"
)

// Error reports a lexical failure: a run of non-whitespace bytes that no
// pattern claimed. It carries the offending byte offset so the caller can
// point at the exact location in the source.
type Error struct {
	Offset int
	Snippet string
}

func (e *Error) Error() string {
	return fmt.Sprintf("lexical error at byte %d: unrecognized input %q", e.Offset, e.Snippet)
}

// pattern is one entry in the priority-ordered list the lexer scans with.
// classify turns a matched lexeme into its Kind; only for the identifier
// pattern does this depend on the matched text itself.
type pattern struct {
	re       *regexp.Regexp
	classify func(text string) Kind
}

// patterns is the priority-ordered list from spec §4.1. Earlier entries
// claim bytes first; later entries may not steal an already-claimed byte.
// Order matters: keywords must outrank the identifier pattern (so "int"
// is not lexed as an identifier), and compound operators must outrank
// their single/double-character prefixes (so "<<=" is not split into
// "<<" followed by a dangling "=").
var patterns = []pattern{
	{regexp.MustCompile(`\{`), fixed(LBrace)},
	{regexp.MustCompile(`\}`), fixed(RBrace)},
	{regexp.MustCompile(`\(`), fixed(LParen)},
	{regexp.MustCompile(`\)`), fixed(RParen)},
	{regexp.MustCompile(`;`), fixed(Semicolon)},
	{regexp.MustCompile(`:`), fixed(Colon)},
	{regexp.MustCompile(`\?`), fixed(Question)},

	{regexp.MustCompile(`\bint\b`), fixed(Int)},
	{regexp.MustCompile(`\breturn\b`), fixed(Return)},
	{regexp.MustCompile(`\bif\b`), fixed(If)},
	{regexp.MustCompile(`\belse\b`), fixed(Else)},

	{regexp.MustCompile(`[A-Za-z_]\w*`), classifyWord},
	{regexp.MustCompile(`[0-9]+`), fixed(IntLiteral)},

	{regexp.MustCompile(`<<=`), fixed(ShiftLAssign)},
	{regexp.MustCompile(`>>=`), fixed(ShiftRAssign)},
	{regexp.MustCompile(`==`), fixed(Eq)},
	{regexp.MustCompile(`<=`), fixed(Le)},
	{regexp.MustCompile(`>=`), fixed(Ge)},
	{regexp.MustCompile(`!=`), fixed(NotEq)},
	{regexp.MustCompile(`\+=`), fixed(PlusAssign)},
	{regexp.MustCompile(`-=`), fixed(MinusAssign)},
	{regexp.MustCompile(`\*=`), fixed(StarAssign)},
	{regexp.MustCompile(`/=`), fixed(SlashAssign)},
	{regexp.MustCompile(`%=`), fixed(PercentAssign)},
	{regexp.MustCompile(`&=`), fixed(AmpAssign)},
	{regexp.MustCompile(`\|=`), fixed(PipeAssign)},
	{regexp.MustCompile(`\^=`), fixed(CaretAssign)},
	{regexp.MustCompile(`<<`), fixed(ShiftL)},
	{regexp.MustCompile(`>>`), fixed(ShiftR)},
	{regexp.MustCompile(`&&`), fixed(AndAnd)},
	{regexp.MustCompile(`\|\|`), fixed(OrOr)},

	{regexp.MustCompile(`~`), fixed(Complement)},
	{regexp.MustCompile(`!`), fixed(Not)},
	{regexp.MustCompile(`\+`), fixed(Plus)},
	{regexp.MustCompile(`-`), fixed(Minus)},
	{regexp.MustCompile(`\*`), fixed(Star)},
	{regexp.MustCompile(`/`), fixed(Slash)},
	{regexp.MustCompile(`%`), fixed(Percent)},
	{regexp.MustCompile(`=`), fixed(Assign)},
	{regexp.MustCompile(`<`), fixed(Lt)},
	{regexp.MustCompile(`>`), fixed(Gt)},
	{regexp.MustCompile(`&`), fixed(Amp)},
	{regexp.MustCompile(`\|`), fixed(Pipe)},
	{regexp.MustCompile(`\^`), fixed(Caret)},
}

// fixed returns a classify func for a pattern whose Kind never depends
// on the matched text (every pattern except the identifier pattern,
// whose match is checked against the reserved words by classifyWord).
func fixed(k Kind) func(string) Kind {
	return func(string) Kind { return k }
}

// classifyWord distinguishes a reserved word from a plain identifier.
func classifyWord(text string) Kind {
	if k, ok := keywords[text]; ok {
		return k
	}
	return Identifier
}

// Lex scans src into a token stream. It runs every pattern in priority
// order over the whole source, keeping a match only when none of its
// bytes overlap a byte already claimed by a higher-priority match, then
// sorts the accepted tokens by start offset. Any run of non-whitespace
// bytes left unclaimed between tokens is a lexical error.
func Lex(src string) ([]Token, error) {
	claimed := make([]bool, len(src))
	var tokens []Token

	for _, p := range patterns {
		for _, loc := range p.re.FindAllStringIndex(src, -1) {
			start, end := loc[0], loc[1]
			if overlaps(claimed, start, end) {
				continue
			}
			for i := start; i < end; i++ {
				claimed[i] = true
			}
			text := src[start:end]
			tokens = append(tokens, Token{
				Lexeme: text,
				Kind:   p.classify(text),
				Start:  start,
				End:    end,
			})
		}
	}

	sort.Slice(tokens, func(i, j int) bool { return tokens[i].Start < tokens[j].Start })

	if err := checkGaps(src, claimed); err != nil {
		return nil, err
	}
	return tokens, nil
}

// overlaps reports whether any byte in [start, end) is already claimed.
func overlaps(claimed []bool, start, end int) bool {
	for i := start; i < end; i++ {
		if claimed[i] {
			return true
		}
	}
	return false
}

// checkGaps walks the unclaimed byte ranges and fails on the first one
// that contains a non-whitespace byte.
func checkGaps(src string, claimed []bool) error {
	i := 0
	for i < len(src) {
		if claimed[i] {
			i++
			continue
		}
		start := i
		for i < len(src) && !claimed[i] {
			i++
		}
		gap := src[start:i]
		if off, ok := firstNonWhitespace(gap); ok {
			snippet := trimTrailingWhitespace(gap[off:])
			return &Error{Offset: start + off, Snippet: snippet}
		}
	}
	return nil
}

func isWhitespaceByte(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// firstNonWhitespace returns the byte offset of the first non-whitespace
// byte in s, if any.
func firstNonWhitespace(s string) (int, bool) {
	for i := 0; i < len(s); i++ {
		if !isWhitespaceByte(s[i]) {
			return i, true
		}
	}
	return 0, false
}

// trimTrailingWhitespace drops trailing whitespace bytes so the reported
// snippet is just the offending run.
func trimTrailingWhitespace(s string) string {
	end := len(s)
	for end > 0 && isWhitespaceByte(s[end-1]) {
		end--
	}
	return s[:end]
}
