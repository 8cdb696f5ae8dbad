package codegen

import "fmt"

// Error reports a semantic failure discovered during code generation:
// this grammar has no separate semantic-analysis pass (spec.md names
// exactly three components — lexer, parser, code generator — so
// declaration and name resolution are checked while emitting, the
// first and only time each identifier is visited).
type Error struct {
	Kind    ErrorKind
	Name    string
	Message string
}

// ErrorKind distinguishes the two semantic faults this language can
// exhibit; both are hard failures with no recovery.
type ErrorKind int

const (
	// DuplicateDeclaration: a name was declared twice in one function.
	DuplicateDeclaration ErrorKind = iota
	// UnresolvedIdentifier: a name was read or assigned before (or
	// without) being declared in the enclosing function.
	UnresolvedIdentifier
)

func (e *Error) Error() string {
	return fmt.Sprintf("semantic error: %s", e.Message)
}

func duplicateDeclarationError(name string) error {
	return &Error{
		Kind:    DuplicateDeclaration,
		Name:    name,
		Message: fmt.Sprintf("%q is already declared in this function", name),
	}
}

func unresolvedIdentifierError(name string) error {
	return &Error{
		Kind:    UnresolvedIdentifier,
		Name:    name,
		Message: fmt.Sprintf("%q is used before it is declared", name),
	}
}
