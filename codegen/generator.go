// Package codegen lowers an *ast.Program into GNU AT&T x86-64 assembly
// text for the Linux System V calling convention.
//
// The shape is a recursive walk over the AST, in the spirit of the
// teacher's eval/evaluator.go (which walks the same kind of tree to
// produce a runtime value) — but every "evaluate to a value" step here
// is instead "emit instructions whose execution will leave that value
// in the accumulator register," since this stage produces text, not a
// result.
package codegen

import (
	"fmt"
	"strings"

	"github.com/gomixc/gomixc/ast"
	"github.com/gomixc/gomixc/config"
)

// Generator holds the emission state for one compilation: the output
// buffer and the global label counter. Per spec.md §5 these are scoped
// to a single Generate call and never reused across compilations.
type Generator struct {
	target  config.Target
	buf     strings.Builder
	counter int

	// syms is the active function's symbol table. It is replaced at
	// the start of each function and discarded at its end — no
	// identifier is visible outside the function that declares it.
	syms *symbolTable
}

// New creates a Generator targeting t.
func New(t config.Target) *Generator {
	return &Generator{target: t}
}

// Generate emits assembly for prog using the default target.
func Generate(prog *ast.Program) (string, error) {
	return New(config.DefaultTarget()).Generate(prog)
}

// Generate lowers prog to a complete assembly text, or returns the
// first codegen.Error encountered (duplicate declaration or unresolved
// identifier).
func (g *Generator) Generate(prog *ast.Program) (string, error) {
	g.buf.Reset()
	g.counter = 0

	g.line(".globl main")
	for _, fn := range prog.Functions {
		if fn.Name != "main" {
			g.line(".globl %s", fn.Name)
		}
	}

	for _, fn := range prog.Functions {
		if err := g.genFunction(fn); err != nil {
			return "", err
		}
	}
	return g.buf.String(), nil
}

func (g *Generator) genFunction(fn *ast.Function) error {
	g.syms = newSymbolTable()
	defer func() { g.syms = nil }()

	g.line("%s:", fn.Name)
	g.line("\tpushq %%rbp")
	g.line("\tmovq %%rsp, %%rbp")

	sawReturn := false
	for _, item := range fn.Body {
		if _, ok := item.(*ast.ReturnStmt); ok {
			sawReturn = true
		}
		if err := g.genBlockItem(item); err != nil {
			return err
		}
	}
	if !sawReturn {
		g.line("\tmovl $0, %%eax")
		g.emitEpilogue()
	}
	return nil
}

// emitEpilogue writes a return sequence — restore %rsp from %rbp
// (undoing every push a declaration made), pop the saved %rbp, return.
// It is emitted once for every return statement, wherever it appears,
// and once more at function end when the body has no top-level return;
// returns are not routed through a single shared epilogue.
func (g *Generator) emitEpilogue() {
	g.line("\tmovq %%rbp, %%rsp")
	g.line("\tpopq %%rbp")
	g.line("\tret")
}

// newLabel returns the next globally unique counter value, used to
// build a family of labels (e.g. _clauseN/_endN) for one construct.
func (g *Generator) newLabel() int {
	n := g.counter
	g.counter++
	return n
}

// label builds a control-flow label name, e.g. label("clause", 3) ->
// "_clause3" under the default target. The leading prefix is the one
// knob config.Target feeds into emission (spec.md §4.3's label forms
// are written here with config.Target.Prefix standing in for the
// literal "_").
func (g *Generator) label(kind string, n int) string {
	return fmt.Sprintf("%s%s%d", g.target.Prefix, kind, n)
}

func (g *Generator) line(format string, args ...interface{}) {
	fmt.Fprintf(&g.buf, format+"\n", args...)
}
