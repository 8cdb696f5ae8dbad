package main

import (
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/gomixc/gomixc/ast"
	"github.com/gomixc/gomixc/codegen"
	"github.com/gomixc/gomixc/config"
	"github.com/gomixc/gomixc/lexer"
	"github.com/gomixc/gomixc/parser"
)

var (
	blueColor  = color.New(color.FgBlue)
	greenColor = color.New(color.FgGreen)
)

const explainLine = "----------------------------------------------------------------"
const explainPrompt = "gomixc explain> "

// runExplain starts an interactive session: the user pastes one
// function-definition snippet at a time, terminated by a blank line,
// and sees its token stream, AST dump, and emitted assembly. Grounded
// on the teacher's repl.Repl.Start loop (readline for line editing and
// history), but each "turn" is a whole program instead of one
// expression, since this grammar has no standalone top-level
// expressions — a compilable unit is always at least one function.
func runExplain(args []string) {
	target := config.DefaultTarget()
	for i := 0; i < len(args); i++ {
		if args[i] == "-c" && i+1 < len(args) {
			loaded, err := config.Load(args[i+1])
			if err != nil {
				redColor.Fprintf(os.Stderr, "[CONFIG ERROR] %v\n", err)
				os.Exit(1)
			}
			target = loaded
			i++
		}
	}

	blueColor.Println(explainLine)
	greenColor.Println("gomixc explain — paste a program, blank line to compile, \"exit\" to quit")
	blueColor.Println(explainLine)

	rl, err := readline.New(explainPrompt)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[READLINE ERROR] %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	gen := codegen.New(target)
	var lines []string
	for {
		line, err := rl.Readline()
		if err != nil {
			os.Stdout.WriteString("Good bye!\n")
			return
		}
		trimmed := strings.TrimRight(line, " \t\r")

		if len(lines) == 0 && strings.TrimSpace(trimmed) == "exit" {
			os.Stdout.WriteString("Good bye!\n")
			return
		}

		if trimmed == "" && len(lines) > 0 {
			rl.SaveHistory(strings.Join(lines, "\n"))
			explainSnippet(gen, strings.Join(lines, "\n"))
			lines = nil
			continue
		}
		if trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
}

func explainSnippet(gen *codegen.Generator, source string) {
	tokens, err := lexer.Lex(source)
	if err != nil {
		redColor.Printf("[LEXICAL ERROR] %v\n", err)
		return
	}
	yellowColor.Println("tokens:")
	for _, tok := range tokens {
		yellowColor.Printf("  %s\n", tok)
	}

	prog, err := parser.Parse(tokens)
	if err != nil {
		redColor.Printf("[PARSE ERROR] %v\n", err)
		return
	}
	yellowColor.Println("ast:")
	yellowColor.Print(ast.Dump(prog))

	out, err := gen.Generate(prog)
	if err != nil {
		redColor.Printf("[SEMANTIC ERROR] %v\n", err)
		return
	}
	yellowColor.Println("assembly:")
	yellowColor.Print(out)
	blueColor.Println(explainLine)
}
