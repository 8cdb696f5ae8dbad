// Command gomixc compiles a single disciplined-C source file to x86-64
// GNU AT&T assembly, and optionally drives an external assembler/linker
// to produce an executable.
//
// Usage:
//
//	gomixc <input.c>              compile and link to ./a.out (or -o PATH)
//	gomixc -S <input.c>           emit <input>.s only, skip assembler/linker
//	gomixc -o PATH <input.c>
//	gomixc --help | -h
//	gomixc --version | -v
//	gomixc explain                interactive: paste a snippet, see tokens/AST/asm
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/gomixc/gomixc/codegen"
	"github.com/gomixc/gomixc/config"
	"github.com/gomixc/gomixc/lexer"
	"github.com/gomixc/gomixc/parser"
)

// VERSION is the current gomixc release.
var VERSION = "v0.1.0"

var (
	redColor    = color.New(color.FgRed)
	cyanColor   = color.New(color.FgCyan)
	yellowColor = color.New(color.FgYellow)
)

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		redColor.Fprintln(os.Stderr, "[USAGE ERROR] no input file given")
		showHelp()
		os.Exit(1)
	}

	if args[0] == "explain" {
		runExplain(args[1:])
		return
	}

	var (
		emitAssemblyOnly bool
		outputPath       string
		inputPath        string
	)

	for i := 0; i < len(args); i++ {
		switch arg := args[i]; arg {
		case "--help", "-h":
			showHelp()
			os.Exit(0)
		case "--version", "-v":
			showVersion()
			os.Exit(0)
		case "-S":
			emitAssemblyOnly = true
		case "-o":
			if i+1 >= len(args) {
				redColor.Fprintln(os.Stderr, "[USAGE ERROR] -o requires a PATH argument")
				os.Exit(1)
			}
			i++
			outputPath = args[i]
		default:
			if strings.HasPrefix(arg, "-") {
				redColor.Fprintf(os.Stderr, "[USAGE ERROR] unrecognized flag %q\n", arg)
				os.Exit(1)
			}
			inputPath = arg
		}
	}

	if inputPath == "" {
		redColor.Fprintln(os.Stderr, "[USAGE ERROR] no input file given")
		os.Exit(1)
	}

	compileFile(inputPath, emitAssemblyOnly, outputPath)
}

// compileFile runs the full pipeline and, unless emitAssemblyOnly is
// set, shells out to an assembler/linker to produce an executable.
// Per spec.md §7 there is no partial output: the .s file is only
// written once codegen.Generate has returned successfully.
func compileFile(inputPath string, emitAssemblyOnly bool, outputPath string) {
	source, err := os.ReadFile(inputPath)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[FILE ERROR] could not read %q: %v\n", inputPath, err)
		os.Exit(1)
	}

	asm, err := compile(string(source))
	if err != nil {
		reportCompileError(inputPath, err)
		os.Exit(1)
	}

	asmPath := strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".s"
	if err := os.WriteFile(asmPath, []byte(asm), 0o644); err != nil {
		redColor.Fprintf(os.Stderr, "[FILE ERROR] could not write %q: %v\n", asmPath, err)
		os.Exit(1)
	}

	if emitAssemblyOnly {
		return
	}

	target := config.DefaultTarget()
	if outputPath == "" {
		outputPath = "a.out"
	}
	cmd := exec.Command(target.As, asmPath, "-o", outputPath)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			os.Exit(exitErr.ExitCode())
		}
		redColor.Fprintf(os.Stderr, "[ASSEMBLER ERROR] %v\n", err)
		os.Exit(1)
	}
}

// compile runs lex -> parse -> generate over source, returning the
// emitted assembly text.
func compile(source string) (string, error) {
	tokens, err := lexer.Lex(source)
	if err != nil {
		return "", err
	}
	prog, err := parser.Parse(tokens)
	if err != nil {
		return "", err
	}
	return codegen.Generate(prog)
}

// reportCompileError prints a lexer/parser/codegen error in red,
// naming the offending lexeme and span where the error carries one.
func reportCompileError(inputPath string, err error) {
	switch e := err.(type) {
	case *lexer.Error:
		redColor.Fprintf(os.Stderr, "%s: [LEXICAL ERROR] unrecognized input %q at byte %d\n", inputPath, e.Snippet, e.Offset)
	case *parser.Error:
		if e.AtEOF {
			redColor.Fprintf(os.Stderr, "%s: [PARSE ERROR] %s (at end of input)\n", inputPath, e.Message)
		} else {
			redColor.Fprintf(os.Stderr, "%s: [PARSE ERROR] %s, got %s\n", inputPath, e.Message, e.Token)
		}
	case *codegen.Error:
		redColor.Fprintf(os.Stderr, "%s: [SEMANTIC ERROR] %s\n", inputPath, e.Message)
	default:
		redColor.Fprintf(os.Stderr, "%s: %v\n", inputPath, err)
	}
}

func showHelp() {
	cyanColor.Println("gomixc - a disciplined-C-subset to x86-64 assembly compiler")
	cyanColor.Println("")
	cyanColor.Println("USAGE:")
	yellowColor.Println("  gomixc <input.c>          compile and link to ./a.out (or -o PATH)")
	yellowColor.Println("  gomixc -S <input.c>       emit <input>.s only, skip assembler/linker")
	yellowColor.Println("  gomixc -o PATH <input.c>  write the linked executable to PATH")
	yellowColor.Println("  gomixc --help             display this help message")
	yellowColor.Println("  gomixc --version          display version information")
	yellowColor.Println("  gomixc explain            interactively inspect tokens/AST/assembly")
}

func showVersion() {
	cyanColor.Printf("gomixc %s\n", VERSION)
	fmt.Fprintln(os.Stdout)
}
