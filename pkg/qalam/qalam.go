// Package qalam is the embeddable entry point into the interpreter core
// (SPEC_FULL.md §2 "pkg/qalam"): Compile turns source text into a
// resolved program or a diagnostic list, and Run drives the whole
// pipeline end to end and maps the outcome to spec.md §6.5's exit codes.
// cmd/qalam is a thin cobra front-end over this package; host
// applications embedding the interpreter use the same surface.
package qalam

import (
	"errors"
	"io"

	"github.com/qalam-lang/qalam/internal/ast"
	"github.com/qalam-lang/qalam/internal/builtins"
	"github.com/qalam-lang/qalam/internal/diag"
	"github.com/qalam-lang/qalam/internal/interp"
	"github.com/qalam-lang/qalam/internal/lexer"
	"github.com/qalam-lang/qalam/internal/parser"
	"github.com/qalam-lang/qalam/internal/resolver"
	"github.com/qalam-lang/qalam/internal/runtime"
)

// Program is a fully scanned, parsed, and resolved Qalam source: a
// statement list ready to hand to an Interpreter, plus the resolver's
// expression→depth table it depends on.
type Program struct {
	Statements []ast.Stmt
	Depths     resolver.Depths
}

// Compile runs the scanner, parser, and resolver over source (spec.md
// §§4.1–4.3). It stops at the first stage that reports any error and
// returns its diagnostics; a non-nil Program is only returned once all
// three stages succeed.
func Compile(source string) (*Program, []diag.Diagnostic) {
	l := lexer.New(source)
	tokens := l.ScanTokens()
	if errs := l.Errors(); len(errs) > 0 {
		return nil, scanDiagnostics(errs)
	}

	p := parser.New(tokens)
	stmts := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		return nil, parseDiagnostics(errs)
	}

	r := resolver.New()
	r.Resolve(stmts)
	if errs := r.Errors(); len(errs) > 0 {
		return nil, resolveDiagnostics(errs)
	}

	return &Program{Statements: stmts, Depths: r.Depths()}, nil
}

func scanDiagnostics(errs []lexer.Error) []diag.Diagnostic {
	out := make([]diag.Diagnostic, len(errs))
	for i, e := range errs {
		out[i] = diag.Diagnostic{Kind: diag.Scan, Message: e.Message, Line: e.Line}
	}
	return out
}

func parseDiagnostics(errs []parser.Error) []diag.Diagnostic {
	out := make([]diag.Diagnostic, len(errs))
	for i, e := range errs {
		out[i] = diag.Diagnostic{Kind: diag.Parse, Message: e.Message, Line: e.Line}
	}
	return out
}

func resolveDiagnostics(errs []resolver.Error) []diag.Diagnostic {
	out := make([]diag.Diagnostic, len(errs))
	for i, e := range errs {
		out[i] = diag.Diagnostic{Kind: diag.Resolve, Message: e.Message, Line: e.Line}
	}
	return out
}

// NewInterpreter builds an Interpreter whose qul output goes to stdout,
// with the native library (internal/builtins) already registered into
// its globals — the shared setup between Run and any caller that wants
// to drive a Program directly (e.g. to run several programs against one
// interpreter, or to inspect globals afterward).
func NewInterpreter(stdout io.Writer) *interp.Interpreter {
	in := interp.New(stdout)
	builtins.Register(in.Globals())
	return in
}

// Run executes source end to end and returns the process exit code
// spec.md §6.5 assigns to the outcome. raw distinguishes `--raw` input
// (collapses compile/runtime failure to exit code 1) from file input
// (65 for compile-time errors, 75 for a runtime error).
func Run(source string, stdout, stderr io.Writer, raw bool) int {
	program, diags := Compile(source)
	if len(diags) > 0 {
		stderr.Write([]byte(diag.FormatAll(diags) + "\n"))
		return diag.ExitCode(true, false, raw)
	}

	in := NewInterpreter(stdout)
	in.SetDepths(program.Depths)

	if err := in.Interpret(program.Statements); err != nil {
		line := 0
		var rerr *runtime.RuntimeError
		if errors.As(err, &rerr) {
			line = rerr.Line
		}
		d := diag.Diagnostic{Kind: diag.Runtime, Message: err.Error(), Line: line}
		stderr.Write([]byte(d.Format() + "\n"))
		return diag.ExitCode(false, true, raw)
	}

	return diag.ExitCode(false, false, raw)
}
