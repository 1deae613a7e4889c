// Package diag implements Qalam's error model and diagnostic reporter
// (spec.md §7): the four error kinds (scan, parse, resolve, runtime), a
// uniform formatted rendering, and the exit-code mapping of spec.md §6.5.
package diag

import (
	"fmt"
	"strings"
)

// Kind is one of the four diagnostic categories spec.md §7 defines.
type Kind int

const (
	Scan Kind = iota
	Parse
	Resolve
	Runtime
)

func (k Kind) String() string {
	switch k {
	case Scan:
		return "ScanError"
	case Parse:
		return "ParseError"
	case Resolve:
		return "ResolveError"
	case Runtime:
		return "RuntimeError"
	default:
		return "Error"
	}
}

// Diagnostic is a single reported error: a kind, a human message, and the
// 1-based source line it occurred at (spec.md caps location precision at
// a line number — no column or range).
type Diagnostic struct {
	Kind    Kind
	Message string
	Line    int
}

// Format renders a single diagnostic as `<Kind>: <message>\nat line N`
// (spec.md §7).
func (d Diagnostic) Format() string {
	return fmt.Sprintf("%s: %s\nat line %d", d.Kind, d.Message, d.Line)
}

// FormatAll renders a batch of diagnostics of the same kind, one per
// paragraph, used when the scanner/parser reports more than one error in
// a single pass (spec.md §4.2 recoverable errors via synchronize).
func FormatAll(diags []Diagnostic) string {
	parts := make([]string, len(diags))
	for i, d := range diags {
		parts[i] = d.Format()
	}
	return strings.Join(parts, "\n\n")
}

// ExitCode maps a result to spec.md §6.5's process exit code. raw
// indicates the source came from `--raw` input rather than a file: a
// file run distinguishes compile-time (65) from runtime (75) failures,
// while --raw collapses both to 1.
func ExitCode(hasCompileError, hasRuntimeError, raw bool) int {
	switch {
	case !hasCompileError && !hasRuntimeError:
		return 0
	case raw:
		return 1
	case hasCompileError:
		return 65
	default:
		return 75
	}
}
