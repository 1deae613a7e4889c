package runtime

import "fmt"

// RuntimeError is a diagnosable evaluation failure (spec.md §7). It is
// shared between internal/interp (arithmetic, lookup, call errors) and
// internal/builtins (native-function argument errors) so both produce
// errors the diagnostic reporter (internal/diag) recognizes uniformly via
// a single type switch, rather than each package inventing its own.
type RuntimeError struct {
	Line    int
	Message string
}

func (e *RuntimeError) Error() string { return e.Message }

// NewRuntimeError builds a RuntimeError at line with a formatted message.
func NewRuntimeError(line int, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{Line: line, Message: fmt.Sprintf(format, args...)}
}
