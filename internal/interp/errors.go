package interp

import "github.com/qalam-lang/qalam/internal/runtime"

func (i *Interpreter) runtimeError(line int, format string, args ...interface{}) *runtime.RuntimeError {
	return runtime.NewRuntimeError(line, format, args...)
}

// returnSignal unwinds an in-progress call on `radd`. It is discriminated
// from an ordinary error by type (errors.As), never by its Error() text —
// the original implementation conflated the two with a string-compared
// sentinel, which this design deliberately avoids (spec.md §9).
type returnSignal struct {
	value runtime.Value
}

func (returnSignal) Error() string { return "radd outside a function" }
