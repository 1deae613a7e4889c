// Package builtins implements Qalam's native library (spec.md §6.6):
// ordinary Callable values pre-registered into the interpreter's globals
// environment. Per spec.md §9 ("Natives are ordinary callables in the
// globals environment; no separate dispatch path"), there is no registry
// indirection — Register defines each native straight into the globals
// environment handed to it, the same shape a user-defined `amal` would
// take. Grouped into per-category files (math.go, strings.go, arrays.go,
// misc.go) the way the teacher splits its own builtin registrations by
// category.
package builtins

import (
	"math"

	"github.com/qalam-lang/qalam/internal/lexer"
	"github.com/qalam-lang/qalam/internal/runtime"
)

// Register installs every native function listed in spec.md §6.6 into
// globals. Callers (pkg/qalam) invoke this once against a fresh
// Interpreter's Globals() before running a program.
func Register(globals *runtime.Environment) {
	for _, n := range mathNatives() {
		globals.Define(n.Name, n)
	}
	for _, n := range stringNatives() {
		globals.Define(n.Name, n)
	}
	for _, n := range arrayNatives() {
		globals.Define(n.Name, n)
	}
	for _, n := range miscNatives() {
		globals.Define(n.Name, n)
	}
}

func native(name string, arity int, fn func(runtime.Interpreter, []runtime.Value, lexer.Token) (runtime.Value, error)) *runtime.NativeFunction {
	return runtime.NewNativeFunction(name, arity, fn)
}

// numberArg asserts args[idx] is a Number, naming the native in the
// error message so arity/type mismatches are easy to trace back.
func numberArg(name string, args []runtime.Value, idx int, paren lexer.Token) (runtime.Number, error) {
	n, ok := args[idx].(runtime.Number)
	if !ok {
		return 0, runtime.NewRuntimeError(paren.Line, "%s expects a number for argument %d", name, idx+1)
	}
	return n, nil
}

// intArg asserts args[idx] is a Number holding an integer value,
// non-negative when nonNegative is set (spec.md §6.6's many "bounds-checked,
// non-negative integers" contracts).
func intArg(name string, args []runtime.Value, idx int, paren lexer.Token, nonNegative bool) (int, error) {
	n, err := numberArg(name, args, idx, paren)
	if err != nil {
		return 0, err
	}
	f := float64(n)
	if f != math.Trunc(f) {
		return 0, runtime.NewRuntimeError(paren.Line, "%s expects an integer for argument %d", name, idx+1)
	}
	if nonNegative && f < 0 {
		return 0, runtime.NewRuntimeError(paren.Line, "%s expects a non-negative integer for argument %d", name, idx+1)
	}
	return int(f), nil
}

func stringArg(name string, args []runtime.Value, idx int, paren lexer.Token) (string, error) {
	s, ok := args[idx].(runtime.String)
	if !ok {
		return "", runtime.NewRuntimeError(paren.Line, "%s expects a string for argument %d", name, idx+1)
	}
	return string(s), nil
}

func arrayArg(name string, args []runtime.Value, idx int, paren lexer.Token) (*runtime.Array, error) {
	a, ok := args[idx].(*runtime.Array)
	if !ok {
		return nil, runtime.NewRuntimeError(paren.Line, "%s expects an array for argument %d", name, idx+1)
	}
	return a, nil
}
