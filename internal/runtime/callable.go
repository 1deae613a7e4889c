package runtime

import (
	"github.com/qalam-lang/qalam/internal/ast"
	"github.com/qalam-lang/qalam/internal/lexer"
)

// Interpreter is the minimal surface Callable implementations need from
// the tree-walking evaluator. It lives here (rather than Callable simply
// holding a concrete *interp.Interpreter) so that internal/runtime never
// imports internal/interp — internal/interp already imports
// internal/runtime, and Go forbids the reverse. interp.Interpreter
// satisfies this interface structurally.
type Interpreter interface {
	// ExecuteBlock runs statements under env, returning the evaluated
	// return value and whether a radd (return) was hit, or the first
	// runtime error encountered.
	ExecuteBlock(statements []ast.Stmt, env *Environment) (Value, bool, error)
}

// Callable is implemented by every value that can appear on the left of a
// call expression: native functions, user-defined functions/closures
// (bound or not), and classes (constructor calls) (spec.md §3 "Callable
// contract").
type Callable interface {
	Value
	// Arity is the fixed number of arguments this callable accepts.
	Arity() int
	// Call invokes the callable. paren is the call-site '(' token, kept
	// for diagnostics (arity/non-callable errors reference it).
	Call(interp Interpreter, args []Value, paren lexer.Token) (Value, error)
	// Clone performs the callable contract's deep-copy operation.
	Clone() Callable
}
