// Package interp implements the tree-walking evaluator (spec.md §4.4): it
// executes a resolved statement list against an environment chain rooted
// at a globals environment pre-populated with native callables
// (internal/builtins), producing side effects (qul output, errors) rather
// than a return value.
package interp

import (
	"errors"
	"io"

	"github.com/qalam-lang/qalam/internal/ast"
	"github.com/qalam-lang/qalam/internal/resolver"
	"github.com/qalam-lang/qalam/internal/runtime"
)

// Interpreter holds the globals environment, the current environment
// pointer, and the resolver-provided depth map (spec.md §4.4).
type Interpreter struct {
	globals     *runtime.Environment
	environment *runtime.Environment
	depths      resolver.Depths
	out         io.Writer
}

// New creates an Interpreter whose qul output goes to out. The caller is
// expected to register native callables into Globals() before running a
// program (internal/builtins.Register does this).
func New(out io.Writer) *Interpreter {
	globals := runtime.NewEnvironment()
	return &Interpreter{globals: globals, environment: globals, out: out}
}

// Globals returns the root environment.
func (i *Interpreter) Globals() *runtime.Environment {
	return i.globals
}

// SetDepths installs the resolver's expression→depth table. Must be
// called before Interpret.
func (i *Interpreter) SetDepths(depths resolver.Depths) {
	i.depths = depths
}

// Interpret executes a resolved statement list to completion or to the
// first runtime error, whichever comes first (spec.md §5).
func (i *Interpreter) Interpret(stmts []ast.Stmt) error {
	for _, stmt := range stmts {
		if err := i.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

// ExecuteBlock runs statements under env and restores the previous
// environment on every exit path — normal completion, a radd signal, or a
// runtime error (spec.md §5 "Resource scoping"). It implements
// runtime.Interpreter so Callable.Call (in internal/runtime) can invoke
// function/initializer bodies without that package importing this one.
func (i *Interpreter) ExecuteBlock(statements []ast.Stmt, env *runtime.Environment) (runtime.Value, bool, error) {
	previous := i.environment
	i.environment = env
	defer func() { i.environment = previous }()

	for _, stmt := range statements {
		if err := i.execute(stmt); err != nil {
			var ret returnSignal
			if errors.As(err, &ret) {
				return ret.value, true, nil
			}
			return nil, false, err
		}
	}
	return nil, false, nil
}
