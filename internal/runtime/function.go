package runtime

import (
	"strings"

	"github.com/qalam-lang/qalam/internal/ast"
	"github.com/qalam-lang/qalam/internal/lexer"
)

// Function is a user-defined closure: a declaration (parameters + body),
// the environment captured at definition time, and a flag marking whether
// it is a class initializer (spec.md §3 "Function"). Both standalone
// `amal` declarations and class methods are represented by the same type.
type Function struct {
	Declaration   *ast.FunctionStmt
	Closure       *Environment
	IsInitializer bool
}

// NewFunction builds a Function closing over env.
func NewFunction(decl *ast.FunctionStmt, env *Environment, isInitializer bool) *Function {
	return &Function{Declaration: decl, Closure: env, IsInitializer: isInitializer}
}

func (*Function) Type() string { return "amal" }

func (f *Function) String() string {
	var sb strings.Builder
	sb.WriteString("<amal ")
	sb.WriteString(f.Declaration.Name.Lexeme)
	sb.WriteString("(")
	for i, p := range f.Declaration.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Lexeme)
	}
	sb.WriteString(")>")
	return sb.String()
}

func (f *Function) Arity() int {
	return len(f.Declaration.Params)
}

// Call builds a fresh environment parented by the closure, binds
// parameters positionally, and runs the body (spec.md §4.4.4). An
// initializer always yields the instance bound as nafs in its own
// closure, regardless of what radd produced (spec.md §3 invariant).
func (f *Function) Call(interp Interpreter, args []Value, _ lexer.Token) (Value, error) {
	env := NewEnclosedEnvironment(f.Closure)
	for i, param := range f.Declaration.Params {
		env.Define(param.Lexeme, args[i])
	}

	result, didReturn, err := interp.ExecuteBlock(f.Declaration.Body, env)
	if err != nil {
		return nil, err
	}

	if f.IsInitializer {
		return f.Closure.GetAt(0, "nafs"), nil
	}
	if didReturn {
		return result, nil
	}
	return nil, nil
}

func (f *Function) Clone() Callable {
	clone := *f
	return &clone
}

// Bind returns a copy of f whose closure has one extra environment layer
// defining nafs → instance, implementing Qalam's method-binding contract
// (spec.md §4.4.6): `obj.method` always yields a bound callable.
func (f *Function) Bind(instance *Instance) *Function {
	env := NewEnclosedEnvironment(f.Closure)
	env.Define("nafs", instance)
	return NewFunction(f.Declaration, env, f.IsInitializer)
}
