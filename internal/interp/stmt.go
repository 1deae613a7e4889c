package interp

import (
	"fmt"

	"github.com/qalam-lang/qalam/internal/ast"
	"github.com/qalam-lang/qalam/internal/runtime"
)

// execute dispatches a single statement for its side effects (spec.md
// §4.4 "statements produce side effects"). A `radd` anywhere beneath s
// surfaces here as a returnSignal error, which execute propagates
// unchanged until it reaches the ExecuteBlock call at the enclosing
// function/initializer's call boundary.
func (i *Interpreter) execute(s ast.Stmt) error {
	switch st := s.(type) {
	case *ast.ExpressionStmt:
		_, err := i.evaluate(st.Expression)
		return err
	case *ast.PrintStmt:
		v, err := i.evaluate(st.Expression)
		if err != nil {
			return err
		}
		fmt.Fprintln(i.out, runtime.DisplayString(v))
		return nil
	case *ast.VarStmt:
		var value runtime.Value
		if st.Initializer != nil {
			v, err := i.evaluate(st.Initializer)
			if err != nil {
				return err
			}
			value = v
		}
		i.environment.Define(st.Name.Lexeme, value)
		return nil
	case *ast.Block:
		return i.executeBlockStmt(st)
	case *ast.IfStmt:
		cond, err := i.evaluate(st.Condition)
		if err != nil {
			return err
		}
		if isTruthy(cond) {
			return i.execute(st.Then)
		}
		if st.Else != nil {
			return i.execute(st.Else)
		}
		return nil
	case *ast.WhileStmt:
		return i.executeWhile(st)
	case *ast.FunctionStmt:
		fn := runtime.NewFunction(st, i.environment, false)
		i.environment.Define(st.Name.Lexeme, fn)
		return nil
	case *ast.ReturnStmt:
		var value runtime.Value
		if st.Value != nil {
			v, err := i.evaluate(st.Value)
			if err != nil {
				return err
			}
			value = v
		}
		return returnSignal{value: value}
	case *ast.ClassStmt:
		return i.executeClass(st)
	}
	panic("interp: unhandled statement node")
}

// executeBlockStmt runs a `{ ... }` block under a fresh child
// environment (spec.md §4.4.8) and re-surfaces any radd signal ExecuteBlock
// caught so it keeps unwinding toward the enclosing call frame.
func (i *Interpreter) executeBlockStmt(b *ast.Block) error {
	env := runtime.NewEnclosedEnvironment(i.environment)
	value, didReturn, err := i.ExecuteBlock(b.Statements, env)
	if err != nil {
		return err
	}
	if didReturn {
		return returnSignal{value: value}
	}
	return nil
}

func (i *Interpreter) executeWhile(st *ast.WhileStmt) error {
	for {
		cond, err := i.evaluate(st.Condition)
		if err != nil {
			return err
		}
		if !isTruthy(cond) {
			return nil
		}
		if err := i.execute(st.Body); err != nil {
			return err
		}
	}
}

// executeClass implements spec.md §4.4.5: the superclass expression (if
// any) is evaluated in the enclosing environment, the class name is
// pre-defined so recursive self-reference inside method bodies resolves,
// a synthetic environment carrying `ulya` is pushed when there's a
// superclass, and methods close over that environment (or the plain
// enclosing one, absent a superclass).
func (i *Interpreter) executeClass(st *ast.ClassStmt) error {
	var superclass *runtime.Class
	if st.Superclass != nil {
		val, err := i.evaluate(st.Superclass)
		if err != nil {
			return err
		}
		sc, ok := val.(*runtime.Class)
		if !ok {
			return i.runtimeError(st.Superclass.Line(), "superclass must be a class")
		}
		superclass = sc
	}

	i.environment.Define(st.Name.Lexeme, nil)

	methodEnv := i.environment
	if superclass != nil {
		methodEnv = runtime.NewEnclosedEnvironment(i.environment)
		methodEnv.Define("ulya", superclass)
	}

	methods := make(map[string]*runtime.Function, len(st.Methods))
	for _, m := range st.Methods {
		isInit := m.Name.Lexeme == "khalaq"
		methods[m.Name.Lexeme] = runtime.NewFunction(m, methodEnv, isInit)
	}

	class := runtime.NewClass(st.Name.Lexeme, methods, superclass)
	return i.environment.Assign(st.Name.Lexeme, class)
}
