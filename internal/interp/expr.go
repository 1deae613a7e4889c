package interp

import (
	"math"

	"github.com/qalam-lang/qalam/internal/ast"
	"github.com/qalam-lang/qalam/internal/lexer"
	"github.com/qalam-lang/qalam/internal/runtime"
)

// evaluate dispatches on the expression's dynamic type and yields its
// value (spec.md §4.4 "expressions yield optional values"). The node set
// is closed (spec.md §9 "Visitor over variants"), so dispatch is a type
// switch rather than an open visitor interface.
func (i *Interpreter) evaluate(e ast.Expr) (runtime.Value, error) {
	switch ex := e.(type) {
	case *ast.Literal:
		return literalValue(ex), nil
	case *ast.Grouping:
		return i.evaluate(ex.Expression)
	case *ast.Unary:
		return i.evalUnary(ex)
	case *ast.Binary:
		return i.evalBinary(ex)
	case *ast.Logical:
		return i.evalLogical(ex)
	case *ast.Variable:
		return i.lookupVariable(ex.Name.Lexeme, ex.ID(), ex.Name.Line)
	case *ast.Assign:
		return i.evalAssign(ex)
	case *ast.Call:
		return i.evalCall(ex)
	case *ast.Get:
		return i.evalGet(ex)
	case *ast.Set:
		return i.evalSet(ex)
	case *ast.This:
		return i.lookupVariable("nafs", ex.ID(), ex.Line())
	case *ast.Super:
		return i.evalSuper(ex)
	case *ast.Array:
		return i.evalArray(ex)
	case *ast.GetIndexed:
		return i.evalGetIndexed(ex)
	case *ast.SetIndexed:
		return i.evalSetIndexed(ex)
	}
	panic("interp: unhandled expression node")
}

func literalValue(ex *ast.Literal) runtime.Value {
	switch v := ex.Value.(type) {
	case nil:
		return nil
	case float64:
		return runtime.Number(v)
	case string:
		return runtime.String(v)
	case bool:
		return runtime.Bool(v)
	}
	panic("interp: unhandled literal type")
}

// lookupVariable implements spec.md §4.4.2: a present resolver depth
// reads the indexed ancestor environment directly; absence means global.
func (i *Interpreter) lookupVariable(name string, id, line int) (runtime.Value, error) {
	if depth, ok := i.depths[id]; ok {
		return i.environment.GetAt(depth, name), nil
	}
	v, err := i.globals.Get(name)
	if err != nil {
		return nil, i.runtimeError(line, "undefined variable '%s'", name)
	}
	return v, nil
}

func (i *Interpreter) evalAssign(ex *ast.Assign) (runtime.Value, error) {
	value, err := i.evaluate(ex.Value)
	if err != nil {
		return nil, err
	}
	if depth, ok := i.depths[ex.ID()]; ok {
		i.environment.AssignAt(depth, ex.Name.Lexeme, value)
		return value, nil
	}
	if err := i.globals.Assign(ex.Name.Lexeme, value); err != nil {
		return nil, i.runtimeError(ex.Name.Line, "undefined variable '%s'", ex.Name.Lexeme)
	}
	return value, nil
}

func (i *Interpreter) evalUnary(ex *ast.Unary) (runtime.Value, error) {
	right, err := i.evaluate(ex.Right)
	if err != nil {
		return nil, err
	}
	switch ex.Operator.Kind {
	case lexer.MINUS:
		n, ok := right.(runtime.Number)
		if !ok {
			return nil, i.runtimeError(ex.Operator.Line, "operand must be a number")
		}
		return -n, nil
	default: // BANG or NOT ("la"), both negate truthiness
		return runtime.Bool(!isTruthy(right)), nil
	}
}

// evalBinary implements spec.md §4.4.1's arithmetic/comparison/equality
// table. `+` is overloaded over numbers and strings; every other
// arithmetic/comparison operator requires two numbers; division by zero
// is left to IEEE-754 rather than raised as an error.
func (i *Interpreter) evalBinary(ex *ast.Binary) (runtime.Value, error) {
	left, err := i.evaluate(ex.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluate(ex.Right)
	if err != nil {
		return nil, err
	}

	switch ex.Operator.Kind {
	case lexer.PLUS:
		if ln, ok := left.(runtime.Number); ok {
			if rn, ok := right.(runtime.Number); ok {
				return ln + rn, nil
			}
		}
		if ls, ok := left.(runtime.String); ok {
			if rs, ok := right.(runtime.String); ok {
				return ls + rs, nil
			}
		}
		return nil, i.runtimeError(ex.Operator.Line, "operands must be two numbers or two strings")
	case lexer.MINUS:
		ln, rn, err := i.numberOperands(left, right, ex.Operator.Line)
		if err != nil {
			return nil, err
		}
		return ln - rn, nil
	case lexer.STAR:
		ln, rn, err := i.numberOperands(left, right, ex.Operator.Line)
		if err != nil {
			return nil, err
		}
		return ln * rn, nil
	case lexer.SLASH:
		ln, rn, err := i.numberOperands(left, right, ex.Operator.Line)
		if err != nil {
			return nil, err
		}
		return ln / rn, nil
	case lexer.GREATER:
		ln, rn, err := i.numberOperands(left, right, ex.Operator.Line)
		if err != nil {
			return nil, err
		}
		return runtime.Bool(ln > rn), nil
	case lexer.GREATER_EQ:
		ln, rn, err := i.numberOperands(left, right, ex.Operator.Line)
		if err != nil {
			return nil, err
		}
		return runtime.Bool(ln >= rn), nil
	case lexer.LESS:
		ln, rn, err := i.numberOperands(left, right, ex.Operator.Line)
		if err != nil {
			return nil, err
		}
		return runtime.Bool(ln < rn), nil
	case lexer.LESS_EQ:
		ln, rn, err := i.numberOperands(left, right, ex.Operator.Line)
		if err != nil {
			return nil, err
		}
		return runtime.Bool(ln <= rn), nil
	case lexer.EQ_EQ:
		return runtime.Bool(isEqual(left, right)), nil
	case lexer.NOT_EQ:
		return runtime.Bool(!isEqual(left, right)), nil
	}
	panic("interp: unhandled binary operator")
}

// evalLogical implements short-circuit aw/wa (spec.md §4.4.1): the
// operand itself is returned, not a coerced bool.
func (i *Interpreter) evalLogical(ex *ast.Logical) (runtime.Value, error) {
	left, err := i.evaluate(ex.Left)
	if err != nil {
		return nil, err
	}
	if ex.Operator.Kind == lexer.OR {
		if isTruthy(left) {
			return left, nil
		}
		return i.evaluate(ex.Right)
	}
	if !isTruthy(left) {
		return left, nil
	}
	return i.evaluate(ex.Right)
}

// evalCall implements spec.md §4.4.3: evaluate callee then arguments
// left-to-right, check callability and arity, then delegate.
func (i *Interpreter) evalCall(ex *ast.Call) (runtime.Value, error) {
	callee, err := i.evaluate(ex.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]runtime.Value, len(ex.Args))
	for idx, a := range ex.Args {
		v, err := i.evaluate(a)
		if err != nil {
			return nil, err
		}
		args[idx] = v
	}

	callable, ok := callee.(runtime.Callable)
	if !ok {
		return nil, i.runtimeError(ex.Paren.Line, "can only call functions and classes")
	}
	if len(args) != callable.Arity() {
		return nil, i.runtimeError(ex.Paren.Line, "expected %d arguments but got %d", callable.Arity(), len(args))
	}
	return callable.Call(i, args, ex.Paren)
}

// evalGet implements spec.md §4.4.6: property access is instance-only;
// Instance.Get already applies the field-shadows-method rule and returns
// methods bound to the receiver.
func (i *Interpreter) evalGet(ex *ast.Get) (runtime.Value, error) {
	obj, err := i.evaluate(ex.Object)
	if err != nil {
		return nil, err
	}
	inst, ok := obj.(*runtime.Instance)
	if !ok {
		return nil, i.runtimeError(ex.Name.Line, "only instances have properties")
	}
	v, ok := inst.Get(ex.Name.Lexeme)
	if !ok {
		return nil, i.runtimeError(ex.Name.Line, "undefined property '"+ex.Name.Lexeme+"'")
	}
	return v, nil
}

func (i *Interpreter) evalSet(ex *ast.Set) (runtime.Value, error) {
	obj, err := i.evaluate(ex.Object)
	if err != nil {
		return nil, err
	}
	inst, ok := obj.(*runtime.Instance)
	if !ok {
		return nil, i.runtimeError(ex.Name.Line, "only instances have fields")
	}
	value, err := i.evaluate(ex.Value)
	if err != nil {
		return nil, err
	}
	inst.Set(ex.Name.Lexeme, value)
	return value, nil
}

// evalSuper implements spec.md §4.4.7: ulya is looked up at its recorded
// depth to find the superclass, nafs at depth−1 to find the receiver,
// and the named method is bound to that receiver.
func (i *Interpreter) evalSuper(ex *ast.Super) (runtime.Value, error) {
	depth, ok := i.depths[ex.ID()]
	if !ok {
		return nil, i.runtimeError(ex.Line(), "undefined 'ulya'")
	}
	superVal := i.environment.GetAt(depth, "ulya")
	superclass, ok := superVal.(*runtime.Class)
	if !ok {
		return nil, i.runtimeError(ex.Line(), "'ulya' is not a class")
	}
	receiver := i.environment.GetAt(depth-1, "nafs")
	instance, ok := receiver.(*runtime.Instance)
	if !ok {
		return nil, i.runtimeError(ex.Line(), "'nafs' is not an instance")
	}
	method, ok := superclass.FindMethod(ex.Method.Lexeme)
	if !ok {
		return nil, i.runtimeError(ex.Method.Line, "undefined property '"+ex.Method.Lexeme+"'")
	}
	return method.Bind(instance), nil
}

func (i *Interpreter) evalArray(ex *ast.Array) (runtime.Value, error) {
	elements := make([]runtime.Value, len(ex.Elements))
	for idx, el := range ex.Elements {
		v, err := i.evaluate(el)
		if err != nil {
			return nil, err
		}
		elements[idx] = v
	}
	return runtime.NewArray(elements), nil
}

// indexValue asserts v is a Number holding an integer, per spec.md
// §4.4.1 ("i must be a non-negative integer number"). Negative values
// are accepted here and rejected as out-of-range by the caller, per
// spec.md §8's boundary test "index < 0 is out-of-range".
func (i *Interpreter) indexValue(v runtime.Value, line int) (int, error) {
	n, ok := v.(runtime.Number)
	if !ok {
		return 0, i.runtimeError(line, "index must be a number")
	}
	f := float64(n)
	if f != math.Trunc(f) {
		return 0, i.runtimeError(line, "index must be an integer")
	}
	return int(f), nil
}

// evalGetIndexed implements spec.md §4.4.1 indexing: arrays and strings
// support obj[i]; string indexing yields a single rune as a one-character
// string (spec.md §5 string-indexing Open Question, resolved in
// SPEC_FULL.md §5 toward rune positions rather than byte offsets).
func (i *Interpreter) evalGetIndexed(ex *ast.GetIndexed) (runtime.Value, error) {
	obj, err := i.evaluate(ex.Object)
	if err != nil {
		return nil, err
	}
	idxVal, err := i.evaluate(ex.Index)
	if err != nil {
		return nil, err
	}
	idx, err := i.indexValue(idxVal, ex.Bracket.Line)
	if err != nil {
		return nil, err
	}

	switch o := obj.(type) {
	case *runtime.Array:
		if idx < 0 || idx >= len(o.Elements) {
			return nil, i.runtimeError(ex.Bracket.Line, "array index out of range")
		}
		return o.Elements[idx], nil
	case runtime.String:
		runes := []rune(string(o))
		if idx < 0 || idx >= len(runes) {
			return nil, i.runtimeError(ex.Bracket.Line, "string index out of range")
		}
		return runtime.String(string(runes[idx])), nil
	default:
		return nil, i.runtimeError(ex.Bracket.Line, "only arrays and strings can be indexed")
	}
}

// evalSetIndexed implements spec.md §4.4.1: "Array index assignment
// requires an array" — strings are immutable, so SetIndexed on a string
// is a runtime error rather than silently no-op-ing.
func (i *Interpreter) evalSetIndexed(ex *ast.SetIndexed) (runtime.Value, error) {
	objVal, err := i.evaluate(ex.Object)
	if err != nil {
		return nil, err
	}
	arr, ok := objVal.(*runtime.Array)
	if !ok {
		return nil, i.runtimeError(ex.Bracket.Line, "only arrays support index assignment")
	}
	idxVal, err := i.evaluate(ex.Index)
	if err != nil {
		return nil, err
	}
	idx, err := i.indexValue(idxVal, ex.Bracket.Line)
	if err != nil {
		return nil, err
	}
	value, err := i.evaluate(ex.Value)
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(arr.Elements) {
		return nil, i.runtimeError(ex.Bracket.Line, "array index out of range")
	}
	arr.Elements[idx] = value
	return value, nil
}
