package interp

import "github.com/qalam-lang/qalam/internal/runtime"

// isTruthy implements spec.md §4.4.1: only bool(false) and the absent
// value (a nil runtime.Value) are falsy; everything else, including 0,
// "", and an empty array, is truthy.
func isTruthy(v runtime.Value) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(runtime.Bool); ok {
		return bool(b)
	}
	return true
}

// isEqual implements spec.md §3 equality: numbers/strings/bools by
// content, callables by identity, arrays and instances by handle
// identity. Two absents are equal.
func isEqual(a, b runtime.Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case runtime.Number:
		bv, ok := b.(runtime.Number)
		return ok && av == bv
	case runtime.String:
		bv, ok := b.(runtime.String)
		return ok && av == bv
	case runtime.Bool:
		bv, ok := b.(runtime.Bool)
		return ok && av == bv
	case *runtime.Array:
		bv, ok := b.(*runtime.Array)
		return ok && av == bv
	case *runtime.Instance:
		bv, ok := b.(*runtime.Instance)
		return ok && av == bv
	case runtime.Callable:
		bv, ok := b.(runtime.Callable)
		return ok && av == bv
	}
	return false
}

// numberOperands asserts both operands are Numbers, for the binary
// operators that require two numbers (spec.md §4.4.1: `- * /` and the
// four comparisons).
func (i *Interpreter) numberOperands(left, right runtime.Value, line int) (runtime.Number, runtime.Number, error) {
	ln, ok := left.(runtime.Number)
	if !ok {
		return 0, 0, i.runtimeError(line, "operands must be numbers")
	}
	rn, ok := right.(runtime.Number)
	if !ok {
		return 0, 0, i.runtimeError(line, "operands must be numbers")
	}
	return ln, rn, nil
}
