package builtins

import (
	"github.com/qalam-lang/qalam/internal/lexer"
	"github.com/qalam-lang/qalam/internal/runtime"
)

// arrayNatives are spec.md §6.6's array-library entries, plus len (which
// also accepts a string).
func arrayNatives() []*runtime.NativeFunction {
	return []*runtime.NativeFunction{
		native("len", 1, lenFn),
		native("push", 2, pushFn),
		native("pop", 1, popFn),
		native("slice", 3, sliceFn),
		native("Array", 2, arrayCtorFn),
	}
}

func lenFn(_ runtime.Interpreter, args []runtime.Value, paren lexer.Token) (runtime.Value, error) {
	switch v := args[0].(type) {
	case runtime.String:
		return runtime.Number(len([]rune(string(v)))), nil
	case *runtime.Array:
		return runtime.Number(len(v.Elements)), nil
	default:
		return nil, runtime.NewRuntimeError(paren.Line, "len expects a string or array")
	}
}

// pushFn mutates arr in place, appending value (spec.md §6.6 "Mutating
// array ops").
func pushFn(_ runtime.Interpreter, args []runtime.Value, paren lexer.Token) (runtime.Value, error) {
	arr, err := arrayArg("push", args, 0, paren)
	if err != nil {
		return nil, err
	}
	arr.Elements = append(arr.Elements, args[1])
	return nil, nil
}

// popFn mutates arr in place, removing and returning its last element.
func popFn(_ runtime.Interpreter, args []runtime.Value, paren lexer.Token) (runtime.Value, error) {
	arr, err := arrayArg("pop", args, 0, paren)
	if err != nil {
		return nil, err
	}
	if len(arr.Elements) == 0 {
		return nil, runtime.NewRuntimeError(paren.Line, "pop on empty array")
	}
	last := arr.Elements[len(arr.Elements)-1]
	arr.Elements = arr.Elements[:len(arr.Elements)-1]
	return last, nil
}

// sliceFn returns a new array covering [start, end) of arr, bounds-checked.
func sliceFn(_ runtime.Interpreter, args []runtime.Value, paren lexer.Token) (runtime.Value, error) {
	arr, err := arrayArg("slice", args, 0, paren)
	if err != nil {
		return nil, err
	}
	start, err := intArg("slice", args, 1, paren, true)
	if err != nil {
		return nil, err
	}
	end, err := intArg("slice", args, 2, paren, true)
	if err != nil {
		return nil, err
	}
	if start > len(arr.Elements) || end > len(arr.Elements) || end < start {
		return nil, runtime.NewRuntimeError(paren.Line, "slice range out of bounds")
	}
	out := make([]runtime.Value, end-start)
	copy(out, arr.Elements[start:end])
	return runtime.NewArray(out), nil
}

// arrayCtorFn is the `Array(size, fill)` native, producing a new array of
// size elements all set to fill.
func arrayCtorFn(_ runtime.Interpreter, args []runtime.Value, paren lexer.Token) (runtime.Value, error) {
	size, err := intArg("Array", args, 0, paren, true)
	if err != nil {
		return nil, err
	}
	fill := args[1]
	elements := make([]runtime.Value, size)
	for idx := range elements {
		elements[idx] = fill
	}
	return runtime.NewArray(elements), nil
}
