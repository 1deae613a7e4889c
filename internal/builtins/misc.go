package builtins

import (
	"time"

	"github.com/qalam-lang/qalam/internal/lexer"
	"github.com/qalam-lang/qalam/internal/runtime"
)

// miscNatives are the remaining spec.md §6.6 entries that don't fit the
// math/string/array groupings: clock, str, typeof.
func miscNatives() []*runtime.NativeFunction {
	return []*runtime.NativeFunction{
		native("clock", 0, clockFn),
		native("str", 1, strFn),
		native("typeof", 1, typeofFn),
	}
}

func clockFn(_ runtime.Interpreter, _ []runtime.Value, _ lexer.Token) (runtime.Value, error) {
	return runtime.Number(float64(time.Now().UnixNano()) / 1e9), nil
}

func strFn(_ runtime.Interpreter, args []runtime.Value, _ lexer.Token) (runtime.Value, error) {
	return runtime.String(runtime.DisplayString(args[0])), nil
}

// typeofFn implements spec.md §6.6's typeof contract: primitive type
// names, "amal" for any callable, or the instance's own class name.
func typeofFn(_ runtime.Interpreter, args []runtime.Value, _ lexer.Token) (runtime.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return runtime.String("ghaib"), nil
	case runtime.Number:
		return runtime.String("number"), nil
	case runtime.String:
		return runtime.String("string"), nil
	case runtime.Bool:
		return runtime.String("bool"), nil
	case *runtime.Array:
		return runtime.String("array"), nil
	case *runtime.Instance:
		return runtime.String(v.Class.Name), nil
	case runtime.Callable:
		return runtime.String("amal"), nil
	default:
		return runtime.String("ghaib"), nil
	}
}
