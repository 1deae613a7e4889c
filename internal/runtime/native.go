package runtime

import "github.com/qalam-lang/qalam/internal/lexer"

// NativeFunction wraps a Go function as a Qalam Callable, so that native
// library entries (spec.md §6.6) are ordinary callables living in the
// globals environment — "no separate dispatch path" (spec.md §9).
type NativeFunction struct {
	Name string
	ArgN int
	Fn   func(interp Interpreter, args []Value, paren lexer.Token) (Value, error)
}

// NewNativeFunction builds a NativeFunction with the given fixed arity.
func NewNativeFunction(name string, arity int, fn func(Interpreter, []Value, lexer.Token) (Value, error)) *NativeFunction {
	return &NativeFunction{Name: name, ArgN: arity, Fn: fn}
}

func (*NativeFunction) Type() string { return "amal" }

func (n *NativeFunction) String() string { return "<native amal " + n.Name + "(...)>" }

func (n *NativeFunction) Arity() int { return n.ArgN }

func (n *NativeFunction) Call(interp Interpreter, args []Value, paren lexer.Token) (Value, error) {
	return n.Fn(interp, args, paren)
}

func (n *NativeFunction) Clone() Callable {
	clone := *n
	return &clone
}
