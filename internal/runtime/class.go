package runtime

import "github.com/qalam-lang/qalam/internal/lexer"

// Class is a Qalam class: a name, its method table (frozen at class
// definition time per spec.md §3), and an optional superclass handle for
// single inheritance.
type Class struct {
	Name       string
	Methods    map[string]*Function
	Superclass *Class
}

// NewClass builds a Class with the given method table.
func NewClass(name string, methods map[string]*Function, superclass *Class) *Class {
	return &Class{Name: name, Methods: methods, Superclass: superclass}
}

func (*Class) Type() string { return "class" }

func (c *Class) String() string { return c.Name }

// FindMethod walks the inheritance chain looking for name.
func (c *Class) FindMethod(name string) (*Function, bool) {
	if m, ok := c.Methods[name]; ok {
		return m, true
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil, false
}

func (c *Class) Arity() int {
	if init, ok := c.FindMethod("khalaq"); ok {
		return init.Arity()
	}
	return 0
}

// Call instantiates the class (spec.md §4.4.5): a fresh Instance is
// created and, if an initializer exists, its bound form is invoked with
// the call's arguments. The instance itself — not whatever khalaq
// returns — is always the result of a constructor call.
func (c *Class) Call(interp Interpreter, args []Value, paren lexer.Token) (Value, error) {
	instance := NewInstance(c)
	if init, ok := c.FindMethod("khalaq"); ok {
		if _, err := init.Bind(instance).Call(interp, args, paren); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

func (c *Class) Clone() Callable {
	clone := *c
	return &clone
}
