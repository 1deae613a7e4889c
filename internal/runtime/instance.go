package runtime

// Instance is a class instance: a class handle plus a mutable field map
// (spec.md §3). Instances are shared by reference — aliasing an instance
// value aliases its field storage.
type Instance struct {
	Class  *Class
	Fields map[string]Value
}

// NewInstance creates an Instance of class with no fields set.
func NewInstance(class *Class) *Instance {
	return &Instance{Class: class, Fields: make(map[string]Value)}
}

func (*Instance) Type() string { return "instance" }

func (i *Instance) String() string { return "<instanceof " + i.Class.Name + ">" }

// Get resolves obj.name: fields shadow methods of the same name (spec.md
// §3 invariant), and a matched method is returned bound to the instance
// (spec.md §4.4.6). ok is false if neither a field nor a method matches.
func (i *Instance) Get(name string) (Value, bool) {
	if v, ok := i.Fields[name]; ok {
		return v, true
	}
	if m, ok := i.Class.FindMethod(name); ok {
		return m.Bind(i), true
	}
	return nil, false
}

// Set assigns a field, creating it if absent.
func (i *Instance) Set(name string, value Value) {
	i.Fields[name] = value
}
