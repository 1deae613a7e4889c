// Package runtime holds Qalam's runtime value model: the Number/String/Bool
// scalars, the Array/Instance reference types, the Callable family
// (NativeFunction/Function/Class), and the chained Environment that backs
// lexical scoping (spec.md §3, §4.5). The interpreter (internal/interp)
// owns the operational semantics (arithmetic, truthiness, equality);
// this package owns the data.
package runtime

import (
	"math"
	"strconv"
	"strings"
)

// Value is implemented by every Qalam runtime value. There is no distinct
// "absent" variant: a Go nil of this interface type *is* ghaib, carried at
// every site that stores a Value (spec.md §3 "the option layer wrapping
// each Value site").
type Value interface {
	// Type is a bare name for the value's kind — distinct from String,
	// which renders for qul/str (§6.4). The typeof native (§6.6) does not
	// call it: typeof reports "amal" for a class and the class name for an
	// instance, where Type returns "class" and "instance".
	Type() string
	String() string
}

// Number is a Qalam number: an IEEE-754 double with the language's normal
// (non-total) arithmetic, including IEEE division-by-zero behavior.
type Number float64

func (Number) Type() string { return "number" }

// String renders the shortest decimal that round-trips back to the same
// float64, with no forced trailing ".0" — mirrors the original Rust
// implementation's `format!("{}", val)` over f64.
func (n Number) String() string {
	f := float64(n)
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// String is a Qalam string value.
type String string

func (String) Type() string { return "string" }

func (s String) String() string { return string(s) }

// Bool is a Qalam boolean value.
type Bool bool

func (Bool) Type() string { return "bool" }

func (b Bool) String() string {
	if b {
		return "haqq"
	}
	return "batil"
}

// Array is a mutable, shared-handle vector of values (spec.md §3). It is
// always referenced through a pointer so that aliasing (`niyya b = a`)
// observes the same underlying storage, matching spec.md scenario 5.
type Array struct {
	Elements []Value
}

// NewArray wraps elements in a fresh Array handle.
func NewArray(elements []Value) *Array {
	return &Array{Elements: elements}
}

func (*Array) Type() string { return "array" }

func (a *Array) String() string {
	var sb strings.Builder
	sb.WriteString("[ ")
	for i, el := range a.Elements {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(DisplayString(el))
	}
	if len(a.Elements) > 0 {
		sb.WriteString(" ")
	}
	sb.WriteString("]")
	return sb.String()
}

// DisplayString renders v the way qul/str render it, special-casing the
// nil-as-ghaib convention (spec.md §6.4) that Value.String on its own
// can't express for a Go nil interface.
func DisplayString(v Value) string {
	if v == nil {
		return "ghaib"
	}
	return v.String()
}
