package builtins

import (
	"testing"

	"github.com/qalam-lang/qalam/internal/lexer"
	"github.com/qalam-lang/qalam/internal/runtime"
)

func findNative(t *testing.T, name string) *runtime.NativeFunction {
	t.Helper()
	globals := runtime.NewEnvironment()
	Register(globals)
	v, err := globals.Get(name)
	if err != nil {
		t.Fatalf("native %q not registered: %v", name, err)
	}
	n, ok := v.(*runtime.NativeFunction)
	if !ok {
		t.Fatalf("expected %q to be a *runtime.NativeFunction, got %T", name, v)
	}
	return n
}

func call(t *testing.T, name string, args ...runtime.Value) (runtime.Value, error) {
	t.Helper()
	n := findNative(t, name)
	if n.Arity() != len(args) {
		t.Fatalf("%q expects %d args, test passed %d", name, n.Arity(), len(args))
	}
	return n.Fn(nil, args, lexer.Token{Line: 1})
}

func TestRegisterInstallsEveryNativeName(t *testing.T) {
	names := []string{
		"pow", "max", "min", "floor", "ceil", "round", "random", "random_int",
		"str2num", "substr", "index_of", "replace", "code",
		"len", "push", "pop", "slice", "Array",
		"clock", "str", "typeof",
	}
	globals := runtime.NewEnvironment()
	Register(globals)
	for _, name := range names {
		if _, err := globals.Get(name); err != nil {
			t.Fatalf("expected %q to be registered: %v", name, err)
		}
	}
}

func TestPow(t *testing.T) {
	v, err := call(t, "pow", runtime.Number(2), runtime.Number(10))
	if err != nil || v != runtime.Number(1024) {
		t.Fatalf("got %v, %v", v, err)
	}
}

func TestMaxMin(t *testing.T) {
	if v, _ := call(t, "max", runtime.Number(3), runtime.Number(7)); v != runtime.Number(7) {
		t.Fatalf("max got %v", v)
	}
	if v, _ := call(t, "min", runtime.Number(3), runtime.Number(7)); v != runtime.Number(3) {
		t.Fatalf("min got %v", v)
	}
}

func TestLenAcceptsStringOrArray(t *testing.T) {
	if v, _ := call(t, "len", runtime.String("qalam")); v != runtime.Number(5) {
		t.Fatalf("got %v", v)
	}
	arr := runtime.NewArray([]runtime.Value{runtime.Number(1), runtime.Number(2)})
	if v, _ := call(t, "len", arr); v != runtime.Number(2) {
		t.Fatalf("got %v", v)
	}
}

func TestLenRejectsOtherTypes(t *testing.T) {
	if _, err := call(t, "len", runtime.Number(1)); err == nil {
		t.Fatal("expected an error for len(number)")
	}
}

func TestLenCountsRunesNotBytes(t *testing.T) {
	v, err := call(t, "len", runtime.String("مرحبا"))
	if err != nil || v != runtime.Number(5) {
		t.Fatalf("got %v, %v", v, err)
	}
}

func TestPushPopMutateInPlace(t *testing.T) {
	arr := runtime.NewArray([]runtime.Value{runtime.Number(1)})
	if _, err := call(t, "push", arr, runtime.Number(2)); err != nil {
		t.Fatalf("push error: %v", err)
	}
	if len(arr.Elements) != 2 {
		t.Fatalf("expected push to mutate in place, got %v", arr.Elements)
	}
	popped, err := call(t, "pop", arr)
	if err != nil || popped != runtime.Number(2) {
		t.Fatalf("got %v, %v", popped, err)
	}
	if len(arr.Elements) != 1 {
		t.Fatalf("expected pop to shrink in place, got %v", arr.Elements)
	}
}

func TestPopOnEmptyArrayIsAnError(t *testing.T) {
	arr := runtime.NewArray(nil)
	if _, err := call(t, "pop", arr); err == nil {
		t.Fatal("expected an error popping an empty array")
	}
}

func TestSliceBoundsChecked(t *testing.T) {
	arr := runtime.NewArray([]runtime.Value{runtime.Number(1), runtime.Number(2), runtime.Number(3)})
	if _, err := call(t, "slice", arr, runtime.Number(0), runtime.Number(5)); err == nil {
		t.Fatal("expected an out-of-bounds slice error")
	}
	v, err := call(t, "slice", arr, runtime.Number(1), runtime.Number(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := v.(*runtime.Array)
	if len(out.Elements) != 2 || out.Elements[0] != runtime.Number(2) {
		t.Fatalf("got %v", out.Elements)
	}
}

func TestArrayConstructorFillsWithValue(t *testing.T) {
	v, err := call(t, "Array", runtime.Number(3), runtime.Number(0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	arr := v.(*runtime.Array)
	if len(arr.Elements) != 3 {
		t.Fatalf("got %d elements", len(arr.Elements))
	}
	for _, e := range arr.Elements {
		if e != runtime.Number(0) {
			t.Fatalf("expected every element to be 0, got %v", e)
		}
	}
}

func TestSubstrIsRuneBounded(t *testing.T) {
	v, err := call(t, "substr", runtime.String("مرحبا"), runtime.Number(1), runtime.Number(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != runtime.String("رح") {
		t.Fatalf("got %v", v)
	}
}

func TestSubstrOutOfRangeIsAnError(t *testing.T) {
	if _, err := call(t, "substr", runtime.String("abc"), runtime.Number(2), runtime.Number(5)); err == nil {
		t.Fatal("expected a substr out-of-bounds error")
	}
}

func TestIndexOfReturnsRuneOffsetNotByteOffset(t *testing.T) {
	v, err := call(t, "index_of", runtime.String("مرحبا world"), runtime.String("world"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != runtime.Number(6) {
		t.Fatalf("got %v, want rune offset 6", v)
	}
}

func TestIndexOfMissingReturnsNegativeOne(t *testing.T) {
	v, err := call(t, "index_of", runtime.String("abc"), runtime.String("z"))
	if err != nil || v != runtime.Number(-1) {
		t.Fatalf("got %v, %v", v, err)
	}
}

func TestReplace(t *testing.T) {
	v, err := call(t, "replace", runtime.String("a-b-c"), runtime.String("-"), runtime.String("_"))
	if err != nil || v != runtime.String("a_b_c") {
		t.Fatalf("got %v, %v", v, err)
	}
}

func TestCodeRequiresExactlyOneRune(t *testing.T) {
	v, err := call(t, "code", runtime.String("A"))
	if err != nil || v != runtime.Number(65) {
		t.Fatalf("got %v, %v", v, err)
	}
	if _, err := call(t, "code", runtime.String("AB")); err == nil {
		t.Fatal("expected an error for a multi-character string")
	}
}

func TestTypeofCoversEveryValueKind(t *testing.T) {
	cases := []struct {
		v    runtime.Value
		want runtime.Value
	}{
		{runtime.Number(1), runtime.String("number")},
		{runtime.String("s"), runtime.String("string")},
		{runtime.Bool(true), runtime.String("bool")},
		{runtime.NewArray(nil), runtime.String("array")},
		{nil, runtime.String("ghaib")},
	}
	for _, c := range cases {
		got, err := call(t, "typeof", c.v)
		if err != nil || got != c.want {
			t.Fatalf("typeof(%v) = %v, %v; want %v", c.v, got, err, c.want)
		}
	}
}

func TestStrRendersGhaibForNil(t *testing.T) {
	v, err := call(t, "str", nil)
	if err != nil || v != runtime.String("ghaib") {
		t.Fatalf("got %v, %v", v, err)
	}
}

func TestFloorCeilRound(t *testing.T) {
	if v, _ := call(t, "floor", runtime.Number(3.7)); v != runtime.Number(3) {
		t.Fatalf("floor got %v", v)
	}
	if v, _ := call(t, "ceil", runtime.Number(3.2)); v != runtime.Number(4) {
		t.Fatalf("ceil got %v", v)
	}
	if v, _ := call(t, "round", runtime.Number(3.5)); v != runtime.Number(4) {
		t.Fatalf("round got %v", v)
	}
}

func TestStr2NumParsesTrimmedFloat(t *testing.T) {
	v, err := call(t, "str2num", runtime.String("  42.5  "))
	if err != nil || v != runtime.Number(42.5) {
		t.Fatalf("got %v, %v", v, err)
	}
}

func TestStr2NumRejectsNonNumericText(t *testing.T) {
	if _, err := call(t, "str2num", runtime.String("abc")); err == nil {
		t.Fatal("expected a parse error")
	}
}
