package interp

import (
	"bytes"
	"errors"
	"testing"

	"github.com/qalam-lang/qalam/internal/builtins"
	"github.com/qalam-lang/qalam/internal/lexer"
	"github.com/qalam-lang/qalam/internal/parser"
	"github.com/qalam-lang/qalam/internal/resolver"
	"github.com/qalam-lang/qalam/internal/runtime"
)

// run drives source through the full scan → parse → resolve → interpret
// pipeline and returns qul's accumulated stdout plus any error from the
// final interpretation stage. t.Fatalf's on any earlier-stage error, since
// these tests exercise the evaluator, not upstream recovery.
func run(t *testing.T, source string) (string, error) {
	t.Helper()

	l := lexer.New(source)
	tokens := l.ScanTokens()
	if errs := l.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected scan errors: %v", errs)
	}

	p := parser.New(tokens)
	stmts := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}

	r := resolver.New()
	r.Resolve(stmts)
	if errs := r.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected resolve errors: %v", errs)
	}

	var buf bytes.Buffer
	in := New(&buf)
	builtins.Register(in.Globals())
	in.SetDepths(r.Depths())

	err := in.Interpret(stmts)
	return buf.String(), err
}

func runOK(t *testing.T, source string) string {
	t.Helper()
	out, err := run(t, source)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	return out
}

// ---- spec.md §8 "Concrete scenarios" -----------------------------------

func TestScenarioClosureCapturesBinding(t *testing.T) {
	out := runOK(t, `niyya x = 1; amal f() { qul x; } x = 2; f();`)
	if out != "2\n" {
		t.Fatalf("got %q, want %q", out, "2\n")
	}
}

func TestScenarioInheritedMethodAndSuper(t *testing.T) {
	out := runOK(t, `kitab A { greet() { qul "A"; } }
kitab B ibn A { greet() { ulya.greet(); qul "B"; } }
B().greet();`)
	if out != "A\nB\n" {
		t.Fatalf("got %q, want %q", out, "A\nB\n")
	}
}

func TestScenarioInitializerReturnConvention(t *testing.T) {
	out := runOK(t, `kitab P { khalaq() { nafs.v = 7; radd; } } niyya p = P(); qul p.v;`)
	if out != "7\n" {
		t.Fatalf("got %q, want %q", out, "7\n")
	}
}

func TestScenarioFibonacciRecursion(t *testing.T) {
	out := runOK(t, `amal fib(n) { shart (n < 2) radd n; radd fib(n-1) + fib(n-2); } qul fib(10);`)
	if out != "55\n" {
		t.Fatalf("got %q, want %q", out, "55\n")
	}
}

func TestScenarioArrayMutationThroughAliasedHandle(t *testing.T) {
	out := runOK(t, `niyya a = [1,2,3]; niyya b = a; b[0] = 99; qul a[0];`)
	if out != "99\n" {
		t.Fatalf("got %q, want %q", out, "99\n")
	}
}

func TestScenarioLogicalShortCircuitReturnsOperand(t *testing.T) {
	out := runOK(t, `qul ghaib aw "x"; qul 1 wa 2;`)
	if out != "x\n2\n" {
		t.Fatalf("got %q, want %q", out, "x\n2\n")
	}
}

// ---- value semantics (spec.md §4.4.1) -----------------------------------

func TestTruthiness(t *testing.T) {
	out := runOK(t, `shart (0) { qul "zero truthy"; } illa { qul "zero falsy"; }
shart ("") { qul "empty string truthy"; } illa { qul "empty string falsy"; }
shart ([]) { qul "empty array truthy"; } illa { qul "empty array falsy"; }
shart (ghaib) { qul "ghaib truthy"; } illa { qul "ghaib falsy"; }
shart (batil) { qul "batil truthy"; } illa { qul "batil falsy"; }`)
	want := "zero truthy\nempty string truthy\nempty array truthy\nghaib falsy\nbatil falsy\n"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestStringConcatenation(t *testing.T) {
	out := runOK(t, `qul "a" + "b";`)
	if out != "ab\n" {
		t.Fatalf("got %q", out)
	}
}

func TestArithmeticTypeMismatchIsRuntimeError(t *testing.T) {
	_, err := run(t, `qul 1 + "x";`)
	if err == nil {
		t.Fatal("expected a runtime error")
	}
}

func TestDivisionByZeroFollowsIEEE754(t *testing.T) {
	out := runOK(t, `qul 1 / 0; qul -1 / 0; qul 0 / 0;`)
	if out != "inf\n-inf\nnan\n" {
		t.Fatalf("got %q", out)
	}
}

func TestComparisonRequiresNumbers(t *testing.T) {
	_, err := run(t, `qul "a" < "b";`)
	if err == nil {
		t.Fatal("expected a runtime error")
	}
}

func TestEqualityAcrossTypes(t *testing.T) {
	out := runOK(t, `qul ghaib == ghaib; qul 1 == "1"; qul haqq == haqq;`)
	if out != "haqq\nbatil\nhaqq\n" {
		t.Fatalf("got %q", out)
	}
}

// ---- indexing boundary tests (spec.md §8) -------------------------------

func TestArrayIndexOutOfRangeAtLength(t *testing.T) {
	_, err := run(t, `niyya a = [1,2,3]; qul a[3];`)
	if err == nil {
		t.Fatal("expected out-of-range error at index == length")
	}
}

func TestArrayIndexNegativeOutOfRange(t *testing.T) {
	_, err := run(t, `niyya a = [1,2,3]; qul a[-1];`)
	if err == nil {
		t.Fatal("expected out-of-range error for negative index")
	}
}

func TestStringIndexingIsRuneBased(t *testing.T) {
	out := runOK(t, `qul "مرحبا"[0];`)
	if out != "م\n" {
		t.Fatalf("got %q", out)
	}
}

func TestArraySetIndexedRejectsNonArray(t *testing.T) {
	_, err := run(t, `"abc"[0] = "z";`)
	if err == nil {
		t.Fatal("expected error setting an index on a non-array")
	}
}

// ---- calls, closures, classes --------------------------------------------

func TestArityMismatchIsRuntimeError(t *testing.T) {
	_, err := run(t, `amal f(a, b) { radd a + b; } f(1);`)
	if err == nil {
		t.Fatal("expected an arity-mismatch runtime error")
	}
}

func TestCallingNonCallableIsRuntimeError(t *testing.T) {
	_, err := run(t, `niyya x = 1; x();`)
	if err == nil {
		t.Fatal("expected a non-callable runtime error")
	}
}

func TestFieldsShadowMethods(t *testing.T) {
	out := runOK(t, `kitab C { m() { qul "method"; } }
niyya c = C();
c.m = "field";
qul c.m;`)
	if out != "field\n" {
		t.Fatalf("got %q", out)
	}
}

func TestUndefinedPropertyIsRuntimeError(t *testing.T) {
	_, err := run(t, `kitab C {} C().missing;`)
	if err == nil {
		t.Fatal("expected undefined-property runtime error")
	}
}

func TestClosureObservesMutationAcrossInvocations(t *testing.T) {
	out := runOK(t, `amal makeCounter() {
    niyya count = 0;
    amal inc() {
        count = count + 1;
        radd count;
    }
    radd inc;
}
niyya counter = makeCounter();
qul counter();
qul counter();
qul counter();`)
	if out != "1\n2\n3\n" {
		t.Fatalf("got %q", out)
	}
}

func TestRecursiveClassMethodCallChaining(t *testing.T) {
	out := runOK(t, `kitab Chain {
    khalaq(v) { nafs.v = v; }
    next() { radd Chain(nafs.v + 1); }
    value() { radd nafs.v; }
}
qul Chain(1).next().next().value();`)
	if out != "3\n" {
		t.Fatalf("got %q", out)
	}
}

// ---- environment scoping restoration (spec.md §5) -----------------------

func TestEnvironmentRestoredAfterRuntimeErrorInBlock(t *testing.T) {
	in := newTestInterpreter(t)
	globalsBefore := in.environment
	source := `{ niyya x = 1; qul 1 + "y"; }`

	l := lexer.New(source)
	p := parser.New(l.ScanTokens())
	stmts := p.ParseProgram()
	r := resolver.New()
	r.Resolve(stmts)
	in.SetDepths(r.Depths())

	err := in.Interpret(stmts)
	if err == nil {
		t.Fatal("expected a runtime error")
	}
	if in.environment != globalsBefore {
		t.Fatal("environment pointer was not restored after an error inside a block")
	}
}

func newTestInterpreter(t *testing.T) *Interpreter {
	t.Helper()
	var buf bytes.Buffer
	in := New(&buf)
	builtins.Register(in.Globals())
	return in
}

// ---- non-local return discrimination (spec.md §7) -----------------------

func TestReturnSignalNotConflatedWithRuntimeError(t *testing.T) {
	var sig returnSignal
	var rerr *runtime.RuntimeError

	err := error(returnSignal{value: runtime.Number(5)})
	if errors.As(err, &rerr) {
		t.Fatal("a returnSignal must not be mistaken for a RuntimeError")
	}
	if !errors.As(err, &sig) {
		t.Fatal("returnSignal should be discriminable by type")
	}
}
