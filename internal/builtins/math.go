package builtins

import (
	"math"
	"math/rand"

	"github.com/qalam-lang/qalam/internal/lexer"
	"github.com/qalam-lang/qalam/internal/runtime"
)

// mathNatives are the numeric entries of spec.md §6.6's native table:
// pow, max, min, floor, ceil, round, random, random_int.
func mathNatives() []*runtime.NativeFunction {
	return []*runtime.NativeFunction{
		native("pow", 2, powFn),
		native("max", 2, maxFn),
		native("min", 2, minFn),
		native("floor", 1, floorFn),
		native("ceil", 1, ceilFn),
		native("round", 1, roundFn),
		native("random", 2, randomFn),
		native("random_int", 2, randomIntFn),
	}
}

func powFn(_ runtime.Interpreter, args []runtime.Value, paren lexer.Token) (runtime.Value, error) {
	base, err := numberArg("pow", args, 0, paren)
	if err != nil {
		return nil, err
	}
	exp, err := numberArg("pow", args, 1, paren)
	if err != nil {
		return nil, err
	}
	return runtime.Number(math.Pow(float64(base), float64(exp))), nil
}

func maxFn(_ runtime.Interpreter, args []runtime.Value, paren lexer.Token) (runtime.Value, error) {
	a, err := numberArg("max", args, 0, paren)
	if err != nil {
		return nil, err
	}
	b, err := numberArg("max", args, 1, paren)
	if err != nil {
		return nil, err
	}
	if a > b {
		return a, nil
	}
	return b, nil
}

func minFn(_ runtime.Interpreter, args []runtime.Value, paren lexer.Token) (runtime.Value, error) {
	a, err := numberArg("min", args, 0, paren)
	if err != nil {
		return nil, err
	}
	b, err := numberArg("min", args, 1, paren)
	if err != nil {
		return nil, err
	}
	if a < b {
		return a, nil
	}
	return b, nil
}

func floorFn(_ runtime.Interpreter, args []runtime.Value, paren lexer.Token) (runtime.Value, error) {
	n, err := numberArg("floor", args, 0, paren)
	if err != nil {
		return nil, err
	}
	return runtime.Number(math.Floor(float64(n))), nil
}

func ceilFn(_ runtime.Interpreter, args []runtime.Value, paren lexer.Token) (runtime.Value, error) {
	n, err := numberArg("ceil", args, 0, paren)
	if err != nil {
		return nil, err
	}
	return runtime.Number(math.Ceil(float64(n))), nil
}

func roundFn(_ runtime.Interpreter, args []runtime.Value, paren lexer.Token) (runtime.Value, error) {
	n, err := numberArg("round", args, 0, paren)
	if err != nil {
		return nil, err
	}
	return runtime.Number(math.Round(float64(n))), nil
}

// randomFn yields a uniform float in [min, max) (spec.md §6.6).
func randomFn(_ runtime.Interpreter, args []runtime.Value, paren lexer.Token) (runtime.Value, error) {
	lo, err := numberArg("random", args, 0, paren)
	if err != nil {
		return nil, err
	}
	hi, err := numberArg("random", args, 1, paren)
	if err != nil {
		return nil, err
	}
	return runtime.Number(float64(lo) + rand.Float64()*float64(hi-lo)), nil
}

// randomIntFn yields a uniform int in [min, max).
func randomIntFn(_ runtime.Interpreter, args []runtime.Value, paren lexer.Token) (runtime.Value, error) {
	lo, err := intArg("random_int", args, 0, paren, false)
	if err != nil {
		return nil, err
	}
	hi, err := intArg("random_int", args, 1, paren, false)
	if err != nil {
		return nil, err
	}
	if hi <= lo {
		return nil, runtime.NewRuntimeError(paren.Line, "random_int expects max > min")
	}
	return runtime.Number(float64(lo + rand.Intn(hi-lo))), nil
}
