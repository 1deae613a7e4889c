package builtins

import (
	"strconv"
	"strings"

	"github.com/qalam-lang/qalam/internal/lexer"
	"github.com/qalam-lang/qalam/internal/runtime"
)

// stringNatives are spec.md §6.6's string-library entries. Indexing and
// length operate on runes rather than bytes throughout, matching the
// rune-indexing decision SPEC_FULL.md §5 pins down for `obj[i]` on
// strings, so that substr/index_of agree with `[]` on multi-byte input.
func stringNatives() []*runtime.NativeFunction {
	return []*runtime.NativeFunction{
		native("str2num", 1, str2numFn),
		native("substr", 3, substrFn),
		native("index_of", 2, indexOfFn),
		native("replace", 3, replaceFn),
		native("code", 1, codeFn),
	}
}

func str2numFn(_ runtime.Interpreter, args []runtime.Value, paren lexer.Token) (runtime.Value, error) {
	s, err := stringArg("str2num", args, 0, paren)
	if err != nil {
		return nil, err
	}
	f, parseErr := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if parseErr != nil {
		return nil, runtime.NewRuntimeError(paren.Line, "cannot parse '%s' as a number", s)
	}
	return runtime.Number(f), nil
}

// substrFn returns (s, start, length), bounds-checked against s's rune
// count (spec.md §6.6).
func substrFn(_ runtime.Interpreter, args []runtime.Value, paren lexer.Token) (runtime.Value, error) {
	s, err := stringArg("substr", args, 0, paren)
	if err != nil {
		return nil, err
	}
	start, err := intArg("substr", args, 1, paren, true)
	if err != nil {
		return nil, err
	}
	length, err := intArg("substr", args, 2, paren, true)
	if err != nil {
		return nil, err
	}
	runes := []rune(s)
	if start > len(runes) || start+length > len(runes) {
		return nil, runtime.NewRuntimeError(paren.Line, "substr range out of bounds")
	}
	return runtime.String(string(runes[start : start+length])), nil
}

// indexOfFn returns the first rune index of sub within s, or -1.
func indexOfFn(_ runtime.Interpreter, args []runtime.Value, paren lexer.Token) (runtime.Value, error) {
	s, err := stringArg("index_of", args, 0, paren)
	if err != nil {
		return nil, err
	}
	sub, err := stringArg("index_of", args, 1, paren)
	if err != nil {
		return nil, err
	}
	byteIdx := strings.Index(s, sub)
	if byteIdx < 0 {
		return runtime.Number(-1), nil
	}
	return runtime.Number(len([]rune(s[:byteIdx]))), nil
}

func replaceFn(_ runtime.Interpreter, args []runtime.Value, paren lexer.Token) (runtime.Value, error) {
	s, err := stringArg("replace", args, 0, paren)
	if err != nil {
		return nil, err
	}
	old, err := stringArg("replace", args, 1, paren)
	if err != nil {
		return nil, err
	}
	replacement, err := stringArg("replace", args, 2, paren)
	if err != nil {
		return nil, err
	}
	return runtime.String(strings.ReplaceAll(s, old, replacement)), nil
}

// codeFn maps a single-character string to its Unicode code point.
func codeFn(_ runtime.Interpreter, args []runtime.Value, paren lexer.Token) (runtime.Value, error) {
	s, err := stringArg("code", args, 0, paren)
	if err != nil {
		return nil, err
	}
	runes := []rune(s)
	if len(runes) != 1 {
		return nil, runtime.NewRuntimeError(paren.Line, "code expects a single-character string")
	}
	return runtime.Number(float64(runes[0])), nil
}
