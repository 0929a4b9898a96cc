// Package builtins assembles the names a compiled program runs against:
// the compile-time arithmetic/comparison/bitwise intrinsics table, and the
// globals namespace (print, debug, fs, JSON, process, RegExp), per
// spec.md §7. Grounded on the teacher's internal/interp/builtins registry
// pattern (a name-keyed table of native callables assembled once and
// shared across runs) and maruel/natural for diagnostic name sorting.
package builtins

import (
	"math"

	"github.com/ursalang/ark/internal/ark/arkerrors"
	"github.com/ursalang/ark/internal/ark/value"
)

func num(args []value.Value, i int) (float64, error) {
	if i >= len(args) {
		return 0, arkerrors.NewRuntimeError(arkerrors.KindInvalidCall, "missing numeric argument %d", i)
	}
	n, ok := args[i].(*value.NumValue)
	if !ok {
		return 0, arkerrors.NewRuntimeError(arkerrors.KindInvalidCall, "expected a number, got %q", args[i].Kind())
	}
	return n.Value, nil
}

func fn1(name string, f func(a float64) float64) *value.NativeFnValue {
	return value.NewNativeFn(name, func(_ any, args []value.Value) (value.Value, error) {
		a, err := num(args, 0)
		if err != nil {
			return nil, err
		}
		return value.Num(f(a)), nil
	})
}

func fn2(name string, f func(a, b float64) float64) *value.NativeFnValue {
	return value.NewNativeFn(name, func(_ any, args []value.Value) (value.Value, error) {
		a, err := num(args, 0)
		if err != nil {
			return nil, err
		}
		b, err := num(args, 1)
		if err != nil {
			return nil, err
		}
		return value.Num(f(a, b)), nil
	})
}

func cmp(name string, f func(a, b float64) bool) *value.NativeFnValue {
	return value.NewNativeFn(name, func(_ any, args []value.Value) (value.Value, error) {
		a, err := num(args, 0)
		if err != nil {
			return nil, err
		}
		b, err := num(args, 1)
		if err != nil {
			return nil, err
		}
		return value.Bool(f(a, b)), nil
	})
}

// identical implements Ark's "=" / "!=" operators: reference equality for
// interned primitives and containers alike (spec.md §3.1, §8.1) — since
// Null/Bool/Num/Str are interned, this doubles as structural equality for
// those kinds without any special-casing.
func identical(a, b value.Value) bool { return a == b }

// Intrinsics returns the name→callable table for Ark's operator forms
// (spec.md §7's intrinsics table). internal/ark/compiler looks each
// symbol up in this table first and inlines a hit as a Literal, without
// going through the globals namespace.
func Intrinsics() map[string]*value.NativeFnValue {
	toInt := func(f float64) int64 { return int64(f) }
	return map[string]*value.NativeFnValue{
		"+":  fn2("+", func(a, b float64) float64 { return a + b }),
		"-":  fn2("-", func(a, b float64) float64 { return a - b }),
		"*":  fn2("*", func(a, b float64) float64 { return a * b }),
		"/":  fn2("/", func(a, b float64) float64 { return a / b }),
		"%":  fn2("%", math.Mod),
		"**": fn2("**", math.Pow),
		"&":  fn2("&", func(a, b float64) float64 { return float64(toInt(a) & toInt(b)) }),
		"|":  fn2("|", func(a, b float64) float64 { return float64(toInt(a) | toInt(b)) }),
		"^":  fn2("^", func(a, b float64) float64 { return float64(toInt(a) ^ toInt(b)) }),
		"<<": fn2("<<", func(a, b float64) float64 { return float64(toInt(a) << uint(toInt(b))) }),
		">>": fn2(">>", func(a, b float64) float64 { return float64(toInt(a) >> uint(toInt(b))) }),
		">>>": fn2(">>>", func(a, b float64) float64 {
			return float64(uint64(toInt(a)) >> uint(toInt(b)))
		}),
		"pos": fn1("pos", func(a float64) float64 { return a }),
		"neg": fn1("neg", func(a float64) float64 { return -a }),
		"~":   fn1("~", func(a float64) float64 { return float64(^toInt(a)) }),
		"not": value.NewNativeFn("not", func(_ any, args []value.Value) (value.Value, error) {
			if len(args) < 1 {
				return nil, arkerrors.NewRuntimeError(arkerrors.KindInvalidCall, "not expects 1 argument")
			}
			return value.Bool(!truthy(args[0])), nil
		}),
		"=": value.NewNativeFn("=", func(_ any, args []value.Value) (value.Value, error) {
			if len(args) < 2 {
				return nil, arkerrors.NewRuntimeError(arkerrors.KindInvalidCall, "= expects 2 arguments")
			}
			return value.Bool(identical(args[0], args[1])), nil
		}),
		"!=": value.NewNativeFn("!=", func(_ any, args []value.Value) (value.Value, error) {
			if len(args) < 2 {
				return nil, arkerrors.NewRuntimeError(arkerrors.KindInvalidCall, "!= expects 2 arguments")
			}
			return value.Bool(!identical(args[0], args[1])), nil
		}),
		"<":  cmp("<", func(a, b float64) bool { return a < b }),
		"<=": cmp("<=", func(a, b float64) bool { return a <= b }),
		">":  cmp(">", func(a, b float64) bool { return a > b }),
		">=": cmp(">=", func(a, b float64) bool { return a >= b }),
	}
}

// truthy mirrors internal/ark/eval's boolean-coercion rule; duplicated
// rather than imported since neither package depends on the other —
// pkg/ark wires builtins' globals into an eval.Evaluator, not the reverse.
func truthy(v value.Value) bool {
	switch t := v.(type) {
	case *value.NullValue:
		return false
	case *value.UndefinedValue:
		return false
	case *value.BoolValue:
		return t.Value
	case *value.NumValue:
		return t.Value != 0
	default:
		return true
	}
}
