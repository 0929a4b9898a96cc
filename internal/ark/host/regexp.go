package host

import (
	"regexp"

	"golang.org/x/text/cases"

	"github.com/ursalang/ark/internal/ark/arkerrors"
	"github.com/ursalang/ark/internal/ark/value"
)

// regExpHandle wraps a compiled *regexp.Regexp: test/exec/replace, plus
// an "i" (case-insensitive) flag applied via golang.org/x/text/cases
// rather than Go regexp's own (?i) inline flag, so the fold matches Ark's
// string-coercion rules for non-ASCII text (spec.md §7).
type regExpHandle struct {
	re         *regexp.Regexp
	foldedCase bool
}

// NewRegExpConstructor returns the "RegExp" global: a NativeFn that
// compiles a pattern + flags string into a RegExp native object.
func NewRegExpConstructor() *value.NativeFnValue {
	return value.NewNativeFn("RegExp", func(_ any, args []value.Value) (value.Value, error) {
		pattern, err := argStr(args, 0, "RegExp")
		if err != nil {
			return nil, err
		}
		flags := ""
		if len(args) > 1 {
			flags, err = argStr(args, 1, "RegExp")
			if err != nil {
				return nil, err
			}
		}
		folded := false
		goPattern := pattern
		for _, f := range flags {
			switch f {
			case 'i':
				folded = true
			default:
				return nil, arkerrors.NewRuntimeError(arkerrors.KindInvalidCall, "RegExp: unsupported flag %q", string(f))
			}
		}
		// RE2's own (?i) only folds the ASCII range; Ark's `i` flag is
		// Unicode-aware, so both the pattern and the matched text are
		// pre-folded with golang.org/x/text/cases instead.
		if folded {
			goPattern = caseFolder.String(goPattern)
		}
		re, err := regexp.Compile(goPattern)
		if err != nil {
			return nil, arkerrors.AsHostConversionError(err)
		}
		return value.NewNativeObject("RegExp", &regExpHandle{re: re, foldedCase: folded}), nil
	})
}

var caseFolder = cases.Fold()

func foldForMatch(folded bool, s string) string {
	if !folded {
		return s
	}
	return caseFolder.String(s)
}

func (h *regExpHandle) GetProp(name string) (value.Value, error) {
	switch name {
	case "test":
		return value.NewNativeFn("RegExp.test", func(_ any, args []value.Value) (value.Value, error) {
			s, err := argStr(args, 0, "RegExp.test")
			if err != nil {
				return nil, err
			}
			return value.Bool(h.re.MatchString(foldForMatch(h.foldedCase, s))), nil
		}), nil
	case "exec":
		return value.NewNativeFn("RegExp.exec", func(_ any, args []value.Value) (value.Value, error) {
			s, err := argStr(args, 0, "RegExp.exec")
			if err != nil {
				return nil, err
			}
			groups := h.re.FindStringSubmatch(foldForMatch(h.foldedCase, s))
			if groups == nil {
				return value.Null(), nil
			}
			elems := make([]value.Value, len(groups))
			for i, g := range groups {
				elems[i] = value.Str(g)
			}
			return value.NewList(elems), nil
		}), nil
	case "replace":
		return value.NewNativeFn("RegExp.replace", func(_ any, args []value.Value) (value.Value, error) {
			s, err := argStr(args, 0, "RegExp.replace")
			if err != nil {
				return nil, err
			}
			repl, err := argStr(args, 1, "RegExp.replace")
			if err != nil {
				return nil, err
			}
			return value.Str(h.re.ReplaceAllString(foldForMatch(h.foldedCase, s), repl)), nil
		}), nil
	default:
		return value.Null(), nil
	}
}

func (h *regExpHandle) SetProp(name string, v value.Value) error {
	return arkerrors.NewRuntimeError(arkerrors.KindInvalidAssignment, "RegExp.%s is read-only", name)
}
