package builtins

import (
	"fmt"
	"sort"

	"github.com/maruel/natural"

	"github.com/ursalang/ark/internal/ark/host"
	"github.com/ursalang/ark/internal/ark/value"
)

// Globals returns the external-symbols namespace a program's root frame is
// seeded with (spec.md §3.5, §7): math constants, print/debug, and the
// host adapter's native-object namespaces. Intrinsics (the operator table)
// are deliberately NOT part of this map — they resolve at compile time via
// internal/ark/compiler's step-5 shortcut (spec.md §4.2.2) instead of
// through an ordinary global lookup, so they can never be shadowed by a
// program-declared global of the same name. See Intrinsics.
func Globals() map[string]value.Value {
	return map[string]value.Value{
		"pi": value.Num(3.141592653589793),
		"e":  value.Num(2.718281828459045),
		"print": value.NewNativeFn("print", func(_ any, args []value.Value) (value.Value, error) {
			fmt.Println(joinArgs(args))
			return value.Null(), nil
		}),
		"debug": value.NewNativeFn("debug", func(_ any, args []value.Value) (value.Value, error) {
			for _, a := range args {
				fmt.Printf("[debug:%d] %s\n", a.Debug().UID, a.String())
			}
			return value.Null(), nil
		}),
		"fs":      host.NewFS(),
		"JSON":    host.NewJSON(),
		"process": host.NewProcess(),
		"RegExp":  host.NewRegExpConstructor(),
	}
}

func joinArgs(args []value.Value) string {
	s := ""
	for i, a := range args {
		if i > 0 {
			s += " "
		}
		s += a.String()
	}
	return s
}

// Names returns the global names in a stable, naturally-sorted order
// (e.g. "a2" before "a10") — used by internal/ark/compiler to assign each
// global a fixed slot index.
func Names(globals map[string]value.Value) []string {
	names := make([]string, 0, len(globals))
	for n := range globals {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return natural.Less(names[i], names[j]) })
	return names
}
