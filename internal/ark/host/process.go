package host

import (
	"os"

	"github.com/ursalang/ark/internal/ark/arkerrors"
	"github.com/ursalang/ark/internal/ark/value"
)

// processHandle implements value.NativeObjectHandle for the "process"
// global: argv, env, exit (spec.md §7).
type processHandle struct{}

// NewProcess returns the "process" global native object.
func NewProcess() *value.NativeObjectValue {
	return value.NewNativeObject("process", processHandle{})
}

func (processHandle) GetProp(name string) (value.Value, error) {
	switch name {
	case "argv":
		elems := make([]value.Value, len(os.Args))
		for i, a := range os.Args {
			elems[i] = value.Str(a)
		}
		return value.NewList(elems), nil
	case "env":
		return value.NewNativeFn("process.env", func(_ any, args []value.Value) (value.Value, error) {
			key, err := argStr(args, 0, "process.env")
			if err != nil {
				return nil, err
			}
			v, ok := os.LookupEnv(key)
			if !ok {
				return value.Null(), nil
			}
			return value.Str(v), nil
		}), nil
	case "exit":
		return value.NewNativeFn("process.exit", func(_ any, args []value.Value) (value.Value, error) {
			code := 0
			if len(args) > 0 {
				if n, ok := args[0].(*value.NumValue); ok {
					code = int(n.Value)
				}
			}
			os.Exit(code)
			return value.Null(), nil
		}), nil
	default:
		return value.Null(), nil
	}
}

func (processHandle) SetProp(name string, v value.Value) error {
	return arkerrors.NewRuntimeError(arkerrors.KindInvalidAssignment, "process.%s is read-only", name)
}
