package host

import (
	"os"

	"github.com/ursalang/ark/internal/ark/arkerrors"
	"github.com/ursalang/ark/internal/ark/value"
)

// fsHandle implements value.NativeObjectHandle for the "fs" global
// (spec.md §7): readFile/writeFile/exists, each a NativeFnValue property.
type fsHandle struct{}

// NewFS returns the "fs" global native object.
func NewFS() *value.NativeObjectValue {
	return value.NewNativeObject("fs", fsHandle{})
}

func (fsHandle) GetProp(name string) (value.Value, error) {
	switch name {
	case "readFile":
		return value.NewNativeFn("fs.readFile", func(_ any, args []value.Value) (value.Value, error) {
			path, err := argStr(args, 0, "fs.readFile")
			if err != nil {
				return nil, err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, arkerrors.AsHostConversionError(err)
			}
			return value.Str(string(data)), nil
		}), nil
	case "writeFile":
		return value.NewNativeFn("fs.writeFile", func(_ any, args []value.Value) (value.Value, error) {
			path, err := argStr(args, 0, "fs.writeFile")
			if err != nil {
				return nil, err
			}
			body, err := argStr(args, 1, "fs.writeFile")
			if err != nil {
				return nil, err
			}
			if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
				return nil, arkerrors.AsHostConversionError(err)
			}
			return value.Null(), nil
		}), nil
	case "exists":
		return value.NewNativeFn("fs.exists", func(_ any, args []value.Value) (value.Value, error) {
			path, err := argStr(args, 0, "fs.exists")
			if err != nil {
				return nil, err
			}
			_, statErr := os.Stat(path)
			return value.Bool(statErr == nil), nil
		}), nil
	default:
		return value.Null(), nil
	}
}

func (fsHandle) SetProp(name string, v value.Value) error {
	return arkerrors.NewRuntimeError(arkerrors.KindInvalidAssignment, "fs.%s is read-only", name)
}

func argStr(args []value.Value, i int, who string) (string, error) {
	if i >= len(args) {
		return "", arkerrors.NewRuntimeError(arkerrors.KindInvalidCall, arkerrors.MsgArityMismatch, who, i+1, len(args))
	}
	s, ok := args[i].(*value.StrValue)
	if !ok {
		return "", arkerrors.NewRuntimeError(arkerrors.KindInvalidCall, "%s expects a string argument, got %q", who, args[i].Kind())
	}
	return s.Value, nil
}
