// Package host implements the adapter boundary between Ark values and the
// embedding process (spec.md §7): fromHost/toHost value coercion plus the
// four native-object namespaces (fs, JSON, process, RegExp) a program's
// globals expose. A concrete host-FFI bridge beyond this reference
// adapter is explicitly out of scope (spec.md §0) — host.Native is the
// reference implementation the CLI (cmd/ark) links against.
package host

import (
	"github.com/ursalang/ark/internal/ark/arkerrors"
	"github.com/ursalang/ark/internal/ark/value"
)

// Adapter converts between Ark values and Go values crossing the host
// boundary (spec.md §7). The fs/JSON/process/RegExp handles in this
// package do not go through an Adapter; they convert their arguments and
// results directly.
type Adapter interface {
	FromHost(v any) (value.Value, error)
	ToHost(v value.Value) (any, error)
}

// Native is the reference Adapter: document is absent since this adapter
// is headless (no DOM host to bridge to) — spec-compliant per spec.md §7's
// note that `document` is host-environment-specific.
type Native struct{}

// FromHost converts a Go value (string, float64/int, bool, nil, []any,
// map[string]any) into its Ark representation.
func (Native) FromHost(v any) (value.Value, error) {
	switch t := v.(type) {
	case nil:
		return value.Null(), nil
	case bool:
		return value.Bool(t), nil
	case string:
		return value.Str(t), nil
	case float64:
		return value.Num(t), nil
	case int:
		return value.Num(float64(t)), nil
	case int64:
		return value.Num(float64(t)), nil
	case []any:
		elems := make([]value.Value, len(t))
		for i, e := range t {
			v, err := (Native{}).FromHost(e)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return value.NewList(elems), nil
	case map[string]any:
		obj := value.NewObject()
		for k, e := range t {
			v, err := (Native{}).FromHost(e)
			if err != nil {
				return nil, err
			}
			obj.Set(k, v)
		}
		return obj, nil
	default:
		return nil, arkerrors.NewRuntimeError(arkerrors.KindHostConversion, arkerrors.MsgHostConversion, "unsupported host type")
	}
}

// ToHost converts an Ark value back to a plain Go value.
func (Native) ToHost(v value.Value) (any, error) {
	switch t := v.(type) {
	case *value.NullValue, *value.UndefinedValue:
		return nil, nil
	case *value.BoolValue:
		return t.Value, nil
	case *value.StrValue:
		return t.Value, nil
	case *value.NumValue:
		return t.Value, nil
	case *value.ListValue:
		out := make([]any, len(t.Elements))
		for i, e := range t.Elements {
			h, err := (Native{}).ToHost(e)
			if err != nil {
				return nil, err
			}
			out[i] = h
		}
		return out, nil
	case *value.ObjectValue:
		out := make(map[string]any, len(t.Keys()))
		for _, k := range t.Keys() {
			h, err := (Native{}).ToHost(t.Get(k))
			if err != nil {
				return nil, err
			}
			out[k] = h
		}
		return out, nil
	default:
		return nil, arkerrors.NewRuntimeError(arkerrors.KindHostConversion, arkerrors.MsgHostConversion, v.Kind())
	}
}
