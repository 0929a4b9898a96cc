package host

import (
	"encoding/json"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/ursalang/ark/internal/ark/arkerrors"
	"github.com/ursalang/ark/internal/ark/value"
)

// jsonHandle implements value.NativeObjectHandle for the "JSON" global:
// parse/stringify, using the same tidwall stack the compiler and
// serializer use for the wire format itself (spec.md §7).
type jsonHandle struct{}

// NewJSON returns the "JSON" global native object.
func NewJSON() *value.NativeObjectValue {
	return value.NewNativeObject("JSON", jsonHandle{})
}

func (jsonHandle) GetProp(name string) (value.Value, error) {
	switch name {
	case "parse":
		return value.NewNativeFn("JSON.parse", func(_ any, args []value.Value) (value.Value, error) {
			raw, err := argStr(args, 0, "JSON.parse")
			if err != nil {
				return nil, err
			}
			if !gjson.Valid(raw) {
				return nil, arkerrors.NewRuntimeError(arkerrors.KindHostConversion, "JSON.parse: invalid JSON")
			}
			return fromGjson(gjson.Parse(raw)), nil
		}), nil
	case "stringify":
		return value.NewNativeFn("JSON.stringify", func(_ any, args []value.Value) (value.Value, error) {
			if len(args) < 1 {
				return nil, arkerrors.NewRuntimeError(arkerrors.KindInvalidCall, arkerrors.MsgArityMismatch, "JSON.stringify", 1, 0)
			}
			raw, err := toJSON(args[0])
			if err != nil {
				return nil, err
			}
			return value.Str(string(pretty.Ugly([]byte(raw)))), nil
		}), nil
	default:
		return value.Null(), nil
	}
}

func (jsonHandle) SetProp(name string, v value.Value) error {
	return arkerrors.NewRuntimeError(arkerrors.KindInvalidAssignment, "JSON.%s is read-only", name)
}

func fromGjson(r gjson.Result) value.Value {
	switch r.Type {
	case gjson.Null:
		return value.Null()
	case gjson.True:
		return value.Bool(true)
	case gjson.False:
		return value.Bool(false)
	case gjson.Number:
		return value.Num(r.Float())
	case gjson.String:
		return value.Str(r.String())
	}
	if r.IsArray() {
		items := r.Array()
		elems := make([]value.Value, len(items))
		for i, it := range items {
			elems[i] = fromGjson(it)
		}
		return value.NewList(elems)
	}
	if r.IsObject() {
		obj := value.NewObject()
		r.ForEach(func(k, v gjson.Result) bool {
			obj.Set(k.String(), fromGjson(v))
			return true
		})
		return obj
	}
	return value.Null()
}

// toJSON serializes an Ark value to a JSON document, building it
// incrementally with sjson.Set since Ark's container types have no fixed
// schema to marshal against directly.
func toJSON(v value.Value) (string, error) {
	switch t := v.(type) {
	case *value.NullValue, *value.UndefinedValue:
		return "null", nil
	case *value.BoolValue:
		if t.Value {
			return "true", nil
		}
		return "false", nil
	case *value.NumValue:
		return value.Num(t.Value).String(), nil
	case *value.StrValue:
		// sjson/gjson are built for path-addressed container documents, not
		// scalar root values, so a bare string literal is escaped with
		// encoding/json here rather than coerced through a sjson root-set.
		quoted, err := json.Marshal(t.Value)
		return string(quoted), err
	case *value.ListValue:
		doc := "[]"
		for i, e := range t.Elements {
			child, err := toJSON(e)
			if err != nil {
				return "", err
			}
			var err2 error
			doc, err2 = sjson.SetRaw(doc, itoaPath(i), child)
			if err2 != nil {
				return "", err2
			}
		}
		return doc, nil
	case *value.ObjectValue:
		doc := "{}"
		for _, k := range t.Keys() {
			child, err := toJSON(t.Get(k))
			if err != nil {
				return "", err
			}
			var err2 error
			doc, err2 = sjson.SetRaw(doc, k, child)
			if err2 != nil {
				return "", err2
			}
		}
		return doc, nil
	default:
		return "", arkerrors.NewRuntimeError(arkerrors.KindHostConversion, "JSON.stringify: cannot serialize value of kind %q", v.Kind())
	}
}

func itoaPath(i int) string {
	if i == 0 {
		return "0"
	}
	digits := []byte{}
	n := i
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}
