// Package serialize renders a compiled expression tree back to Ark's wire
// JSON (spec.md §4.2.1's grammar; the round-trip obligation is
// compile(serialize(compile(x))) semantically equivalent to compile(x)).
// A resolved symbol reference (*value.StackRef/*value.CaptureRef) is
// serialized back to its original bare-string form when the compiler
// tagged it with a name (spec.md §4.2.2 step 6); an address the compiler
// never named falls back to the "ref" escape hatch wrapping a descriptor
// string ("$stack:L:I" / "$capture:I"); the compiler does not resolve these
// descriptors, so such output fails to recompile with an undefined-symbol
// error.
package serialize

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/ursalang/ark/internal/ark/arkerrors"
	"github.com/ursalang/ark/internal/ark/value"
)

// Marshal renders expr as a compact JSON document.
func Marshal(expr value.Value) (string, error) {
	return marshal(expr)
}

// MarshalIndent renders expr as a human-readable, indented JSON document
// (SPEC_FULL.md §3's fmt-json use case), using tidwall/pretty the same way
// the serializer's compact form is turned into cmd/ark's "fmt-json" output.
func MarshalIndent(expr value.Value) (string, error) {
	raw, err := marshal(expr)
	if err != nil {
		return "", err
	}
	return string(pretty.Pretty([]byte(raw))), nil
}

func arr(tag string, items ...string) (string, error) {
	doc, err := sjson.SetRaw("[]", "0", quote(tag))
	if err != nil {
		return "", err
	}
	for i, it := range items {
		doc, err = sjson.SetRaw(doc, itoa(i+1), it)
		if err != nil {
			return "", err
		}
	}
	return doc, nil
}

// paramsArr builds the ["params", n1, n2, ...] form spec.md §4.2.1 requires
// as the name list for both "let" and "fn".
func paramsArr(names []string) (string, error) {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = quote(n)
	}
	return arr("params", quoted...)
}

func quote(s string) string {
	out, _ := json.Marshal(s)
	return string(out)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf []byte
	for n > 0 {
		buf = append([]byte{byte('0' + n%10)}, buf...)
		n /= 10
	}
	return string(buf)
}

func marshalList(exps []value.Value) ([]string, error) {
	out := make([]string, len(exps))
	for i, e := range exps {
		s, err := marshal(e)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// refName returns the name a reference's debug bag was tagged with at
// compile time, if any (spec.md §4.2.2 step 6).
func refName(v value.Value) (string, bool) {
	if v == nil {
		return "", false
	}
	name := v.Debug().Name
	return name, name != ""
}

// marshalRef serializes a resolved address (*value.StackRef or
// *value.CaptureRef): by its original name when known, otherwise as an
// opaque descriptor wrapped in the same "ref" form a literal reference to
// that name would have produced.
func marshalRef(addr value.Value) (string, error) {
	if name, ok := refName(addr); ok {
		return quote(name), nil
	}
	switch a := addr.(type) {
	case *value.StackRef:
		return arr("ref", quote(fmt.Sprintf("$stack:%d:%d", a.Level, a.Index)))
	case *value.CaptureRef:
		return arr("ref", quote(fmt.Sprintf("$capture:%d", a.Index)))
	default:
		return marshal(addr)
	}
}

func marshal(v value.Value) (string, error) {
	switch n := v.(type) {
	case *value.NullValue:
		return "null", nil
	case *value.UndefinedValue:
		return "null", nil
	case *value.BoolValue:
		if n.Value {
			return "true", nil
		}
		return "false", nil
	case *value.NumValue:
		return n.String(), nil
	case *value.StrValue:
		return arr("str", quote(n.Value))

	case *value.Literal:
		switch payload := n.Payload.(type) {
		case *value.StrValue:
			return arr("str", quote(payload.Value))
		case *value.StackRef, *value.CaptureRef:
			target, err := marshalRef(payload)
			if err != nil {
				return "", err
			}
			return arr("ref", target)
		case *value.NativeFnValue:
			return quote(payload.Name), nil
		default:
			return marshal(n.Payload)
		}

	case *value.ListLit:
		items, err := marshalList(n.Exps)
		if err != nil {
			return "", err
		}
		return arr("list", items...)

	case *value.MapLit:
		items := make([]string, len(n.Pairs))
		for i, p := range n.Pairs {
			k, err := marshal(p.Key)
			if err != nil {
				return "", err
			}
			vv, err := marshal(p.Val)
			if err != nil {
				return "", err
			}
			pair, err := sjson.SetRaw("[]", "0", k)
			if err != nil {
				return "", err
			}
			pair, err = sjson.SetRaw(pair, "1", vv)
			if err != nil {
				return "", err
			}
			items[i] = pair
		}
		return arr("map", items...)

	case *value.ObjectLit:
		doc := "{}"
		var err error
		for _, ent := range n.Entries {
			vv, err2 := marshal(ent.Exp)
			if err2 != nil {
				return "", err2
			}
			doc, err = sjson.SetRaw(doc, sjsonKey(ent.Name), vv)
			if err != nil {
				return "", err
			}
		}
		return doc, nil

	case *value.Get:
		if name, ok := refName(n.Exp); ok {
			return quote(name), nil
		}
		e, err := marshal(n.Exp)
		if err != nil {
			return "", err
		}
		return arr("get", e)

	case *value.Set:
		ref, err := marshal(n.RefExp)
		if err != nil {
			return "", err
		}
		val, err := marshal(n.ValExp)
		if err != nil {
			return "", err
		}
		return arr("set", ref, val)

	case *value.Property:
		obj, err := marshal(n.ObjExp)
		if err != nil {
			return "", err
		}
		return arr("prop", quote(n.Name), obj)

	case *value.Fn:
		paramArr, err := paramsArr(n.Params)
		if err != nil {
			return "", err
		}
		body, err := marshal(n.Body)
		if err != nil {
			return "", err
		}
		return arr("fn", paramArr, body)

	case *value.Call:
		fn, err := marshal(n.FnExp)
		if err != nil {
			return "", err
		}
		args, err := marshalList(n.ArgExps)
		if err != nil {
			return "", err
		}
		return arr2(append([]string{fn}, args...))

	case *value.Let:
		nameArr, err := paramsArr(n.Names)
		if err != nil {
			return "", err
		}
		body, err := marshal(n.Body)
		if err != nil {
			return "", err
		}
		return arr("let", nameArr, body)

	case *value.Sequence:
		items, err := marshalList(n.Exps)
		if err != nil {
			return "", err
		}
		return arr("seq", items...)

	case *value.If:
		cond, err := marshal(n.Cond)
		if err != nil {
			return "", err
		}
		then, err := marshal(n.Then)
		if err != nil {
			return "", err
		}
		if n.Else == nil {
			return arr("if", cond, then)
		}
		els, err := marshal(n.Else)
		if err != nil {
			return "", err
		}
		return arr("if", cond, then, els)

	case *value.And:
		l, err := marshal(n.L)
		if err != nil {
			return "", err
		}
		r, err := marshal(n.R)
		if err != nil {
			return "", err
		}
		return arr("and", l, r)

	case *value.Or:
		l, err := marshal(n.L)
		if err != nil {
			return "", err
		}
		r, err := marshal(n.R)
		if err != nil {
			return "", err
		}
		return arr("or", l, r)

	case *value.Loop:
		body, err := marshal(n.Body)
		if err != nil {
			return "", err
		}
		return arr("loop", body)

	case *value.BreakExpr:
		if n.Payload == nil {
			return arr("break")
		}
		p, err := marshal(n.Payload)
		if err != nil {
			return "", err
		}
		return arr("break", p)

	case *value.ContinueExpr:
		return arr("continue")

	case *value.ReturnExpr:
		if n.Payload == nil {
			return arr("return")
		}
		p, err := marshal(n.Payload)
		if err != nil {
			return "", err
		}
		return arr("return", p)

	case *value.StackRef:
		return marshalRef(n)
	case *value.CaptureRef:
		return marshalRef(n)

	case *value.ListValue:
		items, err := marshalList(n.Elements)
		if err != nil {
			return "", err
		}
		return arr("list", items...)

	case *value.ObjectValue:
		doc := "{}"
		var err error
		for _, k := range n.Keys() {
			vv, err2 := marshal(n.Get(k))
			if err2 != nil {
				return "", err2
			}
			doc, err = sjson.SetRaw(doc, sjsonKey(k), vv)
			if err != nil {
				return "", err
			}
		}
		return doc, nil

	default:
		return "", arkerrors.NewCompilerError("cannot serialize value of kind %q", v.Kind())
	}
}

// arr2 builds a plain (untagged) JSON array from already-serialized
// elements — used for Call, which per spec.md §4.2.1's "anything else"
// rule carries no tag of its own.
func arr2(items []string) (string, error) {
	if len(items) == 0 {
		return "[]", nil
	}
	doc, err := sjson.SetRaw("[]", "0", items[0])
	if err != nil {
		return "", err
	}
	for i, it := range items[1:] {
		doc, err = sjson.SetRaw(doc, itoa(i+1), it)
		if err != nil {
			return "", err
		}
	}
	return doc, nil
}

// sjsonKey escapes a field name for use as an sjson path segment, where
// '.', '*', '?' and array-index-like syntax are otherwise special.
func sjsonKey(name string) string {
	esc := ""
	for _, r := range name {
		switch r {
		case '.', '*', '?', ':':
			esc += "\\" + string(r)
		default:
			esc += string(r)
		}
	}
	return esc
}
