// Package compiler turns Ark's JSON-encoded expression graph into the
// value.Value expression tree the evaluator walks, resolving every symbol
// reference to a lexical address (a *value.StackRef or *value.CaptureRef)
// along the way (spec.md §4.2, §9).
//
// Grounded on the teacher's recursive-descent compile pass shape
// (internal/interp compiler stages) generalized from token-stream parsing
// to structural JSON decoding; tidwall/gjson is used to walk each node's
// shape directly rather than committing to a single encoding/json struct
// per form.
package compiler

import (
	"sort"

	"github.com/tidwall/gjson"

	"github.com/ursalang/ark/internal/ark/arkerrors"
	"github.com/ursalang/ark/internal/ark/value"
)

// Compiled is the result of compiling one top-level program: the resolved
// expression tree plus the external (globals-namespace) names it actually
// depends on. Per spec.md §4.2/§6.2, a caller compiling against a partial
// environment must check FreeVars against the names it can actually bind
// before running — see pkg/ark.Compile, which does this in checkFreeVars.
type Compiled struct {
	Expression value.Value
	FreeVars   []string
	NumGlobals int
}

// Compile decodes raw (a JSON document per spec.md §4.2.1) against the
// given global names (in binding order — see internal/ark/builtins.Names)
// and the intrinsics table (internal/ark/builtins.Intrinsics), and returns
// the compiled expression tree.
func Compile(raw []byte, globals []string, intrinsics map[string]*value.NativeFnValue) (*Compiled, error) {
	if !gjson.ValidBytes(raw) {
		return nil, arkerrors.NewCompilerError("input is not valid JSON")
	}
	root := newRootScope(intrinsics)
	for _, g := range globals {
		root.declare(g)
	}
	c := &compileCtx{}
	result := gjson.ParseBytes(raw)
	expr, err := c.compileExpr(result, root, false)
	if err != nil {
		return nil, err
	}
	freeVars := make([]string, 0, len(root.shared.freeVars))
	for name := range root.shared.freeVars {
		freeVars = append(freeVars, name)
	}
	sort.Strings(freeVars)
	return &Compiled{Expression: expr, FreeVars: freeVars, NumGlobals: len(globals)}, nil
}

type compileCtx struct{}

// tagForms is the set of recognized array-form tags (spec.md §4.2.1's
// fourteen tagged forms, plus break/continue/return — see DESIGN.md for
// why those three get dedicated tags rather than ordinary intrinsic
// dispatch). Any other array, including one whose own first element is
// itself a nested form (e.g. an immediately-invoked function expression),
// falls through to the "anything else" Call rule — membership in this set
// is what decides dispatch, not merely "array with a string first element".
var tagForms = map[string]bool{
	"str": true, "let": true, "fn": true, "prop": true,
	"ref": true, "get": true, "set": true,
	"list": true, "map": true, "seq": true,
	"if": true, "and": true, "or": true, "loop": true,
	"break": true, "continue": true, "return": true,
}

func (c *compileCtx) compileExpr(r gjson.Result, s *scope, raw bool) (value.Value, error) {
	body, loc := stripLoc(r)
	expr, err := c.compileForm(body, s, raw)
	if err != nil {
		if ce, ok := err.(*arkerrors.CompilerError); ok && ce.Loc == nil && loc != nil {
			ce.WithLoc(loc)
		}
		return nil, err
	}
	if loc != nil {
		expr.Debug().SourceLoc = loc
	}
	return expr, nil
}

// stripLoc detects the optional trailing {"loc":{"line":n,"col":n}} sidecar
// entry (SPEC_FULL.md §5) on an array form and returns the form with that
// entry removed, plus the parsed location if present.
func stripLoc(r gjson.Result) (gjson.Result, *value.SourceLoc) {
	if !r.IsArray() {
		return r, nil
	}
	items := r.Array()
	if len(items) == 0 {
		return r, nil
	}
	last := items[len(items)-1]
	if !last.IsObject() {
		return r, nil
	}
	locResult := last.Get("loc")
	if !locResult.Exists() {
		return r, nil
	}
	loc := &value.SourceLoc{
		Line:   int(locResult.Get("line").Int()),
		Column: int(locResult.Get("col").Int()),
	}
	trimmed := "[" + joinRaw(items[:len(items)-1]) + "]"
	return gjson.Parse(trimmed), loc
}

func joinRaw(items []gjson.Result) string {
	out := ""
	for i, it := range items {
		if i > 0 {
			out += ","
		}
		out += it.Raw
	}
	return out
}

// compileForm implements spec.md §4.2.1's JSON-shape table: atoms compile
// directly, a bare string is a symbol reference (not a string value — see
// the "str" tag), a tagged array dispatches to compileTagged, any other
// array is a Call, and an object is an ObjectLit with every entry compiled
// recursively.
func (c *compileCtx) compileForm(r gjson.Result, s *scope, raw bool) (value.Value, error) {
	switch r.Type {
	case gjson.Null:
		return &value.Literal{Payload: value.Null()}, nil
	case gjson.True:
		return &value.Literal{Payload: value.Bool(true)}, nil
	case gjson.False:
		return &value.Literal{Payload: value.Bool(false)}, nil
	case gjson.Number:
		return &value.Literal{Payload: value.Num(r.Float())}, nil
	case gjson.String:
		return c.compileSymbol(r.String(), s, raw)
	}
	if r.IsArray() {
		return c.compileArray(r, s)
	}
	if r.IsObject() {
		return c.compileObjectLit(r, s)
	}
	return nil, arkerrors.NewCompilerError("unsupported JSON value %s", r.Raw)
}

// compileSymbol resolves a bare JSON string per spec.md §4.2.2. The
// default (non-raw) path auto-dereferences the resolved address with a
// Get, since an intrinsic or expression context expects the bound value,
// not its address; raw is used by "ref"/"get"'s single argument, which
// want the address itself. An intrinsic resolution (step 5) is already a
// terminal Literal and is returned unwrapped either way.
func (c *compileCtx) compileSymbol(name string, s *scope, raw bool) (value.Value, error) {
	addr, intrinsic, ok := s.resolve(name)
	if !ok {
		return nil, arkerrors.NewCompilerError(arkerrors.MsgUnresolvedSymbol, name)
	}
	if !intrinsic {
		addr.Debug().Name = name
	}
	if intrinsic || raw {
		return addr, nil
	}
	return &value.Get{Exp: addr}, nil
}

func (c *compileCtx) compileArray(r gjson.Result, s *scope) (value.Value, error) {
	items := r.Array()
	if len(items) > 0 && items[0].Type == gjson.String && tagForms[items[0].String()] {
		return c.compileTagged(items[0].String(), items[1:], s)
	}
	if len(items) == 0 {
		return nil, arkerrors.NewCompilerError("call form requires at least a function expression")
	}
	return c.compileCallExpr(items[0], items[1:], s)
}

func (c *compileCtx) compileObjectLit(r gjson.Result, s *scope) (value.Value, error) {
	var entries []value.ObjectEntry
	var ferr error
	r.ForEach(func(key, val gjson.Result) bool {
		v, err := c.compileExpr(val, s, false)
		if err != nil {
			ferr = err
			return false
		}
		entries = append(entries, value.ObjectEntry{Name: key.String(), Exp: v})
		return true
	})
	if ferr != nil {
		return nil, ferr
	}
	return &value.ObjectLit{Entries: entries}, nil
}

// paramNames strips the mandatory "params" sentinel spec.md §4.2.1
// requires as the first element of both "let" and "fn" name lists.
func paramNames(arr gjson.Result, kind string) ([]string, error) {
	items := arr.Array()
	if len(items) == 0 || items[0].Type != gjson.String || items[0].String() != "params" {
		return nil, arkerrors.NewCompilerError("%s names must begin with the \"params\" sentinel", kind)
	}
	names := make([]string, len(items)-1)
	for i, n := range items[1:] {
		if n.Type != gjson.String {
			return nil, arkerrors.NewCompilerError(arkerrors.MsgBadParamList)
		}
		names[i] = n.String()
	}
	return names, nil
}

func (c *compileCtx) compileTagged(tag string, args []gjson.Result, s *scope) (value.Value, error) {
	switch tag {
	case "str":
		if len(args) != 1 || args[0].Type != gjson.String {
			return nil, arkerrors.NewCompilerError("str expects a single raw string argument")
		}
		return &value.Literal{Payload: value.Str(args[0].String())}, nil

	case "list":
		exps := make([]value.Value, len(args))
		for i, a := range args {
			e, err := c.compileExpr(a, s, false)
			if err != nil {
				return nil, err
			}
			exps[i] = e
		}
		return &value.ListLit{Exps: exps}, nil

	case "map":
		pairs := make([]value.MapPair, len(args))
		for i, a := range args {
			entry := a.Array()
			if len(entry) != 2 {
				return nil, arkerrors.NewCompilerError("map entry %d must be a [key,value] pair", i)
			}
			k, err := c.compileExpr(entry[0], s, false)
			if err != nil {
				return nil, err
			}
			v, err := c.compileExpr(entry[1], s, false)
			if err != nil {
				return nil, err
			}
			pairs[i] = value.MapPair{Key: k, Val: v}
		}
		return &value.MapLit{Pairs: pairs}, nil

	case "ref":
		if len(args) != 1 {
			return nil, arkerrors.NewCompilerError("ref expects exactly 1 argument, got %d", len(args))
		}
		target, err := c.compileExpr(args[0], s, true)
		if err != nil {
			return nil, err
		}
		return &value.Literal{Payload: target}, nil

	case "get":
		if len(args) != 1 {
			return nil, arkerrors.NewCompilerError("get expects exactly 1 argument, got %d", len(args))
		}
		target, err := c.compileExpr(args[0], s, true)
		if err != nil {
			return nil, err
		}
		return &value.Get{Exp: target}, nil

	case "set":
		if len(args) != 2 {
			return nil, arkerrors.NewCompilerError("set expects exactly 2 arguments, got %d", len(args))
		}
		ref, err := c.compileExpr(args[0], s, false)
		if err != nil {
			return nil, err
		}
		val, err := c.compileExpr(args[1], s, false)
		if err != nil {
			return nil, err
		}
		return &value.Set{RefExp: ref, ValExp: val}, nil

	case "prop":
		if len(args) != 2 || args[0].Type != gjson.String {
			return nil, arkerrors.NewCompilerError("prop expects [\"name\", objExpr]")
		}
		obj, err := c.compileExpr(args[1], s, false)
		if err != nil {
			return nil, err
		}
		return &value.Property{Name: args[0].String(), ObjExp: obj}, nil

	case "fn":
		if len(args) != 2 {
			return nil, arkerrors.NewCompilerError("fn expects [params, body], got %d args", len(args))
		}
		params, err := paramNames(args[0], "fn")
		if err != nil {
			return nil, err
		}
		fnScope := newFnScope(s)
		for _, p := range params {
			fnScope.declare(p)
		}
		body, err := c.compileExpr(args[1], fnScope, false)
		if err != nil {
			return nil, err
		}
		fnScope.forget(params)
		captures := make([]value.Value, len(fnScope.captureAddrs))
		copy(captures, fnScope.captureAddrs)
		return &value.Fn{Params: params, CapturedAddresses: captures, Body: body}, nil

	case "let":
		if len(args) != 2 {
			return nil, arkerrors.NewCompilerError("let expects [names, body], got %d args", len(args))
		}
		names, err := paramNames(args[0], "let")
		if err != nil {
			return nil, err
		}
		letScope := newLetScope(s)
		for _, n := range names {
			letScope.declare(n)
		}
		body, err := c.compileExpr(args[1], letScope, false)
		if err != nil {
			return nil, err
		}
		letScope.forget(names)
		return &value.Let{Names: names, Body: body}, nil

	case "seq":
		exps := make([]value.Value, len(args))
		for i, a := range args {
			e, err := c.compileExpr(a, s, false)
			if err != nil {
				return nil, err
			}
			exps[i] = e
		}
		if len(exps) == 1 {
			return exps[0], nil
		}
		return &value.Sequence{Exps: exps}, nil

	case "if":
		if len(args) != 2 && len(args) != 3 {
			return nil, arkerrors.NewCompilerError("if expects [cond,then] or [cond,then,else], got %d args", len(args))
		}
		cond, err := c.compileExpr(args[0], s, false)
		if err != nil {
			return nil, err
		}
		then, err := c.compileExpr(args[1], s, false)
		if err != nil {
			return nil, err
		}
		var els value.Value
		if len(args) == 3 {
			els, err = c.compileExpr(args[2], s, false)
			if err != nil {
				return nil, err
			}
		}
		return &value.If{Cond: cond, Then: then, Else: els}, nil

	case "and", "or":
		if len(args) != 2 {
			return nil, arkerrors.NewCompilerError("%s expects exactly 2 arguments, got %d", tag, len(args))
		}
		l, err := c.compileExpr(args[0], s, false)
		if err != nil {
			return nil, err
		}
		r, err := c.compileExpr(args[1], s, false)
		if err != nil {
			return nil, err
		}
		if tag == "and" {
			return &value.And{L: l, R: r}, nil
		}
		return &value.Or{L: l, R: r}, nil

	case "loop":
		if len(args) != 1 {
			return nil, arkerrors.NewCompilerError("loop expects exactly 1 argument, got %d", len(args))
		}
		body, err := c.compileExpr(args[0], s, false)
		if err != nil {
			return nil, err
		}
		return &value.Loop{Body: body}, nil

	case "break":
		if len(args) == 0 {
			return &value.BreakExpr{}, nil
		}
		if len(args) != 1 {
			return nil, arkerrors.NewCompilerError("break expects at most 1 argument, got %d", len(args))
		}
		payload, err := c.compileExpr(args[0], s, false)
		if err != nil {
			return nil, err
		}
		return &value.BreakExpr{Payload: payload}, nil

	case "continue":
		return &value.ContinueExpr{}, nil

	case "return":
		if len(args) == 0 {
			return &value.ReturnExpr{}, nil
		}
		if len(args) != 1 {
			return nil, arkerrors.NewCompilerError("return expects at most 1 argument, got %d", len(args))
		}
		payload, err := c.compileExpr(args[0], s, false)
		if err != nil {
			return nil, err
		}
		return &value.ReturnExpr{Payload: payload}, nil
	}
	return nil, arkerrors.NewCompilerError(arkerrors.MsgUnknownTag, tag)
}

// compileCallExpr implements spec.md §4.2.1's "anything else" rule: an
// array whose first element is not a recognized tag is Call(fn', args').
func (c *compileCtx) compileCallExpr(fnForm gjson.Result, argForms []gjson.Result, s *scope) (value.Value, error) {
	fnExp, err := c.compileExpr(fnForm, s, false)
	if err != nil {
		return nil, err
	}
	argExps := make([]value.Value, len(argForms))
	for i, a := range argForms {
		e, err := c.compileExpr(a, s, false)
		if err != nil {
			return nil, err
		}
		argExps[i] = e
	}
	return &value.Call{FnExp: fnExp, ArgExps: argExps}, nil
}
