// Package eval walks the expression tree internal/ark/compiler produces
// (spec.md §6). Non-local exits (break/continue/return) are threaded as an
// explicit ControlFlow result rather than implemented via panic/recover,
// per spec.md §9's guidance for systems targets; this is modeled on the
// teacher's ExecutionContext.controlFlow field, generalized from a
// statement-interpreter's single in-flight signal to a tree-walker's
// value returned alongside every evaluation.
package eval

import (
	"github.com/ursalang/ark/internal/ark/arkerrors"
	"github.com/ursalang/ark/internal/ark/value"
)

// DefaultMaxDepth bounds the Go call stack depth the evaluator is willing
// to recurse through on behalf of Ark function calls (spec.md §6:
// recursion has no tail-call elimination, so depth is finite by design).
const DefaultMaxDepth = 4096

// Evaluator walks one program's expression tree against one runtime
// Stack. It is not safe for concurrent use from multiple goroutines —
// Ark has no concurrency primitives (spec.md Non-goals).
type Evaluator struct {
	Stack    *value.Stack
	MaxDepth int
	depth    int
}

// New returns an Evaluator whose bottom frame is seeded with globals, in
// binding order (index i is resolved by a compiler StackRef{Level: <root
// depth>, Index: i}; see internal/ark/compiler's root scope).
func New(globals []*value.ValueRef) *Evaluator {
	stack := value.NewStack()
	root := stack.Top()
	root.Locals = globals
	root.CallBoundary = true
	return &Evaluator{Stack: stack, MaxDepth: DefaultMaxDepth}
}

// Run evaluates expr to completion. A Break/Continue that escapes every
// enclosing Loop, or a Return that escapes every enclosing Call, is a
// runtime error (spec.md §6: these signals are only meaningful inside
// their catching construct).
func (e *Evaluator) Run(expr value.Value) (value.Value, error) {
	v, cf, err := e.Eval(expr)
	if err != nil {
		return nil, err
	}
	if !cf.isNone() {
		return nil, escapedFlowError(cf)
	}
	return v, nil
}

func escapedFlowError(cf ControlFlow) error {
	switch cf.Kind {
	case FlowBreak:
		return arkerrors.NewRuntimeError(arkerrors.KindEscapedControlFlow, arkerrors.MsgEscapedBreak)
	case FlowContinue:
		return arkerrors.NewRuntimeError(arkerrors.KindEscapedControlFlow, arkerrors.MsgEscapedContinue)
	case FlowReturn:
		return arkerrors.NewRuntimeError(arkerrors.KindEscapedControlFlow, arkerrors.MsgEscapedReturn)
	}
	return nil
}

// Eval evaluates one expression node, returning either its value, an
// in-flight ControlFlow signal (value is nil when cf.Kind != FlowNone), or
// an error. Plain (non-expression) values are the identity case: a Ref, a
// closure, a primitive, or anything else already fully reduced evaluates
// to itself — spec.md §9's expression/value conflation.
func (e *Evaluator) Eval(expr value.Value) (result value.Value, flow ControlFlow, err error) {
	defer func() {
		if re, ok := err.(*arkerrors.RuntimeError); ok && re.Loc == nil && expr != nil {
			re.Loc = expr.Debug().SourceLoc
		}
	}()
	switch node := expr.(type) {
	case *value.Literal:
		return node.Payload, none, nil

	case *value.ListLit:
		elems := make([]value.Value, len(node.Exps))
		for i, x := range node.Exps {
			v, cf, err := e.Eval(x)
			if err != nil || !cf.isNone() {
				return nil, cf, err
			}
			elems[i] = v
		}
		return value.NewList(elems), none, nil

	case *value.MapLit:
		m := value.NewMap()
		for _, p := range node.Pairs {
			k, cf, err := e.Eval(p.Key)
			if err != nil || !cf.isNone() {
				return nil, cf, err
			}
			v, cf, err := e.Eval(p.Val)
			if err != nil || !cf.isNone() {
				return nil, cf, err
			}
			m.Set(k, v)
		}
		return m, none, nil

	case *value.ObjectLit:
		obj := value.NewObject()
		for _, ent := range node.Entries {
			v, cf, err := e.Eval(ent.Exp)
			if err != nil || !cf.isNone() {
				return nil, cf, err
			}
			obj.Set(ent.Name, v)
		}
		return obj, none, nil

	case *value.Get:
		addr, cf, err := e.Eval(node.Exp)
		if err != nil || !cf.isNone() {
			return nil, cf, err
		}
		ref, ok := addr.(value.Ref)
		if !ok {
			return nil, none, arkerrors.NewRuntimeError(arkerrors.KindInvalidAssignment, arkerrors.MsgNotARef, addr.Kind())
		}
		var v value.Value
		if pr, isProp := ref.(*value.PropertyRef); isProp {
			if obj, isNative := pr.Object.(*value.NativeObjectValue); isNative {
				nv, herr := obj.Get(pr.Name)
				if herr != nil {
					return nil, none, arkerrors.AsHostConversionError(herr)
				}
				v = nv
			}
		}
		if v == nil {
			v = ref.Get(e.Stack)
		}
		if _, isUndef := v.(*value.UndefinedValue); isUndef {
			return nil, none, arkerrors.NewRuntimeError(arkerrors.KindUninitializedSymbol, arkerrors.MsgUninitialized, refName(node.Exp))
		}
		return v, none, nil

	case *value.Set:
		addr, cf, err := e.Eval(node.RefExp)
		if err != nil || !cf.isNone() {
			return nil, cf, err
		}
		ref, ok := addr.(value.Ref)
		if !ok {
			return nil, none, arkerrors.NewRuntimeError(arkerrors.KindInvalidAssignment, arkerrors.MsgNotARef, addr.Kind())
		}
		v, cf, err := e.Eval(node.ValExp)
		if err != nil || !cf.isNone() {
			return nil, cf, err
		}
		return ref.Set(e.Stack, v), none, nil

	case *value.Property:
		obj, cf, err := e.Eval(node.ObjExp)
		if err != nil || !cf.isNone() {
			return nil, cf, err
		}
		return &value.PropertyRef{Object: obj, Name: node.Name}, none, nil

	case *value.Fn:
		captures := make([]value.Ref, len(node.CapturedAddresses))
		for i, addr := range node.CapturedAddresses {
			captures[i] = value.ResolveCell(addr, e.Stack)
		}
		return &value.ClosureValue{Params: node.Params, Captures: captures, Body: node.Body}, none, nil

	case *value.Call:
		return e.evalCall(node)

	case *value.Let:
		frame := &value.Frame{Locals: make([]*value.ValueRef, len(node.Names))}
		for i := range frame.Locals {
			frame.Locals[i] = value.NewValueRef(value.Undefined())
		}
		e.Stack.Push(frame)
		v, cf, err := e.Eval(node.Body)
		e.Stack.Pop()
		return v, cf, err

	case *value.Sequence:
		var result value.Value = value.Null()
		for _, x := range node.Exps {
			v, cf, err := e.Eval(x)
			if err != nil || !cf.isNone() {
				return nil, cf, err
			}
			result = v
		}
		return result, none, nil

	case *value.If:
		cond, cf, err := e.Eval(node.Cond)
		if err != nil || !cf.isNone() {
			return nil, cf, err
		}
		if truthy(cond) {
			return e.Eval(node.Then)
		}
		if node.Else != nil {
			return e.Eval(node.Else)
		}
		return value.Null(), none, nil

	case *value.And:
		l, cf, err := e.Eval(node.L)
		if err != nil || !cf.isNone() {
			return nil, cf, err
		}
		if !truthy(l) {
			return l, none, nil
		}
		return e.Eval(node.R)

	case *value.Or:
		l, cf, err := e.Eval(node.L)
		if err != nil || !cf.isNone() {
			return nil, cf, err
		}
		if truthy(l) {
			return l, none, nil
		}
		return e.Eval(node.R)

	case *value.Loop:
		for {
			_, cf, err := e.Eval(node.Body)
			if err != nil {
				return nil, none, err
			}
			switch cf.Kind {
			case FlowBreak:
				return cf.Payload, none, nil
			case FlowContinue:
				continue
			case FlowReturn:
				return nil, cf, nil
			default:
				continue
			}
		}

	case *value.BreakExpr:
		payload := value.Value(value.Null())
		if node.Payload != nil {
			v, cf, err := e.Eval(node.Payload)
			if err != nil || !cf.isNone() {
				return nil, cf, err
			}
			payload = v
		}
		return nil, ControlFlow{Kind: FlowBreak, Payload: payload}, nil

	case *value.ContinueExpr:
		return nil, ControlFlow{Kind: FlowContinue}, nil

	case *value.ReturnExpr:
		payload := value.Value(value.Null())
		if node.Payload != nil {
			v, cf, err := e.Eval(node.Payload)
			if err != nil || !cf.isNone() {
				return nil, cf, err
			}
			payload = v
		}
		return nil, ControlFlow{Kind: FlowReturn, Payload: payload}, nil

	default:
		return expr, none, nil
	}
}

// Call implements value.Caller, letting native functions invoke Ark
// callables (e.g. a List iteration method taking a closure argument).
func (e *Evaluator) Call(fn value.Value, args []value.Value) (value.Value, error) {
	v, cf, err := e.apply(fn, args)
	if err != nil {
		return nil, err
	}
	if !cf.isNone() {
		return nil, escapedFlowError(cf)
	}
	return v, nil
}

func (e *Evaluator) evalCall(node *value.Call) (value.Value, ControlFlow, error) {
	fn, cf, err := e.Eval(node.FnExp)
	if err != nil || !cf.isNone() {
		return nil, cf, err
	}
	args := make([]value.Value, len(node.ArgExps))
	for i, a := range node.ArgExps {
		v, cf, err := e.Eval(a)
		if err != nil || !cf.isNone() {
			return nil, cf, err
		}
		args[i] = v
	}
	return e.apply(fn, args)
}

func (e *Evaluator) apply(fn value.Value, args []value.Value) (value.Value, ControlFlow, error) {
	switch callee := fn.(type) {
	case *value.NativeFnValue:
		v, err := callee.Call(e, args)
		if err != nil {
			return nil, none, err
		}
		return v, none, nil

	case *value.ClosureValue:
		return e.applyClosure(callee, args)

	default:
		return nil, none, arkerrors.NewRuntimeError(arkerrors.KindInvalidCall, arkerrors.MsgNotAFunction, fn.Kind())
	}
}

func (e *Evaluator) applyClosure(c *value.ClosureValue, args []value.Value) (value.Value, ControlFlow, error) {
	if e.depth >= e.MaxDepth {
		return nil, none, arkerrors.NewRuntimeError(arkerrors.KindStackOverflow, arkerrors.MsgStackOverflow, e.MaxDepth)
	}
	frame := &value.Frame{
		Locals:       make([]*value.ValueRef, len(c.Params)),
		Captures:     c.Captures,
		CallBoundary: true,
	}
	for i := range frame.Locals {
		var initial value.Value = value.Undefined()
		if i < len(args) {
			initial = args[i]
		}
		frame.Locals[i] = value.NewValueRef(initial)
	}
	e.depth++
	e.Stack.Push(frame)
	v, cf, err := e.Eval(c.Body)
	e.Stack.Pop()
	e.depth--
	if err != nil {
		return nil, none, err
	}
	if cf.Kind == FlowReturn {
		return cf.Payload, none, nil
	}
	if cf.Kind == FlowBreak || cf.Kind == FlowContinue {
		return nil, cf, nil
	}
	return v, none, nil
}

// truthy implements Ark's boolean-coercion rule (spec.md §3.2): Null,
// Undefined, false, and the number 0 are falsy; everything else (including
// the empty string and empty List/Map/Object) is truthy.
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

// refName recovers a human-readable symbol name for an UninitializedSymbol
// diagnostic, when the dereferenced address carries one in its debug bag
// (internal/ark/compiler sets this when resolving a bare symbol).
func refName(addr value.Value) string {
	if name := addr.Debug().Name; name != "" {
		return name
	}
	return "?"
}
