// Package ark is Ark's public facade: Compile a JSON program, then Run it
// against a fresh State. Grounded on the teacher's top-level package API
// shape (a Compile/Run pair hiding the compiler and evaluator internals
// from callers), generalized from DWScript's bytecode VM entry point to
// Ark's tree-walker.
package ark

import (
	"strings"

	"github.com/ursalang/ark/internal/ark/arkerrors"
	"github.com/ursalang/ark/internal/ark/builtins"
	"github.com/ursalang/ark/internal/ark/compiler"
	"github.com/ursalang/ark/internal/ark/eval"
	"github.com/ursalang/ark/internal/ark/value"
)

// Program is a compiled, not-yet-running expression graph.
type Program struct {
	compiled   *compiler.Compiled
	globalVals map[string]value.Value
	globalOrd  []string
}

// Compile decodes and resolves raw (spec.md §4.2) against an external
// symbols namespace: Ark's standard globals (internal/ark/builtins.Globals)
// by default, or the caller-supplied env if given. A name declared in env
// with a nil value is treated as forward-declared but not yet bound; if
// the compiled program actually depends on such a name, Compile fails with
// a RuntimeError of kind UndefinedSymbols (spec.md §6.2's "caller MUST
// verify freeVars is empty before run" contract) rather than letting
// NewState construct a cell around a nil value.
func Compile(raw []byte, env ...map[string]value.Value) (*Program, error) {
	globals := builtins.Globals()
	if len(env) > 0 {
		globals = env[0]
	}
	order := builtins.Names(globals)
	compiled, err := compiler.Compile(raw, order, builtins.Intrinsics())
	if err != nil {
		return nil, err
	}
	if err := checkFreeVars(compiled.FreeVars, globals); err != nil {
		return nil, err
	}
	return &Program{compiled: compiled, globalVals: globals, globalOrd: order}, nil
}

// checkFreeVars implements the run-time half of spec.md §6.2's free-variable
// contract: any name the program actually resolved against the globals
// namespace but which maps to a nil value (forward-declared, never bound)
// is reported as UndefinedSymbols instead of silently becoming Undefined
// at run time.
func checkFreeVars(freeVars []string, globals map[string]value.Value) error {
	var missing []string
	for _, name := range freeVars {
		if globals[name] == nil {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return arkerrors.NewRuntimeError(arkerrors.KindUndefinedSymbols, arkerrors.MsgUndefinedSymbols, strings.Join(missing, ", "))
}

// State is one independent run of a Program: its own Stack, hence its own
// set of global cells (spec.md §9: "in-state" identity for interning is
// what's guaranteed, not cross-state).
type State struct {
	ev *eval.Evaluator
}

// NewState seeds a fresh evaluation context for p.
func (p *Program) NewState() *State {
	cells := make([]*value.ValueRef, len(p.globalOrd))
	for i, name := range p.globalOrd {
		v := p.globalVals[name]
		if v == nil {
			v = value.Undefined()
		}
		cells[i] = value.NewValueRef(v)
	}
	return &State{ev: eval.New(cells)}
}

// SetMaxDepth overrides the evaluator's call-stack depth guard (default
// eval.DefaultMaxDepth), e.g. from cmd/ark's .arkrc.yaml config.
func (s *State) SetMaxDepth(n int) {
	s.ev.MaxDepth = n
}

// Run evaluates p's expression tree to completion in s, per spec.md §6: a
// Break/Continue/Return that escapes every enclosing Loop/Call is a
// runtime error, not a panic.
func (s *State) Run(p *Program) (value.Value, error) {
	return s.ev.Run(p.compiled.Expression)
}

// Run compiles and immediately runs raw in a fresh State — the
// common case for a one-shot script (spec.md §8.2's worked examples).
func Run(raw []byte) (value.Value, error) {
	p, err := Compile(raw)
	if err != nil {
		return nil, err
	}
	return p.NewState().Run(p)
}
