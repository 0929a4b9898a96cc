package compiler

import "github.com/ursalang/ark/internal/ark/value"

// scope is the compiler's lexical symbol table: one instance per runtime
// frame that will be pushed (program root, each `let`, each `fn` body).
// Resolution walks outward from the innermost scope, counting StackRef
// levels across `let` scopes and, on crossing a call boundary (a `fn`'s
// own scope), switching to a capture chain instead — mirroring the
// runtime Stack/Frame split in internal/ark/value (CallBoundary frames own
// a Captures array; plain `let` frames don't).
type scope struct {
	parent       *scope
	callBoundary bool
	names        []string

	// populated only on callBoundary scopes as captures are discovered.
	captureNames []string
	captureAddrs []value.Value

	// shared by every scope in one compile pass (spec.md §4.2.2).
	shared *sharedState
}

// sharedState is threaded through every scope produced while compiling one
// top-level form: the intrinsics table consulted by resolve's step-5
// shortcut, and the free-variable bookkeeping a Let/Fn trims its own bound
// names from once its body is compiled (spec.md §4.2.2).
type sharedState struct {
	intrinsics map[string]*value.NativeFnValue
	freeVars   map[string][]*value.StackRef
}

func newRootScope(intrinsics map[string]*value.NativeFnValue) *scope {
	return &scope{
		callBoundary: true,
		shared: &sharedState{
			intrinsics: intrinsics,
			freeVars:   map[string][]*value.StackRef{},
		},
	}
}

func newLetScope(parent *scope) *scope {
	return &scope{parent: parent, shared: parent.shared}
}

func newFnScope(parent *scope) *scope {
	return &scope{parent: parent, callBoundary: true, shared: parent.shared}
}

// declare adds name as the next local slot in s, returning its index.
func (s *scope) declare(name string) int {
	s.names = append(s.names, name)
	return len(s.names) - 1
}

// forget drops names from the shared free-variable map: called once a
// Let/Fn has finished compiling its body, since any reference to one of
// its own parameters that surfaced as a StackRef is no longer free
// relative to the form that bound it (spec.md §4.2.2).
func (s *scope) forget(names []string) {
	for _, n := range names {
		delete(s.shared.freeVars, n)
	}
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}

// resolve implements spec.md §4.2.2's symbol-resolution algorithm. It
// returns (addr, intrinsic, ok): ok is false if name is declared nowhere
// and is not an intrinsic; intrinsic is true if addr is an
// already-terminal *value.Literal (step 5 — bypasses frame/capture
// resolution entirely, so it can never be shadowed by a local of the same
// name); otherwise addr is a *value.StackRef or *value.CaptureRef.
func (s *scope) resolve(name string) (addr value.Value, intrinsic bool, ok bool) {
	if fn, found := s.shared.intrinsics[name]; found {
		return &value.Literal{Payload: fn}, true, true
	}
	addr, ok = s.resolveRef(name)
	return addr, false, ok
}

// resolveRef is the frame/capture half of resolve: steps 1 and 4 of
// spec.md §4.2.2, recording every StackRef it produces into the shared
// free-variable map.
func (s *scope) resolveRef(name string) (value.Value, bool) {
	level := 0
	for cur := s; cur != nil; {
		if idx := indexOf(cur.names, name); idx >= 0 {
			ref := &value.StackRef{Level: level, Index: idx}
			s.shared.freeVars[name] = append(s.shared.freeVars[name], ref)
			return ref, true
		}
		if cur.callBoundary {
			slot, ok := cur.captureSlot(name)
			if !ok {
				return nil, false
			}
			return &value.CaptureRef{Index: slot}, true
		}
		level++
		cur = cur.parent
	}
	return nil, false
}

// captureSlot returns the index of an existing or newly-created capture
// slot on the call-boundary scope s for name, resolving name's address in
// s.parent (possibly itself adding further captures, for nested closures).
func (s *scope) captureSlot(name string) (int, bool) {
	if idx := indexOf(s.captureNames, name); idx >= 0 {
		return idx, true
	}
	if s.parent == nil {
		return 0, false
	}
	addr, ok := s.parent.resolveRef(name)
	if !ok {
		return 0, false
	}
	s.captureNames = append(s.captureNames, name)
	s.captureAddrs = append(s.captureAddrs, addr)
	return len(s.captureNames) - 1, true
}
