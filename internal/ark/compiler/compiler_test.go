package compiler

import (
	"testing"

	"github.com/ursalang/ark/internal/ark/builtins"
)

func compileWithGlobals(t *testing.T, raw string) *Compiled {
	t.Helper()
	globals := builtins.Globals()
	names := builtins.Names(globals)
	compiled, err := Compile([]byte(raw), names, builtins.Intrinsics())
	if err != nil {
		t.Fatalf("Compile(%s): %v", raw, err)
	}
	return compiled
}

// TestParamsSentinelRequired asserts spec.md §4.2.1's mandatory ["params",
// n...] wrapper around a let/fn name list is actually enforced, rather
// than silently accepting a bare name array.
func TestParamsSentinelRequired(t *testing.T) {
	globals := builtins.Globals()
	names := builtins.Names(globals)
	_, err := Compile([]byte(`["let",["x"],1]`), names, builtins.Intrinsics())
	if err == nil {
		t.Fatal("expected an error for a let names array missing the \"params\" sentinel")
	}
}

// TestParamsSentinelStripped asserts the sentinel itself is not bound as a
// local: ["let",["params","a"],...] introduces exactly one name, "a".
func TestParamsSentinelStripped(t *testing.T) {
	compiled := compileWithGlobals(t, `["let",["params","a"],["seq",["set",["ref","a"],41],"a"]]`)
	if len(compiled.FreeVars) != 0 {
		t.Errorf("FreeVars = %v, want none (fully let-bound)", compiled.FreeVars)
	}
}

// TestBareStringIsSymbolReference asserts a bare JSON string resolves as a
// symbol, and the explicit "str" tag is the only way to get a literal
// string value (spec.md §4.2.1).
func TestBareStringIsSymbolReference(t *testing.T) {
	globals := builtins.Globals()
	names := builtins.Names(globals)
	if _, err := Compile([]byte(`"pi"`), names, builtins.Intrinsics()); err != nil {
		t.Errorf("bare global name should resolve: %v", err)
	}
	if _, err := Compile([]byte(`"undeclaredName"`), names, builtins.Intrinsics()); err == nil {
		t.Error("expected an undefined-symbol error for an unresolvable bare string")
	}
	if _, err := Compile([]byte(`["str","hello"]`), names, builtins.Intrinsics()); err != nil {
		t.Errorf("str tag should compile a raw string literal: %v", err)
	}
}

// TestAnythingElseIsCall asserts an array whose first element is itself a
// nested form (here, an immediately-invoked function expression) compiles
// to a Call rather than being treated as inert literal data.
func TestAnythingElseIsCall(t *testing.T) {
	compiled := compileWithGlobals(t, `[["fn",["params","x"],["+","x",1]],41]`)
	if compiled.Expression.Kind() != "expr:call" {
		t.Fatalf("Kind() = %q, want expr:call", compiled.Expression.Kind())
	}
}

// TestObjectLiteralCompilesEntries asserts a bare JSON object's entries are
// compiled as expressions (so they can reference symbols), not decoded as
// inert data.
func TestObjectLiteralCompilesEntries(t *testing.T) {
	compiled := compileWithGlobals(t, `{"answer":["+",40,2]}`)
	if compiled.Expression.Kind() != "expr:object" {
		t.Fatalf("Kind() = %q, want expr:object", compiled.Expression.Kind())
	}
}

// TestFreeVarsReportsExternalDependencies asserts the compiled program's
// FreeVars lists exactly the global names the expression actually
// references, once every let/fn-bound name has been stripped back out
// (spec.md §4.2.2).
func TestFreeVarsReportsExternalDependencies(t *testing.T) {
	compiled := compileWithGlobals(t, `["let",["params","x"],["seq",["set",["ref","x"],1],["print","x"]]]`)
	if len(compiled.FreeVars) != 1 || compiled.FreeVars[0] != "print" {
		t.Fatalf("FreeVars = %v, want [print]", compiled.FreeVars)
	}
}

// TestRefAndSetRoundTrip compiles a variant of spec.md §8.2 scenario 2: a
// let-bound local is set through an explicit "ref" wrapper (since a bare
// name would auto-dereference and fail Set's must-be-a-Ref check), then
// read back. It asserts only that the program compiles; pkg/ark's
// let-set-get case runs the same shape.
func TestRefAndSetRoundTrip(t *testing.T) {
	compiled := compileWithGlobals(t,
		`["let",["params","a"],["seq",["set",["ref","a"],3],"a"]]`)
	if compiled.Expression == nil {
		t.Fatal("expected a compiled expression")
	}
}

// TestIntrinsicBypassesFrameResolution asserts an intrinsic name resolves
// to a terminal Literal, not a Get-wrapped Ref, since intrinsics cannot be
// dereferenced at evaluation time the way a global cell can (spec.md
// §4.2.2 step 5).
func TestIntrinsicBypassesFrameResolution(t *testing.T) {
	globals := builtins.Globals()
	names := builtins.Names(globals)
	root := newRootScope(builtins.Intrinsics())
	for _, g := range names {
		root.declare(g)
	}
	addr, intrinsic, ok := root.resolve("+")
	if !ok || !intrinsic {
		t.Fatalf("resolve(+) = (%v, %v, %v), want a found intrinsic", addr, intrinsic, ok)
	}
	if addr.Kind() != "expr:literal" {
		t.Errorf("intrinsic resolution Kind() = %q, want expr:literal", addr.Kind())
	}
}
