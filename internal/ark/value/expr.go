package value

// Expression nodes are produced by the compiler (internal/ark/compiler) and
// walked by the evaluator (internal/ark/eval). Per spec.md §9's
// expression/value conflation note, every node implements Value: evaluating
// a plain value is the identity, and a free function doing a type switch —
// not a method on each node — performs the actual evaluation, which keeps
// this package independent of the evaluator.

// Literal is a constant expression.
type Literal struct {
	baseValue
	Payload Value
}

func (*Literal) Kind() string   { return "expr:literal" }
func (l *Literal) String() string { return "literal(" + l.Payload.String() + ")" }

// ListLit evaluates each child expression and wraps the results in a List.
type ListLit struct {
	baseValue
	Exps []Value
}

func (*ListLit) Kind() string   { return "expr:list" }
func (*ListLit) String() string { return "list(...)" }

// MapPair is one key/value expression pair of a MapLit.
type MapPair struct {
	Key Value
	Val Value
}

// MapLit evaluates each pair's key and value expressions and wraps the
// results in a Map.
type MapLit struct {
	baseValue
	Pairs []MapPair
}

func (*MapLit) Kind() string   { return "expr:map" }
func (*MapLit) String() string { return "map(...)" }

// ObjectEntry is one name/expression pair of an ObjectLit.
type ObjectEntry struct {
	Name string
	Exp  Value
}

// ObjectLit evaluates each entry expression and wraps the results in an
// Object, preserving entry order.
type ObjectLit struct {
	baseValue
	Entries []ObjectEntry
}

func (*ObjectLit) Kind() string   { return "expr:object" }
func (*ObjectLit) String() string { return "object(...)" }

// Get evaluates Exp to a Ref and dereferences it (spec.md §4.3): fails with
// UninitializedSymbol if the cell holds Undefined.
type Get struct {
	baseValue
	Exp Value
}

func (*Get) Kind() string   { return "expr:get" }
func (*Get) String() string { return "get(...)" }

// Set evaluates RefExp and ValExp, writes through the resulting Ref. Fails
// with InvalidAssignment if RefExp is not a Ref.
type Set struct {
	baseValue
	RefExp Value
	ValExp Value
}

func (*Set) Kind() string   { return "expr:set" }
func (*Set) String() string { return "set(...)" }

// Property evaluates ObjExp and produces a PropertyRef(obj, Name). Name is
// a compile-time string, not itself evaluated.
type Property struct {
	baseValue
	Name   string
	ObjExp Value
}

func (p *Property) Kind() string   { return "expr:property" }
func (p *Property) String() string { return "property(" + p.Name + ")" }

// Fn produces a Closure at evaluation time: CapturedAddresses are the
// compiler's snapshot of free-variable addresses, resolved one frame up
// into concrete Refs when the Fn node is evaluated (spec.md §4.3).
type Fn struct {
	baseValue
	Params            []string
	CapturedAddresses []Value // each a *StackRef, *CaptureRef, or *ValueRef
	Body              Value
}

func (*Fn) Kind() string   { return "expr:fn" }
func (*Fn) String() string { return "fn(...)" }

// Call evaluates FnExp then each ArgExps in left-to-right order, then
// applies (spec.md §4.3, §5).
type Call struct {
	baseValue
	FnExp   Value
	ArgExps []Value
}

func (*Call) Kind() string   { return "expr:call" }
func (*Call) String() string { return "call(...)" }

// Let pushes len(Names) fresh ValueRef(Undefined) cells, evaluates Body,
// pops them.
type Let struct {
	baseValue
	Names []string
	Body  Value
}

func (*Let) Kind() string   { return "expr:let" }
func (*Let) String() string { return "let(...)" }

// Sequence evaluates Exps in order, yielding the last (or Null if empty).
type Sequence struct {
	baseValue
	Exps []Value
}

func (*Sequence) Kind() string   { return "expr:seq" }
func (*Sequence) String() string { return "seq(...)" }

// If evaluates Cond; Else may be nil (spec.md §4.2.1: arity 3 or 4).
type If struct {
	baseValue
	Cond Value
	Then Value
	Else Value
}

func (*If) Kind() string   { return "expr:if" }
func (*If) String() string { return "if(...)" }

// And short-circuits: evaluates L, and only evaluates R if L is truthy.
type And struct {
	baseValue
	L Value
	R Value
}

func (*And) Kind() string   { return "expr:and" }
func (*And) String() string { return "and(...)" }

// Or short-circuits: evaluates L, and only evaluates R if L is falsy.
type Or struct {
	baseValue
	L Value
	R Value
}

func (*Or) Kind() string   { return "expr:or" }
func (*Or) String() string { return "or(...)" }

// Loop repeats Body forever, relying on the evaluator to catch Break
// (yielding its payload) and Continue (re-entering the loop).
type Loop struct {
	baseValue
	Body Value
}

func (*Loop) Kind() string   { return "expr:loop" }
func (*Loop) String() string { return "loop(...)" }

// BreakExpr evaluates Payload (Null if absent) and raises a Break control
// signal carrying it; caught by the nearest enclosing Loop (spec.md §6).
type BreakExpr struct {
	baseValue
	Payload Value // nil means no explicit payload expression
}

func (*BreakExpr) Kind() string   { return "expr:break" }
func (*BreakExpr) String() string { return "break(...)" }

// ContinueExpr raises a Continue control signal, re-entering the nearest
// enclosing Loop.
type ContinueExpr struct {
	baseValue
}

func (*ContinueExpr) Kind() string   { return "expr:continue" }
func (*ContinueExpr) String() string { return "continue" }

// ReturnExpr evaluates Payload (Null if absent) and raises a Return
// control signal, unwinding to the nearest enclosing Call (spec.md §6).
type ReturnExpr struct {
	baseValue
	Payload Value
}

func (*ReturnExpr) Kind() string   { return "expr:return" }
func (*ReturnExpr) String() string { return "return(...)" }
