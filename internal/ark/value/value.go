// Package value implements Ark's closed runtime value set: the interned
// primitives, the container and reference types, and the expression nodes
// that the compiler produces and the evaluator walks.
//
// Every runtime datum implements Value. Expression nodes are themselves
// Values (spec.md §9's expression/value conflation) so that a Ref produced
// by evaluating one expression can be threaded into Get/Set as a plain
// value.
package value

// Value is the base interface every runtime datum and every expression
// node implements.
type Value interface {
	// Kind returns a short, stable type tag used in error messages and by
	// the serializer. Related variants share a prefix — the Ref variants
	// report "ref:value", "ref:stack", "ref:capture" and "ref:property".
	Kind() string
	// String returns a human-readable form, used by print/debug and tests.
	String() string
	// Debug returns this value's debug bag, creating one on first access.
	Debug() *DebugBag
}

// DebugBag is an opaque side-channel of diagnostic metadata attached to
// every value: at minimum a uid, optionally a name and a source location.
// It never participates in equality or evaluation semantics.
type DebugBag struct {
	UID        uint64
	Name       string
	SourceLoc  *SourceLoc
	Extra      map[string]any
}

// SourceLoc is a 1-based line/column pair, populated from the compiler's
// optional JSON source-location sidecar (SPEC_FULL.md §5).
type SourceLoc struct {
	Line   int
	Column int
}

// Set stores an arbitrary descriptor under key, lazily allocating the
// backing map.
func (b *DebugBag) Set(key string, v any) {
	if b.Extra == nil {
		b.Extra = make(map[string]any)
	}
	b.Extra[key] = v
}

// Get retrieves a descriptor previously stored with Set.
func (b *DebugBag) Get(key string) (any, bool) {
	if b.Extra == nil {
		return nil, false
	}
	v, ok := b.Extra[key]
	return v, ok
}

var nextUID uint64

func newUID() uint64 {
	nextUID++
	return nextUID
}

// baseValue is embedded by every concrete value type to provide the debug
// bag without repeating its plumbing in each variant.
type baseValue struct {
	debug *DebugBag
}

func (b *baseValue) Debug() *DebugBag {
	if b.debug == nil {
		b.debug = &DebugBag{UID: newUID()}
	}
	return b.debug
}
