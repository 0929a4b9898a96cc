package value

// NativeFunc is the Go shape of a NativeFn body: it receives the calling
// evaluator (opaque here as `any` to avoid an import cycle between value
// and eval — the eval package's Evaluator is the only type ever passed)
// and the already-evaluated argument values, per spec.md §3.1/§4.3.
type NativeFunc func(caller any, args []Value) (Value, error)

// Caller is the capability a NativeFunc needs to invoke an Ark callable
// (closure or another native fn) itself — e.g. a List "forEach" method
// calling back into a user-supplied closure. The eval package's Evaluator
// implements this; defined here, not there, to avoid the import cycle.
type Caller interface {
	Call(fn Value, args []Value) (Value, error)
}

// NativeFnValue is a host callable invoked directly by Call — it never
// pushes a stack frame (spec.md §4.3 step 3).
type NativeFnValue struct {
	baseValue
	Name string
	Fn   NativeFunc
}

// NewNativeFn wraps fn under name (used for error messages and debug bags).
func NewNativeFn(name string, fn NativeFunc) *NativeFnValue {
	return &NativeFnValue{Name: name, Fn: fn}
}

func (f *NativeFnValue) Kind() string   { return "nativefn" }
func (f *NativeFnValue) String() string { return "<native " + f.Name + ">" }

// Call invokes the wrapped Go function.
func (f *NativeFnValue) Call(caller any, args []Value) (Value, error) {
	return f.Fn(caller, args)
}

// ClosureValue is produced by evaluating a Fn expression: parameter names,
// the captured-reference frame resolved at creation time, and the body
// expression to evaluate on Call.
type ClosureValue struct {
	baseValue
	Params   []string
	Captures []Ref
	Body     Value // an Expression node
}

func (c *ClosureValue) Kind() string   { return "closure" }
func (c *ClosureValue) String() string { return "<closure/" + itoa(len(c.Params)) + ">" }
