package value

// NativeObjectHandle is implemented by the host adapter's own object types
// (fs, JSON, process, RegExp — SPEC_FULL.md §7). NativeObjectValue defers
// all property access to the handle, keeping this package free of any
// dependency on the concrete host-adapter package.
type NativeObjectHandle interface {
	GetProp(name string) (Value, error)
	SetProp(name string, v Value) error
}

// NativeObjectValue wraps an opaque host handle (spec.md §3.1).
type NativeObjectValue struct {
	baseValue
	Label  string
	Handle NativeObjectHandle
}

// NewNativeObject wraps handle, using label for String()/error messages.
func NewNativeObject(label string, handle NativeObjectHandle) *NativeObjectValue {
	return &NativeObjectValue{Label: label, Handle: handle}
}

func (n *NativeObjectValue) Kind() string   { return "nativeobject" }
func (n *NativeObjectValue) String() string { return "<native " + n.Label + ">" }

// Get retrieves a property, surfacing the handle's error as a
// HostConversionError at the eval layer (spec.md §7).
func (n *NativeObjectValue) Get(name string) (Value, error) {
	return n.Handle.GetProp(name)
}

// SetProp writes a property through the handle.
func (n *NativeObjectValue) SetProp(name string, v Value) error {
	return n.Handle.SetProp(name, v)
}
