package value

// ListValue is Ark's ordered sequence container. Grounded on the teacher's
// runtime.ArrayValue, stripped of the static/dynamic array-type distinction
// DWScript's type system needs (Ark has none).
type ListValue struct {
	baseValue
	Elements []Value
}

// NewList wraps elems directly (no copy); callers that need isolation
// should copy before constructing.
func NewList(elems []Value) *ListValue {
	return &ListValue{Elements: elems}
}

func (l *ListValue) Kind() string { return "list" }

func (l *ListValue) String() string {
	s := "["
	for i, e := range l.Elements {
		if i > 0 {
			s += ", "
		}
		s += e.String()
	}
	return s + "]"
}

// Length returns the live element count. spec.md §4.1's open question: the
// source snapshots length at construction; this implementation computes it
// on demand so mutation via set is always reflected, per the spec's SHOULD.
func (l *ListValue) Length() int { return len(l.Elements) }

// Get returns the element at i, or Null if i is out of bounds.
func (l *ListValue) Get(i int) Value {
	if i < 0 || i >= len(l.Elements) {
		return Null()
	}
	return l.Elements[i]
}

// Set writes the element at i, growing the slice with Null padding if
// necessary so `set` never fails on a non-negative index.
func (l *ListValue) Set(i int, v Value) Value {
	if i < 0 {
		return v
	}
	for i >= len(l.Elements) {
		l.Elements = append(l.Elements, Null())
	}
	l.Elements[i] = v
	return v
}

// PropertyGet implements HasProperties: "length" is a live computed
// property; "get"/"set" are native methods closed over this list.
func (l *ListValue) PropertyGet(name string) Value {
	switch name {
	case "length":
		return Num(float64(l.Length()))
	case "get":
		return NewNativeFn("get", func(_ any, args []Value) (Value, error) {
			idx, err := requireIndex(args, 0, "List.get")
			if err != nil {
				return nil, err
			}
			return l.Get(idx), nil
		})
	case "set":
		return NewNativeFn("set", func(_ any, args []Value) (Value, error) {
			idx, err := requireIndex(args, 0, "List.set")
			if err != nil {
				return nil, err
			}
			if len(args) < 2 {
				return nil, errArgCount("List.set", 2, len(args))
			}
			return l.Set(idx, args[1]), nil
		})
	default:
		return Null()
	}
}
