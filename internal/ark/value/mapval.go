package value

// MapValue is Ark's Value→Value mapping. Keys are compared by raw Go
// equality of the interned pointer (reference identity), which for
// interned Null/Bool/Num/Str coincides with value identity — a known
// limitation carried from spec.md §3.1 ("the source treats this as a known
// limitation"): two structurally-equal but non-interned keys (e.g. two
// distinct ObjectValues) will not collide, by design.
type MapValue struct {
	baseValue
	entries map[Value]Value
	order   []Value
}

// NewMap returns an empty map.
func NewMap() *MapValue {
	return &MapValue{entries: make(map[Value]Value)}
}

func (m *MapValue) Kind() string { return "map" }

func (m *MapValue) String() string {
	s := "{"
	for i, k := range m.order {
		if i > 0 {
			s += ", "
		}
		s += k.String() + ": " + m.entries[k].String()
	}
	return s + "}"
}

// Get returns the value for key, or Null if absent.
func (m *MapValue) Get(key Value) Value {
	if v, ok := m.entries[key]; ok {
		return v
	}
	return Null()
}

// Set inserts or updates key→v.
func (m *MapValue) Set(key Value, v Value) Value {
	if _, exists := m.entries[key]; !exists {
		m.order = append(m.order, key)
	}
	m.entries[key] = v
	return v
}

// PropertyGet implements HasProperties: "get"/"set" native methods closed
// over this map.
func (m *MapValue) PropertyGet(name string) Value {
	switch name {
	case "get":
		return NewNativeFn("get", func(_ any, args []Value) (Value, error) {
			if len(args) < 1 {
				return nil, errArgCount("Map.get", 1, len(args))
			}
			return m.Get(args[0]), nil
		})
	case "set":
		return NewNativeFn("set", func(_ any, args []Value) (Value, error) {
			if len(args) < 2 {
				return nil, errArgCount("Map.set", 2, len(args))
			}
			return m.Set(args[0], args[1]), nil
		})
	default:
		return Null()
	}
}
