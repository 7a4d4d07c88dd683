// Package jsonvalue provides an order-preserving JSON value tree. Go's
// native map[string]any randomizes iteration order, which loses the
// original property insertion order of an LLM's JSON output; schema-fixing
// transforms that rewrite or reorder properties need that order preserved
// byte-for-byte wherever they don't deliberately change it.
package jsonvalue

// Kind identifies which JSON type a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// Member is a single key/value pair of an object, retained in the order it
// was parsed or inserted.
type Member struct {
	Key   string
	Value *Value
}

// Value is a sum type over the six JSON value shapes. Exactly one of the
// fields below is meaningful, selected by Kind.
type Value struct {
	Kind Kind

	Bool    bool
	Number  float64
	// Raw preserves the original numeric literal text (e.g. "1.0" vs "1")
	// so re-encoding doesn't silently normalize it. Decode rejects a
	// literal outside float64's range.
	Raw     string
	Str     string
	Array   []*Value
	Members []Member
}

// NewNull returns a null Value.
func NewNull() *Value { return &Value{Kind: KindNull} }

// NewBool returns a boolean Value.
func NewBool(b bool) *Value { return &Value{Kind: KindBool, Bool: b} }

// NewNumber returns a numeric Value, retaining raw as its literal source
// text.
func NewNumber(n float64, raw string) *Value {
	return &Value{Kind: KindNumber, Number: n, Raw: raw}
}

// NewString returns a string Value.
func NewString(s string) *Value { return &Value{Kind: KindString, Str: s} }

// NewArray returns an array Value wrapping elems (not copied).
func NewArray(elems []*Value) *Value { return &Value{Kind: KindArray, Array: elems} }

// NewObject returns an empty object Value.
func NewObject() *Value { return &Value{Kind: KindObject, Members: nil} }

// Get returns the value of the first member named key, and whether it was
// found.
func (v *Value) Get(key string) (*Value, bool) {
	if v == nil || v.Kind != KindObject {
		return nil, false
	}
	for _, m := range v.Members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Set assigns key to val, appending a new member if key is not already
// present, or replacing the existing member's value (preserving its
// position) if it is.
func (v *Value) Set(key string, val *Value) {
	if v == nil || v.Kind != KindObject {
		return
	}
	for i, m := range v.Members {
		if m.Key == key {
			v.Members[i].Value = val
			return
		}
	}
	v.Members = append(v.Members, Member{Key: key, Value: val})
}

// Delete removes the member named key, if present, preserving the order of
// the remaining members.
func (v *Value) Delete(key string) {
	if v == nil || v.Kind != KindObject {
		return
	}
	for i, m := range v.Members {
		if m.Key == key {
			v.Members = append(v.Members[:i], v.Members[i+1:]...)
			return
		}
	}
}

// Keys returns the object's member names in insertion order.
func (v *Value) Keys() []string {
	if v == nil || v.Kind != KindObject {
		return nil
	}
	out := make([]string, len(v.Members))
	for i, m := range v.Members {
		out[i] = m.Key
	}
	return out
}

// IsNull reports whether v is nil or holds a JSON null.
func (v *Value) IsNull() bool {
	return v == nil || v.Kind == KindNull
}
