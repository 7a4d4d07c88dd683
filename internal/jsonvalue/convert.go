package jsonvalue

import (
	"fmt"
	"sort"
	"strconv"
)

// FromAny converts a plain decoded Go value (map[string]any, []any,
// float64/int/int64, string, bool, nil) into the equivalent Value tree, the
// inverse of ToAny. Object key order is not recoverable from a Go map, so
// FromAny sorts an object's keys lexically to keep the result deterministic
// across calls on the same input. Unsupported types are rejected: a caller
// that already has a Value should use it directly instead of round-tripping
// through any.
func FromAny(data any) (*Value, error) {
	switch v := data.(type) {
	case nil:
		return NewNull(), nil
	case bool:
		return NewBool(v), nil
	case string:
		return NewString(v), nil
	case float64:
		return NewNumber(v, strconv.FormatFloat(v, 'g', -1, 64)), nil
	case float32:
		f := float64(v)
		return NewNumber(f, strconv.FormatFloat(f, 'g', -1, 32)), nil
	case int:
		return NewNumber(float64(v), strconv.Itoa(v)), nil
	case int64:
		return NewNumber(float64(v), strconv.FormatInt(v, 10)), nil
	case []any:
		elems := make([]*Value, len(v))
		for i, elem := range v {
			converted, err := FromAny(elem)
			if err != nil {
				return nil, err
			}
			elems[i] = converted
		}
		return NewArray(elems), nil
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := NewObject()
		for _, k := range keys {
			converted, err := FromAny(v[k])
			if err != nil {
				return nil, err
			}
			obj.Set(k, converted)
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("jsonvalue: unsupported Go type %T", data)
	}
}

// ToAny converts v to the equivalent Go value built from the standard
// building blocks (map[string]any, []any, float64, string, bool, nil),
// for callers that want a plain decoded value rather than the
// order-preserving tree. Object member order is not representable in a Go
// map and is lost at this boundary; callers that need order should work
// with the Value tree or re-encode it with Encode instead.
func ToAny(v *Value) any {
	if v == nil {
		return nil
	}
	switch v.Kind {
	case KindNull:
		return nil
	case KindBool:
		return v.Bool
	case KindNumber:
		return v.Number
	case KindString:
		return v.Str
	case KindArray:
		out := make([]any, len(v.Array))
		for i, elem := range v.Array {
			out[i] = ToAny(elem)
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.Members))
		for _, m := range v.Members {
			out[m.Key] = ToAny(m.Value)
		}
		return out
	default:
		return nil
	}
}
