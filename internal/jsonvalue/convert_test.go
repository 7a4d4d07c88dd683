package jsonvalue

import "testing"

func TestToAny(t *testing.T) {
	v, err := Decode([]byte(`{"a": 1, "b": [true, null, "x"]}`))
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	out := ToAny(v).(map[string]any)
	if out["a"].(float64) != 1 {
		t.Errorf("a = %v, want 1", out["a"])
	}
	arr := out["b"].([]any)
	if arr[0].(bool) != true || arr[1] != nil || arr[2].(string) != "x" {
		t.Errorf("unexpected array conversion: %+v", arr)
	}
}

func TestToAny_Nil(t *testing.T) {
	if ToAny(nil) != nil {
		t.Errorf("ToAny(nil) should be nil")
	}
}
