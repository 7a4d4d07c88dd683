package jsonvalue

import "testing"

func TestValue_GetSetDeleteOrder(t *testing.T) {
	obj := NewObject()
	obj.Set("a", NewNumber(1, "1"))
	obj.Set("b", NewNumber(2, "2"))
	obj.Set("c", NewNumber(3, "3"))

	if got := obj.Keys(); len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("Keys() = %v, want [a b c]", got)
	}

	obj.Set("b", NewNumber(20, "20"))
	if got := obj.Keys(); len(got) != 3 || got[1] != "b" {
		t.Fatalf("Set on existing key must preserve position, got %v", got)
	}
	v, _ := obj.Get("b")
	if v.Number != 20 {
		t.Errorf("Get(b).Number = %v, want 20", v.Number)
	}

	obj.Delete("b")
	if got := obj.Keys(); len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Fatalf("Delete must preserve remaining order, got %v", got)
	}
}

func TestValue_GetMissing(t *testing.T) {
	obj := NewObject()
	if _, ok := obj.Get("missing"); ok {
		t.Errorf("Get on missing key should report false")
	}
}

func TestValue_IsNull(t *testing.T) {
	var v *Value
	if !v.IsNull() {
		t.Errorf("nil Value pointer must report IsNull")
	}
	if !NewNull().IsNull() {
		t.Errorf("KindNull Value must report IsNull")
	}
	if NewBool(false).IsNull() {
		t.Errorf("bool Value must not report IsNull")
	}
}

func TestValue_NotAnObject(t *testing.T) {
	arr := NewArray(nil)
	arr.Set("a", NewNull())
	if _, ok := arr.Get("a"); ok {
		t.Errorf("Set/Get on a non-object Value must be a no-op")
	}
}
