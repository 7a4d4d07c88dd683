package jsonctx

import "testing"

func TestIsAfterJSONDelimiter(t *testing.T) {
	content := `{"a": 1, b}`
	// position of 'b', right after ", "
	pos := len(`{"a": 1, `)
	if !IsAfterJSONDelimiter(content, pos) {
		t.Errorf("expected position after comma to report true")
	}
	if IsAfterJSONDelimiter(content, 0) {
		t.Errorf("position 0 has nothing before it, expected false")
	}
}

func TestIsInPropertyContext(t *testing.T) {
	content := `{"a": 1, b: 2}`
	// "a" key starts right after '{'
	if !IsInPropertyContext(content, 1) {
		t.Errorf("expected offset 1 (first key) to be in property context")
	}
	// 'b' starts right after ", "
	bPos := len(`{"a": 1, `)
	if !IsInPropertyContext(content, bPos) {
		t.Errorf("expected offset of bare key 'b' to be in property context")
	}
	// the value position right after ':' is NOT a property context
	valuePos := len(`{"a": `)
	if IsInPropertyContext(content, valuePos) {
		t.Errorf("expected value position to not be a property context")
	}
}

func TestIsInPropertyContext_NotInObject(t *testing.T) {
	content := `[1, 2, 3]`
	if IsInPropertyContext(content, 1) {
		t.Errorf("array context must not report as property context")
	}
}

func TestIsInArrayContextSimple(t *testing.T) {
	content := `[1, 2, 3]`
	if !IsInArrayContextSimple(content, 1) {
		t.Errorf("expected single-level array to report simple array context")
	}
	if IsInDeepArrayContext(content, 1) {
		t.Errorf("single-level array must not report as deep array context")
	}
}

func TestIsInDeepArrayContext(t *testing.T) {
	content := `[[1, 2], [3, 4]]`
	innerPos := len(`[[`)
	if !IsInDeepArrayContext(content, innerPos) {
		t.Errorf("expected nested array position to report deep array context")
	}
	if IsInArrayContextSimple(content, innerPos) {
		t.Errorf("nested array position must not report as simple array context")
	}
}

func TestIsInArrayContextSimple_ObjectEnclosed(t *testing.T) {
	content := `{"a": 1}`
	if IsInArrayContextSimple(content, 1) {
		t.Errorf("object context must not report as array context")
	}
}

func TestEnclosingStack_SkipsStrings(t *testing.T) {
	content := `{"a": "[ not real"}`
	stack := enclosingStack(content, len(content)-1)
	if len(stack) != 1 || stack[0] != '{' {
		t.Errorf("brackets inside string literals must not affect the stack, got %v", stack)
	}
}
