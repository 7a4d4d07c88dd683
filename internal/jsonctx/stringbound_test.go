package jsonctx

import "testing"

func TestStringBoundary_Basic(t *testing.T) {
	content := `{"a": "hello world", "b": 1}`
	sb := NewStringBoundary(content)

	// "a" key quotes: offsets 1-3 ("a")
	if !sb.IsInString(1) {
		t.Errorf("expected offset 1 (inside \"a\") to be in-string")
	}
	// the colon/space between "a" and the value is not in a string
	if sb.IsInString(4) {
		t.Errorf("expected offset 4 (colon) to be outside a string")
	}
	// inside "hello world"
	helloIdx := len(`{"a": `)
	if !sb.IsInString(helloIdx + 1) {
		t.Errorf("expected offset inside \"hello world\" to be in-string")
	}
	// the numeric literal 1 is never in a string
	oneIdx := len(content) - 2
	if sb.IsInString(oneIdx) {
		t.Errorf("expected offset of bare number to be outside a string")
	}
}

func TestStringBoundary_EscapedQuote(t *testing.T) {
	content := `{"a": "she said \"hi\""}`
	sb := NewStringBoundary(content)
	// position right after the escaped quote, still inside the string
	idx := len(`{"a": "she said \"hi`)
	if !sb.IsInString(idx) {
		t.Errorf("expected position after escaped quote to remain in-string")
	}
}

func TestStringBoundary_BackslashBackslash(t *testing.T) {
	content := `{"a": "C:\\path"}`
	sb := NewStringBoundary(content)
	idx := len(`{"a": "C:\\pa`)
	if !sb.IsInString(idx) {
		t.Errorf("expected position after escaped backslash to remain in-string")
	}
}

func TestStringBoundary_UnterminatedTrailingString(t *testing.T) {
	content := `{"a": "truncated`
	sb := NewStringBoundary(content)
	if !sb.IsInString(len(content) - 1) {
		t.Errorf("expected truncated trailing string to be treated as in-string through EOF")
	}
}

func TestStringBoundary_EmptyContent(t *testing.T) {
	sb := NewStringBoundary("")
	if sb.IsInString(0) {
		t.Errorf("empty content should report no in-string positions")
	}
}

func TestStringBoundary_NilSafe(t *testing.T) {
	var sb *StringBoundary
	if sb.IsInString(5) {
		t.Errorf("nil StringBoundary must report false")
	}
}
