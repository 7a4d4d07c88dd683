package sanitize

import "strings"

// extractLargestJSONSpan finds every position where content opens with '{'
// or '[' and keeps the one whose matching close delimiter is farthest
// away, discarding everything outside that span. An opener that never
// balances (output cut off mid-value) counts as running to the end of
// content, so a truncated payload is kept whole rather than traded for a
// complete value nested inside it. LLMs occasionally preface or follow the
// payload with a smaller bracketed aside (a code example in the narration,
// a one-off example value); the largest span is a better bet than the
// first one encountered.
func extractLargestJSONSpan(content string) (string, bool) {
	bestStart, bestEnd := -1, -1
	for i := 0; i < len(content); i++ {
		if content[i] != '{' && content[i] != '[' {
			continue
		}
		end := matchingCloseIndex(content, i)
		if end < 0 {
			end = len(content)
		}
		if bestStart == -1 || end-i > bestEnd-bestStart {
			bestStart, bestEnd = i, end
		}
	}
	if bestStart == -1 {
		return content, false
	}
	span := content[bestStart:bestEnd]
	if span == content {
		return content, false
	}
	return span, true
}

// collapseRepeatedTopLevelObjects detects content that is the same
// top-level JSON value repeated twice back-to-back with only whitespace
// between the copies, the shape left behind when a retry appends a second
// attempt after the first instead of replacing it, and keeps only the
// first copy.
func collapseRepeatedTopLevelObjects(content string) (string, bool) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" || (trimmed[0] != '{' && trimmed[0] != '[') {
		return content, false
	}
	end := matchingCloseIndex(trimmed, 0)
	if end <= 0 || end >= len(trimmed) {
		return content, false
	}
	first := trimmed[:end]
	rest := strings.TrimSpace(trimmed[end:])
	if rest == first {
		return first, true
	}
	return content, false
}

// matchingCloseIndex returns the index immediately past the delimiter
// matching content[open] (a '{' or '['), skipping over string contents
// (respecting backslash escapes), or -1 if content is unbalanced from
// open onward.
func matchingCloseIndex(content string, open int) int {
	want := byte('}')
	if content[open] == '[' {
		want = ']'
	}
	depth := 0
	inString := false
	escaped := false
	for i := open; i < len(content); i++ {
		c := content[i]
		if inString {
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				if c == want {
					return i + 1
				}
				return -1
			}
		}
	}
	return -1
}
