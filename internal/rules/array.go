package rules

import (
	"regexp"
	"strings"

	"github.com/dshills/jsonrepair/internal/jsonctx"
)

// adjacentValuesRe matches two JSON value tokens sitting next to each other
// with only whitespace between them and no comma, the shape of a dropped
// separator between array elements (e.g. `"a" "b"` or `1 2`).
var adjacentValuesRe = regexp.MustCompile(`("[^"\\]*(?:\\.[^"\\]*)*"|true|false|null|-?\d+(?:\.\d+)?)(\s+)("|true|false|null|-?\d|\{|\[)`)

func ruleInsertMissingArrayComma() Rule {
	return Rule{
		Name: "insert-missing-array-comma",
		Apply: func(content string, ctx Context) (string, bool, string) {
			sb := jsonctx.NewStringBoundary(content)
			// Each search resumes at the second token of the previous pair,
			// so in `"a" "b" "c"` the token "b" closes one pair and opens the
			// next.
			var gaps []int
			for offset := 0; offset < len(content); {
				loc := adjacentValuesRe.FindStringSubmatchIndex(content[offset:])
				if loc == nil {
					break
				}
				gaps = append(gaps, offset+loc[4])
				offset += loc[5]
			}
			if len(gaps) == 0 {
				return content, false, ""
			}
			changed := false
			result := []byte(content)
			// Apply from the rightmost match backward so earlier byte offsets
			// stay valid as we insert characters.
			for i := len(gaps) - 1; i >= 0; i-- {
				gapStart := gaps[i]
				if sb.IsInString(gapStart) {
					continue
				}
				if !jsonctx.IsInArrayContextSimple(content, gapStart) && !jsonctx.IsInDeepArrayContext(content, gapStart) {
					continue
				}
				result = append(result[:gapStart:gapStart], append([]byte(","), result[gapStart:]...)...)
				changed = true
			}
			if !changed {
				return content, false, ""
			}
			return string(result), true, "inserted missing comma between array elements"
		},
	}
}

// ruleCloseTruncatedStructure handles an input that was cut off mid-element
// (a common effect of hitting an LLM's output token limit): it finds the
// last comma outside a string literal, at any nesting depth, cuts the
// content at that comma (dropping the comma and everything after it), and
// closes out whatever objects/arrays were left open at that point.
func ruleCloseTruncatedStructure() Rule {
	return Rule{
		Name: "close-truncated-structure",
		Apply: func(content string, ctx Context) (string, bool, string) {
			if len(unmatchedOpenStack(content)) == 0 {
				return content, false, ""
			}
			cut := lastSafeCommaOutsideString(content)
			if cut < 0 {
				return content, false, ""
			}
			// Recompute the open-bracket stack against just the retained
			// prefix: the discarded tail may itself have opened brackets
			// that must not be closed, since their content is gone too.
			stack := unmatchedOpenStack(content[:cut])
			if len(stack) == 0 {
				return content, false, ""
			}
			var closers []byte
			for i := len(stack) - 1; i >= 0; i-- {
				if stack[i] == '{' {
					closers = append(closers, '}')
				} else {
					closers = append(closers, ']')
				}
			}
			return content[:cut] + string(closers), true, "closed structure truncated by output limit"
		},
	}
}

// unmatchedOpenStack scans all of content and returns the stack of '{'/'['
// bytes left unmatched at EOF, skipping string contents.
func unmatchedOpenStack(content string) []byte {
	var stack []byte
	inString := false
	escaped := false
	for i := 0; i < len(content); i++ {
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
			stack = append(stack, c)
		case '}', ']':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}
	return stack
}

// lastSafeCommaOutsideString returns the byte offset of the last comma in
// content that is not inside a string literal, or -1 if none exists.
func lastSafeCommaOutsideString(content string) int {
	sb := jsonctx.NewStringBoundary(content)
	for i := len(content) - 1; i >= 0; i-- {
		if content[i] == ',' && !sb.IsInString(i) {
			return i
		}
	}
	return -1
}

// quotedKeyColonRe matches a quoted object key immediately followed by its
// colon, used to find candidate property positions regardless of their
// surrounding bracket context.
var quotedKeyColonRe = regexp.MustCompile(`"[A-Za-z_][A-Za-z0-9_]*"\s*:`)

// ruleCloseUnclosedArrayBeforeNextProperty detects a property key sitting
// directly inside an array whose parent is an object: the shape an LLM
// leaves behind when it forgets to close an array value before moving on to
// the next sibling property. It closes the array right before that key.
func ruleCloseUnclosedArrayBeforeNextProperty() Rule {
	return Rule{
		Name: "close-unclosed-array-before-next-property",
		Apply: func(content string, ctx Context) (string, bool, string) {
			sb := jsonctx.NewStringBoundary(content)
			locs := quotedKeyColonRe.FindAllStringIndex(content, -1)
			if len(locs) == 0 {
				return content, false, ""
			}
			var insertAt []int
			for _, loc := range locs {
				pos := loc[0]
				// The key's own quotes count as in-string, so the colon
				// after it is what tells a real key from text inside a
				// longer string literal.
				if sb.IsInString(loc[1] - 1) {
					continue
				}
				if jsonctx.IsBarePropertyInArray(content, pos) {
					insertAt = append(insertAt, pos)
				}
			}
			if len(insertAt) == 0 {
				return content, false, ""
			}
			var b strings.Builder
			last := 0
			for _, pos := range insertAt {
				trimEnd := pos
				for trimEnd > last && isJSONSpace(content[trimEnd-1]) {
					trimEnd--
				}
				if trimEnd > last && content[trimEnd-1] == ',' {
					trimEnd--
				}
				b.WriteString(content[last:trimEnd])
				b.WriteString("],")
				last = pos
			}
			b.WriteString(content[last:])
			return b.String(), true, "closed array left open before the next property"
		},
	}
}

// missingCommaAfterArrayRe matches a closing array bracket immediately
// followed by whitespace and the opening quote of what must be the next
// object key, with no comma between them.
var missingCommaAfterArrayRe = regexp.MustCompile(`(\])(\s+)(")`)

func ruleInsertMissingCommaAfterArray() Rule {
	return Rule{
		Name: "insert-missing-comma-after-array",
		Apply: func(content string, ctx Context) (string, bool, string) {
			sb := jsonctx.NewStringBoundary(content)
			locs := missingCommaAfterArrayRe.FindAllStringSubmatchIndex(content, -1)
			if len(locs) == 0 {
				return content, false, ""
			}
			result := []byte(content)
			changed := false
			for i := len(locs) - 1; i >= 0; i-- {
				loc := locs[i]
				bracketEnd := loc[3]
				if sb.IsInString(loc[0]) {
					continue
				}
				result = append(result[:bracketEnd:bracketEnd], append([]byte(","), result[bracketEnd:]...)...)
				changed = true
			}
			if !changed {
				return content, false, ""
			}
			return string(result), true, "inserted missing comma after array"
		},
	}
}

// stringLiteralEmptyArrayRe matches a value position holding the literal
// string "[]" instead of an actual empty array, the shape left behind when a
// model quotes a placeholder instead of emitting a real array.
var stringLiteralEmptyArrayRe = regexp.MustCompile(`:(\s*)"\[\]"`)

func ruleUnquoteEmptyArrayLiteral() Rule {
	return Rule{
		Name: "unquote-empty-array-literal",
		Apply: func(content string, ctx Context) (string, bool, string) {
			if !stringLiteralEmptyArrayRe.MatchString(content) {
				return content, false, ""
			}
			fixed := stringLiteralEmptyArrayRe.ReplaceAllString(content, `:$1[]`)
			return fixed, true, "unquoted empty-array string literal"
		},
	}
}

// strayCommaArtifactRe matches a comma immediately followed by a lone dash
// or another comma, noise left behind by a dropped array element.
var strayCommaArtifactRe = regexp.MustCompile(`,\s*-\s*(?:[,}\]])|,\s*,+`)

func ruleRemoveStrayCommaArtifacts() Rule {
	return Rule{
		Name: "remove-stray-comma-artifacts",
		Apply: func(content string, ctx Context) (string, bool, string) {
			sb := jsonctx.NewStringBoundary(content)
			locs := strayCommaArtifactRe.FindAllStringIndex(content, -1)
			if len(locs) == 0 {
				return content, false, ""
			}
			var b strings.Builder
			last := 0
			changed := false
			for _, loc := range locs {
				if sb.IsInString(loc[0]) {
					continue
				}
				match := content[loc[0]:loc[1]]
				b.WriteString(content[last:loc[0]])
				if strings.HasSuffix(match, "}") {
					b.WriteByte('}')
				} else if strings.HasSuffix(match, "]") {
					b.WriteByte(']')
				} else {
					b.WriteByte(',')
				}
				last = loc[1]
				changed = true
			}
			if !changed {
				return content, false, ""
			}
			b.WriteString(content[last:])
			return b.String(), true, "removed stray comma artifact"
		},
	}
}

// markdownListMarkerRe matches a markdown list marker ("-", "*", or a
// bullet glyph) sitting directly before an array element.
var markdownListMarkerRe = regexp.MustCompile(`([\[,]\s*)[-*\x{2022}\x{2192}]\s+(")`)

func ruleStripMarkdownListMarkerBeforeElement() Rule {
	return Rule{
		Name: "strip-markdown-list-marker-before-element",
		Apply: func(content string, ctx Context) (string, bool, string) {
			sb := jsonctx.NewStringBoundary(content)
			locs := markdownListMarkerRe.FindAllStringSubmatchIndex(content, -1)
			if len(locs) == 0 {
				return content, false, ""
			}
			var b strings.Builder
			last := 0
			changed := false
			for _, loc := range locs {
				if sb.IsInString(loc[0]) {
					continue
				}
				if !jsonctx.IsInArrayContextSimple(content, loc[0]) && !jsonctx.IsInDeepArrayContext(content, loc[0]) {
					continue
				}
				b.WriteString(content[last:loc[0]])
				b.WriteString(content[loc[2]:loc[3]])
				last = loc[4]
				changed = true
			}
			if !changed {
				return content, false, ""
			}
			b.WriteString(content[last:])
			return b.String(), true, "removed markdown list marker before array element"
		},
	}
}

// ArrayElementGroup repairs missing separators between array elements,
// closes structures left open by truncated output or an unclosed array
// value, and cleans up stray markup around array elements.
func ArrayElementGroup() Group {
	return Group{
		Name: "array-element",
		Rules: []Rule{
			ruleInsertMissingArrayComma(),
			ruleInsertMissingCommaAfterArray(),
			ruleCloseUnclosedArrayBeforeNextProperty(),
			ruleCloseTruncatedStructure(),
			ruleUnquoteEmptyArrayLiteral(),
			ruleRemoveStrayCommaArtifacts(),
			ruleStripMarkdownListMarkerBeforeElement(),
		},
	}
}

// SyntaxFixGroup is the pipeline's coarse, early syntax pass: missing
// array separators, trailing commas, and structures left open by
// truncation. It runs once ahead of the full rule library so the common
// cases are already gone before the more invasive groups run; running the
// same rules again as part of StructuralGroup/ArrayElementGroup later is
// harmless, since every rule here is a no-op once its fix is applied.
func SyntaxFixGroup() Group {
	return Group{
		Name: "syntax-fix",
		Rules: []Rule{
			ruleRemoveTrailingCommas(),
			ruleInsertMissingArrayComma(),
			ruleCloseTruncatedStructure(),
		},
	}
}
