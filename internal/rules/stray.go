package rules

import (
	"regexp"
	"strings"

	"github.com/dshills/jsonrepair/internal/jsonctx"
	"github.com/dshills/jsonrepair/internal/strayscan"
)

// truncationMarkerRe matches the literal truncation-marker fragments
// recognized by strayscan.LooksLikeTruncationMarker, so the rule can find
// them regardless of what structural characters they start or end with
// (e.g. the leading '[' of "[truncated]").
var truncationMarkerRe = regexp.MustCompile(`(?i)\.\.\.|\[truncated\]|\[continued\]|\(truncated\)|<truncated>|\[response truncated\]|\[output truncated\]`)

// findStraySpan locates one candidate span of non-JSON text starting at a
// property-context position: a run of bytes up to (but not including) the
// next quote, comma, colon, or closing delimiter.
func findStraySpan(content string, start int) (end int) {
	for i := start; i < len(content); i++ {
		switch content[i] {
		case '"', ',', ':', '}', ']', '{', '[':
			return i
		}
	}
	return len(content)
}

// ruleRemoveStrayPropertyText scans object bodies for bare runs of text that
// are not quoted JSON property names and read like narration (a sentence,
// a truncation marker, or first-person commentary) rather than a key,
// removing the run along with one adjacent comma so the surrounding object
// stays well-formed.
func ruleRemoveStrayPropertyText() Rule {
	return Rule{
		Name: "remove-stray-property-text",
		Apply: func(content string, ctx Context) (string, bool, string) {
			i := 0
			for i < len(content) {
				c := content[i]
				if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
					i++
					continue
				}
				if isIdentStart(c) && jsonctx.IsInPropertyContext(content, i) {
					end := findStraySpan(content, i)
					span := strings.TrimSpace(content[i:end])
					if span != "" && end < len(content) && content[end] != ':' &&
						(strayscan.LooksLikeStrayText(span) || strayscan.LooksLikeNonJSONKey(span, ctx.KnownProperties)) {
						return removeSpanWithDelimiter(content, i, end), true, "removed stray non-JSON text from object body"
					}
					i = end
					continue
				}
				i++
			}
			return content, false, ""
		},
	}
}

func isIdentStart(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || c == '_' || c == '$'
}

// removeSpanWithDelimiter deletes content[start:end] and, if the
// immediately following non-whitespace byte is a comma, deletes that comma
// too so the object does not end up with a dangling separator.
func removeSpanWithDelimiter(content string, start, end int) string {
	j := end
	for j < len(content) && (content[j] == ' ' || content[j] == '\t' || content[j] == '\n' || content[j] == '\r') {
		j++
	}
	if j < len(content) && content[j] == ',' {
		end = j + 1
	}
	return content[:start] + content[end:]
}

// removeSpanCollapseSpace deletes content[start:end] and, when whitespace
// bordered the span on both sides, collapses it down to a single space so
// deleting a marker sitting between two tokens doesn't fuse or double-space
// them.
func removeSpanCollapseSpace(content string, start, end int) string {
	left := content[:start]
	right := content[end:]
	leftTrimmed := strings.TrimRight(left, " \t\n\r")
	rightTrimmed := strings.TrimLeft(right, " \t\n\r")
	if leftTrimmed != left && rightTrimmed != right {
		return leftTrimmed + " " + rightTrimmed
	}
	return leftTrimmed + rightTrimmed
}

// ruleRemoveTruncationMarkers strips standalone truncation markers
// (e.g. "...", "[truncated]") that sit between JSON elements.
func ruleRemoveTruncationMarkers() Rule {
	return Rule{
		Name: "remove-truncation-markers",
		Apply: func(content string, ctx Context) (string, bool, string) {
			sb := jsonctx.NewStringBoundary(content)
			locs := truncationMarkerRe.FindAllStringIndex(content, -1)
			if len(locs) == 0 {
				return content, false, ""
			}
			for _, loc := range locs {
				if sb.IsInString(loc[0]) {
					continue
				}
				if !strayscan.LooksLikeTruncationMarker(content[loc[0]:loc[1]]) {
					continue
				}
				return removeSpanCollapseSpace(content, loc[0], loc[1]), true, "removed truncation marker"
			}
			return content, false, ""
		},
	}
}

// StrayCharacterGroup removes narration and truncation artifacts that leak
// into otherwise-structural positions.
func StrayCharacterGroup() Group {
	return Group{
		Name: "stray-character",
		Rules: []Rule{
			ruleRemoveTruncationMarkers(),
			ruleRemoveStrayPropertyText(),
		},
	}
}
