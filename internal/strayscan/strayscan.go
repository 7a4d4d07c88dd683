// Package strayscan recognizes non-JSON text fragments that LLM output
// commonly interleaves with JSON: trailing commentary, truncation markers,
// first-person narration, and tokens in key position that are not plausible
// property names. It has no detector for stray single characters.
package strayscan

import (
	"regexp"
	"strings"
)

// jsonKeywords are the bare tokens JSON itself can legally contain outside
// of a string literal.
var jsonKeywords = map[string]bool{
	"true":  true,
	"false": true,
	"null":  true,
}

// IsJSONKeyword reports whether word (case-sensitive, already trimmed) is a
// literal JSON keyword.
func IsJSONKeyword(word string) bool {
	return jsonKeywords[word]
}

// sentenceStructureRe matches a run of words followed by terminal
// punctuation, the shape of a natural-language sentence rather than a JSON
// token.
var sentenceStructureRe = regexp.MustCompile(`^[A-Za-z][A-Za-z,']*(?: +[A-Za-z,']+)+[.!?]$`)

// LooksLikeSentenceStructure reports whether text reads like a natural
// language sentence: starts with a letter, has at least two
// space-separated words, and ends in terminal punctuation. Capitalization
// is not checked.
func LooksLikeSentenceStructure(text string) bool {
	text = strings.TrimSpace(text)
	return sentenceStructureRe.MatchString(text)
}

// truncationMarkers are fragments LLMs emit when output was cut short,
// either by the model itself or by a surrounding harness.
var truncationMarkers = []string{
	"...",
	"[truncated]",
	"[continued]",
	"(truncated)",
	"<truncated>",
	"[response truncated]",
	"[output truncated]",
}

// LooksLikeTruncationMarker reports whether text is (or consists solely of)
// a truncation marker fragment.
func LooksLikeTruncationMarker(text string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(text))
	if trimmed == "" {
		return false
	}
	for _, marker := range truncationMarkers {
		if trimmed == marker {
			return true
		}
	}
	return false
}

// firstPersonPrefixes are the openings of assistant narration that
// sometimes leaks before or after a JSON payload.
var firstPersonPrefixes = []string{
	"i ", "i'm ", "i've ", "i'll ", "here is", "here's", "sure,", "sure!",
	"note:", "note that", "as requested", "let me",
}

// LooksLikeFirstPersonStatement reports whether text opens with assistant
// narration rather than JSON content.
func LooksLikeFirstPersonStatement(text string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(text))
	for _, prefix := range firstPersonPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}

// LooksLikeStrayText combines the narrower detectors: text is flagged as
// stray (non-JSON) content if it looks like a sentence, a truncation
// marker, or first-person narration, and is not itself a JSON keyword.
func LooksLikeStrayText(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || IsJSONKeyword(trimmed) {
		return false
	}
	return LooksLikeSentenceStructure(trimmed) ||
		LooksLikeTruncationMarker(trimmed) ||
		LooksLikeFirstPersonStatement(trimmed)
}

// validKeyCharRe matches the character set of a well-formed unquoted JSON
// object key candidate (before quoting repair runs).
var validKeyCharRe = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// LooksLikeNonJSONKey reports whether a bare token captured in a
// property-name position is unlikely to be an actual property name:
// multi-word text, punctuation-bearing prose, or a JSON keyword
// masquerading as a key. knownProperties short-circuits the check to
// false when token matches one of the schema's own property names
// (case-insensitively): schema-awareness always wins over the heuristic,
// since a YAML-shaped key the caller actually declared is not stray text.
func LooksLikeNonJSONKey(token string, knownProperties []string) bool {
	trimmed := strings.TrimSpace(token)
	for _, known := range knownProperties {
		if strings.EqualFold(trimmed, known) {
			return false
		}
	}
	if trimmed == "" {
		return true
	}
	if IsJSONKeyword(trimmed) {
		return true
	}
	if validKeyCharRe.MatchString(trimmed) {
		return false
	}
	return true
}
