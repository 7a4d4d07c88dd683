package jsonrepair

import "strings"

// insignificantRepairSteps are diagnostic messages describing a
// purely-syntactic fix: one that could not have changed the meaning of the
// data, only how it was spelled (markdown wrapper, comment, quote style,
// punctuation). A caller deciding whether a repaired result is trustworthy
// enough to use without a human glancing at it can treat these as free;
// anything else (narration trimming, stray-text removal, truncation
// recovery, schema coercions) touched content and is worth a second look.
var insignificantRepairSteps = []string{
	"removed surrounding markdown code fence",
	"removed unterminated markdown fence opener",
	"removed surrounding HTML-style tags",
	"removed non-JSON comment",
	"removed trailing comma before closing delimiter",
	"converted single-quoted string to double-quoted",
	"quoted bare object key",
	"inserted missing colon after property name",
	"escaped invalid backslash sequence",
	"normalized smart-punctuation and invisible Unicode characters",
	"removed LLM chat-template token artifacts",
}

// HasSignificantRepairs reports whether diagnostics contains at least one
// message describing a repair step that could have changed the meaning of
// the data, as opposed to only its surface syntax.
func HasSignificantRepairs(diagnostics []string) bool {
	for _, d := range diagnostics {
		if !isInsignificant(d) {
			return true
		}
	}
	return false
}

func isInsignificant(diagnostic string) bool {
	for _, step := range insignificantRepairSteps {
		if strings.Contains(diagnostic, step) {
			return true
		}
	}
	return false
}
