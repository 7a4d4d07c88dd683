package sanitize

import "strings"

// smartCharReplacements maps Unicode punctuation that LLMs substitute for
// plain ASCII JSON syntax characters (curly/smart quotes, en/em dashes used
// as minus signs, non-breaking spaces) to their ASCII equivalents.
var smartCharReplacements = []struct {
	from string
	to   string
}{
	{"“", `"`}, // left double quotation mark
	{"”", `"`}, // right double quotation mark
	{"‘", "'"}, // left single quotation mark
	{"’", "'"}, // right single quotation mark
	{"–", "-"}, // en dash
	{"—", "-"}, // em dash
	{" ", " "}, // non-breaking space
	{"​", ""},  // zero-width space
	{"﻿", ""},  // byte order mark
}

// normalizeCharacters replaces smart-punctuation and invisible Unicode
// characters LLMs sometimes emit in place of plain ASCII, which otherwise
// defeat both strict parsing and the ASCII-oriented repair rules.
func normalizeCharacters(content string) (string, bool) {
	changed := false
	for _, r := range smartCharReplacements {
		if strings.Contains(content, r.from) {
			content = strings.ReplaceAll(content, r.from, r.to)
			changed = true
		}
	}
	return content, changed
}
