package rules

import "regexp"

// unquotedKeyRe matches a bare identifier immediately followed by a colon in
// a position where JSON requires a quoted string key, e.g. `name: "x"`.
var unquotedKeyRe = regexp.MustCompile(`([{,]\s*)([A-Za-z_$][A-Za-z0-9_$]*)(\s*:)`)

func ruleQuoteUnquotedKeys() Rule {
	return Rule{
		Name: "quote-unquoted-keys",
		Apply: func(content string, ctx Context) (string, bool, string) {
			if !unquotedKeyRe.MatchString(content) {
				return content, false, ""
			}
			fixed := unquotedKeyRe.ReplaceAllString(content, `$1"$2"$3`)
			return fixed, true, "quoted bare object key"
		},
	}
}

// missingColonRe matches a quoted key immediately followed by whitespace and
// a value-starting character with no colon between them, e.g. `"name" "x"`.
var missingColonRe = regexp.MustCompile(`("[^"\\]*(?:\\.[^"\\]*)*")\s+("|[\d{\[tfn-])`)

func ruleInsertMissingColon() Rule {
	return Rule{
		Name: "insert-missing-colon",
		Apply: func(content string, ctx Context) (string, bool, string) {
			if !missingColonRe.MatchString(content) {
				return content, false, ""
			}
			fixed := missingColonRe.ReplaceAllString(content, `$1: $2`)
			return fixed, true, "inserted missing colon after property name"
		},
	}
}

// corruptedNameAfterColonRe matches a quoted key followed by its colon, then
// a stray bareword fragment terminated by its own quote-colon, the shape an
// LLM leaves behind when it starts typing a second key or a closing quote in
// the middle of a property name (`"name":toBe": "value"` or `"a":x": "v"`).
// The whole fragment between the real key and the real value is discarded.
var corruptedNameAfterColonRe = regexp.MustCompile(`("[A-Za-z_$][A-Za-z0-9_$]*")\s*:\s*[A-Za-z_$][A-Za-z0-9_$]*"\s*:\s*`)

func ruleFixCorruptedNameAfterColon() Rule {
	return Rule{
		Name: "fix-corrupted-name-after-colon",
		Apply: func(content string, ctx Context) (string, bool, string) {
			if !corruptedNameAfterColonRe.MatchString(content) {
				return content, false, ""
			}
			fixed := corruptedNameAfterColonRe.ReplaceAllString(content, `$1: `)
			return fixed, true, "removed stray fragment between property name and value"
		},
	}
}

// corruptedValueAfterColonRe matches a colon followed by a non-numeric
// garbage prefix (stray identifier characters, backticks, underscores) that
// precedes a number, the shape left behind by a dropped code-span marker
// (`"a":_CODE\`4,` meaning `"a": 4,`).
var corruptedValueAfterColonRe = regexp.MustCompile("(:)\\s*[A-Za-z_$`][A-Za-z0-9_$`]*(-?\\d+(?:\\.\\d+)?)\\s*([,}\\]])")

func ruleFixCorruptedValueAfterColon() Rule {
	return Rule{
		Name: "fix-corrupted-value-after-colon",
		Apply: func(content string, ctx Context) (string, bool, string) {
			if !corruptedValueAfterColonRe.MatchString(content) {
				return content, false, ""
			}
			fixed := corruptedValueAfterColonRe.ReplaceAllString(content, "$1 $2$3")
			return fixed, true, "stripped stray prefix from numeric value"
		},
	}
}

// stutteredKeyRe matches a quoted key typed twice back to back ahead of its
// colon (`"name""name":`), the shape left behind when a model repeats
// itself mid-key.
var stutteredKeyRe = regexp.MustCompile(`"([A-Za-z_$][A-Za-z0-9_$]*)"\s*"([A-Za-z_$][A-Za-z0-9_$]*)"(\s*:)`)

func ruleRemoveDuplicatePropertyName() Rule {
	return Rule{
		Name: "remove-duplicate-property-name",
		Apply: func(content string, ctx Context) (string, bool, string) {
			changed := false
			fixed := stutteredKeyRe.ReplaceAllStringFunc(content, func(match string) string {
				groups := stutteredKeyRe.FindStringSubmatch(match)
				if groups[1] != groups[2] {
					return match
				}
				changed = true
				return `"` + groups[1] + `"` + groups[3]
			})
			if !changed {
				return content, false, ""
			}
			return fixed, true, "collapsed a stuttered property name"
		},
	}
}

// nonASCIIBeforeKeyRe matches a non-ASCII character (a typographic quote the
// character-normalization phase didn't recognize, a stray symbol) sitting
// directly in front of a key's opening quote.
var nonASCIIBeforeKeyRe = regexp.MustCompile(`([{,]\s*)[^\x00-\x7F]+(")`)

func ruleStripNonASCIICharBeforeKey() Rule {
	return Rule{
		Name: "strip-non-ascii-before-key",
		Apply: func(content string, ctx Context) (string, bool, string) {
			if !nonASCIIBeforeKeyRe.MatchString(content) {
				return content, false, ""
			}
			fixed := nonASCIIBeforeKeyRe.ReplaceAllString(content, "$1$2")
			return fixed, true, "removed non-ASCII character before property name"
		},
	}
}

// dashBeforeKeyRe matches a bare dash (a misplaced list-item marker) sitting
// directly in front of a key's opening quote.
var dashBeforeKeyRe = regexp.MustCompile(`([{,]\s*)-\s*(")`)

func ruleStripDashBeforeKey() Rule {
	return Rule{
		Name: "strip-dash-before-key",
		Apply: func(content string, ctx Context) (string, bool, string) {
			if !dashBeforeKeyRe.MatchString(content) {
				return content, false, ""
			}
			fixed := dashBeforeKeyRe.ReplaceAllString(content, "$1$2")
			return fixed, true, "removed stray dash before property name"
		},
	}
}

// PropertyNameGroup repairs how object keys are written: quoting bare
// identifiers, restoring a dropped colon, and cleaning up the garbage an
// LLM sometimes leaves inside or around a key.
func PropertyNameGroup() Group {
	return Group{
		Name: "property-name",
		Rules: []Rule{
			ruleFixCorruptedNameAfterColon(),
			ruleFixCorruptedValueAfterColon(),
			ruleQuoteUnquotedKeys(),
			ruleInsertMissingColon(),
			ruleRemoveDuplicatePropertyName(),
			ruleStripNonASCIICharBeforeKey(),
			ruleStripDashBeforeKey(),
		},
	}
}
