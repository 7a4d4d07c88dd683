package rules

import (
	"regexp"
	"strings"

	"github.com/dshills/jsonrepair/internal/jsonctx"
)

// invalidJSONEscapeRe matches a backslash followed by a character that is
// not one of JSON's legal escape targets (", \, /, b, f, n, r, t, u). LLMs
// frequently emit raw regex patterns like "\d+" inside JSON strings, which
// is invalid JSON but an easy, safe repair: escape the backslash itself.
var invalidJSONEscapeRe = regexp.MustCompile(`\\([^"\\/bfnrtu])`)

func ruleFixInvalidEscapes() Rule {
	return Rule{
		Name: "fix-invalid-escapes",
		Apply: func(content string, ctx Context) (string, bool, string) {
			if !invalidJSONEscapeRe.MatchString(content) {
				return content, false, ""
			}
			fixed := invalidJSONEscapeRe.ReplaceAllString(content, `\\$1`)
			return fixed, true, "escaped invalid backslash sequence"
		},
	}
}

// trailingCommaRe matches a comma followed only by whitespace and a closing
// object or array delimiter.
var trailingCommaRe = regexp.MustCompile(`,(\s*[}\]])`)

func ruleRemoveTrailingCommas() Rule {
	return Rule{
		Name: "remove-trailing-commas",
		Apply: func(content string, ctx Context) (string, bool, string) {
			sb := jsonctx.NewStringBoundary(content)
			locs := trailingCommaRe.FindAllStringSubmatchIndex(content, -1)
			if len(locs) == 0 {
				return content, false, ""
			}
			var b strings.Builder
			last := 0
			changed := false
			for _, loc := range locs {
				commaPos := loc[0]
				if sb.IsInString(commaPos) {
					continue
				}
				b.WriteString(content[last:commaPos])
				last = loc[2]
				changed = true
			}
			if !changed {
				return content, false, ""
			}
			b.WriteString(content[last:])
			return b.String(), true, "removed trailing comma before closing delimiter"
		},
	}
}

// commentLineRe matches a "// ..." line comment; commentBlockRe matches a
// "/* ... */" block comment. LLMs occasionally emit JSON5-style comments.
var commentLineRe = regexp.MustCompile(`//[^\n]*`)
var commentBlockRe = regexp.MustCompile(`(?s)/\*.*?\*/`)

func ruleStripComments() Rule {
	return Rule{
		Name: "strip-comments",
		Apply: func(content string, ctx Context) (string, bool, string) {
			sb := jsonctx.NewStringBoundary(content)
			changed := false

			strip := func(re *regexp.Regexp, s string) string {
				locs := re.FindAllStringIndex(s, -1)
				if len(locs) == 0 {
					return s
				}
				var b strings.Builder
				last := 0
				for _, loc := range locs {
					if sb.IsInString(loc[0]) {
						continue
					}
					b.WriteString(s[last:loc[0]])
					last = loc[1]
					changed = true
				}
				b.WriteString(s[last:])
				return b.String()
			}

			out := strip(commentBlockRe, content)
			out = strip(commentLineRe, out)
			if !changed {
				return content, false, ""
			}
			return out, true, "removed non-JSON comment"
		},
	}
}

// singleQuotedStringRe matches a simple 'single quoted' string with no
// embedded single quotes, the common case when an LLM uses Python/JS-style
// quoting instead of JSON's double quotes.
var singleQuotedStringRe = regexp.MustCompile(`'([^'\\]*)'`)

func ruleSingleToDoubleQuotes() Rule {
	return Rule{
		Name: "single-to-double-quotes",
		Apply: func(content string, ctx Context) (string, bool, string) {
			sb := jsonctx.NewStringBoundary(content)
			locs := singleQuotedStringRe.FindAllStringSubmatchIndex(content, -1)
			if len(locs) == 0 {
				return content, false, ""
			}
			var b strings.Builder
			last := 0
			changed := false
			for _, loc := range locs {
				start := loc[0]
				if sb.IsInString(start) {
					continue
				}
				inner := content[loc[2]:loc[3]]
				b.WriteString(content[last:start])
				b.WriteByte('"')
				b.WriteString(strings.ReplaceAll(inner, `"`, `\"`))
				b.WriteByte('"')
				last = loc[1]
				changed = true
			}
			if !changed {
				return content, false, ""
			}
			b.WriteString(content[last:])
			return b.String(), true, "converted single-quoted string to double-quoted"
		},
	}
}

// malformedBareObjectRe matches an object whose entire body is a single bare
// identifier with no colon or value (`{undefined}`, `{null}`), the shape
// left behind when a model's placeholder leaked into otherwise-empty object
// syntax. Real JSON never has a bareword directly inside braces, so the
// whole thing is replaced with an empty object.
var malformedBareObjectRe = regexp.MustCompile(`\{\s*[A-Za-z_][A-Za-z0-9_]*\s*\}`)

func ruleFixMalformedBareObject() Rule {
	return Rule{
		Name: "fix-malformed-bare-object",
		Apply: func(content string, ctx Context) (string, bool, string) {
			sb := jsonctx.NewStringBoundary(content)
			locs := malformedBareObjectRe.FindAllStringIndex(content, -1)
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
				b.WriteString(content[last:loc[0]])
				b.WriteString("{}")
				last = loc[1]
				changed = true
			}
			if !changed {
				return content, false, ""
			}
			b.WriteString(content[last:])
			return b.String(), true, "replaced malformed bare-identifier object with an empty object"
		},
	}
}

// StructuralGroup repairs JSON syntax errors: invalid escapes, trailing
// commas, single-quoted strings, and a bare identifier standing in for an
// empty object. Comment stripping is not part of this group; it runs as its
// own pipeline phase, see CommentGroup.
func StructuralGroup() Group {
	return Group{
		Name: "structural",
		Rules: []Rule{
			ruleFixInvalidEscapes(),
			ruleRemoveTrailingCommas(),
			ruleSingleToDoubleQuotes(),
			ruleFixMalformedBareObject(),
		},
	}
}

// CommentGroup strips JSON5-style comments. It is kept separate from
// StructuralGroup so the pipeline can run it as its own phase, ahead of
// character normalization and the rest of the rule library.
func CommentGroup() Group {
	return Group{
		Name:  "comments",
		Rules: []Rule{ruleStripComments()},
	}
}
