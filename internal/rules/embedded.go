package rules

import (
	"regexp"
	"strings"

	"github.com/dshills/jsonrepair/internal/jsonctx"
)

// fencedBlockRe matches a complete ```...``` markdown code fence, optionally
// tagged with a language (e.g. ```json), capturing its inner content.
var fencedBlockRe = regexp.MustCompile("(?s)```(?:json5?|jsonc)?\\s*\\n?(.*?)\\n?```")

// openFenceRe matches a fence opener with no matching closer, as happens
// when a streamed LLM response is truncated mid-fence.
var openFenceRe = regexp.MustCompile("(?s)^\\s*```(?:json5?|jsonc)?\\s*\\n?")

// htmlTagRe strips simple HTML/XML-ish tags LLMs sometimes wrap output in,
// such as <result> ... </result>.
var htmlTagRe = regexp.MustCompile(`</?[a-zA-Z][a-zA-Z0-9_-]*\s*/?>`)

func ruleStripCodeFence() Rule {
	return Rule{
		Name: "strip-code-fence",
		Apply: func(content string, ctx Context) (string, bool, string) {
			if m := fencedBlockRe.FindStringSubmatch(content); m != nil {
				return m[1], true, "removed surrounding markdown code fence"
			}
			return content, false, ""
		},
	}
}

func ruleStripOpenFence() Rule {
	return Rule{
		Name: "strip-open-fence",
		Apply: func(content string, ctx Context) (string, bool, string) {
			if openFenceRe.MatchString(content) {
				return openFenceRe.ReplaceAllString(content, ""), true, "removed unterminated markdown fence opener"
			}
			return content, false, ""
		},
	}
}

func ruleStripHTMLTags() Rule {
	return Rule{
		Name: "strip-html-tags",
		Apply: func(content string, ctx Context) (string, bool, string) {
			if !htmlTagRe.MatchString(content) {
				return content, false, ""
			}
			return htmlTagRe.ReplaceAllString(content, ""), true, "removed surrounding HTML-style tags"
		},
	}
}

// ruleTrimLeadingStrayText removes any non-blank text before the first '{'
// or '[', handling cases such as "Here is the JSON you requested: {...}".
// The removed prefix is not inspected.
func ruleTrimLeadingStrayText() Rule {
	return Rule{
		Name: "trim-leading-stray-text",
		Apply: func(content string, ctx Context) (string, bool, string) {
			idx := strings.IndexAny(content, "{[")
			if idx <= 0 {
				return content, false, ""
			}
			prefix := strings.TrimSpace(content[:idx])
			if prefix == "" {
				return content, false, ""
			}
			return content[idx:], true, "removed leading non-JSON narration"
		},
	}
}

// ruleTrimTrailingStrayText removes trailing text after the last '}' or ']'
// when that tail does not itself look like JSON, handling cases such as
// "{...} Let me know if you need anything else!". A tail holding any of
// '{', '[' or '"' counts as JSON and is kept.
func ruleTrimTrailingStrayText() Rule {
	return Rule{
		Name: "trim-trailing-stray-text",
		Apply: func(content string, ctx Context) (string, bool, string) {
			idx := strings.LastIndexAny(content, "}]")
			if idx < 0 || idx == len(content)-1 {
				return content, false, ""
			}
			suffix := strings.TrimSpace(content[idx+1:])
			if suffix == "" || strings.ContainsAny(suffix, "{[\"") {
				return content, false, ""
			}
			return content[:idx+1], true, "removed trailing non-JSON narration"
		},
	}
}

// artifactKeyRe matches a quoted property key that names a model's own
// scratch output rather than the caller's data: an explicit extra_*/_llm_*/
// _ai_* prefix, or a key naming one of the reasoning-process concepts models
// leak (thought, reasoning, scratchpad, and similar).
var artifactKeyRe = regexp.MustCompile(`"((?:extra_|_llm_|_ai_)[A-Za-z0-9_]*|[A-Za-z0-9_]*(?:thought|reasoning|scratchpad|analysis|trace|chain|intermediate|working_memory|step_by_step)[A-Za-z0-9_]*)"\s*:`)

// ruleRemoveArtifactProperties deletes an entire "key": value property whose
// key names model scratch output (a chain-of-thought field, a provider
// debug marker) rather than data the caller asked for. There is no way to
// tell these apart from legitimate properties without a schema of known
// property names, so when none is supplied this removal is unconditional.
func ruleRemoveArtifactProperties() Rule {
	return Rule{
		Name: "remove-artifact-properties",
		Apply: func(content string, ctx Context) (string, bool, string) {
			locs := artifactKeyRe.FindAllStringSubmatchIndex(content, -1)
			for _, loc := range locs {
				keyStart := loc[0]
				if !jsonctx.IsInPropertyContext(content, keyStart) {
					continue
				}
				valueStart := skipJSONWhitespace(content, loc[1])
				valueEnd := jsonctx.FindValueEnd(content, valueStart)
				if valueEnd == jsonctx.NoMatch {
					continue
				}
				return removeKeyValueSpan(content, keyStart, valueEnd), true, "removed LLM artifact property"
			}
			return content, false, ""
		},
	}
}

func skipJSONWhitespace(content string, pos int) int {
	for pos < len(content) && isJSONSpace(content[pos]) {
		pos++
	}
	return pos
}

func isJSONSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// removeKeyValueSpan deletes content[start:end] along with whichever
// neighboring comma keeps the object well-formed: a trailing comma if the
// removed property had a sibling after it, otherwise a leading comma if it
// had one before it.
func removeKeyValueSpan(content string, start, end int) string {
	j := skipJSONWhitespace(content, end)
	if j < len(content) && content[j] == ',' {
		return content[:start] + content[j+1:]
	}
	i := start
	for i > 0 && isJSONSpace(content[i-1]) {
		i--
	}
	if i > 0 && content[i-1] == ',' {
		return content[:i-1] + content[end:]
	}
	return content[:start] + content[end:]
}

// EmbeddedContentGroup strips non-JSON wrapper content: markdown fences,
// HTML-ish tags, leading/trailing prose, and LLM-artifact properties
// embedded inside the object itself.
func EmbeddedContentGroup() Group {
	return Group{
		Name: "embedded-content",
		Rules: []Rule{
			ruleStripCodeFence(),
			ruleStripOpenFence(),
			ruleStripHTMLTags(),
			ruleTrimLeadingStrayText(),
			ruleTrimTrailingStrayText(),
			ruleRemoveArtifactProperties(),
		},
	}
}
