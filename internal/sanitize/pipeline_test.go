package sanitize

import (
	"strings"
	"testing"

	"github.com/dshills/jsonrepair/internal/rules"
)

func customRulesForTest() []rules.Rule {
	return []rules.Rule{
		{
			Name: "redact-test-marker",
			Apply: func(content string, ctx rules.Context) (string, bool, string) {
				if !strings.Contains(content, "REDACT_ME") {
					return content, false, ""
				}
				return strings.ReplaceAll(content, "REDACT_ME", "redacted"), true, "redacted test marker"
			},
		},
	}
}

func TestRun_AlreadyValidJSON(t *testing.T) {
	r := Run(`{"a": 1}`, nil, 0, nil)
	if !r.Parsed {
		t.Fatalf("expected already-valid JSON to parse")
	}
	if len(r.Diagnostic) != 0 {
		t.Errorf("expected no diagnostics for already-valid JSON, got %v", r.Diagnostic)
	}
}

func TestRun_FencedAndTrailingComma(t *testing.T) {
	input := "```json\n{\"a\": 1, \"b\": 2,}\n```"
	r := Run(input, nil, 0, nil)
	if !r.Parsed {
		t.Fatalf("expected repaired JSON to parse, got content %q", r.Content)
	}
	v, ok := r.Value.Get("a")
	if !ok || v.Number != 1 {
		t.Errorf("expected a=1, got %+v", r.Value)
	}
	if len(r.Diagnostic) == 0 {
		t.Errorf("expected diagnostics to be recorded")
	}
}

func TestRun_NarrationWrapper(t *testing.T) {
	input := `Sure, here is the JSON you asked for: {"result": "ok"} Let me know if you need anything else!`
	r := Run(input, nil, 0, nil)
	if !r.Parsed {
		t.Fatalf("expected narration-wrapped JSON to parse, got content %q", r.Content)
	}
}

func TestRun_SmartQuotesAndTokenArtifacts(t *testing.T) {
	input := "<|im_start|>assistant\n{“a”: 1}<|im_end|>"
	r := Run(input, nil, 0, nil)
	if !r.Parsed {
		t.Fatalf("expected smart-quoted JSON with token artifacts to parse, got content %q", r.Content)
	}
}

func TestRun_TruncatedOutput(t *testing.T) {
	input := `{"a": 1, "b": [1, 2, 3`
	r := Run(input, nil, 0, nil)
	if !r.Parsed {
		t.Fatalf("expected truncated JSON to be closed and parsed, got content %q", r.Content)
	}
}

func TestRun_UnrepairableInput(t *testing.T) {
	r := Run("this is not JSON at all and has no braces", nil, 0, nil)
	if r.Parsed {
		t.Fatalf("expected unrepairable input to remain unparsed")
	}
}

func TestRun_CustomRuleApplied(t *testing.T) {
	input := `{"a": 1, "b": "REDACT_ME", "c": ["x" "y"]}`
	r := Run(input, customRulesForTest(), 0, nil)
	if !r.Parsed {
		t.Fatalf("expected JSON to parse, got content %q", r.Content)
	}
	v, _ := r.Value.Get("b")
	if v.Str == "REDACT_ME" {
		t.Errorf("expected custom rule to have rewritten the value, got %q", v.Str)
	}
}
