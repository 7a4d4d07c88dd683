package validate

import (
	"testing"

	"github.com/dshills/jsonrepair/internal/rules"
	"github.com/dshills/jsonrepair/internal/transform"
)

type fakeValidator struct {
	metadata    SchemaMetadata
	issuesQueue [][]ValidationIssue
	calls       int
}

func (f *fakeValidator) Metadata() SchemaMetadata { return f.metadata }

func (f *fakeValidator) Validate(data []byte) ([]ValidationIssue, error) {
	if f.calls >= len(f.issuesQueue) {
		return nil, nil
	}
	issues := f.issuesQueue[f.calls]
	f.calls++
	return issues, nil
}

func TestRun_NoValidatorJustSanitizes(t *testing.T) {
	out, err := Run("```json\n{\"a\": 1,}\n```", nil, SanitizerConfig{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, ok := out.Value.Get("a")
	if !ok || v.Number != 1 {
		t.Errorf("expected a=1, got %+v", out.Value)
	}
}

func TestRun_UnrepairableInputReturnsError(t *testing.T) {
	_, err := Run("not json at all", nil, SanitizerConfig{})
	if err == nil {
		t.Fatalf("expected an error for unrepairable input")
	}
}

func TestRun_ValidatorPassesImmediately(t *testing.T) {
	fv := &fakeValidator{
		metadata:    SchemaMetadata{Properties: []transform.PropertySchema{{Name: "name", Types: []string{"string"}}}},
		issuesQueue: [][]ValidationIssue{{}},
	}
	out, err := Run(`{"name": "Alice"}`, fv, SanitizerConfig{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Issues) != 0 {
		t.Errorf("expected no issues, got %v", out.Issues)
	}
	if out.Rounds != 1 {
		t.Errorf("expected exactly one round, got %d", out.Rounds)
	}
}

func TestRun_RetriesOnIssuesThenSucceeds(t *testing.T) {
	fv := &fakeValidator{
		metadata: SchemaMetadata{Properties: []transform.PropertySchema{{Name: "count", Types: []string{"integer"}}}},
		issuesQueue: [][]ValidationIssue{
			{{Path: "count", Message: "wrong type"}},
			{},
		},
	}
	out, err := Run(`{"count": "3"}`, fv, SanitizerConfig{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Rounds != 2 {
		t.Errorf("expected two rounds, got %d", out.Rounds)
	}
	if len(out.Issues) != 0 {
		t.Errorf("expected issues resolved by second round, got %v", out.Issues)
	}
}

func TestRun_GivesUpAfterOneRetry(t *testing.T) {
	persistent := []ValidationIssue{{Path: "x", Message: "still wrong"}}
	fv := &fakeValidator{
		metadata:    SchemaMetadata{},
		issuesQueue: [][]ValidationIssue{persistent, persistent, persistent, persistent},
	}
	out, err := Run(`{"x": 1}`, fv, SanitizerConfig{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Issues) == 0 {
		t.Errorf("expected unresolved issues to be reported, not silently dropped")
	}
	if out.Rounds != 2 {
		t.Errorf("expected exactly one validate and one transform-and-revalidate round, got %d", out.Rounds)
	}
}

func TestRun_RejectsEmptyObject(t *testing.T) {
	fv := &fakeValidator{metadata: SchemaMetadata{}}
	out, err := Run(`{}`, fv, SanitizerConfig{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Issues) == 0 {
		t.Errorf("expected an empty object to be rejected with a synthetic issue")
	}
	if fv.calls != 0 {
		t.Errorf("expected empty data to be rejected before ever reaching the validator, got %d calls", fv.calls)
	}
}

func TestMergeConfig_ConcatenatesCustomRules(t *testing.T) {
	schemaDerived := SanitizerConfig{CustomRules: []rules.Rule{{Name: "a"}}}
	override := SanitizerConfig{CustomRules: []rules.Rule{{Name: "b"}}, MaxDiagnostics: 5}
	merged := MergeConfig(schemaDerived, override)
	if len(merged.CustomRules) != 2 || merged.CustomRules[0].Name != "a" || merged.CustomRules[1].Name != "b" {
		t.Errorf("expected concatenated rules [a b], got %+v", merged.CustomRules)
	}
	if merged.MaxDiagnostics != 5 {
		t.Errorf("expected override MaxDiagnostics to win, got %d", merged.MaxDiagnostics)
	}
}

func TestRun_NoValidatorAppliesConfigDrivenNumericCoercion(t *testing.T) {
	out, err := Run(`{"count": "3"}`, nil, SanitizerConfig{NumericProperties: []string{"count"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	count, _ := out.Value.Get("count")
	if count.Number != 3 {
		t.Errorf("expected count coerced to number 3 via config alone, got %+v", count)
	}
}

func TestMergeConfig_MergesNewFields(t *testing.T) {
	schemaDerived := SanitizerConfig{
		KnownProperties:      []string{"a"},
		PropertyNameMappings: map[string]string{"old": "new"},
	}
	override := SanitizerConfig{
		KnownProperties:      []string{"b"},
		PropertyNameMappings: map[string]string{"old2": "new2"},
	}
	merged := MergeConfig(schemaDerived, override)
	if len(merged.KnownProperties) != 2 || merged.KnownProperties[0] != "a" || merged.KnownProperties[1] != "b" {
		t.Errorf("expected concatenated known properties [a b], got %v", merged.KnownProperties)
	}
	if merged.PropertyNameMappings["old"] != "new" || merged.PropertyNameMappings["old2"] != "new2" {
		t.Errorf("expected both mapping entries present, got %v", merged.PropertyNameMappings)
	}
}

func TestMergeConfig_OverrideZeroValueDoesNotClobber(t *testing.T) {
	schemaDerived := SanitizerConfig{MaxDiagnostics: 10}
	override := SanitizerConfig{}
	merged := MergeConfig(schemaDerived, override)
	if merged.MaxDiagnostics != 10 {
		t.Errorf("expected schema-derived MaxDiagnostics preserved when override is zero, got %d", merged.MaxDiagnostics)
	}
}
