package jsonrepair

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// These golden cases are representative LLM failure modes: fenced output,
// narration wrapping, dropped commas, unquoted keys, truncation, and a
// schema-level mismatch needing a coercion rather than a text fix.

const goldenFencedWithTrailingComma = "```json\n{\n  \"name\": \"Ada Lovelace\",\n  \"tags\": [\"math\", \"computing\",]\n}\n```"

const goldenNarrationWrapped = `Sure! Here's the JSON you asked for:

{"status": "ok", "count": 3}

Let me know if you need anything else.`

const goldenUnquotedKeysAndSingleQuotes = `{name: 'Grace Hopper', role: 'admiral'}`

const goldenTruncatedMidArray = `{"results": [{"id": 1}, {"id": 2}, {"id": 3`

const goldenMissingCommaBetweenStrings = `{"items": ["a" "b" "c"]}`

const goldenArtifactPropertyAndTrailingComma = `{"_llm_confidence": 0.94, "answer": 42,}`

func parseGolden(t *testing.T, text string, schema Validator) *JsonProcessorResult {
	t.Helper()
	options := CompletionOptions{OutputFormat: OutputFormatJSON, Schema: schema}
	result, err := ParseAndValidate(text, LLMContext{Resource: "golden-test"}, options, false, SanitizerConfig{})
	require.NoError(t, err)
	return result
}

func TestGolden_FencedWithTrailingComma(t *testing.T) {
	result := parseGolden(t, goldenFencedWithTrailingComma, nil)
	m := result.Value.(map[string]any)
	require.Equal(t, "Ada Lovelace", m["name"])
	tags := m["tags"].([]any)
	require.Equal(t, []any{"math", "computing"}, tags)
}

func TestGolden_NarrationWrapped(t *testing.T) {
	result := parseGolden(t, goldenNarrationWrapped, nil)
	m := result.Value.(map[string]any)
	require.Equal(t, "ok", m["status"])
	require.Equal(t, float64(3), m["count"])
}

func TestGolden_UnquotedKeysAndSingleQuotes(t *testing.T) {
	result := parseGolden(t, goldenUnquotedKeysAndSingleQuotes, nil)
	m := result.Value.(map[string]any)
	require.Equal(t, "Grace Hopper", m["name"])
	require.Equal(t, "admiral", m["role"])
}

func TestGolden_TruncatedMidArray(t *testing.T) {
	result := parseGolden(t, goldenTruncatedMidArray, nil)
	m := result.Value.(map[string]any)
	results := m["results"].([]any)
	require.GreaterOrEqual(t, len(results), 2)
	require.True(t, HasSignificantRepairs(result.Diagnostics))
}

func TestGolden_MissingCommaBetweenStrings(t *testing.T) {
	result := parseGolden(t, goldenMissingCommaBetweenStrings, nil)
	m := result.Value.(map[string]any)
	items := m["items"].([]any)
	require.Equal(t, []any{"a", "b", "c"}, items)
}

func TestGolden_ArtifactPropertyAndTrailingComma(t *testing.T) {
	result := parseGolden(t, goldenArtifactPropertyAndTrailingComma, nil)
	m := result.Value.(map[string]any)
	require.Equal(t, float64(42), m["answer"])
	_, hasArtifact := m["_llm_confidence"]
	require.False(t, hasArtifact)
}

func TestGolden_SchemaCoercionOfQuotedNumber(t *testing.T) {
	validator := stubValidator{
		issues:   []ValidationIssue{{Path: "count", Message: "expected integer, got string"}},
		metadata: SchemaMetadata{Properties: []PropertySchema{{Name: "count", Types: []string{"integer"}}}},
	}
	result := parseGolden(t, `{"count": "42"}`, validator)
	m := result.Value.(map[string]any)
	require.Equal(t, float64(42), m["count"])
}

func TestGolden_CorruptedPropertySyntax(t *testing.T) {
	result := parseGolden(t, `{"name":toBe": "apiRequestBodyAsJson"}`, nil)
	m := result.Value.(map[string]any)
	require.Equal(t, "apiRequestBodyAsJson", m["name"])
}

func TestGolden_KnownYAMLLikePropertySurvivesStraySuppression(t *testing.T) {
	validator := stubValidator{
		metadata: SchemaMetadata{Properties: []PropertySchema{
			{Name: "my-yaml-key", Types: []string{"string"}},
			{Name: "items", Types: []string{"array"}},
		}},
	}
	result := parseGolden(t, `{"my-yaml-key":"value","items":[1]}`, validator)
	m := result.Value.(map[string]any)
	require.Equal(t, "value", m["my-yaml-key"])
	items := m["items"].([]any)
	require.Equal(t, []any{float64(1)}, items)
}
