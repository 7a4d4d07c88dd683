package schemavalidate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const personSchema = `{
  "type": "object",
  "properties": {
    "name": {"type": "string"},
    "age": {"type": "integer"},
    "tags": {"type": ["array", "null"]}
  },
  "required": ["name"]
}`

func TestNew_CompilesValidSchema(t *testing.T) {
	v, err := New([]byte(personSchema))
	require.NoError(t, err)
	require.NotNil(t, v.schema)
}

func TestNew_RejectsMalformedSchemaDocument(t *testing.T) {
	_, err := New([]byte(`not a schema`))
	require.Error(t, err)
}

func TestNew_RejectsUncompilableSchema(t *testing.T) {
	_, err := New([]byte(`{"type": "not-a-real-type"}`))
	require.Error(t, err)
}

func TestValidate_PassesConformingInstance(t *testing.T) {
	v, err := New([]byte(personSchema))
	require.NoError(t, err)

	issues, err := v.Validate([]byte(`{"name": "Ada", "age": 36}`))
	require.NoError(t, err)
	require.Empty(t, issues)
}

func TestValidate_ReportsIssuesForNonConformingInstance(t *testing.T) {
	v, err := New([]byte(personSchema))
	require.NoError(t, err)

	issues, err := v.Validate([]byte(`{"age": "not-a-number"}`))
	require.NoError(t, err)
	require.NotEmpty(t, issues)
}

func TestValidate_RejectsMalformedInstanceJSON(t *testing.T) {
	v, err := New([]byte(personSchema))
	require.NoError(t, err)

	_, err = v.Validate([]byte(`{not json`))
	require.Error(t, err)
}

func TestMetadata_ExtractsPropertyNamesAndTypes(t *testing.T) {
	v, err := New([]byte(personSchema))
	require.NoError(t, err)

	metadata := v.Metadata()
	byName := make(map[string][]string, len(metadata.Properties))
	for _, p := range metadata.Properties {
		byName[p.Name] = p.Types
	}

	require.Equal(t, []string{"string"}, byName["name"])
	require.Equal(t, []string{"integer"}, byName["age"])
	require.Equal(t, []string{"array", "null"}, byName["tags"])
}

func TestMetadata_EmptyWhenSchemaHasNoProperties(t *testing.T) {
	v, err := New([]byte(`{"type": "array"}`))
	require.NoError(t, err)
	require.Empty(t, v.Metadata().Properties)
}
