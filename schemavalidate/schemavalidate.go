// Package schemavalidate provides a ready-made jsonrepair.Validator backed
// by a real JSON Schema document, for callers who don't want to write their
// own schema engine adapter. It validates instances with
// santhosh-tekuri/jsonschema/v6 and derives the property metadata jsonrepair's
// transforms need with tidwall/gjson, reading the schema document itself
// (not the data being validated) as a flat, read-only key/value structure.
package schemavalidate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/tidwall/gjson"

	"github.com/dshills/jsonrepair/internal/transform"
	"github.com/dshills/jsonrepair/internal/validate"
)

// Validator validates instances against a single compiled JSON Schema
// document and reports the schema's top-level object properties as
// jsonrepair metadata.
type Validator struct {
	schema     *jsonschema.Schema
	properties []transform.PropertySchema
}

// New compiles schemaJSON (a JSON Schema document, itself JSON text) and
// returns a Validator for it.
func New(schemaJSON []byte) (*Validator, error) {
	var doc any
	if err := json.Unmarshal(schemaJSON, &doc); err != nil {
		return nil, fmt.Errorf("schemavalidate: parsing schema document: %w", err)
	}

	const resourceURL = "jsonrepair://schema.json"
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(resourceURL, doc); err != nil {
		return nil, fmt.Errorf("schemavalidate: adding schema resource: %w", err)
	}
	schema, err := compiler.Compile(resourceURL)
	if err != nil {
		return nil, fmt.Errorf("schemavalidate: compiling schema: %w", err)
	}

	return &Validator{
		schema:     schema,
		properties: extractProperties(string(schemaJSON)),
	}, nil
}

// Validate parses data as JSON and checks it against the compiled schema.
func (v *Validator) Validate(data []byte) ([]validate.ValidationIssue, error) {
	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return nil, fmt.Errorf("schemavalidate: instance is not valid JSON: %w", err)
	}
	if err := v.schema.Validate(instance); err != nil {
		return issuesFromError(err), nil
	}
	return nil, nil
}

// Metadata reports the schema's top-level object properties and their
// declared types.
func (v *Validator) Metadata() validate.SchemaMetadata {
	return validate.SchemaMetadata{Properties: v.properties}
}

// extractProperties walks a JSON Schema document's top-level
// "properties" member with gjson, reading it as a flat document rather
// than decoding it into the mutable value tree jsonrepair itself builds for
// instances.
func extractProperties(schemaJSON string) []transform.PropertySchema {
	props := gjson.Get(schemaJSON, "properties")
	if !props.Exists() || !props.IsObject() {
		return nil
	}
	var out []transform.PropertySchema
	props.ForEach(func(key, value gjson.Result) bool {
		out = append(out, transform.PropertySchema{
			Name:  key.String(),
			Types: propertyTypes(value),
		})
		return true
	})
	return out
}

// propertyTypes reads a property schema's "type" member, which JSON Schema
// allows to be either a single string or an array of strings.
func propertyTypes(propertySchema gjson.Result) []string {
	typeField := propertySchema.Get("type")
	if !typeField.Exists() {
		return nil
	}
	if typeField.IsArray() {
		var types []string
		for _, t := range typeField.Array() {
			types = append(types, t.String())
		}
		return types
	}
	return []string{typeField.String()}
}

// issuesFromError flattens a jsonschema validation error into one
// ValidationIssue per reported line; the v6 error tree's Error() already
// renders each violation with its instance location on its own line.
func issuesFromError(err error) []validate.ValidationIssue {
	lines := strings.Split(err.Error(), "\n")
	issues := make([]validate.ValidationIssue, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		issues = append(issues, validate.ValidationIssue{Message: line})
	}
	if len(issues) == 0 {
		issues = append(issues, validate.ValidationIssue{Message: err.Error()})
	}
	return issues
}
