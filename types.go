// Package jsonrepair turns malformed, LLM-produced JSON text into a parsed
// value that satisfies a caller-supplied schema, repairing the common ways
// model output goes wrong along the way: markdown fences, trailing prose,
// dropped commas, unquoted keys, truncated output, and schema-level
// mismatches like a quoted number or a typo'd property name.
package jsonrepair

import (
	"github.com/dshills/jsonrepair/internal/rules"
	"github.com/dshills/jsonrepair/internal/transform"
	"github.com/dshills/jsonrepair/internal/validate"
)

// ValidationIssue describes one way a parsed value failed schema
// validation.
type ValidationIssue = validate.ValidationIssue

// PropertySchema describes what a schema says about a single object
// property: its name and its declared JSON Schema type(s).
type PropertySchema = transform.PropertySchema

// SchemaMetadata is the subset of a caller's JSON Schema the repair
// transforms need in order to fix schema-level mismatches.
type SchemaMetadata = validate.SchemaMetadata

// Rule is a single custom text-repair step a caller can inject into the
// sanitizer's rule library.
type Rule = rules.Rule

// Validator is implemented by a caller-supplied schema checker. jsonrepair
// never bundles a specific schema engine for this interface; see the
// schemavalidate package for a ready-made JSON Schema implementation.
type Validator = validate.Validator

// OutputFormat is what a caller told its model to produce: JSON worth
// validating against a schema, or free-form text that ParseAndValidate has
// no business touching.
type OutputFormat string

const (
	OutputFormatJSON OutputFormat = "json"
	OutputFormatText OutputFormat = "text"
)

// LLMContext records the origin of a piece of LLM output: used only for
// attribution in diagnostics and in the resource-prefixed error messages
// ParseAndValidate returns, never to branch repair behavior.
type LLMContext struct {
	Resource     string
	Purpose      string
	ModelKey     string
	OutputFormat OutputFormat
}

// CompletionOptions describes the call that produced the content being
// repaired. OutputFormatJSON must carry a Schema; OutputFormatText must
// not, since there's nothing to validate free-form text against.
type CompletionOptions struct {
	OutputFormat     OutputFormat
	Schema           Validator
	HasComplexSchema bool
	SanitizerConfig  SanitizerConfig
}

// SanitizerConfig controls how aggressively the repair pipeline runs.
type SanitizerConfig = validate.SanitizerConfig

// JsonProcessorResult is the result of ParseAndValidate and
// RepairAndValidate: the final decoded value, every issue the validator
// still reports (empty when fully valid), the sanitizer diagnostics
// collected while repairing (filled by ParseAndValidate only), and how many
// test-fix-test rounds were needed.
type JsonProcessorResult struct {
	Value       any
	Issues      []ValidationIssue
	Diagnostics []string
	Rounds      int
}
