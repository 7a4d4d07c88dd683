// Package validate orchestrates the sanitizer and the schema-fixing
// transforms into a single test-fix-test loop: sanitize the raw text until
// it parses, validate the result, and, only if the caller's validator
// reports issues, apply the schema-aware fixes and validate once more
// before giving up.
package validate

import (
	"fmt"

	"github.com/dshills/jsonrepair/internal/jsonvalue"
	"github.com/dshills/jsonrepair/internal/rules"
	"github.com/dshills/jsonrepair/internal/sanitize"
	"github.com/dshills/jsonrepair/internal/transform"
)

// ValidationIssue describes one way the parsed value failed schema
// validation.
type ValidationIssue struct {
	Path    string
	Message string
}

// SchemaMetadata is the subset of a caller's JSON Schema the transforms
// need: every known property name and its declared type(s).
type SchemaMetadata struct {
	Properties []transform.PropertySchema
}

// Validator is implemented by a caller-supplied schema checker. Repair
// never hardcodes a schema engine; it only calls back into whatever the
// caller plugged in.
type Validator interface {
	Validate(data []byte) ([]ValidationIssue, error)
	Metadata() SchemaMetadata
}

// SanitizerConfig controls how aggressively the pipeline repairs input and
// carries the domain vocabulary a caller can supply independent of (or
// layered on top of) a Validator's own schema metadata.
type SanitizerConfig struct {
	CustomRules       []rules.Rule
	MaxDiagnostics    int
	DisableTransforms bool

	// KnownProperties suppresses schema-unaware removal of keys that
	// happen to match the caller's own property names (YAML-like stray-key
	// detection, property-name typo correction); merged with whatever a
	// Validator's own Metadata() already reports.
	KnownProperties []string
	// NumericProperties names properties coerceNumericProperties should
	// convert from a numeric string literal to a number, independent of
	// whether a Validator is supplied.
	NumericProperties []string
	// ArrayPropertyNames names properties coerceStringToArray should
	// replace with an empty array when the model emitted a bare string.
	ArrayPropertyNames []string
	// PropertyNameMappings is an explicit old-name -> new-name rename
	// table, applied unconditionally ahead of the fuzzy-match typo
	// correction below.
	PropertyNameMappings map[string]string
	// PropertyTypoCorrections is an explicit misspelling -> correct-name
	// table consulted by fixCommonPropertyNameTypos before it falls back
	// to closest-match against KnownProperties.
	PropertyTypoCorrections map[string]string
	// PackageNamePrefixReplacements and PackageNameTypoPatterns are
	// domain-legacy string replacement tables for string values that hold
	// package/import identifiers (e.g. a Java package that moved, or a
	// common misspelling of one); a no-op when left empty.
	PackageNamePrefixReplacements map[string]string
	PackageNameTypoPatterns       map[string]string
}

// MergeConfig combines a schema-derived default configuration with a
// caller-supplied override: scalar fields (MaxDiagnostics,
// DisableTransforms) take the override's value when it sets one; slice
// fields are concatenated schema-derived-first; map fields are merged with
// the override's entries taking precedence per key, so neither side's
// configuration is silently dropped.
func MergeConfig(schemaDerived, override SanitizerConfig) SanitizerConfig {
	merged := schemaDerived
	merged.CustomRules = append(append([]rules.Rule{}, schemaDerived.CustomRules...), override.CustomRules...)
	merged.KnownProperties = append(append([]string{}, schemaDerived.KnownProperties...), override.KnownProperties...)
	merged.NumericProperties = append(append([]string{}, schemaDerived.NumericProperties...), override.NumericProperties...)
	merged.ArrayPropertyNames = append(append([]string{}, schemaDerived.ArrayPropertyNames...), override.ArrayPropertyNames...)
	merged.PropertyNameMappings = mergeStringMaps(schemaDerived.PropertyNameMappings, override.PropertyNameMappings)
	merged.PropertyTypoCorrections = mergeStringMaps(schemaDerived.PropertyTypoCorrections, override.PropertyTypoCorrections)
	merged.PackageNamePrefixReplacements = mergeStringMaps(schemaDerived.PackageNamePrefixReplacements, override.PackageNamePrefixReplacements)
	merged.PackageNameTypoPatterns = mergeStringMaps(schemaDerived.PackageNameTypoPatterns, override.PackageNameTypoPatterns)
	if override.MaxDiagnostics != 0 {
		merged.MaxDiagnostics = override.MaxDiagnostics
	}
	if override.DisableTransforms {
		merged.DisableTransforms = true
	}
	return merged
}

func mergeStringMaps(base, override map[string]string) map[string]string {
	if len(base) == 0 && len(override) == 0 {
		return nil
	}
	merged := make(map[string]string, len(base)+len(override))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range override {
		merged[k] = v
	}
	return merged
}

// Outcome is the result of running the full sanitize -> transform ->
// validate loop.
type Outcome struct {
	Value       *jsonvalue.Value
	Diagnostics []string
	Issues      []ValidationIssue
	Rounds      int
}

// Parse sanitizes content until it parses as JSON, returning the parsed
// value and the sanitizer's diagnostics. It performs no schema validation
// and applies no schema-fixing transforms; callers that want the full
// repair-and-validate pipeline should follow a successful Parse with
// RepairValue.
func Parse(content string, validator Validator, config SanitizerConfig) (*jsonvalue.Value, []string, error) {
	var metadata SchemaMetadata
	if validator != nil {
		metadata = validator.Metadata()
	}
	sanitized := sanitize.Run(content, config.CustomRules, config.MaxDiagnostics, allKnownPropertyNames(metadata, config))
	if !sanitized.Parsed {
		return nil, sanitized.Diagnostic, fmt.Errorf("validate: input could not be repaired into parseable JSON")
	}
	return sanitized.Value, sanitized.Diagnostic, nil
}

// Run sanitizes content until it parses, then repairs and validates the
// parsed value per RepairValue's single-round contract.
func Run(content string, validator Validator, config SanitizerConfig) (Outcome, error) {
	value, diagnostics, err := Parse(content, validator, config)
	if err != nil {
		return Outcome{Diagnostics: diagnostics}, err
	}
	outcome, err := RepairValue(value, validator, config)
	outcome.Diagnostics = diagnostics
	return outcome, err
}

// RepairValue implements the validation orchestrator's repairAndValidate
// contract on an already-parsed value: it never sanitizes or parses text.
// It rejects degenerate data outright, validates once, and only on failure
// applies the schema-fixing transforms and validates a second time —
// exactly one repair-and-revalidate round, not a retry loop. With no
// validator it does not validate: it applies the transforms once and
// reports one round.
func RepairValue(value *jsonvalue.Value, validator Validator, config SanitizerConfig) (Outcome, error) {
	if isEmptyData(value) {
		return Outcome{
			Value:  value,
			Issues: []ValidationIssue{{Message: "value is null, an empty object, or an empty array"}},
		}, nil
	}

	var metadata SchemaMetadata
	if validator != nil {
		metadata = validator.Metadata()
	}
	schema := effectiveSchema(metadata, config)

	if validator == nil {
		if !config.DisableTransforms {
			applyTransforms(value, schema, config)
		}
		return Outcome{Value: value, Rounds: 1}, nil
	}

	issues, err := validateValue(value, validator)
	if err != nil {
		return Outcome{Value: value}, err
	}
	if len(issues) == 0 {
		return Outcome{Value: value, Rounds: 1}, nil
	}

	if !config.DisableTransforms {
		applyTransforms(value, schema, config)
	}
	issues, err = validateValue(value, validator)
	if err != nil {
		return Outcome{Value: value, Issues: issues}, err
	}
	return Outcome{Value: value, Issues: issues, Rounds: 2}, nil
}

func validateValue(value *jsonvalue.Value, validator Validator) ([]ValidationIssue, error) {
	encoded, err := jsonvalue.Encode(value)
	if err != nil {
		return nil, fmt.Errorf("validate: re-encoding value: %w", err)
	}
	issues, err := validator.Validate(encoded)
	if err != nil {
		return nil, fmt.Errorf("validate: schema validator: %w", err)
	}
	return issues, nil
}

// isEmptyData reports whether value is JSON null, an empty object, or an
// empty array: degenerate input repairAndValidate rejects outright rather
// than spending a validate/transform round on it.
func isEmptyData(value *jsonvalue.Value) bool {
	if value == nil || value.Kind == jsonvalue.KindNull {
		return true
	}
	if value.Kind == jsonvalue.KindObject && len(value.Members) == 0 {
		return true
	}
	if value.Kind == jsonvalue.KindArray && len(value.Array) == 0 {
		return true
	}
	return false
}

// applyTransforms runs the schema-fixing transforms in the order spec'd by
// the validation orchestrator: the domain-neutral array-truncation trim and
// legacy config-driven renames run regardless of whether a schema is
// present; the remaining five transforms need at least one known property
// to have anything to act on.
func applyTransforms(value *jsonvalue.Value, schema transform.ObjectSchema, config SanitizerConfig) {
	transform.RemoveIncompleteArrayItems(value)
	transform.ApplyPropertyNameMappings(value, config.PropertyNameMappings)
	transform.FixPackageNames(value, config.PackageNamePrefixReplacements, config.PackageNameTypoPatterns)
	if len(schema.Properties) == 0 {
		return
	}
	transform.CoerceStringToArray(value, schema)
	transform.ConvertNullToUndefined(value, schema)
	transform.FixCommonPropertyNameTypos(value, schema, config.PropertyTypoCorrections)
	transform.CoerceNumericProperties(value, schema)
	if unwrapped := transform.UnwrapJSONSchemaStructure(value); unwrapped != value {
		*value = *unwrapped
	}
}

// effectiveSchema merges a Validator's own schema metadata with the
// caller-supplied config's KnownProperties/ArrayPropertyNames/
// NumericProperties, so CoerceStringToArray/CoerceNumericProperties/typo
// correction can be driven by domain config even when no Validator is
// supplied at all, per the configuration-precedence design note: derived
// metadata first, config layered on top.
func effectiveSchema(metadata SchemaMetadata, config SanitizerConfig) transform.ObjectSchema {
	byName := make(map[string]*transform.PropertySchema)
	var order []string
	entry := func(name string) *transform.PropertySchema {
		if p, ok := byName[name]; ok {
			return p
		}
		p := &transform.PropertySchema{Name: name}
		byName[name] = p
		order = append(order, name)
		return p
	}
	for _, p := range metadata.Properties {
		target := entry(p.Name)
		target.Types = append(target.Types, p.Types...)
	}
	for _, name := range config.KnownProperties {
		entry(name)
	}
	for _, name := range config.ArrayPropertyNames {
		target := entry(name)
		target.Types = append(target.Types, "array")
	}
	for _, name := range config.NumericProperties {
		target := entry(name)
		target.Types = append(target.Types, "number")
	}
	props := make([]transform.PropertySchema, 0, len(order))
	for _, name := range order {
		props = append(props, *byName[name])
	}
	return transform.ObjectSchema{Properties: props}
}

// allKnownPropertyNames unions a Validator's own schema property names with
// config.KnownProperties, for threading into the sanitizer's schema-aware
// stray-key detectors ahead of parsing.
func allKnownPropertyNames(metadata SchemaMetadata, config SanitizerConfig) []string {
	seen := make(map[string]bool)
	var names []string
	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		names = append(names, name)
	}
	for _, p := range metadata.Properties {
		add(p.Name)
	}
	for _, name := range config.KnownProperties {
		add(name)
	}
	return names
}
