package jsonrepair

import (
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/dshills/jsonrepair/internal/jsonvalue"
	"github.com/dshills/jsonrepair/internal/validate"
)

// ParseAndValidate is the full text-to-value pipeline: it validates content
// at the boundary, sanitizes raw text until it parses, and repairs and
// validates the result against options.Schema (if any). Use this on
// anything that might still be raw LLM output; RepairAndValidate expects
// already-parsed data and skips straight to repair.
func ParseAndValidate(content any, context LLMContext, options CompletionOptions, loggingEnabled bool, config SanitizerConfig) (*JsonProcessorResult, error) {
	text, ok := content.(string)
	if !ok {
		return nil, boundaryError(context, "is not a string")
	}
	if !utf8.ValidString(text) {
		return nil, boundaryError(context, "contains malformed Unicode")
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, boundaryError(context, "is just an empty string")
	}
	if !strings.ContainsAny(text, "{[") {
		return nil, boundaryError(context, "contains no JSON structure and appears to be plain text")
	}

	effectiveConfig := validate.MergeConfig(options.SanitizerConfig, config)

	value, diagnostics, err := validate.Parse(text, options.Schema, effectiveConfig)
	if err != nil {
		logDiagnostics(loggingEnabled, context, diagnostics)
		return nil, &JsonProcessingError{
			Kind:    ErrorKindUnparseable,
			Message: boundaryMessage(context, "could not be repaired into parseable JSON"),
			Cause:   err,
		}
	}
	if options.Schema == nil && value.Kind != jsonvalue.KindObject && value.Kind != jsonvalue.KindArray {
		return nil, &JsonProcessingError{
			Kind:    ErrorKindUnparseable,
			Message: boundaryMessage(context, "expected a JSON object or array, got a primitive value"),
		}
	}

	outcome, err := validate.RepairValue(value, options.Schema, effectiveConfig)
	if err != nil {
		return nil, &JsonProcessingError{Kind: ErrorKindValidatorError, Message: "schema validator returned an error", Cause: err}
	}
	logDiagnostics(loggingEnabled, context, diagnostics)

	return &JsonProcessorResult{
		Value:       jsonvalue.ToAny(outcome.Value),
		Issues:      outcome.Issues,
		Diagnostics: diagnostics,
		Rounds:      outcome.Rounds,
	}, nil
}

// RepairAndValidate operates on data that is already parsed (a Go value
// decoded by some other means): it skips parsing entirely and runs straight
// to schema-aware repair and validation, per repairAndValidate's contract of
// never touching raw text.
func RepairAndValidate(data any, validator Validator, config SanitizerConfig) (*JsonProcessorResult, error) {
	value, err := jsonvalue.FromAny(data)
	if err != nil {
		return nil, &JsonProcessingError{Kind: ErrorKindEncodingError, Message: "converting data to a repairable value", Cause: err}
	}
	outcome, err := validate.RepairValue(value, validator, config)
	if err != nil {
		return nil, &JsonProcessingError{Kind: ErrorKindValidatorError, Message: "schema validator returned an error", Cause: err}
	}
	return &JsonProcessorResult{
		Value:  jsonvalue.ToAny(outcome.Value),
		Issues: outcome.Issues,
		Rounds: outcome.Rounds,
	}, nil
}

// boundaryError wraps a boundary-validation failure as a JsonProcessingError
// with the resource-prefixed message every PARSE error carries.
func boundaryError(context LLMContext, message string) error {
	return &JsonProcessingError{Kind: ErrorKindUnparseable, Message: boundaryMessage(context, message)}
}

func boundaryMessage(context LLMContext, message string) string {
	return fmt.Sprintf("LLM response for resource '%s' %s", context.Resource, message)
}

func logDiagnostics(enabled bool, context LLMContext, diagnostics []string) {
	if !enabled || len(diagnostics) == 0 {
		return
	}
	log.Printf("jsonrepair: resource %q repaired (%s): %v", context.Resource, context.Purpose, diagnostics)
}
