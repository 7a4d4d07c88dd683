package jsonrepair

import "fmt"

// ErrorKind classifies why repair or validation failed.
type ErrorKind string

const (
	// ErrorKindUnparseable means the input was rejected as not JSON: every
	// sanitizer phase ran and the text still would not parse, the input
	// failed a boundary check (not a string, malformed Unicode, empty, or
	// no JSON structure at all), or it parsed to a top-level primitive with
	// no schema to validate against.
	ErrorKindUnparseable ErrorKind = "unparseable"
	// ErrorKindValidatorError means the caller-supplied Validator itself
	// returned an error (a bug in the schema document, not the input).
	ErrorKindValidatorError ErrorKind = "validator_error"
	// ErrorKindEncodingError means RepairAndValidate was handed data holding
	// a Go type it cannot convert to a JSON value (supported: map[string]any,
	// []any, string, float64, float32, int, int64, bool and nil).
	ErrorKindEncodingError ErrorKind = "encoding_error"
)

// JsonProcessingError is returned by ParseAndValidate and RepairAndValidate
// when the input could never be turned into parseable JSON or the schema
// validator itself misbehaved. Schema validation failures that do succeed
// in parsing are not an error: they come back as Issues on the result, for
// the caller to inspect or act on directly. JsonProcessingError
// distinguishes why it failed (Kind) from the underlying mechanism (Cause).
type JsonProcessingError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *JsonProcessingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("jsonrepair: %s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("jsonrepair: %s: %s", e.Kind, e.Message)
}

func (e *JsonProcessingError) Unwrap() error {
	return e.Cause
}
