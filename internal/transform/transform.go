// Package transform applies schema-aware fixes to an already-parsed
// jsonvalue.Value tree: coercions and property-name corrections that need a
// caller-supplied JSON Schema to know what "correct" looks like, as opposed
// to internal/rules's schema-blind text repairs.
package transform

import (
	"strconv"
	"strings"

	"github.com/antzucaro/matchr"

	"github.com/dshills/jsonrepair/internal/jsonvalue"
)

// PropertySchema describes what a caller's JSON Schema says about one
// object property, enough for the transforms below to decide whether a
// value needs coercing.
type PropertySchema struct {
	Name  string
	Types []string // JSON Schema "type" values: "string", "number", "integer", "boolean", "array", "object", "null"
}

// ObjectSchema is the subset of a JSON Schema's "properties"/"required"
// that these transforms need: known property names (for typo correction)
// and each property's declared type(s).
type ObjectSchema struct {
	Properties []PropertySchema
}

// PropertyNameTypoThreshold is the minimum Jaro-Winkler similarity at which
// an unrecognized property name is corrected to its closest schema match.
// Below this, the property is left alone rather than risk silently
// renaming something the author meant deliberately.
const PropertyNameTypoThreshold = 0.85

// RemoveIncompleteArrayItems drops trailing array elements that are null
// placeholders for content an LLM never finished emitting, a common shape
// when output is truncated mid-array. Only trailing nulls are removed.
func RemoveIncompleteArrayItems(v *jsonvalue.Value) {
	jsonvalue.Walk(v, func(node *jsonvalue.Value) bool {
		if node.Kind != jsonvalue.KindArray {
			return true
		}
		for len(node.Array) > 0 && node.Array[len(node.Array)-1].IsNull() {
			node.Array = node.Array[:len(node.Array)-1]
		}
		return true
	})
}

// CoerceStringToArray replaces a bare string value with an empty array
// wherever schema says the property should be an array. A model that emits
// a lone string in place of a list has already demonstrated it doesn't know
// the list's contents, so an empty array is the honest repair, not a
// single-element guess.
func CoerceStringToArray(v *jsonvalue.Value, schema ObjectSchema) {
	applyToMatchingProperties(v, schema, "array", func(val *jsonvalue.Value) *jsonvalue.Value {
		if val.Kind == jsonvalue.KindString {
			return jsonvalue.NewArray(nil)
		}
		return val
	})
}

// ConvertNullToUndefined removes properties whose value is JSON null when
// schema does not list "null" among the property's allowed types, treating
// an explicit null as "the model meant to omit this" rather than a type
// violation to report.
func ConvertNullToUndefined(v *jsonvalue.Value, schema ObjectSchema) {
	byName := indexSchema(schema)
	jsonvalue.Walk(v, func(node *jsonvalue.Value) bool {
		if node.Kind != jsonvalue.KindObject {
			return true
		}
		var toDelete []string
		for _, m := range node.Members {
			if m.Value == nil || m.Value.Kind != jsonvalue.KindNull {
				continue
			}
			prop, ok := byName[m.Key]
			if !ok || !containsType(prop.Types, "null") {
				toDelete = append(toDelete, m.Key)
			}
		}
		for _, key := range toDelete {
			node.Delete(key)
		}
		return true
	})
}

// CoerceNumericProperties parses a string value into a number wherever
// schema says the property should be "number" or "integer" and the string
// holds a valid numeric literal, the common failure mode when a model
// quotes a number (`"count": "3"` instead of `"count": 3`).
func CoerceNumericProperties(v *jsonvalue.Value, schema ObjectSchema) {
	byName := indexSchema(schema)
	jsonvalue.Walk(v, func(node *jsonvalue.Value) bool {
		if node.Kind != jsonvalue.KindObject {
			return true
		}
		for i, m := range node.Members {
			if m.Value == nil || m.Value.Kind != jsonvalue.KindString {
				continue
			}
			prop, ok := byName[m.Key]
			if !ok || (!containsType(prop.Types, "number") && !containsType(prop.Types, "integer")) {
				continue
			}
			trimmed := strings.TrimSpace(m.Value.Str)
			f, err := strconv.ParseFloat(trimmed, 64)
			if err != nil {
				continue
			}
			node.Members[i].Value = jsonvalue.NewNumber(f, trimmed)
		}
		return true
	})
}

// FixCommonPropertyNameTypos renames object properties whose key is not in
// schema. corrections is consulted first (an explicit misspelling -> correct
// name table the caller knows about); anything left is then matched against
// schema by Jaro-Winkler similarity (>= PropertyNameTypoThreshold), renaming
// to exactly one known schema property and preserving the member's original
// position in the object.
func FixCommonPropertyNameTypos(v *jsonvalue.Value, schema ObjectSchema, corrections map[string]string) {
	if len(schema.Properties) == 0 && len(corrections) == 0 {
		return
	}
	known := make(map[string]bool, len(schema.Properties))
	for _, p := range schema.Properties {
		known[p.Name] = true
	}
	jsonvalue.Walk(v, func(node *jsonvalue.Value) bool {
		if node.Kind != jsonvalue.KindObject {
			return true
		}
		for i, m := range node.Members {
			if known[m.Key] {
				continue
			}
			if fixed, ok := corrections[m.Key]; ok {
				node.Members[i].Key = fixed
				continue
			}
			if best, ok := closestPropertyName(m.Key, schema.Properties); ok {
				node.Members[i].Key = best
			}
		}
		return true
	})
}

func closestPropertyName(key string, props []PropertySchema) (string, bool) {
	best := ""
	bestScore := 0.0
	for _, p := range props {
		score := matchr.JaroWinkler(key, p.Name, true)
		if score > bestScore {
			bestScore = score
			best = p.Name
		}
	}
	if bestScore >= PropertyNameTypoThreshold {
		return best, true
	}
	return "", false
}

// UnwrapJSONSchemaStructure detects when a model returned a JSON Schema
// document (a "properties"/"type" wrapper) instead of an instance matching
// that schema, and replaces the object with one built from its
// "properties" member (each property set to that property schema's
// "default", or null when it has none) or, without "properties", with its
// "default" member: the shape models fall back to when confused about
// whether they're asked to emit data or a schema for data.
func UnwrapJSONSchemaStructure(v *jsonvalue.Value) *jsonvalue.Value {
	if v == nil || v.Kind != jsonvalue.KindObject {
		return v
	}
	_, hasType := v.Get("type")
	props, hasProps := v.Get("properties")
	if hasType && hasProps && props.Kind == jsonvalue.KindObject {
		unwrapped := jsonvalue.NewObject()
		for _, m := range props.Members {
			if def, ok := m.Value.Get("default"); ok {
				unwrapped.Set(m.Key, def)
			} else {
				unwrapped.Set(m.Key, jsonvalue.NewNull())
			}
		}
		return unwrapped
	}
	if def, ok := v.Get("default"); ok && hasType {
		return def
	}
	return v
}

// ApplyPropertyNameMappings renames object properties per an explicit
// old-name -> new-name table, unconditionally and regardless of schema,
// ahead of the fuzzy-match typo correction. A no-op when mappings is empty.
func ApplyPropertyNameMappings(v *jsonvalue.Value, mappings map[string]string) {
	if len(mappings) == 0 {
		return
	}
	jsonvalue.Walk(v, func(node *jsonvalue.Value) bool {
		if node.Kind != jsonvalue.KindObject {
			return true
		}
		for i, m := range node.Members {
			if renamed, ok := mappings[m.Key]; ok {
				node.Members[i].Key = renamed
			}
		}
		return true
	})
}

// FixPackageNames rewrites string values that hold a legacy package or
// import path: prefixReplacements swaps an old path prefix for its current
// equivalent (e.g. a package that moved to a new group), and typoPatterns
// replaces a literal substring known to be a common misspelling. Both are a
// no-op when left empty.
func FixPackageNames(v *jsonvalue.Value, prefixReplacements, typoPatterns map[string]string) {
	if len(prefixReplacements) == 0 && len(typoPatterns) == 0 {
		return
	}
	jsonvalue.Walk(v, func(node *jsonvalue.Value) bool {
		if node.Kind != jsonvalue.KindString {
			return true
		}
		s := node.Str
		for prefix, replacement := range prefixReplacements {
			if strings.HasPrefix(s, prefix) {
				s = replacement + strings.TrimPrefix(s, prefix)
			}
		}
		for typo, correct := range typoPatterns {
			s = strings.ReplaceAll(s, typo, correct)
		}
		if s != node.Str {
			node.Str = s
		}
		return true
	})
}

func indexSchema(schema ObjectSchema) map[string]PropertySchema {
	out := make(map[string]PropertySchema, len(schema.Properties))
	for _, p := range schema.Properties {
		out[p.Name] = p
	}
	return out
}

func containsType(types []string, want string) bool {
	for _, t := range types {
		if t == want {
			return true
		}
	}
	return false
}

func applyToMatchingProperties(v *jsonvalue.Value, schema ObjectSchema, wantType string, fix func(*jsonvalue.Value) *jsonvalue.Value) {
	byName := indexSchema(schema)
	jsonvalue.Walk(v, func(node *jsonvalue.Value) bool {
		if node.Kind != jsonvalue.KindObject {
			return true
		}
		for i, m := range node.Members {
			prop, ok := byName[m.Key]
			if !ok || !containsType(prop.Types, wantType) {
				continue
			}
			node.Members[i].Value = fix(m.Value)
		}
		return true
	})
}
