package sanitize

import (
	"github.com/dshills/jsonrepair/internal/diag"
	"github.com/dshills/jsonrepair/internal/jsonvalue"
	"github.com/dshills/jsonrepair/internal/rules"
)

// Result is the outcome of running the sanitizer pipeline: the repaired
// text, the parsed tree if a phase's output finally parsed, and the
// diagnostics collected along the way.
type Result struct {
	Content    string
	Value      *jsonvalue.Value
	Parsed     bool
	Diagnostic []string
}

// Run executes the sanitizer's six phases in order against content,
// attempting StrictParse after every phase and returning as soon as one
// succeeds. customRules are appended as a trailing rule group in phase 5.
// knownProperties is threaded into every rule group as schema context, so
// embedded-content/stray-text removal can stand down for a key the caller's
// schema already recognizes. maxDiagnostics bounds the diagnostic
// collector; 0 falls back to diag.DefaultMaxEntries.
func Run(content string, customRules []rules.Rule, maxDiagnostics int, knownProperties []string) Result {
	collector := diag.New(maxDiagnostics)
	ctx := rules.Context{KnownProperties: knownProperties}

	tryParse := func() (*jsonvalue.Value, bool) {
		v, err := StrictParse([]byte(content))
		if err != nil {
			return nil, false
		}
		return v, true
	}

	if v, ok := tryParse(); ok {
		return Result{Content: content, Value: v, Parsed: true, Diagnostic: collector.All()}
	}

	// Phase 1: structural-and-noise removal. Strip embedded non-JSON
	// wrapper content (fences, HTML tags, leading/trailing narration), keep
	// only the largest JSON span, collapse an accidentally
	// duplicated top-level value, and drop obvious truncation markers.
	content = runPhase(content, []rules.Group{rules.EmbeddedContentGroup()}, collector, ctx)
	if span, changed := extractLargestJSONSpan(content); changed {
		content = span
		collector.Add("extracted the largest JSON span")
	}
	if collapsed, changed := collapseRepeatedTopLevelObjects(content); changed {
		content = collapsed
		collector.Add("collapsed a duplicated top-level JSON value")
	}
	content = runPhase(content, []rules.Group{rules.StrayCharacterGroup()}, collector, ctx)
	if v, ok := tryParse(); ok {
		return Result{Content: content, Value: v, Parsed: true, Diagnostic: collector.All()}
	}

	// Phase 2: comments. Removed in their own pass, ahead of character
	// normalization. Smart quotes are not string delimiters yet at this
	// point, so a "//" inside a smart-quoted value is treated as a comment.
	content = runPhase(content, []rules.Group{rules.CommentGroup()}, collector, ctx)
	if v, ok := tryParse(); ok {
		return Result{Content: content, Value: v, Parsed: true, Diagnostic: collector.All()}
	}

	// Phase 3: character normalization (smart quotes, dashes, invisible
	// Unicode).
	if normalized, changed := normalizeCharacters(content); changed {
		content = normalized
		collector.Add("normalized smart-punctuation and invisible Unicode characters")
	}
	if v, ok := tryParse(); ok {
		return Result{Content: content, Value: v, Parsed: true, Diagnostic: collector.All()}
	}

	// Phase 4: syntax fixes. Missing commas, trailing commas, and
	// structures left open by output truncation.
	content = runPhase(content, []rules.Group{rules.SyntaxFixGroup()}, collector, ctx)
	if v, ok := tryParse(); ok {
		return Result{Content: content, Value: v, Parsed: true, Diagnostic: collector.All()}
	}

	// Phase 5: property/value fixes. The full rule library (structural,
	// stray-character, property-name, array-element) plus any
	// caller-supplied custom rules, run together to a fixed point so
	// interactions between groups' edits get mopped up in the same pass.
	groups := append([]rules.Group{
		rules.StructuralGroup(),
		rules.StrayCharacterGroup(),
		rules.PropertyNameGroup(),
		rules.ArrayElementGroup(),
	}, rules.CustomGroup(customRules))
	content = rules.Execute(content, groups, collector, ctx)
	if v, ok := tryParse(); ok {
		return Result{Content: content, Value: v, Parsed: true, Diagnostic: collector.All()}
	}

	// Phase 6: LLM token-artifact cleanup, last resort. Provider chat-
	// template markers sometimes sit inside the structure the earlier
	// phases just finished repairing, so this only has a clean shot at them
	// once everything else has run.
	if stripped, changed := stripLLMTokenArtifacts(content); changed {
		content = stripped
		collector.Add("removed LLM chat-template token artifacts")
	}
	v, ok := tryParse()
	return Result{Content: content, Value: v, Parsed: ok, Diagnostic: collector.All()}
}

func runPhase(content string, groups []rules.Group, collector *diag.Collector, ctx rules.Context) string {
	return rules.Execute(content, groups, collector, ctx)
}
