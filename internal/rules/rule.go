// Package rules implements the ordered regex-based repair rule library that
// forms phase 5 of the sanitizer pipeline. Rules are grouped by what they
// target (embedded non-JSON content, structural syntax errors, stray
// characters, property names, array elements) and run to a fixed point: each
// pass runs every rule once, and passes repeat until a full pass makes no
// change or a pass budget is exhausted.
//
// Go's regexp package is RE2-based and guarantees linear-time matching, so
// unlike backtracking regex engines a rule can never pathologically hang on
// adversarial input; no per-rule timeout is needed.
package rules

import (
	"strings"

	"github.com/dshills/jsonrepair/internal/diag"
)

// MaxPasses bounds how many times the full rule list re-runs looking for a
// fixed point, guarding against a pair of rules that perpetually undo each
// other's edits.
const MaxPasses = 5

// Context carries the per-call schema metadata a rule needs to tell a
// caller's real data apart from text that merely looks like noise:
// primarily the set of property names the schema already knows about, so a
// rule that would otherwise strip a YAML-looking key can stand down when
// that key is legitimate.
type Context struct {
	KnownProperties []string
}

// HasProperty reports whether name matches one of ctx.KnownProperties,
// case-insensitively.
func (ctx Context) HasProperty(name string) bool {
	for _, p := range ctx.KnownProperties {
		if strings.EqualFold(p, name) {
			return true
		}
	}
	return false
}

// Rule is a single repair step: given the current content and the call's
// schema context, it either returns the unmodified string with
// changed=false, or a modified string with changed=true and a short
// human-readable description of what it did.
type Rule struct {
	Name  string
	Apply func(content string, ctx Context) (result string, changed bool, description string)
}

// Group is a named, ordered collection of rules applied as a unit.
type Group struct {
	Name  string
	Rules []Rule
}

// Execute runs every rule in every group, in order, repeating full passes
// until no rule in a pass reports a change or MaxPasses is reached. It
// returns the resulting content; every applied rule's description is
// recorded on collector.
func Execute(content string, groups []Group, collector *diag.Collector, ctx Context) string {
	for pass := 0; pass < MaxPasses; pass++ {
		changedThisPass := false
		for _, g := range groups {
			for _, r := range g.Rules {
				newContent, changed, desc := r.Apply(content, ctx)
				if !changed {
					continue
				}
				content = newContent
				changedThisPass = true
				if desc != "" {
					collector.Add(desc)
				}
			}
		}
		if !changedThisPass {
			break
		}
	}
	return content
}
