package rules

// DefaultGroups returns the five built-in rule groups in the order the
// executor should run them: embedded non-JSON content first (so later
// groups see a cleaner document), then structural syntax fixes, stray
// character removal, property-name repair, and finally array-element
// repair.
func DefaultGroups() []Group {
	return []Group{
		EmbeddedContentGroup(),
		StructuralGroup(),
		StrayCharacterGroup(),
		PropertyNameGroup(),
		ArrayElementGroup(),
	}
}

// CustomGroup wraps caller-supplied rules as a trailing group so they run
// after every built-in repair has had a chance to simplify the document.
func CustomGroup(custom []Rule) Group {
	return Group{Name: "custom", Rules: custom}
}

// WithCustomRules appends a custom rule group to the default groups when
// custom is non-empty.
func WithCustomRules(custom []Rule) []Group {
	groups := DefaultGroups()
	if len(custom) == 0 {
		return groups
	}
	return append(groups, CustomGroup(custom))
}
