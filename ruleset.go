package gropt

// RuleSet is a set of rules, used by the rewriting passes for marking rules
// live, consumed or visited.
type RuleSet map[*Rule]struct{}

var exists = struct{}{}

// Add puts a rule into the set and returns the set, allocating one if
// necessary.
func (set RuleSet) Add(r *Rule) RuleSet {
	if set == nil {
		set = RuleSet{}
	}
	set[r] = exists
	return set
}

// Contains reports whether r is in the set.
func (set RuleSet) Contains(r *Rule) bool {
	if set == nil || r == nil {
		return false
	}
	_, ok := set[r]
	return ok
}

// Delete removes a rule from the set, if present.
func (set RuleSet) Delete(r *Rule) {
	if set != nil {
		delete(set, r)
	}
}
