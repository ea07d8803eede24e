package opt

import (
	"github.com/npillmayer/gropt"
)

// removeUnreachable drops every rule of g that cannot be reached by
// name-chasing from the start set, and returns the number of rules dropped.
//
// The start set is taken from opts.StartRules when given. Otherwise it is
// chosen heuristically: every rule whose usage count exceeds the configured
// threshold, or, only if no rule does, every rule with an empty dependency
// set. The second clause substitutes for an explicit grammar start symbol,
// which the rule model does not track.
func removeUnreachable(g *gropt.Grammar, opts Options) int {
	var live gropt.RuleSet
	for _, start := range startRules(g, opts) {
		live = mark(g, start, live)
	}
	dropped := g.Filter(func(r *gropt.Rule) bool {
		return live.Contains(r)
	})
	if dropped > 0 {
		tracer().Debugf("reachability: dropped %d unreachable rule(s)", dropped)
	}
	return dropped
}

func startRules(g *gropt.Grammar, opts Options) []*gropt.Rule {
	if len(opts.StartRules) > 0 {
		var starts []*gropt.Rule
		for _, name := range opts.StartRules {
			if r := g.Rule(name); r != nil {
				starts = append(starts, r)
			} else {
				tracer().Errorf("configured start rule %q not in grammar", name)
			}
		}
		return starts
	}
	var starts []*gropt.Rule
	for _, r := range g.Rules() {
		if r.UsageCount > opts.MinUsageThreshold {
			starts = append(starts, r)
		}
	}
	if len(starts) > 0 {
		return starts
	}
	// fallback: rules without dependencies stand in for a start symbol
	for _, r := range g.Rules() {
		if r.Dependencies == nil || r.Dependencies.Size() == 0 {
			starts = append(starts, r)
		}
	}
	return starts
}

// mark walks depth-first from r, marking every rule it references, either
// through its dependency set or through an alternative symbol matching a
// known rule name. Marking is monotonic; the live set doubles as the
// visited-set guard.
func mark(g *gropt.Grammar, r *gropt.Rule, live gropt.RuleSet) gropt.RuleSet {
	if live.Contains(r) {
		return live
	}
	live = live.Add(r)
	for _, name := range r.DependencyNames() {
		if dep := g.Rule(name); dep != nil {
			live = mark(g, dep, live)
		}
	}
	for _, alt := range r.Alternatives {
		for _, sym := range alt {
			if dep := g.Rule(sym); dep != nil {
				live = mark(g, dep, live)
			}
		}
	}
	return live
}
