package opt

import (
	"math"

	"github.com/npillmayer/gropt"
)

// Budgets for the complexity-capping pass.
const (
	maxAlternatives   = 10 // alternatives kept per over-budget rule
	maxAlternativeLen = 8  // symbols per alternative before splitting
)

// simplifyRule caps an over-budget rule and reports whether it changed
// anything. Rules at or below the complexity threshold are left alone.
//
// Two independent caps apply. A rule with more than maxAlternatives
// alternatives keeps the first ones in original order; there is no
// usage-based ranking of survivors. An alternative longer than
// maxAlternativeLen symbols is cut at its midpoint and a continuation symbol
// `<rule>_part` is appended; the tail is discarded. No rule of that name is
// ever synthesized; the continuation symbol is a deliberate placeholder of
// the current heuristic. It is recorded in the rule's dependency set, so a
// standalone validation run reports it as a dangling reference.
func simplifyRule(r *gropt.Rule, opts Options) bool {
	if r.Complexity <= opts.MaxComplexityThreshold {
		return false
	}
	if len(r.Alternatives) > maxAlternatives {
		tracer().Debugf("capping %q from %d to %d alternatives", r.Name, len(r.Alternatives), maxAlternatives)
		r.Alternatives = r.Alternatives[:maxAlternatives]
	}
	part := r.Name + "_part"
	for i, alt := range r.Alternatives {
		if len(alt) > maxAlternativeLen {
			half := alt[:len(alt)/2]
			r.Alternatives[i] = append(append([]string(nil), half...), part)
			if r.Dependencies == nil {
				r.Dependencies = gropt.NewDependencySet()
			}
			r.Dependencies.Add(part)
			tracer().Debugf("split overlong alternative %d of %q at midpoint", i, r.Name)
		}
	}
	r.Complexity = math.Max(1, 0.7*r.Complexity)
	return true
}
