package opt

import (
	"fmt"

	"github.com/npillmayer/gropt"
)

// eliminateLeftRecursion rewrites a directly left-recursive rule
//
//	A → A α₁ | A α₂ | β₁ | β₂
//
// into the right-recursive pair
//
//	A  → β₁ A' | β₂ A'
//	A' → α₁ A' | α₂ A' | ε
//
// The rule is modified in place; the synthesized prime rule (or nil), the
// number of eliminations (0 or 1) and a possible warning are returned.
//
// A rule with no non-recursive alternative at all cannot be rewritten this
// way; it would loop forever no matter the direction. Such a rule is
// deliberately left untouched and only flagged with a warning; guessing a
// repair here would change the language.
//
// Only single-rule direct left recursion is handled. Indirect recursion
// through several rules is invisible to this pass.
func eliminateLeftRecursion(r *gropt.Rule) (*gropt.Rule, int, []string) {
	var recursive, plain [][]string
	for _, alt := range r.Alternatives {
		if len(alt) > 0 && alt[0] == r.Name {
			recursive = append(recursive, alt[1:]) // remainder α, self-reference stripped
		} else {
			plain = append(plain, alt)
		}
	}
	if len(recursive) == 0 {
		// flag was stale; nothing to do
		return nil, 0, nil
	}
	if len(plain) == 0 {
		w := fmt.Sprintf("rule %q has only left-recursive alternatives and cannot terminate; left unchanged", r.Name)
		tracer().Infof("%s", w)
		return nil, 0, []string{w}
	}
	prime := &gropt.Rule{
		Name:             r.Name + "_prime",
		IsRecursive:      true,
		IsRightRecursive: true,
		Complexity:       0.9 * r.Complexity,
	}
	for _, rest := range recursive {
		alt := append(append([]string(nil), rest...), prime.Name)
		prime.Alternatives = append(prime.Alternatives, alt)
	}
	prime.Alternatives = append(prime.Alternatives, []string{}) // ε
	prime.ScanDependencies()
	rewritten := make([][]string, 0, len(plain))
	for _, alt := range plain {
		rewritten = append(rewritten, append(append([]string(nil), alt...), prime.Name))
	}
	r.Alternatives = rewritten
	r.IsLeftRecursive = false
	r.IsRightRecursive = false
	r.OptimizationPotential = 0
	tracer().Debugf("rewrote left recursion of %q via %q", r.Name, prime.Name)
	return prime, 1, nil
}
