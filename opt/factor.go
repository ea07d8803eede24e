package opt

import (
	"fmt"

	"github.com/npillmayer/gropt"
)

// factorRule performs left factoring on a single rule: alternatives sharing a
// common prefix are replaced by one alternative `prefix helper`, where helper
// is a newly synthesized rule holding the prefix-stripped remainders. The
// rule is modified in place; synthesized helper rules and the number of
// factorings applied are returned.
//
// Alternatives are grouped by their first symbol, so one rule may factor
// several groups independently in a single visit. Epsilon-alternatives have
// no first symbol and are never grouped; a group of one leaves nothing to
// factor.
func factorRule(r *gropt.Rule) ([]*gropt.Rule, int) {
	if len(r.Alternatives) < 2 {
		return nil, 0
	}
	groups := map[string][]int{} // first symbol -> indices of alternatives
	for i, alt := range r.Alternatives {
		if len(alt) == 0 {
			continue
		}
		groups[alt[0]] = append(groups[alt[0]], i)
	}
	var helpers []*gropt.Rule
	applied := 0
	replacement := map[int][]string{} // index of group leader -> factored alternative
	consumed := map[int]bool{}        // indices folded into a helper rule
	counter := 0
	for _, alt := range r.Alternatives { // visit groups in alternative order
		if len(alt) == 0 {
			continue
		}
		members, ok := groups[alt[0]]
		if !ok || len(members) < 2 {
			continue
		}
		delete(groups, alt[0]) // each group factors at most once
		prefix := commonPrefix(r.Alternatives, members)
		if len(prefix) == 0 {
			continue
		}
		helper := &gropt.Rule{
			Name:       fmt.Sprintf("%s_factored_%d", r.Name, counter),
			Complexity: 0.8 * r.Complexity,
		}
		counter++
		for _, m := range members {
			rest := append([]string{}, r.Alternatives[m][len(prefix):]...)
			helper.Alternatives = append(helper.Alternatives, rest)
			consumed[m] = true
		}
		helper.ScanDependencies()
		helper.ScanFlags()
		leader := members[0]
		replacement[leader] = append(append([]string(nil), prefix...), helper.Name)
		helpers = append(helpers, helper)
		applied++
		tracer().Debugf("factored %d alternatives of %q into %q", len(members), r.Name, helper.Name)
	}
	if applied == 0 {
		return nil, 0
	}
	rewritten := make([][]string, 0, len(r.Alternatives))
	for i, alt := range r.Alternatives {
		if repl, ok := replacement[i]; ok {
			rewritten = append(rewritten, repl)
		} else if !consumed[i] {
			rewritten = append(rewritten, alt)
		}
	}
	r.Alternatives = rewritten
	r.OptimizationPotential = 0
	return helpers, applied
}

// commonPrefix computes the longest common prefix over the alternatives at
// the given indices: positions advance while every member still has a symbol
// there equal to the first member's symbol.
func commonPrefix(alternatives [][]string, members []int) []string {
	first := alternatives[members[0]]
	n := 0
positions:
	for ; n < len(first); n++ {
		for _, m := range members[1:] {
			alt := alternatives[m]
			if n >= len(alt) || alt[n] != first[n] {
				break positions
			}
		}
	}
	return first[:n]
}
