package opt

import (
	"math"
	"strings"

	"github.com/cnf/structhash"
	"github.com/npillmayer/gropt"
)

// Similarity thresholds for consolidation. Aggressive mode trades fidelity
// for a smaller grammar.
const (
	consolidationThreshold = 0.8
	aggressiveThreshold    = 0.6
)

// Composite similarity weights: alternatives, dependencies, recursion
// structure, complexity.
const (
	simWeightAlternatives = 0.4
	simWeightDependencies = 0.3
	simWeightStructure    = 0.2
	simWeightComplexity   = 0.1
)

// consolidateRules merges sufficiently similar rules of g. Rules are visited
// in grammar order; each unconsumed rule acts as an anchor and absorbs every
// other unconsumed rule whose composite similarity reaches the threshold.
// The merged rule keeps the anchor's name; the merged-away names disappear
// from the grammar, and every remaining reference to them is rewritten to
// the name of the rule that finally survives, even when an anchor is in turn
// consumed by a later one, so that consolidation never leaves dangling
// references.
//
// Returns the number of rules merged away.
func consolidateRules(g *gropt.Grammar, opts Options) int {
	threshold := consolidationThreshold
	if opts.AggressiveOptimization {
		threshold = aggressiveThreshold
	}
	var consumed gropt.RuleSet
	renamed := map[string]string{} // consumed name -> anchor name
	rules := g.Rules()
	for i, anchor := range rules {
		if consumed.Contains(anchor) {
			continue
		}
		var members []*gropt.Rule
		for j, other := range rules {
			if i == j || consumed.Contains(other) {
				continue
			}
			score := similarity(anchor, other)
			if score >= threshold {
				tracer().Debugf("similarity(%q, %q) = %.3f, merging", anchor.Name, other.Name, score)
				members = append(members, other)
			}
		}
		if len(members) == 0 {
			continue
		}
		merge(anchor, members)
		for _, m := range members {
			consumed = consumed.Add(m)
			renamed[m.Name] = anchor.Name
		}
	}
	if len(renamed) == 0 {
		return 0
	}
	// A later anchor may itself consume an earlier anchor, chaining renames.
	// Follow every chain to the rule that actually survives.
	for from, to := range renamed {
		for {
			next, ok := renamed[to]
			if !ok {
				break
			}
			to = next
		}
		renamed[from] = to
	}
	g.Filter(func(r *gropt.Rule) bool {
		return !consumed.Contains(r)
	})
	for _, r := range g.Rules() {
		rewriteReferences(r, renamed)
	}
	return len(renamed)
}

// similarity computes the composite similarity score of two rules as a
// weighted sum of alternative-set similarity, dependency-set similarity,
// matching recursion flags, and complexity distance.
func similarity(a, b *gropt.Rule) float64 {
	score := simWeightAlternatives * alternativesSimilarity(a, b)
	score += simWeightDependencies * jaccardStrings(a.DependencyNames(), b.DependencyNames())
	matches := 0
	if a.IsRecursive == b.IsRecursive {
		matches++
	}
	if a.IsLeftRecursive == b.IsLeftRecursive {
		matches++
	}
	if a.IsRightRecursive == b.IsRightRecursive {
		matches++
	}
	score += simWeightStructure * float64(matches) / 3
	score += simWeightComplexity * math.Max(0, 1-math.Abs(a.Complexity-b.Complexity)/10)
	return score
}

// alternativesSimilarity averages the Jaccard similarity of the symbol sets
// of every alternative pair across the two rules. Two rules without any
// alternatives count as identical, a rule with alternatives compared against
// one without counts as disjoint.
func alternativesSimilarity(a, b *gropt.Rule) float64 {
	if len(a.Alternatives) == 0 && len(b.Alternatives) == 0 {
		return 1
	}
	if len(a.Alternatives) == 0 || len(b.Alternatives) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range a.Alternatives {
		for _, y := range b.Alternatives {
			sum += jaccardStrings(x, y)
		}
	}
	return sum / float64(len(a.Alternatives)*len(b.Alternatives))
}

// jaccardStrings computes |a∩b| / |a∪b| over two symbol lists, taken as
// sets. Two empty sets count as identical.
func jaccardStrings(a, b []string) float64 {
	sa := map[string]struct{}{}
	for _, s := range a {
		sa[s] = struct{}{}
	}
	sb := map[string]struct{}{}
	for _, s := range b {
		sb[s] = struct{}{}
	}
	if len(sa) == 0 && len(sb) == 0 {
		return 1
	}
	common := 0
	for s := range sa {
		if _, ok := sb[s]; ok {
			common++
		}
	}
	return float64(common) / float64(len(sa)+len(sb)-common)
}

// merge folds the member rules into the anchor: alternatives become the
// deduplicated union (exact sequence equality), dependencies the set union,
// recursion flags the logical or; usage counts add up and complexity is
// averaged.
func merge(anchor *gropt.Rule, members []*gropt.Rule) {
	seen := map[string]bool{}
	for _, alt := range anchor.Alternatives {
		seen[altKey(alt)] = true
	}
	total := anchor.Complexity
	for _, m := range members {
		for _, alt := range m.Alternatives {
			if key := altKey(alt); !seen[key] {
				seen[key] = true
				anchor.Alternatives = append(anchor.Alternatives, append([]string(nil), alt...))
			}
		}
		for _, dep := range m.DependencyNames() {
			if dep != anchor.Name {
				anchor.Dependencies.Add(dep)
			}
		}
		anchor.IsRecursive = anchor.IsRecursive || m.IsRecursive
		anchor.IsLeftRecursive = anchor.IsLeftRecursive || m.IsLeftRecursive
		anchor.IsRightRecursive = anchor.IsRightRecursive || m.IsRightRecursive
		anchor.UsageCount += m.UsageCount
		total += m.Complexity
	}
	anchor.Complexity = total / float64(len(members)+1)
	anchor.OptimizationPotential = 0
}

// altKey returns a content hash for an alternative, used to deduplicate
// alternative sequences during merging.
func altKey(alt []string) string {
	if h, err := structhash.Hash(alt, 1); err == nil {
		return h
	}
	return strings.Join(alt, "\x1f")
}

// rewriteReferences replaces occurrences of merged-away rule names in r's
// alternatives and dependency set. Recursion flags are raised (never
// cleared) when the rewrite introduces new self-references.
func rewriteReferences(r *gropt.Rule, renamed map[string]string) {
	touched := false
	for _, alt := range r.Alternatives {
		for k, sym := range alt {
			if to, ok := renamed[sym]; ok {
				alt[k] = to
				touched = true
			}
		}
	}
	if r.Dependencies != nil {
		for _, dep := range r.DependencyNames() {
			if to, ok := renamed[dep]; ok {
				r.Dependencies.Remove(dep)
				if to != r.Name {
					r.Dependencies.Add(to)
				}
				touched = true
			}
		}
	}
	if !touched {
		return
	}
	for _, alt := range r.Alternatives {
		if len(alt) == 0 {
			continue
		}
		if alt[0] == r.Name {
			r.IsLeftRecursive = true
		}
		if alt[len(alt)-1] == r.Name {
			r.IsRightRecursive = true
		}
		for _, sym := range alt {
			if sym == r.Name {
				r.IsRecursive = true
				break
			}
		}
	}
}
