package gropt

// maxDepthProbe caps the dependency-depth walk. Residual cycles in a grammar
// must not send the measurement into unbounded descent.
const maxDepthProbe = 20

// Metrics captures structural measurements of a grammar. The optimizer takes
// a measurement before and after rewriting and derives its improvement
// estimate from the difference.
type Metrics struct {
	RuleCount          int     `json:"ruleCount"`
	AlternativeCount   int     `json:"alternativeCount"`
	AvgComplexity      float64 `json:"avgComplexity"`
	RecursiveRules     int     `json:"recursiveRules"`
	LeftRecursiveRules int     `json:"leftRecursiveRules"`
	MaxDependencyDepth int     `json:"maxDependencyDepth"`
}

// Measure computes structural metrics for the grammar.
func (g *Grammar) Measure() Metrics {
	m := Metrics{RuleCount: len(g.rules)}
	total := 0.0
	for _, r := range g.rules {
		m.AlternativeCount += len(r.Alternatives)
		total += r.Complexity
		if r.IsRecursive {
			m.RecursiveRules++
		}
		if r.IsLeftRecursive {
			m.LeftRecursiveRules++
		}
		if d := g.dependencyDepth(r, nil); d > m.MaxDependencyDepth {
			m.MaxDependencyDepth = d
		}
	}
	if len(g.rules) > 0 {
		m.AvgComplexity = total / float64(len(g.rules))
	}
	return m
}

// dependencyDepth walks the dependency chain of a rule depth-first. The path
// set guards against cycles, the probe cap bounds pathological chains.
func (g *Grammar) dependencyDepth(r *Rule, path RuleSet) int {
	if path.Contains(r) || len(path) >= maxDepthProbe {
		return 0
	}
	path = path.Add(r)
	defer path.Delete(r)
	depth := 0
	for _, name := range r.DependencyNames() {
		dep := g.Rule(name)
		if dep == nil {
			continue // dangling reference, nothing to descend into
		}
		if d := 1 + g.dependencyDepth(dep, path); d > depth {
			depth = d
		}
	}
	return depth
}
