package opt

// Options is the flat configuration record for an Optimizer. Every pass is
// gated by its own toggle; the numeric knobs bound the pipeline.
type Options struct {
	EnableLeftFactoring        bool
	EnableRecursionElimination bool
	EnableRuleConsolidation    bool
	EnableDeadRuleRemoval      bool
	EnableComplexityReduction  bool

	// PreserveSemantics enables a bounded sample-derivation comparison of the
	// grammar before and after rewriting. Divergence is reported as a warning;
	// language equivalence remains a best-effort property.
	PreserveSemantics bool

	// AggressiveOptimization lowers the consolidation similarity threshold
	// from 0.8 to 0.6.
	AggressiveOptimization bool

	// StartRules names the entry rules for reachability analysis. When empty,
	// the start set is chosen heuristically from usage counts and dependency
	// sets.
	StartRules []string

	MaxOptimizationPasses  int     // upper bound on rewriting passes
	MinUsageThreshold      int     // usage count above which a rule counts as a start rule
	MaxComplexityThreshold float64 // complexity budget for the capping pass
}

// DefaultOptions returns an options record with every pass enabled and the
// numeric knobs at their default values.
func DefaultOptions() Options {
	return Options{
		EnableLeftFactoring:        true,
		EnableRecursionElimination: true,
		EnableRuleConsolidation:    true,
		EnableDeadRuleRemoval:      true,
		EnableComplexityReduction:  true,
		MaxOptimizationPasses:      5,
		MinUsageThreshold:          1,
		MaxComplexityThreshold:     10,
	}
}
