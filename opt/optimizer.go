package opt

import (
	"fmt"

	"github.com/npillmayer/gropt"
)

// Statistics is a per-call snapshot of pass activity. Counters tally the
// passes in which a technique reported applications, matching the entries of
// Report.OptimizationsApplied one to one.
type Statistics struct {
	DeadRulesRemoved          int     `json:"deadRulesRemoved"`
	LeftFactoringApplications int     `json:"leftFactoringApplications"`
	RecursionEliminations     int     `json:"recursionEliminations"`
	RulesConsolidated         int     `json:"rulesConsolidated"`
	ComplexityReductions      int     `json:"complexityReductions"`
	EstimatedSpeedupFactor    float64 `json:"estimatedSpeedupFactor"`
}

// Report describes one optimization run: rule counts, the ordered log of
// applied techniques, warnings, structural metrics before and after, and a
// weighted performance-improvement estimate.
type Report struct {
	OriginalRuleCount      int           `json:"originalRuleCount"`
	OptimizedRuleCount     int           `json:"optimizedRuleCount"`
	ReductionPercentage    float64       `json:"reductionPercentage"`
	OptimizationsApplied   []string      `json:"optimizationsApplied"`
	PerformanceImprovement float64       `json:"performanceImprovement"`
	Warnings               []string      `json:"warnings"`
	Before                 gropt.Metrics `json:"before"`
	After                  gropt.Metrics `json:"after"`
	Statistics             Statistics    `json:"statistics"`
}

// Weights of the performance-improvement estimate.
const (
	weightRuleCount     = 20
	weightAlternatives  = 15
	weightAvgComplexity = 25
	weightLeftRecursion = 30
	weightDepth         = 10
)

// Optimizer rewrites grammars according to a fixed options record. It holds
// no mutable state between calls; one instance may serve concurrent
// Optimize calls on independent grammars.
type Optimizer struct {
	opts Options
}

// NewOptimizer creates an optimizer for the given options.
func NewOptimizer(opts Options) *Optimizer {
	return &Optimizer{opts: opts}
}

// Optimize rewrites g and returns the optimized grammar together with a
// report. The input grammar is deep-cloned first and never mutated; the
// result shares no rule with it.
//
// The enabled passes (dead-rule removal, left factoring, left-recursion
// elimination, consolidation, complexity capping) run repeatedly in fixed
// order, until a pass leaves the rule count unchanged or the configured pass
// budget is exhausted.
func (o *Optimizer) Optimize(g *gropt.Grammar) (*gropt.Grammar, *Report) {
	work := g.Clone()
	report := &Report{OriginalRuleCount: g.Size()}
	report.Before = g.Measure()
	for pass := 0; pass < o.opts.MaxOptimizationPasses; pass++ {
		countBefore := work.Size()
		tracer().Debugf("=== pass %d over %d rule(s) ===", pass, countBefore)
		o.runPass(work, report)
		if work.Size() == countBefore {
			tracer().Debugf("converged after pass %d", pass)
			break
		}
	}
	report.OptimizedRuleCount = work.Size()
	if report.OriginalRuleCount > 0 {
		report.ReductionPercentage = float64(report.OriginalRuleCount-report.OptimizedRuleCount) /
			float64(report.OriginalRuleCount) * 100
	}
	report.After = work.Measure()
	report.PerformanceImprovement = improvement(report.Before, report.After)
	report.Statistics.EstimatedSpeedupFactor = 1 + report.PerformanceImprovement/100
	if o.opts.PreserveSemantics {
		report.Warnings = append(report.Warnings, compareDerivations(g, work, o.opts)...)
	}
	return work, report
}

// runPass executes the enabled techniques once each, in fixed order. A
// technique that reports activity contributes one log entry and bumps its
// statistic.
func (o *Optimizer) runPass(g *gropt.Grammar, report *Report) {
	stats := &report.Statistics
	if o.opts.EnableDeadRuleRemoval {
		if n := removeUnreachable(g, o.opts); n > 0 {
			stats.DeadRulesRemoved++
			report.OptimizationsApplied = append(report.OptimizationsApplied,
				fmt.Sprintf("Dead rule removal dropped %d unreachable rule(s)", n))
		}
	}
	if o.opts.EnableLeftFactoring {
		applied := 0
		for _, r := range snapshot(g) {
			helpers, n := factorRule(r)
			for _, h := range helpers {
				g.Add(h)
			}
			applied += n
		}
		if applied > 0 {
			stats.LeftFactoringApplications++
			report.OptimizationsApplied = append(report.OptimizationsApplied,
				fmt.Sprintf("Left factoring extracted %d common prefix(es)", applied))
		}
	}
	if o.opts.EnableRecursionElimination {
		eliminated := 0
		for _, r := range snapshot(g) {
			if !r.IsLeftRecursive {
				continue
			}
			prime, n, warnings := eliminateLeftRecursion(r)
			if prime != nil {
				g.Add(prime)
			}
			eliminated += n
			report.Warnings = append(report.Warnings, warnings...)
		}
		if eliminated > 0 {
			stats.RecursionEliminations++
			report.OptimizationsApplied = append(report.OptimizationsApplied,
				fmt.Sprintf("Left recursion eliminated in %d rule(s)", eliminated))
		}
	}
	if o.opts.EnableRuleConsolidation {
		if n := consolidateRules(g, o.opts); n > 0 {
			stats.RulesConsolidated++
			report.OptimizationsApplied = append(report.OptimizationsApplied,
				fmt.Sprintf("Rule consolidation merged away %d similar rule(s)", n))
		}
	}
	if o.opts.EnableComplexityReduction {
		reduced := 0
		for _, r := range g.Rules() {
			if simplifyRule(r, o.opts) {
				reduced++
			}
		}
		if reduced > 0 {
			stats.ComplexityReductions++
			report.OptimizationsApplied = append(report.OptimizationsApplied,
				fmt.Sprintf("Complexity reduction simplified %d rule(s)", reduced))
		}
	}
}

// snapshot copies the current rule list, so that a pass may append helper
// rules while iterating without visiting them in the same sweep.
func snapshot(g *gropt.Grammar) []*gropt.Rule {
	return append([]*gropt.Rule(nil), g.Rules()...)
}

// improvement derives the weighted performance-improvement percentage from
// structural metrics before and after rewriting. Every term is the relative
// reduction of one metric; a degradation may drive the sum below zero, which
// is reported as zero.
func improvement(before, after gropt.Metrics) float64 {
	sum := weightRuleCount * relative(float64(before.RuleCount), float64(after.RuleCount))
	sum += weightAlternatives * relative(float64(before.AlternativeCount), float64(after.AlternativeCount))
	sum += weightAvgComplexity * relative(before.AvgComplexity, after.AvgComplexity)
	sum += weightLeftRecursion * relative(leftRecursionRatio(before), leftRecursionRatio(after))
	sum += weightDepth * relative(float64(before.MaxDependencyDepth), float64(after.MaxDependencyDepth))
	if sum < 0 {
		return 0
	}
	return sum
}

func relative(before, after float64) float64 {
	if before == 0 {
		return 0
	}
	return (before - after) / before
}

func leftRecursionRatio(m gropt.Metrics) float64 {
	if m.RuleCount == 0 {
		return 0
	}
	return float64(m.LeftRecursiveRules) / float64(m.RuleCount)
}
