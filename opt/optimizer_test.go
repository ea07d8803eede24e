package opt

import (
	"strings"
	"testing"

	"github.com/npillmayer/gropt"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// The canonical expression grammar drives most orchestrator tests.
//
//	Expr   → Expr + Term | Term
//	Term   → Term * Factor | Factor
//	Factor → ( Expr ) | num
func expressionGrammar() *gropt.Grammar {
	return gropt.NewGrammar(
		gropt.NewRule("Expr", []string{"Expr", "+", "Term"}, []string{"Term"}),
		gropt.NewRule("Term", []string{"Term", "*", "Factor"}, []string{"Factor"}),
		gropt.NewRule("Factor", []string{"(", "Expr", ")"}, []string{"num"}),
	)
}

func TestOptimizeExpressionGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gropt.opt")
	defer teardown()
	//
	g := expressionGrammar()
	o := NewOptimizer(DefaultOptions())
	optimized, report := o.Optimize(g)
	if report.OriginalRuleCount != 3 {
		t.Errorf("Expected original rule count 3, got %d", report.OriginalRuleCount)
	}
	if optimized.Rule("Expr") == nil || optimized.Rule("Expr_prime") == nil {
		t.Fatalf("Expected Expr and Expr_prime in output, got:\n%v", optimized)
	}
	m := optimized.Measure()
	if m.LeftRecursiveRules != 0 {
		t.Errorf("Expected no left-recursive rules after optimization, got %d", m.LeftRecursiveRules)
	}
	if g.Size() != 3 || !g.Rule("Expr").IsLeftRecursive {
		t.Errorf("Input grammar must stay unmodified")
	}
}

func TestIdempotenceAtFixedPoint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gropt.opt")
	defer teardown()
	//
	o := NewOptimizer(DefaultOptions())
	once, _ := o.Optimize(expressionGrammar())
	twice, report := o.Optimize(once)
	if len(report.OptimizationsApplied) != 0 {
		t.Errorf("Re-optimizing a fixed point must apply nothing, got %v",
			report.OptimizationsApplied)
	}
	if report.ReductionPercentage != 0 {
		t.Errorf("Expected zero reduction at the fixed point, got %g", report.ReductionPercentage)
	}
	if twice.Size() != once.Size() {
		t.Errorf("Rule count changed at the fixed point: %d -> %d", once.Size(), twice.Size())
	}
}

func TestStatisticsMatchLog(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gropt.opt")
	defer teardown()
	//
	stmt := gropt.NewRule("Stmt",
		[]string{"if", "Expr", "Stmt"},
		[]string{"if", "Expr", "Stmt", "else", "Stmt"},
		[]string{"print", "Expr"},
	)
	stmt.UsageCount = 5 // anchors the reachability start set
	g := gropt.NewGrammar(
		stmt,
		gropt.NewRule("Expr", []string{"Expr", "+", "x"}, []string{"x"}),
	)
	o := NewOptimizer(DefaultOptions())
	_, report := o.Optimize(g)
	factoringLines := 0
	for _, entry := range report.OptimizationsApplied {
		if strings.HasPrefix(entry, "Left factoring") {
			factoringLines++
		}
	}
	if report.Statistics.LeftFactoringApplications != factoringLines {
		t.Errorf("Statistics (%d) out of sync with log (%d factoring lines)",
			report.Statistics.LeftFactoringApplications, factoringLines)
	}
	s := report.Statistics
	if s.DeadRulesRemoved < 0 || s.LeftFactoringApplications < 0 ||
		s.RecursionEliminations < 0 || s.RulesConsolidated < 0 || s.ComplexityReductions < 0 {
		t.Errorf("Statistics counters must be non-negative: %+v", s)
	}
	if s.EstimatedSpeedupFactor < 1.0 {
		t.Errorf("Estimated speedup factor must be >= 1.0, got %g", s.EstimatedSpeedupFactor)
	}
}

func TestRefusalWarningSurfaces(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gropt.opt")
	defer teardown()
	//
	g := gropt.NewGrammar(
		gropt.NewRule("Bad", []string{"Bad", "x"}),
		gropt.NewRule("Good", []string{"y"}),
	)
	opts := DefaultOptions()
	opts.EnableDeadRuleRemoval = false // keep Bad in place
	o := NewOptimizer(opts)
	optimized, report := o.Optimize(g)
	found := false
	for _, w := range report.Warnings {
		if strings.Contains(w, "only left-recursive alternatives") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected refusal warning, got %v", report.Warnings)
	}
	bad := optimized.Rule("Bad")
	if bad == nil || len(bad.Alternatives) != 1 || bad.Alternatives[0][0] != "Bad" {
		t.Errorf("Refused rule must pass through unchanged: %v", bad)
	}
}

func TestDisabledPassesDoNothing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gropt.opt")
	defer teardown()
	//
	g := expressionGrammar()
	o := NewOptimizer(Options{MaxOptimizationPasses: 5}) // everything disabled
	optimized, report := o.Optimize(g)
	if len(report.OptimizationsApplied) != 0 || optimized.Size() != 3 {
		t.Errorf("Disabled passes must not touch the grammar, log: %v",
			report.OptimizationsApplied)
	}
	if optimized.Rule("Expr") == g.Rule("Expr") {
		t.Errorf("Output must not alias the input, even without rewriting")
	}
}

func TestPassBudgetRespected(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gropt.opt")
	defer teardown()
	//
	g := expressionGrammar()
	opts := DefaultOptions()
	opts.MaxOptimizationPasses = 1
	o := NewOptimizer(opts)
	optimized, _ := o.Optimize(g)
	// one pass eliminates both left recursions, adding two prime rules
	if optimized.Size() != 5 {
		t.Errorf("Expected 5 rules after a single pass, got %d:\n%v", optimized.Size(), optimized)
	}
}

func TestReductionPercentage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gropt.opt")
	defer teardown()
	//
	start := gropt.NewRule("Start", []string{"x"})
	start.UsageCount = 5
	g := gropt.NewGrammar(
		start,
		gropt.NewRule("Dead1", []string{"y"}),
		gropt.NewRule("Dead2", []string{"z"}),
	)
	opts := Options{EnableDeadRuleRemoval: true, MaxOptimizationPasses: 5, MinUsageThreshold: 1}
	_, report := NewOptimizer(opts).Optimize(g)
	if report.OptimizedRuleCount != 1 {
		t.Fatalf("Expected 1 surviving rule, got %d", report.OptimizedRuleCount)
	}
	want := 100.0 * 2 / 3
	if report.ReductionPercentage < want-0.01 || report.ReductionPercentage > want+0.01 {
		t.Errorf("Expected reduction of about %.2f%%, got %g", want, report.ReductionPercentage)
	}
	if report.Statistics.DeadRulesRemoved != 1 {
		t.Errorf("Expected one pass with dead-rule removals, got %d",
			report.Statistics.DeadRulesRemoved)
	}
}
