package opt

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
)

// Print writes a colored summary of the report to the console. It is a
// convenience for interactive use; programs consume the Report value
// directly.
func (r *Report) Print() {
	pterm.Info.Println(fmt.Sprintf("%d rule(s) in, %d out (%.1f%% reduction)",
		r.OriginalRuleCount, r.OptimizedRuleCount, r.ReductionPercentage))
	pterm.Info.Println(fmt.Sprintf("estimated performance improvement %.1f%%, speedup factor %.2f",
		r.PerformanceImprovement, r.Statistics.EstimatedSpeedupFactor))
	for _, entry := range r.OptimizationsApplied {
		pterm.Info.Println(entry)
	}
	for _, w := range r.Warnings {
		pterm.Warning.Println(w)
	}
}

// ReportAsHTML exports a report in HTML format, e.g. for inspection of an
// optimization run in a browser.
func ReportAsHTML(r *Report, w io.Writer) {
	io.WriteString(w, "<html><body>\n")
	io.WriteString(w, "<h1>Grammar optimization report</h1>\n")
	fmt.Fprintf(w, "<p>%d rule(s) in, %d out, reduction %.1f%%</p>\n",
		r.OriginalRuleCount, r.OptimizedRuleCount, r.ReductionPercentage)
	fmt.Fprintf(w, "<p>performance improvement %.1f%%, estimated speedup %.2f</p>\n",
		r.PerformanceImprovement, r.Statistics.EstimatedSpeedupFactor)
	io.WriteString(w, "<table border=1 cellspacing=0 cellpadding=5>\n")
	io.WriteString(w, "<tr bgcolor=#cccccc><td></td><td>before</td><td>after</td></tr>\n")
	row := func(label string, before, after interface{}) {
		fmt.Fprintf(w, "<tr><td>%s</td><td>%v</td><td>%v</td></tr>\n", label, before, after)
	}
	row("rules", r.Before.RuleCount, r.After.RuleCount)
	row("alternatives", r.Before.AlternativeCount, r.After.AlternativeCount)
	row("avg complexity", fmt.Sprintf("%.2f", r.Before.AvgComplexity),
		fmt.Sprintf("%.2f", r.After.AvgComplexity))
	row("recursive rules", r.Before.RecursiveRules, r.After.RecursiveRules)
	row("left-recursive rules", r.Before.LeftRecursiveRules, r.After.LeftRecursiveRules)
	row("max dependency depth", r.Before.MaxDependencyDepth, r.After.MaxDependencyDepth)
	io.WriteString(w, "</table>\n")
	if len(r.OptimizationsApplied) > 0 {
		io.WriteString(w, "<h2>Applied optimizations</h2>\n<ol>\n")
		for _, entry := range r.OptimizationsApplied {
			fmt.Fprintf(w, "<li>%s</li>\n", entry)
		}
		io.WriteString(w, "</ol>\n")
	}
	if len(r.Warnings) > 0 {
		io.WriteString(w, "<h2>Warnings</h2>\n<ul>\n")
		for _, warning := range r.Warnings {
			fmt.Fprintf(w, "<li>%s</li>\n", warning)
		}
		io.WriteString(w, "</ul>\n")
	}
	io.WriteString(w, "</body></html>\n")
}
