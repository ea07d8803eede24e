/*
Package opt implements the grammar rewriting passes of GRopt, together with
a pipeline orchestrator and an independent validator.

The passes, in pipeline order:

■ Dead-rule removal drops every rule not reachable by name-chasing from a
start set (explicitly configured, or chosen heuristically).

■ Left factoring extracts common alternative prefixes within a rule into
synthesized helper rules.

■ Left-recursion elimination rewrites directly left-recursive rules into
right-recursive equivalents with a classic prime-rule construction. Only
direct, single-rule left recursion is handled; indirect recursion across
several rules is out of scope.

■ Consolidation merges rules whose alternatives, dependencies and structure
are sufficiently similar, rewriting references to the merged-away names.

■ Complexity capping truncates alternative lists and splits overlong
alternatives of rules exceeding a configured complexity budget.

An Optimizer runs the enabled passes in fixed order over bounded passes
until the rule count converges, and reports statistics, warnings and a
performance-improvement estimate. ValidateGrammar checks a rule collection
for structural defects without mutating it and may be used standalone.

Usage

	g := gropt.NewGrammar(rules...)
	o := opt.NewOptimizer(opt.DefaultOptions())
	optimized, report := o.Optimize(g)
	report.Print()

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package opt

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gropt.opt'.
func tracer() tracing.Trace {
	return tracing.Select("gropt.opt")
}
