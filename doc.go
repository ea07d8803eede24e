/*
Package gropt is a grammar rewriting and optimization toolbox.

GRopt takes a context-free grammar, given as a flat collection of named
rules, and rewrites it into a (best-effort) equivalent grammar with fewer
rules, no direct left recursion, factored common prefixes and bounded rule
complexity. Package structure is as follows:

■ gropt (this package): the shared rule model. Rules carry alternatives
(sequences of symbols), a derived dependency set, recursion flags and cost
estimates. A Grammar is an ordered, name-addressable collection of rules,
together with structural metrics over it.

■ opt: Package opt implements the rewriting passes (dead-rule removal,
left factoring, elimination of direct left recursion, similarity-based
consolidation, complexity capping), a pipeline orchestrator running them to
a fixed point, and an independent grammar validator.

The engine is deliberately tolerant: malformed input degrades the result, it
does not abort the rewrite. Structural defects are communicated as data, by
the validator and by warnings in the optimization report.

GRopt does not parse any concrete grammar file syntax and does not prove
language equivalence of the rewritten grammar; both are the business of
surrounding components.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package gropt
