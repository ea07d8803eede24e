package opt

import (
	"fmt"
	"strings"

	"github.com/npillmayer/gropt"
)

// Bounds for derivation sampling. Sampling is a spot check, not an
// enumeration; the caps keep it cheap on recursive grammars.
const (
	sampleLimit     = 50   // sentences collected per grammar
	sampleDepth     = 16   // expansion steps per sentential form
	sampleFormLen   = 24   // symbols per sentential form
	sampleWorkLimit = 4000 // total expansion steps per sampling run
)

// compareDerivations spot-checks language preservation: it samples terminal
// sentences from the grammar before and after rewriting, by bounded leftmost
// expansion from the same start set, and reports sentences that were
// derivable before but are missing from the rewritten sample. The check is
// approximate in both directions: a clean result proves nothing, and deep
// derivations may be cut off by the sampling bounds.
func compareDerivations(before, after *gropt.Grammar, opts Options) []string {
	starts := startRules(before, opts)
	if len(starts) == 0 {
		return nil
	}
	names := make([]string, len(starts))
	for i, r := range starts {
		names[i] = r.Name
	}
	was := sampleDerivations(before, names)
	is := sampleDerivations(after, names)
	missing := 0
	for sentence := range was {
		if !is[sentence] {
			missing++
			tracer().Infof("semantics check: sentence %q no longer derivable", sentence)
		}
	}
	if missing == 0 {
		return nil
	}
	return []string{fmt.Sprintf(
		"semantics check: %d of %d sampled derivation(s) not reproduced by the rewritten grammar",
		missing, len(was))}
}

// form is one sentential form during sampling, with its expansion budget.
type form struct {
	symbols []string
	depth   int
}

// sampleDerivations collects terminal sentences derivable from the given
// start rules, by breadth-first leftmost expansion. A symbol is expanded
// when it names a rule of g; everything else counts as terminal. All bounds
// (sentence count, expansion depth, form length, total work) cut silently.
func sampleDerivations(g *gropt.Grammar, starts []string) map[string]bool {
	sentences := map[string]bool{}
	queue := make([]form, 0, len(starts))
	for _, name := range starts {
		queue = append(queue, form{symbols: []string{name}})
	}
	work := 0
	for len(queue) > 0 && len(sentences) < sampleLimit && work < sampleWorkLimit {
		f := queue[0]
		queue = queue[1:]
		work++
		at := -1
		for i, sym := range f.symbols {
			if g.Contains(sym) {
				at = i
				break
			}
		}
		if at < 0 { // all terminal
			sentences[strings.Join(f.symbols, " ")] = true
			continue
		}
		if f.depth >= sampleDepth {
			continue
		}
		rule := g.Rule(f.symbols[at])
		for _, alt := range rule.Alternatives {
			expanded := make([]string, 0, len(f.symbols)+len(alt)-1)
			expanded = append(expanded, f.symbols[:at]...)
			expanded = append(expanded, alt...)
			expanded = append(expanded, f.symbols[at+1:]...)
			if len(expanded) > sampleFormLen {
				continue
			}
			queue = append(queue, form{symbols: expanded, depth: f.depth + 1})
		}
	}
	return sentences
}
