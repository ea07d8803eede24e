package gropt

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/emirpasic/gods/sets/treeset"
)

// --- Rules ------------------------------------------------------------------

// A Rule is the unit of a grammar: a name together with an ordered list of
// alternatives. Every alternative is an ordered sequence of symbols; an empty
// sequence denotes the epsilon-alternative.
//
// Rules carry a couple of derived annotations which the rewriting passes in
// package opt read and update: a dependency set (names of other rules this
// rule is taken to reference), recursion flags, a usage count and a scalar
// complexity estimate. None of these are ground truth; they are heuristic
// signals, scaled rather than recomputed by most passes.
type Rule struct {
	Name                  string       // unique within a grammar; uniqueness is assumed, not enforced
	Alternatives          [][]string   // ordered; empty inner sequence = epsilon
	Dependencies          *treeset.Set // of string, rule names referenced by this rule
	IsRecursive           bool         // some alternative references the rule itself
	IsLeftRecursive       bool         // some alternative starts with the rule's own name
	IsRightRecursive      bool         // some alternative ends with the rule's own name
	UsageCount            int          // approximate usage signal, never ground truth
	Complexity            float64      // non-negative cost estimate
	OptimizationPotential float64      // scratch value for future heuristics
}

// NewRule creates a rule from a name and a list of alternatives. Dependencies,
// recursion flags and an initial complexity estimate are derived from the
// alternatives.
func NewRule(name string, alternatives ...[]string) *Rule {
	r := &Rule{
		Name:         name,
		Alternatives: alternatives,
		Dependencies: NewDependencySet(),
	}
	r.ScanDependencies()
	r.ScanFlags()
	r.Complexity = r.EstimateComplexity()
	return r
}

// NewDependencySet creates an empty, ordered set of rule names.
func NewDependencySet(names ...string) *treeset.Set {
	s := treeset.NewWithStringComparator()
	for _, name := range names {
		s.Add(name)
	}
	return s
}

// LooksLikeRuleRef reports whether a symbol is taken for a reference to
// another rule. A symbol counts as a rule reference when its first character
// is a lowercase letter and the symbol is longer than one character. This
// heuristic stands in for an explicit terminal/non-terminal tag, which the
// rule model does not carry.
func LooksLikeRuleRef(sym string) bool {
	if utf8.RuneCountInString(sym) <= 1 {
		return false
	}
	first, _ := utf8.DecodeRuneInString(sym)
	return unicode.IsLower(first)
}

// ScanDependencies recomputes the rule's dependency set from its alternatives,
// using the LooksLikeRuleRef heuristic.
func (r *Rule) ScanDependencies() {
	deps := NewDependencySet()
	for _, alt := range r.Alternatives {
		for _, sym := range alt {
			if sym != r.Name && LooksLikeRuleRef(sym) {
				deps.Add(sym)
			}
		}
	}
	r.Dependencies = deps
}

// ScanFlags recomputes the three recursion flags from the rule's alternatives.
func (r *Rule) ScanFlags() {
	r.IsRecursive, r.IsLeftRecursive, r.IsRightRecursive = false, false, false
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

// EstimateComplexity derives an initial cost estimate from the rule's shape:
// the number of alternatives plus the mean alternative length. Rewriting
// passes scale this value rather than re-derive it.
func (r *Rule) EstimateComplexity() float64 {
	if len(r.Alternatives) == 0 {
		return 0
	}
	syms := 0
	for _, alt := range r.Alternatives {
		syms += len(alt)
	}
	return float64(len(r.Alternatives)) + float64(syms)/float64(len(r.Alternatives))
}

// DependsOn reports whether name is in the rule's dependency set.
func (r *Rule) DependsOn(name string) bool {
	return r.Dependencies != nil && r.Dependencies.Contains(name)
}

// DependencyNames returns the rule's dependency set as a sorted string slice.
func (r *Rule) DependencyNames() []string {
	if r.Dependencies == nil {
		return nil
	}
	names := make([]string, 0, r.Dependencies.Size())
	for _, v := range r.Dependencies.Values() {
		names = append(names, v.(string))
	}
	return names
}

// Clone returns a deep copy of the rule. The copy owns its alternative
// sequences and its dependency set.
func (r *Rule) Clone() *Rule {
	c := &Rule{
		Name:                  r.Name,
		IsRecursive:           r.IsRecursive,
		IsLeftRecursive:       r.IsLeftRecursive,
		IsRightRecursive:      r.IsRightRecursive,
		UsageCount:            r.UsageCount,
		Complexity:            r.Complexity,
		OptimizationPotential: r.OptimizationPotential,
	}
	c.Alternatives = make([][]string, len(r.Alternatives))
	for i, alt := range r.Alternatives {
		c.Alternatives[i] = append([]string(nil), alt...)
	}
	c.Dependencies = NewDependencySet(r.DependencyNames()...)
	return c
}

func (r *Rule) String() string {
	alts := make([]string, len(r.Alternatives))
	for i, alt := range r.Alternatives {
		if len(alt) == 0 {
			alts[i] = "ε"
		} else {
			alts[i] = strings.Join(alt, " ")
		}
	}
	return fmt.Sprintf("[%s] ::= %s", r.Name, strings.Join(alts, " | "))
}

// --- Grammars ---------------------------------------------------------------

// A Grammar is an ordered collection of rules, addressable by name. The
// engine assumes rule names to be unique within one grammar; it does not
// enforce this on input.
type Grammar struct {
	rules []*Rule
	index map[string]*Rule
}

// NewGrammar creates a grammar from a list of rules, preserving their order.
func NewGrammar(rules ...*Rule) *Grammar {
	g := &Grammar{index: map[string]*Rule{}}
	for _, r := range rules {
		g.Add(r)
	}
	return g
}

// Add appends a rule to the grammar.
func (g *Grammar) Add(r *Rule) {
	g.rules = append(g.rules, r)
	g.index[r.Name] = r
}

// Rule returns the rule with the given name, or nil.
func (g *Grammar) Rule(name string) *Rule {
	return g.index[name]
}

// Contains reports whether a rule with the given name is present.
func (g *Grammar) Contains(name string) bool {
	_, ok := g.index[name]
	return ok
}

// Size returns the number of rules.
func (g *Grammar) Size() int {
	return len(g.rules)
}

// Rules returns the rules in grammar order. Callers must not modify the
// returned slice.
func (g *Grammar) Rules() []*Rule {
	return g.rules
}

// EachRule iterates over all rules in grammar order, applying a mapper
// function. Iteration stops at the first non-nil return value, which is then
// returned.
func (g *Grammar) EachRule(mapper func(*Rule) interface{}) interface{} {
	for _, r := range g.rules {
		if v := mapper(r); v != nil {
			return v
		}
	}
	return nil
}

// Remove deletes the rule with the given name. It reports whether a rule was
// present.
func (g *Grammar) Remove(name string) bool {
	if _, ok := g.index[name]; !ok {
		return false
	}
	delete(g.index, name)
	for i, r := range g.rules {
		if r.Name == name {
			g.rules = append(g.rules[:i], g.rules[i+1:]...)
			break
		}
	}
	return true
}

// Filter keeps only rules for which keep returns true, preserving order, and
// returns the number of rules dropped.
func (g *Grammar) Filter(keep func(*Rule) bool) int {
	kept := g.rules[:0]
	dropped := 0
	for _, r := range g.rules {
		if keep(r) {
			kept = append(kept, r)
		} else {
			delete(g.index, r.Name)
			dropped++
		}
	}
	g.rules = kept
	return dropped
}

// Clone returns a deep copy of the grammar. No rule of the copy aliases any
// rule of the original.
func (g *Grammar) Clone() *Grammar {
	c := NewGrammar()
	for _, r := range g.rules {
		c.Add(r.Clone())
	}
	return c
}

func (g *Grammar) String() string {
	var b strings.Builder
	for i, r := range g.rules {
		fmt.Fprintf(&b, "%d: %s\n", i, r)
	}
	return b.String()
}
