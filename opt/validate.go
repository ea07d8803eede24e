package opt

import (
	"fmt"
	"strings"

	"github.com/npillmayer/gropt"
)

// ValidationResult is the outcome of a validation run. Errors are structural
// defects which will break consumers of the grammar; warnings point at
// suspicious constructs which merely degrade it.
type ValidationResult struct {
	IsValid  bool     `json:"isValid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// ValidateGrammar checks a rule collection for structural defects: blank
// rule names, rules without alternatives, dependencies on rules not present
// in the collection, and left-recursive rules whose every alternative starts
// with the rule's own name (guaranteed-infinite recursion).
//
// Validation never mutates the grammar. It is independent of the optimizer
// and may be run standalone, before or after rewriting.
func ValidateGrammar(g *gropt.Grammar) ValidationResult {
	result := ValidationResult{IsValid: true}
	for _, r := range g.Rules() {
		if strings.TrimSpace(r.Name) == "" {
			result.Errors = append(result.Errors, "rule with empty name")
		}
		if len(r.Alternatives) == 0 {
			result.Errors = append(result.Errors,
				fmt.Sprintf("rule %q has no alternatives", r.Name))
		}
		for _, dep := range r.DependencyNames() {
			if !g.Contains(dep) {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("rule %q depends on unknown rule %q", r.Name, dep))
			}
		}
		if r.IsLeftRecursive && onlySelfHeaded(r) {
			result.Errors = append(result.Errors,
				fmt.Sprintf("rule %q can only recurse into itself: infinite recursion", r.Name))
		}
	}
	result.IsValid = len(result.Errors) == 0
	return result
}

// onlySelfHeaded reports whether every alternative of r starts with r's own
// name. A rule like that derives nothing.
func onlySelfHeaded(r *gropt.Rule) bool {
	if len(r.Alternatives) == 0 {
		return false
	}
	for _, alt := range r.Alternatives {
		if len(alt) == 0 || alt[0] != r.Name {
			return false
		}
	}
	return true
}
