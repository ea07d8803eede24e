package opt

import (
	"reflect"
	"testing"

	"github.com/npillmayer/gropt"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestFactorIfElse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gropt.opt")
	defer teardown()
	//
	stmt := gropt.NewRule("Stmt",
		[]string{"if", "Expr", "Stmt"},
		[]string{"if", "Expr", "Stmt", "else", "Stmt"},
		[]string{"print", "Expr"},
	)
	helpers, n := factorRule(stmt)
	if n != 1 || len(helpers) != 1 {
		t.Fatalf("Expected 1 factoring / 1 helper rule, got %d / %d", n, len(helpers))
	}
	helper := helpers[0]
	if helper.Name != "Stmt_factored_0" {
		t.Errorf("Expected helper rule Stmt_factored_0, got %q", helper.Name)
	}
	wantHelper := [][]string{{}, {"else", "Stmt"}}
	if !reflect.DeepEqual(helper.Alternatives, wantHelper) {
		t.Errorf("Helper alternatives = %v, expected %v", helper.Alternatives, wantHelper)
	}
	wantStmt := [][]string{
		{"if", "Expr", "Stmt", "Stmt_factored_0"},
		{"print", "Expr"},
	}
	if !reflect.DeepEqual(stmt.Alternatives, wantStmt) {
		t.Errorf("Factored rule alternatives = %v, expected %v", stmt.Alternatives, wantStmt)
	}
}

func TestFactorHelperComplexity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gropt.opt")
	defer teardown()
	//
	r := gropt.NewRule("R",
		[]string{"a1", "b1", "c1"},
		[]string{"a1", "b1", "d1"},
	)
	r.Complexity = 5
	helpers, _ := factorRule(r)
	if len(helpers) != 1 {
		t.Fatalf("Expected 1 helper rule, got %d", len(helpers))
	}
	if helpers[0].Complexity != 4 {
		t.Errorf("Expected helper complexity 0.8*5 = 4, got %g", helpers[0].Complexity)
	}
	if !helpers[0].DependsOn("c1") || !helpers[0].DependsOn("d1") {
		t.Errorf("Helper dependencies not rescanned: %v", helpers[0].DependencyNames())
	}
}

func TestFactorTwoGroups(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gropt.opt")
	defer teardown()
	//
	r := gropt.NewRule("R",
		[]string{"a", "x", "y"},
		[]string{"b", "x"},
		[]string{"a", "x", "z"},
		[]string{"b", "y"},
	)
	helpers, n := factorRule(r)
	if n != 2 || len(helpers) != 2 {
		t.Fatalf("Expected 2 independent factorings, got %d (%d helpers)", n, len(helpers))
	}
	if helpers[0].Name != "R_factored_0" || helpers[1].Name != "R_factored_1" {
		t.Errorf("Unexpected helper names: %q, %q", helpers[0].Name, helpers[1].Name)
	}
	want := [][]string{
		{"a", "x", "R_factored_0"},
		{"b", "R_factored_1"},
	}
	if !reflect.DeepEqual(r.Alternatives, want) {
		t.Errorf("Factored rule alternatives = %v, expected %v", r.Alternatives, want)
	}
}

func TestFactorNothingToDo(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gropt.opt")
	defer teardown()
	//
	single := gropt.NewRule("S", []string{"a", "b"})
	if _, n := factorRule(single); n != 0 {
		t.Errorf("Rule with one alternative must not factor, got %d factorings", n)
	}
	distinct := gropt.NewRule("D", []string{"a", "x"}, []string{"b", "x"})
	if _, n := factorRule(distinct); n != 0 {
		t.Errorf("Groups of size 1 must not factor, got %d factorings", n)
	}
	eps := gropt.NewRule("E", []string{}, []string{})
	if _, n := factorRule(eps); n != 0 {
		t.Errorf("Epsilon alternatives must never group, got %d factorings", n)
	}
}
