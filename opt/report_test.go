package opt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestReportAsHTML(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gropt.opt")
	defer teardown()
	//
	_, report := NewOptimizer(DefaultOptions()).Optimize(expressionGrammar())
	var buf bytes.Buffer
	ReportAsHTML(report, &buf)
	html := buf.String()
	for _, want := range []string{"<html>", "max dependency depth", "Applied optimizations", "</html>"} {
		if !strings.Contains(html, want) {
			t.Errorf("Expected HTML export to contain %q", want)
		}
	}
}

func TestReportMarshalsToJSON(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gropt.opt")
	defer teardown()
	//
	_, report := NewOptimizer(DefaultOptions()).Optimize(expressionGrammar())
	data, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("Report must marshal to JSON: %v", err)
	}
	for _, key := range []string{"originalRuleCount", "estimatedSpeedupFactor", "optimizationsApplied"} {
		if !strings.Contains(string(data), key) {
			t.Errorf("Expected JSON report to contain key %q", key)
		}
	}
}
