package rule

import (
	"testing"

	"github.com/praetorian-inc/html5lint/pkg/types"
)

func TestValidateCheck_Valid(t *testing.T) {
	c := &types.Check{
		Name:             "tabs",
		Kind:             types.KindTab,
		Summary:          "No tabs",
		Examples:         []string{"\tfoo"},
		NegativeExamples: []string{"  foo"},
	}
	if err := ValidateCheck(c); err != nil {
		t.Errorf("expected valid check, got %v", err)
	}
}

func TestValidateCheck_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		check *types.Check
	}{
		{"nil", nil},
		{"missing name", &types.Check{Kind: types.KindTab, Summary: "x"}},
		{"kind mismatch", &types.Check{Name: "tabs", Kind: types.KindIndentation, Summary: "x"}},
		{"missing summary", &types.Check{Name: "tabs", Kind: types.KindTab}},
		{"silent example", &types.Check{Name: "tabs", Kind: types.KindTab, Summary: "x", Examples: []string{"foo"}}},
		{"reported negative", &types.Check{Name: "tabs", Kind: types.KindTab, Summary: "x", NegativeExamples: []string{"\t"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateCheck(tt.check); err == nil {
				t.Error("expected error")
			}
		})
	}
}

// TestBuiltinChecks runs the examples of every catalogue entry through the
// linter.
func TestBuiltinChecks(t *testing.T) {
	checks, err := NewLoader().LoadBuiltinChecks()
	if err != nil {
		t.Fatalf("LoadBuiltinChecks failed: %v", err)
	}
	for _, c := range checks {
		t.Run(c.Name, func(t *testing.T) {
			if len(c.Examples) == 0 {
				t.Error("check has no examples")
			}
			if err := ValidateCheck(c); err != nil {
				t.Error(err)
			}
		})
	}
}

func TestValidateRuleset(t *testing.T) {
	known := map[string]bool{"tabs": true, "doctype": true}
	tests := []struct {
		name    string
		rs      *types.Ruleset
		wantErr bool
	}{
		{"valid", &types.Ruleset{ID: "a", Name: "A", CheckNames: []string{"tabs"}}, false},
		{"nil", nil, true},
		{"missing id", &types.Ruleset{Name: "A", CheckNames: []string{"tabs"}}, true},
		{"missing name", &types.Ruleset{ID: "a", CheckNames: []string{"tabs"}}, true},
		{"empty", &types.Ruleset{ID: "a", Name: "A"}, true},
		{"unknown", &types.Ruleset{ID: "a", Name: "A", CheckNames: []string{"nope"}}, true},
		{"duplicate", &types.Ruleset{ID: "a", Name: "A", CheckNames: []string{"tabs", "tabs"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRuleset(tt.rs, known)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRuleset() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBuiltinRulesets(t *testing.T) {
	loader := NewLoader()
	checks, err := loader.LoadBuiltinChecks()
	if err != nil {
		t.Fatal(err)
	}
	known := map[string]bool{}
	for _, c := range checks {
		known[c.Name] = true
	}

	rulesets, err := loader.LoadBuiltinRulesets()
	if err != nil {
		t.Fatal(err)
	}
	for _, rs := range rulesets {
		if err := ValidateRuleset(rs, known); err != nil {
			t.Errorf("ruleset %s: %v", rs.ID, err)
		}
		if got := ResolveRuleset(rs, checks); len(got) != len(rs.CheckNames) {
			t.Errorf("ruleset %s resolved to %d checks, want %d", rs.ID, len(got), len(rs.CheckNames))
		}
	}
}
