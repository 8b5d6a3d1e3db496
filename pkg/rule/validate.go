package rule

import (
	"fmt"

	"github.com/praetorian-inc/html5lint/pkg/linter"
	"github.com/praetorian-inc/html5lint/pkg/types"
)

// ValidateCheck checks a catalogue entry for consistency. Every example
// must make the linter report the check's kind and no negative example may.
func ValidateCheck(c *types.Check) error {
	if c == nil {
		return fmt.Errorf("check is nil")
	}
	if c.Name == "" {
		return fmt.Errorf("check name is required")
	}
	if !c.Kind.Valid() || c.Kind.Name() != c.Name {
		return fmt.Errorf("check %s does not match its kind %s", c.Name, c.Kind)
	}
	if c.Summary == "" {
		return fmt.Errorf("check %s has no summary", c.Name)
	}

	for _, ex := range c.Examples {
		if !reports(ex, c.Kind) {
			return fmt.Errorf("check %s: example is not reported: %q", c.Name, ex)
		}
	}
	for _, ex := range c.NegativeExamples {
		if reports(ex, c.Kind) {
			return fmt.Errorf("check %s: negative example is reported: %q", c.Name, ex)
		}
	}
	return nil
}

// ValidateRuleset checks ruleset consistency and required fields.
// knownChecks is a set of valid check names for reference checking.
func ValidateRuleset(rs *types.Ruleset, knownChecks map[string]bool) error {
	if rs == nil {
		return fmt.Errorf("ruleset is nil")
	}
	if rs.ID == "" {
		return fmt.Errorf("ruleset ID is required")
	}
	if rs.Name == "" {
		return fmt.Errorf("ruleset name is required")
	}
	if len(rs.CheckNames) == 0 {
		return fmt.Errorf("ruleset %s must reference at least one check", rs.ID)
	}

	seen := make(map[string]bool)
	for _, name := range rs.CheckNames {
		if knownChecks != nil && !knownChecks[name] {
			return fmt.Errorf("ruleset %s references unknown check: %s", rs.ID, name)
		}
		if seen[name] {
			return fmt.Errorf("ruleset %s contains duplicate check: %s", rs.ID, name)
		}
		seen[name] = true
	}
	return nil
}

// ResolveRuleset returns the checks of rs, in catalogue order.
func ResolveRuleset(rs *types.Ruleset, checks []*types.Check) []*types.Check {
	want := make(map[string]bool, len(rs.CheckNames))
	for _, n := range rs.CheckNames {
		want[n] = true
	}
	var out []*types.Check
	for _, c := range checks {
		if want[c.Name] {
			out = append(out, c)
		}
	}
	return out
}

func reports(doc string, kind types.Kind) bool {
	for _, m := range linter.Lint(doc) {
		if m.Kind == kind {
			return true
		}
	}
	return false
}
