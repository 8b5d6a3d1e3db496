package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/praetorian-inc/html5lint/pkg/rule"
	"github.com/praetorian-inc/html5lint/pkg/types"
)

var (
	rulesFormat  string
	rulesInclude string
	rulesExclude string
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect the check catalogue",
	Long:  "Commands for listing the checks and rulesets html5lint knows",
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available checks",
	Long:  "Display every check with the name --disable accepts, its severity and category",
	RunE:  runRulesList,
}

var rulesetsCmd = &cobra.Command{
	Use:   "rulesets",
	Short: "List built-in rulesets",
	RunE:  runRulesets,
}

func init() {
	rulesCmd.AddCommand(rulesListCmd)
	rulesCmd.AddCommand(rulesetsCmd)
	rulesListCmd.Flags().StringVar(&rulesFormat, "format", "table", "Output format: table, json")
	rulesListCmd.Flags().StringVar(&rulesInclude, "include", "", "Only list checks whose name matches a regex (comma-separated)")
	rulesListCmd.Flags().StringVar(&rulesExclude, "exclude", "", "Leave out checks whose name matches a regex (comma-separated)")
}

// checkJSON is the listing form of a check.
type checkJSON struct {
	Name     string         `json:"name"`
	Severity types.Severity `json:"severity"`
	Category string         `json:"category"`
	URL      string         `json:"url,omitempty"`
	Summary  string         `json:"summary"`
}

func runRulesList(cmd *cobra.Command, args []string) error {
	checks, err := rule.NewLoader().LoadBuiltinChecks()
	if err != nil {
		return fmt.Errorf("loading builtin checks: %w", err)
	}

	if rulesInclude != "" || rulesExclude != "" {
		checks, err = rule.Filter(checks, rule.FilterConfig{
			Include: rule.ParsePatterns(rulesInclude),
			Exclude: rule.ParsePatterns(rulesExclude),
		})
		if err != nil {
			return fmt.Errorf("filtering checks: %w", err)
		}
	}

	switch rulesFormat {
	case "json":
		return outputChecksJSON(cmd, checks)
	case "table":
		return outputChecksTable(cmd, checks)
	default:
		return fmt.Errorf("unknown output format: %s", rulesFormat)
	}
}

func outputChecksJSON(cmd *cobra.Command, checks []*types.Check) error {
	out := make([]checkJSON, 0, len(checks))
	for _, c := range checks {
		out = append(out, checkJSON{
			Name:     c.Name,
			Severity: c.Kind.Severity(),
			Category: c.Kind.Category(),
			URL:      c.Kind.URL(),
			Summary:  c.Summary,
		})
	}
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func outputChecksTable(cmd *cobra.Command, checks []*types.Check) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "Name\tSeverity\tCategory\tSummary\n")
	fmt.Fprintf(w, "----\t--------\t--------\t-------\n")
	for _, c := range checks {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.Name, c.Kind.Severity(), c.Kind.Category(), c.Summary)
	}
	return nil
}

func runRulesets(cmd *cobra.Command, args []string) error {
	rulesets, err := rule.NewLoader().LoadBuiltinRulesets()
	if err != nil {
		return fmt.Errorf("loading builtin rulesets: %w", err)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "ID\tName\tChecks\n")
	fmt.Fprintf(w, "--\t----\t------\n")
	for _, rs := range rulesets {
		fmt.Fprintf(w, "%s\t%s\t%s\n", rs.ID, rs.Name, strings.Join(rs.CheckNames, ","))
	}
	return nil
}
