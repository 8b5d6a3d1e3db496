package sarif

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/praetorian-inc/html5lint/pkg/types"
)

// SARIF 2.1.0 constants
const (
	SchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"
	Version   = "2.1.0"
	ToolName  = "html5lint"
	ToolURI   = "https://github.com/praetorian-inc/html5lint"
)

// Report is the top-level SARIF report structure
type Report struct {
	Schema  string `json:"$schema"`
	Version string `json:"version"`
	Runs    []Run  `json:"runs"`

	ruleIndex map[string]int
}

// Run represents a single invocation of the tool
type Run struct {
	Tool    Tool     `json:"tool"`
	Results []Result `json:"results"`
}

// Tool describes the analysis tool
type Tool struct {
	Driver Driver `json:"driver"`
}

// Driver contains tool metadata
type Driver struct {
	Name           string `json:"name"`
	Version        string `json:"version"`
	InformationURI string `json:"informationUri,omitempty"`
	Rules          []Rule `json:"rules"`
}

// Rule describes one check.
type Rule struct {
	ID                   string               `json:"id"`
	Name                 string               `json:"name"`
	ShortDescription     Text                 `json:"shortDescription"`
	HelpURI              string               `json:"helpUri,omitempty"`
	DefaultConfiguration DefaultConfiguration `json:"defaultConfiguration"`
	Properties           *RuleProperties      `json:"properties,omitempty"`
}

// DefaultConfiguration holds the level results of a rule are reported at.
type DefaultConfiguration struct {
	Level string `json:"level"`
}

// RuleProperties carries the style guide category.
type RuleProperties struct {
	Category string   `json:"category,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// Text is a SARIF message string.
type Text struct {
	Text string `json:"text"`
}

// Result is one message.
type Result struct {
	RuleID    string     `json:"ruleId"`
	RuleIndex int        `json:"ruleIndex"`
	Level     string     `json:"level"`
	Message   Text       `json:"message"`
	Locations []Location `json:"locations"`
}

// Location describes where a result was found
type Location struct {
	PhysicalLocation PhysicalLocation `json:"physicalLocation"`
}

// PhysicalLocation specifies file location
type PhysicalLocation struct {
	ArtifactLocation ArtifactLocation `json:"artifactLocation"`
	Region           Region           `json:"region"`
}

// ArtifactLocation identifies the file
type ArtifactLocation struct {
	URI string `json:"uri"`
}

// Region is the point a message refers to.
type Region struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn"`
}

// NewReport creates a new SARIF report with initialized structure
func NewReport(toolVersion string) *Report {
	return &Report{
		Schema:  SchemaURI,
		Version: Version,
		Runs: []Run{
			{
				Tool: Tool{
					Driver: Driver{
						Name:           ToolName,
						Version:        toolVersion,
						InformationURI: ToolURI,
						Rules:          []Rule{},
					},
				},
				Results: []Result{},
			},
		},
		ruleIndex: make(map[string]int),
	}
}

// Level maps a severity to a SARIF level.
func Level(s types.Severity) string {
	switch s {
	case types.SeverityError:
		return "error"
	case types.SeverityWarning:
		return "warning"
	}
	return "note"
}

// AddRule adds a check to the report. Adding a check twice is a no-op.
func (r *Report) AddRule(check types.Check) {
	id := check.Kind.Name()
	if _, ok := r.ruleIndex[id]; ok {
		return
	}

	rule := Rule{
		ID:                   id,
		Name:                 ruleName(id),
		ShortDescription:     Text{Text: check.Summary},
		HelpURI:              check.Kind.URL(),
		DefaultConfiguration: DefaultConfiguration{Level: Level(check.Kind.Severity())},
		Properties:           &RuleProperties{Category: check.Kind.Category(), Tags: []string{"style", "html"}},
	}
	if rule.HelpURI == "" && len(check.References) > 0 {
		rule.HelpURI = check.References[0]
	}

	driver := &r.Runs[0].Tool.Driver
	r.ruleIndex[id] = len(driver.Rules)
	driver.Rules = append(driver.Rules, rule)
}

// AddResult adds a message found in the document at path. Checks missing
// from the rule list are added with the message's description.
func (r *Report) AddResult(msg types.Message, path string) {
	id := msg.Kind.Name()
	if _, ok := r.ruleIndex[id]; !ok {
		r.AddRule(types.Check{Name: id, Kind: msg.Kind, Summary: msg.Description()})
	}

	result := Result{
		RuleID:    id,
		RuleIndex: r.ruleIndex[id],
		Level:     Level(msg.Severity),
		Message:   Text{Text: msg.Description() + ": " + msg.Text() + "."},
		Locations: []Location{
			{
				PhysicalLocation: PhysicalLocation{
					ArtifactLocation: ArtifactLocation{URI: formatFileURI(path)},
					Region: Region{
						StartLine:   msg.Position.Line,
						StartColumn: msg.Position.Column,
					},
				},
			},
		},
	}
	r.Runs[0].Results = append(r.Runs[0].Results, result)
}

// ToJSON serializes the report to JSON bytes
func (r *Report) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// ruleName turns "trailing_whitespace" into "TrailingWhitespace".
func ruleName(id string) string {
	var b strings.Builder
	for _, part := range strings.Split(id, "_") {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]) + part[1:])
	}
	return b.String()
}

// formatFileURI converts a file path to SARIF URI format
// Absolute paths get file:// prefix, URLs and relative paths stay as-is
func formatFileURI(path string) string {
	if strings.Contains(path, "://") {
		return path
	}
	if filepath.IsAbs(path) {
		path = filepath.ToSlash(path)
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		return "file://" + path
	}
	return filepath.ToSlash(path)
}
