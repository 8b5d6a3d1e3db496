package types

// Check describes one entry of the check catalogue. Category, severity and
// the guideline link come from its Kind.
type Check struct {
	Name             string   // e.g. "trailing_whitespace"
	Kind             Kind     // resolved from Name
	Summary          string   // one line description
	Examples         []string // documents the check reports
	NegativeExamples []string // documents the check accepts
	References       []string // extra links besides Kind.URL()
}

// Ruleset is a named group of checks.
type Ruleset struct {
	ID          string
	Name        string
	Description string
	CheckNames  []string
}
