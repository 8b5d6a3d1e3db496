// Package html5lint checks HTML documents against the Google HTML/CSS
// style guide and a few rules from html-minifier.
//
// # Basic Usage
//
// Create a linter and lint a document:
//
//	l, err := html5lint.NewLinter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, m := range l.Lint(`<a href='foo'>`) {
//	    fmt.Println(m)
//	}
//
// # Disabling Checks
//
// Checks are disabled by name, the same names the command line accepts:
//
//	l, err := html5lint.NewLinter(html5lint.WithDisabled("optional_tag", "extra_whitespace"))
//
// A Linter holds no per-document state and is safe for concurrent use.
package html5lint

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/praetorian-inc/html5lint/pkg/linter"
	"github.com/praetorian-inc/html5lint/pkg/logs"
	"github.com/praetorian-inc/html5lint/pkg/rule"
	"github.com/praetorian-inc/html5lint/pkg/template"
	"github.com/praetorian-inc/html5lint/pkg/types"
)

// Re-export commonly used types for convenience.
type (
	// Message is a single style violation.
	Message = types.Message

	// Position is a 1-based line and column.
	Position = types.Position

	// Check is an entry of the check catalogue.
	Check = types.Check

	// Kind identifies the check that produced a message.
	Kind = types.Kind

	// Severity is the level a message is reported at.
	Severity = types.Severity
)

// Re-export severity constants.
const (
	SeverityError   = types.SeverityError
	SeverityWarning = types.SeverityWarning
	SeverityInfo    = types.SeverityInfo
)

// Linter lints documents with a fixed set of enabled checks.
type Linter struct {
	checks         []*types.Check
	disabled       map[types.Kind]bool
	stripTemplates bool
	logger         *slog.Logger
}

type linterConfig struct {
	checks         []*types.Check
	disabled       []string
	ruleset        string
	stripTemplates bool
	logger         *slog.Logger
}

// Option configures a Linter.
type Option func(*linterConfig)

// WithDisabled disables checks by name. Items may also be comma separated
// lists, as given to --disable.
func WithDisabled(names ...string) Option {
	return func(c *linterConfig) {
		c.disabled = append(c.disabled, names...)
	}
}

// WithChecks enables only the given checks instead of the whole catalogue.
func WithChecks(checks []*Check) Option {
	return func(c *linterConfig) {
		c.checks = checks
	}
}

// WithRuleset enables only the checks of a built-in ruleset.
func WithRuleset(id string) Option {
	return func(c *linterConfig) {
		c.ruleset = id
	}
}

// WithTemplateStripping removes template directives such as "{{ x }}" and
// "{% if %}" before a document is linted.
func WithTemplateStripping() Option {
	return func(c *linterConfig) {
		c.stripTemplates = true
	}
}

// WithLogger sets the logger used for file level events.
func WithLogger(logger *slog.Logger) Option {
	return func(c *linterConfig) {
		c.logger = logger
	}
}

// NewLinter creates a Linter. By default every check of the catalogue is
// enabled. Unknown check names fail with an error wrapping
// rule.ErrUnknownCheck.
func NewLinter(opts ...Option) (*Linter, error) {
	config := &linterConfig{}
	for _, opt := range opts {
		opt(config)
	}
	if config.logger == nil {
		config.logger = logs.Discard()
	}

	loader := rule.NewLoader()
	if config.checks == nil {
		checks, err := loader.LoadBuiltinChecks()
		if err != nil {
			return nil, fmt.Errorf("loading builtin checks: %w", err)
		}
		config.checks = checks
	}

	if config.ruleset != "" {
		rulesets, err := loader.LoadBuiltinRulesets()
		if err != nil {
			return nil, fmt.Errorf("loading builtin rulesets: %w", err)
		}
		var found *types.Ruleset
		for _, rs := range rulesets {
			if rs.ID == config.ruleset {
				found = rs
				break
			}
		}
		if found == nil {
			return nil, fmt.Errorf("unknown ruleset %q", config.ruleset)
		}
		config.checks = rule.ResolveRuleset(found, config.checks)
	}

	disabled := rule.KindSet(rule.Disabled(config.checks))
	for _, names := range config.disabled {
		kinds, err := rule.ParseNames(names)
		if err != nil {
			return nil, err
		}
		for _, k := range kinds {
			disabled[k] = true
		}
	}

	var enabled []*types.Check
	for _, c := range config.checks {
		if !disabled[c.Kind] {
			enabled = append(enabled, c)
		}
	}

	return &Linter{
		checks:         enabled,
		disabled:       disabled,
		stripTemplates: config.stripTemplates,
		logger:         config.logger,
	}, nil
}

// Lint checks content and returns the messages of the enabled checks,
// ordered by position.
func (l *Linter) Lint(content string) []Message {
	if l.stripTemplates {
		content = template.Strip(content)
	}
	return linter.Filter(linter.Lint(content), l.disabled)
}

// LintBytes lints raw bytes.
func (l *Linter) LintBytes(content []byte) []Message {
	return l.Lint(string(content))
}

// LintReader reads r to the end and lints it.
func (l *Linter) LintReader(r io.Reader) ([]Message, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	return l.LintBytes(content), nil
}

// LintFile reads and lints a file.
func (l *Linter) LintFile(path string) ([]Message, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	msgs := l.LintBytes(content)
	l.logger.Debug("linted file", "path", path, "messages", len(msgs))
	return msgs, nil
}

// Render lints content and returns one rendered message per line.
func (l *Linter) Render(content string) string {
	return linter.Render(l.Lint(content))
}

// Checks returns a copy of the enabled checks.
func (l *Linter) Checks() []*Check {
	checks := make([]*Check, len(l.checks))
	copy(checks, l.checks)
	return checks
}

// Disabled reports whether the check of kind k is turned off.
func (l *Linter) Disabled(k Kind) bool {
	return l.disabled[k]
}

// LoadBuiltinChecks returns the whole check catalogue.
func LoadBuiltinChecks() ([]*Check, error) {
	return rule.NewLoader().LoadBuiltinChecks()
}
