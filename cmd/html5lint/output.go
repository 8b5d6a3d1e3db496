package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/praetorian-inc/html5lint/pkg/sarif"
	"github.com/praetorian-inc/html5lint/pkg/types"
)

// documentResult is one linted document as it is reported.
type documentResult struct {
	Path     string          `json:"path"`
	BlobID   types.BlobID    `json:"blob_id"`
	Messages []types.Message `json:"messages"`
}

// summary counts the reported messages by severity.
type summary struct {
	Documents int
	Messages  int
	Errors    int
	Warnings  int
	Infos     int
}

func summarize(results []documentResult) summary {
	s := summary{Documents: len(results)}
	for _, r := range results {
		for _, m := range r.Messages {
			s.Messages++
			switch m.Severity {
			case types.SeverityError:
				s.Errors++
			case types.SeverityWarning:
				s.Warnings++
			default:
				s.Infos++
			}
		}
	}
	return s
}

// sortResults orders results by path, then by blob id.
func sortResults(results []documentResult) {
	slices.SortFunc(results, func(a, b documentResult) int {
		if c := strings.Compare(a.Path, b.Path); c != 0 {
			return c
		}
		return strings.Compare(a.BlobID.Hex(), b.BlobID.Hex())
	})
}

// styles holds the color formatters of the human format.
type styles struct {
	path    *color.Color
	error   *color.Color
	warning *color.Color
	info    *color.Color
	muted   *color.Color
}

// newStyles creates color formatters. enabled=false turns every one of
// them into plain text.
func newStyles(enabled bool) *styles {
	s := &styles{
		path:    color.New(color.Bold),
		error:   color.New(color.Bold, color.FgHiRed),
		warning: color.New(color.FgYellow),
		info:    color.New(color.FgHiCyan),
		muted:   color.New(color.FgHiBlack),
	}
	for _, c := range []*color.Color{s.path, s.error, s.warning, s.info, s.muted} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

func (s *styles) severity(sev types.Severity) *color.Color {
	switch sev {
	case types.SeverityError:
		return s.error
	case types.SeverityWarning:
		return s.warning
	}
	return s.info
}

// useColor resolves a --color mode for w. In auto mode color is used when
// w is a terminal and NO_COLOR is unset.
func useColor(mode string, w io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "", "auto":
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			return false, nil
		}
		f, ok := w.(*os.File)
		return ok && term.IsTerminal(int(f.Fd())), nil
	}
	return false, fmt.Errorf("unknown color mode: %s (want auto, always or never)", mode)
}

// writeResults renders results in format. checks describe the rules of
// SARIF reports.
func writeResults(w io.Writer, format, colorMode string, results []documentResult, checks []*types.Check) error {
	switch format {
	case "human":
		enabled, err := useColor(colorMode, w)
		if err != nil {
			return err
		}
		return writeHuman(w, results, newStyles(enabled))
	case "text":
		return writeText(w, results)
	case "json":
		return writeJSON(w, results)
	case "sarif":
		return writeSARIF(w, results, checks)
	}
	return fmt.Errorf("unknown output format: %s", format)
}

func writeHuman(w io.Writer, results []documentResult, st *styles) error {
	for _, r := range results {
		for _, m := range r.Messages {
			_, err := fmt.Fprintf(w, "%s:%s: %s: %s: %s: %s.\n",
				st.path.Sprint(r.Path),
				m.Position,
				st.severity(m.Severity).Sprint(m.Severity),
				m.Category(),
				m.Description(),
				m.Text())
			if err != nil {
				return err
			}
		}
	}

	s := summarize(results)
	if s.Messages == 0 {
		_, err := fmt.Fprintf(w, "%s\n", st.muted.Sprintf("No messages in %d documents.", s.Documents))
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d messages (%s, %s, %s) in %d documents.\n",
		s.Messages,
		st.error.Sprintf("%d errors", s.Errors),
		st.warning.Sprintf("%d warnings", s.Warnings),
		st.info.Sprintf("%d info", s.Infos),
		s.Documents)
	return err
}

func writeText(w io.Writer, results []documentResult) error {
	for _, r := range results {
		for _, m := range r.Messages {
			if _, err := fmt.Fprintln(w, m.String()); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeJSON(w io.Writer, results []documentResult) error {
	if results == nil {
		results = []documentResult{}
	}
	for i := range results {
		if results[i].Messages == nil {
			results[i].Messages = []types.Message{}
		}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(results)
}

func writeSARIF(w io.Writer, results []documentResult, checks []*types.Check) error {
	report := sarif.NewReport(version)
	for _, c := range checks {
		report.AddRule(*c)
	}
	for _, r := range results {
		for _, m := range r.Messages {
			report.AddResult(m, r.Path)
		}
	}

	data, err := report.ToJSON()
	if err != nil {
		return fmt.Errorf("serializing SARIF: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing SARIF output: %w", err)
	}
	return nil
}
