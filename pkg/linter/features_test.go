package linter

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	"github.com/praetorian-inc/html5lint/pkg/types"
)

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: initializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"testdata/features"},
			TestingT: t,
			Strict:   true,
		},
	}
	if suite.Run() != 0 {
		t.Fatal("feature scenarios failed")
	}
}

// scenario holds the document and result of one scenario.
type scenario struct {
	document string
	disabled map[types.Kind]bool
	messages []types.Message
}

func initializeScenario(ctx *godog.ScenarioContext) {
	s := &scenario{}

	ctx.Step(`^the document:$`, func(doc *godog.DocString) error {
		s.document = doc.Content
		return nil
	})
	ctx.Step(`^the document "(.*)"$`, func(doc string) error {
		s.document = unescapeStep(doc)
		return nil
	})
	ctx.Step(`^the "([^"]*)" check is disabled$`, func(name string) error {
		kind, ok := types.ParseKind(name)
		if !ok {
			return fmt.Errorf("unknown check %q", name)
		}
		if s.disabled == nil {
			s.disabled = make(map[types.Kind]bool)
		}
		s.disabled[kind] = true
		return nil
	})
	ctx.Step(`^it is linted$`, func() error {
		s.messages = Filter(Lint(s.document), s.disabled)
		return nil
	})
	ctx.Step(`^no messages are reported$`, func() error {
		if len(s.messages) != 0 {
			return fmt.Errorf("expected no messages, got:\n%s", Render(s.messages))
		}
		return nil
	})
	ctx.Step(`^(\d+) messages? (?:is|are) reported$`, func(n int) error {
		if len(s.messages) != n {
			return fmt.Errorf("expected %d messages, got %d:\n%s", n, len(s.messages), Render(s.messages))
		}
		return nil
	})
	ctx.Step(`^the following messages are reported:$`, func(table *godog.Table) error {
		return s.matchTable(table)
	})
	ctx.Step(`^the output is:$`, func(doc *godog.DocString) error {
		if got := Render(s.messages); got != strings.TrimRight(doc.Content, "\n") {
			return fmt.Errorf("output mismatch:\nwant:\n%s\ngot:\n%s", doc.Content, got)
		}
		return nil
	})
}

// matchTable compares the messages with a table of position and check
// name rows, in order.
func (s *scenario) matchTable(table *godog.Table) error {
	rows := table.Rows[1:]
	if len(rows) != len(s.messages) {
		return fmt.Errorf("expected %d messages, got %d:\n%s", len(rows), len(s.messages), Render(s.messages))
	}
	for i, row := range rows {
		if len(row.Cells) < 2 {
			return fmt.Errorf("row %d: want position and check", i+1)
		}
		pos, check := row.Cells[0].Value, row.Cells[1].Value
		m := s.messages[i]
		if m.Position.String() != pos || m.Kind.Name() != check {
			return fmt.Errorf("message %d: want %s %s, got %s %s", i+1, pos, check, m.Position, m.Kind.Name())
		}
	}
	return nil
}

// unescapeStep turns the escapes a step argument may carry ("\n", "\t")
// into the characters they stand for.
func unescapeStep(s string) string {
	if u, err := strconv.Unquote(`"` + s + `"`); err == nil {
		return u
	}
	return s
}
