// Package linter checks an HTML document against the HTML5 style guide.
//
// A document is linted in a single forward pass over the token stream of
// pkg/tokenizer. Checks are bound to token events and report messages
// anchored at absolute positions; the result is ordered by position.
package linter

import (
	"slices"
	"strings"

	"github.com/praetorian-inc/html5lint/pkg/tokenizer"
	"github.com/praetorian-inc/html5lint/pkg/types"
)

// Lint checks content and returns every message, ordered by position.
// Messages at the same position keep the order they were reported in.
//
// Lint never fails: malformed markup is tokenized on a best-effort basis.
func Lint(content string) []types.Message {
	r := newRun()
	tok := tokenizer.New(content)
	for {
		ev, err := tok.Next()
		if err != nil {
			// io.EOF, or a tokenizer failure after which everything read
			// so far has still been checked.
			break
		}
		r.dispatch(ev)
	}
	r.finish()
	return r.sorted()
}

// Filter drops the messages whose kind is disabled. The relative order of
// the remaining messages is preserved.
func Filter(messages []types.Message, disabled map[types.Kind]bool) []types.Message {
	if len(disabled) == 0 {
		return messages
	}
	kept := make([]types.Message, 0, len(messages))
	for _, m := range messages {
		if !disabled[m.Kind] {
			kept = append(kept, m)
		}
	}
	return kept
}

// Render joins the rendered messages with newlines.
func Render(messages []types.Message) string {
	lines := make([]string, len(messages))
	for i, m := range messages {
		lines[i] = m.String()
	}
	return strings.Join(lines, "\n")
}

// run is one linting pass. It is never reused.
type run struct {
	state
	messages []types.Message
}

func newRun() *run {
	return &run{state: newState()}
}

func (r *run) report(kind types.Kind, pos types.Position, params types.Params) {
	r.messages = append(r.messages, types.NewMessage(kind, pos, params))
}

func (r *run) dispatch(ev tokenizer.Event) {
	switch ev.Kind {
	case tokenizer.Declaration:
		r.declaration(ev)
	case tokenizer.StartTag:
		r.startTag(ev.Tag)
	case tokenizer.EndTag:
		r.endTagText = ev.EndTagText
		r.endTag(ev.Name, ev.Pos, nil)
	case tokenizer.Text:
		r.text(ev)
	case tokenizer.EntityRef, tokenizer.CharRef:
		r.reference(ev.Kind, ev.Name, ev.Raw, ev.Pos)
	}
}

func (r *run) sorted() []types.Message {
	slices.SortStableFunc(r.messages, func(a, b types.Message) int {
		return a.Position.Compare(b.Position)
	})
	return r.messages
}
