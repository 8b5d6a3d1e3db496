package linter

import (
	"strings"

	"github.com/praetorian-inc/html5lint/pkg/types"
)

// fragment is a piece of raw text and the position it starts at.
type fragment struct {
	text string
	pos  types.Position
}

// state is everything a pass remembers between events.
type state struct {
	// lastText is the most recent text, consumed by the next indentation
	// check. nil means the indentation of the next tag is unknown.
	lastText   *fragment
	lastIndent int

	hasCharset bool
	firstMeta  *types.Position
	afterHead  *types.Position

	// endTagText is the raw text of the end tag being processed, "" when
	// it is implied by a self-closed tag.
	endTagText string
}

func newState() state {
	// The document start counts as an empty line, so the first tag has a
	// known indentation of zero.
	return state{lastText: &fragment{pos: types.Start}}
}

// indentation infers the indentation of the tag that follows lastText.
// ok is false when it cannot be known: there was no text, or the text does
// not end in a line made only of whitespace.
func (s *state) indentation() (indent int, ok bool) {
	if s.lastText == nil {
		return 0, false
	}
	lines := types.SplitLines(s.lastText.text)
	if len(lines) == 1 && s.lastText.pos.Column != 1 {
		return 0, false
	}
	last := strings.ReplaceAll(lines[len(lines)-1], "\t", "  ")
	if strings.Trim(last, " ") != "" {
		return 0, false
	}
	return len(last), true
}

// checkIndentation validates the indentation of the tag at pos against
// the previous one. Accepted values are the even numbers from zero to two
// more than the previous indentation. An invalid value is reported and
// then nudged towards the accepted range before it is remembered.
func (r *run) checkIndentation(pos types.Position) {
	indent, ok := r.indentation()
	if !ok {
		return
	}

	limit := r.lastIndent + 2
	if indent%2 != 0 || indent > limit {
		r.report(types.KindIndentation, types.Position{Line: pos.Line, Column: 1},
			types.Params{Indent: indent, MaxIndent: limit})
		switch {
		case indent > limit:
			indent = limit
		case indent > r.lastIndent:
			indent++
		default:
			indent--
		}
	}

	r.lastIndent = indent
	r.lastText = nil
}
