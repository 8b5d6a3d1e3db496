package linter

import (
	"strings"

	"github.com/praetorian-inc/html5lint/pkg/tokenizer"
	"github.com/praetorian-inc/html5lint/pkg/types"
)

// endTag checks the end of an element at pos. For a self-closed element
// selfClosed is its start tag and r.endTagText is empty.
func (r *run) endTag(name string, pos types.Position, selfClosed *tokenizer.Tag) {
	text := r.endTagText

	if text != "" {
		original := strings.TrimSpace(text[len("</") : len(text)-len(">")])
		if original != strings.ToLower(original) {
			r.report(types.KindCapitalization, types.Resolve(pos, text, 2),
				types.Params{Tag: original, Closing: true})
		}
	}

	r.checkIndentation(pos)
	if text != "" {
		r.checkWhitespace(text, pos, name, nil)
	}

	switch {
	case voidElements[name]:
		r.checkClosedVoid(name, pos, selfClosed)
	case optionalClosingTags[name]:
		r.report(types.KindOptionalTag, pos, types.Params{Tag: name})
	}
}

func (r *run) checkClosedVoid(name string, pos types.Position, selfClosed *tokenizer.Tag) {
	if selfClosed == nil {
		r.report(types.KindVoidElement, pos, types.Params{Tag: name})
		return
	}

	raw := selfClosed.Raw
	trailing, offset := "/", len([]rune(raw))-2
	if m, err := selfClosing.FindStringMatch(raw); err == nil && m != nil {
		g := m.GroupByNumber(1)
		trailing, offset = g.String(), g.Index
	}
	r.report(types.KindVoidElement, types.Resolve(selfClosed.Pos, raw, offset),
		types.Params{Tag: name, Value: trailing, SelfClosed: true})
}
