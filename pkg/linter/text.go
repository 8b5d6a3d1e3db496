package linter

import (
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/praetorian-inc/html5lint/pkg/tokenizer"
	"github.com/praetorian-inc/html5lint/pkg/types"
)

func (r *run) text(ev tokenizer.Event) {
	r.lastText = &fragment{text: ev.Raw, pos: ev.Pos}

	each(trailingWhitespace, ev.Raw, func(m *regexp2.Match) {
		g := m.GroupByNumber(1)
		r.report(types.KindTrailingWhitespace, types.Resolve(ev.Pos, ev.Raw, g.Index), types.Params{Value: g.String()})
	})
	each(tabs, ev.Raw, func(m *regexp2.Match) {
		r.report(types.KindTab, types.Resolve(ev.Pos, ev.Raw, m.Index), types.Params{Value: m.String()})
	})
}

// reference checks an entity or character reference found in text or in
// an attribute value. Only a few named entities are accepted.
func (r *run) reference(kind tokenizer.Kind, name, raw string, pos types.Position) {
	if kind == tokenizer.EntityRef && allowedEntities[name] {
		return
	}
	r.report(types.KindEntityReference, pos, types.Params{Value: raw})
}

func (r *run) declaration(ev tokenizer.Event) {
	if strings.TrimSpace(ev.Name) != "DOCTYPE html" {
		r.report(types.KindDocumentType, ev.Pos, types.Params{Value: ev.Raw})
	}
}

// finish reports a missing charset once the whole document has been seen.
func (r *run) finish() {
	if r.hasCharset {
		return
	}
	switch {
	case r.firstMeta != nil:
		r.report(types.KindCharset, *r.firstMeta, types.Params{})
	case r.afterHead != nil:
		r.report(types.KindCharset, *r.afterHead, types.Params{})
	}
}
