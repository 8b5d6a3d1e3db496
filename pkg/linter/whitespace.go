package linter

import (
	"github.com/dlclark/regexp2"

	"github.com/praetorian-inc/html5lint/pkg/types"
)

// checkWhitespace flags whitespace inside a raw start or end tag: after
// "<" or "</", before the closing ">", around "=" and before an attribute.
// Matches that begin inside one of the quoted spans are attribute values
// and are skipped. The whitespace before "/>" of a void element is part of
// the void element message and is not reported here.
func (r *run) checkWhitespace(raw string, pos types.Position, name string, quoted [][2]int) {
	runes := []rune(raw)
	m, err := tagWhitespace.FindRunesMatch(runes)
	if err != nil || m == nil {
		return
	}

	flag := func(g *regexp2.Group) {
		if g != nil && len(g.Captures) > 0 && g.Length > 0 {
			r.report(types.KindExtraWhitespace, types.Resolve(pos, raw, g.Index),
				types.Params{Tag: name, Value: g.String()})
		}
	}

	flag(m.GroupByName("start"))

	rest := m.GroupByName("rest")
	end := rest.Index + rest.Length
	a, err := attributeWhitespace.FindRunesMatchStartingAt(runes, rest.Index)
	for ; a != nil && err == nil && a.Index < end; a, err = attributeWhitespace.FindNextMatch(a) {
		if inside(a.Index, quoted) {
			continue
		}
		flag(a.GroupByName("before_attr"))
		flag(a.GroupByName("after_attr"))
		flag(a.GroupByName("before_value"))
	}

	if !voidElements[name] {
		flag(m.GroupByName("slash"))
	}
	flag(m.GroupByName("end"))
}

func inside(i int, spans [][2]int) bool {
	for _, s := range spans {
		if i >= s[0] && i < s[1] {
			return true
		}
	}
	return false
}
