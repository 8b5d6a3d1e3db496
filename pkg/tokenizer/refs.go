package tokenizer

import (
	"github.com/dlclark/regexp2"

	"github.com/praetorian-inc/html5lint/pkg/types"
)

// reference matches a named entity or numeric character reference. Only
// references terminated by ";" are recognized.
var reference = regexp2.MustCompile(`&(?:(#(?:[0-9]+|[xX][0-9a-fA-F]+))|([a-zA-Z][-.a-zA-Z0-9]*));`, regexp2.None)

// Reference is an entity or character reference found inside a fragment.
type Reference struct {
	Kind   Kind // EntityRef or CharRef
	Raw    string
	Name   string
	Offset int // characters from the start of the fragment
}

// FindReferences returns every terminated reference in s.
func FindReferences(s string) []Reference {
	var refs []Reference
	m, err := reference.FindStringMatch(s)
	for ; m != nil && err == nil; m, err = reference.FindNextMatch(m) {
		ref := Reference{Kind: EntityRef, Raw: m.String(), Offset: m.Index}
		if num := m.GroupByNumber(1); len(num.Captures) > 0 {
			ref.Kind = CharRef
			ref.Name = num.String()
		} else {
			ref.Name = m.GroupByNumber(2).String()
		}
		refs = append(refs, ref)
	}
	return refs
}

// splitText turns a raw text token into Text, EntityRef and CharRef events.
func splitText(raw string, pos types.Position) []Event {
	runes := []rune(raw)
	var events []Event
	emit := func(kind Kind, text, name string) {
		events = append(events, Event{Kind: kind, Raw: text, Name: name, Pos: pos})
		pos = types.Advance(pos, text)
	}

	last := 0
	for _, ref := range FindReferences(raw) {
		if ref.Offset > last {
			emit(Text, string(runes[last:ref.Offset]), "")
		}
		emit(ref.Kind, ref.Raw, ref.Name)
		last = ref.Offset + len([]rune(ref.Raw))
	}
	if last < len(runes) {
		emit(Text, string(runes[last:]), "")
	}
	return events
}
