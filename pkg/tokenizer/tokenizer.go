// Package tokenizer turns an HTML document into a forward stream of events
// anchored at line:column positions.
//
// It wraps the golang.org/x/net/html tokenizer. That tokenizer reports raw
// bytes but no positions, so positions are tracked by advancing over each
// token's raw text.
package tokenizer

import (
	"strings"

	"github.com/dlclark/regexp2"
	"golang.org/x/net/html"

	"github.com/praetorian-inc/html5lint/pkg/types"
)

// endTagGrammar matches a well formed end tag. Group 1 is the tag name.
var endTagGrammar = regexp2.MustCompile(`^</\s*([a-zA-Z][-.a-zA-Z0-9:_]*)\s*>`, regexp2.None)

// Tokenizer emits the events of one document.
type Tokenizer struct {
	z       *html.Tokenizer
	pos     types.Position
	pending []Event
	// rawText is set while the content of a script or style element is
	// being read. References are not recognized there.
	rawText bool
}

// New returns a tokenizer over content.
func New(content string) *Tokenizer {
	return &Tokenizer{
		z:   html.NewTokenizer(strings.NewReader(content)),
		pos: types.Start,
	}
}

// Next returns the next event, or io.EOF once the document is exhausted.
func (t *Tokenizer) Next() (Event, error) {
	for len(t.pending) == 0 {
		if err := t.advance(); err != nil {
			return Event{}, err
		}
	}
	ev := t.pending[0]
	t.pending = t.pending[1:]
	return ev, nil
}

func (t *Tokenizer) advance() error {
	tt := t.z.Next()
	if tt == html.ErrorToken {
		return t.z.Err()
	}

	// Raw must be copied before TagName reuses the buffer.
	raw := string(t.z.Raw())
	start := t.pos
	t.pos = types.Advance(t.pos, raw)

	rawText := t.rawText
	t.rawText = false

	switch tt {
	case html.TextToken:
		if rawText {
			t.pending = append(t.pending, Event{Kind: Text, Raw: raw, Pos: start})
		} else {
			t.pending = append(t.pending, splitText(raw, start)...)
		}

	case html.StartTagToken, html.SelfClosingTagToken:
		name, _ := t.z.TagName()
		tagName := string(name)
		tag := ParseTag(raw, start, tagName, tt == html.SelfClosingTagToken)
		if !tag.SelfClosing && (tagName == "script" || tagName == "style") {
			t.rawText = true
		} else {
			t.z.NextIsNotRawText()
		}
		t.pending = append(t.pending, Event{
			Kind: StartTag,
			Raw:  raw,
			Pos:  start,
			Name: tagName,
			Tag:  tag,
		})

	case html.EndTagToken:
		name, _ := t.z.TagName()
		t.pending = append(t.pending, Event{
			Kind:       EndTag,
			Raw:        raw,
			Pos:        start,
			Name:       string(name),
			EndTagText: matchEndTag(raw),
		})

	case html.CommentToken:
		// "</ a >" is a bogus comment to the HTML5 tokenizer but a closing tag
		// as far as the author is concerned.
		if text := matchEndTag(raw); text != "" && text == raw {
			m, _ := endTagGrammar.FindStringMatch(raw)
			t.pending = append(t.pending, Event{
				Kind:       EndTag,
				Raw:        raw,
				Pos:        start,
				Name:       strings.ToLower(m.GroupByNumber(1).String()),
				EndTagText: text,
			})
		}

	case html.DoctypeToken:
		decl := strings.TrimPrefix(raw, "<!")
		decl = strings.TrimSuffix(decl, ">")
		t.pending = append(t.pending, Event{Kind: Declaration, Raw: raw, Pos: start, Name: decl})
	}
	return nil
}

func matchEndTag(raw string) string {
	m, err := endTagGrammar.FindStringMatch(raw)
	if err != nil || m == nil {
		return ""
	}
	return m.String()
}
