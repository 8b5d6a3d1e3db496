package tokenizer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
	"golang.org/x/net/html"

	"github.com/praetorian-inc/html5lint/pkg/types"
)

// attributeGrammar matches one attribute of a raw start tag. Group 1 is the
// name, group 2 the "=value" part and group 3 the value as written.
var attributeGrammar = regexp2.MustCompile(
	`((?<=['"\s/])[^\s/>][^\s/=>]*)(\s*=+\s*('[^']*'|"[^"]*"|(?!['"])[^>\s]*))?(?:\s|/(?!>))*`,
	regexp2.None)

// AttributeMatch is one attribute occurrence in a raw start tag. Offsets are
// in characters from the start of the tag.
type AttributeMatch struct {
	Name       string
	NameOffset int
	NameEnd    int
	// RawValue is the value as written, quotes included. Empty when there is
	// no value or the unquoted value is empty.
	RawValue    string
	ValueOffset int
	hasValue    bool
}

// Attribute is a parsed attribute. When a name repeats, the last value wins.
type Attribute struct {
	Key string // lowercase name
	// Value is unquoted and unescaped. It is meaningless when Boolean is set.
	Value   string
	Boolean bool // written without "=value"
}

// Tag is a start tag with its attributes.
type Tag struct {
	Raw         string
	Pos         types.Position
	Name        string
	SelfClosing bool

	// Matches lists every attribute occurrence after the tag name, in
	// source order, duplicates included.
	Matches []AttributeMatch

	attrs []Attribute
	index map[string]int
}

// ParseTag scans the attributes of a raw start tag whose lowercase name is
// name. The tag begins at pos.
func ParseTag(raw string, pos types.Position, name string, selfClosing bool) *Tag {
	t := &Tag{
		Raw:         raw,
		Pos:         pos,
		Name:        name,
		SelfClosing: selfClosing,
		index:       make(map[string]int),
	}
	t.Matches = scanAttributes(raw, 1+utf8.RuneCountInString(name))
	if selfClosing && slashInValue(raw, t.Matches) {
		t.SelfClosing = false
	}

	for _, m := range t.Matches {
		attr := Attribute{Key: strings.ToLower(m.Name), Boolean: !m.hasValue}
		if m.hasValue {
			attr.Value = unquote(m.RawValue)
		}
		if i, ok := t.index[attr.Key]; ok {
			t.attrs[i] = attr
			continue
		}
		t.index[attr.Key] = len(t.attrs)
		t.attrs = append(t.attrs, attr)
	}
	return t
}

// Attrs returns the attributes keyed by lowercase name, in order of first appearance.
func (t *Tag) Attrs() []Attribute {
	return t.attrs
}

// Attr looks up an attribute by lowercase name.
func (t *Tag) Attr(key string) (Attribute, bool) {
	i, ok := t.index[key]
	if !ok {
		return Attribute{}, false
	}
	return t.attrs[i], true
}

// Has reports whether the attribute is present, with or without a value.
func (t *Tag) Has(key string) bool {
	_, ok := t.index[key]
	return ok
}

// Value returns the attribute value, or "" when absent or boolean.
func (t *Tag) Value(key string) string {
	a, _ := t.Attr(key)
	return a.Value
}

// AttributePosition returns the position of the first character of the
// named attribute. It panics if the tag has no such attribute.
func (t *Tag) AttributePosition(key string) types.Position {
	m := t.find(key)
	return types.Resolve(t.Pos, t.Raw, m.NameOffset)
}

// ValuePosition returns the position of the first character of the named
// attribute's value, after any opening quote. For an attribute without a
// value it is the position just past the name. It panics if the tag has no
// such attribute.
func (t *Tag) ValuePosition(key string) types.Position {
	m := t.find(key)
	offset := m.ValueOffset
	switch {
	case m.RawValue == "":
		offset = m.NameEnd
	case m.RawValue[0] == '"' || m.RawValue[0] == '\'':
		offset++
	}
	return types.Resolve(t.Pos, t.Raw, offset)
}

// find scans the whole raw tag, not just the parsed attributes, so that the
// lookup works the same way for every caller.
func (t *Tag) find(key string) AttributeMatch {
	for _, m := range scanAttributes(t.Raw, 0) {
		if strings.ToLower(m.Name) == key {
			return m
		}
	}
	panic(fmt.Sprintf("tokenizer: attribute %q requested but not present in %q", key, t.Raw))
}

// slashInValue reports whether the "/" before the closing ">" of raw belongs
// to an unquoted value of the last attribute, as in <img src=x/>.
func slashInValue(raw string, matches []AttributeMatch) bool {
	if len(matches) == 0 {
		return false
	}
	last := matches[len(matches)-1]
	v := last.RawValue
	if v == "" || v[0] == '"' || v[0] == '\'' || !strings.HasSuffix(v, "/") {
		return false
	}
	return last.ValueOffset+utf8.RuneCountInString(v) == utf8.RuneCountInString(raw)-1
}

func scanAttributes(raw string, start int) []AttributeMatch {
	runes := []rune(raw)
	if start > len(runes) {
		return nil
	}

	var matches []AttributeMatch
	m, err := attributeGrammar.FindRunesMatchStartingAt(runes, start)
	for ; m != nil && err == nil; m, err = attributeGrammar.FindNextMatch(m) {
		name := m.GroupByNumber(1)
		if len(name.Captures) == 0 {
			continue
		}
		am := AttributeMatch{
			Name:       name.String(),
			NameOffset: name.Index,
			NameEnd:    name.Index + name.Length,
		}
		if rest := m.GroupByNumber(2); len(rest.Captures) > 0 && rest.Length > 0 {
			value := m.GroupByNumber(3)
			am.hasValue = true
			am.RawValue = value.String()
			am.ValueOffset = value.Index
		}
		matches = append(matches, am)
	}
	return matches
}

func unquote(v string) string {
	if len(v) >= 2 && (v[0] == '"' || v[0] == '\'') && v[len(v)-1] == v[0] {
		v = v[1 : len(v)-1]
	}
	return html.UnescapeString(v)
}
