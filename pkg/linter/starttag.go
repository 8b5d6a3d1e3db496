package linter

import (
	"strings"
	"unicode/utf8"

	"github.com/praetorian-inc/html5lint/pkg/tokenizer"
	"github.com/praetorian-inc/html5lint/pkg/types"
)

// tagHooks run first for the tags they are registered for.
var tagHooks = map[string]func(*run, *tokenizer.Tag){
	"head":   (*run).head,
	"meta":   (*run).meta,
	"link":   (*run).link,
	"script": (*run).script,
	"style":  (*run).style,
	"a":      (*run).anchor,
}

func (r *run) startTag(tag *tokenizer.Tag) {
	if hook, ok := tagHooks[tag.Name]; ok {
		hook(r, tag)
	}

	r.checkStyleAttribute(tag)
	r.checkHandlers(tag)
	r.checkProtocol(tag)
	r.checkNames(tag)

	if optionalOpeningTags[tag.Name] && len(tag.Attrs()) == 0 {
		r.report(types.KindOptionalTag, tag.Pos, types.Params{Tag: tag.Name, Opening: true})
	}
	r.checkTagCase(tag)
	r.checkAttributeSyntax(tag)
	r.checkBooleanAttributes(tag)

	if newlineTags[tag.Name] {
		if _, known := r.indentation(); !known {
			r.report(types.KindFormatting, tag.Pos, types.Params{Tag: tag.Name})
		}
	}
	r.checkIndentation(tag.Pos)
	r.checkWhitespace(tag.Raw, tag.Pos, tag.Name, quotedSpans(tag))

	if tag.SelfClosing {
		r.endTagText = ""
		r.endTag(tag.Name, tag.Pos, tag)
	}
	r.endTagText = ""
}

func (r *run) head(tag *tokenizer.Tag) {
	p := types.Advance(tag.Pos, tag.Raw)
	r.afterHead = &p
}

func (r *run) meta(tag *tokenizer.Tag) {
	if r.firstMeta == nil {
		p := tag.Pos
		r.firstMeta = &p
	}

	if tag.Has("http-equiv") {
		v := tag.Value("http-equiv")
		if !allowedHTTPEquiv[strings.ToLower(v)] {
			r.report(types.KindHTTPEquiv, tag.AttributePosition("http-equiv"), types.Params{Value: v})
		}
	}

	if tag.Has("charset") {
		r.hasCharset = true
		if v := tag.Value("charset"); v != "utf-8" {
			r.report(types.KindCharset, tag.ValuePosition("charset"), types.Params{Value: v})
		}
	}
}

func (r *run) link(tag *tokenizer.Tag) {
	r.checkTypeAttribute(tag, "text/css")
}

func (r *run) script(tag *tokenizer.Tag) {
	r.checkTypeAttribute(tag, "text/javascript")
	if !tag.Has("src") {
		r.report(types.KindConcernsSeparation, tag.Pos, types.Params{Tag: tag.Name})
		r.checkInvalidAttribute(tag, "charset")
	}
	r.checkInvalidAttribute(tag, "language")
}

func (r *run) style(tag *tokenizer.Tag) {
	r.report(types.KindConcernsSeparation, tag.Pos, types.Params{Tag: tag.Name})
	r.checkTypeAttribute(tag, "text/css")
}

func (r *run) anchor(tag *tokenizer.Tag) {
	if tag.Has("href") {
		href := strings.TrimSpace(tag.Value("href"))
		switch {
		case matches(voidZero, href):
			r.report(types.KindVoidZero, tag.ValuePosition("href"), types.Params{Tag: tag.Name})
		case strings.HasPrefix(strings.ToLower(href), "javascript:"):
			r.report(types.KindConcernsSeparation, tag.ValuePosition("href"),
				types.Params{Tag: tag.Name, Attribute: "href"})
		}
	}
	r.checkInvalidAttribute(tag, "name")
}

// checkTypeAttribute flags a type attribute set to the default type.
func (r *run) checkTypeAttribute(tag *tokenizer.Tag, defaultType string) {
	if tag.Has("type") && tag.Value("type") == defaultType {
		r.report(types.KindTypeAttribute, tag.AttributePosition("type"), types.Params{Tag: tag.Name})
	}
}

func (r *run) checkInvalidAttribute(tag *tokenizer.Tag, attr string) {
	if tag.Has(attr) {
		r.report(types.KindInvalidAttribute, tag.AttributePosition(attr),
			types.Params{Tag: tag.Name, Attribute: attr})
	}
}

func (r *run) checkStyleAttribute(tag *tokenizer.Tag) {
	if tag.Has("style") {
		r.report(types.KindConcernsSeparation, tag.AttributePosition("style"),
			types.Params{Tag: tag.Name, Attribute: "style"})
	}
}

// checkHandlers flags inline event handlers, and handlers written with the
// javascript: protocol a second time.
func (r *run) checkHandlers(tag *tokenizer.Tag) {
	for _, attr := range tag.Attrs() {
		if !strings.HasPrefix(attr.Key, "on") {
			continue
		}
		r.report(types.KindConcernsSeparation, tag.AttributePosition(attr.Key),
			types.Params{Tag: tag.Name, Attribute: attr.Key})
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(attr.Value)), "javascript:") {
			r.report(types.KindInvalidHandler, tag.ValuePosition(attr.Key),
				types.Params{Tag: tag.Name, Attribute: attr.Key})
		}
	}
}

func (r *run) checkProtocol(tag *tokenizer.Tag) {
	key := "href"
	if tag.Has("src") {
		key = "src"
	}
	if !tag.Has(key) {
		return
	}
	m, err := httpProtocol.FindStringMatch(tag.Value(key))
	if err != nil || m == nil {
		return
	}
	r.report(types.KindProtocol, tag.ValuePosition(key), types.Params{Tag: tag.Name, Attribute: key, Value: m.String()})
}

func (r *run) checkNames(tag *tokenizer.Tag) {
	for _, c := range []struct {
		attr    string
		grammar func(string) bool
	}{
		{"id", func(v string) bool { return matches(idName, v) }},
		{"class", func(v string) bool { return matches(className, v) }},
	} {
		if !tag.Has(c.attr) {
			continue
		}
		if v := tag.Value(c.attr); !c.grammar(v) {
			r.report(types.KindName, tag.ValuePosition(c.attr),
				types.Params{Tag: tag.Name, Attribute: c.attr, Value: v})
		}
	}
}

func (r *run) checkTagCase(tag *tokenizer.Tag) {
	runes := []rune(tag.Raw)
	n := utf8.RuneCountInString(tag.Name)
	if 1+n > len(runes) {
		return
	}
	original := string(runes[1 : 1+n])
	if original != strings.ToLower(original) {
		r.report(types.KindCapitalization, types.Resolve(tag.Pos, tag.Raw, 1), types.Params{Tag: original})
	}
}

// checkAttributeSyntax looks at every attribute as written: the case of
// its name, the quotes around its value and the references inside it.
func (r *run) checkAttributeSyntax(tag *tokenizer.Tag) {
	for _, m := range tag.Matches {
		if lower := strings.ToLower(m.Name); m.Name != lower {
			r.report(types.KindCapitalization, tag.AttributePosition(lower),
				types.Params{Tag: tag.Name, Attribute: m.Name})
		}
		if m.RawValue == "" {
			continue
		}

		if m.RawValue[0] != '"' {
			quote := ""
			if m.RawValue[0] == '\'' {
				quote = "'"
			}
			r.report(types.KindQuotation, types.Resolve(tag.Pos, tag.Raw, m.ValueOffset),
				types.Params{Tag: tag.Name, Attribute: m.Name, Value: quote})
		}

		for _, ref := range tokenizer.FindReferences(m.RawValue) {
			r.reference(ref.Kind, ref.Name, ref.Raw, types.Resolve(tag.Pos, tag.Raw, m.ValueOffset+ref.Offset))
		}
	}
}

// checkBooleanAttributes flags boolean attributes written with a non-empty
// value. An empty value means the same as the bare attribute.
func (r *run) checkBooleanAttributes(tag *tokenizer.Tag) {
	for _, attr := range tag.Attrs() {
		if booleanAttributes[attr.Key] && !attr.Boolean && attr.Value != "" {
			r.report(types.KindBooleanAttribute, tag.AttributePosition(attr.Key),
				types.Params{Tag: tag.Name, Attribute: attr.Key, Value: attr.Value})
		}
	}
}

// quotedSpans returns the character ranges of the quoted attribute values
// of tag, relative to its raw text.
func quotedSpans(tag *tokenizer.Tag) [][2]int {
	var spans [][2]int
	for _, m := range tag.Matches {
		if m.RawValue == "" || (m.RawValue[0] != '"' && m.RawValue[0] != '\'') {
			continue
		}
		spans = append(spans, [2]int{m.ValueOffset, m.ValueOffset + utf8.RuneCountInString(m.RawValue)})
	}
	return spans
}
