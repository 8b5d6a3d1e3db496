package types

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Params carries the values a message is rendered from. Which fields are
// meaningful depends on the message kind.
type Params struct {
	Tag       string `json:"tag,omitempty"`
	Attribute string `json:"attribute,omitempty"`
	// Value is the offending text: a declaration, entity, whitespace run,
	// charset, protocol, http-equiv directive, quotation mark, attribute
	// value or the trailing characters of a self-closed void element.
	Value      string `json:"value,omitempty"`
	Opening    bool   `json:"opening,omitempty"`
	Closing    bool   `json:"closing,omitempty"`
	SelfClosed bool   `json:"self_closed,omitempty"`
	Indent     int    `json:"indent,omitempty"`
	MaxIndent  int    `json:"max_indent,omitempty"`
}

// Message is a single style violation. Messages are comparable with ==.
type Message struct {
	Kind     Kind
	Severity Severity
	Position Position
	Params   Params
}

// NewMessage builds a message at pos with the kind's default severity.
func NewMessage(kind Kind, pos Position, params Params) Message {
	return Message{
		Kind:     kind,
		Severity: kind.Severity(),
		Position: pos,
		Params:   params,
	}
}

// Category returns the style guide section of the message.
func (m Message) Category() string {
	return m.Kind.Category()
}

// Description returns the guideline the message violates.
func (m Message) Description() string {
	p := m.Params
	switch m.Kind {
	case KindDocumentType:
		return "Use HTML5"
	case KindEntityReference:
		return "Use the unicode equivalent instead"
	case KindTrailingWhitespace:
		return "Trailing white spaces are unnecessary and can complicate diffs"
	case KindTab:
		return "Do not use tabs"
	case KindCharset:
		return "The meta charset should be set to utf-8"
	case KindVoidElement:
		return "Do not close void elements"
	case KindOptionalTag:
		return "Omit optional tags (optional)"
	case KindTypeAttribute:
		return fmt.Sprintf(`The default type for %s tags is "%s" so it can be safely omitted`, p.Tag, defaultType(p.Tag))
	case KindConcernsSeparation:
		if p.Attribute == "style" || (p.Attribute == "" && p.Tag == "style") {
			return "CSS should be defined in its own file"
		}
		return "Javascript should be defined in its own file"
	case KindProtocol:
		return "Do not specify the protocol unless required"
	case KindName:
		return fmt.Sprintf("The %s names should be lowercase and with hyphens instead of underscores", p.Attribute)
	case KindCapitalization:
		if p.Attribute != "" {
			return "Attributes should be in lowercase"
		}
		return "Tags should be in lowercase"
	case KindQuotation:
		return "Use only double quotes"
	case KindIndentation:
		return "Use two spaces and no tabs"
	case KindFormatting:
		return "Use a new line for every block, list, or table element, and indent every such child element"
	case KindBooleanAttribute:
		return "Boolean attributes define their value based on the presence or abscence of the attribute"
	case KindInvalidAttribute:
		switch p.Attribute {
		case "charset":
			return `The attribute "charset" applies only to external resources`
		case "language":
			return `The attribute "language" was deprecated more than 10 years ago`
		case "name":
			return `The attribute "name" is no longer required for anchors`
		}
		return fmt.Sprintf("The attribute %q is not allowed here", p.Attribute)
	case KindVoidZero:
		return "It is bad practice to use javascript:void(0) to prevent the default and it also prevents the use of CSP"
	case KindInvalidHandler:
		return "Event handlers should not have the javascript protocol"
	case KindHTTPEquiv:
		return "HTML5 restricts the values of http-equiv"
	case KindExtraWhitespace:
		return "Use whitespaces only where expected and be consistent"
	}
	return ""
}

// Text returns the suggested fix.
func (m Message) Text() string {
	p := m.Params
	switch m.Kind {
	case KindDocumentType:
		return fmt.Sprintf(`Change "%s" to "<!DOCTYPE html>"`, p.Value)
	case KindEntityReference:
		return fmt.Sprintf(`Change "%s" to "%s"`, p.Value, html.UnescapeString(p.Value))
	case KindTrailingWhitespace:
		return fmt.Sprintf("Remove the %s at the end of the line", quoteWhitespace(p.Value))
	case KindTab:
		return "Remove the tabs"
	case KindCharset:
		if p.Value == "" {
			return `Add the tag <meta charset="utf-8">`
		}
		return fmt.Sprintf(`Change the charset from "%s" to "utf-8"`, p.Value)
	case KindVoidElement:
		if p.SelfClosed {
			return fmt.Sprintf(`Remove the trailing "%s" from the %s tag`, p.Value, p.Tag)
		}
		return fmt.Sprintf("Remove the closing %s tag, it is a huge conceptual error to close it", p.Tag)
	case KindOptionalTag:
		return fmt.Sprintf(`You may remove the %s "%s" tag`, tagType(p.Opening), p.Tag)
	case KindTypeAttribute:
		return fmt.Sprintf("Remove the type attribute from the %s tag", p.Tag)
	case KindConcernsSeparation:
		switch {
		case p.Tag == "script" && p.Attribute == "":
			return "Move the contents of this tag to its own JS file"
		case p.Tag == "style" && p.Attribute == "":
			return "Move the contents of this tag to its own CSS file"
		case p.Attribute == "href":
			return `Move the contents of the "href" attribute to its own JS file`
		case p.Attribute == "style":
			return `Move the contents of the "style" attribute to its own CSS file`
		}
		return fmt.Sprintf(`Register the handler for "%s" with events in a JS file`, p.Attribute)
	case KindProtocol:
		return fmt.Sprintf(`Remove the protocol "%s" from the url`, p.Value)
	case KindName:
		return fmt.Sprintf(`Remove the offending characters from the %s "%s"`, p.Attribute, p.Value)
	case KindCapitalization:
		if p.Attribute != "" {
			return fmt.Sprintf(`Change the attribute "%s" to "%s"`, p.Attribute, strings.ToLower(p.Attribute))
		}
		return fmt.Sprintf(`Change the %s tag "%s" to "%s"`, tagType(!p.Closing), p.Tag, strings.ToLower(p.Tag))
	case KindQuotation:
		return fmt.Sprintf(`Change the quotation mark %s to '"'`, p.Value)
	case KindIndentation:
		return fmt.Sprintf("Was expecting between %d and %d (in multiples of 2) spaces but got %d", 0, p.MaxIndent, p.Indent)
	case KindFormatting:
		return fmt.Sprintf(`Move the opening "%s" to its own line`, p.Tag)
	case KindBooleanAttribute:
		return fmt.Sprintf(`Change '%s="%s"' to just '%s'`, p.Attribute, p.Value, p.Attribute)
	case KindInvalidAttribute:
		if p.Attribute == "name" {
			return `Remove the "name" attribute and replace it with and id if required`
		}
		return fmt.Sprintf(`Remove the "%s" attribute`, p.Attribute)
	case KindVoidZero:
		return `Change the "href" attribute to href="#" or disable the default by attaching an onclick event to this element and using e.preventdefault()`
	case KindInvalidHandler:
		return fmt.Sprintf(`Remove the "javascript:" prefix from the "%s" attribute`, p.Attribute)
	case KindHTTPEquiv:
		return httpEquivText(strings.ToLower(p.Value))
	case KindExtraWhitespace:
		return "Remove the extra whitespaces"
	}
	return ""
}

// URL returns a link to the guideline the message refers to.
func (m Message) URL() string {
	if m.Kind == KindInvalidAttribute {
		switch m.Params.Attribute {
		case "charset":
			return perfectionKills + "optimizing-html/#8_script_charset"
		case "language":
			return perfectionKills + "optimizing-html/#7_script_language_javascript"
		case "name":
			return perfectionKills + "optimizing-html/#5_a_id_name"
		}
	}
	return m.Kind.URL()
}

// String renders "<line>:<column>: <Severity>: <Category>: <Description>: <Message>."
func (m Message) String() string {
	return fmt.Sprintf("%d:%d: %s: %s: %s: %s.",
		m.Position.Line, m.Position.Column, m.Severity, m.Category(), m.Description(), m.Text())
}

type messageJSON struct {
	Line        int      `json:"line"`
	Column      int      `json:"column"`
	Severity    Severity `json:"severity"`
	Kind        Kind     `json:"kind"`
	Category    string   `json:"category,omitempty"`
	Description string   `json:"description,omitempty"`
	Message     string   `json:"message,omitempty"`
	URL         string   `json:"url,omitempty"`
	Params      Params   `json:"params"`
}

// MarshalJSON includes the rendered text next to the raw parameters.
func (m Message) MarshalJSON() ([]byte, error) {
	return json.Marshal(messageJSON{
		Line:        m.Position.Line,
		Column:      m.Position.Column,
		Severity:    m.Severity,
		Kind:        m.Kind,
		Category:    m.Category(),
		Description: m.Description(),
		Message:     m.Text(),
		URL:         m.URL(),
		Params:      m.Params,
	})
}

// UnmarshalJSON restores a message from its kind, position, severity and
// parameters. Rendered fields are ignored.
func (m *Message) UnmarshalJSON(data []byte) error {
	var raw messageJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = Message{
		Kind:     raw.Kind,
		Severity: raw.Severity,
		Position: Position{Line: raw.Line, Column: raw.Column},
		Params:   raw.Params,
	}
	return nil
}

func defaultType(tag string) string {
	switch tag {
	case "link", "style":
		return "text/css"
	case "script":
		return "text/javascript"
	}
	return "unknown"
}

func tagType(opening bool) string {
	if opening {
		return "opening"
	}
	return "closing"
}

// quoteWhitespace renders a run of spaces and tabs the way it is shown in
// messages: single quoted, with tabs escaped.
func quoteWhitespace(ws string) string {
	return "'" + strings.ReplaceAll(ws, "\t", `\t`) + "'"
}

func httpEquivText(directive string) string {
	switch directive {
	case "content-language":
		return "Specify the language in the html tag, see http://www.w3.org/International/questions/qa-http-and-lang.en#answer"
	case "content-type":
		return `Replace this by <meta charset="utf-8">`
	case "set-cookie":
		return fmt.Sprintf(`The http-equiv "%s" directive is non conformant, avoid it`, directive)
	case "pragma", "expires":
		return fmt.Sprintf(`HTML5 does not allow the http-equiv "%s" directive. To cache you need to use the HTTP headers or Appcache with a manifest file`, directive)
	}
	return fmt.Sprintf(`HTML5 does not allow the http-equiv "%s" directive`, directive)
}
