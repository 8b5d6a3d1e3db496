package types

import "fmt"

// Kind identifies the check that produced a message.
type Kind int

const (
	KindDocumentType Kind = iota + 1
	KindEntityReference
	KindTrailingWhitespace
	KindTab
	KindCharset
	KindVoidElement
	KindOptionalTag
	KindTypeAttribute
	KindConcernsSeparation
	KindProtocol
	KindName
	KindCapitalization
	KindQuotation
	KindIndentation
	KindFormatting
	KindBooleanAttribute
	KindInvalidAttribute
	KindVoidZero
	KindInvalidHandler
	KindHTTPEquiv
	KindExtraWhitespace
)

const (
	styleGuide      = "https://google-styleguide.googlecode.com/svn/trunk/htmlcssguide.xml"
	perfectionKills = "http://perfectionkills.com/"
)

func guide(section string) string {
	return styleGuide + "?showone=" + section + "#" + section
}

type kindInfo struct {
	name     string
	category string
	severity Severity
	url      string
}

var kinds = map[Kind]kindInfo{
	KindDocumentType:       {"doctype", "Document Type", SeverityError, guide("Document_Type")},
	KindEntityReference:    {"entities", "Entity References", SeverityError, guide("Entity_References")},
	KindTrailingWhitespace: {"trailing_whitespace", "Trailing Whitespace", SeverityError, guide("Trailing_Whitespace")},
	KindTab:                {"tabs", "Indentation", SeverityError, guide("Indentation")},
	KindCharset:            {"charset", "Encoding", SeverityError, guide("Encoding")},
	KindVoidElement:        {"void_element", "Document Type", SeverityError, guide("Document_Type")},
	KindOptionalTag:        {"optional_tag", "Optional Tags", SeverityInfo, guide("Optional_Tags")},
	KindTypeAttribute:      {"type_attribute", "type Attributes", SeverityError, guide("type_Attributes")},
	KindConcernsSeparation: {"concerns_separation", "Separation of concerns", SeverityError, guide("Separation_of_Concerns")},
	KindProtocol:           {"protocol", "Protocol", SeverityWarning, guide("Protocol")},
	KindName:               {"names", "ID and Class Name Delimiters", SeverityError, guide("ID_and_Class_Name_Delimiters")},
	KindCapitalization:     {"capitalization", "Capitalization", SeverityError, guide("Capitalization")},
	KindQuotation:          {"quotation", "HTML Quotation Marks", SeverityError, guide("HTML_Quotation_Marks")},
	KindIndentation:        {"indentation", "Indentation", SeverityError, guide("Indentation")},
	KindFormatting:         {"formatting", "General Formatting", SeverityError, guide("General_Formatting")},
	KindBooleanAttribute:   {"boolean_attribute", "Boolean Attributes", SeverityError, perfectionKills + "experimenting-with-html-minifier/#collapse_boolean_attributes"},
	KindInvalidAttribute:   {"invalid_attribute", "Invalid Attributes", SeverityError, perfectionKills + "optimizing-html/"},
	KindVoidZero:           {"void_zero", "Javascript Links", SeverityError, perfectionKills + "optimizing-html/#5_href_javascript_void"},
	KindInvalidHandler:     {"invalid_handler", "Javascript Links", SeverityError, perfectionKills + "optimizing-html/#4_onclick_javascript"},
	KindHTTPEquiv:          {"http_equiv", "HTTP Equiv", SeverityError, "http://www.w3.org/TR/html5/document-metadata.html#pragma-directives"},
	KindExtraWhitespace:    {"extra_whitespace", "Extra whitespace", SeverityError, ""},
}

// AllKinds returns every kind in declaration order.
func AllKinds() []Kind {
	all := make([]Kind, 0, len(kinds))
	for k := KindDocumentType; k <= KindExtraWhitespace; k++ {
		all = append(all, k)
	}
	return all
}

// Name returns the identifier used to disable the check, e.g. "trailing_whitespace".
func (k Kind) Name() string {
	if info, ok := kinds[k]; ok {
		return info.name
	}
	return fmt.Sprintf("kind%d", int(k))
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	return k.Name()
}

// Category is the style guide section the kind belongs to.
// Tabs and indentation share a category, so filter on Kind, not Category.
func (k Kind) Category() string {
	return kinds[k].category
}

// Severity is the level every message of this kind is reported at.
func (k Kind) Severity() Severity {
	return kinds[k].severity
}

// URL points at the guideline behind the kind. Some kinds have none.
func (k Kind) URL() string {
	return kinds[k].url
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	_, ok := kinds[k]
	return ok
}

// ParseKind looks a kind up by its name.
func ParseKind(name string) (Kind, bool) {
	for k, info := range kinds {
		if info.name == name {
			return k, true
		}
	}
	return 0, false
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid kind %d", int(k))
	}
	return []byte(k.Name()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, ok := ParseKind(string(text))
	if !ok {
		return fmt.Errorf("unknown kind %q", text)
	}
	*k = parsed
	return nil
}
