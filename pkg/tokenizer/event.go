package tokenizer

import "github.com/praetorian-inc/html5lint/pkg/types"

// Kind is the type of a token event.
type Kind int

const (
	Declaration Kind = iota + 1
	StartTag
	EndTag
	Text
	EntityRef
	CharRef
)

func (k Kind) String() string {
	switch k {
	case Declaration:
		return "Declaration"
	case StartTag:
		return "StartTag"
	case EndTag:
		return "EndTag"
	case Text:
		return "Text"
	case EntityRef:
		return "EntityRef"
	case CharRef:
		return "CharRef"
	}
	return "Unknown"
}

// Event is one token of the document, anchored at the position of its
// first character.
type Event struct {
	Kind Kind
	// Raw is the unmodified source text of the token.
	Raw string
	Pos types.Position
	// Name is the lowercase tag name, the entity name ("amp"), the character
	// reference body ("#39", "#x27") or the declaration text ("DOCTYPE html").
	Name string

	// Tag is set for StartTag events.
	Tag *Tag

	// EndTagText is the end tag as matched by the end tag grammar
	// ("</ a >"). Empty when the end tag carries anything besides its name.
	EndTagText string
}
