package types

import (
	"cmp"
	"fmt"
)

// Position is a line:column point in a document (1-based).
// Columns count characters, not bytes.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Start is the position of the first character of a document.
var Start = Position{Line: 1, Column: 1}

// String returns "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Compare orders positions by line, then column. It returns -1, 0 or +1.
func (p Position) Compare(o Position) int {
	if c := cmp.Compare(p.Line, o.Line); c != 0 {
		return c
	}
	return cmp.Compare(p.Column, o.Column)
}

// Resolve maps a character offset inside fragment, which begins at anchor,
// to an absolute position. Line breaks are "\n", "\r\n" and a lone "\r".
//
// Offsets are always relative to the outermost fragment whose anchor is
// known (a tag's raw text, never a value nested inside it).
func Resolve(anchor Position, fragment string, offset int) Position {
	breaks, last, n := 0, 0, 0
	prevCR := false
	for _, r := range fragment {
		if n == offset {
			break
		}
		n++
		switch {
		case r == '\n' && prevCR:
			// second half of a "\r\n" pair
		case r == '\n' || r == '\r':
			breaks++
			last = 0
		default:
			last++
		}
		prevCR = r == '\r'
	}

	if breaks == 0 {
		return Position{Line: anchor.Line, Column: anchor.Column + offset}
	}
	return Position{Line: anchor.Line + breaks, Column: 1 + last}
}

// Advance returns the position just past fragment.
func Advance(anchor Position, fragment string) Position {
	n := 0
	for range fragment {
		n++
	}
	return Resolve(anchor, fragment, n)
}

// SplitLines splits s on line breaks. A trailing line break yields a final
// empty segment, and so does an empty string.
func SplitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\n':
			lines = append(lines, s[start:i])
			start = i + 1
		case '\r':
			lines = append(lines, s[start:i])
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	return append(lines, s[start:])
}
