package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		anchor   Position
		fragment string
		offset   int
		want     Position
	}{
		{"empty fragment", Position{2, 8}, "", 0, Position{2, 8}},
		{"same line", Position{2, 8}, "foo", 2, Position{2, 10}},
		{"second line", Position{2, 8}, "foo\nbar", 6, Position{3, 3}},
		{"end of second line", Position{2, 8}, "foo\nbar\n", 7, Position{3, 4}},
		{"after trailing newline", Position{2, 8}, "foo\nbar\n", 8, Position{4, 1}},
		{"carriage return", Position{1, 1}, "a\rb", 2, Position{2, 1}},
		{"crlf is one break", Position{1, 5}, "a\r\nb", 4, Position{2, 2}},
		{"offset between cr and lf", Position{1, 5}, "a\r\nb", 2, Position{2, 1}},
		{"multibyte runes count once", Position{1, 1}, "éé\nàb", 5, Position{2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.anchor, tt.fragment, tt.offset))
		})
	}
}

func TestResolve_ZeroOffsetIsAnchor(t *testing.T) {
	for _, fragment := range []string{"", "abc", "\n\n", "\r\n"} {
		assert.Equal(t, Position{7, 3}, Resolve(Position{7, 3}, fragment, 0))
	}
}

func TestAdvance(t *testing.T) {
	assert.Equal(t, Position{1, 6}, Advance(Start, "<div>"))
	assert.Equal(t, Position{3, 1}, Advance(Start, "a\r\n\n"))
	assert.Equal(t, Position{2, 3}, Advance(Position{1, 9}, "x\n  "))
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{""}, SplitLines(""))
	assert.Equal(t, []string{"foo"}, SplitLines("foo"))
	assert.Equal(t, []string{"foo", ""}, SplitLines("foo\n"))
	assert.Equal(t, []string{"a", "b", "  "}, SplitLines("a\r\nb\r  "))
}

func TestPositionCompare(t *testing.T) {
	assert.Equal(t, -1, Position{1, 9}.Compare(Position{2, 1}))
	assert.Equal(t, -1, Position{2, 1}.Compare(Position{2, 2}))
	assert.Equal(t, 0, Position{2, 2}.Compare(Position{2, 2}))
	assert.Equal(t, 1, Position{3, 1}.Compare(Position{2, 40}))
	assert.Equal(t, "3:14", Position{3, 14}.String())
}
