package linter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/praetorian-inc/html5lint/pkg/types"
)

func TestIndentation(t *testing.T) {
	tests := []struct {
		text   string
		column int
		want   int
		known  bool
	}{
		{" ", 0, 0, false},
		{" ", 2, 0, false},
		{" a", 1, 0, false},
		{" ", 1, 1, true},
		{"  ", 1, 2, true},
		{"\t", 1, 2, true},
		{"\t\t", 1, 4, true},
		{"\t \t", 1, 5, true},
		{" \n \n   ", 2, 3, true},
		{" \n \n   a", 2, 0, false},
		{"foo\n", 4, 0, true},
		{"", 1, 0, true},
	}
	for _, tt := range tests {
		s := state{lastText: &fragment{text: tt.text, pos: types.Position{Line: 1, Column: tt.column}}}
		got, known := s.indentation()
		assert.Equal(t, tt.known, known, "%q at column %d", tt.text, tt.column)
		if tt.known {
			assert.Equal(t, tt.want, got, "%q at column %d", tt.text, tt.column)
		}
	}
}

func TestIndentation_NoText(t *testing.T) {
	var s state
	_, known := s.indentation()
	assert.False(t, known)
}

func TestCheckIndentation_NormalizesAndConsumes(t *testing.T) {
	tests := []struct {
		last, indent int
		reported     bool
		next         int
	}{
		{0, 0, false, 0},
		{0, 2, false, 2},
		{0, 3, true, 2},
		{0, 1, true, 2},
		{4, 1, true, 0},
		{4, 5, true, 6},
		{4, 10, true, 6},
		{4, 4, false, 4},
	}
	for _, tt := range tests {
		r := newRun()
		r.lastIndent = tt.last
		r.lastText = &fragment{text: "\n" + spaces(tt.indent), pos: types.Start}
		r.checkIndentation(types.Position{Line: 2, Column: tt.indent + 1})

		assert.Equal(t, tt.next, r.lastIndent, "last %d indent %d", tt.last, tt.indent)
		assert.Nil(t, r.lastText)
		if tt.reported {
			assert.Equal(t, []types.Message{types.NewMessage(types.KindIndentation,
				types.Position{Line: 2, Column: 1},
				types.Params{Indent: tt.indent, MaxIndent: tt.last + 2})}, r.messages)
		} else {
			assert.Empty(t, r.messages)
		}
	}
}

func spaces(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
