// Package template removes server side template directives from a
// document so that the markup around them can be linted.
//
// Expressions ("{{ x }}", "<?= x ?>") become a run of "x" characters of
// the same length, so that attribute values stay well formed and the
// columns after them do not move. Statements and comments ("{% if %}",
// "{# note #}", "<?php ... ?>") are dropped, keeping their line breaks. A
// line that held nothing but statements is left empty.
package template

import (
	"strings"

	"github.com/dlclark/regexp2"
)

var (
	expression = regexp2.MustCompile(`\{\{.*?\}\}|<\?=.*?\?>`, regexp2.Singleline)
	statement  = regexp2.MustCompile(`\{%.*?%\}|\{#.*?#\}|<\?php.*?(?:\?>|$)`, regexp2.Singleline)
)

// Strip returns content with its template directives removed.
func Strip(content string) string {
	out, err := expression.ReplaceFunc(content, func(m regexp2.Match) string {
		return placeholder(m.String())
	}, -1, -1)
	if err != nil {
		out = content
	}

	stripped, statementLines, err := dropStatements(out)
	if err != nil {
		return out
	}
	return clearLines(stripped, statementLines)
}

// dropStatements removes every statement from s, keeping its line breaks.
// It also returns the lines, counted from 0, on which a statement started.
func dropStatements(s string) (string, map[int]bool, error) {
	runes := []rune(s)
	lines := make(map[int]bool)
	var b strings.Builder
	line, last := 0, 0

	m, err := statement.FindStringMatch(s)
	for ; m != nil && err == nil; m, err = statement.FindNextMatch(m) {
		before := string(runes[last:m.Index])
		b.WriteString(before)
		line += strings.Count(before, "\n")
		lines[line] = true

		breaks := strings.Count(m.String(), "\n")
		b.WriteString(strings.Repeat("\n", breaks))
		line += breaks
		last = m.Index + m.Length
	}
	if err != nil {
		return "", nil, err
	}
	b.WriteString(string(runes[last:]))
	return b.String(), lines, nil
}

func placeholder(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == '\n' {
			b.WriteRune(r)
			continue
		}
		b.WriteByte('x')
	}
	return b.String()
}

// clearLines empties the given lines when only whitespace is left on them.
func clearLines(s string, lines map[int]bool) string {
	if len(lines) == 0 {
		return s
	}
	split := strings.Split(s, "\n")
	for i := range split {
		if lines[i] && strings.TrimSpace(split[i]) == "" {
			split[i] = ""
		}
	}
	return strings.Join(split, "\n")
}
