package explore

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// cursor is a scrolling selection over n rows, height of them visible.
type cursor struct {
	pos    int
	offset int
	height int
}

func (c *cursor) clamp(n int) {
	if c.pos >= n {
		c.pos = n - 1
	}
	if c.pos < 0 {
		c.pos = 0
	}
	c.ensureVisible()
}

func (c *cursor) ensureVisible() {
	if c.height <= 0 {
		return
	}
	if c.pos < c.offset {
		c.offset = c.pos
	}
	if c.pos >= c.offset+c.height {
		c.offset = c.pos - c.height + 1
	}
}

// update moves the cursor for a navigation key and reports whether it did.
func (c *cursor) update(msg tea.KeyMsg, n int) bool {
	prev := c.pos
	switch {
	case keyMatches(msg, defaultKeys.Up):
		c.pos--
	case keyMatches(msg, defaultKeys.Down):
		c.pos++
	case keyMatches(msg, defaultKeys.PageUp):
		c.pos -= max(1, c.height)
	case keyMatches(msg, defaultKeys.PageDown):
		c.pos += max(1, c.height)
	case keyMatches(msg, defaultKeys.Home):
		c.pos = 0
	case keyMatches(msg, defaultKeys.End):
		c.pos = n - 1
	default:
		return false
	}
	c.clamp(n)
	return c.pos != prev
}

// documentsPane is the left document list.
type documentsPane struct {
	rows    []*documentRow
	filter  severityFilter
	cursor  cursor
	width   int
	height  int
	focused bool
}

func newDocumentsPane(rows []*documentRow) documentsPane {
	return documentsPane{rows: rows}
}

func (p *documentsPane) setRows(rows []*documentRow, filter severityFilter) {
	p.rows = rows
	p.filter = filter
	p.cursor.clamp(len(rows))
}

func (p *documentsPane) setSize(w, h int) {
	p.width = w
	p.height = h
	// title, borders and header
	p.cursor.height = max(1, h-4)
	p.cursor.ensureVisible()
}

func (p *documentsPane) selected() *documentRow {
	if p.cursor.pos < 0 || p.cursor.pos >= len(p.rows) {
		return nil
	}
	return p.rows[p.cursor.pos]
}

func (p documentsPane) Update(msg tea.KeyMsg) (documentsPane, bool) {
	moved := p.cursor.update(msg, len(p.rows))
	return p, moved
}

func (p documentsPane) View() string {
	innerWidth := max(10, p.width-2)
	countWidth := 6
	pathWidth := max(4, innerWidth-2*countWidth-2)

	var sb strings.Builder
	header := fmt.Sprintf("%-*s %*s %*s", pathWidth, "Document", countWidth, "Msgs", countWidth, "Errors")
	sb.WriteString(headerRowStyle.Render(header))
	sb.WriteString("\n")

	if len(p.rows) == 0 {
		sb.WriteString(mutedStyle.Render("  No documents"))
	}
	end := min(p.cursor.offset+p.cursor.height, len(p.rows))
	for i := p.cursor.offset; i < end; i++ {
		row := p.rows[i]
		line := fmt.Sprintf("%-*s %*d %*d",
			pathWidth, truncate(row.Path, pathWidth),
			countWidth, row.count(p.filter),
			countWidth, row.count(filterError))
		style := normalRowStyle
		if i == p.cursor.pos {
			style = selectedRowStyle
		}
		sb.WriteString(style.Width(innerWidth).Render(line))
		if i < end-1 {
			sb.WriteString("\n")
		}
	}

	return renderPane(fmt.Sprintf(" Documents (%d) ", len(p.rows)), sb.String(), p.width, p.height, p.focused)
}

// renderPane draws content inside a titled border.
func renderPane(title, content string, width, height int, focused bool) string {
	border := inactiveBorderStyle
	if focused {
		border = activeBorderStyle
	}
	box := border.
		Width(max(0, width-2)).
		Height(max(0, height-3)).
		Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), box)
}

// truncate shortens s to width runes, keeping the end of paths visible.
func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[len(r)-width:])
	}
	return "…" + string(r[len(r)-width+1:])
}
