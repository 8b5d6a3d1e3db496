package explore

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/praetorian-inc/html5lint/pkg/types"
)

// messagesPane is the right pane listing the selected document's messages.
type messagesPane struct {
	doc      *documentRow
	messages []types.Message
	cursor   cursor
	width    int
	height   int
	focused  bool
}

func newMessagesPane() messagesPane {
	return messagesPane{}
}

func (p *messagesPane) setDocument(doc *documentRow, filter severityFilter) {
	if doc != p.doc {
		p.cursor = cursor{height: p.cursor.height}
	}
	p.doc = doc
	p.messages = filter.visibleMessages(doc)
	p.cursor.clamp(len(p.messages))
}

func (p *messagesPane) setSize(w, h int) {
	p.width = w
	p.height = h
	// title, borders, document header and url footer
	p.cursor.height = max(1, h-6)
	p.cursor.ensureVisible()
}

func (p *messagesPane) selected() *types.Message {
	if p.cursor.pos < 0 || p.cursor.pos >= len(p.messages) {
		return nil
	}
	return &p.messages[p.cursor.pos]
}

func (p messagesPane) Update(msg tea.KeyMsg) (messagesPane, tea.Cmd) {
	p.cursor.update(msg, len(p.messages))
	return p, nil
}

func (p messagesPane) View() string {
	innerWidth := max(10, p.width-2)

	var sb strings.Builder
	if p.doc == nil {
		sb.WriteString(mutedStyle.Render("  No document selected"))
		return renderPane(" Messages ", sb.String(), p.width, p.height, p.focused)
	}

	sb.WriteString(headerRowStyle.Render(truncate(p.doc.Path, innerWidth)))
	sb.WriteString("\n")
	sb.WriteString(mutedStyle.Render(fmt.Sprintf("blob %s  %d bytes", p.doc.ID.Short(), p.doc.Size)))
	sb.WriteString("\n")

	if len(p.messages) == 0 {
		sb.WriteString(mutedStyle.Render("  No messages"))
	}
	end := min(p.cursor.offset+p.cursor.height, len(p.messages))
	for i := p.cursor.offset; i < end; i++ {
		m := p.messages[i]
		text := fmt.Sprintf("%-8s %s", m.Position, m.Text())
		line := renderSeverity(m.Severity) + " " + truncate(text, max(4, innerWidth-8))
		if i == p.cursor.pos && p.focused {
			line = selectedRowStyle.Width(innerWidth).Render(m.Severity.String() + " " + text)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	if m := p.selected(); m != nil {
		sb.WriteString(mutedStyle.Render(m.Description()))
		if url := m.URL(); url != "" {
			sb.WriteString("\n")
			sb.WriteString(mutedStyle.Render(url))
		}
	}

	return renderPane(fmt.Sprintf(" Messages (%d) ", len(p.messages)), sb.String(), p.width, p.height, p.focused)
}
