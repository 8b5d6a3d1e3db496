package explore

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/praetorian-inc/html5lint/pkg/store"
	"github.com/praetorian-inc/html5lint/pkg/types"
)

// focusedPane tracks which pane has keyboard focus.
type focusedPane int

const (
	paneDocuments focusedPane = iota
	paneMessages
)

// pagerFinishedMsg is sent when an external pager process exits.
type pagerFinishedMsg struct{ err error }

// Model is the root Bubble Tea model for the explore TUI.
type Model struct {
	data      *exploreData
	documents documentsPane
	messages  messagesPane

	focus    focusedPane
	filter   severityFilter
	showHelp bool

	width  int
	height int
	err    error
}

// New creates a Model over the result store at storePath.
func New(storePath string) (Model, error) {
	data, err := loadData(storePath)
	if err != nil {
		return Model{}, err
	}
	return newModel(data), nil
}

// NewFromStore creates a Model over an open store. Closing the model
// closes the store.
func NewFromStore(s store.Store) (Model, error) {
	data, err := loadFromStore(s)
	if err != nil {
		return Model{}, err
	}
	return newModel(data), nil
}

func newModel(data *exploreData) Model {
	m := Model{
		data:      data,
		documents: newDocumentsPane(data.documents),
		messages:  newMessagesPane(),
		focus:     paneDocuments,
	}
	m.documents.focused = true
	m.messages.setDocument(m.documents.selected(), m.filter)
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("html5lint explore")
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil

	case pagerFinishedMsg:
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			switch {
			case keyMatches(msg, defaultKeys.ForceQuit):
				return m, tea.Quit
			case keyMatches(msg, defaultKeys.Quit), keyMatches(msg, defaultKeys.ToggleHelp):
				m.showHelp = false
			}
			return m, nil
		}

		switch {
		case keyMatches(msg, defaultKeys.ForceQuit), keyMatches(msg, defaultKeys.Quit):
			return m, tea.Quit
		case keyMatches(msg, defaultKeys.ToggleHelp):
			m.showHelp = true
			return m, nil
		case keyMatches(msg, defaultKeys.SwitchPane):
			if m.focus == paneDocuments {
				m.setFocus(paneMessages)
			} else {
				m.setFocus(paneDocuments)
			}
			return m, nil
		case keyMatches(msg, defaultKeys.CycleSeverity):
			m.filter = m.filter.next()
			m.applyFilter()
			return m, nil
		case keyMatches(msg, defaultKeys.OpenSource):
			return m, m.openSource()
		}

		switch m.focus {
		case paneDocuments:
			var moved bool
			m.documents, moved = m.documents.Update(msg)
			if moved {
				m.messages.setDocument(m.documents.selected(), m.filter)
			}
			return m, nil
		case paneMessages:
			var cmd tea.Cmd
			m.messages, cmd = m.messages.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	m.updateLayout()
	main := lipgloss.JoinHorizontal(lipgloss.Top, m.documents.View(), m.messages.View())
	return lipgloss.JoinVertical(lipgloss.Left, main, m.renderStatusBar())
}

func (m *Model) renderStatusBar() string {
	total := 0
	for _, d := range m.data.documents {
		total += len(d.Messages)
	}
	status := fmt.Sprintf(" %d documents | %d messages | severity: %s",
		len(m.data.documents), total, m.filter.label())
	if m.err != nil {
		status += " | " + m.err.Error()
	}
	left := statusBarStyle.Render(status)

	right := fmt.Sprintf("%s:%s  %s:%s  %s:%s  %s:%s  %s:%s  %s:%s",
		helpKeyStyle.Render("j/k"), helpDescStyle.Render("nav"),
		helpKeyStyle.Render("tab"), helpDescStyle.Render("pane"),
		helpKeyStyle.Render("s"), helpDescStyle.Render("severity"),
		helpKeyStyle.Render("o"), helpDescStyle.Render("source"),
		helpKeyStyle.Render("?"), helpDescStyle.Render("help"),
		helpKeyStyle.Render("q"), helpDescStyle.Render("quit"),
	)

	gap := max(0, m.width-lipgloss.Width(left)-lipgloss.Width(right))
	return left + strings.Repeat(" ", gap) + right
}

func (m *Model) renderHelp() string {
	width := min(m.width-4, 70)
	box := modalStyle.Width(max(10, width-4)).Render(helpText)
	view := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(" Help (q to close) "), box)

	hPad := (m.width - lipgloss.Width(view)) / 2
	vPad := (m.height - lipgloss.Height(view)) / 2
	return strings.Repeat("\n", max(0, vPad)) +
		lipgloss.NewStyle().PaddingLeft(max(0, hPad)).Render(view)
}

func (m *Model) setFocus(p focusedPane) {
	m.documents.focused = p == paneDocuments
	m.messages.focused = p == paneMessages
	m.focus = p
}

// applyFilter narrows both panes to the current severity filter, keeping
// the selected document when it is still visible.
func (m *Model) applyFilter() {
	prev := m.documents.selected()
	rows := m.filter.visibleDocuments(m.data.documents)
	m.documents.setRows(rows, m.filter)
	for i, r := range rows {
		if r == prev {
			m.documents.cursor.pos = i
			m.documents.cursor.ensureVisible()
			break
		}
	}
	m.messages.setDocument(m.documents.selected(), m.filter)
}

// openSource shows the selected document in $PAGER, at the selected
// message's line. Only documents found on the local filesystem can be
// opened.
func (m *Model) openSource() tea.Cmd {
	doc := m.documents.selected()
	if doc == nil {
		return nil
	}
	line := 0
	if msg := m.messages.selected(); msg != nil {
		line = msg.Position.Line
	}
	for _, prov := range doc.Provenance {
		if fp, ok := prov.(types.FileProvenance); ok {
			if _, err := os.Stat(fp.FilePath); err == nil {
				return openInPager(fp.FilePath, line)
			}
		}
	}
	m.err = fmt.Errorf("%s is not a local file", doc.Path)
	return nil
}

func openInPager(filePath string, line int) tea.Cmd {
	pager := os.Getenv("PAGER")
	if pager == "" {
		pager = "less"
	}

	var args []string
	if line > 0 && pager == "less" {
		args = append(args, fmt.Sprintf("+%d", line))
	}
	args = append(args, filePath)

	c := exec.Command(pager, args...)
	return tea.ExecProcess(c, func(err error) tea.Msg {
		return pagerFinishedMsg{err: err}
	})
}

func (m *Model) updateLayout() {
	contentHeight := m.height - 2 // status bar + padding
	docsWidth := min(m.width*40/100, 60)

	m.documents.setSize(docsWidth, contentHeight)
	m.messages.setSize(m.width-docsWidth, contentHeight)
}

// Close releases resources held by the model.
func (m *Model) Close() error {
	if m.data != nil {
		return m.data.close()
	}
	return nil
}

const helpText = `html5lint explore

NAVIGATION
  j/k or Up/Down    Move cursor up/down
  Ctrl+f/Ctrl+b     Page down/up
  g/G               Jump to top/bottom
  Tab               Switch between documents and messages

FILTERS
  s                 Cycle severity: All, Error, Warning, Info

VIEWS
  o                 Open the document in $PAGER
  ?                 Toggle this help screen

QUIT
  q                 Quit
  Ctrl+c            Force quit
`
