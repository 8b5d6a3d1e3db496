package explore

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/praetorian-inc/html5lint/pkg/types"
)

// Colors
var (
	colorPrimary   = lipgloss.Color("#e63948") // red
	colorError     = lipgloss.Color("9")       // red
	colorWarning   = lipgloss.Color("#D4AF37") // gold
	colorInfo      = lipgloss.Color("#11C3DB") // cyan
	colorMuted     = lipgloss.Color("8")       // gray
	colorAccent    = lipgloss.Color("#11C3DB") // cyan
	colorHighlight = lipgloss.Color("15")      // white
)

// Pane border styles
var (
	activeBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary)

	inactiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorMuted)
)

// Title style for pane headers
var titleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight).
	Background(colorPrimary).
	Padding(0, 1)

// Table row styles
var (
	selectedRowStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("17")).
				Foreground(colorHighlight)

	normalRowStyle = lipgloss.NewStyle()

	headerRowStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning)
	infoStyle    = lipgloss.NewStyle().Foreground(colorInfo)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
)

// Status bar
var statusBarStyle = lipgloss.NewStyle().
	Foreground(colorMuted)

// Help styles
var (
	helpKeyStyle  = lipgloss.NewStyle().Foreground(colorAccent)
	helpDescStyle = lipgloss.NewStyle().Foreground(colorMuted)
)

// Modal overlay style
var modalStyle = lipgloss.NewStyle().
	Border(lipgloss.DoubleBorder()).
	BorderForeground(colorPrimary).
	Padding(1, 2)

// renderSeverity returns a styled, fixed width severity label.
func renderSeverity(s types.Severity) string {
	label := lipgloss.NewStyle().Width(7).Render(s.String())
	switch s {
	case types.SeverityError:
		return errorStyle.Render(label)
	case types.SeverityWarning:
		return warningStyle.Render(label)
	}
	return infoStyle.Render(label)
}
