package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/praetorian-inc/html5lint/pkg/explore"
)

var (
	exploreStore string
)

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Interactively explore lint results",
	Long: `Launch an interactive TUI to browse a result store written by
'lint --output'.

  - Two panes: documents with message counts, messages of the selected document
  - Severity filter (s) cycling through All, Error, Warning and Info
  - Vi-style navigation (j/k, Ctrl-f/b, g/G), tab switches panes
  - o opens the selected document in $PAGER`,
	RunE: runExplore,
}

func init() {
	exploreCmd.Flags().StringVar(&exploreStore, "output", explore.DefaultStoreName, "Result store: a SQLite file, a directory holding "+explore.DefaultStoreName+" or a postgres:// URL")
}

func runExplore(cmd *cobra.Command, args []string) error {
	model, err := explore.New(exploreStore)
	if err != nil {
		return fmt.Errorf("loading result store: %w", err)
	}
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running explore TUI: %w", err)
	}
	return nil
}
