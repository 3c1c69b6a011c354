// Package tui is the interactive navigator: four hierarchy levels browsed
// with the arrow keys, mutations routed through the same engine the CLI uses.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"pm-cli/internal/store"
)

func Run(s store.Store, db *store.DB) error {
	m := newAppModel(s, db, func() time.Time { return time.Now().UTC() })
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
