package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"pm-cli/internal/model"
	"pm-cli/internal/mutate"
)

type confirmFocus int

const (
	confirmFocusCancel confirmFocus = iota
	confirmFocusConfirm
)

// confirmState gates cascade deletes behind an explicit yes/no step.
type confirmState struct {
	itemID      uint64
	title       string
	descendants int
	focus       confirmFocus
}

func newDeleteConfirm(it model.Item, descendants int) confirmState {
	return confirmState{itemID: it.ID, title: it.Title, descendants: descendants}
}

func (c confirmState) body() string {
	if c.descendants > 0 {
		return fmt.Sprintf("Delete %d %q and its %d descendant(s)?", c.itemID, c.title, c.descendants)
	}
	return fmt.Sprintf("Delete %d %q?", c.itemID, c.title)
}

func (m appModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+g", "n":
		m.mode = modeBrowse
		return m, nil

	case "tab", "left", "right":
		if m.confirm.focus == confirmFocusCancel {
			m.confirm.focus = confirmFocusConfirm
		} else {
			m.confirm.focus = confirmFocusCancel
		}
		return m, nil

	case "y":
		return m.deleteConfirmed()

	case "enter":
		if m.confirm.focus == confirmFocusConfirm {
			return m.deleteConfirmed()
		}
		m.mode = modeBrowse
		return m, nil
	}
	return m, nil
}

func (m appModel) deleteConfirmed() (tea.Model, tea.Cmd) {
	id := m.confirm.itemID
	removed, err := mutate.Delete(m.db, id, true)
	m.mode = modeBrowse
	if err != nil {
		m.fail(err)
		return m, nil
	}
	m.syncCursor()
	m.commit(fmt.Sprintf("Deleted %d item(s)", len(removed)))
	return m, nil
}
