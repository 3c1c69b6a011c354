package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"pm-cli/internal/model"
	"pm-cli/internal/mutate"
	"pm-cli/internal/store"
)

type level int

const (
	levelProduct level = iota
	levelEpic
	levelTask
	levelSubtask
)

func (l level) kind() model.Kind {
	switch l {
	case levelProduct:
		return model.KindProduct
	case levelEpic:
		return model.KindEpic
	case levelTask:
		return model.KindTask
	}
	return model.KindSubtask
}

func (l level) label() string {
	return l.kind().Label()
}

type mode int

const (
	modeBrowse mode = iota
	modeHelp
	modeForm
	modeConfirm
)

type appModel struct {
	store store.Store
	db    *store.DB
	now   func() time.Time

	width  int
	height int

	mode   mode
	level  level
	cursor [4]int
	// path[l] is the id of the item the cursor sat on when level l was
	// last visited; it anchors what the next level down lists.
	path [4]uint64

	form    itemForm
	confirm confirmState

	status    string
	statusErr bool
}

func newAppModel(s store.Store, db *store.DB, now func() time.Time) appModel {
	m := appModel{store: s, db: db, now: now}
	m.syncCursor()
	return m
}

func (m appModel) Init() tea.Cmd { return nil }

// visible returns the items listed at level l: all roots for the Product
// level, otherwise the children of the item selected one level up. Milestones
// appear at whatever level their parent sits on.
func (m appModel) visible(l level) []model.Item {
	var out []model.Item
	if l == levelProduct {
		for _, it := range m.db.Items {
			if it.Parent == nil {
				out = append(out, it)
			}
		}
		return out
	}
	parent := m.path[l-1]
	if parent == 0 {
		return nil
	}
	for _, it := range m.db.Items {
		if it.Parent != nil && *it.Parent == parent {
			out = append(out, it)
		}
	}
	return out
}

// syncCursor clamps the cursor to the current list and records the selected
// id on the path.
func (m *appModel) syncCursor() {
	items := m.visible(m.level)
	if len(items) == 0 {
		m.cursor[m.level] = 0
		m.path[m.level] = 0
		return
	}
	if m.cursor[m.level] >= len(items) {
		m.cursor[m.level] = len(items) - 1
	}
	if m.cursor[m.level] < 0 {
		m.cursor[m.level] = 0
	}
	m.path[m.level] = items[m.cursor[m.level]].ID
}

// focus moves the cursor to the item with the given id if it is visible at
// the current level.
func (m *appModel) focus(id uint64) {
	for i, it := range m.visible(m.level) {
		if it.ID == id {
			m.cursor[m.level] = i
			break
		}
	}
	m.syncCursor()
}

func (m appModel) selected() (*model.Item, bool) {
	if m.path[m.level] == 0 {
		return nil, false
	}
	return m.db.FindItem(m.path[m.level])
}

func (m *appModel) fail(err error) {
	m.status = err.Error()
	m.statusErr = true
}

func (m *appModel) info(text string) {
	m.status = text
	m.statusErr = false
}

// commit saves the store after a successful mutation.
func (m *appModel) commit(okMsg string) {
	if err := m.store.Save(m.db); err != nil {
		m.fail(err)
		return
	}
	m.info(okMsg)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeHelp:
			m.mode = modeBrowse
			return m, nil
		case modeForm:
			return m.updateForm(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m appModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "?":
		m.mode = modeHelp
		return m, nil

	case "up", "k":
		if m.cursor[m.level] > 0 {
			m.cursor[m.level]--
		}
		m.syncCursor()
		return m, nil

	case "down", "j":
		if m.cursor[m.level] < len(m.visible(m.level))-1 {
			m.cursor[m.level]++
		}
		m.syncCursor()
		return m, nil

	case "right", "l", "enter":
		if m.level < levelSubtask && m.path[m.level] != 0 {
			m.level++
			m.syncCursor()
		}
		return m, nil

	case "left", "h", "esc":
		if m.level > levelProduct {
			m.level--
			m.syncCursor()
		}
		return m, nil

	case "shift+left", "H":
		return m.promoteSelected()

	case "shift+right", "L":
		return m.demoteSelected()

	case "a":
		parentRef := ""
		if m.level > levelProduct {
			parentRef = fmt.Sprintf("%d", m.path[m.level-1])
		}
		m.form = newCreateForm(m.level.kind(), parentRef)
		m.mode = modeForm
		return m, nil

	case "e":
		it, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.form = newEditForm(*it)
		m.mode = modeForm
		return m, nil

	case "d":
		it, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.confirm = newDeleteConfirm(*it, len(m.db.Descendants(it.ID)))
		m.mode = modeConfirm
		return m, nil

	case "c":
		it, ok := m.selected()
		if !ok {
			return m, nil
		}
		if _, err := mutate.Complete(m.db, it.ID, false, m.now()); err != nil {
			m.fail(err)
			return m, nil
		}
		m.commit(fmt.Sprintf("Completed %d", it.ID))
		return m, nil

	case "r":
		it, ok := m.selected()
		if !ok {
			return m, nil
		}
		if err := mutate.Reopen(m.db, it.ID, m.now()); err != nil {
			m.fail(err)
			return m, nil
		}
		m.commit(fmt.Sprintf("Reopened %d", it.ID))
		return m, nil
	}
	return m, nil
}

func (m appModel) promoteSelected() (tea.Model, tea.Cmd) {
	it, ok := m.selected()
	if !ok {
		return m, nil
	}
	id := it.ID
	if err := mutate.Promote(m.db, id, m.now()); err != nil {
		m.fail(err)
		return m, nil
	}
	if m.level > levelProduct {
		m.level--
	}
	m.focus(id)
	m.commit(fmt.Sprintf("Promoted %d", id))
	return m, nil
}

// demoteSelected nests the item under the visible sibling directly above it;
// with no sibling above there is nothing compatible to nest under.
func (m appModel) demoteSelected() (tea.Model, tea.Cmd) {
	it, ok := m.selected()
	if !ok {
		return m, nil
	}
	id := it.ID
	idx := m.cursor[m.level]
	items := m.visible(m.level)
	if idx == 0 || idx >= len(items) {
		m.fail(fmt.Errorf("cannot demote %d: no sibling above to nest under", id))
		return m, nil
	}
	target := items[idx-1]
	if err := mutate.Demote(m.db, id, fmt.Sprintf("%d", target.ID), m.now()); err != nil {
		m.fail(err)
		return m, nil
	}
	// The item now lives under the former sibling: select that sibling,
	// then drill into it.
	m.focus(target.ID)
	if m.level < levelSubtask {
		m.level++
	}
	m.focus(id)
	m.commit(fmt.Sprintf("Demoted %d", id))
	return m, nil
}
