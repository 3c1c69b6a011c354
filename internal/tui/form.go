package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"pm-cli/internal/due"
	"pm-cli/internal/model"
	"pm-cli/internal/mutate"
)

const (
	fieldTitle = iota
	fieldDue
	fieldProject
	fieldTags
	fieldCount
)

var fieldLabels = [fieldCount]string{"Title", "Due", "Project", "Tags"}

// itemForm is the create/edit modal. Create knows the kind and parent from
// the browsing context; edit keeps the item's identity untouched.
type itemForm struct {
	editing   bool
	itemID    uint64
	kind      model.Kind
	parentRef string

	inputs [fieldCount]textinput.Model
	focus  int
}

func blankInputs() [fieldCount]textinput.Model {
	var inputs [fieldCount]textinput.Model
	for i := range inputs {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 200
		inputs[i] = in
	}
	inputs[fieldDue].Placeholder = `"2026-12-31", "tomorrow", "next friday"`
	inputs[fieldTags].Placeholder = "comma,separated"
	inputs[fieldTitle].Focus()
	return inputs
}

func newCreateForm(kind model.Kind, parentRef string) itemForm {
	return itemForm{
		kind:      kind,
		parentRef: parentRef,
		inputs:    blankInputs(),
	}
}

func newEditForm(it model.Item) itemForm {
	f := itemForm{
		editing: true,
		itemID:  it.ID,
		kind:    it.Kind,
		inputs:  blankInputs(),
	}
	f.inputs[fieldTitle].SetValue(it.Title)
	if !it.Due.IsZero() {
		f.inputs[fieldDue].SetValue(string(it.Due))
	}
	f.inputs[fieldProject].SetValue(it.Project)
	f.inputs[fieldTags].SetValue(strings.Join(it.Tags, ","))
	return f
}

func (f itemForm) title() string {
	if f.editing {
		return fmt.Sprintf("Edit %s %d", f.kind.Label(), f.itemID)
	}
	return "New " + f.kind.Label()
}

func (m appModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+g":
		m.mode = modeBrowse
		return m, nil

	case "tab", "down":
		m.form.moveFocus(1)
		return m, nil

	case "shift+tab", "up":
		m.form.moveFocus(-1)
		return m, nil

	case "enter":
		return m.submitForm()
	}

	var cmd tea.Cmd
	m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
	return m, cmd
}

func (f *itemForm) moveFocus(delta int) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + fieldCount) % fieldCount
	f.inputs[f.focus].Focus()
}

func (m appModel) submitForm() (tea.Model, tea.Cmd) {
	f := m.form
	title := strings.TrimSpace(f.inputs[fieldTitle].Value())
	dueText := strings.TrimSpace(f.inputs[fieldDue].Value())
	project := strings.TrimSpace(f.inputs[fieldProject].Value())
	tags := model.SplitTags([]string{f.inputs[fieldTags].Value()})
	now := m.now()

	var dueDate model.Date
	if dueText != "" {
		d, err := due.Resolve(dueText, now)
		if err != nil {
			m.fail(err)
			return m, nil
		}
		dueDate = d
	}

	if !f.editing {
		it := model.Item{
			Title:   title,
			Kind:    f.kind,
			Status:  model.StatusOpen,
			Project: project,
			Tags:    tags,
			Due:     dueDate,
		}
		id, err := mutate.Attach(m.db, it, f.parentRef, now)
		if err != nil {
			m.fail(err)
			return m, nil
		}
		m.mode = modeBrowse
		m.focus(id)
		m.commit(fmt.Sprintf("Created %d", id))
		return m, nil
	}

	existing, ok := m.db.FindItem(f.itemID)
	if !ok {
		m.fail(mutate.NotFoundError{Kind: "item", Ref: fmt.Sprintf("%d", f.itemID)})
		m.mode = modeBrowse
		return m, nil
	}
	req := mutate.UpdateRequest{
		Title:    &title,
		Project:  &project,
		ClearDue: dueText == "",
	}
	if dueText != "" {
		req.Due = &dueDate
	}
	req.AddTags = tags
	for _, t := range existing.Tags {
		keep := false
		for _, n := range tags {
			if n == t {
				keep = true
				break
			}
		}
		if !keep {
			req.RemoveTags = append(req.RemoveTags, t)
		}
	}
	if err := mutate.Update(m.db, f.itemID, req, now); err != nil {
		m.fail(err)
		return m, nil
	}
	m.mode = modeBrowse
	m.focus(f.itemID)
	m.commit(fmt.Sprintf("Updated %d", f.itemID))
	return m, nil
}
