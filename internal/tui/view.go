package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"pm-cli/internal/due"
	"pm-cli/internal/model"
)

func (m appModel) View() string {
	switch m.mode {
	case modeHelp:
		return m.viewHelp()
	case modeForm:
		return m.viewForm()
	case modeConfirm:
		return m.viewConfirm()
	}
	return m.viewBrowse()
}

func (m appModel) viewBrowse() string {
	var b strings.Builder

	b.WriteString(styleHeader.Render("pm"))
	if crumb := m.breadcrumb(); crumb != "" {
		b.WriteString(styleMuted.Render("  " + crumb))
	}
	b.WriteString("\n")
	b.WriteString(m.levelTabs())
	b.WriteString("\n\n")

	items := m.visible(m.level)
	if len(items) == 0 {
		b.WriteString(styleMuted.Render("  (no items; press a to add)"))
		b.WriteString("\n")
	}
	today := model.DateOf(m.now())
	for i, it := range items {
		b.WriteString(m.renderRow(it, i == m.cursor[m.level], today))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.status != "" {
		st := styleMuted
		if m.statusErr {
			st = styleError
		}
		b.WriteString(st.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(styleMuted.Render("←/→ level  ↑/↓ select  shift+←/→ promote/demote  a add  e edit  d delete  c done  r reopen  ? help  q quit"))
	return b.String()
}

func (m appModel) renderRow(it model.Item, selected bool, today model.Date) string {
	marker := " "
	switch it.Status {
	case model.StatusDone:
		marker = "✓"
	case model.StatusInProgress:
		marker = "›"
	}

	line := fmt.Sprintf(" %s %-4d %s", marker, it.ID, it.Title)
	if it.Kind == model.KindMilestone {
		line += " ◆"
	}
	if len(it.Tags) > 0 {
		line += " [" + strings.Join(it.Tags, ",") + "]"
	}
	if !it.Due.IsZero() {
		rel := due.FormatRelative(it.Due, today)
		if it.Due.Before(today) && it.Status != model.StatusDone {
			line += " " + styleOverdue.Render(rel)
		} else {
			line += " " + styleMuted.Render(rel)
		}
	}
	if m.width > 0 {
		line = ansi.Truncate(line, m.width-1, "…")
	}

	switch {
	case selected:
		return styleSelected.Render(line)
	case it.Status == model.StatusDone:
		return styleDone.Render(line)
	}
	return line
}

// breadcrumb shows the titles of the items the current level is nested under.
func (m appModel) breadcrumb() string {
	var parts []string
	for l := levelProduct; l < m.level; l++ {
		if it, ok := m.db.FindItem(m.path[l]); ok {
			parts = append(parts, it.Title)
		}
	}
	return strings.Join(parts, " > ")
}

func (m appModel) levelTabs() string {
	var tabs []string
	for l := levelProduct; l <= levelSubtask; l++ {
		if l == m.level {
			tabs = append(tabs, styleLevelActive.Render(l.label()))
		} else {
			tabs = append(tabs, styleLevel.Render(l.label()))
		}
	}
	return strings.Join(tabs, styleMuted.Render(" · "))
}

func (m appModel) viewForm() string {
	var rows []string
	rows = append(rows, styleHeader.Render(m.form.title()), "")
	for i := 0; i < fieldCount; i++ {
		label := fmt.Sprintf("%-8s", fieldLabels[i])
		if i == m.form.focus {
			label = styleLevelActive.Render(label)
		} else {
			label = styleMuted.Render(label)
		}
		rows = append(rows, label+m.form.inputs[i].View())
	}
	rows = append(rows, "", styleMuted.Render("enter: save   tab: next field   esc: cancel"))
	return m.centered(styleModal.Render(strings.Join(rows, "\n")))
}

func (m appModel) viewConfirm() string {
	cancel := styleButton.Render("Cancel")
	confirm := styleButton.Render("Delete")
	if m.confirm.focus == confirmFocusCancel {
		cancel = styleButtonActive.Render("Cancel")
	} else {
		confirm = styleButtonActive.Render("Delete")
	}
	content := strings.Join([]string{
		styleHeader.Render("Confirm delete"),
		"",
		m.confirm.body(),
		"",
		cancel + " " + confirm,
		"",
		styleMuted.Render("y: delete   n/esc: cancel   tab: focus   enter: select"),
	}, "\n")
	return m.centered(styleModal.Render(content))
}

func (m appModel) viewHelp() string {
	content := strings.Join([]string{
		styleHeader.Render("Keys"),
		"",
		"  ←/→, h/l      move between hierarchy levels",
		"  ↑/↓, k/j      move selection",
		"  enter         drill into the selected item",
		"  shift+←, H    promote (one level up, re-parents to grandparent)",
		"  shift+→, L    demote (nests under the sibling above)",
		"  a             add an item at this level",
		"  e             edit the selected item",
		"  d             delete (confirmation, cascades)",
		"  c             mark done",
		"  r             reopen",
		"  q, ctrl+c     quit",
		"",
		styleMuted.Render("press any key to close"),
	}, "\n")
	return m.centered(styleModal.Render(content))
}

func (m appModel) centered(box string) string {
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
