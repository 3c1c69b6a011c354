package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"pm-cli/internal/due"
	"pm-cli/internal/model"
	"pm-cli/internal/query"
)

// Table prints the standard item listing. Tree nodes indent by depth; flat
// nodes all carry depth 0, so both views share this renderer.
func Table(w io.Writer, nodes []query.Node, today model.Date) {
	fmt.Fprintf(w, "%-5s %-10s %-11s %-12s %-14s %s\n",
		"ID", "Kind", "Status", "Due", "Project", "Title [tags]")
	for _, n := range nodes {
		it := n.Item
		title := strings.Repeat("  ", n.Depth) + it.Title
		if len(it.Tags) > 0 {
			title += " [" + strings.Join(it.Tags, ",") + "]"
		}
		project := it.Project
		if project == "" {
			project = "-"
		}
		fmt.Fprintf(w, "%-5d %-10s %-11s %-12s %-14s %s\n",
			it.ID,
			it.Kind.Label(),
			it.Status.Label(),
			due.FormatRelative(it.Due, today),
			Truncate(project, 14),
			title,
		)
	}
}

// Truncate shortens s to width display cells, ellipsis included. ANSI escape
// sequences do not count toward the width.
func Truncate(s string, width int) string {
	return ansi.Truncate(s, width, "…")
}
