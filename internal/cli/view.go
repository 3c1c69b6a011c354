package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"pm-cli/internal/due"
	"pm-cli/internal/model"
	"pm-cli/internal/mutate"
)

func newViewCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "view <item>",
		Aliases: []string{"show"},
		Short:   "Show one item in full",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id, err := mutate.ResolveRef(db, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			it, _ := db.FindItem(id)

			if app.JSON {
				children := db.ChildrenMap()[id]
				return writeOut(cmd, app, map[string]any{"data": it, "children": children})
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s %d: %s\n", it.Kind.Label(), it.ID, it.Title)
			fmt.Fprintf(w, "  Status:   %s\n", it.Status.Label())
			if it.Parent != nil {
				if p, ok := db.FindItem(*it.Parent); ok {
					fmt.Fprintf(w, "  Parent:   %s %d: %s\n", p.Kind.Label(), p.ID, p.Title)
				}
			}
			if it.Project != "" {
				fmt.Fprintf(w, "  Project:  %s\n", it.Project)
			}
			if len(it.Tags) > 0 {
				fmt.Fprintf(w, "  Tags:     %s\n", strings.Join(it.Tags, ", "))
			}
			if !it.Due.IsZero() {
				today := model.DateOf(app.Now())
				fmt.Fprintf(w, "  Due:      %s (%s)\n", it.Due, due.FormatRelative(it.Due, today))
			}
			if it.Priority != "" {
				fmt.Fprintf(w, "  Priority: %s\n", it.Priority.Label())
			}
			if it.Urgency != "" {
				fmt.Fprintf(w, "  Urgency:  %s\n", it.Urgency.Label())
			}
			if it.ProcessStage != "" {
				fmt.Fprintf(w, "  Stage:    %s\n", it.ProcessStage.Label())
			}
			if it.Summary != "" {
				fmt.Fprintf(w, "  Summary:  %s\n", it.Summary)
			}
			if it.UserStory != "" {
				fmt.Fprintf(w, "  Story:    %s\n", it.UserStory)
			}
			if it.Requirements != "" {
				fmt.Fprintf(w, "  Requires: %s\n", it.Requirements)
			}
			if it.IssueLink != "" {
				fmt.Fprintf(w, "  Issue:    %s\n", it.IssueLink)
			}
			if it.PRLink != "" {
				fmt.Fprintf(w, "  PR:       %s\n", it.PRLink)
			}
			for _, a := range it.Artifacts {
				fmt.Fprintf(w, "  Artifact: %s\n", a)
			}
			if it.Description != "" {
				fmt.Fprintln(w)
				fmt.Fprint(w, renderDescription(it.Description))
			}

			if children := db.ChildrenMap()[id]; len(children) > 0 {
				fmt.Fprintln(w)
				fmt.Fprintln(w, "Children:")
				for _, cid := range children {
					if c, ok := db.FindItem(cid); ok {
						fmt.Fprintf(w, "  %d %s [%s] %s\n", c.ID, c.Kind.Label(), c.Status.Label(), c.Title)
					}
				}
			}
			return nil
		},
	}
	return cmd
}

// renderDescription renders markdown for the terminal, falling back to the
// raw text when the renderer cannot be built.
func renderDescription(md string) string {
	r, err := glamour.NewTermRenderer(
		// Avoid WithAutoStyle() here: it can block waiting on terminal queries in some setups.
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return md + "\n"
	}
	out, err := r.Render(md)
	if err != nil {
		return md + "\n"
	}
	return out
}
