package cli

import (
	"errors"

	"pm-cli/internal/model"
	"pm-cli/internal/mutate"

	"github.com/spf13/cobra"
)

func newCompleteCmd(app *App) *cobra.Command {
	var (
		recurse bool
		byTag   string
		byProj  string
		byStat  string
	)

	cmd := &cobra.Command{
		Use:     "complete [item]",
		Aliases: []string{"done"},
		Short:   "Mark items Done (one item, or a batch via --tag/--project/--status)",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			now := app.Now()

			if len(args) == 1 {
				id, err := mutate.ResolveRef(db, args[0])
				if err != nil {
					return writeErr(cmd, err)
				}
				done, err := mutate.Complete(db, id, recurse, now)
				if err != nil {
					return writeErr(cmd, err)
				}
				if err := s.Save(db); err != nil {
					return writeErr(cmd, err)
				}
				if app.JSON {
					return writeOut(cmd, app, map[string]any{"data": done})
				}
				cmd.Printf("Completed %d item(s)\n", len(done))
				return nil
			}

			sel, err := selector(byTag, byProj, byStat)
			if err != nil {
				return writeErr(cmd, err)
			}
			outcomes, err := mutate.BulkComplete(db, sel, now)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return reportOutcomes(cmd, app, "Completed", outcomes)
		},
	}

	cmd.Flags().BoolVarP(&recurse, "recurse", "r", false, "Complete the whole subtree")
	cmd.Flags().StringVar(&byTag, "tag", "", "Batch: complete every item with this tag")
	cmd.Flags().StringVar(&byProj, "project", "", "Batch: complete every item in this project")
	cmd.Flags().StringVar(&byStat, "status", "", "Batch: complete every item with this status")
	return cmd
}

func newReopenCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reopen <item>",
		Short: "Set an item back to Open",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id, err := mutate.ResolveRef(db, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := mutate.Reopen(db, id, app.Now()); err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			it, _ := db.FindItem(id)
			if app.JSON {
				return writeOut(cmd, app, map[string]any{"data": it})
			}
			cmd.Printf("Reopened %d: %s\n", id, it.Title)
			return nil
		},
	}
	return cmd
}

func selector(tag, project, status string) (mutate.Selector, error) {
	sel := mutate.Selector{Tag: model.NormalizeTag(tag), Project: project}
	if status != "" {
		st, err := model.ParseStatus(status)
		if err != nil {
			return mutate.Selector{}, err
		}
		sel.Status = st
	}
	if sel.Tag == "" && sel.Project == "" && sel.Status == "" {
		return mutate.Selector{}, errors.New("give an item, or one of --tag/--project/--status for a batch")
	}
	return sel, nil
}

func reportOutcomes(cmd *cobra.Command, app *App, verb string, outcomes []mutate.Outcome) error {
	if app.JSON {
		type row struct {
			mutate.Outcome
			Error string `json:"error,omitempty"`
		}
		rows := make([]row, len(outcomes))
		for i, o := range outcomes {
			rows[i] = row{Outcome: o}
			if o.Err != nil {
				rows[i].Error = o.Err.Error()
			}
		}
		return writeOut(cmd, app, map[string]any{"data": rows})
	}
	for _, o := range outcomes {
		switch {
		case o.Err != nil:
			cmd.Printf("  %d %s: FAILED: %v\n", o.ID, o.Title, o.Err)
		case o.Note != "":
			cmd.Printf("  %d %s: skipped (%s)\n", o.ID, o.Title, o.Note)
		default:
			cmd.Printf("  %d %s\n", o.ID, o.Title)
		}
	}
	cmd.Printf("%s %d item(s)\n", verb, len(outcomes))
	return nil
}
