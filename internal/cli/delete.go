package cli

import (
	"pm-cli/internal/mutate"

	"github.com/spf13/cobra"
)

func newDeleteCmd(app *App) *cobra.Command {
	var (
		cascade bool
		byTag   string
		byProj  string
		byStat  string
	)

	cmd := &cobra.Command{
		Use:     "delete [item]",
		Aliases: []string{"rm"},
		Short:   "Delete items (one item, or a batch via --tag/--project/--status)",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			if len(args) == 1 {
				id, err := mutate.ResolveRef(db, args[0])
				if err != nil {
					return writeErr(cmd, err)
				}
				removed, err := mutate.Delete(db, id, cascade)
				if err != nil {
					return writeErr(cmd, err)
				}
				if err := s.Save(db); err != nil {
					return writeErr(cmd, err)
				}
				if app.JSON {
					return writeOut(cmd, app, map[string]any{"data": removed})
				}
				cmd.Printf("Deleted %d item(s)\n", len(removed))
				return nil
			}

			sel, err := selector(byTag, byProj, byStat)
			if err != nil {
				return writeErr(cmd, err)
			}
			outcomes, err := mutate.BulkDelete(db, sel, cascade)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return reportOutcomes(cmd, app, "Deleted", outcomes)
		},
	}

	cmd.Flags().BoolVar(&cascade, "cascade", false, "Also delete the whole subtree")
	cmd.Flags().StringVar(&byTag, "tag", "", "Batch: delete every item with this tag")
	cmd.Flags().StringVar(&byProj, "project", "", "Batch: delete every item in this project")
	cmd.Flags().StringVar(&byStat, "status", "", "Batch: delete every item with this status")
	return cmd
}
