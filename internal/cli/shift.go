package cli

import (
	"pm-cli/internal/mutate"

	"github.com/spf13/cobra"
)

func newPromoteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "promote <item>",
		Short: "Shift an item one level up the ladder (re-parents to its grandparent)",
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
			if err := mutate.Promote(db, id, app.Now()); err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			it, _ := db.FindItem(id)
			if app.JSON {
				return writeOut(cmd, app, map[string]any{"data": it})
			}
			cmd.Printf("Promoted %d to %s\n", id, it.Kind.Label())
			return nil
		},
	}
	return cmd
}

func newDemoteCmd(app *App) *cobra.Command {
	var under string

	cmd := &cobra.Command{
		Use:   "demote <item>",
		Short: "Shift an item one level down, under an explicitly chosen parent",
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
			if err := mutate.Demote(db, id, under, app.Now()); err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			it, _ := db.FindItem(id)
			if app.JSON {
				return writeOut(cmd, app, map[string]any{"data": it})
			}
			cmd.Printf("Demoted %d to %s\n", id, it.Kind.Label())
			return nil
		},
	}

	cmd.Flags().StringVar(&under, "under", "", "New parent (id or exact title)")
	_ = cmd.MarkFlagRequired("under")
	return cmd
}

func newMoveCmd(app *App) *cobra.Command {
	var (
		under  string
		detach bool
	)

	cmd := &cobra.Command{
		Use:   "move <item>",
		Short: "Re-parent an item without changing its kind",
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
			if err := mutate.Reparent(db, id, under, detach, app.Now()); err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			it, _ := db.FindItem(id)
			if app.JSON {
				return writeOut(cmd, app, map[string]any{"data": it})
			}
			if detach {
				cmd.Printf("Detached %d: %s\n", id, it.Title)
			} else {
				cmd.Printf("Moved %d under %s\n", id, under)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&under, "under", "", "New parent (id or exact title)")
	cmd.Flags().BoolVar(&detach, "detach", false, "Move to the root instead")
	return cmd
}
