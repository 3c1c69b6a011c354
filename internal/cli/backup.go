package cli

import (
	"pm-cli/internal/store"

	"github.com/spf13/cobra"
)

func newBackupCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Copy the database into a timestamped backup file",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load first so a missing path resolves the same way every
			// other command resolves it.
			if _, _, err := loadDB(app); err != nil {
				return writeErr(cmd, err)
			}
			dst, err := store.CreateBackup(app.DBPath, app.Now())
			if err != nil {
				return writeErr(cmd, err)
			}
			if app.JSON {
				return writeOut(cmd, app, map[string]any{"data": dst})
			}
			cmd.Printf("Backed up to %s\n", dst)
			return nil
		},
	}
	return cmd
}
