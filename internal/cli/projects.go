package cli

import (
	"github.com/spf13/cobra"
)

func newProjectsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List distinct project labels",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			projects := db.Projects()
			if app.JSON {
				return writeOut(cmd, app, map[string]any{"data": projects})
			}
			for _, p := range projects {
				cmd.Println(p)
			}
			return nil
		},
	}
	return cmd
}

func newTagsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List distinct tags with usage counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			tags := db.TagCounts()
			if app.JSON {
				return writeOut(cmd, app, map[string]any{"data": tags})
			}
			for _, t := range tags {
				cmd.Printf("%-20s %d\n", t.Tag, t.Count)
			}
			return nil
		},
	}
	return cmd
}
