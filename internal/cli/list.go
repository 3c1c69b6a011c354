package cli

import (
	"pm-cli/internal/format"
	"pm-cli/internal/model"
	"pm-cli/internal/query"
	"pm-cli/internal/store"

	"github.com/spf13/cobra"
)

func newListCmd(app *App) *cobra.Command {
	var (
		all      bool
		status   string
		kind     string
		project  string
		tags     []string
		dueIn    string
		sortKey  string
		limit    int
		tree     bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List items (Done hidden unless --all or --status done)",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			f := query.Filter{All: all, Project: project, Tags: model.SplitTags(tags)}
			if status != "" {
				if f.Status, err = model.ParseStatus(status); err != nil {
					return writeErr(cmd, err)
				}
			}
			if kind != "" {
				if f.Kind, err = model.ParseKind(kind); err != nil {
					return writeErr(cmd, err)
				}
			}
			if dueIn != "" {
				if f.Due, err = query.ParseBucket(dueIn); err != nil {
					return writeErr(cmd, err)
				}
			}
			key, err := query.ParseSortKey(defaultSort(app, sortKey, cmd.Flags().Changed("sort")))
			if err != nil {
				return writeErr(cmd, err)
			}

			today := model.DateOf(app.Now())
			items := query.Items(db, f, key, limit, today)

			nodes := query.Flat(items)
			if tree {
				nodes = query.Tree(items)
			}
			if app.JSON {
				return writeOut(cmd, app, map[string]any{"data": nodes})
			}
			format.Table(cmd.OutOrStdout(), nodes, today)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include Done items")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status")
	cmd.Flags().StringVar(&kind, "kind", "", "Filter by kind")
	cmd.Flags().StringVar(&project, "project", "", "Filter by project")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Filter by tag (repeatable; any match)")
	cmd.Flags().StringVar(&dueIn, "due", "", "Due window (today|this-week|overdue|none)")
	cmd.Flags().StringVar(&sortKey, "sort", "id", "Sort key (id|due|priority)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Stop after N rows (applied after sorting)")
	cmd.Flags().BoolVarP(&tree, "tree", "t", false, "Nest children under parents within the result set")
	return cmd
}

// defaultSort lets ~/.pm/config.toml pick the sort key when the flag was not
// given on the command line.
func defaultSort(app *App, flagValue string, flagSet bool) string {
	if flagSet {
		return flagValue
	}
	if cfg, err := store.LoadConfig(); err == nil && cfg.Sort != "" {
		return cfg.Sort
	}
	return flagValue
}
