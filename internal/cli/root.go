// Package cli is the scriptable command surface. Every command loads the
// whole store, runs a pure mutation or query, and saves the snapshot back.
package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"pm-cli/internal/format"
	"pm-cli/internal/store"
	"pm-cli/internal/tui"
)

type App struct {
	DBPath  string
	JSON    bool
	Pretty  bool
	Verbose bool

	// Now is swappable so tests can pin the clock.
	Now func() time.Time

	log *log.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{Now: func() time.Time { return time.Now().UTC() }}

	cmd := &cobra.Command{
		Use:          "pm",
		Short:        "Personal work-item tracker (CLI + TUI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive navigator
  pm

  # Scriptable commands
  pm add "Ship the onboarding flow" --kind epic --parent 1
  pm list --due this-week --sort due
  pm complete 12 --recurse
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		opts := log.Options{ReportTimestamp: false}
		app.log = log.NewWithOptions(cmd.ErrOrStderr(), opts)
		if app.Verbose {
			app.log.SetLevel(log.DebugLevel)
		} else {
			app.log.SetLevel(log.WarnLevel)
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.DBPath, "db", envOr("PM_DB", ""), "Path to the database file (default: config db or ~/.pm/tasks.json)")
	cmd.PersistentFlags().BoolVar(&app.JSON, "json", false, "JSON output instead of tables")
	cmd.PersistentFlags().BoolVar(&app.Pretty, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().BoolVarP(&app.Verbose, "verbose", "v", false, "Debug logging")

	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newViewCmd(app))
	cmd.AddCommand(newUpdateCmd(app))
	cmd.AddCommand(newCompleteCmd(app))
	cmd.AddCommand(newReopenCmd(app))
	cmd.AddCommand(newDeleteCmd(app))
	cmd.AddCommand(newPromoteCmd(app))
	cmd.AddCommand(newDemoteCmd(app))
	cmd.AddCommand(newMoveCmd(app))
	cmd.AddCommand(newProjectsCmd(app))
	cmd.AddCommand(newTagsCmd(app))
	cmd.AddCommand(newTemplateCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newBackupCmd(app))

	return cmd
}

func runTUI(app *App) error {
	db, s, err := loadDB(app)
	if err != nil {
		return err
	}
	return tui.Run(s, db)
}

func loadDB(app *App) (*store.DB, store.Store, error) {
	path := app.DBPath
	if path == "" {
		p, err := store.DefaultPath()
		if err != nil {
			return nil, store.Store{}, err
		}
		path = p
		app.DBPath = path
	}

	s := store.Store{Path: path}
	db, err := s.Load()
	if err != nil {
		return nil, s, err
	}
	app.log.Debug("loaded store", "path", path, "items", len(db.Items))
	return db, s, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.WriteJSON(cmd.OutOrStdout(), v, app.Pretty)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
