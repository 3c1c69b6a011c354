package cli

import (
	"pm-cli/internal/model"
	"pm-cli/internal/mutate"

	"github.com/spf13/cobra"
)

func newTemplateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "template",
		Aliases: []string{"tpl"},
		Short:   "Manage item templates",
	}
	cmd.AddCommand(newTemplateCreateCmd(app))
	cmd.AddCommand(newTemplateSaveCmd(app))
	cmd.AddCommand(newTemplateListCmd(app))
	cmd.AddCommand(newTemplateDeleteCmd(app))
	return cmd
}

func newTemplateCreateCmd(app *App) *cobra.Command {
	var (
		title       string
		description string
		project     string
		tags        []string
		kind        string
		status      string
		priority    string
		urgency     string
		stage       string
	)

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a template from flags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			t := model.Template{
				Name:                args[0],
				TitleTemplate:       title,
				DescriptionTemplate: description,
				Project:             project,
				Tags:                tags,
			}
			if kind != "" {
				if t.Kind, err = model.ParseKind(kind); err != nil {
					return writeErr(cmd, err)
				}
			}
			if status != "" {
				if t.Status, err = model.ParseStatus(status); err != nil {
					return writeErr(cmd, err)
				}
			}
			if priority != "" {
				if t.Priority, err = model.ParsePriority(priority); err != nil {
					return writeErr(cmd, err)
				}
			}
			if urgency != "" {
				if t.Urgency, err = model.ParseUrgency(urgency); err != nil {
					return writeErr(cmd, err)
				}
			}
			if stage != "" {
				if t.ProcessStage, err = model.ParseProcessStage(stage); err != nil {
					return writeErr(cmd, err)
				}
			}

			if err := mutate.CreateTemplate(db, t); err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			if app.JSON {
				return writeOut(cmd, app, map[string]any{"data": t})
			}
			cmd.Printf("Created template %q\n", t.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Title template")
	cmd.Flags().StringVar(&description, "description", "", "Description template")
	cmd.Flags().StringVar(&project, "project", "", "Default project")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Default tag (repeatable)")
	cmd.Flags().StringVar(&kind, "kind", "", "Default kind")
	cmd.Flags().StringVar(&status, "status", "", "Default status")
	cmd.Flags().StringVar(&priority, "priority", "", "Default priority")
	cmd.Flags().StringVar(&urgency, "urgency", "", "Default urgency")
	cmd.Flags().StringVar(&stage, "stage", "", "Default process stage")
	return cmd
}

func newTemplateSaveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save <item> <name>",
		Short: "Snapshot an existing item as a template",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := mutate.SaveTemplate(db, args[0], args[1]); err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			t, _ := db.FindTemplate(args[1])
			if app.JSON {
				return writeOut(cmd, app, map[string]any{"data": t})
			}
			cmd.Printf("Saved template %q\n", args[1])
			return nil
		},
	}
	return cmd
}

func newTemplateListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if app.JSON {
				return writeOut(cmd, app, map[string]any{"data": db.Templates})
			}
			for _, t := range db.Templates {
				line := t.Name
				if t.Kind != "" {
					line += "  kind=" + string(t.Kind)
				}
				if t.Project != "" {
					line += "  project=" + t.Project
				}
				cmd.Println(line)
			}
			return nil
		},
	}
	return cmd
}

func newTemplateDeleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := mutate.DeleteTemplate(db, args[0]); err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			if app.JSON {
				return writeOut(cmd, app, map[string]any{"data": args[0]})
			}
			cmd.Printf("Deleted template %q\n", args[0])
			return nil
		},
	}
	return cmd
}
