package cli

import (
	"pm-cli/internal/due"
	"pm-cli/internal/model"
	"pm-cli/internal/mutate"

	"github.com/spf13/cobra"
)

func newAddCmd(app *App) *cobra.Command {
	var (
		kind         string
		status       string
		parent       string
		project      string
		summary      string
		description  string
		userStory    string
		requirements string
		issueLink    string
		prLink       string
		dueText      string
		priority     string
		urgency      string
		stage        string
		tags         []string
		template     string
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			now := app.Now()

			it := model.Item{
				Title:        args[0],
				Kind:         model.KindTask,
				Status:       model.StatusOpen,
				Project:      project,
				Summary:      summary,
				Description:  description,
				UserStory:    userStory,
				Requirements: requirements,
				IssueLink:    issueLink,
				PRLink:       prLink,
				Tags:         tags,
			}
			if kind != "" {
				if it.Kind, err = model.ParseKind(kind); err != nil {
					return writeErr(cmd, err)
				}
			}
			if status != "" {
				if it.Status, err = model.ParseStatus(status); err != nil {
					return writeErr(cmd, err)
				}
			}
			if priority != "" {
				if it.Priority, err = model.ParsePriority(priority); err != nil {
					return writeErr(cmd, err)
				}
			}
			if urgency != "" {
				if it.Urgency, err = model.ParseUrgency(urgency); err != nil {
					return writeErr(cmd, err)
				}
			}
			if stage != "" {
				if it.ProcessStage, err = model.ParseProcessStage(stage); err != nil {
					return writeErr(cmd, err)
				}
			}
			if dueText != "" {
				if it.Due, err = due.Resolve(dueText, now); err != nil {
					return writeErr(cmd, err)
				}
			}
			if template != "" {
				err := mutate.ApplyTemplate(db, template, &it,
					cmd.Flags().Changed("kind"), cmd.Flags().Changed("status"))
				if err != nil {
					return writeErr(cmd, err)
				}
			}

			id, err := mutate.Attach(db, it, parent, now)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}

			created, _ := db.FindItem(id)
			if app.JSON {
				return writeOut(cmd, app, map[string]any{"data": created})
			}
			cmd.Printf("Created %s %d: %s\n", created.Kind.Label(), id, created.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Item kind (product|epic|task|subtask|milestone, default task)")
	cmd.Flags().StringVar(&status, "status", "", "Initial status (open|in-progress|done, default open)")
	cmd.Flags().StringVar(&parent, "parent", "", "Parent item (id or exact title)")
	cmd.Flags().StringVar(&project, "project", "", "Project label")
	cmd.Flags().StringVar(&summary, "summary", "", "One-line summary")
	cmd.Flags().StringVar(&description, "description", "", "Long-form description (markdown)")
	cmd.Flags().StringVar(&userStory, "user-story", "", "User story")
	cmd.Flags().StringVar(&requirements, "requirements", "", "Requirements / acceptance criteria")
	cmd.Flags().StringVar(&issueLink, "issue", "", "Issue link")
	cmd.Flags().StringVar(&prLink, "pr", "", "Pull request link")
	cmd.Flags().StringVar(&dueText, "due", "", `Due date ("2026-12-31", "tomorrow", "next friday", "in 2w")`)
	cmd.Flags().StringVar(&priority, "priority", "", "Priority (must-have|nice-to-have|cut-first)")
	cmd.Flags().StringVar(&urgency, "urgency", "", "Urgency quadrant")
	cmd.Flags().StringVar(&stage, "stage", "", "Process stage (ideation..release)")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Tag (repeatable, comma lists allowed)")
	cmd.Flags().StringVar(&template, "template", "", "Template to apply for unset fields")
	return cmd
}
