package cli

import (
	"pm-cli/internal/due"
	"pm-cli/internal/model"
	"pm-cli/internal/mutate"

	"github.com/spf13/cobra"
)

func newUpdateCmd(app *App) *cobra.Command {
	var (
		title        string
		summary      string
		description  string
		userStory    string
		requirements string
		issueLink    string
		prLink       string
		project      string
		dueText      string
		clearDue     bool
		parent       string
		detach       bool
		kind         string
		status       string
		priority     string
		urgency      string
		stage        string
		addTags      []string
		removeTags   []string
	)

	cmd := &cobra.Command{
		Use:   "update <item>",
		Short: "Change fields of an item",
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
			now := app.Now()

			req := mutate.UpdateRequest{
				ClearDue:    clearDue,
				ClearParent: detach,
				AddTags:     addTags,
				RemoveTags:  removeTags,
			}
			flags := cmd.Flags()
			if flags.Changed("title") {
				req.Title = &title
			}
			if flags.Changed("summary") {
				req.Summary = &summary
			}
			if flags.Changed("description") {
				req.Description = &description
			}
			if flags.Changed("user-story") {
				req.UserStory = &userStory
			}
			if flags.Changed("requirements") {
				req.Requirements = &requirements
			}
			if flags.Changed("issue") {
				req.IssueLink = &issueLink
			}
			if flags.Changed("pr") {
				req.PRLink = &prLink
			}
			if flags.Changed("project") {
				req.Project = &project
			}
			if flags.Changed("parent") {
				req.ParentRef = &parent
			}
			if flags.Changed("due") {
				d, err := due.Resolve(dueText, now)
				if err != nil {
					return writeErr(cmd, err)
				}
				req.Due = &d
			}
			if flags.Changed("kind") {
				k, err := model.ParseKind(kind)
				if err != nil {
					return writeErr(cmd, err)
				}
				req.Kind = &k
			}
			if flags.Changed("status") {
				st, err := model.ParseStatus(status)
				if err != nil {
					return writeErr(cmd, err)
				}
				req.Status = &st
			}
			if flags.Changed("priority") {
				p, err := model.ParsePriority(priority)
				if err != nil {
					return writeErr(cmd, err)
				}
				req.Priority = &p
			}
			if flags.Changed("urgency") {
				u, err := model.ParseUrgency(urgency)
				if err != nil {
					return writeErr(cmd, err)
				}
				req.Urgency = &u
			}
			if flags.Changed("stage") {
				ps, err := model.ParseProcessStage(stage)
				if err != nil {
					return writeErr(cmd, err)
				}
				req.ProcessStage = &ps
			}

			if err := mutate.Update(db, id, req, now); err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}

			updated, _ := db.FindItem(id)
			if app.JSON {
				return writeOut(cmd, app, map[string]any{"data": updated})
			}
			cmd.Printf("Updated %s %d: %s\n", updated.Kind.Label(), id, updated.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&summary, "summary", "", "New summary")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringVar(&userStory, "user-story", "", "New user story")
	cmd.Flags().StringVar(&requirements, "requirements", "", "New requirements")
	cmd.Flags().StringVar(&issueLink, "issue", "", "New issue link")
	cmd.Flags().StringVar(&prLink, "pr", "", "New pull request link")
	cmd.Flags().StringVar(&project, "project", "", "New project label")
	cmd.Flags().StringVar(&dueText, "due", "", "New due date (natural language allowed)")
	cmd.Flags().BoolVar(&clearDue, "clear-due", false, "Remove the due date")
	cmd.Flags().StringVar(&parent, "parent", "", "New parent (id or exact title)")
	cmd.Flags().BoolVar(&detach, "detach", false, "Detach from the current parent")
	cmd.Flags().StringVar(&kind, "kind", "", "New kind (children are re-validated)")
	cmd.Flags().StringVar(&status, "status", "", "New status")
	cmd.Flags().StringVar(&priority, "priority", "", "New priority")
	cmd.Flags().StringVar(&urgency, "urgency", "", "New urgency")
	cmd.Flags().StringVar(&stage, "stage", "", "New process stage")
	cmd.Flags().StringSliceVar(&addTags, "add-tag", nil, "Add a tag (repeatable)")
	cmd.Flags().StringSliceVar(&removeTags, "remove-tag", nil, "Remove a tag (repeatable)")
	return cmd
}
