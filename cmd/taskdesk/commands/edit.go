package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/benvon/taskdesk/internal/session"
	"github.com/benvon/taskdesk/internal/validation"
)

// NewEditCmd creates the edit command. Each flag overrides one staged
// field; unset flags leave the existing value alone.
func NewEditCmd() *cobra.Command {
	var title, notes, due, locationText string
	var noDue bool
	var lat, lon float64

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an existing task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			task, err := findTask(app, args[0])
			if err != nil {
				return err
			}

			sess := session.New(&task)

			if cmd.Flags().Changed("title") {
				sess.Title = validation.SanitizeText(title)
			}
			if cmd.Flags().Changed("notes") {
				sess.Notes = validation.SanitizeText(notes)
			}
			if cmd.Flags().Changed("location") {
				sess.Location = locationText
			}
			if cmd.Flags().Changed("due") {
				when, perr := parseWhen(due)
				if perr != nil {
					return perr
				}
				sess.DueDate = &when
				sess.IncludeDueDate = true
			}
			if noDue {
				// The staged date survives; only the flag is cleared.
				sess.IncludeDueDate = false
			}
			if cmd.Flags().Changed("lat") || cmd.Flags().Changed("lon") {
				fillLocationFromCoordinates(cmd.Context(), app, sess, lat, lon)
			}

			if err := validation.ValidateTaskInput(validation.TaskInput{
				Title:    sess.Title,
				Notes:    sess.Notes,
				Location: sess.Location,
			}); err != nil {
				return err
			}

			updated, err := sess.Commit(app.Tasks)
			if err != nil {
				return fmt.Errorf("failed to update task: %w", err)
			}

			printTask(updated)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&notes, "notes", "", "new notes (empty clears)")
	cmd.Flags().StringVar(&due, "due", "", "new due date")
	cmd.Flags().BoolVar(&noDue, "no-due", false, "remove the due date")
	cmd.Flags().StringVar(&locationText, "location", "", "new location text (empty clears)")
	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude to resolve into a location")
	cmd.Flags().Float64Var(&lon, "lon", 0, "longitude to resolve into a location")

	return cmd
}
