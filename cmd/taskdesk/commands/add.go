package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/benvon/taskdesk/internal/session"
	"github.com/benvon/taskdesk/internal/validation"
)

// NewAddCmd creates the add command
func NewAddCmd() *cobra.Command {
	var notes string
	var due string
	var locationText string
	var lat, lon float64

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a new task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			sess := session.New(nil)
			sess.Title = validation.SanitizeText(args[0])
			sess.Notes = validation.SanitizeText(notes)
			sess.Location = locationText

			if due != "" {
				when, perr := parseWhen(due)
				if perr != nil {
					return perr
				}
				sess.DueDate = &when
				sess.IncludeDueDate = true
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

			task, err := sess.Commit(app.Tasks)
			if err != nil {
				return fmt.Errorf("failed to create task: %w", err)
			}

			fmt.Printf("Created %s\n", task.ID.String()[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "additional notes")
	cmd.Flags().StringVar(&due, "due", "", "due date")
	cmd.Flags().StringVar(&locationText, "location", "", "location text")
	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude to resolve into a location")
	cmd.Flags().Float64Var(&lon, "lon", 0, "longitude to resolve into a location")

	return cmd
}
