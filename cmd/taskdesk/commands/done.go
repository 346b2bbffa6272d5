package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewDoneCmd creates the done command
func NewDoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a task's completion",
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

			updated, err := app.Tasks.Toggle(task.ID)
			if err != nil {
				return err
			}

			if updated.Completed {
				fmt.Printf("Completed %q\n", updated.Title)
			} else {
				fmt.Printf("Reopened %q\n", updated.Title)
			}
			return nil
		},
	}

	return cmd
}
