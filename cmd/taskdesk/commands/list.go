package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/benvon/taskdesk/internal/models"
	"github.com/benvon/taskdesk/internal/validation"
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.ValidateTaskFilter(filter); err != nil {
				return err
			}

			app, err := openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			tasks := app.Tasks.ListFiltered(models.TaskFilter(filter))
			if len(tasks) == 0 {
				fmt.Println("No tasks")
				return nil
			}

			for _, t := range tasks {
				printTask(t)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&filter, "filter", string(models.TaskFilterAll), "all, pending or completed")

	return cmd
}
