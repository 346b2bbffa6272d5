package commands

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// NewRemoveCmd creates the rm command
func NewRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <id>...",
		Short: "Delete one or more tasks",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			ids := make([]uuid.UUID, 0, len(args))
			for _, arg := range args {
				task, ferr := findTask(app, arg)
				if ferr != nil {
					return ferr
				}
				ids = append(ids, task.ID)
			}

			app.Tasks.DeleteMany(ids)
			fmt.Printf("Deleted %d task(s)\n", len(ids))
			return nil
		},
	}

	return cmd
}
