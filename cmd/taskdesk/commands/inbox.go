package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/benvon/taskdesk/internal/models"
)

// NewInboxCmd creates the inbox command
func NewInboxCmd() *cobra.Command {
	var markRead string
	var remove string

	cmd := &cobra.Command{
		Use:   "inbox",
		Short: "Show inbox messages",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			if markRead != "" {
				msg, ferr := findMessage(app, markRead)
				if ferr != nil {
					return ferr
				}
				return app.Inbox.MarkRead(msg.ID)
			}

			if remove != "" {
				msg, ferr := findMessage(app, remove)
				if ferr != nil {
					return ferr
				}
				return app.Inbox.Delete(msg.ID)
			}

			messages := app.Inbox.List()
			if len(messages) == 0 {
				fmt.Println("Your inbox is empty.")
				return nil
			}

			for _, m := range messages {
				marker := "*"
				if m.Read {
					marker = " "
				}
				fmt.Printf("%s %s  %s\n", marker, m.ID.String()[:8], m.Title)
				fmt.Printf("         %s\n", m.Snippet)
			}
			fmt.Printf("\n%d unread\n", app.Inbox.Unread())
			return nil
		},
	}

	cmd.Flags().StringVar(&markRead, "read", "", "mark the message with this id as read")
	cmd.Flags().StringVar(&remove, "rm", "", "delete the message with this id")

	return cmd
}

func findMessage(app *App, arg string) (models.InboxMessage, error) {
	var matches []models.InboxMessage
	for _, m := range app.Inbox.List() {
		if strings.HasPrefix(m.ID.String(), strings.ToLower(arg)) {
			matches = append(matches, m)
		}
	}
	switch len(matches) {
	case 0:
		return models.InboxMessage{}, fmt.Errorf("no inbox message matches %q", arg)
	case 1:
		return matches[0], nil
	default:
		return models.InboxMessage{}, fmt.Errorf("%q matches %d messages, use a longer prefix", arg, len(matches))
	}
}
