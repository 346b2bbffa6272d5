package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/benvon/taskdesk/internal/calendar"
)

// NewCalendarCmd creates the calendar command and its add subcommand
func NewCalendarCmd() *cobra.Command {
	var days int
	var filter []string

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show upcoming calendar entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			svc := calendar.NewService(app.Config.Calendar.ICSPath, app.Config.Calendar.Enabled, app.Logger)
			if !svc.RequestAccess() {
				return calendar.ErrAccessDenied
			}

			if days <= 0 {
				days = app.Config.Calendar.DefaultDays
			}

			from := time.Now()
			to := from.AddDate(0, 0, days)

			entries, err := svc.Entries(from, to, filter)
			if err != nil {
				return fmt.Errorf("failed to list calendar entries: %w", err)
			}

			if len(entries) == 0 {
				fmt.Printf("No entries in the next %d day(s)\n", days)
				return nil
			}

			for _, e := range entries {
				when := e.Start.Local().Format("Mon 2006-01-02 15:04")
				if e.AllDay {
					when = e.Start.Local().Format("Mon 2006-01-02") + " (all day)"
				}
				fmt.Printf("%s  %s\n", when, e.Title)
				if e.Location != "" {
					fmt.Printf("    at: %s\n", e.Location)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "how many days ahead to show")
	cmd.Flags().StringSliceVar(&filter, "calendar", nil, "only show these calendar names")

	cmd.AddCommand(newCalendarAddCmd())

	return cmd
}

func newCalendarAddCmd() *cobra.Command {
	var start, end, notes string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a calendar entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			startAt, err := parseWhen(start)
			if err != nil {
				return err
			}
			endAt, err := parseWhen(end)
			if err != nil {
				return err
			}

			svc := calendar.NewService(app.Config.Calendar.ICSPath, app.Config.Calendar.Enabled, app.Logger)
			entry, err := svc.CreateEntry(args[0], startAt, endAt, notes)
			if err != nil {
				return fmt.Errorf("failed to create calendar entry: %w", err)
			}

			fmt.Printf("Created %q (%s)\n", entry.Title, entry.Start.Local().Format("2006-01-02 15:04"))
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "entry start")
	cmd.Flags().StringVar(&end, "end", "", "entry end")
	cmd.Flags().StringVar(&notes, "notes", "", "entry notes")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}
