package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/benvon/taskdesk/cmd/taskdesk/commands"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "taskdesk",
		Short: "Local task and event organizer",
		Long:  "CLI for managing tasks, inbox messages and calendar entries stored on this machine",
	}

	rootCmd.PersistentFlags().StringVar(&commands.ConfigPath, "config", "", "path to config file")

	rootCmd.AddCommand(commands.NewAddCmd())
	rootCmd.AddCommand(commands.NewListCmd())
	rootCmd.AddCommand(commands.NewDoneCmd())
	rootCmd.AddCommand(commands.NewEditCmd())
	rootCmd.AddCommand(commands.NewRemoveCmd())
	rootCmd.AddCommand(commands.NewInboxCmd())
	rootCmd.AddCommand(commands.NewCalendarCmd())
	rootCmd.AddCommand(commands.NewLocateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
