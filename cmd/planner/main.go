package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/studentplanner/core/cmd/planner/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "planner",
		Short: "Student Planner core",
		Long:  `Student Planner bundles expense tracking, notes with image attachments and task planning over a single local data directory.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewExpenseCommand())
	rootCmd.AddCommand(commands.NewNoteCommand())
	rootCmd.AddCommand(commands.NewTaskCommand())
	rootCmd.AddCommand(commands.NewAnalyticsCommand())
	rootCmd.AddCommand(commands.NewReconcileCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
