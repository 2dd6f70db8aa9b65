package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/patroldesk/core/cmd/api/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "patroldesk",
		Short: "PatrolDesk API Server",
		Long:  `PatrolDesk is the administrative record-keeping service for a ward police unit: accident cases, vehicle registration revenue, campaign targets, verification requests, work results, the document archive and periodic report generation.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewSeedCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
