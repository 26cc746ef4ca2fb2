package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aimentor/mentor-go/internal/archive"
	"github.com/aimentor/mentor-go/internal/logger"
)

var storagePath string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mentorctl",
	Short: "Inspect and export saved AI Mentor chats",
	Long: `mentorctl works directly against the saved-chat archive database.

It lists saved chats, renames them, exports single transcripts as text or
PDF, and moves whole archives between machines as JSON backups.

Quick Start:
  mentorctl list                      # List saved chats
  mentorctl export <id> --format pdf  # Export one chat as PDF
  mentorctl backup                    # Export the whole archive as JSON`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetLevel("warn")
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storagePath, "storage", "mentor.db", "Path to the archive database")
}

func openStore() *archive.Store {
	return archive.Open(storagePath)
}
