package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/aimentor/mentor-go/internal/export"
)

// backupCmd represents the backup command
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export the whole archive as a JSON backup",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := openStore()
		defer store.Close()

		data, err := store.ExportAll()
		if err != nil {
			return err
		}

		filename := export.BackupFilename(time.Now())
		if err := os.WriteFile(filename, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", filename, err)
		}
		fmt.Printf("Wrote %d saved chats to %s\n", len(store.Entries()), filename)
		return nil
	},
}

// restoreCmd represents the restore command
var restoreCmd = &cobra.Command{
	Use:   "restore <backup.json>",
	Short: "Replace the archive with a JSON backup",
	Long: `Replace the entire saved-chat archive with the contents of a backup file.

This is destructive: existing saved chats are discarded, not merged.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		store := openStore()
		defer store.Close()

		if err := store.ImportAll(data); err != nil {
			return err
		}
		fmt.Printf("Imported %d saved chats from %s\n", len(store.Entries()), args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
}
