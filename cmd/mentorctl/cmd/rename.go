package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// renameCmd represents the rename command
var renameCmd = &cobra.Command{
	Use:   "rename <entry-id> <new-name>",
	Short: "Rename a saved chat",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := openStore()
		defer store.Close()

		if err := store.Rename(args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("Renamed %s to %q\n", args[0], args[1])
		return nil
	},
}

// clearCmd represents the clear command
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all saved chats",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := openStore()
		defer store.Close()

		store.ClearAll()
		fmt.Println("Cleared all saved chats.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(clearCmd)
}
