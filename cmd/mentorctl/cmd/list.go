package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved chats",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := openStore()
		defer store.Close()

		entries := store.Entries()
		if len(entries) == 0 {
			fmt.Println("No saved chats yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tMESSAGES")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%d\n", e.ID, e.Name, len(e.Messages))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
