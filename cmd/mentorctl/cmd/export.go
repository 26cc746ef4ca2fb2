package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aimentor/mentor-go/internal/archive"
	"github.com/aimentor/mentor-go/internal/export"
)

var exportFormat string

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <entry-id>",
	Short: "Export one saved chat as a transcript file",
	Long: `Export a saved chat's transcript in the given format (txt, pdf).
The file is written to the current directory as <name>.<ext>.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := openStore()
		defer store.Close()

		name, msgs, err := store.Load(args[0])
		if err != nil {
			return err
		}
		entry := &archive.Entry{ID: args[0], Name: name, Messages: msgs}

		exporter, err := export.New(exportFormat)
		if err != nil {
			return err
		}

		filename := fmt.Sprintf("%s.%s", safeFilename(name), exporter.Extension())
		f, err := os.Create(filename)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", filename, err)
		}
		defer f.Close()

		if err := exporter.Export(entry, f); err != nil {
			return fmt.Errorf("failed to export: %w", err)
		}
		fmt.Printf("Exported %q to %s\n", name, filename)
		return nil
	},
}

// safeFilename turns a chat name into a filename confined to the current
// directory: path separators become dashes and an empty result falls back
// to "chat".
func safeFilename(name string) string {
	name = strings.ReplaceAll(name, "/", "-")
	name = strings.ReplaceAll(name, `\`, "-")
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." {
		return "chat"
	}
	return name
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "txt", "Export format (txt, pdf)")
	rootCmd.AddCommand(exportCmd)
}
