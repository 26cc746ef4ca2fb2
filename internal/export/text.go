package export

import (
	"fmt"
	"io"

	"github.com/aimentor/mentor-go/internal/archive"
)

// TextExporter renders a transcript as "role: text" paragraphs with a blank
// line between turns.
type TextExporter struct{}

// Export writes the entry's transcript as plain text.
func (e *TextExporter) Export(entry *archive.Entry, w io.Writer) error {
	for i, m := range entry.Messages {
		if i > 0 {
			if _, err := io.WriteString(w, "\n\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s: %s", m.Role, m.Text); err != nil {
			return err
		}
	}
	return nil
}

// Extension returns the file extension for this format
func (e *TextExporter) Extension() string {
	return "txt"
}
