// Package export renders archive entries to downloadable transcript formats.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/aimentor/mentor-go/internal/archive"
)

// Exporter defines the interface for all transcript formats
type Exporter interface {
	Export(entry *archive.Entry, w io.Writer) error
	Extension() string
}

// New creates a new exporter based on format
func New(format string) (Exporter, error) {
	switch format {
	case "txt", "text":
		return &TextExporter{}, nil
	case "pdf":
		return &PDFExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: txt, pdf)", format)
	}
}

// BackupFilename names a bulk JSON export of the whole archive collection,
// stamped with the moment of export.
func BackupFilename(now time.Time) string {
	return fmt.Sprintf("ai-mentor-backup-%d.json", now.UnixMilli())
}
