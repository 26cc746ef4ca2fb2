package export

import (
	"io"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/aimentor/mentor-go/internal/archive"
)

// Page metrics, in millimeters on A4.
const (
	pdfMarginLeft = 15.0
	pdfStartY     = 20.0
	pdfWrapWidth  = 180.0
	pdfLineHeight = 7.0
	pdfParaGap    = 4.0
	pdfBreakY     = 270.0
)

// PDFExporter renders a transcript as a paginated PDF document. Messages are
// word-wrapped to the page width and continue onto new pages line by line, so
// no line is ever split across a page boundary.
type PDFExporter struct{}

// Export writes the entry's transcript as a PDF.
func (e *PDFExporter) Export(entry *archive.Entry, w io.Writer) error {
	return e.render(entry).Output(w)
}

func (e *PDFExporter) render(entry *archive.Entry) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 12)

	y := pdfStartY
	pdf.Text(pdfMarginLeft, y, entry.Name)
	y += 10

	for _, m := range entry.Messages {
		text := strings.ToUpper(string(m.Role)) + ": " + m.Text
		for _, line := range pdf.SplitText(text, pdfWrapWidth) {
			if y > pdfBreakY {
				pdf.AddPage()
				y = pdfStartY
			}
			pdf.Text(pdfMarginLeft, y, line)
			y += pdfLineHeight
		}
		y += pdfParaGap
	}
	return pdf
}

// Extension returns the file extension for this format
func (e *PDFExporter) Extension() string {
	return "pdf"
}
