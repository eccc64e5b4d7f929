package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"medclaim/internal/domain"
)

// BOM is the UTF-8 byte order mark, written first so Excel on Windows detects the encoding.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// Writer wraps csv.Writer for exporting claims as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteClaims converts a batch of claim records to CSV rows and writes them.
func (w *Writer) WriteClaims(recs []domain.ClaimRecord) error {
	for i := range recs {
		if err := w.csv.Write(claimToRow(&recs[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// WriteCSV writes a complete CSV report, BOM and header included.
func WriteCSV(out io.Writer, recs []domain.ClaimRecord) error {
	if _, err := out.Write(BOM); err != nil {
		return fmt.Errorf("writing BOM: %w", err)
	}
	w := NewWriter(out)
	if err := w.WriteHeader(); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := w.WriteClaims(recs); err != nil {
		return fmt.Errorf("writing rows: %w", err)
	}
	w.Flush()
	return w.Error()
}

// BuildFilename returns the attachment name for a report.
// Format: claims_{YYYY-MM-DD}.{csv|xlsx}
func BuildFilename(format domain.ExportFormat, now time.Time) string {
	return fmt.Sprintf("claims_%s.%s", now.Format("2006-01-02"), format)
}

// ContentType returns the MIME type of a report format.
func ContentType(format domain.ExportFormat) string {
	if format == domain.ExportFormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}
