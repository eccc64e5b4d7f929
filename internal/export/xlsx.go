package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"medclaim/internal/domain"
)

const sheetName = "Claims"

// WriteXLSX writes claims as a single-sheet workbook with a bold, frozen header row.
// Document count and billed total are stored as numbers so they can be summed.
func WriteXLSX(out io.Writer, recs []domain.ClaimRecord) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return fmt.Errorf("creating stream writer: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	if err := sw.SetPanes(&excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return fmt.Errorf("freezing header: %w", err)
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = excelize.Cell{StyleID: bold, Value: c}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i := range recs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, xlsxRow(&recs[i])); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flushing sheet: %w", err)
	}
	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func xlsxRow(rec *domain.ClaimRecord) []interface{} {
	strs := claimToRow(rec)
	row := make([]interface{}, len(strs))
	for i, s := range strs {
		row[i] = s
	}
	row[3] = rec.DocumentCount
	if v, err := strconv.ParseFloat(strs[colTotalBilled], 64); err == nil {
		row[colTotalBilled] = v
	}
	return row
}

// Write encodes recs in the requested format.
func Write(out io.Writer, format domain.ExportFormat, recs []domain.ClaimRecord) error {
	switch format {
	case domain.ExportFormatCSV:
		return WriteCSV(out, recs)
	case domain.ExportFormatXLSX:
		return WriteXLSX(out, recs)
	default:
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedExportFormat, format)
	}
}
