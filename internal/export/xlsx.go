package export

import (
	"io"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// BatchXLSX writes the batch roll-up as a single-sheet workbook.
func BatchXLSX(rows []SummaryRow, w io.Writer) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Batch Summary")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	header := sheet.AddRow()
	for _, col := range summaryColumns {
		header.AddCell().SetString(col)
	}

	for _, r := range rows {
		row := sheet.AddRow()
		for i, cell := range r.strings() {
			c := row.AddCell()
			// Step count stays numeric for sorting in the sheet.
			if summaryColumns[i] == "Next Steps" {
				c.SetInt(r.StepCount)
				continue
			}
			c.SetString(cell)
		}
	}

	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "export: write workbook")
	}
	return nil
}
