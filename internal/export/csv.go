package export

import (
	"encoding/csv"
	"io"

	"github.com/rotisserie/eris"
)

// BatchCSV writes the batch roll-up in the same column order as BatchXLSX.
func BatchCSV(rows []SummaryRow, w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(summaryColumns); err != nil {
		return eris.Wrap(err, "export: write header")
	}
	for _, r := range rows {
		if err := cw.Write(r.strings()); err != nil {
			return eris.Wrap(err, "export: write row")
		}
	}

	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flush")
}
