package dealfile

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// loadBatchXLSX reads a batch from the first sheet of an XLSX workbook. The
// first row is the header and follows the same contract as CSV batches.
func loadBatchXLSX(path string) ([]NamedDeal, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "dealfile: open %s", path)
	}
	if len(f.Sheets) == 0 {
		return nil, eris.Errorf("dealfile: %s has no sheets", path)
	}
	sheet := f.Sheets[0]

	if len(sheet.Rows) == 0 {
		return nil, eris.Errorf("dealfile: %s is empty", path)
	}

	idx, err := headerIndex(rowToStrings(sheet.Rows[0]))
	if err != nil {
		return nil, err
	}

	deals := make([]NamedDeal, 0, len(sheet.Rows)-1)
	for i, row := range sheet.Rows[1:] {
		cells := rowToStrings(row)
		if blankRow(cells) {
			continue
		}
		deal, err := decodeRow(idx, cells, i+2)
		if err != nil {
			return nil, err
		}
		deals = append(deals, deal)
	}
	return deals, nil
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cell.String()
	}
	return cells
}

func blankRow(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}
