package report

import (
	"github.com/xuri/excelize/v2"

	"github.com/rfsc/georef-verifier/internal/extraction"
)

// tableWidth is the fixed column count of an exported table.
const tableWidth = 8

// ReadXLSX loads a workbook written by WriteXLSX back into a table. The
// compare command uses it to reconcile two previously exported tables
// without calling the model again.
func ReadXLSX(path string) (*extraction.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &ImportError{Path: path, Message: "opening workbook", Cause: err}
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, &ImportError{Path: path, Message: "reading worksheet", Cause: err}
	}
	if len(rows) < 2 {
		return nil, &ImportError{Path: path, Message: "workbook has no header rows"}
	}

	// Row 1 holds the two merged group titles, anchored at A1 and E1.
	table := &extraction.Table{
		Header1: []string{cellAt(rows[0], 0), cellAt(rows[0], 4)},
		Header2: padRow(rows[1]),
		Data:    make([][]string, 0, len(rows)-2),
	}
	for _, row := range rows[2:] {
		table.Data = append(table.Data, padRow(row))
	}
	return table, nil
}

// padRow restores the fixed arity the writer guarantees; the reader trims
// trailing empty cells.
func padRow(row []string) []string {
	cells := make([]string, tableWidth)
	copy(cells, row)
	return cells
}

func cellAt(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return row[i]
}
