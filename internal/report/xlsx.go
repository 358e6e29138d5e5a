package report

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/rfsc/georef-verifier/internal/extraction"
)

const sheetName = "Memorial Descritivo"

// xlsxColumnWidths matches the layout surveyors expect when they open the
// export next to the scanned table: narrow code columns, wide confrontations.
var xlsxColumnWidths = map[string]float64{
	"A": 15, "B": 18, "C": 18, "D": 15,
	"E": 15, "F": 15, "G": 12, "H": 30,
}

// WriteXLSX exports one extracted table as a workbook: merged group headers
// on row 1, the column headers on row 2, data from row 3 on.
func WriteXLSX(table *extraction.Table, path string) error {
	if table == nil {
		return &ExportError{Path: path, Message: "no table to export"}
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return &ExportError{Path: path, Message: "naming worksheet", Cause: err}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder(),
	})
	if err != nil {
		return &ExportError{Path: path, Message: "creating header style", Cause: err}
	}
	cellStyle, err := f.NewStyle(&excelize.Style{Border: thinBorder()})
	if err != nil {
		return &ExportError{Path: path, Message: "creating cell style", Cause: err}
	}
	centerStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder(),
	})
	if err != nil {
		return &ExportError{Path: path, Message: "creating centered style", Cause: err}
	}

	// Row 1: the two merged group headers.
	if err := f.MergeCell(sheetName, "A1", "D1"); err != nil {
		return &ExportError{Path: path, Message: "merging vertex header", Cause: err}
	}
	if err := f.MergeCell(sheetName, "E1", "H1"); err != nil {
		return &ExportError{Path: path, Message: "merging segment header", Cause: err}
	}
	_ = f.SetCellValue(sheetName, "A1", "VÉRTICE")
	_ = f.SetCellValue(sheetName, "E1", "SEGMENTO VANTE")
	_ = f.SetCellStyle(sheetName, "A1", "H1", headerStyle)

	// Row 2: per-column headers as extracted.
	for i, header := range table.Header2 {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		_ = f.SetCellValue(sheetName, cell, header)
		_ = f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	// Rows 3+: data, with the two code columns centered.
	for r, row := range table.Data {
		for c, value := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+3)
			_ = f.SetCellValue(sheetName, cell, value)
			style := cellStyle
			if c == 0 || c == 4 {
				style = centerStyle
			}
			_ = f.SetCellStyle(sheetName, cell, cell, style)
		}
	}

	for col, width := range xlsxColumnWidths {
		_ = f.SetColWidth(sheetName, col, col, width)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &ExportError{Path: path, Message: "creating export directory", Cause: err}
		}
	}
	if err := f.SaveAs(path); err != nil {
		return &ExportError{Path: path, Message: "saving workbook", Cause: err}
	}
	return nil
}

func thinBorder() []excelize.Border {
	sides := []string{"left", "right", "top", "bottom"}
	borders := make([]excelize.Border, 0, len(sides))
	for _, side := range sides {
		borders = append(borders, excelize.Border{Type: side, Style: 1, Color: "000000"})
	}
	return borders
}

// XLSXFileName derives the export name from the source document, so each
// workbook sits next to the PDF it was read from.
func XLSXFileName(pdfPath string) string {
	base := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	return base + "_extraido.xlsx"
}
