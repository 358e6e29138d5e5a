package report

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/rfsc/georef-verifier/internal/extraction"
)

func sampleTable() *extraction.Table {
	return &extraction.Table{
		Header1: []string{"VÉRTICE", "", "", "", "SEGMENTO VANTE", "", "", ""},
		Header2: []string{"CÓDIGO", "LONGITUDE", "LATITUDE", "ALTITUDE", "CÓDIGO", "AZIMUTE", "DISTÂNCIA", "CONFRONTAÇÕES"},
		Data: [][]string{
			{"FHV-M-0001", `-47°52'05,70"`, `-15°47'31,84"`, "1.095,81", "FHV-M-0001", "141°59'", "102,51", "TERRAS DE JOSÉ DA SILVA"},
			{"FHV-M-0002", `-47°52'08,11"`, `-15°47'29,02"`, "1.094,20", "FHV-M-0002", "215°07'", "98,77", "ESTRADA MUNICIPAL"},
		},
	}
}

func TestWriteXLSXLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exports", "memorial_extraido.xlsx")
	require.NoError(t, WriteXLSX(sampleTable(), path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, sheetName, f.GetSheetName(0))

	a1, err := f.GetCellValue(sheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "VÉRTICE", a1)
	e1, err := f.GetCellValue(sheetName, "E1")
	require.NoError(t, err)
	assert.Equal(t, "SEGMENTO VANTE", e1)

	merged, err := f.GetMergeCells(sheetName)
	require.NoError(t, err)
	ranges := make([]string, 0, len(merged))
	for _, m := range merged {
		ranges = append(ranges, m.GetStartAxis()+":"+m.GetEndAxis())
	}
	assert.ElementsMatch(t, []string{"A1:D1", "E1:H1"}, ranges)
}

func TestWriteXLSXHeadersAndData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memorial_extraido.xlsx")
	require.NoError(t, WriteXLSX(sampleTable(), path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	headerChecks := map[string]string{
		"A2": "CÓDIGO",
		"B2": "LONGITUDE",
		"G2": "DISTÂNCIA",
		"H2": "CONFRONTAÇÕES",
	}
	for cell, want := range headerChecks {
		got, err := f.GetCellValue(sheetName, cell)
		require.NoError(t, err)
		assert.Equal(t, want, got, "cell %s", cell)
	}

	dataChecks := map[string]string{
		"A3": "FHV-M-0001",
		"B3": `-47°52'05,70"`,
		"H3": "TERRAS DE JOSÉ DA SILVA",
		"A4": "FHV-M-0002",
		"F4": "215°07'",
		"H4": "ESTRADA MUNICIPAL",
	}
	for cell, want := range dataChecks {
		got, err := f.GetCellValue(sheetName, cell)
		require.NoError(t, err)
		assert.Equal(t, want, got, "cell %s", cell)
	}
}

func TestWriteXLSXColumnWidths(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memorial_extraido.xlsx")
	require.NoError(t, WriteXLSX(sampleTable(), path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	for col, want := range xlsxColumnWidths {
		got, err := f.GetColWidth(sheetName, col)
		require.NoError(t, err)
		assert.InDelta(t, want, got, 0.01, "column %s", col)
	}
}

func TestWriteXLSXNilTable(t *testing.T) {
	err := WriteXLSX(nil, filepath.Join(t.TempDir(), "missing.xlsx"))

	var exportErr *ExportError
	require.ErrorAs(t, err, &exportErr)
	assert.Contains(t, err.Error(), "no table to export")
}

func TestReadXLSXRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memorial_extraido.xlsx")
	table := sampleTable()
	require.NoError(t, WriteXLSX(table, path))

	got, err := ReadXLSX(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"VÉRTICE", "SEGMENTO VANTE"}, got.Header1)
	assert.Equal(t, table.Header2, got.Header2)
	assert.Equal(t, table.Data, got.Data)
}

func TestReadXLSXPadsShortRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memorial_extraido.xlsx")
	table := sampleTable()
	// Blank out the trailing cells of the last row; the reader must restore
	// the fixed arity.
	table.Data[1][6] = ""
	table.Data[1][7] = ""
	require.NoError(t, WriteXLSX(table, path))

	got, err := ReadXLSX(path)
	require.NoError(t, err)
	require.Len(t, got.Data, 2)
	assert.Len(t, got.Data[1], 8)
	assert.Equal(t, "", got.Data[1][7])
}

func TestReadXLSXMissingFile(t *testing.T) {
	_, err := ReadXLSX(filepath.Join(t.TempDir(), "nope.xlsx"))

	var importErr *ImportError
	require.ErrorAs(t, err, &importErr)
}

func TestXLSXFileName(t *testing.T) {
	tests := []struct {
		name string
		pdf  string
		want string
	}{
		{name: "plain", pdf: "/tmp/run/INCRA_3456.pdf", want: "INCRA_3456_extraido.xlsx"},
		{name: "no extension", pdf: "/tmp/run/planta", want: "planta_extraido.xlsx"},
		{name: "relative", pdf: "projeto.pdf", want: "projeto_extraido.xlsx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, XLSXFileName(tt.pdf))
		})
	}
}
