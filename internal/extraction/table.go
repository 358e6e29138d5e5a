// Package extraction pulls coordinate tables out of survey PDFs through the
// model and validates the untyped payload at the boundary.
package extraction

import "github.com/rfsc/georef-verifier/internal/reconcile"

// Table is the raw tabular payload the model returns: a two-level header and
// rows of eight cells (vertex columns A-D, forward segment columns E-H).
type Table struct {
	Header1 []string   `json:"header_row1"`
	Header2 []string   `json:"header_row2"`
	Data    [][]string `json:"data"`
}

// cell returns column i of row, or "" when the row is too short. Models
// occasionally emit ragged rows; downstream code always sees fixed arity.
func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return row[i]
}

// slice copies columns [from, to) of every data row, padding short rows.
func (t *Table) slice(from, to int) [][]string {
	rows := make([][]string, len(t.Data))
	for r, row := range t.Data {
		cells := make([]string, 0, to-from)
		for i := from; i < to; i++ {
			cells = append(cells, cell(row, i))
		}
		rows[r] = cells
	}
	return rows
}

// VertexRows returns the vertex columns (code, longitude, latitude,
// altitude) of every data row.
func (t *Table) VertexRows() [][]string {
	return t.slice(0, 4)
}

// SegmentRows returns the forward segment columns (code, azimuth, distance)
// of every data row. The trailing confrontations column is presentation
// data and stays out of reconciliation.
func (t *Table) SegmentRows() [][]string {
	return t.slice(4, 7)
}

// VertexHeader returns the vertex slice of the second header row.
func (t *Table) VertexHeader() []string {
	return headSlice(t.Header2, 0, 4)
}

// SegmentHeader returns the segment slice of the second header row, without
// the confrontations column.
func (t *Table) SegmentHeader() []string {
	return headSlice(t.Header2, 4, 7)
}

func headSlice(header []string, from, to int) []string {
	out := make([]string, 0, to-from)
	for i := from; i < to; i++ {
		out = append(out, cell(header, i))
	}
	return out
}

// VertexDataset packages the vertex columns as a reconciliation input
// labeled with the document it came from.
func (t *Table) VertexDataset(label string) *reconcile.Dataset {
	return reconcile.NewDataset(label, t.VertexHeader(), t.VertexRows())
}

// SegmentDataset packages the forward segment columns as a reconciliation
// input labeled with the document it came from.
func (t *Table) SegmentDataset(label string) *reconcile.Dataset {
	return reconcile.NewDataset(label, t.SegmentHeader(), t.SegmentRows())
}
