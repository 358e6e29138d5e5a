package reconcile

// Dataset is one side of a reconciliation: a labelled block of records
// already narrowed to the columns of a single record family.
type Dataset struct {
	// Label names the document the records came from.
	Label string
	// Header carries the column captions that arrived with the table.
	Header []string
	// Records are the data rows, header excluded.
	Records [][]string
}

// NewDataset builds a Dataset over rows.
func NewDataset(label string, header []string, records [][]string) *Dataset {
	return &Dataset{Label: label, Header: header, Records: records}
}

// Len returns the record count.
func (d *Dataset) Len() int {
	return len(d.Records)
}

// cellAt returns record r column c, or "" beyond either bound, so datasets
// of different lengths and ragged rows compare cleanly.
func (d *Dataset) cellAt(r, c int) string {
	if r >= len(d.Records) {
		return ""
	}
	row := d.Records[r]
	if c >= len(row) {
		return ""
	}
	return row[c]
}
