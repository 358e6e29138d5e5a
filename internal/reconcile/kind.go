// Package reconcile compares the coordinate tables of two georeferencing
// documents field by field and reports every divergence.
package reconcile

// Column describes one reconciled field of a record.
type Column struct {
	// Label is the display name of the field.
	Label string
	// Ref names the spreadsheet column the field comes from.
	Ref string
	// Coordinate marks fields that get coordinate normalization on top of
	// the basic cleanup.
	Coordinate bool
}

// Kind describes a record family: its name and the columns reconciled for it.
type Kind struct {
	Name    string
	Columns []Column
}

// KindVertex is the vertex family: station code plus its geodetic position.
func KindVertex() Kind {
	return Kind{
		Name: "vertex",
		Columns: []Column{
			{Label: "CÓDIGO", Ref: "Col A"},
			{Label: "LONGITUDE", Ref: "Col B", Coordinate: true},
			{Label: "LATITUDE", Ref: "Col C", Coordinate: true},
			{Label: "ALTITUDE", Ref: "Col D"},
		},
	}
}

// KindSegment is the forward segment family: the bearing and length that
// carry the traverse to the next vertex. Confrontation text is presentation
// data and is not reconciled.
func KindSegment() Kind {
	return Kind{
		Name: "segment",
		Columns: []Column{
			{Label: "CÓDIGO", Ref: "Col E"},
			{Label: "AZIMUTE", Ref: "Col F"},
			{Label: "DISTÂNCIA", Ref: "Col G"},
		},
	}
}
