package reconcile

// FieldComparison is the verdict for one column of one record pair. Left and
// Right hold the cells as extracted; NormalizedLeft and NormalizedRight hold
// them after cleanup (and coordinate normalization where the column calls for
// it), which is what the equality verdict is based on.
type FieldComparison struct {
	Column          Column
	Left            string
	Right           string
	NormalizedLeft  string
	NormalizedRight string
	Identical       bool
}

// RecordComparison is the verdict for one record pair.
type RecordComparison struct {
	// Number is the 1-based record position.
	Number int
	Fields []FieldComparison
	// Different reports whether any field of the record diverged.
	Different bool
}

// Summary counts field verdicts across a record family.
type Summary struct {
	Identical int
	Different int
	// RecordsWithDiffs lists the 1-based numbers of records with at least
	// one diverging field, in order.
	RecordsWithDiffs []int
}

// KindComparison is the full reconciliation of one record family.
type KindComparison struct {
	Kind       Kind
	LeftLabel  string
	RightLabel string
	Records    []RecordComparison
	Summary    Summary
}

// Compare reconciles two datasets of the same kind field by field. Both
// sides are walked to the length of the longer one; rows missing on either
// side compare as empty cells. Values are cleaned, coordinate columns are
// additionally normalized, and what remains must match exactly.
func Compare(kind Kind, left, right *Dataset) (*KindComparison, error) {
	if left == nil {
		return nil, &MissingDatasetError{Kind: kind.Name, Side: "left"}
	}
	if right == nil {
		return nil, &MissingDatasetError{Kind: kind.Name, Side: "right"}
	}

	cmp := &KindComparison{
		Kind:       kind,
		LeftLabel:  left.Label,
		RightLabel: right.Label,
	}

	rows := left.Len()
	if right.Len() > rows {
		rows = right.Len()
	}

	for i := 0; i < rows; i++ {
		record := RecordComparison{Number: i + 1}

		for c, col := range kind.Columns {
			raw := left.cellAt(i, c)
			rawRight := right.cellAt(i, c)

			lv := CleanValue(raw)
			rv := CleanValue(rawRight)
			if col.Coordinate {
				lv = NormalizeCoordinate(lv)
				rv = NormalizeCoordinate(rv)
			}

			field := FieldComparison{
				Column:          col,
				Left:            raw,
				Right:           rawRight,
				NormalizedLeft:  lv,
				NormalizedRight: rv,
				Identical:       lv == rv,
			}
			record.Fields = append(record.Fields, field)

			if field.Identical {
				cmp.Summary.Identical++
			} else {
				cmp.Summary.Different++
				record.Different = true
			}
		}

		if record.Different {
			cmp.Summary.RecordsWithDiffs = append(cmp.Summary.RecordsWithDiffs, record.Number)
		}
		cmp.Records = append(cmp.Records, record)
	}

	return cmp, nil
}
