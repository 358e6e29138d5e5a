package reconcile

import "fmt"

// MissingDatasetError indicates a reconciliation attempted without one of
// its two datasets.
type MissingDatasetError struct {
	Kind string
	Side string
}

func (e *MissingDatasetError) Error() string {
	return fmt.Sprintf("missing %s dataset for %s reconciliation", e.Side, e.Kind)
}
