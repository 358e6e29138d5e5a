package reconcile

import (
	"time"

	"github.com/google/uuid"
)

// Report is the complete reconciliation of a filing: both record families
// plus run metadata.
type Report struct {
	// RunID uniquely identifies this verification run.
	RunID string
	// Registration is the canonical registration identifier checked.
	Registration string
	GeneratedAt  time.Time
	Vertices     *KindComparison
	Segments     *KindComparison
}

// NewReport assembles a Report for a registration.
func NewReport(registration string, vertices, segments *KindComparison) *Report {
	return &Report{
		RunID:        uuid.New().String(),
		Registration: registration,
		GeneratedAt:  time.Now(),
		Vertices:     vertices,
		Segments:     segments,
	}
}

// TotalIdentical sums identical field counts across both families.
func (r *Report) TotalIdentical() int {
	return r.Vertices.Summary.Identical + r.Segments.Summary.Identical
}

// TotalDifferent sums diverging field counts across both families.
func (r *Report) TotalDifferent() int {
	return r.Vertices.Summary.Different + r.Segments.Summary.Different
}

// Clean reports whether the filing reconciled without a single divergence.
func (r *Report) Clean() bool {
	return r.TotalDifferent() == 0
}
