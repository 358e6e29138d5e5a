package classify

import "fmt"

// NoMatchingPagesError indicates that classification finished without
// finding a single page for the wanted role.
type NoMatchingPagesError struct {
	Role Role
}

func (e *NoMatchingPagesError) Error() string {
	return fmt.Sprintf("no pages matched document role %q", e.Role)
}

// ClassifyError carries the page context of a classification failure that
// was not throttling: a page that could not be rendered or a model call the
// API rejected outright.
type ClassifyError struct {
	Page    int // 1-based, as shown to operators
	Message string
	Cause   error
}

func (e *ClassifyError) Error() string {
	return fmt.Sprintf("classification error on page %d: %s: %v", e.Page, e.Message, e.Cause)
}

func (e *ClassifyError) Unwrap() error {
	return e.Cause
}
