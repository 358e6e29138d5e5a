package selection

import "fmt"

// InvalidPageListError indicates a page list that could not be parsed.
type InvalidPageListError struct {
	Input   string
	Message string
	Cause   error
}

func (e *InvalidPageListError) Error() string {
	return fmt.Sprintf("invalid page list %q: %s", e.Input, e.Message)
}

func (e *InvalidPageListError) Unwrap() error {
	return e.Cause
}
