package extraction

import "fmt"

// MalformedResultError indicates a model reply that could not be decoded
// into a table.
type MalformedResultError struct {
	Message string
	// Raw holds (a truncated view of) the offending reply.
	Raw   string
	Cause error
}

func (e *MalformedResultError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed extraction result: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("malformed extraction result: %s", e.Message)
}

func (e *MalformedResultError) Unwrap() error {
	return e.Cause
}

// ExtractionFailedError indicates the model call never produced a usable
// reply, after however many attempts throttling allowed.
type ExtractionFailedError struct {
	Path     string
	Attempts int
	Cause    error
}

func (e *ExtractionFailedError) Error() string {
	return fmt.Sprintf("table extraction failed for %s after %d attempt(s): %v", e.Path, e.Attempts, e.Cause)
}

func (e *ExtractionFailedError) Unwrap() error {
	return e.Cause
}
