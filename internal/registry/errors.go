package registry

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// FailureReason classifies why the share could not produce a document.
// Callers branch on it because remediation differs: a wrong number, missing
// credentials, and a VPN that is down all need different operator action.
type FailureReason string

const (
	// ReasonNotFound means the bucket or file does not exist on the share.
	ReasonNotFound FailureReason = "not-found"
	// ReasonAccessDenied means the share refused access to the path.
	ReasonAccessDenied FailureReason = "access-denied"
	// ReasonUnreachable means the share did not answer (timeout, no route).
	ReasonUnreachable FailureReason = "unreachable"
)

// InvalidIdentifierError reports a raw identifier that cannot be parsed.
type InvalidIdentifierError struct {
	Input   string
	Message string
	Cause   error
}

func (e *InvalidIdentifierError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid registration identifier %q: %s: %v", e.Input, e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid registration identifier %q: %s", e.Input, e.Message)
}

func (e *InvalidIdentifierError) Unwrap() error {
	return e.Cause
}

// NetworkError reports a share access failure together with its classified
// reason.
type NetworkError struct {
	Path    string
	Reason  FailureReason
	Message string
	Cause   error
}

func (e *NetworkError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("share access failed (%s) at %s: %s: %v", e.Reason, e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("share access failed (%s) at %s: %s", e.Reason, e.Path, e.Message)
}

func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// classifyFSError maps a filesystem error onto the share failure taxonomy.
// Anything that is neither a missing path nor a permission refusal reads as
// the share being unreachable.
func classifyFSError(path string, err error) *NetworkError {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &NetworkError{Path: path, Reason: ReasonNotFound, Message: "path not found", Cause: err}
	case errors.Is(err, fs.ErrPermission):
		return &NetworkError{Path: path, Reason: ReasonAccessDenied, Message: "access denied", Cause: err}
	case os.IsTimeout(err):
		return &NetworkError{Path: path, Reason: ReasonUnreachable, Message: "share timed out", Cause: err}
	default:
		return &NetworkError{Path: path, Reason: ReasonUnreachable, Message: "share unreachable", Cause: err}
	}
}
