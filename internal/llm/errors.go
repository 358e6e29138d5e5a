package llm

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
)

// ErrRateLimited marks provider throttling. Callers test for it with
// errors.Is and decide whether to back off and retry.
var ErrRateLimited = errors.New("rate limited by model provider")

// APIError wraps a provider call failure with the HTTP status it carried,
// when one could be recovered.
type APIError struct {
	Operation  string
	StatusCode int
	Cause      error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s failed with status %d: %v", e.Operation, e.StatusCode, e.Cause)
	}
	return fmt.Sprintf("%s failed: %v", e.Operation, e.Cause)
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

// Is reports ErrRateLimited for throttling responses so callers can use
// errors.Is without inspecting status codes.
func (e *APIError) Is(target error) bool {
	return target == ErrRateLimited && e.StatusCode == http.StatusTooManyRequests
}

// rateLimitMarkers are message fragments that providers emit for throttling
// when no structured status survives the transport.
var rateLimitMarkers = []string{
	"429",
	"quota",
	"rate limit",
	"resource exhausted",
	"resource has been exhausted",
}

// wrapAPIError converts a provider error into an APIError, recovering the
// HTTP status from structured errors first and falling back to message
// markers for transports that stringify them.
func wrapAPIError(operation string, err error) error {
	status := 0

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		status = apiErr.Code
	}
	if status == 0 && hasRateLimitMarker(err) {
		status = http.StatusTooManyRequests
	}

	return &APIError{Operation: operation, StatusCode: status, Cause: err}
}

func hasRateLimitMarker(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, marker := range rateLimitMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// IsRateLimited reports whether err represents provider throttling, checking
// structured status codes before message markers.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrRateLimited) {
		return true
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests
	}
	return hasRateLimitMarker(err)
}
