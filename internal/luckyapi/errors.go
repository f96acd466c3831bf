package luckyapi

import (
	"errors"
	"fmt"
)

// ErrStream marks a failure while reading a streamed response body.
var ErrStream = errors.New("luckyapi: stream read failed")

// APIError is returned for non-2xx responses. Message holds the server's
// "error" field when the body carried one.
type APIError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("luckyapi: %s: status %d: %s", e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("luckyapi: %s: status %d", e.Op, e.StatusCode)
}

// ValidationError is a client-side input rejection. No request was sent.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ServerMessage returns the server-supplied error text carried by err, if any.
func ServerMessage(err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message, true
	}
	return "", false
}

// IsValidation reports whether err is a client-side validation failure.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
