package api

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse is returned when a response decodes but is missing
// fields the dashboard depends on.
var ErrMalformedResponse = errors.New("malformed response")

// StatusError is returned for any non-200 response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("API returned status %d", e.Code)
	}
	return fmt.Sprintf("API returned status %d: %s", e.Code, e.Body)
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedResponse, fmt.Sprintf(format, args...))
}
