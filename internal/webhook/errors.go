package webhook

import (
	"fmt"
	"time"
)

// StatusError indicates the endpoint answered with a non-200 status.
type StatusError struct {
	Code       int
	Body       string
	RetryAfter time.Duration
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("webhook status %d", e.Code)
	}
	return fmt.Sprintf("webhook status %d: %s", e.Code, e.Body)
}

// Temporary reports whether the status is worth retrying.
func (e *StatusError) Temporary() bool {
	return e.Code == 429 || e.Code >= 500
}

// UnavailableError indicates the endpoint could not be reached.
type UnavailableError struct {
	Err error
}

func (e *UnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("webhook unavailable: %v", e.Err)
	}
	return "webhook unavailable"
}

func (e *UnavailableError) Unwrap() error { return e.Err }
