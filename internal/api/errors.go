package api

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is the decoded error body of a failed todod request. ErrorCode is the
// server's numeric code (1xxx validation, 2xxx missing or conflicting lists and
// items, 3xxx limits, 4xxx internal).
type APIError struct {
	Status    int
	Code      string
	ErrorCode int
	Message   string
}

func (e *APIError) Error() string {
	switch {
	case e == nil:
		return ""
	case e.Message != "" && e.Code != "":
		return e.Code + ": " + e.Message
	case e.Message != "":
		return e.Message
	case e.Status > 0:
		return fmt.Sprintf("todod api: %d %s", e.Status, http.StatusText(e.Status))
	default:
		return "todod api error"
	}
}

// IsNotFound reports whether err is an API 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// ErrorCodeOf returns the numeric error code carried by err, or 0.
func ErrorCodeOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode
	}
	return 0
}
