package transport

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes, one per classified failure category. The fixture data source
// produces the same codes so callers behave identically in mock mode.
const (
	CodeBadRequest   = "BAD_REQUEST"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeServerError  = "SERVER_ERROR"
	CodeNetworkError = "NETWORK_ERROR"
	CodeConfigError  = "CONFIG_ERROR"
)

type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s (%d): %s", e.Code, e.Status, e.Message)
}

func Classify(status int) string {
	switch status {
	case http.StatusBadRequest:
		return CodeBadRequest
	case http.StatusUnauthorized:
		return CodeUnauthorized
	case http.StatusForbidden:
		return CodeForbidden
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusConflict:
		return CodeConflict
	default:
		return CodeServerError
	}
}

func NewAPIError(status int, message string) *APIError {
	return &APIError{Status: status, Code: Classify(status), Message: message}
}

func networkError(message string) *APIError {
	return &APIError{Code: CodeNetworkError, Message: message}
}

func configError(message string) *APIError {
	return &APIError{Code: CodeConfigError, Message: message}
}

func hasCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

func IsUnauthorized(err error) bool { return hasCode(err, CodeUnauthorized) }
func IsNotFound(err error) bool     { return hasCode(err, CodeNotFound) }
func IsConflict(err error) bool     { return hasCode(err, CodeConflict) }
