package pocketbuddy

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error represents a classified API failure.
//
// Every call on the client resolves to either a success value or an *Error;
// transport failures (timeout, unreachable host) are wrapped into a transient
// *Error so callers always deal with one taxonomy.
type Error struct {
	// StatusCode is the HTTP status code, or 0 for transport failures.
	StatusCode int `json:"-"`
	// Code is a short machine-readable class (e.g. "unauthorized", "transient").
	Code string `json:"code"`
	// Message is a human-readable error message. The backend speaks Slovak;
	// the message is surfaced verbatim.
	Message string `json:"message"`
	// Details contains additional error details, e.g. field validation info.
	Details map[string]interface{} `json:"details,omitempty"`

	// cause holds the wrapped transport error, if any.
	cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap exposes the underlying transport error, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// IsUnauthorized reports an authentication failure (invalid or expired
// credential). These always route through session invalidation.
func (e *Error) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// IsForbidden reports an authorization failure: the credential is valid but
// the role may not perform the operation. The session is untouched.
func (e *Error) IsForbidden() bool {
	return e.StatusCode == http.StatusForbidden
}

// IsNotFound reports that the target entity no longer exists.
func (e *Error) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsConflict reports a conflicting state, e.g. registering an email that
// already exists.
func (e *Error) IsConflict() bool {
	return e.StatusCode == http.StatusConflict
}

// IsValidationError reports a request the backend rejected as malformed.
func (e *Error) IsValidationError() bool {
	return e.StatusCode == http.StatusBadRequest || e.StatusCode == http.StatusUnprocessableEntity
}

// IsTransient reports a retryable failure: transport errors and 5xx responses.
func (e *Error) IsTransient() bool {
	return e.StatusCode == 0 || e.StatusCode >= 500
}

const (
	codeUnauthorized = "unauthorized"
	codeForbidden    = "forbidden"
	codeNotFound     = "not_found"
	codeConflict     = "conflict"
	codeValidation   = "validation_error"
	codeTransient    = "transient"
)

// transportError wraps a network-level failure into a transient *Error.
func transportError(err error) *Error {
	return &Error{
		Code:    codeTransient,
		Message: err.Error(),
		cause:   err,
	}
}

// parseError parses an error response from the API.
func parseError(statusCode int, body []byte) *Error {
	code := codeFor(statusCode)

	// FastAPI-style {"detail": "..."} body
	var detail struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &detail); err == nil && len(detail.Detail) > 0 {
		var msg string
		if err := json.Unmarshal(detail.Detail, &msg); err == nil {
			return &Error{StatusCode: statusCode, Code: code, Message: msg}
		}
		// Structured validation detail (list of field errors)
		var fields []map[string]interface{}
		if err := json.Unmarshal(detail.Detail, &fields); err == nil {
			return &Error{
				StatusCode: statusCode,
				Code:       codeValidation,
				Message:    http.StatusText(statusCode),
				Details:    map[string]interface{}{"fields": fields},
			}
		}
	}

	// Alternative {"code": ..., "message": ...} shape
	var simple struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Details map[string]interface{} `json:"details,omitempty"`
	}
	if err := json.Unmarshal(body, &simple); err == nil && simple.Message != "" {
		if simple.Code == "" {
			simple.Code = code
		}
		return &Error{
			StatusCode: statusCode,
			Code:       simple.Code,
			Message:    simple.Message,
			Details:    simple.Details,
		}
	}

	// Fallback to generic error
	return &Error{
		StatusCode: statusCode,
		Code:       code,
		Message:    http.StatusText(statusCode),
	}
}

func codeFor(statusCode int) string {
	switch {
	case statusCode == http.StatusUnauthorized:
		return codeUnauthorized
	case statusCode == http.StatusForbidden:
		return codeForbidden
	case statusCode == http.StatusNotFound:
		return codeNotFound
	case statusCode == http.StatusConflict:
		return codeConflict
	case statusCode == http.StatusBadRequest || statusCode == http.StatusUnprocessableEntity:
		return codeValidation
	case statusCode >= 500:
		return codeTransient
	default:
		return http.StatusText(statusCode)
	}
}

// IsAPIError checks if an error is a classified API error and returns it.
func IsAPIError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
