package pocketbuddy

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestParseError_FastAPIDetail(t *testing.T) {
	err := parseError(http.StatusNotFound, []byte(`{"detail": "Chat nebol nájdený"}`))

	if err.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", err.StatusCode)
	}
	if err.Code != codeNotFound {
		t.Errorf("expected code %q, got %q", codeNotFound, err.Code)
	}
	if err.Message != "Chat nebol nájdený" {
		t.Errorf("expected backend message verbatim, got %q", err.Message)
	}
	if !err.IsNotFound() {
		t.Error("expected IsNotFound")
	}
}

func TestParseError_ValidationDetailList(t *testing.T) {
	body := []byte(`{"detail": [{"loc": ["body", "email"], "msg": "value is not a valid email address", "type": "value_error"}]}`)
	err := parseError(http.StatusUnprocessableEntity, body)

	if err.Code != codeValidation {
		t.Errorf("expected code %q, got %q", codeValidation, err.Code)
	}
	if !err.IsValidationError() {
		t.Error("expected IsValidationError")
	}
	if err.Details == nil {
		t.Fatal("expected field details to be preserved")
	}
	if _, ok := err.Details["fields"]; !ok {
		t.Error("expected fields key in details")
	}
}

func TestParseError_CodeMessageShape(t *testing.T) {
	err := parseError(http.StatusConflict, []byte(`{"code": "duplicate_email", "message": "Email už existuje"}`))

	if err.Code != "duplicate_email" {
		t.Errorf("expected custom code to win, got %q", err.Code)
	}
	if err.Message != "Email už existuje" {
		t.Errorf("unexpected message %q", err.Message)
	}
	if !err.IsConflict() {
		t.Error("expected IsConflict")
	}
}

func TestParseError_GarbageBody(t *testing.T) {
	err := parseError(http.StatusInternalServerError, []byte(`<html>gateway exploded</html>`))

	if err.Code != codeTransient {
		t.Errorf("expected code %q, got %q", codeTransient, err.Code)
	}
	if err.Message != http.StatusText(http.StatusInternalServerError) {
		t.Errorf("expected generic message, got %q", err.Message)
	}
	if !err.IsTransient() {
		t.Error("expected 5xx to be transient")
	}
}

func TestTransportError(t *testing.T) {
	cause := fmt.Errorf("dial tcp: connection refused")
	err := transportError(cause)

	if err.StatusCode != 0 {
		t.Errorf("expected status 0 for transport failures, got %d", err.StatusCode)
	}
	if !err.IsTransient() {
		t.Error("expected transport failure to be transient")
	}
	if !errors.Is(err, cause) {
		t.Error("expected cause to be unwrappable")
	}
}

func TestError_Predicates(t *testing.T) {
	tests := []struct {
		status      int
		check       func(*Error) bool
		name        string
		wantOnOther bool
	}{
		{http.StatusUnauthorized, (*Error).IsUnauthorized, "IsUnauthorized", false},
		{http.StatusForbidden, (*Error).IsForbidden, "IsForbidden", false},
		{http.StatusNotFound, (*Error).IsNotFound, "IsNotFound", false},
		{http.StatusConflict, (*Error).IsConflict, "IsConflict", false},
		{http.StatusBadRequest, (*Error).IsValidationError, "IsValidationError", false},
		{http.StatusBadGateway, (*Error).IsTransient, "IsTransient", false},
	}

	for _, tt := range tests {
		err := &Error{StatusCode: tt.status}
		if !tt.check(err) {
			t.Errorf("%s: expected true for status %d", tt.name, tt.status)
		}
		other := &Error{StatusCode: http.StatusTeapot}
		if tt.check(other) != tt.wantOnOther {
			t.Errorf("%s: expected false for status 418", tt.name)
		}
	}
}

func TestIsAPIError(t *testing.T) {
	apiErr := &Error{StatusCode: 404, Code: codeNotFound, Message: "missing"}
	wrapped := fmt.Errorf("loading page: %w", apiErr)

	got, ok := IsAPIError(wrapped)
	if !ok {
		t.Fatal("expected IsAPIError to find the wrapped error")
	}
	if got != apiErr {
		t.Error("expected the original *Error")
	}

	if _, ok := IsAPIError(errors.New("plain")); ok {
		t.Error("expected false for non-API errors")
	}
}
