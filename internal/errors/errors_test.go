package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	err := NewValidationError("invalid frame", nil)
	if err.Error() != "validation: invalid frame" {
		t.Errorf("Unexpected error string: %s", err.Error())
	}

	cause := errors.New("boom")
	err = NewInternalError("analysis failed", cause)
	if !errors.Is(err, cause) {
		t.Error("Expected AppError to unwrap to its cause")
	}
}

func TestIsType_Wrapped(t *testing.T) {
	err := fmt.Errorf("handler: %w", NewNotFoundError("session not found", nil))

	if !IsType(err, ErrorTypeNotFound) {
		t.Error("Expected wrapped not found error to be detected")
	}
	if IsType(err, ErrorTypeValidation) {
		t.Error("Expected type mismatch to be false")
	}
	if IsType(errors.New("plain"), ErrorTypeInternal) {
		t.Error("Expected plain error not to match")
	}
}

func TestGetStatusCode(t *testing.T) {
	tests := []struct {
		err      error
		expected int
	}{
		{NewValidationError("x", nil), http.StatusBadRequest},
		{NewNotFoundError("x", nil), http.StatusNotFound},
		{NewConflictError("x", nil), http.StatusConflict},
		{NewRateLimitedError("x", nil), http.StatusTooManyRequests},
		{NewTimeoutError("x", nil), http.StatusGatewayTimeout},
		{errors.New("plain"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := GetStatusCode(tt.err); got != tt.expected {
			t.Errorf("Expected %d for %v, got %d", tt.expected, tt.err, got)
		}
	}
}
