package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestDomainError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *DomainError
		expected string
	}{
		{
			name:     "without wrapped error",
			err:      NewDomainError(ErrorCodeInvoiceNotFound, "invoice not found"),
			expected: "INVOICE_NOT_FOUND: invoice not found",
		},
		{
			name:     "with wrapped error",
			err:      WrapError(ErrorCodeDataAccess, "data access failed", errors.New("connection refused")),
			expected: "INTERNAL_DATA_ACCESS: data access failed: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDataAccessError_UnwrapsCause(t *testing.T) {
	cause := errors.New("tx closed")
	err := fmt.Errorf("ensure invoices: %w", DataAccessError("count_pending", cause))

	if !errors.Is(err, cause) {
		t.Errorf("expected errors.Is to find the original cause")
	}
	if !IsDataAccessError(err) {
		t.Errorf("expected IsDataAccessError to be true for %v", err)
	}

	var domainErr *DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected errors.As to extract *DomainError")
	}
	if domainErr.Details["operation"] != "count_pending" {
		t.Errorf("operation detail = %v, want count_pending", domainErr.Details["operation"])
	}
}

func TestGetErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorCode
	}{
		{"domain error", ErrSubscriberNotFound, ErrorCodeSubscriberNotFound},
		{"wrapped domain error", fmt.Errorf("lookup: %w", ErrInvoiceNotFound), ErrorCodeInvoiceNotFound},
		{"plain error", errors.New("boom"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetErrorCode(tt.err); got != tt.expected {
				t.Errorf("GetErrorCode() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestIsNotFoundError(t *testing.T) {
	if !IsNotFoundError(ErrSubscriberNotFound) {
		t.Errorf("subscriber not found should be a not-found error")
	}
	if !IsNotFoundError(ErrInvoiceNotFound) {
		t.Errorf("invoice not found should be a not-found error")
	}
	if IsNotFoundError(DataAccessError("list", errors.New("x"))) {
		t.Errorf("data access errors are not not-found errors")
	}
}

func TestWithDetail_InitializesMap(t *testing.T) {
	err := &DomainError{Code: ErrorCodeValidationFailed, Message: "bad"}
	err.WithDetail("field", "due_day")

	if err.Details["field"] != "due_day" {
		t.Errorf("expected detail to be stored")
	}
	if !strings.Contains(err.Error(), "VALIDATION_FAILED") {
		t.Errorf("unexpected message %q", err.Error())
	}
}
