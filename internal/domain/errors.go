package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a machine-readable error code
type ErrorCode string

const (
	// Subscriber Errors (SUBSCRIBER_*)
	ErrorCodeSubscriberNotFound ErrorCode = "SUBSCRIBER_NOT_FOUND"

	// Invoice Errors (INVOICE_*)
	ErrorCodeInvoiceNotFound ErrorCode = "INVOICE_NOT_FOUND"

	// Validation Errors (VALIDATION_*)
	ErrorCodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	// Internal Errors (INTERNAL_*)
	ErrorCodeDataAccess ErrorCode = "INTERNAL_DATA_ACCESS"
)

// DomainError represents a structured domain error with error code and context
type DomainError struct {
	Err     error
	Details map[string]interface{}
	Code    ErrorCode
	Message string
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

// WithDetail adds a detail field to the error
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// NewDomainError creates a new domain error
func NewDomainError(code ErrorCode, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// WrapError wraps an existing error with a domain error code
func WrapError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Err:     err,
	}
}

// DataAccessError wraps a persistence failure raised while running operation.
func DataAccessError(operation string, err error) *DomainError {
	return WrapError(ErrorCodeDataAccess, "data access failed", err).
		WithDetail("operation", operation)
}

// IsDomainError checks if an error is a DomainError with the given code
func IsDomainError(err error, code ErrorCode) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error, returns empty string if not a DomainError
func GetErrorCode(err error) ErrorCode {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return ""
}

// IsNotFoundError checks if an error represents a "not found" condition
func IsNotFoundError(err error) bool {
	code := GetErrorCode(err)
	return code == ErrorCodeSubscriberNotFound ||
		code == ErrorCodeInvoiceNotFound
}

// IsDataAccessError checks if an error came from the persistence layer
func IsDataAccessError(err error) bool {
	return GetErrorCode(err) == ErrorCodeDataAccess
}

var (
	ErrSubscriberNotFound = NewDomainError(ErrorCodeSubscriberNotFound, "subscriber not found")
	ErrInvoiceNotFound    = NewDomainError(ErrorCodeInvoiceNotFound, "invoice not found")
)

// Sentinel errors returned by repositories
var (
	ErrNotFound = errors.New("record not found")
)
