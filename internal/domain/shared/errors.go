package shared

import "errors"

// Error codes carried by DomainError
const (
	CodeNotFound   = "NOT_FOUND"
	CodeValidation = "VALIDATION_ERROR"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates an error for missing or invalid input
func NewValidationError(message string) *DomainError {
	return NewDomainError(CodeValidation, message)
}

// NewNotFoundError creates an error for a referenced entity that does not exist
func NewNotFoundError(message string) *DomainError {
	return NewDomainError(CodeNotFound, message)
}

// Common domain errors
var (
	ErrNotFound = NewNotFoundError("Resource not found")
)

// IsNotFound reports whether err is, or wraps, a not-found DomainError
func IsNotFound(err error) bool {
	return hasCode(err, CodeNotFound)
}

// IsValidationError reports whether err is, or wraps, a validation DomainError
func IsValidationError(err error) bool {
	return hasCode(err, CodeValidation)
}

func hasCode(err error, code string) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}
