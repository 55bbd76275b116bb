package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target is a DomainError with the same code, so that
// errors.Is(err, ErrNotFound) matches errors built with a specific message.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithPrefix returns a copy of e whose message starts with the given context
func (e *DomainError) WithPrefix(format string, args ...any) *DomainError {
	return NewDomainError(e.Code, fmt.Sprintf(format, args...)+": "+e.Message)
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewNotFoundError creates a NOT_FOUND error naming the missing entity
func NewNotFoundError(entity, id string) *DomainError {
	return NewDomainError(CodeNotFound, fmt.Sprintf("%s %q not found", entity, id))
}

// NewInvalidInputError creates an INVALID_INPUT error with a custom message
func NewInvalidInputError(format string, args ...any) *DomainError {
	return NewDomainError(CodeInvalidInput, fmt.Sprintf(format, args...))
}

// NewValidationError creates a VALIDATION_ERROR for input that is well formed
// but refers to something that does not exist
func NewValidationError(format string, args ...any) *DomainError {
	return NewDomainError(CodeValidation, fmt.Sprintf(format, args...))
}

// Domain error codes
const (
	CodeNotFound         = "NOT_FOUND"
	CodeAlreadyExists    = "ALREADY_EXISTS"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeValidation       = "VALIDATION_ERROR"
	CodeInvalidState     = "INVALID_STATE"
	CodeDuplicateRequest = "DUPLICATE_REQUEST"
)

// Common domain errors
var (
	ErrNotFound         = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists    = NewDomainError(CodeAlreadyExists, "Resource already exists")
	ErrInvalidInput     = NewDomainError(CodeInvalidInput, "Invalid input provided")
	ErrValidation       = NewDomainError(CodeValidation, "Validation failed")
	ErrInvalidState     = NewDomainError(CodeInvalidState, "Operation not allowed in current state")
	ErrDuplicateRequest = NewDomainError(CodeDuplicateRequest, "Request with this idempotency key was already processed")
)
