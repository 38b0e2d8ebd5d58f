package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeValidation   ErrorCode = "VALIDATION_ERROR"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"

	// Generation pipeline errors
	CodeInsufficientText  ErrorCode = "INSUFFICIENT_TEXT"
	CodeNoKeyPhrases      ErrorCode = "NO_KEY_PHRASES"
	CodeUnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT"
	CodeNoExtractableText ErrorCode = "NO_EXTRACTABLE_TEXT"

	// Persistence errors
	CodeStorageFailure ErrorCode = "STORAGE_FAILURE"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Cause   error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Helper constructors for the closed error-kind set
func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewUnauthorizedError(message string) *DomainError {
	return NewError(CodeUnauthorized, message, nil)
}

func NewInsufficientTextError(wordCount, minWords int) *DomainError {
	return NewError(CodeInsufficientText,
		fmt.Sprintf("document contains %d words, at least %d required", wordCount, minWords), nil)
}

func NewNoKeyPhrasesError() *DomainError {
	return NewError(CodeNoKeyPhrases, "no key phrases could be extracted from the text", nil)
}

func NewUnsupportedFormatError(extension string) *DomainError {
	return NewError(CodeUnsupportedFormat,
		fmt.Sprintf("unsupported file format: %s", extension), nil)
}

func NewNoExtractableTextError(filename string) *DomainError {
	return NewError(CodeNoExtractableText,
		fmt.Sprintf("no extractable text in file: %s", filename), nil)
}

func NewStorageFailureError(cause error) *DomainError {
	return NewError(CodeStorageFailure, "failed to commit document batch", cause)
}

// ValidationError represents a single invalid request field
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates field validation failures for one request
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s", e[0].Error())
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{Field: field, Message: "is required"}
}

func NewInvalidFormatError(field, value string) ValidationError {
	return ValidationError{Field: field, Message: fmt.Sprintf("has invalid format: %s", value)}
}

func NewOutOfRangeError(field string, value, min, max int) ValidationError {
	return ValidationError{
		Field:   field,
		Message: fmt.Sprintf("value %d is out of range [%d, %d]", value, min, max),
	}
}
