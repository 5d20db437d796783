package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common error conditions
var (
	// ErrUnknownDomain is returned when a domain is not in the registry
	ErrUnknownDomain = errors.New("unknown domain")

	// ErrUnknownStack is returned when a stack is not in the registry
	ErrUnknownStack = errors.New("unknown stack")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)

// UnknownDomainError represents an unknown domain error with the valid choices
type UnknownDomainError struct {
	Domain    string
	Available []string
}

func (e *UnknownDomainError) Error() string {
	return fmt.Sprintf("Unknown domain: %s. Available: %s", e.Domain, formatChoices(e.Available))
}

func (e *UnknownDomainError) Is(target error) bool {
	return target == ErrUnknownDomain
}

// NewUnknownDomainError creates a new UnknownDomainError
func NewUnknownDomainError(domain string, available []string) *UnknownDomainError {
	return &UnknownDomainError{Domain: domain, Available: append([]string(nil), available...)}
}

// UnknownStackError represents an unknown stack error with the valid choices
type UnknownStackError struct {
	Stack     string
	Available []string
}

func (e *UnknownStackError) Error() string {
	return fmt.Sprintf("Unknown stack: %s. Available: %s", e.Stack, formatChoices(e.Available))
}

func (e *UnknownStackError) Is(target error) bool {
	return target == ErrUnknownStack
}

// NewUnknownStackError creates a new UnknownStackError
func NewUnknownStackError(stack string, available []string) *UnknownStackError {
	return &UnknownStackError{Stack: stack, Available: append([]string(nil), available...)}
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func formatChoices(choices []string) string {
	return "[" + strings.Join(choices, ", ") + "]"
}
