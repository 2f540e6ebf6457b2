// Package errors provides custom error types for pricing-domain errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrInvalidParameter  = errors.New("invalid parameter")
	ErrInvalidOptionKind = errors.New("invalid option kind")
	ErrInvalidDomain     = errors.New("invalid time domain")
	ErrConfigInvalid     = errors.New("invalid configuration")
)

// ValidationError represents a rejected input field.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
	Kind    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s (%v): %s", e.kind(), e.Field, e.Value, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.kind()
}

func (e *ValidationError) kind() error {
	if e.Kind == nil {
		return ErrInvalidParameter
	}
	return e.Kind
}

// NewValidationError creates a ValidationError of kind ErrInvalidParameter.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
		Kind:    ErrInvalidParameter,
	}
}

// NewOptionKindError creates a ValidationError of kind ErrInvalidOptionKind.
func NewOptionKindError(value string) *ValidationError {
	return &ValidationError{
		Field:   "kind",
		Value:   value,
		Message: "option type must be 'call' or 'put' (any casing)",
		Kind:    ErrInvalidOptionKind,
	}
}

// DomainError reports a valuation/maturity pair that leaves no whole
// simulated day.
type DomainError struct {
	Valuation float64
	Maturity  float64
	Steps     int
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%v: T (%g) must be larger than t (%g) by at least 1 day, got %d steps",
		ErrInvalidDomain, e.Maturity, e.Valuation, e.Steps)
}

func (e *DomainError) Unwrap() error {
	return ErrInvalidDomain
}

// NewDomainError creates a new DomainError.
func NewDomainError(valuation, maturity float64, steps int) *DomainError {
	return &DomainError{
		Valuation: valuation,
		Maturity:  maturity,
		Steps:     steps,
	}
}

// IsInputError reports whether err was caused by bad caller input rather
// than an unexpected failure.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidParameter) ||
		errors.Is(err, ErrInvalidOptionKind) ||
		errors.Is(err, ErrInvalidDomain)
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
