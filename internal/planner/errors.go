package planner

import (
	"errors"
	"fmt"

	"finplan/internal/registry"
)

// validationError signals a malformed request (400).
type validationError struct {
	field string
	msg   string
}

func (e *validationError) Error() string {
	if e.field == "" {
		return e.msg
	}
	return e.field + ": " + e.msg
}

// ErrValidation constructs a validation error for field.
func ErrValidation(field, format string, args ...any) error {
	return &validationError{field: field, msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err indicates a malformed request.
func IsValidation(err error) bool {
	var ve *validationError
	return errors.As(err, &ve)
}

// ValidationField returns the offending field name, if any.
func ValidationField(err error) string {
	var ve *validationError
	if errors.As(err, &ve) {
		return ve.field
	}
	return ""
}

// predictionError wraps a failure inside a model call.
type predictionError struct {
	role registry.Role
	err  error
}

func (e *predictionError) Error() string { return fmt.Sprintf("%s prediction failed: %v", e.role, e.err) }
func (e *predictionError) Unwrap() error { return e.err }

// ErrPrediction constructs a prediction error for role.
func ErrPrediction(role registry.Role, err error) error { return &predictionError{role: role, err: err} }

// IsPrediction reports whether err came from a model call.
func IsPrediction(err error) bool {
	var pe *predictionError
	return errors.As(err, &pe)
}

// modelUnavailableError signals that the active set lacks a role (503).
type modelUnavailableError struct{ role registry.Role }

func (e *modelUnavailableError) Error() string { return "model unavailable: " + string(e.role) }

// ErrModelUnavailable constructs a modelUnavailableError.
func ErrModelUnavailable(role registry.Role) error { return &modelUnavailableError{role: role} }

// IsModelUnavailable reports whether err indicates a missing role.
func IsModelUnavailable(err error) bool {
	var me *modelUnavailableError
	return errors.As(err, &me)
}
