// Package services provides standardized error types for service layer
// operations.
package services

import (
	"errors"
	"fmt"

	"github.com/dukex/fleetcheck/pkg/persistence"
)

// Business Logic Errors - These indicate client errors (4xx responses).
var (
	// Validation Errors (400 Bad Request).
	ErrInvalidRequest       = errors.New("invalid request")
	ErrTemplateNameRequired = errors.New("template name is required")
	ErrSectionsRequired     = errors.New("template must have at least one section")
	ErrDuplicateItemIDs     = errors.New("template has duplicate item ids")
	ErrTemplateNil          = errors.New("template cannot be nil")

	// Precondition Violations - caller errors, never persisted (400/404).
	ErrTemplateRequired  = errors.New("no template provided")
	ErrTemplateNotFound  = persistence.ErrTemplateNotFound
	ErrChecklistNotFound = persistence.ErrChecklistNotFound

	// Business Logic Conflicts (409 Conflict).
	ErrChecklistFinalized = persistence.ErrChecklistFinalized
)

// ServiceError wraps service-level errors with additional context.
type ServiceError struct {
	Op      string // Operation name
	Message string // Human-readable message
	Err     error  // Underlying error
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}

	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func (e *ServiceError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewValidationError creates a new validation error with context.
func NewValidationError(op, message string, err error) *ServiceError {
	return &ServiceError{
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// IsValidationError checks if an error is a validation error that should
// return HTTP 400.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, ErrTemplateNameRequired) ||
		errors.Is(err, ErrSectionsRequired) ||
		errors.Is(err, ErrDuplicateItemIDs) ||
		errors.Is(err, ErrTemplateNil) ||
		errors.Is(err, ErrTemplateRequired)
}

// IsPreconditionError checks if an error is a caller precondition violation:
// the engine was invoked with no template loaded or against an identifier
// that does not resolve. Nothing was persisted.
func IsPreconditionError(err error) bool {
	return errors.Is(err, ErrTemplateRequired) ||
		errors.Is(err, ErrTemplateNotFound) ||
		errors.Is(err, ErrChecklistNotFound)
}

// IsConflictError checks if an error is a business logic conflict that
// should return HTTP 409.
func IsConflictError(err error) bool {
	return errors.Is(err, ErrChecklistFinalized)
}
