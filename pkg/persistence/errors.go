// Package persistence provides standardized error types for persistence
// operations.
package persistence

import (
	"errors"
	"fmt"
)

// Standard persistence error types that all implementations should use.
var (
	// ErrTemplateNotFound indicates a template was not found by the given identifier.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrChecklistNotFound indicates a checklist was not found by the given identifier.
	ErrChecklistNotFound = errors.New("checklist not found")

	// ErrChecklistFinalized indicates an attempt to overwrite a checklist
	// already in a terminal lifecycle state.
	ErrChecklistFinalized = errors.New("checklist already finalized")

	// ErrTemplateInUse indicates a template cannot be deleted because
	// checklists reference it.
	ErrTemplateInUse = errors.New("template has checklists")
)

// TemplateError wraps template-related errors with additional context.
type TemplateError struct {
	Op         string // Operation being performed (e.g., "GetByID", "Save", "Delete")
	TemplateID string
	Err        error
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("%s operation failed for template %s: %v", e.Op, e.TemplateID, e.Err)
}

func (e *TemplateError) Unwrap() error {
	return e.Err
}

func (e *TemplateError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewTemplateError creates a new template error with context.
func NewTemplateError(op, templateID string, err error) *TemplateError {
	return &TemplateError{
		Op:         op,
		TemplateID: templateID,
		Err:        err,
	}
}

// ChecklistError wraps checklist-related errors with additional context.
type ChecklistError struct {
	Op          string
	ChecklistID string
	Err         error
}

func (e *ChecklistError) Error() string {
	return fmt.Sprintf("%s operation failed for checklist %s: %v", e.Op, e.ChecklistID, e.Err)
}

func (e *ChecklistError) Unwrap() error {
	return e.Err
}

func (e *ChecklistError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewChecklistError creates a new checklist error with context.
func NewChecklistError(op, checklistID string, err error) *ChecklistError {
	return &ChecklistError{
		Op:          op,
		ChecklistID: checklistID,
		Err:         err,
	}
}

// IsTemplateNotFound checks if an error indicates a template was not found.
func IsTemplateNotFound(err error) bool {
	return errors.Is(err, ErrTemplateNotFound)
}

// IsChecklistNotFound checks if an error indicates a checklist was not found.
func IsChecklistNotFound(err error) bool {
	return errors.Is(err, ErrChecklistNotFound)
}

// IsChecklistFinalized checks if an error indicates a checklist record is
// immutable.
func IsChecklistFinalized(err error) bool {
	return errors.Is(err, ErrChecklistFinalized)
}
