// Package web provides HTTP request and response types for the checklist
// API.
package web

import (
	"time"

	"github.com/dukex/fleetcheck/pkg/engine"
)

// ValidateRequest represents the request body for validating or measuring
// progress on a set of responses against a template.
type ValidateRequest struct {
	Responses map[string]engine.RawResponse `json:"responses" validate:"required"`
}

// SaveChecklistRequest represents the request body for saving or finalizing
// a checklist.
type SaveChecklistRequest struct {
	ChecklistID   string                        `json:"checklist_id,omitempty"`
	TemplateID    string                        `json:"template_id"   validate:"required"`
	Responses     map[string]engine.RawResponse `json:"responses"`
	Notes         map[string]string             `json:"notes,omitempty"`
	EffectiveDate time.Time                     `json:"effective_date"`
	User          string                        `json:"user,omitempty"`
	Device        string                        `json:"device,omitempty"`
}
