// Package events defines event types and structures for checklist lifecycle
// notifications.
package events

import (
	"time"

	"github.com/dukex/fleetcheck/pkg/models"
)

type EventType string

const Topic = "fleetcheck.events"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	// Checklist lifecycle events.
	ChecklistSavedEvent     EventType = "checklist.saved"
	ChecklistFinalizedEvent EventType = "checklist.finalized"
)

type BaseEvent struct {
	ID          string         `json:"id"`
	Type        EventType      `json:"type"`
	Timestamp   time.Time      `json:"timestamp"`
	ChecklistID string         `json:"checklist_id"`
	TemplateID  string         `json:"template_id"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// ChecklistSaved is published after every successful save-in-progress.
type ChecklistSaved struct {
	BaseEvent

	State           models.LifecycleState `json:"state"`
	PercentComplete int                   `json:"percent_complete"`
}

func (c ChecklistSaved) GetType() EventType {
	return ChecklistSavedEvent
}

// ChecklistFinalized is published once the finalization gate passes and the
// record is persisted in a terminal state.
type ChecklistFinalized struct {
	BaseEvent

	State          models.LifecycleState `json:"state"`
	RequiresReview bool                  `json:"requires_review"`
	ErrorCount     int                   `json:"error_count"`
}

func (c ChecklistFinalized) GetType() EventType {
	return ChecklistFinalizedEvent
}
