package models

import "time"

// LifecycleState represents the lifecycle state of a checklist.
type LifecycleState string

const (
	StateInProgress LifecycleState = "in_progress" // Draft, re-enterable by saves
	StateCompleted  LifecycleState = "completed"   // Terminal: all items answered, no errors
	StatePartial    LifecycleState = "partial"     // Terminal: finalized with unanswered optional items
	StateErrored    LifecycleState = "errored"     // Terminal: finalized with outstanding errors
)

// Terminal reports whether the state is final. Only in_progress may be
// re-entered by a save.
func (s LifecycleState) Terminal() bool {
	return s == StateCompleted || s == StatePartial || s == StateErrored
}

// ItemSnapshot is a frozen copy of an item's definition at the moment a
// response was recorded, plus the resolved section. Later template edits
// must not retroactively change a historical response's configuration.
type ItemSnapshot struct {
	ItemID             string             `json:"item_id"`
	Description        string             `json:"description"`
	LongDescription    string             `json:"long_description,omitempty"`
	ValidationType     ValidationType     `json:"validation_type"`
	ValidationBehavior ValidationBehavior `json:"validation_behavior"`
	Required           bool               `json:"required"`
	Config             *ItemConfig        `json:"config,omitempty"`
	SectionID          string             `json:"section_id"`
	SectionTitle       string             `json:"section_title"`
}

// ResponseMetadata carries provenance for one response.
type ResponseMetadata struct {
	User            string     `json:"user,omitempty"`
	Device          string     `json:"device,omitempty"`
	TemplateVersion string     `json:"template_version,omitempty"`
	Edited          bool       `json:"edited"`
	EditedAt        *time.Time `json:"edited_at,omitempty"`
}

// Response is the recorded answer to one item.
type Response struct {
	Value      string           `json:"value"`
	Note       string           `json:"note,omitempty"`
	Timestamp  time.Time        `json:"timestamp"`
	Snapshot   *ItemSnapshot    `json:"item_snapshot,omitempty"`
	Validation *ItemValidation  `json:"validation,omitempty"`
	Metadata   ResponseMetadata `json:"metadata"`
}

// Checklist is the persisted completion record for one template.
type Checklist struct {
	ID              string               `json:"id"`
	TemplateID      string               `json:"template_id" validate:"required"`
	Responses       map[string]*Response `json:"responses"`
	Notes           map[string]string    `json:"notes,omitempty"`
	Summary         *ValidationSummary   `json:"validation_summary,omitempty"`
	TotalItems      int                  `json:"total_items"`
	CompletedItems  int                  `json:"completed_items"`
	CorrectCount    int                  `json:"correct_count"`
	WarningCount    int                  `json:"warning_count"`
	ErrorCount      int                  `json:"error_count"`
	PercentComplete int                  `json:"percent_complete"`
	State           LifecycleState       `json:"state"`
	RequiresReview  bool                 `json:"requires_review"`
	EffectiveDate   time.Time            `json:"effective_date"`
	CreatedBy       string               `json:"created_by,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}
