package models

import "time"

// VerdictKind classifies a single item validation outcome.
type VerdictKind string

const (
	VerdictError   VerdictKind = "error"
	VerdictWarning VerdictKind = "warning"
	VerdictCorrect VerdictKind = "correct"
)

// Verdict is the result of validating one raw value against one item.
type Verdict struct {
	Kind    VerdictKind `json:"kind"`
	Message string      `json:"message,omitempty"`
}

// ValidationError is a per-item verdict surfaced to callers, tagged with
// the originating section.
type ValidationError struct {
	Item    string `json:"item"` // item description
	Message string `json:"message"`
	ItemID  string `json:"item_id"`
	Section string `json:"section,omitempty"`
}

// ValidationSummary buckets every item of a template into exactly one of
// errors, warnings or correct after a full validation pass.
type ValidationSummary struct {
	Errors   []ValidationError `json:"errors"`
	Warnings []ValidationError `json:"warnings"`
	Correct  []ValidationError `json:"correct"`
}

// NewValidationSummary returns a summary with empty, non-nil buckets.
func NewValidationSummary() *ValidationSummary {
	return &ValidationSummary{
		Errors:   make([]ValidationError, 0),
		Warnings: make([]ValidationError, 0),
		Correct:  make([]ValidationError, 0),
	}
}

// Total returns the number of entries across all three buckets.
func (s *ValidationSummary) Total() int {
	return len(s.Errors) + len(s.Warnings) + len(s.Correct)
}

// Purge removes every entry for the given item ID from all three buckets.
// Re-validating a single item must purge before inserting the new verdict
// so the summary never holds duplicates or stale entries.
func (s *ValidationSummary) Purge(itemID string) {
	s.Errors = removeItem(s.Errors, itemID)
	s.Warnings = removeItem(s.Warnings, itemID)
	s.Correct = removeItem(s.Correct, itemID)
}

// Add purges any prior entries for the entry's item ID and appends the
// entry to the bucket matching kind.
func (s *ValidationSummary) Add(kind VerdictKind, entry ValidationError) {
	s.Purge(entry.ItemID)

	switch kind {
	case VerdictError:
		s.Errors = append(s.Errors, entry)
	case VerdictWarning:
		s.Warnings = append(s.Warnings, entry)
	case VerdictCorrect:
		s.Correct = append(s.Correct, entry)
	}
}

func removeItem(entries []ValidationError, itemID string) []ValidationError {
	kept := entries[:0]

	for _, entry := range entries {
		if entry.ItemID != itemID {
			kept = append(kept, entry)
		}
	}

	return kept
}

// Progress is the aggregate completion state of a checklist against its
// template.
type Progress struct {
	TotalItems              int      `json:"total_items"`
	CompletedItems          int      `json:"completed_items"`
	PercentComplete         int      `json:"percent_complete"` // rounded, 0-100
	MissingItemDescriptions []string `json:"missing_item_descriptions"`
}

// ItemValidation is the verdict stored inside a response record.
type ItemValidation struct {
	Kind      VerdictKind `json:"kind"`
	Message   string      `json:"message,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}
