// Package models defines the core domain models for checklist templates and completions
package models

import "time"

// ValidationType identifies how an item's raw value is interpreted.
type ValidationType string

const (
	ValidationTypeNone         ValidationType = "none"
	ValidationTypeYesNo        ValidationType = "yes_no"
	ValidationTypeYesNoNA      ValidationType = "yes_no_na"
	ValidationTypeMinMax       ValidationType = "min_max"
	ValidationTypeQuantity     ValidationType = "quantity"
	ValidationTypeGoodFairPoor ValidationType = "good_fair_poor"
	ValidationTypeCustom       ValidationType = "custom"
)

// ValidationBehavior governs how a flagged value is classified,
// independent of the validation type.
type ValidationBehavior string

const (
	BehaviorRaisesError   ValidationBehavior = "raises_error"
	BehaviorRaisesWarning ValidationBehavior = "raises_warning"
	BehaviorNoValidation  ValidationBehavior = "no_validation"
)

// Numeric returns true for types whose values are range-checked as numbers.
func (t ValidationType) Numeric() bool {
	return t == ValidationTypeMinMax || t == ValidationTypeQuantity
}

// ItemConfig carries the validation configuration for one item. Only the
// fields relevant to the item's validation type are meaningful; the rest
// are ignored.
type ItemConfig struct {
	ErrorValues       []string `json:"error_values,omitempty"`
	Min               *float64 `json:"min,omitempty"` // nil means unbounded below
	Max               *float64 `json:"max,omitempty"` // nil means unbounded above
	ErrorOutsideRange bool     `json:"error_outside_range,omitempty"`
	CustomOptions     []string `json:"custom_options,omitempty"`
}

// Item is one checklist question with a validation policy.
type Item struct {
	ID                 string             `json:"id"          validate:"required"`
	Description        string             `json:"description" validate:"required"`
	LongDescription    string             `json:"long_description,omitempty"`
	ValidationType     ValidationType     `json:"validation_type"     validate:"required"`
	ValidationBehavior ValidationBehavior `json:"validation_behavior" validate:"required"`
	Required           bool               `json:"required"`
	Config             *ItemConfig        `json:"config,omitempty"`
	Order              int                `json:"order"`
}

// Section groups ordered items. Section order within a template is
// significant and must be preserved.
type Section struct {
	ID    string  `json:"id"    validate:"required"`
	Title string  `json:"title" validate:"required"`
	Items []*Item `json:"items"`
	Order int     `json:"order"`
}

// Template is the static definition of a checklist: ordered sections, each
// containing ordered items. Pure data, no behavior beyond traversal helpers.
// Item IDs are unique across the whole template, not just within a section.
type Template struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"        validate:"required,min=3"`
	Description  string     `json:"description"`
	Version      string     `json:"version"`
	ResourceType string     `json:"resource_type,omitempty"`
	Sections     []*Section `json:"sections"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}

// ItemCount returns the total number of items across all sections.
func (t *Template) ItemCount() int {
	count := 0
	for _, section := range t.Sections {
		count += len(section.Items)
	}

	return count
}

// EachItem walks every item in template order (sections in order, items in
// order within each section) and calls fn with the owning section.
func (t *Template) EachItem(fn func(section *Section, item *Item)) {
	for _, section := range t.Sections {
		for _, item := range section.Items {
			fn(section, item)
		}
	}
}

// FindItem returns the item with the given ID and its owning section, or
// nil if no such item exists.
func (t *Template) FindItem(itemID string) (*Section, *Item) {
	for _, section := range t.Sections {
		for _, item := range section.Items {
			if item.ID == itemID {
				return section, item
			}
		}
	}

	return nil, nil
}

// DuplicateItemIDs returns item IDs that appear more than once across the
// template. A well-formed template returns an empty slice.
func (t *Template) DuplicateItemIDs() []string {
	seen := make(map[string]bool)
	duplicates := make([]string, 0)

	t.EachItem(func(_ *Section, item *Item) {
		if seen[item.ID] {
			duplicates = append(duplicates, item.ID)
		}

		seen[item.ID] = true
	})

	return duplicates
}
