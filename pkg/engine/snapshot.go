package engine

import (
	"time"

	"github.com/dukex/fleetcheck/pkg/models"
)

// RawResponse is a free-form answer as captured by the caller, before the
// engine attaches snapshots and verdicts.
type RawResponse struct {
	Value string `json:"value"`
	Note  string `json:"note,omitempty"`
}

// ResponseContext carries provenance stamped onto every snapshotted
// response.
type ResponseContext struct {
	User            string
	Device          string
	TemplateVersion string
	Timestamp       time.Time
}

// SnapshotResponses builds full response records from raw answers: each
// response gets a frozen copy of its item's definition, the resolved
// section, a per-item verdict and provenance metadata. Raw answers whose
// item ID does not exist in the template are dropped. When a previous
// response exists for an item and its value changed, the new record is
// marked edited.
func SnapshotResponses(
	template *models.Template,
	raw map[string]RawResponse,
	previous map[string]*models.Response,
	rc ResponseContext,
) map[string]*models.Response {
	if rc.Timestamp.IsZero() {
		rc.Timestamp = time.Now()
	}

	responses := make(map[string]*models.Response, len(raw))

	template.EachItem(func(section *models.Section, item *models.Item) {
		answer, ok := raw[item.ID]
		if !ok {
			return
		}

		verdict := ValidateItem(item, answer.Value)

		response := &models.Response{
			Value:     answer.Value,
			Note:      answer.Note,
			Timestamp: rc.Timestamp,
			Snapshot: &models.ItemSnapshot{
				ItemID:             item.ID,
				Description:        item.Description,
				LongDescription:    item.LongDescription,
				ValidationType:     item.ValidationType,
				ValidationBehavior: item.ValidationBehavior,
				Required:           item.Required,
				Config:             cloneConfig(item.Config),
				SectionID:          section.ID,
				SectionTitle:       section.Title,
			},
			Validation: &models.ItemValidation{
				Kind:      verdict.Kind,
				Message:   verdict.Message,
				Timestamp: rc.Timestamp,
			},
			Metadata: models.ResponseMetadata{
				User:            rc.User,
				Device:          rc.Device,
				TemplateVersion: rc.TemplateVersion,
			},
		}

		if prev, exists := previous[item.ID]; exists && prev != nil && prev.Value != answer.Value {
			editedAt := rc.Timestamp
			response.Metadata.Edited = true
			response.Metadata.EditedAt = &editedAt
		}

		responses[item.ID] = response
	})

	return responses
}

// cloneConfig copies the item config so later template edits cannot reach
// into a stored snapshot.
func cloneConfig(config *models.ItemConfig) *models.ItemConfig {
	if config == nil {
		return nil
	}

	clone := &models.ItemConfig{
		ErrorOutsideRange: config.ErrorOutsideRange,
	}

	if config.ErrorValues != nil {
		clone.ErrorValues = append([]string(nil), config.ErrorValues...)
	}

	if config.CustomOptions != nil {
		clone.CustomOptions = append([]string(nil), config.CustomOptions...)
	}

	if config.Min != nil {
		min := *config.Min
		clone.Min = &min
	}

	if config.Max != nil {
		max := *config.Max
		clone.Max = &max
	}

	return clone
}
