package engine

import "github.com/dukex/fleetcheck/pkg/models"

// ValidateChecklist runs ValidateItem over every item in template order and
// buckets the verdicts by kind, each tagged with the originating section.
// Items with no response are validated against the empty string. The result
// is deterministic: the same inputs always produce the same buckets in the
// same order, and every item lands in exactly one bucket.
func ValidateChecklist(template *models.Template, responses map[string]*models.Response) *models.ValidationSummary {
	summary := models.NewValidationSummary()

	template.EachItem(func(section *models.Section, item *models.Item) {
		value := ""
		if response, ok := responses[item.ID]; ok && response != nil {
			value = response.Value
		}

		verdict := ValidateItem(item, value)

		summary.Add(verdict.Kind, models.ValidationError{
			Item:    item.Description,
			Message: verdict.Message,
			ItemID:  item.ID,
			Section: section.Title,
		})
	})

	return summary
}
