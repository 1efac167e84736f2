package engine

import (
	"math"
	"strings"

	"github.com/dukex/fleetcheck/pkg/models"
)

// ComputeProgress walks every item in template order and reports totals,
// completion percentage and the descriptions of incomplete items. An item
// counts as completed iff a response exists for its ID and its value is
// non-empty after trimming.
func ComputeProgress(template *models.Template, responses map[string]*models.Response) models.Progress {
	progress := models.Progress{
		MissingItemDescriptions: make([]string, 0),
	}

	template.EachItem(func(_ *models.Section, item *models.Item) {
		progress.TotalItems++

		if completed(responses, item.ID) {
			progress.CompletedItems++
		} else {
			progress.MissingItemDescriptions = append(progress.MissingItemDescriptions, item.Description)
		}
	})

	if progress.TotalItems > 0 {
		progress.PercentComplete = int(math.Round(100 * float64(progress.CompletedItems) / float64(progress.TotalItems)))
	}

	return progress
}

// MissingRequired returns the descriptions of required items whose response
// is missing or blank, in template order. This is the finalization gate's
// first input.
func MissingRequired(template *models.Template, responses map[string]*models.Response) []string {
	missing := make([]string, 0)

	template.EachItem(func(_ *models.Section, item *models.Item) {
		if item.Required && !completed(responses, item.ID) {
			missing = append(missing, item.Description)
		}
	})

	return missing
}

func completed(responses map[string]*models.Response, itemID string) bool {
	response, ok := responses[itemID]

	return ok && response != nil && strings.TrimSpace(response.Value) != ""
}
