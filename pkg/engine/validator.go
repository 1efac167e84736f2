// Package engine implements checklist validation, progress and response
// snapshotting. Everything here is pure computation over in-memory data:
// no I/O, no suspension points, every call recomputes from scratch.
package engine

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/dukex/fleetcheck/pkg/models"
)

// ValidateItem decides whether a raw value is erroneous, triggers a warning
// or is acceptable for the given item. Rules apply in precedence order,
// first match wins:
//
//  1. no_validation behavior or absent config passes unconditionally
//  2. a required item with a blank value is an error
//  3. exact membership in config.error_values flags per the item's behavior
//  4. numeric types range-check parseable values when error_outside_range
//     is set; non-numeric values fall through to correct
//  5. everything else is correct
func ValidateItem(item *models.Item, rawValue string) models.Verdict {
	if item.ValidationBehavior == models.BehaviorNoValidation || item.Config == nil {
		return models.Verdict{Kind: models.VerdictCorrect}
	}

	if item.Required && strings.TrimSpace(rawValue) == "" {
		return models.Verdict{Kind: models.VerdictError, Message: "required field"}
	}

	if slices.Contains(item.Config.ErrorValues, rawValue) {
		kind := flaggedKind(item.ValidationBehavior)

		return models.Verdict{
			Kind:    kind,
			Message: fmt.Sprintf("value %q raises %s", rawValue, article(kind)),
		}
	}

	if item.ValidationType.Numeric() {
		return validateNumeric(item, rawValue)
	}

	return models.Verdict{Kind: models.VerdictCorrect}
}

func validateNumeric(item *models.Item, rawValue string) models.Verdict {
	number, err := strconv.ParseFloat(strings.TrimSpace(rawValue), 64)
	if err != nil {
		// Non-numeric values are not range-checked. Deliberately permissive,
		// locked in by TestValidateItem_NonNumericPassthrough.
		return models.Verdict{Kind: models.VerdictCorrect}
	}

	if !item.Config.ErrorOutsideRange {
		return models.Verdict{Kind: models.VerdictCorrect}
	}

	kind := flaggedKind(item.ValidationBehavior)

	if item.Config.Min != nil && number < *item.Config.Min {
		return models.Verdict{
			Kind:    kind,
			Message: fmt.Sprintf("value %s is below minimum (%s)", formatNumber(number), formatNumber(*item.Config.Min)),
		}
	}

	if item.Config.Max != nil && number > *item.Config.Max {
		return models.Verdict{
			Kind:    kind,
			Message: fmt.Sprintf("value %s is above maximum (%s)", formatNumber(number), formatNumber(*item.Config.Max)),
		}
	}

	return models.Verdict{Kind: models.VerdictCorrect}
}

func flaggedKind(behavior models.ValidationBehavior) models.VerdictKind {
	if behavior == models.BehaviorRaisesError {
		return models.VerdictError
	}

	return models.VerdictWarning
}

func article(kind models.VerdictKind) string {
	if kind == models.VerdictError {
		return "an error"
	}

	return "a warning"
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
