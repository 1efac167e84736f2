package engine

import (
	"testing"
	"time"

	"github.com/dukex/fleetcheck/pkg/models"
	"github.com/stretchr/testify/assert"
)

func inspectionTemplate() *models.Template {
	return &models.Template{
		ID:      "tpl-inspection",
		Name:    "Pre-trip inspection",
		Version: "3",
		Sections: []*models.Section{
			{
				ID:    "cabin",
				Title: "Cabin",
				Order: 0,
				Items: []*models.Item{
					{
						ID:                 "seatbelt",
						Description:        "Seatbelt functional",
						ValidationType:     models.ValidationTypeYesNo,
						ValidationBehavior: models.BehaviorRaisesError,
						Required:           true,
						Config:             &models.ItemConfig{ErrorValues: []string{"no"}},
						Order:              0,
					},
					{
						ID:                 "horn",
						Description:        "Horn working",
						ValidationType:     models.ValidationTypeYesNo,
						ValidationBehavior: models.BehaviorRaisesWarning,
						Config:             &models.ItemConfig{ErrorValues: []string{"no"}},
						Order:              1,
					},
				},
			},
			{
				ID:    "exterior",
				Title: "Exterior",
				Order: 1,
				Items: []*models.Item{
					{
						ID:                 "pressure",
						Description:        "Tire pressure (psi)",
						ValidationType:     models.ValidationTypeMinMax,
						ValidationBehavior: models.BehaviorRaisesError,
						Required:           true,
						Config: &models.ItemConfig{
							Min:               ptr(80),
							Max:               ptr(120),
							ErrorOutsideRange: true,
						},
						Order: 0,
					},
				},
			},
		},
	}
}

func answer(value string) *models.Response {
	return &models.Response{Value: value, Timestamp: time.Now()}
}

func TestComputeProgress_Empty(t *testing.T) {
	template := &models.Template{ID: "empty", Name: "Empty template"}

	progress := ComputeProgress(template, nil)

	assert.Equal(t, 0, progress.TotalItems)
	assert.Equal(t, 0, progress.CompletedItems)
	assert.Equal(t, 0, progress.PercentComplete)
	assert.Empty(t, progress.MissingItemDescriptions)
}

func TestComputeProgress_NoResponses(t *testing.T) {
	progress := ComputeProgress(inspectionTemplate(), nil)

	assert.Equal(t, 3, progress.TotalItems)
	assert.Equal(t, 0, progress.CompletedItems)
	assert.Equal(t, 0, progress.PercentComplete)
	assert.Equal(t, []string{"Seatbelt functional", "Horn working", "Tire pressure (psi)"}, progress.MissingItemDescriptions)
}

func TestComputeProgress_BlankValueNotCompleted(t *testing.T) {
	responses := map[string]*models.Response{
		"seatbelt": answer("   "),
		"horn":     answer("yes"),
	}

	progress := ComputeProgress(inspectionTemplate(), responses)

	assert.Equal(t, 1, progress.CompletedItems)
	assert.Contains(t, progress.MissingItemDescriptions, "Seatbelt functional")
}

func TestComputeProgress_Rounding(t *testing.T) {
	responses := map[string]*models.Response{
		"seatbelt": answer("yes"),
	}

	progress := ComputeProgress(inspectionTemplate(), responses)

	// 1/3 rounds to 33, 2/3 rounds to 67.
	assert.Equal(t, 33, progress.PercentComplete)

	responses["horn"] = answer("yes")
	progress = ComputeProgress(inspectionTemplate(), responses)
	assert.Equal(t, 67, progress.PercentComplete)
}

func TestComputeProgress_Monotonic(t *testing.T) {
	template := inspectionTemplate()
	responses := map[string]*models.Response{}

	previous := ComputeProgress(template, responses)

	for _, id := range []string{"seatbelt", "horn", "pressure"} {
		responses[id] = answer("yes")
		current := ComputeProgress(template, responses)

		assert.Equal(t, previous.CompletedItems+1, current.CompletedItems)
		assert.GreaterOrEqual(t, current.PercentComplete, previous.PercentComplete)

		previous = current
	}

	assert.Equal(t, 100, previous.PercentComplete)
	assert.Empty(t, previous.MissingItemDescriptions)
}

func TestMissingRequired(t *testing.T) {
	template := inspectionTemplate()

	missing := MissingRequired(template, nil)
	assert.Equal(t, []string{"Seatbelt functional", "Tire pressure (psi)"}, missing)

	responses := map[string]*models.Response{
		"seatbelt": answer("yes"),
		"horn":     answer(""),
	}
	missing = MissingRequired(template, responses)
	assert.Equal(t, []string{"Tire pressure (psi)"}, missing)

	responses["pressure"] = answer("100")
	assert.Empty(t, MissingRequired(template, responses))
}
