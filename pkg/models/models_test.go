package models

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTemplate() *Template {
	return &Template{
		ID:      "tpl-1",
		Name:    "Pre-trip inspection",
		Version: "3",
		Sections: []*Section{
			{
				ID:    "sec-1",
				Title: "Cabin",
				Order: 0,
				Items: []*Item{
					{
						ID:                 "item-1",
						Description:        "Seatbelt functional",
						ValidationType:     ValidationTypeYesNo,
						ValidationBehavior: BehaviorRaisesError,
						Required:           true,
						Config:             &ItemConfig{ErrorValues: []string{"no"}},
						Order:              0,
					},
					{
						ID:                 "item-2",
						Description:        "Tire pressure (psi)",
						ValidationType:     ValidationTypeMinMax,
						ValidationBehavior: BehaviorRaisesError,
						Config: &ItemConfig{
							Min:               ptr(80.0),
							Max:               ptr(120.0),
							ErrorOutsideRange: true,
						},
						Order: 1,
					},
				},
			},
		},
	}
}

func ptr(f float64) *float64 { return &f }

func TestTemplate_Validate(t *testing.T) {
	validate := validator.New()

	err := validate.Struct(testTemplate())
	require.NoError(t, err)
}

func TestTemplate_Validate_NameTooShort(t *testing.T) {
	validate := validator.New()

	template := testTemplate()
	template.Name = "ab"

	err := validate.Struct(template)
	require.Error(t, err)

	var validationErrors validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrors)
	assert.Equal(t, "Name", validationErrors[0].Field())
}

func TestTemplate_ItemCount(t *testing.T) {
	template := testTemplate()
	assert.Equal(t, 2, template.ItemCount())

	empty := &Template{ID: "empty", Name: "Empty template"}
	assert.Equal(t, 0, empty.ItemCount())
}

func TestTemplate_EachItem_Order(t *testing.T) {
	template := testTemplate()
	template.Sections = append(template.Sections, &Section{
		ID:    "sec-2",
		Title: "Exterior",
		Order: 1,
		Items: []*Item{
			{ID: "item-3", Description: "Mirrors intact", ValidationType: ValidationTypeYesNo, ValidationBehavior: BehaviorRaisesWarning},
		},
	})

	visited := make([]string, 0, 3)
	template.EachItem(func(_ *Section, item *Item) {
		visited = append(visited, item.ID)
	})

	assert.Equal(t, []string{"item-1", "item-2", "item-3"}, visited)
}

func TestTemplate_FindItem(t *testing.T) {
	template := testTemplate()

	section, item := template.FindItem("item-2")
	require.NotNil(t, item)
	assert.Equal(t, "Tire pressure (psi)", item.Description)
	assert.Equal(t, "Cabin", section.Title)

	section, item = template.FindItem("missing")
	assert.Nil(t, section)
	assert.Nil(t, item)
}

func TestTemplate_DuplicateItemIDs(t *testing.T) {
	template := testTemplate()
	assert.Empty(t, template.DuplicateItemIDs())

	template.Sections = append(template.Sections, &Section{
		ID:    "sec-2",
		Title: "Exterior",
		Items: []*Item{
			{ID: "item-1", Description: "Duplicate", ValidationType: ValidationTypeNone, ValidationBehavior: BehaviorNoValidation},
		},
	})
	assert.Equal(t, []string{"item-1"}, template.DuplicateItemIDs())
}

func TestLifecycleState_Terminal(t *testing.T) {
	assert.False(t, StateInProgress.Terminal())
	assert.True(t, StateCompleted.Terminal())
	assert.True(t, StatePartial.Terminal())
	assert.True(t, StateErrored.Terminal())
}

func TestValidationSummary_Add_Purge(t *testing.T) {
	summary := NewValidationSummary()

	summary.Add(VerdictError, ValidationError{Item: "Seatbelt functional", ItemID: "item-1", Message: "required field"})
	summary.Add(VerdictCorrect, ValidationError{Item: "Tire pressure (psi)", ItemID: "item-2"})

	assert.Len(t, summary.Errors, 1)
	assert.Len(t, summary.Correct, 1)
	assert.Equal(t, 2, summary.Total())

	// Re-adding the same item moves it between buckets with no duplicates.
	summary.Add(VerdictCorrect, ValidationError{Item: "Seatbelt functional", ItemID: "item-1"})

	assert.Empty(t, summary.Errors)
	assert.Len(t, summary.Correct, 2)
	assert.Equal(t, 2, summary.Total())
}

func TestValidationSummary_Purge_AllBuckets(t *testing.T) {
	summary := NewValidationSummary()
	summary.Errors = append(summary.Errors, ValidationError{ItemID: "x"})
	summary.Warnings = append(summary.Warnings, ValidationError{ItemID: "x"})
	summary.Correct = append(summary.Correct, ValidationError{ItemID: "x"}, ValidationError{ItemID: "y"})

	summary.Purge("x")

	assert.Equal(t, 1, summary.Total())
	assert.Equal(t, "y", summary.Correct[0].ItemID)
}

func TestValidateTemplateDocument(t *testing.T) {
	valid := []byte(`{
		"name": "Pre-trip inspection",
		"sections": [
			{
				"id": "sec-1",
				"title": "Cabin",
				"items": [
					{
						"id": "item-1",
						"description": "Seatbelt functional",
						"validation_type": "yes_no",
						"validation_behavior": "raises_error",
						"required": true,
						"config": {"error_values": ["no"]}
					}
				]
			}
		]
	}`)

	require.NoError(t, ValidateTemplateDocument(valid))
}

func TestValidateTemplateDocument_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		document string
	}{
		{"missing sections", `{"name": "Pre-trip inspection"}`},
		{"bad validation type", `{"name": "Pre-trip", "sections": [{"id": "s", "title": "t", "items": [{"id": "i", "description": "d", "validation_type": "bogus", "validation_behavior": "raises_error"}]}]}`},
		{"name too short", `{"name": "ab", "sections": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTemplateDocument([]byte(tt.document))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidTemplateDocument)
		})
	}
}
