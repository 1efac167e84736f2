package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/dukex/fleetcheck/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecklistSaved_GetType(t *testing.T) {
	event := ChecklistSaved{}
	assert.Equal(t, ChecklistSavedEvent, event.GetType())
}

func TestChecklistFinalized_GetType(t *testing.T) {
	event := ChecklistFinalized{}
	assert.Equal(t, ChecklistFinalizedEvent, event.GetType())
}

func TestChecklistFinalized_JSONRoundTrip(t *testing.T) {
	event := ChecklistFinalized{
		BaseEvent: BaseEvent{
			ID:          "evt-1",
			Type:        ChecklistFinalizedEvent,
			Timestamp:   time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
			ChecklistID: "chk-1",
			TemplateID:  "tpl-1",
		},
		State:          models.StateErrored,
		RequiresReview: true,
		ErrorCount:     2,
	}

	payload, err := json.Marshal(event)
	require.NoError(t, err)

	var decoded ChecklistFinalized

	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, event, decoded)
}
