package engine

import (
	"testing"
	"time"

	"github.com/dukex/fleetcheck/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotResponses(t *testing.T) {
	template := inspectionTemplate()
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	responses := SnapshotResponses(template, map[string]RawResponse{
		"seatbelt": {Value: "yes", Note: "checked twice"},
		"pressure": {Value: "75"},
	}, nil, ResponseContext{
		User:            "driver-7",
		TemplateVersion: "3",
		Timestamp:       now,
	})

	require.Len(t, responses, 2)

	seatbelt := responses["seatbelt"]
	require.NotNil(t, seatbelt)
	assert.Equal(t, "yes", seatbelt.Value)
	assert.Equal(t, "checked twice", seatbelt.Note)
	assert.Equal(t, now, seatbelt.Timestamp)
	assert.Equal(t, "driver-7", seatbelt.Metadata.User)
	assert.Equal(t, "3", seatbelt.Metadata.TemplateVersion)
	assert.False(t, seatbelt.Metadata.Edited)

	require.NotNil(t, seatbelt.Snapshot)
	assert.Equal(t, "Seatbelt functional", seatbelt.Snapshot.Description)
	assert.Equal(t, "Cabin", seatbelt.Snapshot.SectionTitle)
	assert.True(t, seatbelt.Snapshot.Required)

	require.NotNil(t, seatbelt.Validation)
	assert.Equal(t, models.VerdictCorrect, seatbelt.Validation.Kind)

	pressure := responses["pressure"]
	require.NotNil(t, pressure.Validation)
	assert.Equal(t, models.VerdictError, pressure.Validation.Kind)
	assert.Contains(t, pressure.Validation.Message, "below minimum")
}

func TestSnapshotResponses_UnknownItemsDropped(t *testing.T) {
	responses := SnapshotResponses(inspectionTemplate(), map[string]RawResponse{
		"ghost-item": {Value: "yes"},
	}, nil, ResponseContext{})

	assert.Empty(t, responses)
}

func TestSnapshotResponses_FrozenAgainstTemplateEdits(t *testing.T) {
	template := inspectionTemplate()

	responses := SnapshotResponses(template, map[string]RawResponse{
		"pressure": {Value: "100"},
	}, nil, ResponseContext{})

	// Mutate the template after snapshotting.
	_, item := template.FindItem("pressure")
	*item.Config.Min = 200
	item.Config.ErrorValues = append(item.Config.ErrorValues, "100")
	item.Description = "renamed"

	snapshot := responses["pressure"].Snapshot
	assert.Equal(t, "Tire pressure (psi)", snapshot.Description)
	assert.Equal(t, 80.0, *snapshot.Config.Min)
	assert.Empty(t, snapshot.Config.ErrorValues)
}

func TestSnapshotResponses_EditedFlag(t *testing.T) {
	template := inspectionTemplate()

	previous := SnapshotResponses(template, map[string]RawResponse{
		"seatbelt": {Value: "yes"},
		"horn":     {Value: "yes"},
	}, nil, ResponseContext{})

	updated := SnapshotResponses(template, map[string]RawResponse{
		"seatbelt": {Value: "no"},
		"horn":     {Value: "yes"},
	}, previous, ResponseContext{})

	assert.True(t, updated["seatbelt"].Metadata.Edited)
	require.NotNil(t, updated["seatbelt"].Metadata.EditedAt)
	assert.False(t, updated["horn"].Metadata.Edited)
}
