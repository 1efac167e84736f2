package cmd

import (
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/dukex/fleetcheck/pkg/channels/gochannel"
	"github.com/dukex/fleetcheck/pkg/eventbus"
)

// NewEventBus creates the in-process event bus every binary shares.
func NewEventBus(logger *slog.Logger) eventbus.EventBus {
	pub, sub := gochannel.CreateChannel(watermill.NewSlogLogger(logger))

	return eventbus.NewWatermillEventBus(pub, sub)
}
