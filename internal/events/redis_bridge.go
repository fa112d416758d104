package events

import (
	"context"

	"go.uber.org/zap"
)

// Broadcaster fans events out to an external channel.
type Broadcaster interface {
	Broadcast(ctx context.Context, payload any) error
}

// BridgeToBroadcaster mirrors every dispatched event onto the broadcaster,
// typically a redis pub/sub channel. Broadcast errors are swallowed by the
// dispatcher's handler logging; allocation flow is never affected.
func BridgeToBroadcaster(dispatcher Dispatcher, broadcaster Broadcaster, logger *zap.Logger) {
	if dispatcher == nil || broadcaster == nil {
		return
	}
	handler := func(ctx context.Context, event Event) error {
		if err := broadcaster.Broadcast(ctx, event); err != nil {
			logger.Debug("event broadcast skipped", zap.String("event_id", event.ID), zap.Error(err))
		}
		return nil
	}
	for _, eventType := range []EventType{EventSpaceOccupied, EventSpaceVacated, EventSpaceReserved, EventPaymentProcessed} {
		dispatcher.Subscribe(eventType, handler)
	}
}
