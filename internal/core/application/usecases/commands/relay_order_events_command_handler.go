package commands

import (
	"context"

	"hatod/internal/core/ports"
)

// RelayOrderEventsCommandHandler drains the transactional outbox.
// Events are published in EventID order and marked as relayed only after
// every consumer accepted them, which gives at-least-once delivery: a crash
// between publish and mark redelivers the batch on the next round.
type RelayOrderEventsCommandHandler struct {
	orderRepo ports.OrderRepository
	publisher ports.EventPublisher
}

// NewRelayOrderEventsCommandHandler creates a handler that relays outbox
// events to the given publisher.
func NewRelayOrderEventsCommandHandler(
	orderRepo ports.OrderRepository,
	publisher ports.EventPublisher,
) RelayOrderEventsCommandHandler {
	return RelayOrderEventsCommandHandler{
		orderRepo: orderRepo,
		publisher: publisher,
	}
}

// Handle relays one batch of unpublished events.
// A publisher failure stops the batch at the failing event; everything
// already published is marked so it is not delivered twice on the next
// round, and the failing event is retried then.
func (h RelayOrderEventsCommandHandler) Handle(ctx context.Context, cmd RelayOrderEventsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	events, err := h.orderRepo.GetUnpublishedEvents(ctx, cmd.BatchSize())
	if err != nil {
		return err
	}

	published := make([]int64, 0, len(events))
	var publishErr error
	for _, event := range events {
		if publishErr = h.publisher.Publish(ctx, event); publishErr != nil {
			break
		}
		published = append(published, event.EventID)
	}

	if err = h.orderRepo.MarkEventsPublished(ctx, published); err != nil {
		return err
	}

	return publishErr
}
