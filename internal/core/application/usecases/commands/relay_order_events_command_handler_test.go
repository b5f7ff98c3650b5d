package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hatod/internal/core/application/usecases/commands"
	"hatod/internal/core/domain/model/kernel"
	"hatod/internal/core/ports"
	"hatod/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeOutboxEvent(id int64, name string) ports.PublishedEvent {
	return ports.PublishedEvent{
		EventID:    id,
		OrderID:    kernel.NewUUID(),
		Name:       name,
		Payload:    []byte(`{}`),
		OccurredAt: time.Now().UTC(),
	}
}

func TestNewRelayOrderEventsCommand(t *testing.T) {
	t.Run("valid batch size", func(t *testing.T) {
		cmd, err := commands.NewRelayOrderEventsCommand(50)

		require.NoError(t, err)
		assert.Equal(t, 50, cmd.BatchSize())
		assert.NoError(t, cmd.Validate())
	})

	t.Run("zero batch size", func(t *testing.T) {
		_, err := commands.NewRelayOrderEventsCommand(0)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("uninitialized command", func(t *testing.T) {
		var cmd commands.RelayOrderEventsCommand

		assert.ErrorIs(t, cmd.Validate(), commands.ErrRelayOrderEventsCommandIsNotConstructed)
	})
}

func TestRelayOrderEventsCommandHandler_Handle_PublishesInOrder(t *testing.T) {
	ctx := context.Background()

	first := makeOutboxEvent(1, "order.created")
	second := makeOutboxEvent(2, "order.statusChanged")

	orderRepo := new(MockOrderRepository)
	orderRepo.On("GetUnpublishedEvents", ctx, 10).
		Return([]ports.PublishedEvent{first, second}, nil)
	orderRepo.On("MarkEventsPublished", ctx, []int64{1, 2}).Return(nil)

	publisher := new(MockEventPublisher)
	publisher.On("Publish", ctx, first).Return(nil)
	publisher.On("Publish", ctx, second).Return(nil)

	handler := commands.NewRelayOrderEventsCommandHandler(orderRepo, publisher)
	cmd, err := commands.NewRelayOrderEventsCommand(10)
	require.NoError(t, err)

	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	orderRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestRelayOrderEventsCommandHandler_Handle_NothingToRelay(t *testing.T) {
	ctx := context.Background()

	orderRepo := new(MockOrderRepository)
	orderRepo.On("GetUnpublishedEvents", ctx, 10).Return([]ports.PublishedEvent{}, nil)
	orderRepo.On("MarkEventsPublished", ctx, []int64{}).Return(nil)

	publisher := new(MockEventPublisher)

	handler := commands.NewRelayOrderEventsCommandHandler(orderRepo, publisher)
	cmd, err := commands.NewRelayOrderEventsCommand(10)
	require.NoError(t, err)

	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	publisher.AssertNotCalled(t, "Publish")
}

func TestRelayOrderEventsCommandHandler_Handle_PublisherFailureKeepsRemainder(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("consumer unreachable")

	first := makeOutboxEvent(1, "order.created")
	second := makeOutboxEvent(2, "order.assigned")
	third := makeOutboxEvent(3, "order.statusChanged")

	orderRepo := new(MockOrderRepository)
	orderRepo.On("GetUnpublishedEvents", ctx, 10).
		Return([]ports.PublishedEvent{first, second, third}, nil)
	// Only the event published before the failure is acknowledged.
	orderRepo.On("MarkEventsPublished", ctx, []int64{1}).Return(nil)

	publisher := new(MockEventPublisher)
	publisher.On("Publish", ctx, first).Return(nil)
	publisher.On("Publish", ctx, second).Return(boom)

	handler := commands.NewRelayOrderEventsCommandHandler(orderRepo, publisher)
	cmd, err := commands.NewRelayOrderEventsCommand(10)
	require.NoError(t, err)

	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, boom)
	publisher.AssertNotCalled(t, "Publish", ctx, third)
	orderRepo.AssertExpectations(t)
}
