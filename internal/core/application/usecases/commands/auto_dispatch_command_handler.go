package commands

import (
	"context"
	"errors"
	"time"

	"hatod/internal/core/domain/model/order"
	"hatod/internal/core/domain/services"
	"hatod/internal/core/ports"
	"hatod/internal/pkg/errs"
)

// ErrNoOrderFound is returned when no order is waiting for dispatch.
var ErrNoOrderFound = errors.New("no order found")

// AutoDispatchCommandHandler orchestrates automatic dispatch.
// Finds the oldest ready unassigned order, ranks the available riders by
// proximity to the merchant (falling back to least-recently-assigned), and
// binds the best candidate through the shared assignment path.
type AutoDispatchCommandHandler struct {
	uowFactory  DispatchUoWFactory
	geo         ports.GeoGateway
	coordinator services.DispatchCoordinator
}

// NewAutoDispatchCommandHandler creates a handler for automatic dispatch.
func NewAutoDispatchCommandHandler(
	uowFactory DispatchUoWFactory,
	geo ports.GeoGateway,
	coordinator services.DispatchCoordinator,
) AutoDispatchCommandHandler {
	return AutoDispatchCommandHandler{
		uowFactory:  uowFactory,
		geo:         geo,
		coordinator: coordinator,
	}
}

// Handle processes one dispatch round.
// Returns ErrNoOrderFound when nothing is waiting and
// services.ErrNoRiderAvailable when no rider is eligible; both are normal
// idle outcomes for the background job, not failures. An assignment conflict
// is also benign here: it means someone claimed the order first.
func (h AutoDispatchCommandHandler) Handle(ctx context.Context, cmd AutoDispatchCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().GetFirstReadyUnassigned(ctx)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrNoOrderFound
	}
	if err != nil {
		return err
	}

	riders, err := uow.RiderRepository().GetAllAvailable(ctx)
	if err != nil {
		return err
	}

	pickup, err := h.geo.MerchantLocation(ctx, aggregate.MerchantID())
	if err != nil {
		return err
	}

	candidate, err := h.coordinator.SelectRider(aggregate, pickup, riders)
	if err != nil {
		return err
	}

	if err = assignOrder(ctx, uow, aggregate, candidate, order.DispatcherActor(), time.Now().UTC()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
