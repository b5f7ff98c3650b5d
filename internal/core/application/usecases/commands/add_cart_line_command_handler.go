package commands

import (
	"context"
	"time"

	"hatod/internal/core/domain/model/cart"
	"hatod/internal/core/domain/model/kernel"
	"hatod/internal/core/domain/services"
	"hatod/internal/core/ports"
)

// AddCartLineCommandHandler handles the business logic for adding cart lines.
// Looks the item up in the catalog, prices the selection, and merges the
// addition into the customer's draft.
type AddCartLineCommandHandler struct {
	uowFactory CartUoWFactory
	catalog    ports.CatalogGateway
	pricing    services.PricingEngine
}

// NewAddCartLineCommandHandler creates a handler for cart line additions.
func NewAddCartLineCommandHandler(
	uowFactory CartUoWFactory,
	catalog ports.CatalogGateway,
	pricing services.PricingEngine,
) AddCartLineCommandHandler {
	return AddCartLineCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		pricing:    pricing,
	}
}

// Handle processes the add command.
// The catalog snapshot and the resolved option surcharges are captured on the
// line at this moment and never re-read, protecting the order against price
// drift after purchase. Fails with services.ErrInvalidSelection when the
// picks do not satisfy the item's option groups.
func (h AddCartLineCommandHandler) Handle(ctx context.Context, cmd AddCartLineCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	item, err := h.catalog.GetMenuItem(ctx, cmd.ItemID())
	if err != nil {
		return err
	}

	_, chosen, err := h.pricing.LineTotal(item, cmd.Quantity(), cmd.Picks())
	if err != nil {
		return err
	}

	line, err := cart.NewLine(
		kernel.NewUUID(),
		item.ID(),
		item.MerchantID(),
		item.Name(),
		cmd.Quantity(),
		item.UnitPrice(),
		chosen,
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cartRepo := uow.CartRepository()
	draft, err := cartRepo.Get(ctx, cmd.CustomerID())
	if err != nil {
		return err
	}

	if err = draft.AddLine(line, time.Now().UTC()); err != nil {
		return err
	}

	if err = cartRepo.Save(ctx, draft); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
