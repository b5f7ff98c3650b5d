package commands

import (
	"context"
	"time"

	"hatod/internal/core/domain/model/cart"
	"hatod/internal/core/domain/model/kernel"
	"hatod/internal/core/domain/model/order"
	"hatod/internal/core/domain/services"
	"hatod/internal/core/ports"
)

// CheckoutCommandHandler turns a draft into a PENDING order.
//
// The draft must be non-empty and single-merchant. Every draft line is
// snapshotted into an immutable order line, the delivery fee is estimated
// from the merchant's and address's coordinates, and the order creation plus
// draft clearing commit in one transaction: if order creation fails the
// draft is left untouched.
type CheckoutCommandHandler struct {
	uowFactory  CheckoutUoWFactory
	geo         ports.GeoGateway
	pricing     services.PricingEngine
	feeTable    services.FeeTable
	platformFee kernel.Money
}

// NewCheckoutCommandHandler creates a handler for checkout operations.
// The fee table and platform fee come from configuration.
func NewCheckoutCommandHandler(
	uowFactory CheckoutUoWFactory,
	geo ports.GeoGateway,
	pricing services.PricingEngine,
	feeTable services.FeeTable,
	platformFee kernel.Money,
) CheckoutCommandHandler {
	return CheckoutCommandHandler{
		uowFactory:  uowFactory,
		geo:         geo,
		pricing:     pricing,
		feeTable:    feeTable,
		platformFee: platformFee,
	}
}

// Handle processes the checkout command.
// Fails with cart.ErrDraftIsEmpty on an empty draft and with
// cart.ErrDraftHasMultipleMerchants when the draft spans merchants.
func (h CheckoutCommandHandler) Handle(ctx context.Context, cmd CheckoutCommand) error {
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

	cartRepo := uow.CartRepository()
	draft, err := cartRepo.Get(ctx, cmd.CustomerID())
	if err != nil {
		return err
	}

	merchantID, err := draft.MerchantID()
	if err != nil {
		return err
	}

	origin, err := h.geo.MerchantLocation(ctx, merchantID)
	if err != nil {
		return err
	}
	destination, err := h.geo.AddressLocation(ctx, cmd.DeliveryAddress())
	if err != nil {
		return err
	}

	deliveryFee := h.pricing.EstimateDeliveryFee(origin, destination, h.feeTable)

	lines, err := snapshotLines(draft)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		order.NewOrderNumber(now),
		cmd.CustomerID(),
		merchantID,
		lines,
		deliveryFee,
		h.platformFee,
		now,
	)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	if err = cartRepo.Clear(ctx, cmd.CustomerID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// snapshotLines freezes the draft's lines into immutable order lines.
func snapshotLines(draft *cart.Draft) ([]order.Line, error) {
	lines := make([]order.Line, 0, len(draft.Lines()))
	for _, draftLine := range draft.Lines() {
		line, err := order.NewLine(
			kernel.NewUUID(),
			draftLine.CatalogItemID(),
			draftLine.Name(),
			draftLine.Quantity(),
			draftLine.UnitPrice(),
			draftLine.Options(),
		)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}
