package commands

import (
	"context"
	"errors"

	"hatod/internal/core/domain/model/kernel"
	"hatod/internal/pkg/guard"
)

var ErrClearCartCommandIsNotConstructed = errors.New(
	"ClearCartCommand must be created via NewClearCartCommand constructor",
)

// ClearCartCommand represents an explicit request to empty a customer's draft.
// The checkout flow clears drafts itself, inside the checkout transaction;
// this command is the customer-initiated variant.
type ClearCartCommand struct {
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewClearCartCommand creates a command to empty a customer's draft.
func NewClearCartCommand(customerID kernel.UUID) (ClearCartCommand, error) {
	if err := customerID.Validate(); err != nil {
		return ClearCartCommand{}, err
	}

	return ClearCartCommand{
		customerID: customerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ClearCartCommand) Validate() error {
	return c.guard.Validate(ErrClearCartCommandIsNotConstructed)
}

// CustomerID returns the cart owner's identifier.
func (c ClearCartCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// ClearCartCommandHandler handles explicit cart clearing.
type ClearCartCommandHandler struct {
	uowFactory CartUoWFactory
}

// NewClearCartCommandHandler creates a handler for cart clearing.
func NewClearCartCommandHandler(uowFactory CartUoWFactory) ClearCartCommandHandler {
	return ClearCartCommandHandler{uowFactory: uowFactory}
}

// Handle processes the clear. Clearing an already empty draft is a no-op.
func (h ClearCartCommandHandler) Handle(ctx context.Context, cmd ClearCartCommand) error {
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

	if err := uow.CartRepository().Clear(ctx, cmd.CustomerID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
