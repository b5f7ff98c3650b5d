package commands

import (
	"errors"

	"hatod/internal/core/domain/model/kernel"
	"hatod/internal/pkg/guard"
)

var ErrUpdateCartLineQuantityCommandIsNotConstructed = errors.New(
	"UpdateCartLineQuantityCommand must be created via NewUpdateCartLineQuantityCommand constructor",
)

// UpdateCartLineQuantityCommand represents a request to change a draft line's
// quantity. A quantity of zero or less removes the line, so the quantity is
// deliberately not validated for positivity here.
type UpdateCartLineQuantityCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID
	lineID     kernel.UUID
	quantity   int

	guard guard.ConstructorGuard
}

// NewUpdateCartLineQuantityCommand creates a command to change a line's quantity.
func NewUpdateCartLineQuantityCommand(
	customerID kernel.UUID,
	lineID kernel.UUID,
	quantity int,
) (UpdateCartLineQuantityCommand, error) {
	if err := errors.Join(customerID.Validate(), lineID.Validate()); err != nil {
		return UpdateCartLineQuantityCommand{}, err
	}

	return UpdateCartLineQuantityCommand{
		customerID: customerID,
		lineID:     lineID,
		quantity:   quantity,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateCartLineQuantityCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCartLineQuantityCommandIsNotConstructed)
}

// CustomerID returns the cart owner's identifier.
func (c UpdateCartLineQuantityCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// LineID returns the draft line to update.
func (c UpdateCartLineQuantityCommand) LineID() kernel.UUID {
	return c.lineID
}

// Quantity returns the requested quantity; zero or less removes the line.
func (c UpdateCartLineQuantityCommand) Quantity() int {
	return c.quantity
}
