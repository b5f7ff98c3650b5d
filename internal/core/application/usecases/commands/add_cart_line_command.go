package commands

import (
	"errors"

	"hatod/internal/core/domain/model/kernel"
	"hatod/internal/core/domain/model/product"
	"hatod/internal/pkg/guard"
)

var (
	ErrAddCartLineCommandIsNotConstructed = errors.New(
		"AddCartLineCommand must be created via NewAddCartLineCommand constructor",
	)
	ErrQuantityIsInvalid = errors.New("quantity must be greater than 0")
)

// AddCartLineCommand represents a request to add a menu item to a customer's
// cart draft. The option picks are resolved and validated against the item's
// option groups by the pricing engine; an addition identical in item and
// options to an existing line merges into it instead of creating a new line.
//
// Example:
//
//	cmd, err := NewAddCartLineCommand(customerID, itemID, 2, product.OptionPicks{
//	    "Size": {"Large"},
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid cart input: %w", err)
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to add cart line: %w", err)
//	}
type AddCartLineCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID
	itemID     kernel.UUID
	quantity   int
	picks      product.OptionPicks

	guard guard.ConstructorGuard
}

// NewAddCartLineCommand creates a command to add a cart line.
// Validates that both identifiers are valid and the quantity is positive.
func NewAddCartLineCommand(
	customerID kernel.UUID,
	itemID kernel.UUID,
	quantity int,
	picks product.OptionPicks,
) (AddCartLineCommand, error) {
	cmd := AddCartLineCommand{
		picks: picks,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setItemID(itemID),
		cmd.setQuantity(quantity),
	); err != nil {
		return AddCartLineCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddCartLineCommand) Validate() error {
	return c.guard.Validate(ErrAddCartLineCommandIsNotConstructed)
}

// CustomerID returns the cart owner's identifier.
func (c AddCartLineCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// ItemID returns the catalog item to add.
func (c AddCartLineCommand) ItemID() kernel.UUID {
	return c.itemID
}

// Quantity returns the number of units to add.
func (c AddCartLineCommand) Quantity() int {
	return c.quantity
}

// Picks returns the submitted option selection.
func (c AddCartLineCommand) Picks() product.OptionPicks {
	return c.picks
}

func (c *AddCartLineCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *AddCartLineCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}

	c.itemID = itemID
	return nil
}

func (c *AddCartLineCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return ErrQuantityIsInvalid
	}

	c.quantity = quantity
	return nil
}
