package commands

import (
	"errors"

	"hatod/internal/core/domain/model/kernel"
	"hatod/internal/pkg/guard"
)

var (
	ErrCheckoutCommandIsNotConstructed = errors.New(
		"CheckoutCommand must be created via NewCheckoutCommand constructor",
	)
	ErrDeliveryAddressIsRequired = errors.New("delivery address is required")
)

// CheckoutCommand represents a request to turn a customer's draft into an
// order. The caller supplies the new order's identity so it can reference
// the order immediately after the command succeeds.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCheckoutCommand(orderID, customerID, "12 Mabini St, Makati")
//	if err != nil {
//	    return fmt.Errorf("invalid checkout data: %w", err)
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("checkout failed: %w", err)
//	}
//	fmt.Printf("Order %s placed", orderID)
type CheckoutCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	customerID      kernel.UUID
	deliveryAddress string

	guard guard.ConstructorGuard
}

// NewCheckoutCommand creates a command to check a draft out into an order.
func NewCheckoutCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	deliveryAddress string,
) (CheckoutCommand, error) {
	cmd := CheckoutCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setDeliveryAddress(deliveryAddress),
	); err != nil {
		return CheckoutCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CheckoutCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutCommandIsNotConstructed)
}

// OrderID returns the identity the new order will carry.
func (c CheckoutCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the cart owner's identifier.
func (c CheckoutCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// DeliveryAddress returns the destination address.
func (c CheckoutCommand) DeliveryAddress() string {
	return c.deliveryAddress
}

func (c *CheckoutCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CheckoutCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *CheckoutCommand) setDeliveryAddress(address string) error {
	if address == "" {
		return ErrDeliveryAddressIsRequired
	}

	c.deliveryAddress = address
	return nil
}
