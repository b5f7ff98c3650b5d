package order

import (
	"errors"
	"fmt"

	"hatod/internal/core/domain/model/kernel"
	"hatod/internal/core/domain/model/product"
	"hatod/internal/pkg/errs"
	"hatod/internal/pkg/guard"
)

// ErrLineIsNotConstructed is returned when using an improperly initialized Line.
var ErrLineIsNotConstructed = errors.New("Line must be created via NewLine constructor")

// Line is one priced item of an order. It captures a snapshot of the unit
// price and selected option surcharges at add-time; the snapshot is never
// recomputed from a live catalog afterwards, so later menu price changes
// cannot drift a placed order's totals.
//
// A Line is owned exclusively by its Order and is immutable once the order
// leaves the cart.
type Line struct {
	id            kernel.UUID
	catalogItemID kernel.UUID
	name          string
	quantity      int
	unitPrice     kernel.Money
	options       []product.ChosenOption

	guard guard.ConstructorGuard
}

// NewLine creates an order line from a priced snapshot.
// Quantity must be positive and the unit price non-negative.
func NewLine(
	id kernel.UUID,
	catalogItemID kernel.UUID,
	name string,
	quantity int,
	unitPrice kernel.Money,
	options []product.ChosenOption,
) (Line, error) {
	if err := errors.Join(id.Validate(), catalogItemID.Validate()); err != nil {
		return Line{}, err
	}
	if name == "" {
		return Line{}, errs.NewValueIsRequiredError("line name")
	}
	if quantity <= 0 {
		return Line{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if unitPrice.IsNegative() {
		return Line{}, errs.NewValueIsInvalidError("unitPrice")
	}

	return Line{
		id:            id,
		catalogItemID: catalogItemID,
		name:          name,
		quantity:      quantity,
		unitPrice:     unitPrice,
		options:       options,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate checks the Line was created through NewLine.
func (l Line) Validate() error {
	return l.guard.Validate(ErrLineIsNotConstructed)
}

// ID returns the line identifier.
func (l Line) ID() kernel.UUID {
	return l.id
}

// CatalogItemID returns the referenced catalog item.
func (l Line) CatalogItemID() kernel.UUID {
	return l.catalogItemID
}

// Name returns the item name captured at add-time.
func (l Line) Name() string {
	return l.name
}

// Quantity returns the ordered quantity.
func (l Line) Quantity() int {
	return l.quantity
}

// UnitPrice returns the base unit price captured at add-time.
func (l Line) UnitPrice() kernel.Money {
	return l.unitPrice
}

// Options returns the resolved option selection captured at add-time.
func (l Line) Options() []product.ChosenOption {
	return l.options
}

// Total returns (unitPrice + sum of option surcharges) × quantity.
func (l Line) Total() kernel.Money {
	return l.unitPrice.Add(product.SurchargeSum(l.options)).MulInt(l.quantity)
}
