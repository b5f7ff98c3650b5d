// Package product provides value objects describing catalog menu items as
// consumed by the cart and pricing logic. The catalog itself (CRUD, menus,
// availability) is an external collaborator; this package only models the
// snapshot of an item taken at cart add-time: unit price, option groups and
// their surcharges. Snapshots are never re-read from a live catalog after a
// line is priced, which protects placed orders against price drift.
package product

import (
	"errors"

	"hatod/internal/core/domain/model/kernel"
	"hatod/internal/pkg/errs"
	"hatod/internal/pkg/guard"
)

// Domain errors for menu item construction.
var (
	// ErrMenuItemIsNotConstructed is returned when using an improperly initialized MenuItem.
	ErrMenuItemIsNotConstructed = errors.New("MenuItem must be created via NewMenuItem constructor")
	// ErrItemNameIsRequired is returned when a menu item has no name.
	ErrItemNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrUnitPriceIsNegative is returned when a menu item carries a negative unit price.
	ErrUnitPriceIsNegative = errs.NewValueIsInvalidError("unitPrice")
)

// MenuItem is the priced snapshot of a catalog item. It carries everything
// the pricing engine needs to total a cart line: the base unit price and the
// option groups with per-choice surcharges.
type MenuItem struct {
	id         kernel.UUID
	merchantID kernel.UUID
	name       string
	unitPrice  kernel.Money
	groups     []OptionGroup

	guard guard.ConstructorGuard
}

// NewMenuItem creates a MenuItem snapshot.
// The id and merchantID must be valid, the name non-empty and the unit price
// non-negative. Option groups may be empty for items without variants.
func NewMenuItem(
	id kernel.UUID,
	merchantID kernel.UUID,
	name string,
	unitPrice kernel.Money,
	groups []OptionGroup,
) (MenuItem, error) {
	if err := errors.Join(id.Validate(), merchantID.Validate()); err != nil {
		return MenuItem{}, err
	}
	if name == "" {
		return MenuItem{}, ErrItemNameIsRequired
	}
	if unitPrice.IsNegative() {
		return MenuItem{}, ErrUnitPriceIsNegative
	}

	for _, g := range groups {
		if err := g.Validate(); err != nil {
			return MenuItem{}, err
		}
	}

	return MenuItem{
		id:         id,
		merchantID: merchantID,
		name:       name,
		unitPrice:  unitPrice,
		groups:     groups,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate checks the MenuItem was created through NewMenuItem.
func (m MenuItem) Validate() error {
	return m.guard.Validate(ErrMenuItemIsNotConstructed)
}

// ID returns the catalog item identifier.
func (m MenuItem) ID() kernel.UUID {
	return m.id
}

// MerchantID returns the owning merchant's identifier.
func (m MenuItem) MerchantID() kernel.UUID {
	return m.merchantID
}

// Name returns the item's display name.
func (m MenuItem) Name() string {
	return m.name
}

// UnitPrice returns the base price before option surcharges.
func (m MenuItem) UnitPrice() kernel.Money {
	return m.unitPrice
}

// OptionGroups returns the item's option groups.
func (m MenuItem) OptionGroups() []OptionGroup {
	return m.groups
}
