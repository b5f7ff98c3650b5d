// Package cart implements the customer's draft order: the pre-checkout cart
// that merges identical (item, option-set) additions and recomputes totals on
// every mutation. A draft is scoped to one customer and is not contended
// across actors, so it only needs ordinary per-customer mutual exclusion.
package cart

import (
	"errors"
	"fmt"
	"time"

	"hatod/internal/core/domain/model/kernel"
	"hatod/internal/core/domain/model/product"
	"hatod/internal/pkg/errs"
	"hatod/internal/pkg/guard"
)

// Domain errors for cart operations.
var (
	// ErrDraftIsNotConstructed is returned when using an improperly initialized Draft.
	ErrDraftIsNotConstructed = errors.New("Draft must be created via NewDraft or RestoreDraft constructor")
	// ErrDraftIsEmpty is returned when checkout is attempted on an empty draft.
	ErrDraftIsEmpty = errors.New("cart draft is empty")
	// ErrDraftHasMultipleMerchants is returned when a draft mixes items from
	// different merchants; an order belongs to exactly one merchant.
	ErrDraftHasMultipleMerchants = errors.New("cart draft contains items from multiple merchants")
)

// Line is one draft cart line. Its identity inside the draft is the pair
// (catalog item, normalized option key): two additions with the same pair
// merge by summing quantity, additions differing in any option create a new
// line. The price snapshot is taken when the line is first added.
type Line struct {
	id            kernel.UUID
	catalogItemID kernel.UUID
	merchantID    kernel.UUID
	name          string
	quantity      int
	unitPrice     kernel.Money
	options       []product.ChosenOption
	optionKey     string

	guard guard.ConstructorGuard
}

// NewLine creates a draft line with a fresh price snapshot.
func NewLine(
	id kernel.UUID,
	catalogItemID kernel.UUID,
	merchantID kernel.UUID,
	name string,
	quantity int,
	unitPrice kernel.Money,
	options []product.ChosenOption,
) (*Line, error) {
	if err := errors.Join(id.Validate(), catalogItemID.Validate(), merchantID.Validate()); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("line name")
	}
	if quantity <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if unitPrice.IsNegative() {
		return nil, errs.NewValueIsInvalidError("unitPrice")
	}

	return &Line{
		id:            id,
		catalogItemID: catalogItemID,
		merchantID:    merchantID,
		name:          name,
		quantity:      quantity,
		unitPrice:     unitPrice,
		options:       options,
		optionKey:     product.NormalizedKey(options),
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate checks the Line was created through NewLine.
func (l *Line) Validate() error {
	if l == nil {
		return errs.NewValueIsRequiredError("line")
	}
	return l.guard.Validate(errs.NewValueIsRequiredError("line must be created via NewLine"))
}

// ID returns the line identifier.
func (l *Line) ID() kernel.UUID { return l.id }

// CatalogItemID returns the referenced catalog item.
func (l *Line) CatalogItemID() kernel.UUID { return l.catalogItemID }

// MerchantID returns the merchant owning the catalog item.
func (l *Line) MerchantID() kernel.UUID { return l.merchantID }

// Name returns the item name captured at add-time.
func (l *Line) Name() string { return l.name }

// Quantity returns the current quantity.
func (l *Line) Quantity() int { return l.quantity }

// UnitPrice returns the unit price snapshotted at add-time.
func (l *Line) UnitPrice() kernel.Money { return l.unitPrice }

// Options returns the resolved option selection.
func (l *Line) Options() []product.ChosenOption { return l.options }

// OptionKey returns the normalized option key used for merging.
func (l *Line) OptionKey() string { return l.optionKey }

// Total returns (unitPrice + sum of option surcharges) × quantity.
// Option surcharges are always included; a unit-price-only total would
// undercharge surcharged lines.
func (l *Line) Total() kernel.Money {
	return l.unitPrice.Add(product.SurchargeSum(l.options)).MulInt(l.quantity)
}

// Draft is a customer's in-progress cart. It enforces the merge invariant:
// no two lines share the same (catalogItemID, optionKey) pair.
type Draft struct {
	customerID kernel.UUID
	lines      []*Line
	updatedAt  time.Time

	guard guard.ConstructorGuard
}

// NewDraft creates an empty draft for a customer.
func NewDraft(customerID kernel.UUID, now time.Time) (*Draft, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}

	return &Draft{
		customerID: customerID,
		updatedAt:  now,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// RestoreDraft reconstructs a draft from persistence. It re-checks the merge
// invariant so duplicate rows cannot re-enter the domain.
func RestoreDraft(customerID kernel.UUID, lines []*Line, updatedAt time.Time) (*Draft, error) {
	draft, err := NewDraft(customerID, updatedAt)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		if err = line.Validate(); err != nil {
			return nil, err
		}
		key := line.catalogItemID.String() + "|" + line.optionKey
		if _, dup := seen[key]; dup {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"draft lines", fmt.Errorf("duplicate line for item %s", line.catalogItemID))
		}
		seen[key] = struct{}{}
	}

	draft.lines = lines
	return draft, nil
}

// Validate checks the Draft was created through a constructor.
func (d *Draft) Validate() error {
	if d == nil {
		return ErrDraftIsNotConstructed
	}
	return d.guard.Validate(ErrDraftIsNotConstructed)
}

// CustomerID returns the owning customer.
func (d *Draft) CustomerID() kernel.UUID { return d.customerID }

// Lines returns the draft's lines.
func (d *Draft) Lines() []*Line { return d.lines }

// UpdatedAt returns the last mutation timestamp.
func (d *Draft) UpdatedAt() time.Time { return d.updatedAt }

// IsEmpty reports whether the draft has no lines.
func (d *Draft) IsEmpty() bool { return len(d.lines) == 0 }

// Subtotal returns the sum of line totals.
func (d *Draft) Subtotal() kernel.Money {
	var sum kernel.Money
	for _, line := range d.lines {
		sum = sum.Add(line.Total())
	}
	return sum
}

// AddLine merges the addition into an existing line with the same
// (catalog item, normalized option key), summing quantities; otherwise
// it appends line as a new entry. The given line's snapshot is kept as-is:
// prices are captured at first add and never refreshed here.
func (d *Draft) AddLine(line *Line, now time.Time) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if err := line.Validate(); err != nil {
		return err
	}

	for _, existing := range d.lines {
		if existing.catalogItemID.IsEqual(line.catalogItemID) && existing.optionKey == line.optionKey {
			existing.quantity += line.quantity
			d.updatedAt = now
			return nil
		}
	}

	d.lines = append(d.lines, line)
	d.updatedAt = now
	return nil
}

// UpdateQuantity sets a line's quantity. A quantity of zero or less removes
// the line. Returns ObjectNotFound when the line does not exist.
func (d *Draft) UpdateQuantity(lineID kernel.UUID, quantity int, now time.Time) error {
	if err := d.Validate(); err != nil {
		return err
	}

	for i, line := range d.lines {
		if line.id.IsEqual(lineID) {
			if quantity <= 0 {
				d.lines = append(d.lines[:i], d.lines[i+1:]...)
			} else {
				line.quantity = quantity
			}
			d.updatedAt = now
			return nil
		}
	}

	return errs.NewObjectNotFoundError("lineId", lineID.String())
}

// RemoveLine deletes a line from the draft.
// Returns ObjectNotFound when the line does not exist.
func (d *Draft) RemoveLine(lineID kernel.UUID, now time.Time) error {
	return d.UpdateQuantity(lineID, 0, now)
}

// Clear removes every line. Checkout invokes this only after the order has
// been durably created from the draft.
func (d *Draft) Clear(now time.Time) {
	d.lines = nil
	d.updatedAt = now
}

// MerchantID returns the single merchant all lines belong to.
// Fails with ErrDraftIsEmpty on an empty draft and with
// ErrDraftHasMultipleMerchants when lines span merchants.
func (d *Draft) MerchantID() (kernel.UUID, error) {
	if d.IsEmpty() {
		return kernel.UUID{}, ErrDraftIsEmpty
	}

	merchantID := d.lines[0].merchantID
	for _, line := range d.lines[1:] {
		if !line.merchantID.IsEqual(merchantID) {
			return kernel.UUID{}, ErrDraftHasMultipleMerchants
		}
	}

	return merchantID, nil
}
