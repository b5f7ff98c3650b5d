package queries

import (
	"errors"
	"time"

	"hatod/internal/core/domain/model/kernel"
	"hatod/internal/core/domain/model/product"
	"hatod/internal/pkg/guard"
)

var ErrGetCartQueryIsNotConstructed = errors.New(
	"GetCartQuery must be created via NewGetCartQuery constructor",
)

// GetCartQuery retrieves a customer's draft cart with line totals.
// A customer without a stored draft gets an empty cart, not an error.
type GetCartQuery struct {
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCartQuery creates a query for one customer's draft.
func NewGetCartQuery(customerID kernel.UUID) (GetCartQuery, error) {
	if err := customerID.Validate(); err != nil {
		return GetCartQuery{}, err
	}

	return GetCartQuery{
		customerID: customerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCartQuery) Validate() error {
	return q.guard.Validate(ErrGetCartQueryIsNotConstructed)
}

// CustomerID returns the draft owner.
func (q GetCartQuery) CustomerID() kernel.UUID {
	return q.customerID
}

// GetCartQueryLineResponse is one draft line with its surcharge-inclusive
// total.
type GetCartQueryLineResponse struct {
	ID            kernel.UUID
	CatalogItemID kernel.UUID
	MerchantID    kernel.UUID
	Name          string
	Quantity      int
	UnitPrice     kernel.Money
	Options       []product.ChosenOption
	LineTotal     kernel.Money
}

// GetCartQueryResponse is the read model for one draft cart.
type GetCartQueryResponse struct {
	CustomerID kernel.UUID
	Lines      []GetCartQueryLineResponse
	Subtotal   kernel.Money
	UpdatedAt  *time.Time
}
