package queries

import (
	"errors"
	"time"

	"hatod/internal/core/domain/model/kernel"
	"hatod/internal/pkg/guard"
)

var ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
	"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor",
)

// GetActiveOrdersQuery retrieves all orders that are still in flight.
// Returns every order that has not reached DELIVERED or CANCELLED, for
// operations dashboards and dispatch monitoring.
//
// Example:
//
//	query := NewGetActiveOrdersQuery()
//	handler := NewGetActiveOrdersQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get active orders: %w", err)
//	}
//
//	fmt.Printf("%d orders in flight\n", len(orders))
type GetActiveOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveOrdersQuery creates a query to retrieve in-flight orders.
// This is a parameterless query that fetches all non-terminal orders.
func NewGetActiveOrdersQuery() GetActiveOrdersQuery {
	return GetActiveOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetActiveOrdersQueryIsNotConstructed if validation fails.
func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}

// GetActiveOrdersQueryResponse is the read model for one in-flight order.
// RiderID is nil until dispatch binds a rider.
type GetActiveOrdersQueryResponse struct {
	ID         kernel.UUID
	Number     string
	CustomerID kernel.UUID
	MerchantID kernel.UUID
	RiderID    *kernel.UUID
	Status     string
	Total      kernel.Money
	CreatedAt  time.Time
}
