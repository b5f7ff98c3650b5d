package queries

import (
	"errors"
	"time"

	"hatod/internal/core/domain/model/kernel"
	"hatod/internal/pkg/guard"
)

var ErrListDispatchCandidatesQueryIsNotConstructed = errors.New(
	"ListDispatchCandidatesQuery must be created via NewListDispatchCandidatesQuery constructor",
)

// ListDispatchCandidatesQuery previews the dispatch ranking for one order:
// every AVAILABLE rider, ordered the way automatic dispatch would pick them.
// The preview is advisory; by the time an assignment is attempted the
// ranking may have changed.
//
// Example:
//
//	query, err := NewListDispatchCandidatesQuery(orderID)
//	if err != nil {
//	    return err
//	}
//
//	candidates, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list candidates: %w", err)
//	}
type ListDispatchCandidatesQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewListDispatchCandidatesQuery creates a query to preview dispatch ranking
// for the given order.
func NewListDispatchCandidatesQuery(orderID kernel.UUID) (ListDispatchCandidatesQuery, error) {
	if err := orderID.Validate(); err != nil {
		return ListDispatchCandidatesQuery{}, err
	}

	return ListDispatchCandidatesQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListDispatchCandidatesQuery) Validate() error {
	return q.guard.Validate(ErrListDispatchCandidatesQueryIsNotConstructed)
}

// OrderID returns the order whose ranking is previewed.
func (q ListDispatchCandidatesQuery) OrderID() kernel.UUID {
	return q.orderID
}

// ListDispatchCandidatesQueryResponse is one ranked candidate.
// DistanceKm is nil when either the merchant's location or the rider's last
// reported position is unknown; such riders rank after located ones by how
// long ago they were last assigned.
type ListDispatchCandidatesQueryResponse struct {
	RiderID        kernel.UUID
	Name           string
	DistanceKm     *float64
	LastAssignedAt *time.Time
}
