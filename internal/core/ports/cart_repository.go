package ports

import (
	"context"

	"hatod/internal/core/domain/model/cart"
	"hatod/internal/core/domain/model/kernel"
)

// CartRepository defines the persistence contract for cart drafts.
// A draft is keyed by its customer; customers that never added a line
// simply have an empty draft.
type CartRepository interface {
	// Get retrieves the customer's draft, or a fresh empty draft when the
	// customer has none stored.
	Get(ctx context.Context, customerID kernel.UUID) (*cart.Draft, error)

	// Save persists the draft, replacing the customer's stored lines.
	Save(ctx context.Context, draft *cart.Draft) error

	// Clear removes every stored line of the customer's draft.
	Clear(ctx context.Context, customerID kernel.UUID) error
}
