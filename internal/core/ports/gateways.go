package ports

import (
	"context"

	"hatod/internal/core/domain/model/kernel"
	"hatod/internal/core/domain/model/product"
)

// CatalogGateway exposes the menu catalog owned by an external subsystem.
// The core reads it at cart add-time only; once a line is priced the
// snapshot is never re-queried.
type CatalogGateway interface {
	// GetMenuItem retrieves a priced menu item snapshot, or
	// errs.ErrObjectNotFound when the catalog has no such item.
	GetMenuItem(ctx context.Context, itemID kernel.UUID) (product.MenuItem, error)
}

// GeoGateway resolves coordinates for fee estimation at checkout time.
// Either lookup may come back nil when coordinates are unknown, in which
// case the pricing engine falls back to the flat default fee.
type GeoGateway interface {
	// MerchantLocation resolves the merchant's pickup coordinates.
	MerchantLocation(ctx context.Context, merchantID kernel.UUID) (*kernel.GeoPoint, error)

	// AddressLocation resolves a delivery address's coordinates.
	AddressLocation(ctx context.Context, address string) (*kernel.GeoPoint, error)
}

// EventPublisher fans lifecycle and assignment events out to interested
// consumers (merchant, rider, admin, customer surfaces). Publication of one
// order's events must preserve that order's own transition sequence.
type EventPublisher interface {
	Publish(ctx context.Context, event PublishedEvent) error
}
