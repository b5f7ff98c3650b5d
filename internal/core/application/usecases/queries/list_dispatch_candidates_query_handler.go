package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"hatod/internal/core/domain/model/kernel"
	"hatod/internal/core/domain/model/rider"
	"hatod/internal/core/domain/services"
	"hatod/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListDispatchCandidatesQueryHandler computes the dispatch ranking preview.
// Reads the order's merchant location and the AVAILABLE riders with raw SQL,
// then reuses the same ranking the automatic dispatcher applies, so the
// preview and the real assignment can never disagree on ordering rules.
type ListDispatchCandidatesQueryHandler struct {
	db          *gorm.DB
	coordinator services.DispatchCoordinator
}

// NewListDispatchCandidatesQueryHandler creates a handler for ranking previews.
func NewListDispatchCandidatesQueryHandler(
	db *gorm.DB,
	coordinator services.DispatchCoordinator,
) ListDispatchCandidatesQueryHandler {
	return ListDispatchCandidatesQueryHandler{db: db, coordinator: coordinator}
}

// Handle executes the preview for one order.
// Returns errs.ErrObjectNotFound when the order does not exist. An order
// whose merchant has no stored location still gets a ranking, ordered by
// least-recently-assigned only.
func (h ListDispatchCandidatesQueryHandler) Handle(
	ctx context.Context,
	query ListDispatchCandidatesQuery,
) ([]ListDispatchCandidatesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	pickup, err := h.merchantPickup(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}

	riders, err := h.availableRiders(ctx)
	if err != nil {
		return nil, err
	}

	ranked, err := h.coordinator.RankCandidates(pickup, riders)
	if err != nil {
		return nil, err
	}

	candidates := make([]ListDispatchCandidatesQueryResponse, 0, len(ranked))
	for _, candidate := range ranked {
		resp := ListDispatchCandidatesQueryResponse{
			RiderID:        candidate.ID(),
			Name:           candidate.Name(),
			LastAssignedAt: candidate.LastAssignedAt(),
		}

		if pickup != nil && candidate.Location() != nil {
			km := pickup.DistanceKmTo(*candidate.Location())
			resp.DistanceKm = &km
		}

		candidates = append(candidates, resp)
	}

	return candidates, nil
}

// merchantPickup resolves the pickup point for the order's merchant.
// A missing order is an error; a missing merchant location is not.
func (h ListDispatchCandidatesQueryHandler) merchantPickup(
	ctx context.Context,
	orderID kernel.UUID,
) (*kernel.GeoPoint, error) {
	var merchantID uuid.UUID
	err := h.db.WithContext(ctx).Raw(`
		SELECT merchant_id
		FROM orders
		WHERE id = ?
	`, orderID.Bytes()).Row().Scan(&merchantID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewObjectNotFoundError("orderId", orderID)
	}
	if err != nil {
		return nil, err
	}

	var latitude, longitude float64
	err = h.db.WithContext(ctx).Raw(`
		SELECT latitude, longitude
		FROM merchant_locations
		WHERE merchant_id = ?
	`, merchantID).Row().Scan(&latitude, &longitude)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	pickup, err := kernel.NewGeoPoint(latitude, longitude)
	if err != nil {
		return nil, err
	}

	return &pickup, nil
}

// availableRiders loads every AVAILABLE rider as a read-only aggregate.
func (h ListDispatchCandidatesQueryHandler) availableRiders(ctx context.Context) ([]*rider.Rider, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			phone,
			latitude,
			longitude,
			last_assigned_at
		FROM riders
		WHERE availability = ?
		ORDER BY name
	`, int(rider.AvailabilityAvailable)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	riders := make([]*rider.Rider, 0)
	for rows.Next() {
		var id uuid.UUID
		var name, phone string
		var latitude, longitude *float64
		var lastAssignedAt *time.Time

		if err = rows.Scan(&id, &name, &phone, &latitude, &longitude, &lastAssignedAt); err != nil {
			return nil, err
		}

		riderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		var location *kernel.GeoPoint
		if latitude != nil && longitude != nil {
			point, locErr := kernel.NewGeoPoint(*latitude, *longitude)
			if locErr != nil {
				return nil, locErr
			}
			location = &point
		}

		aggregate, restoreErr := rider.RestoreRider(
			riderID, name, phone, rider.AvailabilityAvailable, location, lastAssignedAt)
		if restoreErr != nil {
			return nil, restoreErr
		}

		riders = append(riders, aggregate)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return riders, nil
}
