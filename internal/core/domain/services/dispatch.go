package services

import (
	"errors"
	"sort"

	"hatod/internal/core/domain/model/kernel"
	"hatod/internal/core/domain/model/order"
	"hatod/internal/core/domain/model/rider"
)

// ErrNoRiderAvailable is returned when no rider is eligible for dispatch.
// This occurs when no riders are provided or none of them is AVAILABLE.
var ErrNoRiderAvailable = errors.New("no rider available for dispatch")

// DispatchCoordinator is a domain service that ranks dispatch candidates for
// a ready order and picks the best one. It is side-effect-free: committing an
// assignment, with its conditional writes that serialize concurrent claims,
// is the application layer's job.
//
// Ranking rules:
//   - only AVAILABLE riders are candidates
//   - with a known pickup point, riders that have reported a position are
//     ranked by great-circle distance to it, closest first
//   - riders without a position, or all riders when the pickup point is
//     unknown, are ranked least-recently-assigned first (never assigned
//     ranks before everyone)
type DispatchCoordinator struct{}

// NewDispatchCoordinator creates a new DispatchCoordinator instance.
func NewDispatchCoordinator() DispatchCoordinator {
	return DispatchCoordinator{}
}

// RankCandidates filters riders down to AVAILABLE ones and orders them by
// dispatch preference for the given pickup point. The pickup point may be
// nil when the merchant has no known coordinates.
func (d DispatchCoordinator) RankCandidates(pickup *kernel.GeoPoint, riders []*rider.Rider) ([]*rider.Rider, error) {
	var candidates []*rider.Rider
	for _, r := range riders {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		if r.Availability() == rider.AvailabilityAvailable {
			candidates = append(candidates, r)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return lessCandidate(pickup, candidates[i], candidates[j])
	})

	return candidates, nil
}

// SelectRider returns the best dispatch candidate for an order.
// The order must be READY_FOR_PICKUP and unassigned; anything else is an
// assignment conflict, since the order is no longer eligible for dispatch.
func (d DispatchCoordinator) SelectRider(
	o *order.Order,
	pickup *kernel.GeoPoint,
	riders []*rider.Rider,
) (*rider.Rider, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if o.Status() != order.ReadyForPickup || o.RiderID() != nil {
		return nil, order.ErrAssignmentConflict
	}

	candidates, err := d.RankCandidates(pickup, riders)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, ErrNoRiderAvailable
	}

	return candidates[0], nil
}

// lessCandidate reports whether rider a ranks before rider b for a pickup
// point. Distance beats recency when positions are known; a known position
// beats an unknown one.
func lessCandidate(pickup *kernel.GeoPoint, a, b *rider.Rider) bool {
	if pickup != nil {
		aLoc, bLoc := a.Location(), b.Location()
		switch {
		case aLoc != nil && bLoc != nil:
			return aLoc.DistanceKmTo(*pickup) < bLoc.DistanceKmTo(*pickup)
		case aLoc != nil:
			return true
		case bLoc != nil:
			return false
		}
	}

	aAt, bAt := a.LastAssignedAt(), b.LastAssignedAt()
	switch {
	case aAt == nil && bAt == nil:
		return false
	case aAt == nil:
		return true
	case bAt == nil:
		return false
	default:
		return aAt.Before(*bAt)
	}
}
