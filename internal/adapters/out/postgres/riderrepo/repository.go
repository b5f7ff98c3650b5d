package riderrepo

import (
	"context"
	"errors"

	"hatod/internal/core/domain/model/kernel"
	"hatod/internal/core/domain/model/order"
	"hatod/internal/core/domain/model/rider"
	"hatod/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormRiderRepository implements ports.RiderRepository using GORM.
//
// Availability is the contended column: a rider going off shift can race the
// dispatcher marking the same rider busy. UpdateAvailability writes it
// conditionally against the value the caller observed, so one of the two
// racing transactions always loses cleanly.
type GormRiderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormRiderRepository creates a new GORM rider repository.
func NewGormRiderRepository(db *gorm.DB, tracker aggregateTracker) *GormRiderRepository {
	return &GormRiderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new rider to the database.
func (r *GormRiderRepository) Add(ctx context.Context, aggregate *rider.Rider) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing rider to the database. Used for position reports
// and profile changes; availability flips go through UpdateAvailability.
func (r *GormRiderRepository) Update(ctx context.Context, aggregate *rider.Rider) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&RiderDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"name":             dto.Name,
			"phone":            dto.Phone,
			"latitude":         dto.Latitude,
			"longitude":        dto.Longitude,
			"last_assigned_at": dto.LastAssignedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("rider", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateAvailability writes the rider's availability conditionally against
// the availability observed when the rider was loaded. Zero rows affected
// means a concurrent writer got there first.
func (r *GormRiderRepository) UpdateAvailability(
	ctx context.Context,
	aggregate *rider.Rider,
	observed rider.Availability,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&RiderDTO{}).
		Where("id = ? AND availability = ?", dto.ID, int(observed)).
		Updates(map[string]any{
			"availability":     dto.Availability,
			"last_assigned_at": dto.LastAssignedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return order.ErrAssignmentConflict
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a rider by ID.
func (r *GormRiderRepository) Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RiderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("rider", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllAvailable retrieves all riders in AVAILABLE status.
func (r *GormRiderRepository) GetAllAvailable(ctx context.Context) ([]*rider.Rider, error) {
	var dtos []RiderDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "availability = ?", int(rider.AvailabilityAvailable)).Error
	if err != nil {
		return nil, err
	}

	riders := make([]*rider.Rider, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		riders = append(riders, aggregate)
	}

	return riders, nil
}
