package cartrepo

import (
	"context"
	"errors"
	"time"

	"hatod/internal/core/domain/model/cart"
	"hatod/internal/core/domain/model/kernel"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCartRepository implements ports.CartRepository using GORM.
//
// Saves replace the stored lines wholesale: the draft aggregate already
// resolved merging and quantity rules in memory, so the rows are a plain
// snapshot, not a delta.
type GormCartRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCartRepository creates a new GORM cart repository.
func NewGormCartRepository(db *gorm.DB, tracker aggregateTracker) *GormCartRepository {
	return &GormCartRepository{
		db:      db,
		tracker: tracker,
	}
}

// Get retrieves the customer's draft. A customer without a stored row gets a
// fresh empty draft rather than an error.
func (r *GormCartRepository) Get(ctx context.Context, customerID kernel.UUID) (*cart.Draft, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}

	var dto CartDTO
	err := r.db.WithContext(ctx).Preload("Lines").
		First(&dto, "customer_id = ?", customerID.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return cart.NewDraft(customerID, time.Now().UTC())
	}
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// Save persists the draft, replacing the customer's stored lines.
func (r *GormCartRepository) Save(ctx context.Context, draft *cart.Draft) error {
	if err := draft.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(draft)
	if err != nil {
		return err
	}

	err = r.db.WithContext(ctx).
		Where("customer_id = ?", dto.CustomerID).
		Delete(&CartLineDTO{}).Error
	if err != nil {
		return err
	}

	err = r.db.WithContext(ctx).Omit("Lines").Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "customer_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"updated_at"}),
	}).Create(&dto).Error
	if err != nil {
		return err
	}

	if len(dto.Lines) > 0 {
		if err = r.db.WithContext(ctx).Create(&dto.Lines).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(draft.CustomerID(), draft)
	return nil
}

// Clear removes every stored line of the customer's draft.
func (r *GormCartRepository) Clear(ctx context.Context, customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID.Bytes()).
		Delete(&CartLineDTO{}).Error
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Model(&CartDTO{}).
		Where("customer_id = ?", customerID.Bytes()).
		Update("updated_at", time.Now().UTC()).Error
}
