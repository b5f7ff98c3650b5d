package riderrepo

import (
	"context"
	"errors"

	"hatod/internal/core/domain/model/kernel"
	"hatod/internal/core/domain/model/rider"
	"hatod/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAssignmentRepository implements ports.AssignmentRepository using GORM.
// Assignment facts are kept after release; history queries rely on released
// rows staying in place.
type GormAssignmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormAssignmentRepository creates a new GORM assignment repository.
func NewGormAssignmentRepository(db *gorm.DB, tracker aggregateTracker) *GormAssignmentRepository {
	return &GormAssignmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add persists a new assignment fact.
func (r *GormAssignmentRepository) Add(ctx context.Context, assignment *rider.Assignment) error {
	if err := assignment.Validate(); err != nil {
		return err
	}

	dto := assignmentFromDomain(assignment)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(assignment.ID(), assignment)
	return nil
}

// Update persists a release of an existing assignment.
func (r *GormAssignmentRepository) Update(ctx context.Context, assignment *rider.Assignment) error {
	if err := assignment.Validate(); err != nil {
		return err
	}

	dto := assignmentFromDomain(assignment)
	result := r.db.WithContext(ctx).Model(&AssignmentDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"released_at": dto.ReleasedAt,
			"active":      dto.Active,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("assignment", assignment.ID().String())
	}

	r.tracker.TrackAggregate(assignment.ID(), assignment)
	return nil
}

// GetActiveByOrder retrieves the active assignment for an order.
func (r *GormAssignmentRepository) GetActiveByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) (*rider.Assignment, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto AssignmentDTO
	err := r.db.WithContext(ctx).
		First(&dto, "order_id = ? AND active", orderID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("assignment", orderID.String())
		}
		return nil, err
	}

	return assignmentToDomain(dto)
}
