package orderrepo

import (
	"context"
	"errors"
	"time"

	"hatod/internal/core/domain/model/kernel"
	"hatod/internal/core/domain/model/order"
	"hatod/internal/core/ports"
	"hatod/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
//
// The status and rider columns are written with conditional UPDATEs keyed on
// the state the aggregate was loaded with. Under READ COMMITTED a concurrent
// writer that got there first leaves the condition unsatisfied, the UPDATE
// reports zero rows, and the caller's transaction aborts without a write.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its lines and outbox rows.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}
	if err = r.appendEvents(ctx, aggregate); err != nil {
		return err
	}

	aggregate.MarkPersisted()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order conditionally on its persisted status.
// A zero-row update means another transition won the race; the caller gets
// order.ErrIllegalTransition and must reload before retrying.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND status = ?", dto.ID, int(aggregate.PersistedStatus())).
		Updates(map[string]any{
			"status":        dto.Status,
			"rider_id":      dto.RiderID,
			"cancel_reason": dto.CancelReason,
			"updated_at":    dto.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return order.ErrIllegalTransition
	}

	if err = r.appendEvents(ctx, aggregate); err != nil {
		return err
	}

	aggregate.MarkPersisted()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// AssignRider persists a rider assignment with a conditional write: the row
// must still be READY_FOR_PICKUP with no rider. Exactly one of any number of
// concurrent claimants can satisfy the condition.
func (r *GormOrderRepository) AssignRider(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	riderID := aggregate.RiderID()
	if riderID == nil {
		return errs.NewValueIsRequiredError("riderId")
	}

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND rider_id IS NULL AND status = ?", aggregate.ID().Bytes(), int(order.ReadyForPickup)).
		Updates(map[string]any{
			"rider_id":   riderID.Bytes(),
			"updated_at": aggregate.UpdatedAt(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return order.ErrAssignmentConflict
	}

	if err := r.appendEvents(ctx, aggregate); err != nil {
		return err
	}

	aggregate.MarkPersisted()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order with its lines by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).Preload("Lines").First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetFirstReadyUnassigned retrieves the oldest READY_FOR_PICKUP order
// without a rider.
func (r *GormOrderRepository) GetFirstReadyUnassigned(ctx context.Context) (*order.Order, error) {
	var dto OrderDTO
	err := r.db.WithContext(ctx).Preload("Lines").
		Where("status = ? AND rider_id IS NULL", int(order.ReadyForPickup)).
		Order("created_at").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", "first ready unassigned")
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetUnpublishedEvents retrieves up to limit unrelayed outbox rows in
// EventID order.
func (r *GormOrderRepository) GetUnpublishedEvents(ctx context.Context, limit int) ([]ports.PublishedEvent, error) {
	var dtos []OrderEventDTO
	err := r.db.WithContext(ctx).
		Where("published_at IS NULL").
		Order("event_id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	events := make([]ports.PublishedEvent, 0, len(dtos))
	for _, dto := range dtos {
		orderID, idErr := kernel.UUIDFromBytes(dto.OrderID[:])
		if idErr != nil {
			return nil, idErr
		}

		events = append(events, ports.PublishedEvent{
			EventID:    dto.EventID,
			OrderID:    orderID,
			Name:       dto.Name,
			Payload:    dto.Payload,
			OccurredAt: dto.OccurredAt,
		})
	}

	return events, nil
}

// MarkEventsPublished marks outbox rows as relayed.
func (r *GormOrderRepository) MarkEventsPublished(ctx context.Context, eventIDs []int64) error {
	if len(eventIDs) == 0 {
		return nil
	}

	now := time.Now().UTC()
	return r.db.WithContext(ctx).Model(&OrderEventDTO{}).
		Where("event_id IN ?", eventIDs).
		Update("published_at", now).Error
}

// appendEvents inserts the aggregate's pending events as outbox rows.
func (r *GormOrderRepository) appendEvents(ctx context.Context, aggregate *order.Order) error {
	for _, event := range aggregate.PendingEvents() {
		dto, err := eventToDTO(event)
		if err != nil {
			return err
		}
		if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
			return err
		}
	}

	return nil
}
