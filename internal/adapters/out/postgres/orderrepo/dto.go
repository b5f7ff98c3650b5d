// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations, including the
// transactional outbox rows for order lifecycle events.
package orderrepo

import (
	"encoding/json"
	"time"

	"hatod/internal/core/domain/model/kernel"
	"hatod/internal/core/domain/model/order"
	"hatod/internal/core/domain/model/product"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational database tables with proper indexing
// for efficient querying by status and rider assignment.
type OrderDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Number       string     `gorm:"uniqueIndex"`
	CustomerID   uuid.UUID  `gorm:"type:uuid;index"`
	MerchantID   uuid.UUID  `gorm:"type:uuid;index"`
	RiderID      *uuid.UUID `gorm:"type:uuid;index"`
	Subtotal     int64
	DeliveryFee  int64
	PlatformFee  int64
	Total        int64
	Status       int `gorm:"index"`
	CancelReason *string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Lines []OrderLineDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderLineDTO represents one priced order line.
// The option selection is stored as a JSONB snapshot; it is never joined
// against the live catalog.
type OrderLineDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID `gorm:"type:uuid;index"`
	CatalogItemID uuid.UUID `gorm:"type:uuid"`
	Name          string
	Quantity      int
	UnitPrice     int64
	Options       []byte `gorm:"type:jsonb"`
}

// TableName specifies the database table name for order lines.
func (OrderLineDTO) TableName() string {
	return "order_lines"
}

// OrderEventDTO is one transactional outbox row. Rows are inserted in the
// same transaction as the state change they describe and relayed to the
// event bus afterwards; EventID auto-increments, so relaying in EventID
// order preserves per-order emission order.
type OrderEventDTO struct {
	EventID     int64     `gorm:"primaryKey;autoIncrement"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`
	Name        string
	Payload     []byte `gorm:"type:jsonb"`
	OccurredAt  time.Time
	PublishedAt *time.Time `gorm:"index"`
}

// TableName specifies the database table name for the outbox.
func (OrderEventDTO) TableName() string {
	return "order_events"
}

// fromDomain converts an order domain aggregate to its database representation.
// Maps all order attributes including lines and optional rider assignment.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	var riderID *uuid.UUID
	if id := aggregate.RiderID(); id != nil {
		raw := id.Bytes()
		riderID = &raw
	}

	lines := make([]OrderLineDTO, 0, len(aggregate.Lines()))
	for _, line := range aggregate.Lines() {
		options, err := json.Marshal(line.Options())
		if err != nil {
			return OrderDTO{}, err
		}

		lines = append(lines, OrderLineDTO{
			ID:            line.ID().Bytes(),
			OrderID:       aggregate.ID().Bytes(),
			CatalogItemID: line.CatalogItemID().Bytes(),
			Name:          line.Name(),
			Quantity:      line.Quantity(),
			UnitPrice:     line.UnitPrice().Centavos(),
			Options:       options,
		})
	}

	return OrderDTO{
		ID:           aggregate.ID().Bytes(),
		Number:       aggregate.Number(),
		CustomerID:   aggregate.CustomerID().Bytes(),
		MerchantID:   aggregate.MerchantID().Bytes(),
		RiderID:      riderID,
		Subtotal:     aggregate.Subtotal().Centavos(),
		DeliveryFee:  aggregate.DeliveryFee().Centavos(),
		PlatformFee:  aggregate.PlatformFee().Centavos(),
		Total:        aggregate.Total().Centavos(),
		Status:       int(aggregate.Status()),
		CancelReason: aggregate.CancelReason(),
		CreatedAt:    aggregate.CreatedAt(),
		UpdatedAt:    aggregate.UpdatedAt(),
		Lines:        lines,
	}, nil
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including lines, status and rider
// assignment using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	merchantID, err := kernel.UUIDFromBytes(dto.MerchantID[:])
	if err != nil {
		return nil, err
	}

	var riderID *kernel.UUID
	if dto.RiderID != nil {
		rID, riderErr := kernel.UUIDFromBytes((*dto.RiderID)[:])
		if riderErr != nil {
			return nil, riderErr
		}
		riderID = &rID
	}

	lines := make([]order.Line, 0, len(dto.Lines))
	for _, lineDTO := range dto.Lines {
		line, lineErr := lineToDomain(lineDTO)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return order.RestoreOrder(
		id,
		dto.Number,
		customerID,
		merchantID,
		riderID,
		lines,
		kernel.NewMoney(dto.Subtotal),
		kernel.NewMoney(dto.DeliveryFee),
		kernel.NewMoney(dto.PlatformFee),
		kernel.NewMoney(dto.Total),
		order.Status(dto.Status),
		dto.CancelReason,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}

func lineToDomain(dto OrderLineDTO) (order.Line, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return order.Line{}, err
	}
	catalogItemID, err := kernel.UUIDFromBytes(dto.CatalogItemID[:])
	if err != nil {
		return order.Line{}, err
	}

	var options []product.ChosenOption
	if len(dto.Options) > 0 {
		if err = json.Unmarshal(dto.Options, &options); err != nil {
			return order.Line{}, err
		}
	}

	return order.NewLine(id, catalogItemID, dto.Name, dto.Quantity, kernel.NewMoney(dto.UnitPrice), options)
}
