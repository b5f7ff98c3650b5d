// Package riderrepo provides data transfer objects and mapping functions for
// rider persistence. It covers the rider aggregate and the assignment facts
// recorded when dispatch binds a rider to an order.
package riderrepo

import (
	"time"

	"hatod/internal/core/domain/model/kernel"
	"hatod/internal/core/domain/model/rider"

	"github.com/google/uuid"
)

// RiderDTO represents the database structure for persisting rider aggregates.
// The last reported position is nullable: riders that never reported one
// still dispatch, ranked by how long ago they were last assigned.
type RiderDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name           string
	Phone          string
	Availability   int `gorm:"index"`
	Latitude       *float64
	Longitude      *float64
	LastAssignedAt *time.Time
}

// TableName specifies the database table name for rider entities.
func (RiderDTO) TableName() string {
	return "riders"
}

// AssignmentDTO represents one rider-to-order assignment fact.
// Released assignments are kept for history rather than deleted; the Active
// flag distinguishes the single live assignment per order.
type AssignmentDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	RiderID    uuid.UUID `gorm:"type:uuid;index"`
	AssignedAt time.Time
	ReleasedAt *time.Time
	Active     bool `gorm:"index"`
}

// TableName specifies the database table name for assignment facts.
func (AssignmentDTO) TableName() string {
	return "assignments"
}

// fromDomain converts a rider domain aggregate to its database representation.
func fromDomain(aggregate *rider.Rider) RiderDTO {
	var latitude, longitude *float64
	if location := aggregate.Location(); location != nil {
		lat := location.Latitude()
		lng := location.Longitude()
		latitude = &lat
		longitude = &lng
	}

	return RiderDTO{
		ID:             aggregate.ID().Bytes(),
		Name:           aggregate.Name(),
		Phone:          aggregate.Phone(),
		Availability:   int(aggregate.Availability()),
		Latitude:       latitude,
		Longitude:      longitude,
		LastAssignedAt: aggregate.LastAssignedAt(),
	}
}

// toDomain converts a database DTO to a rider domain aggregate.
func toDomain(dto RiderDTO) (*rider.Rider, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	if dto.Latitude != nil && dto.Longitude != nil {
		point, locErr := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if locErr != nil {
			return nil, locErr
		}
		location = &point
	}

	return rider.RestoreRider(
		id,
		dto.Name,
		dto.Phone,
		rider.Availability(dto.Availability),
		location,
		dto.LastAssignedAt,
	)
}

// assignmentFromDomain converts an assignment fact to its database representation.
func assignmentFromDomain(assignment *rider.Assignment) AssignmentDTO {
	return AssignmentDTO{
		ID:         assignment.ID().Bytes(),
		OrderID:    assignment.OrderID().Bytes(),
		RiderID:    assignment.RiderID().Bytes(),
		AssignedAt: assignment.AssignedAt(),
		ReleasedAt: assignment.ReleasedAt(),
		Active:     assignment.IsActive(),
	}
}

// assignmentToDomain converts a database DTO to an assignment fact.
func assignmentToDomain(dto AssignmentDTO) (*rider.Assignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	riderID, err := kernel.UUIDFromBytes(dto.RiderID[:])
	if err != nil {
		return nil, err
	}

	return rider.RestoreAssignment(id, orderID, riderID, dto.AssignedAt, dto.ReleasedAt, dto.Active)
}
