package commands

import (
	"context"
	"errors"

	"hatod/internal/core/domain/model/kernel"
	"hatod/internal/pkg/guard"
)

var ErrReportRiderLocationCommandIsNotConstructed = errors.New(
	"ReportRiderLocationCommand must be created via NewReportRiderLocationCommand constructor",
)

// ReportRiderLocationCommand represents a rider's position report.
// The last reported position feeds proximity-based dispatch ranking.
type ReportRiderLocationCommand struct {
	riderID  kernel.UUID
	location kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewReportRiderLocationCommand creates a command carrying a position report.
func NewReportRiderLocationCommand(
	riderID kernel.UUID,
	latitude float64,
	longitude float64,
) (ReportRiderLocationCommand, error) {
	if err := riderID.Validate(); err != nil {
		return ReportRiderLocationCommand{}, err
	}

	location, err := kernel.NewGeoPoint(latitude, longitude)
	if err != nil {
		return ReportRiderLocationCommand{}, err
	}

	return ReportRiderLocationCommand{
		riderID:  riderID,
		location: location,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportRiderLocationCommand) Validate() error {
	return c.guard.Validate(ErrReportRiderLocationCommandIsNotConstructed)
}

// RiderID returns the reporting rider.
func (c ReportRiderLocationCommand) RiderID() kernel.UUID {
	return c.riderID
}

// Location returns the reported position.
func (c ReportRiderLocationCommand) Location() kernel.GeoPoint {
	return c.location
}

// ReportRiderLocationCommandHandler handles rider position reports.
type ReportRiderLocationCommandHandler struct {
	uowFactory RiderUoWFactory
}

// NewReportRiderLocationCommandHandler creates a handler for position reports.
func NewReportRiderLocationCommandHandler(uowFactory RiderUoWFactory) ReportRiderLocationCommandHandler {
	return ReportRiderLocationCommandHandler{uowFactory: uowFactory}
}

// Handle processes the report.
func (h ReportRiderLocationCommandHandler) Handle(ctx context.Context, cmd ReportRiderLocationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	riderRepo := uow.RiderRepository()
	aggregate, err := riderRepo.Get(ctx, cmd.RiderID())
	if err != nil {
		return err
	}

	if err = aggregate.ReportLocation(cmd.Location()); err != nil {
		return err
	}

	if err = riderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
