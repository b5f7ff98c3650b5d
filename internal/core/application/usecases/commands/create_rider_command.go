package commands

import (
	"context"
	"errors"

	"hatod/internal/core/domain/model/kernel"
	"hatod/internal/core/domain/model/rider"
	"hatod/internal/pkg/guard"
)

var (
	ErrCreateRiderCommandIsNotConstructed = errors.New(
		"CreateRiderCommand must be created via NewCreateRiderCommand constructor",
	)
	ErrRiderNameIsRequired  = errors.New("rider name is required")
	ErrRiderPhoneIsRequired = errors.New("rider phone is required")
)

// CreateRiderCommand represents a request to register a new rider.
// New riders start OFFLINE and go on shift via SetRiderAvailabilityCommand.
type CreateRiderCommand struct { //nolint:recvcheck //using for validation
	riderID kernel.UUID
	name    string
	phone   string

	guard guard.ConstructorGuard
}

// NewCreateRiderCommand creates a command to register a rider.
func NewCreateRiderCommand(riderID kernel.UUID, name string, phone string) (CreateRiderCommand, error) {
	cmd := CreateRiderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRiderID(riderID),
		cmd.setName(name),
		cmd.setPhone(phone),
	); err != nil {
		return CreateRiderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateRiderCommand) Validate() error {
	return c.guard.Validate(ErrCreateRiderCommandIsNotConstructed)
}

// RiderID returns the new rider's identifier.
func (c CreateRiderCommand) RiderID() kernel.UUID {
	return c.riderID
}

// Name returns the rider's name.
func (c CreateRiderCommand) Name() string {
	return c.name
}

// Phone returns the rider's contact number.
func (c CreateRiderCommand) Phone() string {
	return c.phone
}

func (c *CreateRiderCommand) setRiderID(riderID kernel.UUID) error {
	if err := riderID.Validate(); err != nil {
		return err
	}

	c.riderID = riderID
	return nil
}

func (c *CreateRiderCommand) setName(name string) error {
	if name == "" {
		return ErrRiderNameIsRequired
	}

	c.name = name
	return nil
}

func (c *CreateRiderCommand) setPhone(phone string) error {
	if phone == "" {
		return ErrRiderPhoneIsRequired
	}

	c.phone = phone
	return nil
}

// CreateRiderCommandHandler handles rider registration.
type CreateRiderCommandHandler struct {
	uowFactory RiderUoWFactory
}

// NewCreateRiderCommandHandler creates a handler for rider registration.
func NewCreateRiderCommandHandler(uowFactory RiderUoWFactory) CreateRiderCommandHandler {
	return CreateRiderCommandHandler{uowFactory: uowFactory}
}

// Handle processes the registration command.
func (h CreateRiderCommandHandler) Handle(ctx context.Context, cmd CreateRiderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := rider.NewRider(cmd.RiderID(), cmd.Name(), cmd.Phone())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.RiderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
