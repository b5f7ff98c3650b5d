package commands

import (
	"errors"

	"hatod/internal/pkg/guard"
)

var ErrAutoDispatchCommandIsNotConstructed = errors.New(
	"AutoDispatchCommand must be created via NewAutoDispatchCommand constructor",
)

// AutoDispatchCommand triggers one round of automatic dispatch: the oldest
// ready, unassigned order is matched to the best available rider. It is a
// parameterless command driven by the background dispatch job.
//
// Example:
//
//	cmd := NewAutoDispatchCommand()
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrNoOrderFound):
//	    log.Println("No orders waiting for a rider")
//	case errors.Is(err, services.ErrNoRiderAvailable):
//	    log.Println("All riders are busy or off shift")
//	}
type AutoDispatchCommand struct {
	guard guard.ConstructorGuard
}

// NewAutoDispatchCommand creates a new command to trigger automatic dispatch.
func NewAutoDispatchCommand() AutoDispatchCommand {
	return AutoDispatchCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *AutoDispatchCommand) Validate() error {
	return c.guard.Validate(ErrAutoDispatchCommandIsNotConstructed)
}
