package commands

import (
	"errors"
	"fmt"

	"hatod/internal/pkg/errs"
	"hatod/internal/pkg/guard"
)

var ErrRelayOrderEventsCommandIsNotConstructed = errors.New(
	"RelayOrderEventsCommand must be created via NewRelayOrderEventsCommand constructor",
)

// RelayOrderEventsCommand drains one batch of unpublished outbox rows to the
// event publisher. Driven by the background relay job.
type RelayOrderEventsCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

// NewRelayOrderEventsCommand creates a command to relay up to batchSize
// outbox events. Batch size must be positive.
func NewRelayOrderEventsCommand(batchSize int) (RelayOrderEventsCommand, error) {
	if batchSize <= 0 {
		return RelayOrderEventsCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"batchSize", fmt.Errorf("%d is not greater than 0", batchSize))
	}

	return RelayOrderEventsCommand{
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c *RelayOrderEventsCommand) Validate() error {
	return c.guard.Validate(ErrRelayOrderEventsCommandIsNotConstructed)
}

// BatchSize returns the maximum number of events relayed in one round.
func (c *RelayOrderEventsCommand) BatchSize() int {
	return c.batchSize
}
