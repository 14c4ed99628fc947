package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrRespondCommandIsNotConstructed = errors.New(
	"RespondCommand must be created via NewRespondCommand constructor",
)

// RespondCommand expresses an actor's interest in executing an order.
type RespondCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRespondCommand creates a command to register a response on an order.
func NewRespondCommand(orderID kernel.UUID, actorID kernel.UUID) (RespondCommand, error) {
	command := RespondCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setActorID(actorID),
	); err != nil {
		return RespondCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RespondCommand) Validate() error {
	return c.guard.Validate(ErrRespondCommandIsNotConstructed)
}

// OrderID returns the order being responded to.
func (c RespondCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns the responding participant.
func (c RespondCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *RespondCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RespondCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
