package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrStartWorkCommandIsNotConstructed = errors.New(
	"StartWorkCommand must be created via NewStartWorkCommand constructor",
)

// StartWorkCommand accepts a responder and moves the order into development.
// The actor is the customer (or the system acting on the customer's behalf);
// the responder becomes the order's executor.
type StartWorkCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	actorID     kernel.UUID
	responderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewStartWorkCommand creates a command to accept a responder on an order.
func NewStartWorkCommand(orderID, actorID, responderID kernel.UUID) (StartWorkCommand, error) {
	command := StartWorkCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setActorID(actorID),
		command.setResponderID(responderID),
	); err != nil {
		return StartWorkCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c StartWorkCommand) Validate() error {
	return c.guard.Validate(ErrStartWorkCommandIsNotConstructed)
}

// OrderID returns the order entering development.
func (c StartWorkCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns the participant requesting the transition.
func (c StartWorkCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ResponderID returns the accepted responder, the order's future executor.
func (c StartWorkCommand) ResponderID() kernel.UUID {
	return c.responderID
}

func (c *StartWorkCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *StartWorkCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}

func (c *StartWorkCommand) setResponderID(responderID kernel.UUID) error {
	if err := responderID.Validate(); err != nil {
		return err
	}

	c.responderID = responderID
	return nil
}
