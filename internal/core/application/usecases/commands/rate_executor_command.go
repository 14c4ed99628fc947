package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/rating"
	"marketplace/internal/pkg/guard"
)

var ErrRateExecutorCommandIsNotConstructed = errors.New(
	"RateExecutorCommand must be created via NewRateExecutorCommand constructor",
)

// RateExecutorCommand records the customer's one-time rating of the executor
// on a completed order.
type RateExecutorCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actorID kernel.UUID
	value   float64

	guard guard.ConstructorGuard
}

// NewRateExecutorCommand creates a command to rate an order's executor.
// The value must lie within the half-star rating range.
func NewRateExecutorCommand(orderID, actorID kernel.UUID, value float64) (RateExecutorCommand, error) {
	command := RateExecutorCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setActorID(actorID),
		command.setValue(value),
	); err != nil {
		return RateExecutorCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RateExecutorCommand) Validate() error {
	return c.guard.Validate(ErrRateExecutorCommandIsNotConstructed)
}

// OrderID returns the rated order.
func (c RateExecutorCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns the rating customer.
func (c RateExecutorCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Value returns the submitted rating value.
func (c RateExecutorCommand) Value() float64 {
	return c.value
}

func (c *RateExecutorCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RateExecutorCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}

func (c *RateExecutorCommand) setValue(value float64) error {
	if err := rating.ValidateValue(value); err != nil {
		return err
	}

	c.value = value
	return nil
}
