package commands

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/ledger"
	"marketplace/internal/pkg/guard"
)

var ErrWithdrawCommandIsNotConstructed = errors.New(
	"WithdrawCommand must be created via NewWithdrawCommand constructor",
)

// WithdrawCommand requests a withdrawal from a participant's balance.
type WithdrawCommand struct { //nolint:recvcheck //using for validation
	participantID kernel.UUID
	amount        float64

	guard guard.ConstructorGuard
}

// NewWithdrawCommand creates a command to withdraw funds. The amount must be
// positive; the balance check happens against the ledger at handling time.
func NewWithdrawCommand(participantID kernel.UUID, amount float64) (WithdrawCommand, error) {
	command := WithdrawCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setParticipantID(participantID),
		command.setAmount(amount),
	); err != nil {
		return WithdrawCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c WithdrawCommand) Validate() error {
	return c.guard.Validate(ErrWithdrawCommandIsNotConstructed)
}

// ParticipantID returns the ledger owner.
func (c WithdrawCommand) ParticipantID() kernel.UUID {
	return c.participantID
}

// Amount returns the requested withdrawal amount.
func (c WithdrawCommand) Amount() float64 {
	return c.amount
}

func (c *WithdrawCommand) setParticipantID(participantID kernel.UUID) error {
	if err := participantID.Validate(); err != nil {
		return err
	}

	c.participantID = participantID
	return nil
}

func (c *WithdrawCommand) setAmount(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: withdrawal of %v", ledger.ErrInvalidAmount, amount)
	}

	c.amount = amount
	return nil
}
