package commands

import (
	"errors"

	"marketplace/internal/pkg/guard"
)

var ErrSettleTransactionsCommandIsNotConstructed = errors.New(
	"SettleTransactionsCommand must be created via NewSettleTransactionsCommand constructor",
)

// SettleTransactionsCommand triggers a settlement sweep over every ledger
// with pending withdrawals. The remote side is the source of truth for
// settlement, so the sweep only reflects statuses it is told.
//
// This is a parameterless command meant to be run periodically by a
// scheduler.
type SettleTransactionsCommand struct {
	guard guard.ConstructorGuard
}

// NewSettleTransactionsCommand creates a command to trigger a settlement sweep.
func NewSettleTransactionsCommand() SettleTransactionsCommand {
	return SettleTransactionsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *SettleTransactionsCommand) Validate() error {
	return c.guard.Validate(ErrSettleTransactionsCommandIsNotConstructed)
}
