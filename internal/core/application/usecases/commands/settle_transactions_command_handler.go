package commands

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/ledger"
	"marketplace/internal/core/ports"
)

// SettleTransactionsCommandHandler sweeps every ledger with pending
// withdrawals, refreshes it from the remote finances and flips transaction
// statuses the remote has settled. Each settled withdrawal produces a
// notification for the participant.
type SettleTransactionsCommandHandler struct {
	ledgerStore    ports.LedgerStore
	financeGateway ports.FinanceGateway
	notifier       ports.Notifier
}

// NewSettleTransactionsCommandHandler creates a handler for settlement sweeps.
func NewSettleTransactionsCommandHandler(
	ledgerStore ports.LedgerStore,
	financeGateway ports.FinanceGateway,
	notifier ports.Notifier,
) SettleTransactionsCommandHandler {
	return SettleTransactionsCommandHandler{
		ledgerStore:    ledgerStore,
		financeGateway: financeGateway,
		notifier:       notifier,
	}
}

// Handle processes the settlement sweep. Accounts are settled independently:
// a failure on one ledger does not stop the sweep, and all failures are
// joined into the returned error.
func (h SettleTransactionsCommandHandler) Handle(ctx context.Context, cmd SettleTransactionsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var sweepErr error
	for _, account := range h.ledgerStore.All() {
		if !account.HasPendingTransactions() {
			continue
		}
		if err := h.settleAccount(ctx, account); err != nil {
			sweepErr = errors.Join(sweepErr, fmt.Errorf("participant %s: %w", account.ParticipantID(), err))
		}
	}
	return sweepErr
}

func (h SettleTransactionsCommandHandler) settleAccount(ctx context.Context, account *ledger.Account) error {
	remote, err := h.financeGateway.Finances(ctx, account.ParticipantID())
	if err != nil {
		return err
	}

	remoteStatuses := make(map[string]ledger.TransactionStatus, len(remote.Transactions))
	for _, entry := range remote.Transactions {
		status, statusErr := ledger.TransactionStatusFromString(entry.Status)
		if statusErr != nil {
			return statusErr
		}
		remoteStatuses[entry.ID] = status
	}

	working := account.Clone()
	var settled []ledger.Transaction
	for _, transaction := range working.Transactions() {
		if transaction.Status() != ledger.TransactionPending {
			continue
		}
		status, known := remoteStatuses[transaction.ID()]
		if !known || status == ledger.TransactionPending {
			continue
		}
		if err := working.ApplyTransactionStatus(transaction.ID(), status); err != nil {
			return err
		}
		settled = append(settled, transaction)
	}

	if len(settled) == 0 {
		return nil
	}

	// The remote balance already accounts for failed withdrawals being
	// refunded, so the mirror takes its money figures from the remote.
	refreshed, err := ledger.RestoreAccount(
		account.ParticipantID(), remote.Balance, remote.TotalEarned, working.Transactions())
	if err != nil {
		return err
	}
	h.ledgerStore.Save(refreshed)

	for _, transaction := range settled {
		h.notifySettled(ctx, refreshed, transaction.ID(), remoteStatuses[transaction.ID()])
	}
	return nil
}

func (h SettleTransactionsCommandHandler) notifySettled(
	ctx context.Context,
	account *ledger.Account,
	transactionID string,
	status ledger.TransactionStatus,
) {
	message := fmt.Sprintf("withdrawal %s for participant %s is %s",
		transactionID, account.ParticipantID(), status)

	if status == ledger.TransactionFailed {
		h.notifier.Notify(ctx, ports.Notification{
			Kind:    ports.NotificationWarning,
			Title:   "Withdrawal failed",
			Message: message,
		})
		return
	}
	h.notifier.Notify(ctx, successNotification("Withdrawal settled", message))
}
