package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/ledger"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// WithdrawCommandHandler requests a withdrawal against the remote side and
// mirrors it into the local ledger as a Pending transaction. The remote side
// owns settlement; the settlement job later reconciles the status.
type WithdrawCommandHandler struct {
	ledgerStore    ports.LedgerStore
	financeGateway ports.FinanceGateway
	notifier       ports.Notifier
	now            func() time.Time
}

// NewWithdrawCommandHandler creates a handler for withdrawal requests.
func NewWithdrawCommandHandler(
	ledgerStore ports.LedgerStore,
	financeGateway ports.FinanceGateway,
	notifier ports.Notifier,
) WithdrawCommandHandler {
	return WithdrawCommandHandler{
		ledgerStore:    ledgerStore,
		financeGateway: financeGateway,
		notifier:       notifier,
		now:            time.Now,
	}
}

// Handle validates the amount against the mirrored balance, requests the
// withdrawal remotely and appends the Pending transaction. An invalid amount
// fails with InvalidAmount and leaves balance and history untouched.
func (h WithdrawCommandHandler) Handle(ctx context.Context, cmd WithdrawCommand) (ledger.Snapshot, error) {
	if err := cmd.Validate(); err != nil {
		return ledger.Snapshot{}, err
	}

	snapshot, err := h.handle(ctx, cmd)
	if err != nil {
		workflowErr := asWorkflowError(err)
		h.notifier.Notify(ctx, failureNotification("Withdrawal failed", workflowErr))
		return ledger.Snapshot{}, workflowErr
	}

	h.notifier.Notify(ctx, successNotification("Withdrawal requested",
		fmt.Sprintf("%v withdrawal pending for participant %s", cmd.Amount(), snapshot.ParticipantID)))
	return snapshot, nil
}

func (h WithdrawCommandHandler) handle(ctx context.Context, cmd WithdrawCommand) (ledger.Snapshot, error) {
	account, err := h.account(ctx, cmd.ParticipantID())
	if err != nil {
		return ledger.Snapshot{}, err
	}

	if cmd.Amount() > account.Balance() {
		return ledger.Snapshot{}, fmt.Errorf("%w: withdrawal of %v exceeds balance %v",
			ledger.ErrInvalidAmount, cmd.Amount(), account.Balance())
	}

	transactionID, err := h.financeGateway.Withdraw(ctx, cmd.ParticipantID(), cmd.Amount())
	if err != nil {
		return ledger.Snapshot{}, err
	}

	working := account.Clone()
	if _, err = working.Withdraw(cmd.Amount(), transactionID, h.now()); err != nil {
		return ledger.Snapshot{}, err
	}

	h.ledgerStore.Save(working)
	return working.Snapshot(), nil
}

// account returns the tracked ledger mirror, refreshing it from the remote
// finances snapshot when the participant is not tracked yet.
func (h WithdrawCommandHandler) account(ctx context.Context, participantID kernel.UUID) (*ledger.Account, error) {
	account, err := h.ledgerStore.Get(participantID)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	remote, err := h.financeGateway.Finances(ctx, participantID)
	if err != nil {
		return nil, err
	}

	account, err = remote.RestoreAccount(participantID)
	if err != nil {
		return nil, err
	}

	h.ledgerStore.Save(account)
	return account.Clone(), nil
}
