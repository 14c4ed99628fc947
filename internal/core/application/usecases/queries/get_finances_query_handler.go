package queries

import (
	"context"

	"marketplace/internal/core/domain/model/ledger"
	"marketplace/internal/core/ports"
)

// GetFinancesQueryHandler refreshes the participant's ledger mirror from the
// remote finances endpoint and returns the resulting snapshot, transactions
// most recent first. The remote side is the source of truth for settlement
// statuses, so finances reads always go through it.
type GetFinancesQueryHandler struct {
	ledgerStore    ports.LedgerStore
	financeGateway ports.FinanceGateway
}

// NewGetFinancesQueryHandler creates a handler for finances reads.
func NewGetFinancesQueryHandler(
	ledgerStore ports.LedgerStore,
	financeGateway ports.FinanceGateway,
) GetFinancesQueryHandler {
	return GetFinancesQueryHandler{
		ledgerStore:    ledgerStore,
		financeGateway: financeGateway,
	}
}

// Handle returns the refreshed ledger snapshot.
func (h GetFinancesQueryHandler) Handle(ctx context.Context, query GetFinancesQuery) (ledger.Snapshot, error) {
	if err := query.Validate(); err != nil {
		return ledger.Snapshot{}, err
	}

	remote, err := h.financeGateway.Finances(ctx, query.ParticipantID())
	if err != nil {
		return ledger.Snapshot{}, err
	}

	account, err := remote.RestoreAccount(query.ParticipantID())
	if err != nil {
		return ledger.Snapshot{}, err
	}

	h.ledgerStore.Save(account)
	return account.Snapshot(), nil
}
