package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/ledger"
)

// RemoteTransaction is one withdrawal entry as reported by the remote side.
type RemoteTransaction struct {
	ID        string
	Amount    float64
	CreatedAt time.Time
	Status    string
}

// RemoteFinances is the remote finances snapshot for one participant.
type RemoteFinances struct {
	Balance      float64
	TotalEarned  float64
	Transactions []RemoteTransaction
}

// RestoreAccount rebuilds the participant's ledger mirror from this
// snapshot, parsing each transaction's settlement status by name.
func (f RemoteFinances) RestoreAccount(participantID kernel.UUID) (*ledger.Account, error) {
	transactions := make([]ledger.Transaction, 0, len(f.Transactions))
	for _, entry := range f.Transactions {
		status, err := ledger.TransactionStatusFromString(entry.Status)
		if err != nil {
			return nil, err
		}
		transaction, err := ledger.NewTransaction(entry.ID, entry.Amount, entry.CreatedAt, status)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, transaction)
	}

	return ledger.RestoreAccount(participantID, f.Balance, f.TotalEarned, transactions)
}

// FinanceGateway is the remote balance/withdrawal capability. The remote
// side owns withdrawal settlement; this core only reflects the statuses it
// reports.
type FinanceGateway interface {
	// Finances returns the participant's current remote balance, lifetime
	// earnings and withdrawal history.
	Finances(ctx context.Context, participantID kernel.UUID) (RemoteFinances, error)

	// Withdraw requests a withdrawal and returns the remote-assigned
	// transaction identifier.
	Withdraw(ctx context.Context, participantID kernel.UUID, amount float64) (string, error)
}
