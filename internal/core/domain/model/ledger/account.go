// Package ledger implements the per-participant financial ledger: the
// withdrawable balance, the monotonically non-decreasing total earned, and
// the chronological withdrawal history.
package ledger

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var (
	// ErrAccountIsNotConstructed is returned when an Account was not created
	// through NewAccount or RestoreAccount.
	ErrAccountIsNotConstructed = errors.New("Account must be created via NewAccount or RestoreAccount constructor")

	// ErrInvalidAmount is returned when a withdrawal amount is non-positive
	// or exceeds the available balance. The balance and transaction history
	// are left untouched.
	ErrInvalidAmount = errors.New("amount is invalid for this operation")

	// ErrTransactionNotFound is returned when a settlement update references
	// an unknown transaction id.
	ErrTransactionNotFound = errors.New("transaction not found in ledger")
)

// Account is the aggregate root for one participant's finances. It mirrors
// the remote balance and withdrawal records.
//
// Account maintains these invariants:
//   - balance is never negative
//   - totalEarned never decreases; it grows only through order-completion credits
//   - transactions are appended in request order and never removed
type Account struct {
	participantID kernel.UUID
	balance       float64
	totalEarned   float64
	transactions  []Transaction
	isConstructed bool
}

// NewAccount creates an empty ledger for a participant.
func NewAccount(participantID kernel.UUID) (*Account, error) {
	if err := participantID.Validate(); err != nil {
		return nil, err
	}

	return &Account{
		participantID: participantID,
		isConstructed: true,
	}, nil
}

// RestoreAccount rebuilds a ledger mirror from a remote finances snapshot.
func RestoreAccount(
	participantID kernel.UUID,
	balance float64,
	totalEarned float64,
	transactions []Transaction,
) (*Account, error) {
	if err := participantID.Validate(); err != nil {
		return nil, err
	}
	if balance < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("balance is invalid",
			fmt.Errorf("%v is not greater than or equal to 0", balance))
	}
	if totalEarned < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("totalEarned is invalid",
			fmt.Errorf("%v is not greater than or equal to 0", totalEarned))
	}

	account := &Account{
		participantID: participantID,
		balance:       balance,
		totalEarned:   totalEarned,
		transactions:  make([]Transaction, len(transactions)),
		isConstructed: true,
	}
	copy(account.transactions, transactions)
	return account, nil
}

// Validate ensures the Account was created through a constructor.
func (a *Account) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAccountIsNotConstructed
	}
	return nil
}

// ParticipantID returns the ledger owner's identifier.
func (a *Account) ParticipantID() kernel.UUID {
	return a.participantID
}

// Balance returns the currently withdrawable funds.
func (a *Account) Balance() float64 {
	return a.balance
}

// TotalEarned returns the lifetime earnings from completed orders.
func (a *Account) TotalEarned() float64 {
	return a.totalEarned
}

// Transactions returns the withdrawal history in request order.
// The returned slice is a copy.
func (a *Account) Transactions() []Transaction {
	transactions := make([]Transaction, len(a.transactions))
	copy(transactions, a.transactions)
	return transactions
}

// HasPendingTransactions reports whether any withdrawal still awaits
// settlement by the remote side.
func (a *Account) HasPendingTransactions() bool {
	for _, transaction := range a.transactions {
		if transaction.Status() == TransactionPending {
			return true
		}
	}
	return false
}

// Credit increases the balance and totalEarned by the credited amount.
// Called only when an order completes; the amount is taken verbatim from the
// remote completion response.
func (a *Account) Credit(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: credit of %v", ErrInvalidAmount, amount)
	}

	a.balance += amount
	a.totalEarned += amount
	return nil
}

// Withdraw debits the balance and appends a Pending transaction with the
// remote-assigned identifier.
//
// Fails with ErrInvalidAmount when the amount is non-positive or exceeds the
// balance; in that case nothing changes.
func (a *Account) Withdraw(amount float64, transactionID string, requestedAt time.Time) (Transaction, error) {
	if amount <= 0 {
		return Transaction{}, fmt.Errorf("%w: withdrawal of %v", ErrInvalidAmount, amount)
	}
	if amount > a.balance {
		return Transaction{}, fmt.Errorf("%w: withdrawal of %v exceeds balance %v", ErrInvalidAmount, amount, a.balance)
	}

	transaction, err := NewTransaction(transactionID, amount, requestedAt, TransactionPending)
	if err != nil {
		return Transaction{}, err
	}

	a.balance -= amount
	a.transactions = append(a.transactions, transaction)
	return transaction, nil
}

// ApplyTransactionStatus reflects the settlement status reported by the
// remote side for one withdrawal.
func (a *Account) ApplyTransactionStatus(transactionID string, status TransactionStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}

	for i, transaction := range a.transactions {
		if transaction.ID() == transactionID {
			updated, err := transaction.WithStatus(status)
			if err != nil {
				return err
			}
			a.transactions[i] = updated
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrTransactionNotFound, transactionID)
}

// Clone returns a deep copy of the account. Handlers mutate a clone and
// persist it only after the corresponding remote mutation succeeded.
func (a *Account) Clone() *Account {
	clone := *a
	clone.transactions = make([]Transaction, len(a.transactions))
	copy(clone.transactions, a.transactions)
	return &clone
}

// Snapshot returns a serializable view of the ledger with transactions in
// reverse-chronological order (most recent withdrawal first).
func (a *Account) Snapshot() Snapshot {
	snapshot := Snapshot{
		ParticipantID: a.participantID.String(),
		Balance:       a.balance,
		TotalEarned:   a.totalEarned,
		Transactions:  make([]TransactionView, 0, len(a.transactions)),
	}
	for i := len(a.transactions) - 1; i >= 0; i-- {
		transaction := a.transactions[i]
		snapshot.Transactions = append(snapshot.Transactions, TransactionView{
			ID:        transaction.ID(),
			Amount:    transaction.Amount(),
			CreatedAt: transaction.CreatedAt(),
			Status:    transaction.Status().String(),
		})
	}
	return snapshot
}

// Snapshot is the serializable view of a participant's finances.
type Snapshot struct {
	ParticipantID string            `json:"participantId"`
	Balance       float64           `json:"balance"`
	TotalEarned   float64           `json:"totalEarned"`
	Transactions  []TransactionView `json:"transactions"`
}

// TransactionView is the serializable form of one withdrawal entry.
type TransactionView struct {
	ID        string    `json:"id"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"createdAt"`
	Status    string    `json:"status"`
}
