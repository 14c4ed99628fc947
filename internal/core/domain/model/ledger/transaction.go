package ledger

import (
	"fmt"
	"time"

	"marketplace/internal/pkg/errs"
)

// TransactionStatus represents the settlement state of a withdrawal.
// The remote side is the source of truth for settlement: this core only
// reflects the status it is told.
type TransactionStatus int

const (
	// TransactionUnknown represents an invalid or undefined status.
	TransactionUnknown TransactionStatus = iota

	// TransactionPending is the initial status of a freshly requested
	// withdrawal.
	TransactionPending

	// TransactionCompleted indicates the withdrawal settled successfully.
	TransactionCompleted

	// TransactionFailed indicates the withdrawal was rejected downstream.
	TransactionFailed
)

// getTransactionStatusStrings returns a map of status values to their names.
func getTransactionStatusStrings() map[TransactionStatus]string {
	return map[TransactionStatus]string{
		TransactionUnknown:   "Unknown",
		TransactionPending:   "Pending",
		TransactionCompleted: "Completed",
		TransactionFailed:    "Failed",
	}
}

// TransactionStatusFromString parses the string form produced by String.
func TransactionStatusFromString(s string) (TransactionStatus, error) {
	for status, str := range getTransactionStatusStrings() {
		if status != TransactionUnknown && str == s {
			return status, nil
		}
	}
	return TransactionUnknown, errs.NewValueIsInvalidErrorWithCause("transaction status is invalid",
		fmt.Errorf("%q is not a valid transaction status", s))
}

// Validate checks if the TransactionStatus value is valid.
func (s TransactionStatus) Validate() error {
	if _, ok := getTransactionStatusStrings()[s]; !ok || s == TransactionUnknown {
		return errs.NewValueIsInvalidErrorWithCause("transaction status is invalid",
			fmt.Errorf("%d is not a valid transaction status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
func (s TransactionStatus) String() string {
	if str, ok := getTransactionStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Transaction is one entry in a participant's withdrawal history. The
// identifier is assigned by the remote side and treated as opaque.
type Transaction struct {
	id        string
	amount    float64
	createdAt time.Time
	status    TransactionStatus
}

// NewTransaction creates a validated withdrawal entry.
func NewTransaction(id string, amount float64, createdAt time.Time, status TransactionStatus) (Transaction, error) {
	if id == "" {
		return Transaction{}, errs.NewValueIsRequiredError("transaction id")
	}
	if amount <= 0 {
		return Transaction{}, errs.NewValueIsInvalidErrorWithCause("amount is invalid",
			fmt.Errorf("%v is not greater than 0", amount))
	}
	if createdAt.IsZero() {
		return Transaction{}, errs.NewValueIsRequiredError("createdAt")
	}
	if err := status.Validate(); err != nil {
		return Transaction{}, err
	}

	return Transaction{
		id:        id,
		amount:    amount,
		createdAt: createdAt,
		status:    status,
	}, nil
}

// ID returns the remote-assigned transaction identifier.
func (t Transaction) ID() string {
	return t.id
}

// Amount returns the withdrawn amount. Amounts are always positive; they are
// debited from the balance when the withdrawal is requested.
func (t Transaction) Amount() float64 {
	return t.amount
}

// CreatedAt returns when the withdrawal was requested.
func (t Transaction) CreatedAt() time.Time {
	return t.createdAt
}

// Status returns the settlement status reported by the remote side.
func (t Transaction) Status() TransactionStatus {
	return t.status
}

// WithStatus returns a copy of the transaction carrying the given settlement
// status. Transactions are value objects; the receiver is not modified.
func (t Transaction) WithStatus(status TransactionStatus) (Transaction, error) {
	if err := status.Validate(); err != nil {
		return Transaction{}, err
	}
	updated := t
	updated.status = status
	return updated, nil
}
