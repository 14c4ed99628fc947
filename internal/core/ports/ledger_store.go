package ports

import (
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/ledger"
)

// LedgerStore holds the in-memory ledger mirrors, keyed by participant id.
// Implementations must be safe for concurrent use and must return
// independent copies from Get.
type LedgerStore interface {
	// Get retrieves a copy of the participant's ledger mirror.
	// Returns an error unwrapping to errs.ErrObjectNotFound when no ledger
	// is tracked for the participant.
	Get(participantID kernel.UUID) (*ledger.Account, error)

	// Save stores the ledger mirror, replacing any previous state for the
	// same participant.
	Save(account *ledger.Account)

	// All returns copies of every tracked ledger. Used by the settlement
	// job to find accounts with pending withdrawals.
	All() []*ledger.Account
}
