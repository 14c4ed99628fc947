package memstore

import (
	"sync"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/ledger"
	"marketplace/internal/pkg/errs"
)

// LedgerStore is an RWMutex-guarded map of ledger accounts keyed by
// participant id.
type LedgerStore struct {
	mu       sync.RWMutex
	accounts map[string]*ledger.Account
}

// NewLedgerStore creates an empty ledger store.
func NewLedgerStore() *LedgerStore {
	return &LedgerStore{
		accounts: make(map[string]*ledger.Account),
	}
}

// Get returns a deep copy of the participant's ledger, or an error
// unwrapping to errs.ErrObjectNotFound.
func (s *LedgerStore) Get(participantID kernel.UUID) (*ledger.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[participantID.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("participantID", participantID.String())
	}
	return account.Clone(), nil
}

// Save stores a deep copy of the account, replacing any previous state.
func (s *LedgerStore) Save(account *ledger.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts[account.ParticipantID().String()] = account.Clone()
}

// All returns deep copies of every tracked ledger.
func (s *LedgerStore) All() []*ledger.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accounts := make([]*ledger.Account, 0, len(s.accounts))
	for _, account := range s.accounts {
		accounts = append(accounts, account.Clone())
	}
	return accounts
}
