// Package memstore provides the in-memory authoritative mirrors for orders,
// rating aggregates and ledgers. All stores are safe for concurrent use and
// hand out deep copies, so workflow handlers can mutate working copies
// without exposing partial state.
package memstore

import (
	"sync"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
)

// OrderStore is an RWMutex-guarded map of order aggregates keyed by id.
type OrderStore struct {
	mu     sync.RWMutex
	orders map[string]*order.Order
}

// NewOrderStore creates an empty order store.
func NewOrderStore() *OrderStore {
	return &OrderStore{
		orders: make(map[string]*order.Order),
	}
}

// Get returns a deep copy of the tracked order, or an error unwrapping to
// errs.ErrObjectNotFound.
func (s *OrderStore) Get(id kernel.UUID) (*order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	aggregate, ok := s.orders[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("orderID", id.String())
	}
	return aggregate.Clone(), nil
}

// Save stores a deep copy of the order, replacing any previous state.
func (s *OrderStore) Save(aggregate *order.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders[aggregate.ID().String()] = aggregate.Clone()
}
