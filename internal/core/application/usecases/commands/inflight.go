package commands

import (
	"fmt"
	"sync"

	"marketplace/internal/core/domain/model/kernel"
)

// InflightRegistry serializes transitions per order id: while one transition
// attempt is running for an order, a second attempt against the same order is
// rejected with a Conflict-kind error. Transitions on different orders are
// independent and proceed concurrently.
//
// Rejection (rather than queueing) keeps the caller's picture simple: a
// rejected request can be retried once the first attempt settles.
type InflightRegistry struct {
	mu     sync.Mutex
	active map[string]struct{}
}

// NewInflightRegistry creates an empty registry. One registry instance is
// shared by all transition handlers.
func NewInflightRegistry() *InflightRegistry {
	return &InflightRegistry{
		active: make(map[string]struct{}),
	}
}

// Acquire marks a transition as in flight for the order and returns the
// release callback. Fails with a Conflict-kind WorkflowError when another
// transition for the same order is already running.
func (r *InflightRegistry) Acquire(orderID kernel.UUID) (func(), error) {
	key := orderID.String()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, busy := r.active[key]; busy {
		return nil, NewWorkflowError(KindConflict,
			fmt.Sprintf("another transition for order %s is in flight", key), nil)
	}

	r.active[key] = struct{}{}
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.active, key)
	}, nil
}
