package ports

import (
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderStore holds the authoritative in-memory view of order lifecycle
// state, keyed by order id. Implementations must be safe for concurrent use
// and must return independent copies from Get so that a workflow attempt can
// mutate its working copy without exposing partial state.
type OrderStore interface {
	// Get retrieves a copy of the order mirror.
	// Returns an error unwrapping to errs.ErrObjectNotFound when the order
	// is not tracked.
	Get(id kernel.UUID) (*order.Order, error)

	// Save stores the order mirror, replacing any previous state for the
	// same id.
	Save(aggregate *order.Order)
}
