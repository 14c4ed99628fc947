package queries

import (
	"context"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
)

// GetOrderQueryHandler reads an order snapshot from the authoritative local
// mirror. The mirror is the read model: no remote round trip happens here.
type GetOrderQueryHandler struct {
	orderStore ports.OrderStore
}

// NewGetOrderQueryHandler creates a handler for order snapshot reads.
func NewGetOrderQueryHandler(orderStore ports.OrderStore) GetOrderQueryHandler {
	return GetOrderQueryHandler{orderStore: orderStore}
}

// Handle returns the order's current snapshot, or an error unwrapping to
// errs.ErrObjectNotFound for untracked orders.
func (h GetOrderQueryHandler) Handle(_ context.Context, query GetOrderQuery) (order.Snapshot, error) {
	if err := query.Validate(); err != nil {
		return order.Snapshot{}, err
	}

	aggregate, err := h.orderStore.Get(query.OrderID())
	if err != nil {
		return order.Snapshot{}, err
	}

	return aggregate.Snapshot(), nil
}
