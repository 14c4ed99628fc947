package commands

import (
	"context"
	"fmt"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
)

// CreateOrderCommandHandler registers a new order mirror in the store and
// publishes its first snapshot. Orders enter the lifecycle core here; every
// later transition operates on the stored mirror.
type CreateOrderCommandHandler struct {
	orderStore ports.OrderStore
	notifier   ports.Notifier
}

// NewCreateOrderCommandHandler creates a handler for order registration.
func NewCreateOrderCommandHandler(orderStore ports.OrderStore, notifier ports.Notifier) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		orderStore: orderStore,
		notifier:   notifier,
	}
}

// Handle creates the Open order mirror and publishes its snapshot.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (order.Snapshot, error) {
	if err := cmd.Validate(); err != nil {
		return order.Snapshot{}, err
	}

	aggregate, err := order.NewOrder(cmd.OrderID(), cmd.CustomerID())
	if err != nil {
		return order.Snapshot{}, asWorkflowError(err)
	}

	h.orderStore.Save(aggregate)

	snapshot := aggregate.Snapshot()
	h.notifier.PublishOrderSnapshot(ctx, snapshot)
	h.notifier.Notify(ctx, successNotification("Order published",
		fmt.Sprintf("order %s is open for responses", snapshot.ID)))

	return snapshot, nil
}
