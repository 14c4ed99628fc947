package commands

import (
	"context"
	"fmt"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
)

// CancelOrderCommandHandler executes the Cancel transition: status back to
// Open, review count down by one, and the executor's response removed.
//
// Cancel is deliberately best-effort, not compensated: undoing a cancel is
// not semantically defined, so all three remote calls are attempted even if
// one fails, failures are aggregated into a PartialFailure, and the local
// mirror reconciles to whatever subset actually succeeded remotely.
type CancelOrderCommandHandler struct {
	orderStore   ports.OrderStore
	orderGateway ports.OrderGateway
	notifier     ports.Notifier
	inflight     *InflightRegistry
}

// NewCancelOrderCommandHandler creates a handler for the Cancel transition.
func NewCancelOrderCommandHandler(
	orderStore ports.OrderStore,
	orderGateway ports.OrderGateway,
	notifier ports.Notifier,
	inflight *InflightRegistry,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		orderStore:   orderStore,
		orderGateway: orderGateway,
		notifier:     notifier,
		inflight:     inflight,
	}
}

// Handle reopens the order. Allowed for the customer or the current
// executor while the order is InProgress.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (order.Snapshot, error) {
	if err := cmd.Validate(); err != nil {
		return order.Snapshot{}, err
	}

	release, err := h.inflight.Acquire(cmd.OrderID())
	if err != nil {
		return order.Snapshot{}, err
	}
	defer release()

	snapshot, err := h.handle(ctx, cmd)
	if err != nil {
		workflowErr := asWorkflowError(err)
		h.notifier.Notify(ctx, failureNotification("Cancellation failed", workflowErr))
		return order.Snapshot{}, workflowErr
	}

	h.notifier.PublishOrderSnapshot(ctx, snapshot)
	h.notifier.Notify(ctx, successNotification("Order cancelled",
		fmt.Sprintf("order %s is open again", snapshot.ID)))
	return snapshot, nil
}

func (h CancelOrderCommandHandler) handle(ctx context.Context, cmd CancelOrderCommand) (order.Snapshot, error) {
	aggregate, err := h.orderStore.Get(cmd.OrderID())
	if err != nil {
		return order.Snapshot{}, err
	}

	if err = aggregate.Authorize(order.Cancel, cmd.ActorID()); err != nil {
		return order.Snapshot{}, err
	}

	executorID := *aggregate.Executor()
	priorReviewCount := aggregate.ReviewCount()
	restoredCount := priorReviewCount - 1
	if restoredCount < 0 {
		restoredCount = 0
	}
	working := aggregate.Clone()

	steps := []sagaStep{
		{
			name: "update status",
			run: func(ctx context.Context) error {
				_, stepErr := h.orderGateway.UpdateStatus(ctx, cmd.OrderID(), cmd.ActorID(), order.Open)
				if stepErr != nil {
					return stepErr
				}
				return working.Reopen()
			},
		},
		{
			name: "update review count",
			run: func(ctx context.Context) error {
				recorded, stepErr := h.orderGateway.UpdateReviewCount(ctx, cmd.OrderID(), cmd.ActorID(), restoredCount)
				if stepErr != nil {
					return stepErr
				}
				return working.SetReviewCount(recorded)
			},
		},
		{
			name: "remove response",
			run: func(ctx context.Context) error {
				if stepErr := h.orderGateway.RemoveResponse(ctx, cmd.OrderID(), executorID); stepErr != nil {
					return stepErr
				}
				return working.RemoveResponder(executorID)
			},
		},
	}

	applied, failed, firstErr := runBestEffort(ctx, steps)
	// The mirror keeps the subset that applied remotely, even on failure.
	h.orderStore.Save(working)

	if firstErr != nil {
		return order.Snapshot{}, NewPartialFailureError(applied, failed, firstErr)
	}

	return working.Snapshot(), nil
}
