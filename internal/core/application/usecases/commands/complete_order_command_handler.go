package commands

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/ledger"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// CompleteOrderCommandHandler executes the Complete transition. The remote
// "complete" mutation atomically flips the status and returns the credited
// balance, so there is a single remote call and nothing to compensate; on
// success the executor's ledger mirror grows by the returned credit.
//
// The credited amount is taken verbatim from the remote response: the
// price-to-credit policy lives in the external collaborator, not here.
type CompleteOrderCommandHandler struct {
	orderStore   ports.OrderStore
	ledgerStore  ports.LedgerStore
	orderGateway ports.OrderGateway
	notifier     ports.Notifier
	inflight     *InflightRegistry
}

// NewCompleteOrderCommandHandler creates a handler for the Complete transition.
func NewCompleteOrderCommandHandler(
	orderStore ports.OrderStore,
	ledgerStore ports.LedgerStore,
	orderGateway ports.OrderGateway,
	notifier ports.Notifier,
	inflight *InflightRegistry,
) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		orderStore:   orderStore,
		ledgerStore:  ledgerStore,
		orderGateway: orderGateway,
		notifier:     notifier,
		inflight:     inflight,
	}
}

// Handle completes the order and credits the executor.
func (h CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) (order.Snapshot, error) {
	if err := cmd.Validate(); err != nil {
		return order.Snapshot{}, err
	}

	release, err := h.inflight.Acquire(cmd.OrderID())
	if err != nil {
		return order.Snapshot{}, err
	}
	defer release()

	snapshot, credited, err := h.handle(ctx, cmd)
	if err != nil {
		workflowErr := asWorkflowError(err)
		h.notifier.Notify(ctx, failureNotification("Completion failed", workflowErr))
		return order.Snapshot{}, workflowErr
	}

	h.notifier.PublishOrderSnapshot(ctx, snapshot)
	h.notifier.Notify(ctx, successNotification("Order completed",
		fmt.Sprintf("order %s completed, %v credited to the executor", snapshot.ID, credited)))
	return snapshot, nil
}

func (h CompleteOrderCommandHandler) handle(ctx context.Context, cmd CompleteOrderCommand) (order.Snapshot, float64, error) {
	aggregate, err := h.orderStore.Get(cmd.OrderID())
	if err != nil {
		return order.Snapshot{}, 0, err
	}

	if err = aggregate.Authorize(order.Complete, cmd.ActorID()); err != nil {
		return order.Snapshot{}, 0, err
	}

	executorID := *aggregate.Executor()

	credited, err := h.orderGateway.Complete(ctx, cmd.OrderID(), cmd.ActorID())
	if err != nil {
		return order.Snapshot{}, 0, err
	}

	working := aggregate.Clone()
	if err = working.CompleteWork(); err != nil {
		return order.Snapshot{}, 0, err
	}

	account, err := h.ledgerStore.Get(executorID)
	if err != nil {
		if !errors.Is(err, errs.ErrObjectNotFound) {
			return order.Snapshot{}, 0, err
		}
		if account, err = ledger.NewAccount(executorID); err != nil {
			return order.Snapshot{}, 0, err
		}
	}

	workingAccount := account.Clone()
	if err = workingAccount.Credit(credited); err != nil {
		return order.Snapshot{}, 0, err
	}

	h.orderStore.Save(working)
	h.ledgerStore.Save(workingAccount)
	return working.Snapshot(), credited, nil
}
