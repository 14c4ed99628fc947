package commands

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
)

// StartWorkCommandHandler executes the StartWork transition as a three-step
// saga against the remote order API:
//
//  1. status update to InProgress
//  2. review-count update to reviewCount+1
//  3. response record insert for the responder, skipped when the responder
//     is already registered (accepting the same actor twice must not
//     double-count)
//
// Failure of step 2 or 3 compensates by reverting the status; failure of
// step 3 additionally reverts the review count. Step 1 failing needs no
// compensation because nothing was applied yet.
type StartWorkCommandHandler struct {
	orderStore   ports.OrderStore
	orderGateway ports.OrderGateway
	notifier     ports.Notifier
	inflight     *InflightRegistry
}

// NewStartWorkCommandHandler creates a handler for the StartWork transition.
func NewStartWorkCommandHandler(
	orderStore ports.OrderStore,
	orderGateway ports.OrderGateway,
	notifier ports.Notifier,
	inflight *InflightRegistry,
) StartWorkCommandHandler {
	return StartWorkCommandHandler{
		orderStore:   orderStore,
		orderGateway: orderGateway,
		notifier:     notifier,
		inflight:     inflight,
	}
}

// Handle moves the order into development with the responder as executor.
// On full success the mirror is stored and a snapshot published; on partial
// failure the mirror reflects exactly the steps that committed remotely.
func (h StartWorkCommandHandler) Handle(ctx context.Context, cmd StartWorkCommand) (order.Snapshot, error) {
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
		h.notifier.Notify(ctx, failureNotification("Start of work failed", workflowErr))
		return order.Snapshot{}, workflowErr
	}

	h.notifier.PublishOrderSnapshot(ctx, snapshot)
	h.notifier.Notify(ctx, successNotification("Work started",
		fmt.Sprintf("order %s is now in development", snapshot.ID)))
	return snapshot, nil
}

func (h StartWorkCommandHandler) handle(ctx context.Context, cmd StartWorkCommand) (order.Snapshot, error) {
	aggregate, err := h.orderStore.Get(cmd.OrderID())
	if err != nil {
		return order.Snapshot{}, err
	}

	if err = aggregate.Authorize(order.StartWork, cmd.ActorID()); err != nil {
		return order.Snapshot{}, err
	}
	if !aggregate.HasResponder(cmd.ResponderID()) {
		return order.Snapshot{}, order.ErrResponderNotRegistered
	}

	priorStatus := aggregate.Status()
	priorReviewCount := aggregate.ReviewCount()
	responderRegistered := aggregate.HasResponder(cmd.ResponderID())
	working := aggregate.Clone()

	steps := []sagaStep{
		{
			name: "update status",
			run: func(ctx context.Context) error {
				recorded, stepErr := h.orderGateway.UpdateStatus(ctx, cmd.OrderID(), cmd.ActorID(), order.InProgress)
				if stepErr != nil {
					return stepErr
				}
				if recorded != order.InProgress {
					return fmt.Errorf("%w: remote recorded status %s", ports.ErrRemoteConflict, recorded)
				}
				return working.StartWork(cmd.ResponderID())
			},
			compensate: func(ctx context.Context) error {
				_, compErr := h.orderGateway.UpdateStatus(ctx, cmd.OrderID(), cmd.ActorID(), priorStatus)
				return compErr
			},
		},
		{
			name: "update review count",
			run: func(ctx context.Context) error {
				recorded, stepErr := h.orderGateway.UpdateReviewCount(ctx, cmd.OrderID(), cmd.ActorID(), priorReviewCount+1)
				if stepErr != nil {
					return stepErr
				}
				return working.SetReviewCount(recorded)
			},
			compensate: func(ctx context.Context) error {
				_, compErr := h.orderGateway.UpdateReviewCount(ctx, cmd.OrderID(), cmd.ActorID(), priorReviewCount)
				return compErr
			},
		},
		{
			name: "add response",
			run: func(ctx context.Context) error {
				if responderRegistered {
					return nil
				}
				_, stepErr := h.orderGateway.AddResponse(ctx, cmd.OrderID(), cmd.ResponderID())
				if stepErr != nil {
					return stepErr
				}
				return working.AddResponder(cmd.ResponderID())
			},
		},
	}

	if err = runSaga(ctx, steps); err != nil {
		var workflowErr *WorkflowError
		if errors.As(err, &workflowErr) && workflowErr.Kind() == KindPartialFailure {
			// Committed steps were not undone; the mirror keeps whatever
			// subset actually applied so the caller can reconcile.
			h.orderStore.Save(working)
		}
		return order.Snapshot{}, err
	}

	h.orderStore.Save(working)
	return working.Snapshot(), nil
}
