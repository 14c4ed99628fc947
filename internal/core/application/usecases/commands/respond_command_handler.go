package commands

import (
	"context"
	"fmt"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
)

// RespondCommandHandler executes the Respond transition: a single remote
// "record response" mutation mirrored into the local responder set. The
// remote side may promote the order's status as part of recording the
// response; whatever it reports is mirrored as-is.
type RespondCommandHandler struct {
	orderStore   ports.OrderStore
	orderGateway ports.OrderGateway
	notifier     ports.Notifier
	inflight     *InflightRegistry
}

// NewRespondCommandHandler creates a handler for the Respond transition.
func NewRespondCommandHandler(
	orderStore ports.OrderStore,
	orderGateway ports.OrderGateway,
	notifier ports.Notifier,
	inflight *InflightRegistry,
) RespondCommandHandler {
	return RespondCommandHandler{
		orderStore:   orderStore,
		orderGateway: orderGateway,
		notifier:     notifier,
		inflight:     inflight,
	}
}

// Handle records the actor's response. Single-step: the remote call is
// inherently atomic, so there is nothing to compensate. Responding twice
// with the same actor leaves exactly one responder entry.
func (h RespondCommandHandler) Handle(ctx context.Context, cmd RespondCommand) (order.Snapshot, error) {
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
		h.notifier.Notify(ctx, failureNotification("Response failed", workflowErr))
		return order.Snapshot{}, workflowErr
	}

	h.notifier.PublishOrderSnapshot(ctx, snapshot)
	h.notifier.Notify(ctx, successNotification("Response recorded",
		fmt.Sprintf("actor %s responded to order %s", cmd.ActorID(), snapshot.ID)))
	return snapshot, nil
}

func (h RespondCommandHandler) handle(ctx context.Context, cmd RespondCommand) (order.Snapshot, error) {
	aggregate, err := h.orderStore.Get(cmd.OrderID())
	if err != nil {
		return order.Snapshot{}, err
	}

	if err = aggregate.Authorize(order.Respond, cmd.ActorID()); err != nil {
		return order.Snapshot{}, err
	}

	result, err := h.orderGateway.AddResponse(ctx, cmd.OrderID(), cmd.ActorID())
	if err != nil {
		return order.Snapshot{}, err
	}

	working := aggregate.Clone()
	if err = working.RecordResponse(cmd.ActorID(), result.Status); err != nil {
		return order.Snapshot{}, err
	}

	h.orderStore.Save(working)
	return working.Snapshot(), nil
}
