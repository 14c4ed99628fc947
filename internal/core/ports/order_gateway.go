package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// RespondResult is the remote side's answer to a response registration.
// The remote side may promote the order status as part of recording the
// response; the reported status is mirrored locally as-is.
type RespondResult struct {
	ActorID kernel.UUID
	Status  order.Status
}

// OrderGateway is the remote order mutation capability consumed by the
// workflow. Each call is a single-resource mutation; there is no
// multi-operation transaction on the remote side. Calls are keyed by order id
// plus actor id so that repeated delivery is safe to retry.
//
// The acting participant is threaded explicitly into every call; gateway
// implementations attach the corresponding credential. Implementations map
// failures onto the ErrRemote* sentinels in this package.
type OrderGateway interface {
	// UpdateStatus sets the order's lifecycle status and returns the status
	// the remote side recorded.
	UpdateStatus(ctx context.Context, orderID, actorID kernel.UUID, status order.Status) (order.Status, error)

	// UpdateReviewCount sets the order's companion review counter and
	// returns the recorded value.
	UpdateReviewCount(ctx context.Context, orderID, actorID kernel.UUID, count int) (int, error)

	// AddResponse registers the actor's interest in the order.
	AddResponse(ctx context.Context, orderID, actorID kernel.UUID) (RespondResult, error)

	// RemoveResponse withdraws the actor's response from the order.
	RemoveResponse(ctx context.Context, orderID, actorID kernel.UUID) error

	// Complete atomically finishes the order and returns the balance
	// credited to the executor. The remote call is all-or-nothing.
	Complete(ctx context.Context, orderID, actorID kernel.UUID) (float64, error)
}
