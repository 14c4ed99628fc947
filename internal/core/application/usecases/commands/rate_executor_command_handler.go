package commands

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/rating"
	"marketplace/internal/core/ports"
)

// RateExecutorCommandHandler executes the Rate transition: a single remote
// rating submission, mirrored by marking the order rated and growing the
// executor's cached rating aggregate.
//
// The one-rating-per-order rule is enforced three times: by the local
// hasBeenRated flag, by a remote has-rated preflight, and by the remote
// side re-validating the submission itself. Duplicate submissions racing
// past the preflight are rejected remotely; the local flag only disables
// further attempts after a success.
type RateExecutorCommandHandler struct {
	orderStore    ports.OrderStore
	ratingStore   ports.RatingStore
	ratingGateway ports.RatingGateway
	notifier      ports.Notifier
	inflight      *InflightRegistry
}

// NewRateExecutorCommandHandler creates a handler for the Rate transition.
func NewRateExecutorCommandHandler(
	orderStore ports.OrderStore,
	ratingStore ports.RatingStore,
	ratingGateway ports.RatingGateway,
	notifier ports.Notifier,
	inflight *InflightRegistry,
) RateExecutorCommandHandler {
	return RateExecutorCommandHandler{
		orderStore:    orderStore,
		ratingStore:   ratingStore,
		ratingGateway: ratingGateway,
		notifier:      notifier,
		inflight:      inflight,
	}
}

// Handle submits the rating. The order status does not change.
func (h RateExecutorCommandHandler) Handle(ctx context.Context, cmd RateExecutorCommand) (order.Snapshot, error) {
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
		h.notifier.Notify(ctx, failureNotification("Rating failed", workflowErr))
		return order.Snapshot{}, workflowErr
	}

	h.notifier.PublishOrderSnapshot(ctx, snapshot)
	h.notifier.Notify(ctx, successNotification("Rating recorded",
		fmt.Sprintf("executor of order %s rated %v", snapshot.ID, cmd.Value())))
	return snapshot, nil
}

func (h RateExecutorCommandHandler) handle(ctx context.Context, cmd RateExecutorCommand) (order.Snapshot, error) {
	aggregate, err := h.orderStore.Get(cmd.OrderID())
	if err != nil {
		return order.Snapshot{}, err
	}

	if err = aggregate.Authorize(order.Rate, cmd.ActorID()); err != nil {
		return order.Snapshot{}, err
	}

	executorID := *aggregate.Executor()

	rated, err := h.ratingGateway.HasRated(ctx, cmd.OrderID(), cmd.ActorID())
	if err != nil {
		return order.Snapshot{}, err
	}
	if rated {
		return order.Snapshot{}, order.ErrOrderAlreadyRated
	}

	executorAggregate, cached := h.ratingStore.Get(executorID)
	if !cached {
		// Seed the cache from the remote {rating, count} pair before
		// submitting, so the submission is counted exactly once. Only a
		// remote "no rating yet" answer may fall back to an empty
		// aggregate: seeding an empty one while the remote merely timed
		// out would cache a mean that forgets every prior submission.
		remote, ratingErr := h.ratingGateway.ParticipantRating(ctx, executorID)
		switch {
		case errors.Is(ratingErr, ports.ErrRemoteNotFound):
			executorAggregate = rating.NewAggregate()
		case ratingErr != nil:
			return order.Snapshot{}, ratingErr
		default:
			if executorAggregate, ratingErr = rating.RestoreAggregate(remote.Rating, remote.Count); ratingErr != nil {
				return order.Snapshot{}, ratingErr
			}
		}
	}

	if err = h.ratingGateway.SubmitRating(ctx, cmd.OrderID(), cmd.ActorID(), cmd.Value()); err != nil {
		return order.Snapshot{}, err
	}

	working := aggregate.Clone()
	if err = working.MarkRated(); err != nil {
		return order.Snapshot{}, err
	}

	updatedAggregate, err := executorAggregate.Add(cmd.Value())
	if err != nil {
		return order.Snapshot{}, err
	}

	h.orderStore.Save(working)
	h.ratingStore.Save(executorID, updatedAggregate)
	return working.Snapshot(), nil
}
