package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
)

// ParticipantRating is the remote aggregate rating for one participant:
// the one-decimal mean of received ratings and their count.
type ParticipantRating struct {
	Rating float64
	Count  int
}

// RatingGateway is the remote rating capability. Rating submissions are
// append-only; the remote side re-validates that an order is rated at most
// once per customer.
type RatingGateway interface {
	// SubmitRating records the customer's rating of the executor for one
	// completed order.
	SubmitRating(ctx context.Context, orderID, actorID kernel.UUID, value float64) error

	// HasRated reports whether the acting customer has already rated the
	// order.
	HasRated(ctx context.Context, orderID, actorID kernel.UUID) (bool, error)

	// ParticipantRating returns the participant's current aggregate rating.
	ParticipantRating(ctx context.Context, participantID kernel.UUID) (ParticipantRating, error)
}
