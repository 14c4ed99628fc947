package queries

import (
	"context"

	"marketplace/internal/core/domain/model/rating"
	"marketplace/internal/core/ports"
)

// GetParticipantRatingQueryHandler serves a participant's aggregate rating
// from the local cache, seeding it from the remote {rating, count} pair on a
// miss.
type GetParticipantRatingQueryHandler struct {
	ratingStore   ports.RatingStore
	ratingGateway ports.RatingGateway
}

// NewGetParticipantRatingQueryHandler creates a handler for rating reads.
func NewGetParticipantRatingQueryHandler(
	ratingStore ports.RatingStore,
	ratingGateway ports.RatingGateway,
) GetParticipantRatingQueryHandler {
	return GetParticipantRatingQueryHandler{
		ratingStore:   ratingStore,
		ratingGateway: ratingGateway,
	}
}

// Handle returns the participant's mean rating and submission count.
// A participant with no submissions reads as {0, 0}.
func (h GetParticipantRatingQueryHandler) Handle(
	ctx context.Context,
	query GetParticipantRatingQuery,
) (GetParticipantRatingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetParticipantRatingQueryResponse{}, err
	}

	aggregate, cached := h.ratingStore.Get(query.ParticipantID())
	if !cached {
		remote, err := h.ratingGateway.ParticipantRating(ctx, query.ParticipantID())
		if err != nil {
			return GetParticipantRatingQueryResponse{}, err
		}

		if aggregate, err = rating.RestoreAggregate(remote.Rating, remote.Count); err != nil {
			return GetParticipantRatingQueryResponse{}, err
		}

		h.ratingStore.Save(query.ParticipantID(), aggregate)
	}

	return GetParticipantRatingQueryResponse{
		ParticipantID: query.ParticipantID().String(),
		Rating:        aggregate.Mean(),
		Count:         aggregate.Count(),
	}, nil
}
