package marketplaceapi

import (
	"context"
	"fmt"
	"net/http"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
)

type submitRatingRequest struct {
	ActorID string  `json:"actorId"`
	Value   float64 `json:"value"`
}

// SubmitRating records the customer's rating of the order's executor.
func (c *Client) SubmitRating(ctx context.Context, orderID kernel.UUID, actorID kernel.UUID, value float64) error {
	return c.do(ctx, http.MethodPost,
		fmt.Sprintf("/api/v1/orders/%s/ratings", orderID),
		submitRatingRequest{ActorID: actorID.String(), Value: value},
		nil,
	)
}

type hasRatedResponse struct {
	HasRated bool `json:"hasRated"`
}

// HasRated reports whether the actor already rated the order.
func (c *Client) HasRated(ctx context.Context, orderID kernel.UUID, actorID kernel.UUID) (bool, error) {
	var response hasRatedResponse
	err := c.do(ctx, http.MethodGet,
		fmt.Sprintf("/api/v1/orders/%s/ratings/%s", orderID, actorID),
		nil, &response,
	)
	if err != nil {
		return false, err
	}
	return response.HasRated, nil
}

type participantRatingResponse struct {
	Rating float64 `json:"rating"`
	Count  int     `json:"count"`
}

// ParticipantRating fetches the participant's current aggregate rating.
func (c *Client) ParticipantRating(ctx context.Context, participantID kernel.UUID) (ports.ParticipantRating, error) {
	var response participantRatingResponse
	err := c.do(ctx, http.MethodGet,
		fmt.Sprintf("/api/v1/participants/%s/rating", participantID),
		nil, &response,
	)
	if err != nil {
		return ports.ParticipantRating{}, err
	}
	return ports.ParticipantRating{Rating: response.Rating, Count: response.Count}, nil
}
