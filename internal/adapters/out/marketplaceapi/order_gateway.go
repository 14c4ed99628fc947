package marketplaceapi

import (
	"context"
	"fmt"
	"net/http"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
)

type updateStatusRequest struct {
	ActorID string `json:"actorId"`
	Status  string `json:"status"`
}

type updateStatusResponse struct {
	Status string `json:"status"`
}

// UpdateStatus asks the marketplace to move the order to the given status
// and returns the status the remote actually recorded.
func (c *Client) UpdateStatus(ctx context.Context, orderID kernel.UUID, actorID kernel.UUID, status order.Status) (order.Status, error) {
	var response updateStatusResponse
	err := c.do(ctx, http.MethodPatch,
		fmt.Sprintf("/api/v1/orders/%s/status", orderID),
		updateStatusRequest{ActorID: actorID.String(), Status: status.String()},
		&response,
	)
	if err != nil {
		return order.Unknown, err
	}

	recorded, err := order.StatusFromString(response.Status)
	if err != nil {
		return order.Unknown, fmt.Errorf("%w: unknown status %q", ports.ErrRemoteUnavailable, response.Status)
	}
	return recorded, nil
}

type updateReviewCountRequest struct {
	ActorID     string `json:"actorId"`
	ReviewCount int    `json:"reviewCount"`
}

type updateReviewCountResponse struct {
	ReviewCount int `json:"reviewCount"`
}

// UpdateReviewCount sets the absolute review counter on the remote order.
func (c *Client) UpdateReviewCount(ctx context.Context, orderID kernel.UUID, actorID kernel.UUID, count int) (int, error) {
	var response updateReviewCountResponse
	err := c.do(ctx, http.MethodPatch,
		fmt.Sprintf("/api/v1/orders/%s/review-count", orderID),
		updateReviewCountRequest{ActorID: actorID.String(), ReviewCount: count},
		&response,
	)
	if err != nil {
		return 0, err
	}
	return response.ReviewCount, nil
}

type addResponseRequest struct {
	ActorID string `json:"actorId"`
}

type addResponseResponse struct {
	ActorID string `json:"actorId"`
	Status  string `json:"status"`
}

// AddResponse registers the actor as a responder on the remote order.
func (c *Client) AddResponse(ctx context.Context, orderID kernel.UUID, actorID kernel.UUID) (ports.RespondResult, error) {
	var response addResponseResponse
	err := c.do(ctx, http.MethodPost,
		fmt.Sprintf("/api/v1/orders/%s/responses", orderID),
		addResponseRequest{ActorID: actorID.String()},
		&response,
	)
	if err != nil {
		return ports.RespondResult{}, err
	}

	recordedActor, err := kernel.UUIDFromString(response.ActorID)
	if err != nil {
		return ports.RespondResult{}, fmt.Errorf("%w: malformed actor id %q", ports.ErrRemoteUnavailable, response.ActorID)
	}
	status, err := order.StatusFromString(response.Status)
	if err != nil {
		return ports.RespondResult{}, fmt.Errorf("%w: unknown status %q", ports.ErrRemoteUnavailable, response.Status)
	}
	return ports.RespondResult{ActorID: recordedActor, Status: status}, nil
}

// RemoveResponse withdraws the actor's response from the remote order.
func (c *Client) RemoveResponse(ctx context.Context, orderID kernel.UUID, actorID kernel.UUID) error {
	return c.do(ctx, http.MethodDelete,
		fmt.Sprintf("/api/v1/orders/%s/responses/%s", orderID, actorID),
		nil, nil,
	)
}

type completeOrderRequest struct {
	ActorID string `json:"actorId"`
}

type completeOrderResponse struct {
	BalanceCredited float64 `json:"balanceCredited"`
}

// Complete settles the order remotely in one call and returns the amount
// credited to the executor.
func (c *Client) Complete(ctx context.Context, orderID kernel.UUID, actorID kernel.UUID) (float64, error) {
	var response completeOrderResponse
	err := c.do(ctx, http.MethodPost,
		fmt.Sprintf("/api/v1/orders/%s/complete", orderID),
		completeOrderRequest{ActorID: actorID.String()},
		&response,
	)
	if err != nil {
		return 0, err
	}
	return response.BalanceCredited, nil
}
