package marketplaceapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
)

type financesResponse struct {
	Balance      float64               `json:"balance"`
	TotalEarned  float64               `json:"totalEarned"`
	Transactions []transactionResponse `json:"transactions"`
}

type transactionResponse struct {
	ID        string    `json:"id"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"createdAt"`
	Status    string    `json:"status"`
}

// Finances fetches the participant's balance, lifetime earnings and
// transaction history.
func (c *Client) Finances(ctx context.Context, participantID kernel.UUID) (ports.RemoteFinances, error) {
	var response financesResponse
	err := c.do(ctx, http.MethodGet,
		fmt.Sprintf("/api/v1/participants/%s/finances", participantID),
		nil, &response,
	)
	if err != nil {
		return ports.RemoteFinances{}, err
	}

	finances := ports.RemoteFinances{
		Balance:      response.Balance,
		TotalEarned:  response.TotalEarned,
		Transactions: make([]ports.RemoteTransaction, 0, len(response.Transactions)),
	}
	for _, tx := range response.Transactions {
		finances.Transactions = append(finances.Transactions, ports.RemoteTransaction{
			ID:        tx.ID,
			Amount:    tx.Amount,
			CreatedAt: tx.CreatedAt,
			Status:    tx.Status,
		})
	}
	return finances, nil
}

type withdrawRequest struct {
	Amount float64 `json:"amount"`
}

type withdrawResponse struct {
	TransactionID string `json:"transactionId"`
}

// Withdraw starts a payout from the participant's balance and returns the
// identifier of the pending remote transaction.
func (c *Client) Withdraw(ctx context.Context, participantID kernel.UUID, amount float64) (string, error) {
	var response withdrawResponse
	err := c.do(ctx, http.MethodPost,
		fmt.Sprintf("/api/v1/participants/%s/withdraw", participantID),
		withdrawRequest{Amount: amount},
		&response,
	)
	if err != nil {
		return "", err
	}
	if response.TransactionID == "" {
		return "", fmt.Errorf("%w: empty transaction id", ports.ErrRemoteUnavailable)
	}
	return response.TransactionID, nil
}
