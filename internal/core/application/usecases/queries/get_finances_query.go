package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetFinancesQueryIsNotConstructed = errors.New(
	"GetFinancesQuery must be created via NewGetFinancesQuery constructor",
)

// GetFinancesQuery retrieves a participant's balance, lifetime earnings and
// withdrawal history.
type GetFinancesQuery struct {
	participantID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetFinancesQuery creates a query for a participant's finances.
func NewGetFinancesQuery(participantID kernel.UUID) (GetFinancesQuery, error) {
	if err := participantID.Validate(); err != nil {
		return GetFinancesQuery{}, err
	}

	return GetFinancesQuery{
		participantID: participantID,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetFinancesQuery) Validate() error {
	return q.guard.Validate(ErrGetFinancesQueryIsNotConstructed)
}

// ParticipantID returns the queried participant's identifier.
func (q GetFinancesQuery) ParticipantID() kernel.UUID {
	return q.participantID
}
