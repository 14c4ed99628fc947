package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetParticipantRatingQueryIsNotConstructed = errors.New(
	"GetParticipantRatingQuery must be created via NewGetParticipantRatingQuery constructor",
)

// GetParticipantRatingQuery retrieves a participant's aggregate rating.
type GetParticipantRatingQuery struct {
	participantID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetParticipantRatingQuery creates a query for a participant's rating.
func NewGetParticipantRatingQuery(participantID kernel.UUID) (GetParticipantRatingQuery, error) {
	if err := participantID.Validate(); err != nil {
		return GetParticipantRatingQuery{}, err
	}

	return GetParticipantRatingQuery{
		participantID: participantID,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetParticipantRatingQuery) Validate() error {
	return q.guard.Validate(ErrGetParticipantRatingQueryIsNotConstructed)
}

// ParticipantID returns the queried participant's identifier.
func (q GetParticipantRatingQuery) ParticipantID() kernel.UUID {
	return q.participantID
}

// GetParticipantRatingQueryResponse is the rating read model: the one-decimal
// mean and the number of submissions behind it.
type GetParticipantRatingQueryResponse struct {
	ParticipantID string  `json:"participantId"`
	Rating        float64 `json:"rating"`
	Count         int     `json:"count"`
}
