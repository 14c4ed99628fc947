package ports

import (
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/rating"
)

// RatingStore caches per-participant rating aggregates. Implementations must
// be safe for concurrent use.
type RatingStore interface {
	// Get retrieves the cached aggregate for a participant.
	// The second return value reports whether an aggregate is cached.
	Get(participantID kernel.UUID) (rating.Aggregate, bool)

	// Save caches the aggregate for a participant.
	Save(participantID kernel.UUID, aggregate rating.Aggregate)
}
