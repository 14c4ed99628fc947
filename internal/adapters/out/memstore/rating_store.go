package memstore

import (
	"sync"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/rating"
)

// RatingStore caches rating aggregates per participant. Aggregates are value
// objects, so no copying is needed on the way in or out.
type RatingStore struct {
	mu         sync.RWMutex
	aggregates map[string]rating.Aggregate
}

// NewRatingStore creates an empty rating cache.
func NewRatingStore() *RatingStore {
	return &RatingStore{
		aggregates: make(map[string]rating.Aggregate),
	}
}

// Get returns the cached aggregate and whether one exists.
func (s *RatingStore) Get(participantID kernel.UUID) (rating.Aggregate, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	aggregate, ok := s.aggregates[participantID.String()]
	return aggregate, ok
}

// Save caches the aggregate for the participant.
func (s *RatingStore) Save(participantID kernel.UUID, aggregate rating.Aggregate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.aggregates[participantID.String()] = aggregate
}
