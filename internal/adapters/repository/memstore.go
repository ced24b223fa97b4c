package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/okian/meshrank/internal/domain/model"
	"github.com/okian/meshrank/pkg/metrics"
)

// MemoryProfileStore implements ProfileStore with a map plus an insertion
// order index, so All is deterministic across batch passes.
type MemoryProfileStore struct {
	mu       sync.RWMutex
	profiles map[string]*model.Profile
	order    []string
}

// NewMemoryProfileStore creates an empty profile store.
func NewMemoryProfileStore() *MemoryProfileStore {
	return &MemoryProfileStore{
		profiles: make(map[string]*model.Profile),
	}
}

// Upsert inserts or replaces a profile by its id.
func (s *MemoryProfileStore) Upsert(_ context.Context, p *model.Profile) error {
	if p == nil || p.ProfileID == "" {
		return ErrMissingProfileID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.profiles[p.ProfileID]; !exists {
		s.order = append(s.order, p.ProfileID)
	}
	clone := *p
	s.profiles[p.ProfileID] = &clone

	metrics.UpdateProfileCount(len(s.profiles))
	return nil
}

// Profile returns the profile for id.
func (s *MemoryProfileStore) Profile(_ context.Context, id string) (*model.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[id]
	if !ok {
		return nil, fmt.Errorf("profile %s: %w", id, ErrProfileNotFound)
	}
	clone := *p
	return &clone, nil
}

// All returns every stored profile in insertion order.
func (s *MemoryProfileStore) All(_ context.Context) []*model.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.Profile, 0, len(s.order))
	for _, id := range s.order {
		clone := *s.profiles[id]
		out = append(out, &clone)
	}
	return out
}

// SetDerivedScores writes detector outputs for one batch pass.
func (s *MemoryProfileStore) SetDerivedScores(_ context.Context, id string, scores model.DerivedScores) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[id]
	if !ok {
		return fmt.Errorf("profile %s: %w", id, ErrProfileNotFound)
	}
	p.Scores = scores
	return nil
}

// Count returns the number of stored profiles.
func (s *MemoryProfileStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.profiles)
}

// pairKey identifies an ordered (user, candidate) pair.
type pairKey struct {
	userID      string
	candidateID string
}

// MemoryPairStore implements PairStore. Vectors are indexed both by pair
// key and per user in insertion order, which the recommender relies on for
// stable tie-breaking.
type MemoryPairStore struct {
	mu     sync.RWMutex
	byPair map[pairKey]model.FeatureVector
	byUser map[string][]pairKey
}

// NewMemoryPairStore creates an empty pair store.
func NewMemoryPairStore() *MemoryPairStore {
	return &MemoryPairStore{
		byPair: make(map[pairKey]model.FeatureVector),
		byUser: make(map[string][]pairKey),
	}
}

// Put stores a feature vector for its ordered pair.
func (s *MemoryPairStore) Put(_ context.Context, fv model.FeatureVector) error {
	if fv.UserID == "" || fv.TargetID == "" {
		return ErrMissingProfileID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := pairKey{userID: fv.UserID, candidateID: fv.TargetID}
	if _, exists := s.byPair[key]; !exists {
		s.byUser[fv.UserID] = append(s.byUser[fv.UserID], key)
	}
	s.byPair[key] = fv

	metrics.UpdatePairCount(len(s.byPair))
	return nil
}

// Pair returns the vector for the ordered pair.
func (s *MemoryPairStore) Pair(_ context.Context, userID, candidateID string) (model.FeatureVector, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fv, ok := s.byPair[pairKey{userID: userID, candidateID: candidateID}]
	if !ok {
		return model.FeatureVector{}, fmt.Errorf("pair %s/%s: %w", userID, candidateID, ErrPairNotFound)
	}
	return fv, nil
}

// PairsFor returns all vectors for userID in insertion order.
func (s *MemoryPairStore) PairsFor(_ context.Context, userID string) ([]model.FeatureVector, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := s.byUser[userID]
	out := make([]model.FeatureVector, 0, len(keys))
	for _, key := range keys {
		out = append(out, s.byPair[key])
	}
	return out, nil
}

// Count returns the number of stored pairs.
func (s *MemoryPairStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byPair)
}

// Reset drops all stored pairs.
func (s *MemoryPairStore) Reset(_ context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byPair = make(map[pairKey]model.FeatureVector)
	s.byUser = make(map[string][]pairKey)
	metrics.UpdatePairCount(0)
}
