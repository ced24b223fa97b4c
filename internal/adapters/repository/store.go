// Package repository defines the profile and pair store interfaces and
// their in-memory implementations.
package repository

import (
	"context"

	"github.com/okian/meshrank/internal/domain/model"
)

// ProfileStore provides access to ingested profiles and their derived
// detector scores.
type ProfileStore interface {
	// Upsert inserts or replaces a profile by its id.
	Upsert(ctx context.Context, p *model.Profile) error

	// Profile returns the profile for id.
	// Returns ErrProfileNotFound if the id is unknown.
	Profile(ctx context.Context, id string) (*model.Profile, error)

	// All returns every stored profile in insertion order.
	All(ctx context.Context) []*model.Profile

	// SetDerivedScores writes the per-profile detector outputs for one
	// batch pass.
	SetDerivedScores(ctx context.Context, id string, scores model.DerivedScores) error

	// Count returns the number of stored profiles.
	Count(ctx context.Context) int
}

// PairStore provides access to precomputed feature vectors, keyed by the
// ordered (user, candidate) pair.
type PairStore interface {
	// Put stores a feature vector, replacing any prior vector for the
	// same ordered pair.
	Put(ctx context.Context, fv model.FeatureVector) error

	// Pair returns the vector for the ordered pair.
	// Returns ErrPairNotFound if it was never scored.
	Pair(ctx context.Context, userID, candidateID string) (model.FeatureVector, error)

	// PairsFor returns all vectors with userID on the user side, in
	// insertion order.
	PairsFor(ctx context.Context, userID string) ([]model.FeatureVector, error)

	// Count returns the number of stored pairs.
	Count(ctx context.Context) int

	// Reset drops all stored pairs, used when the corpus is rescored.
	Reset(ctx context.Context)
}
