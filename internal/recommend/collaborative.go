// Bibliograph - Book Recommendation Serving API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bibliograph

package recommend

import (
	"fmt"
	"sort"

	"github.com/tomtom215/bibliograph/internal/artifact"
)

// CollaborativeRecommender aggregates similarity-weighted scores
// across a user's positively rated books.
type CollaborativeRecommender struct {
	ratings *artifact.RatingMatrix
	matrix  *artifact.SimilarityMatrix
	lookup  *CatalogLookup
	policy  Policy
}

// NewCollaborativeRecommender builds the recommender. Nil artifacts
// make Recommend report ErrNotLoaded.
func NewCollaborativeRecommender(ratings *artifact.RatingMatrix, m *artifact.SimilarityMatrix, lookup *CatalogLookup, policy Policy) *CollaborativeRecommender {
	return &CollaborativeRecommender{ratings: ratings, matrix: m, lookup: lookup, policy: policy}
}

// Recommend returns up to count books for a user, scored by
// sum(rating * similarity) over the user's positively rated books.
// The sum is deliberately not normalized: books similar to many of
// the user's books accumulate higher scores. Books the user already
// rated, with any value, are excluded.
func (r *CollaborativeRecommender) Recommend(userID, count int) ([]Item, error) {
	if r.ratings == nil || r.matrix == nil || r.lookup.catalog == nil {
		return nil, ErrNotLoaded
	}
	userRatings, ok := r.ratings.UserRatings(userID)
	if !ok {
		return nil, fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}

	positive := false
	for _, rating := range userRatings {
		if rating > 0 {
			positive = true
			break
		}
	}
	if !positive {
		return nil, fmt.Errorf("user %d: %w", userID, ErrNoRatings)
	}

	scores := make(map[string]float64)
	for ratedISBN, rating := range userRatings {
		if rating <= 0 {
			continue
		}
		row, ok := r.matrix.Row(ratedISBN)
		if !ok {
			continue
		}
		for candidate, sim := range row {
			if sim <= r.policy.MinSimilarity {
				continue
			}
			if candidate == ratedISBN {
				continue
			}
			if _, rated := userRatings[candidate]; rated {
				continue
			}
			scores[candidate] += rating * sim
		}
	}

	candidates := make([]scored, 0, len(scores))
	for _, isbn := range r.lookup.catalog.ISBNs {
		if s, ok := scores[isbn]; ok {
			candidates = append(candidates, scored{isbn: isbn, score: s})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	return resolveScored(r.lookup, candidates, count), nil
}
