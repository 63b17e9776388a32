// Bibliograph - Book Recommendation Serving API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bibliograph

package recommend

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/tomtom215/bibliograph/internal/artifact"
)

// FactorRecommender predicts ratings from the low-rank factorization:
// the dot product of a user's factor row with each item's factor row
// approximates the user's rating for that item.
type FactorRecommender struct {
	users   *artifact.FactorMatrix
	items   *artifact.FactorMatrix
	ratings *artifact.RatingMatrix
	lookup  *CatalogLookup
}

// NewFactorRecommender builds the recommender. Nil factor matrices
// make Recommend report ErrNotLoaded; a nil rating matrix only
// disables the already-rated filter.
func NewFactorRecommender(users, items *artifact.FactorMatrix, ratings *artifact.RatingMatrix, lookup *CatalogLookup) *FactorRecommender {
	return &FactorRecommender{users: users, items: items, ratings: ratings, lookup: lookup}
}

// Recommend computes the full predicted-rating vector for the user
// and returns the top count unrated books by predicted rating. The
// whole item index is scored on every call; predictions are cheap
// enough at catalog scale that no cache is kept.
func (r *FactorRecommender) Recommend(userID, count int) ([]Item, error) {
	if r.users == nil || r.items == nil || r.lookup.catalog == nil {
		return nil, ErrNotLoaded
	}
	userVec, ok := r.users.Vector(strconv.Itoa(userID))
	if !ok {
		return nil, fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}

	var userRatings map[string]float64
	if r.ratings != nil {
		userRatings, _ = r.ratings.UserRatings(userID)
	}

	candidates := make([]scored, 0, len(r.items.Keys))
	for i, isbn := range r.items.Keys {
		if rating, rated := userRatings[isbn]; rated && rating != 0 {
			continue
		}
		candidates = append(candidates, scored{
			isbn:  isbn,
			score: dot(userVec, r.items.Factors[i]),
		})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	return resolveScored(r.lookup, candidates, count), nil
}

// dot computes the inner product over the shorter of the two vectors.
func dot(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
