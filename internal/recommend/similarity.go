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

// SimilarityRecommender ranks other books by precomputed item-item
// similarity to a given book.
type SimilarityRecommender struct {
	matrix *artifact.SimilarityMatrix
	lookup *CatalogLookup
}

// NewSimilarityRecommender builds the recommender. A nil matrix makes
// Recommend report ErrNotLoaded.
func NewSimilarityRecommender(m *artifact.SimilarityMatrix, lookup *CatalogLookup) *SimilarityRecommender {
	return &SimilarityRecommender{matrix: m, lookup: lookup}
}

// Recommend returns up to count books most similar to isbn, descending
// by similarity, ties broken by catalog order. The book itself is
// never included. count must be positive; the caller clamps it.
func (r *SimilarityRecommender) Recommend(isbn string, count int) ([]Item, error) {
	if r.matrix == nil || r.lookup.catalog == nil {
		return nil, ErrNotLoaded
	}
	row, ok := r.matrix.Row(isbn)
	if !ok {
		return nil, fmt.Errorf("item %s: %w", isbn, ErrNotFound)
	}

	// Candidates are gathered in catalog order so equal scores keep a
	// stable, reproducible ordering.
	candidates := make([]scored, 0, len(row))
	for _, other := range r.lookup.catalog.ISBNs {
		if other == isbn {
			continue
		}
		if sim, ok := row[other]; ok {
			candidates = append(candidates, scored{isbn: other, score: sim})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	return resolveScored(r.lookup, candidates, count), nil
}
