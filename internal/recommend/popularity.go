// Bibliograph - Book Recommendation Serving API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bibliograph

package recommend

import (
	"github.com/tomtom215/bibliograph/internal/artifact"
)

// PopularityRecommender serves a prefix of the static, precomputed
// popularity table. No per-request computation beyond metadata
// resolution.
type PopularityRecommender struct {
	table  *artifact.PopularityTable
	lookup *CatalogLookup
}

// NewPopularityRecommender builds the recommender. A nil table makes
// Recommend report ErrNotLoaded.
func NewPopularityRecommender(t *artifact.PopularityTable, lookup *CatalogLookup) *PopularityRecommender {
	return &PopularityRecommender{table: t, lookup: lookup}
}

// Recommend returns the first count entries of the popularity table
// with metadata resolved. Entries missing from the catalog are
// skipped, so recommend(n1) stays a prefix of recommend(n2) for
// n1 < n2.
func (r *PopularityRecommender) Recommend(count int) ([]Item, error) {
	if r.table == nil || r.lookup.catalog == nil {
		return nil, ErrNotLoaded
	}

	items := make([]Item, 0, count)
	for _, entry := range r.table.Entries {
		if len(items) >= count {
			break
		}
		b, err := r.lookup.FindByID(entry.ISBN)
		if err != nil {
			continue
		}
		items = append(items, Item{
			ISBN:        b.ISBN,
			Title:       b.Title,
			Author:      b.Author,
			Year:        b.Year,
			Publisher:   b.Publisher,
			ImageURL:    b.ImageURLMedium,
			Score:       entry.Score,
			RatingCount: entry.RatingCount,
			AvgRating:   entry.AvgRating,
		})
	}
	return items, nil
}
