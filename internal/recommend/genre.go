// Bibliograph - Book Recommendation Serving API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bibliograph

package recommend

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/tomtom215/bibliograph/internal/artifact"
)

// itemStats aggregates the positive ratings for one book.
type itemStats struct {
	Count int
	Sum   float64
	Dist  map[int]int
}

// Avg returns the average positive rating, 0 when unrated.
func (s itemStats) Avg() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.Sum / float64(s.Count)
}

// buildItemStats derives per-book rating aggregates from the rating
// matrix. Computed once at service construction; the matrix is
// immutable after load.
func buildItemStats(ratings *artifact.RatingMatrix) map[string]itemStats {
	stats := make(map[string]itemStats)
	if ratings == nil {
		return stats
	}
	for _, userRatings := range ratings.Ratings {
		for isbn, rating := range userRatings {
			if rating <= 0 {
				continue
			}
			s := stats[isbn]
			s.Count++
			s.Sum += rating
			if s.Dist == nil {
				s.Dist = make(map[int]int)
			}
			s.Dist[int(math.Round(rating))]++
			stats[isbn] = s
		}
	}
	return stats
}

// Genres is the fixed list of genre terms exposed for browsing. The
// catalog carries no genre taxonomy, so genre queries are substring
// matches against book metadata; this list names the terms the UI
// offers.
var Genres = []string{
	"fantasy",
	"mystery",
	"romance",
	"science fiction",
	"thriller",
	"history",
	"horror",
	"poetry",
	"classic",
	"children",
}

// genreRanking ranks catalog books matching term by
// avgRating * ln(ratingCount + 1), keeping only books with at least
// GenreMinRatings positive ratings, top GenreLimit.
func (s *Service) genreRanking(term string) ([]Item, error) {
	q := strings.ToLower(strings.TrimSpace(term))
	if q == "" {
		return nil, fmt.Errorf("blank genre: %w", ErrInvalidArgument)
	}
	catalog := s.lookup.catalog
	if catalog == nil || s.stats == nil {
		return nil, ErrNotLoaded
	}

	type ranked struct {
		item  Item
		score float64
	}
	matches := make([]ranked, 0, s.policy.GenreLimit)
	for _, isbn := range catalog.ISBNs {
		b, ok := catalog.Get(isbn)
		if !ok {
			continue
		}
		if !strings.Contains(strings.ToLower(b.Title), q) &&
			!strings.Contains(strings.ToLower(b.Author), q) &&
			!strings.Contains(strings.ToLower(b.Publisher), q) {
			continue
		}
		st := s.stats[isbn]
		if st.Count < s.policy.GenreMinRatings {
			continue
		}
		avg := st.Avg()
		score := avg * math.Log(float64(st.Count)+1)
		matches = append(matches, ranked{
			item: Item{
				ISBN:        b.ISBN,
				Title:       b.Title,
				Author:      b.Author,
				Year:        b.Year,
				Publisher:   b.Publisher,
				ImageURL:    b.ImageURLMedium,
				Score:       score,
				RatingCount: st.Count,
				AvgRating:   avg,
			},
			score: score,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})
	if len(matches) > s.policy.GenreLimit {
		matches = matches[:s.policy.GenreLimit]
	}

	items := make([]Item, len(matches))
	for i, m := range matches {
		items[i] = m.item
	}
	return items, nil
}
