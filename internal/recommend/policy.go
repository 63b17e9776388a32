// Bibliograph - Book Recommendation Serving API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bibliograph

package recommend

import "fmt"

// Policy holds the shared serving policies applied across all
// recommenders. The similarity threshold and genre minimums are
// deliberate constants of the trained artifacts; changing them changes
// recommendation output materially.
type Policy struct {
	// MinSimilarity is the threshold below which a neighbor's
	// similarity contributes nothing in collaborative filtering.
	MinSimilarity float64

	// GenreMinRatings is the minimum rating count for a book to appear
	// in genre rankings.
	GenreMinRatings int

	// GenreLimit caps genre ranking results.
	GenreLimit int

	// DefaultCount is used when a caller requests zero results
	// implicitly (transport layer default).
	DefaultCount int

	// MaxCount caps any requested result count.
	MaxCount int
}

// DefaultPolicy returns the standard serving policy.
func DefaultPolicy() Policy {
	return Policy{
		MinSimilarity:   0.1,
		GenreMinRatings: 5,
		GenreLimit:      20,
		DefaultCount:    10,
		MaxCount:        50,
	}
}

// Validate checks the policy for consistency.
func (p Policy) Validate() error {
	if p.MinSimilarity < 0 || p.MinSimilarity >= 1 {
		return fmt.Errorf("min similarity %v outside [0,1)", p.MinSimilarity)
	}
	if p.GenreMinRatings < 1 {
		return fmt.Errorf("genre min ratings %d below 1", p.GenreMinRatings)
	}
	if p.GenreLimit < 1 {
		return fmt.Errorf("genre limit %d below 1", p.GenreLimit)
	}
	if p.DefaultCount < 1 || p.DefaultCount > p.MaxCount {
		return fmt.Errorf("default count %d outside [1,%d]", p.DefaultCount, p.MaxCount)
	}
	if p.MaxCount < 1 {
		return fmt.Errorf("max count %d below 1", p.MaxCount)
	}
	return nil
}

// ClampCount forces a requested count into [1, MaxCount].
func (p Policy) ClampCount(n int) int {
	if n < 1 {
		return 1
	}
	if n > p.MaxCount {
		return p.MaxCount
	}
	return n
}
