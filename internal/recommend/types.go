// Bibliograph - Book Recommendation Serving API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bibliograph

package recommend

// Method tags identify which recommender served a request.
const (
	MethodCollaborative       = "collaborative_filtering"
	MethodItemSimilarity      = "item_similarity"
	MethodMatrixFactorization = "matrix_factorization"
	MethodPopularity          = "popularity_based"
	MethodGenre               = "genre_popularity"
)

// Item is one recommended or listed book with resolved metadata.
type Item struct {
	ISBN        string  `json:"isbn"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Year        int     `json:"year,omitempty"`
	Publisher   string  `json:"publisher,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
	Score       float64 `json:"score"`
	RatingCount int     `json:"rating_count,omitempty"`
	AvgRating   float64 `json:"avg_rating,omitempty"`
}

// Result is the uniform outcome of a recommendation query. An
// expected miss (unknown user, no ratings) yields empty Items with
// Reason set instead of an error.
type Result struct {
	Method string `json:"method"`
	Items  []Item `json:"items"`
	Reason string `json:"reason,omitempty"`
}

// Empty reports whether the result carries no items.
func (r *Result) Empty() bool {
	return r == nil || len(r.Items) == 0
}

// scored pairs a candidate ISBN with its ranking score before
// metadata resolution.
type scored struct {
	isbn  string
	score float64
}
