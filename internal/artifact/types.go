// Bibliograph - Book Recommendation Serving API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bibliograph

package artifact

import "encoding/gob"

// Artifact names as stored on disk. Each artifact is a single
// precomputed blob produced by the offline training pipeline.
const (
	NameCatalog     = "catalog"
	NameRatings     = "ratings"
	NameSimilarity  = "similarity"
	NameUserFactors = "user_factors"
	NameItemFactors = "item_factors"
	NamePopularity  = "popularity"
)

// AllNames lists every artifact the store knows about, in load order.
var AllNames = []string{
	NameCatalog,
	NameRatings,
	NameSimilarity,
	NameUserFactors,
	NameItemFactors,
	NamePopularity,
}

// Book describes one catalog entry. Cover art comes in three sizes;
// recommendation payloads serve the medium one.
type Book struct {
	ISBN           string `json:"isbn"`
	Title          string `json:"title"`
	Author         string `json:"author"`
	Year           int    `json:"year,omitempty"`
	Publisher      string `json:"publisher,omitempty"`
	ImageURLSmall  string `json:"image_url_s,omitempty"`
	ImageURLMedium string `json:"image_url_m,omitempty"`
	ImageURLLarge  string `json:"image_url_l,omitempty"`
}

// Catalog holds the book metadata table. ISBNs preserves the original
// artifact order so that iteration and tie-breaking are deterministic
// across restarts.
type Catalog struct {
	Books map[string]Book
	ISBNs []string
}

// Len returns the number of books in the catalog.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.ISBNs)
}

// Get returns the book for an ISBN.
func (c *Catalog) Get(isbn string) (Book, bool) {
	if c == nil {
		return Book{}, false
	}
	b, ok := c.Books[isbn]
	return b, ok
}

// RatingMatrix maps user ID to the books they have rated, with
// explicit ratings on a 0-10 scale. A zero rating means "interacted
// but not rated" and is excluded from rated-item sets.
type RatingMatrix struct {
	Ratings map[int]map[string]float64
	UserIDs []int
}

// UserRatings returns the rating map for a user.
func (m *RatingMatrix) UserRatings(userID int) (map[string]float64, bool) {
	if m == nil {
		return nil, false
	}
	r, ok := m.Ratings[userID]
	return r, ok
}

// SimilarityMatrix holds precomputed item-item similarity rows. Each
// row maps a neighbor ISBN to its similarity score; self-similarity is
// not stored.
type SimilarityMatrix struct {
	Rows map[string]map[string]float64
}

// Row returns the neighbor map for an ISBN.
func (m *SimilarityMatrix) Row(isbn string) (map[string]float64, bool) {
	if m == nil {
		return nil, false
	}
	row, ok := m.Rows[isbn]
	return row, ok
}

// FactorMatrix holds one side of a low-rank factorization: dense
// per-entity factor vectors plus the index mapping.
type FactorMatrix struct {
	// Factors holds one row of latent factors per entity, all rows the
	// same length.
	Factors [][]float64

	// Index maps entity key (stringified user ID or ISBN) to row.
	Index map[string]int

	// Keys maps row back to entity key, in artifact order.
	Keys []string
}

// Vector returns the factor row for a key.
func (m *FactorMatrix) Vector(key string) ([]float64, bool) {
	if m == nil {
		return nil, false
	}
	i, ok := m.Index[key]
	if !ok || i < 0 || i >= len(m.Factors) {
		return nil, false
	}
	return m.Factors[i], true
}

// Rank returns the latent dimension, 0 when empty.
func (m *FactorMatrix) Rank() int {
	if m == nil || len(m.Factors) == 0 {
		return 0
	}
	return len(m.Factors[0])
}

// PopularityEntry is one row of the precomputed popularity table.
type PopularityEntry struct {
	ISBN        string  `json:"isbn"`
	RatingCount int     `json:"rating_count"`
	AvgRating   float64 `json:"avg_rating"`
	Score       float64 `json:"score"`
}

// PopularityTable holds popularity entries already sorted by
// descending score at training time.
type PopularityTable struct {
	Entries []PopularityEntry
}

// Top returns the first n entries without copying beyond the slice
// header. n larger than the table returns the whole table.
func (t *PopularityTable) Top(n int) []PopularityEntry {
	if t == nil || n <= 0 {
		return nil
	}
	if n > len(t.Entries) {
		n = len(t.Entries)
	}
	return t.Entries[:n]
}

//nolint:gochecknoinits // gob.Register must run before first decode
func init() {
	gob.Register(Catalog{})
	gob.Register(RatingMatrix{})
	gob.Register(SimilarityMatrix{})
	gob.Register(FactorMatrix{})
	gob.Register(PopularityTable{})
}
