// Bibliograph - Book Recommendation Serving API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bibliograph

package recommend

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/tomtom215/bibliograph/internal/artifact"
	"github.com/tomtom215/bibliograph/internal/logging"
	"github.com/tomtom215/bibliograph/internal/metrics"
)

// Reasons attached to empty-with-reason results.
const (
	ReasonUserNotFound = "user not found"
	ReasonItemNotFound = "book not found"
	ReasonNoRatings    = "user has no usable ratings"
)

// Service orchestrates the recommenders and catalog lookup, applying
// the shared serving policies: count clamping, uniform empty-with-
// reason results for expected misses, and method tagging.
//
// All artifacts are immutable after load, so the service is safe for
// unbounded concurrent use.
type Service struct {
	store   *artifact.Store
	policy  Policy
	lookup  *CatalogLookup
	similar *SimilarityRecommender
	collab  *CollaborativeRecommender
	factor  *FactorRecommender
	popular *PopularityRecommender
	stats   map[string]itemStats

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewService wires the recommenders over an already-loaded store.
func NewService(store *artifact.Store, policy Policy) (*Service, error) {
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid policy: %w", err)
	}

	lookup := NewCatalogLookup(store.Catalog())
	ratings := store.Ratings()

	s := &Service{
		store:   store,
		policy:  policy,
		lookup:  lookup,
		similar: NewSimilarityRecommender(store.Similarity(), lookup),
		collab:  NewCollaborativeRecommender(ratings, store.Similarity(), lookup, policy),
		factor:  NewFactorRecommender(store.UserFactors(), store.ItemFactors(), ratings, lookup),
		popular: NewPopularityRecommender(store.Popularity(), lookup),
		stats:   buildItemStats(ratings),
		rng:     rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)), //nolint:gosec // non-cryptographic sampling
	}
	return s, nil
}

// SeedRandom reseeds the user sampler. Used to make RandomUser
// deterministic.
func (s *Service) SeedRandom(seed uint64) {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	s.rng = rand.New(rand.NewPCG(seed, 0)) //nolint:gosec // non-cryptographic sampling
}

// Policy returns the active serving policy.
func (s *Service) Policy() Policy {
	return s.policy
}

// ForUser serves user-based collaborative filtering recommendations.
func (s *Service) ForUser(ctx context.Context, userID, count int) (*Result, error) {
	count = s.policy.ClampCount(count)
	start := time.Now()

	items, err := s.collab.Recommend(userID, count)
	result, err := s.wrap(MethodCollaborative, items, err)
	s.observe(ctx, MethodCollaborative, start, result, err)
	return result, err
}

// SimilarTo serves books similar to the given ISBN.
func (s *Service) SimilarTo(ctx context.Context, isbn string, count int) (*Result, error) {
	count = s.policy.ClampCount(count)
	start := time.Now()

	items, err := s.similar.Recommend(isbn, count)
	result, err := s.wrap(MethodItemSimilarity, items, err)
	s.observe(ctx, MethodItemSimilarity, start, result, err)
	return result, err
}

// ByFactors serves predicted-rating recommendations from the factor
// model.
func (s *Service) ByFactors(ctx context.Context, userID, count int) (*Result, error) {
	count = s.policy.ClampCount(count)
	start := time.Now()

	items, err := s.factor.Recommend(userID, count)
	result, err := s.wrap(MethodMatrixFactorization, items, err)
	s.observe(ctx, MethodMatrixFactorization, start, result, err)
	return result, err
}

// Popular serves the popularity fallback list.
func (s *Service) Popular(ctx context.Context, count int) (*Result, error) {
	count = s.policy.ClampCount(count)
	start := time.Now()

	items, err := s.popular.Recommend(count)
	result, err := s.wrap(MethodPopularity, items, err)
	s.observe(ctx, MethodPopularity, start, result, err)
	return result, err
}

// ByGenre serves the genre popularity ranking for a term.
func (s *Service) ByGenre(ctx context.Context, term string) (*Result, error) {
	start := time.Now()

	items, err := s.genreRanking(term)
	result, err := s.wrap(MethodGenre, items, err)
	s.observe(ctx, MethodGenre, start, result, err)
	return result, err
}

// wrap applies the uniform outcome policy: expected misses become
// empty-with-reason results, everything else propagates.
func (s *Service) wrap(method string, items []Item, err error) (*Result, error) {
	switch {
	case err == nil:
		if items == nil {
			items = []Item{}
		}
		return &Result{Method: method, Items: items}, nil
	case errors.Is(err, ErrNoRatings):
		return &Result{Method: method, Items: []Item{}, Reason: ReasonNoRatings}, nil
	case errors.Is(err, ErrNotFound):
		reason := ReasonItemNotFound
		if method == MethodCollaborative || method == MethodMatrixFactorization {
			reason = ReasonUserNotFound
		}
		return &Result{Method: method, Items: []Item{}, Reason: reason}, nil
	default:
		return nil, err
	}
}

// observe records metrics and a debug log line for one query.
func (s *Service) observe(ctx context.Context, method string, start time.Time, result *Result, err error) {
	elapsed := time.Since(start)

	outcome := "ok"
	switch {
	case err != nil:
		outcome = "error"
	case result.Empty():
		outcome = "empty"
	}
	metrics.RecordRecommendation(method, outcome, elapsed.Seconds())

	log := logging.FromContext(ctx)
	log.Debug().
		Str("method", method).
		Str("outcome", outcome).
		Dur("elapsed", elapsed).
		Msg("recommendation query")
}

// Search resolves a free-text catalog query, truncated to limit.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]artifact.Book, error) {
	limit = s.policy.ClampCount(limit)
	return s.lookup.Search(query, limit)
}

// BookDetails describes one book with its rating aggregates and
// closest neighbors.
type BookDetails struct {
	artifact.Book
	RatingCount  int         `json:"rating_count"`
	AvgRating    float64     `json:"avg_rating"`
	Distribution map[int]int `json:"rating_distribution,omitempty"`
	Similar      []Item      `json:"similar,omitempty"`
}

// similarPreviewCount bounds the neighbor preview on book detail pages.
const similarPreviewCount = 5

// BookDetails returns metadata plus rating aggregates for one book.
func (s *Service) BookDetails(ctx context.Context, isbn string) (*BookDetails, error) {
	b, err := s.lookup.FindByID(isbn)
	if err != nil {
		return nil, err
	}

	st := s.stats[isbn]
	details := &BookDetails{
		Book:         b,
		RatingCount:  st.Count,
		AvgRating:    st.Avg(),
		Distribution: st.Dist,
	}

	// Neighbor preview is best-effort: skipped when the similarity
	// matrix is missing or the book has no row.
	if similar, err := s.similar.Recommend(isbn, similarPreviewCount); err == nil {
		details.Similar = similar
	}
	return details, nil
}

// RatedItem is one book a user rated.
type RatedItem struct {
	ISBN      string  `json:"isbn"`
	Title     string  `json:"title"`
	Author    string  `json:"author"`
	Year      int     `json:"year,omitempty"`
	Publisher string  `json:"publisher,omitempty"`
	Rating    float64 `json:"rating"`
}

// UserProfile lists a user's positive ratings with aggregates.
type UserProfile struct {
	UserID    int         `json:"user_id"`
	Count     int         `json:"count"`
	AvgRating float64     `json:"avg_rating"`
	Items     []RatedItem `json:"items"`
}

// UserRatings returns the user's positive ratings, highest first,
// ties kept in catalog order. Books missing from the catalog are
// listed with their ISBN only.
func (s *Service) UserRatings(ctx context.Context, userID int) (*UserProfile, error) {
	ratings := s.store.Ratings()
	if ratings == nil {
		return nil, ErrNotLoaded
	}
	userRatings, ok := ratings.UserRatings(userID)
	if !ok {
		return nil, fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}

	profile := &UserProfile{UserID: userID, Items: []RatedItem{}}
	var sum float64

	catalog := s.lookup.catalog
	appendRated := func(isbn string, rating float64) {
		item := RatedItem{ISBN: isbn, Rating: rating}
		if b, ok := catalog.Get(isbn); ok {
			item.Title = b.Title
			item.Author = b.Author
			item.Year = b.Year
			item.Publisher = b.Publisher
		}
		profile.Items = append(profile.Items, item)
		sum += rating
	}

	if catalog != nil {
		for _, isbn := range catalog.ISBNs {
			if rating, ok := userRatings[isbn]; ok && rating > 0 {
				appendRated(isbn, rating)
			}
		}
	}
	// Rated books absent from the catalog (or all of them, when the
	// catalog never loaded) still belong to the profile; collect them
	// in sorted order for determinism.
	var extra []string
	for isbn, rating := range userRatings {
		if rating <= 0 {
			continue
		}
		if catalog != nil {
			if _, inCatalog := catalog.Get(isbn); inCatalog {
				continue
			}
		}
		extra = append(extra, isbn)
	}
	sort.Strings(extra)
	for _, isbn := range extra {
		appendRated(isbn, userRatings[isbn])
	}

	sort.SliceStable(profile.Items, func(i, j int) bool {
		return profile.Items[i].Rating > profile.Items[j].Rating
	})
	profile.Count = len(profile.Items)
	if profile.Count > 0 {
		profile.AvgRating = sum / float64(profile.Count)
	}
	return profile, nil
}

// RandomUser samples a known user ID for interactive exploration.
func (s *Service) RandomUser(ctx context.Context) (int, error) {
	ratings := s.store.Ratings()
	if ratings == nil {
		return 0, ErrNotLoaded
	}
	if len(ratings.UserIDs) == 0 {
		return 0, fmt.Errorf("no users: %w", ErrNotFound)
	}

	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return ratings.UserIDs[s.rng.IntN(len(ratings.UserIDs))], nil
}

// Stats summarizes the loaded data set.
type Stats struct {
	Books     int             `json:"books"`
	Users     int             `json:"users"`
	Ratings   int             `json:"ratings"`
	Ready     bool            `json:"ready"`
	Artifacts map[string]bool `json:"artifacts"`
}

// Stats reports data set totals and artifact availability.
func (s *Service) Stats(ctx context.Context) *Stats {
	st := &Stats{
		Ready:     s.store.IsReady(),
		Artifacts: s.store.Status(),
	}
	if c := s.store.Catalog(); c != nil {
		st.Books = c.Len()
	}
	if r := s.store.Ratings(); r != nil {
		st.Users = len(r.Ratings)
		for _, userRatings := range r.Ratings {
			st.Ratings += len(userRatings)
		}
	}
	return st
}

// IsReady reports whether the minimum serving artifacts are loaded.
func (s *Service) IsReady() bool {
	return s.store.IsReady()
}
