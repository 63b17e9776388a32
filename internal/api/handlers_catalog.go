// Bibliograph - Book Recommendation Serving API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bibliograph

package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/bibliograph/internal/artifact"
	"github.com/tomtom215/bibliograph/internal/recommend"
)

// BookDetails serves GET /api/v1/books/{isbn}.
func (h *Handler) BookDetails(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	isbn := chi.URLParam(r, "isbn")
	details, err := h.svc.BookDetails(r.Context(), isbn)
	if err != nil {
		writeServiceError(rw, err)
		return
	}
	rw.Success(details)
}

// searchPayload is the data section of a search response.
type searchPayload struct {
	Query   string          `json:"query"`
	Count   int             `json:"count"`
	Results []artifact.Book `json:"results"`
}

// Search serves GET /api/v1/search?q=&limit=.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	query := r.URL.Query().Get("q")
	limit := h.defaultCount
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			rw.BadRequest("limit must be an integer")
			return
		}
		limit = n
	}

	books, err := h.svc.Search(r.Context(), query, limit)
	if err != nil {
		writeServiceError(rw, err)
		return
	}
	rw.Success(searchPayload{Query: query, Count: len(books), Results: books})
}

// UserRatings serves GET /api/v1/users/{userID}/ratings.
func (h *Handler) UserRatings(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userID, err := userIDParam(r)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}

	profile, err := h.svc.UserRatings(r.Context(), userID)
	if err != nil {
		writeServiceError(rw, err)
		return
	}
	rw.Success(profile)
}

// RandomUser serves GET /api/v1/users/random.
func (h *Handler) RandomUser(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userID, err := h.svc.RandomUser(r.Context())
	if err != nil {
		writeServiceError(rw, err)
		return
	}
	rw.Success(map[string]int{"user_id": userID})
}

// Genres serves GET /api/v1/genres.
func (h *Handler) Genres(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	rw.Success(map[string][]string{"genres": recommend.Genres})
}

// Status serves GET /api/v1/status.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	rw.Success(h.svc.Stats(r.Context()))
}
