// Bibliograph - Book Recommendation Serving API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bibliograph

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/bibliograph/internal/recommend"
)

// recommendationPayload is the data section of every recommendation
// response.
type recommendationPayload struct {
	UserID          *int             `json:"user_id,omitempty"`
	ISBN            string           `json:"isbn,omitempty"`
	Genre           string           `json:"genre,omitempty"`
	Method          string           `json:"method"`
	Count           int              `json:"count"`
	Recommendations []recommend.Item `json:"recommendations"`
}

// writeResult emits a recommendation result, mapping an empty-with-
// reason outcome to 404.
func writeResult(rw *ResponseWriter, result *recommend.Result, payload recommendationPayload) {
	if result.Reason != "" {
		rw.NotFound(result.Reason)
		return
	}
	payload.Method = result.Method
	payload.Count = len(result.Items)
	payload.Recommendations = result.Items
	rw.Success(payload)
}

// RecommendUser serves GET /api/v1/recommend/user/{userID}.
func (h *Handler) RecommendUser(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userID, err := userIDParam(r)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	count, err := h.countParam(r)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}

	result, err := h.svc.ForUser(r.Context(), userID, count)
	if err != nil {
		writeServiceError(rw, err)
		return
	}
	writeResult(rw, result, recommendationPayload{UserID: &userID})
}

// RecommendSimilar serves GET /api/v1/recommend/similar/{isbn}.
func (h *Handler) RecommendSimilar(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	isbn := chi.URLParam(r, "isbn")
	count, err := h.countParam(r)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}

	result, err := h.svc.SimilarTo(r.Context(), isbn, count)
	if err != nil {
		writeServiceError(rw, err)
		return
	}
	writeResult(rw, result, recommendationPayload{ISBN: isbn})
}

// RecommendSVD serves GET /api/v1/recommend/svd/{userID}.
func (h *Handler) RecommendSVD(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userID, err := userIDParam(r)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	count, err := h.countParam(r)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}

	result, err := h.svc.ByFactors(r.Context(), userID, count)
	if err != nil {
		writeServiceError(rw, err)
		return
	}
	writeResult(rw, result, recommendationPayload{UserID: &userID})
}

// RecommendPopular serves GET /api/v1/recommend/popular.
func (h *Handler) RecommendPopular(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	count, err := h.countParam(r)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}

	result, err := h.svc.Popular(r.Context(), count)
	if err != nil {
		writeServiceError(rw, err)
		return
	}
	writeResult(rw, result, recommendationPayload{})
}

// RecommendGenre serves GET /api/v1/recommend/genre/{genre}.
func (h *Handler) RecommendGenre(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	genre := chi.URLParam(r, "genre")
	result, err := h.svc.ByGenre(r.Context(), genre)
	if err != nil {
		writeServiceError(rw, err)
		return
	}

	// An empty genre ranking is a valid outcome, not a miss.
	payload := recommendationPayload{
		Genre:           genre,
		Method:          result.Method,
		Count:           len(result.Items),
		Recommendations: result.Items,
	}
	rw.Success(payload)
}
