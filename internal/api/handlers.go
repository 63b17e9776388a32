// Bibliograph - Book Recommendation Serving API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bibliograph

package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/bibliograph/internal/recommend"
)

// Handler holds the dependencies shared by all HTTP handlers.
type Handler struct {
	svc          *recommend.Service
	defaultCount int
}

// NewHandler creates the handler set over a recommendation service.
func NewHandler(svc *recommend.Service, defaultCount int) *Handler {
	if defaultCount < 1 {
		defaultCount = recommend.DefaultPolicy().DefaultCount
	}
	return &Handler{svc: svc, defaultCount: defaultCount}
}

// countParam reads the "count" query parameter, falling back to the
// configured default. Range clamping happens in the service; only a
// non-numeric value is a caller error.
func (h *Handler) countParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("count")
	if raw == "" {
		return h.defaultCount, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("count must be an integer")
	}
	return n, nil
}

// userIDParam reads the {userID} path parameter.
func userIDParam(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "userID")
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("user ID must be an integer")
	}
	return id, nil
}

// writeServiceError maps service errors to HTTP status codes.
func writeServiceError(rw *ResponseWriter, err error) {
	switch {
	case errors.Is(err, recommend.ErrNotLoaded):
		rw.ServiceUnavailable("recommendation artifacts not loaded")
	case errors.Is(err, recommend.ErrInvalidArgument):
		rw.BadRequest(err.Error())
	case errors.Is(err, recommend.ErrNotFound):
		rw.NotFound(err.Error())
	default:
		rw.InternalError("internal error")
	}
}
