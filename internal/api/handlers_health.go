// Bibliograph - Book Recommendation Serving API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bibliograph

package api

import (
	"net/http"

	"github.com/tomtom215/bibliograph/internal/artifact"
)

// healthPayload is the data section of the health endpoints.
type healthPayload struct {
	Status    string          `json:"status"`
	Version   string          `json:"version,omitempty"`
	Artifacts map[string]bool `json:"artifacts,omitempty"`
}

// Version is set at build time via -ldflags.
var Version = "dev"

// healthHandler reports liveness and artifact readiness.
type healthHandler struct {
	store *artifact.Store
}

// HealthLive serves GET /api/v1/health/live. Always 200 while the
// process can answer requests.
func (h *healthHandler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(healthPayload{Status: "ok", Version: Version})
}

// HealthReady serves GET /api/v1/health/ready. 200 when the minimum
// serving artifacts are loaded, 503 while degraded.
func (h *healthHandler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	payload := healthPayload{
		Status:    "ready",
		Version:   Version,
		Artifacts: h.store.Status(),
	}

	if !h.store.IsReady() {
		payload.Status = "degraded"
		rw.writeJSON(http.StatusServiceUnavailable, APIResponse{
			Success: false,
			Data:    payload,
			Error: &APIError{
				Code:    ErrCodeServiceUnavailable,
				Message: "minimum artifact set not loaded",
			},
		})
		return
	}
	rw.Success(payload)
}
