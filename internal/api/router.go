// Bibliograph - Book Recommendation Serving API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bibliograph

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/bibliograph/internal/artifact"
	"github.com/tomtom215/bibliograph/internal/config"
	"github.com/tomtom215/bibliograph/internal/middleware"
	"github.com/tomtom215/bibliograph/internal/recommend"
)

// Router wires handlers and middleware into the HTTP route tree.
type Router struct {
	handler *Handler
	health  *healthHandler
	cfg     *config.Config
}

// NewRouter creates the router over a loaded store and service.
func NewRouter(cfg *config.Config, store *artifact.Store, svc *recommend.Service) *Router {
	return &Router{
		handler: NewHandler(svc, cfg.API.DefaultCount),
		health:  &healthHandler{store: store},
		cfg:     cfg,
	}
}

// Setup builds the chi route tree.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: router.cfg.Security.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	// Health endpoints stay outside the rate limit so orchestrator
	// probes are never shed.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Get("/live", router.health.HealthLive)
		r.Get("/ready", router.health.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		if !router.cfg.Security.RateLimitDisabled {
			r.Use(httprate.LimitByIP(
				router.cfg.Security.RateLimitReqs,
				router.cfg.Security.RateLimitWindow,
			))
		}
		r.Use(middleware.PrometheusMetrics)

		r.Route("/recommend", func(r chi.Router) {
			r.Get("/user/{userID}", router.handler.RecommendUser)
			r.Get("/similar/{isbn}", router.handler.RecommendSimilar)
			r.Get("/svd/{userID}", router.handler.RecommendSVD)
			r.Get("/popular", router.handler.RecommendPopular)
			r.Get("/genre/{genre}", router.handler.RecommendGenre)
		})

		r.Get("/books/{isbn}", router.handler.BookDetails)
		r.Get("/search", router.handler.Search)
		r.Get("/users/{userID}/ratings", router.handler.UserRatings)
		r.Get("/users/random", router.handler.RandomUser)
		r.Get("/genres", router.handler.Genres)
		r.Get("/status", router.handler.Status)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
