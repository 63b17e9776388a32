// Bibliograph - Book Recommendation Serving API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bibliograph

package recommend

import "errors"

// Sentinel errors returned by recommenders and the service. Callers
// match them with errors.Is.
var (
	// ErrNotLoaded means a required artifact is unavailable. Every
	// operation reports this before attempting any lookup.
	ErrNotLoaded = errors.New("recommendation artifacts not loaded")

	// ErrNotFound means an unknown item or user ID.
	ErrNotFound = errors.New("not found")

	// ErrNoRatings means the user exists but has no positive ratings
	// usable for collaborative filtering.
	ErrNoRatings = errors.New("user has no ratings")

	// ErrInvalidArgument means missing or blank required query text.
	ErrInvalidArgument = errors.New("invalid argument")
)
