// Bibliograph - Book Recommendation Serving API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bibliograph

// Package recommend implements the recommendation-serving core over
// precomputed artifacts: item-similarity lookup, user-based
// collaborative filtering, factorized rating prediction, the
// popularity fallback and genre rankings.
//
// No training happens here. Every operation is a synchronous,
// bounded-time computation over immutable in-memory matrices, so the
// whole package is safe for concurrent use without locking once the
// artifacts are loaded.
//
// Expected misses (unknown user, unknown book, no usable ratings) are
// returned by the Service as empty results carrying a reason, never
// as errors; only missing artifacts and blank query text are errors.
package recommend
