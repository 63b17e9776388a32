// Bibliograph - Book Recommendation Serving API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bibliograph

// Package artifact loads and serves the precomputed recommendation
// artifacts: catalog, rating matrix, item-similarity matrix, factor
// matrices and popularity table.
//
// # Storage Format
//
// Each artifact is a single gob-encoded file holding metadata plus a
// gzip-compressed gob payload. A SHA-256 checksum guards against
// truncated or corrupted blobs; a blob that fails its checksum is
// treated the same as a missing one.
//
// # Degraded Mode
//
// The store loads whatever artifacts exist. Missing artifacts disable
// the query paths that need them while the rest keep serving.
package artifact

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/tomtom215/bibliograph/internal/logging"
	"github.com/tomtom215/bibliograph/internal/metrics"
)

// Metadata describes a stored artifact blob.
type Metadata struct {
	// Name is the artifact name (e.g. "catalog", "similarity").
	Name string `json:"name"`

	// SavedAt is when the artifact was written.
	SavedAt time.Time `json:"saved_at"`

	// Checksum is the SHA-256 of the uncompressed payload.
	Checksum string `json:"checksum"`

	// SizeBytes is the compressed payload size.
	SizeBytes int64 `json:"size_bytes"`

	// Records is the payload's primary record count (books, users,
	// rows), informational only.
	Records int `json:"records"`
}

// storedFile is the on-disk format for artifact files.
type storedFile struct {
	Metadata       Metadata
	CompressedData []byte
}

// LoadResult reports which artifacts a LoadAll call found.
type LoadResult struct {
	Loaded  []string `json:"loaded"`
	Missing []string `json:"missing"`
}

// Store holds the loaded artifacts and answers typed access queries.
// All methods are safe for concurrent use; artifacts are immutable
// once loaded.
type Store struct {
	dir string

	mu          sync.RWMutex
	catalog     *Catalog
	ratings     *RatingMatrix
	similarity  *SimilarityMatrix
	userFactors *FactorMatrix
	itemFactors *FactorMatrix
	popularity  *PopularityTable
	meta        map[string]Metadata
}

// NewStore creates a store rooted at dir. The directory is created if
// absent so that Save can be used to publish artifacts into it.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create artifact directory: %w", err)
	}
	return &Store{
		dir:  dir,
		meta: make(map[string]Metadata),
	}, nil
}

// Dir returns the artifact directory.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes an artifact blob. records is stored in the metadata as
// the payload's primary record count.
func (s *Store) Save(name string, payload interface{}, records int) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(payload); err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	raw := buf.Bytes()

	hash := sha256.Sum256(raw)

	var compressed bytes.Buffer
	gzw := gzip.NewWriter(&compressed)
	if _, err := gzw.Write(raw); err != nil {
		return fmt.Errorf("compress %s: %w", name, err)
	}
	if err := gzw.Close(); err != nil {
		return fmt.Errorf("finalize compression for %s: %w", name, err)
	}

	sf := storedFile{
		Metadata: Metadata{
			Name:      name,
			SavedAt:   time.Now(),
			Checksum:  hex.EncodeToString(hash[:]),
			SizeBytes: int64(compressed.Len()),
			Records:   records,
		},
		CompressedData: compressed.Bytes(),
	}

	f, err := os.Create(s.path(name)) //nolint:gosec // path is built from a fixed artifact name
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	defer func() { _ = f.Close() }() //nolint:errcheck // close after successful encode

	if err := gob.NewEncoder(f).Encode(sf); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// loadBlob reads, verifies and decodes one artifact into target.
func (s *Store) loadBlob(name string, target interface{}) (*Metadata, error) {
	f, err := os.Open(s.path(name)) //nolint:gosec // path is built from a fixed artifact name
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer func() { _ = f.Close() }() //nolint:errcheck // close after read

	var sf storedFile
	if err := gob.NewDecoder(f).Decode(&sf); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	gzr, err := gzip.NewReader(bytes.NewReader(sf.CompressedData))
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", name, err)
	}
	defer func() { _ = gzr.Close() }() //nolint:errcheck // close after read

	raw, err := io.ReadAll(gzr)
	if err != nil {
		return nil, fmt.Errorf("read decompressed %s: %w", name, err)
	}

	hash := sha256.Sum256(raw)
	if checksum := hex.EncodeToString(hash[:]); checksum != sf.Metadata.Checksum {
		return nil, fmt.Errorf("checksum mismatch for %s: expected %s, got %s",
			name, sf.Metadata.Checksum, checksum)
	}

	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(target); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return &sf.Metadata, nil
}

// LoadAll loads every artifact that exists on disk. A missing or
// corrupt blob is reported in the result, not returned as an error;
// the store keeps serving whatever loaded.
func (s *Store) LoadAll(ctx context.Context) (*LoadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := &LoadResult{}
	log := logging.FromContext(ctx)

	for _, name := range AllNames {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		start := time.Now()
		meta, err := s.loadOne(name)
		if err != nil {
			log.Warn().Err(err).Str("artifact", name).Msg("artifact unavailable")
			result.Missing = append(result.Missing, name)
			metrics.SetArtifactLoaded(name, false)
			continue
		}

		elapsed := time.Since(start)
		s.meta[name] = *meta
		result.Loaded = append(result.Loaded, name)
		metrics.SetArtifactLoaded(name, true)
		metrics.ArtifactLoadDuration.WithLabelValues(name).Observe(elapsed.Seconds())

		log.Info().
			Str("artifact", name).
			Int("records", meta.Records).
			Int64("size_bytes", meta.SizeBytes).
			Dur("elapsed", elapsed).
			Msg("artifact loaded")
	}

	if s.catalog != nil {
		metrics.CatalogSize.Set(float64(s.catalog.Len()))
	}
	return result, nil
}

// loadOne decodes the named artifact into its typed slot (must be
// called with mu held).
func (s *Store) loadOne(name string) (*Metadata, error) {
	switch name {
	case NameCatalog:
		var c Catalog
		meta, err := s.loadBlob(name, &c)
		if err != nil {
			return nil, err
		}
		normalizeCatalog(&c)
		s.catalog = &c
		return meta, nil
	case NameRatings:
		var r RatingMatrix
		meta, err := s.loadBlob(name, &r)
		if err != nil {
			return nil, err
		}
		normalizeRatings(&r)
		s.ratings = &r
		return meta, nil
	case NameSimilarity:
		var m SimilarityMatrix
		meta, err := s.loadBlob(name, &m)
		if err != nil {
			return nil, err
		}
		s.similarity = &m
		return meta, nil
	case NameUserFactors:
		var m FactorMatrix
		meta, err := s.loadBlob(name, &m)
		if err != nil {
			return nil, err
		}
		s.userFactors = &m
		return meta, nil
	case NameItemFactors:
		var m FactorMatrix
		meta, err := s.loadBlob(name, &m)
		if err != nil {
			return nil, err
		}
		s.itemFactors = &m
		return meta, nil
	case NamePopularity:
		var t PopularityTable
		meta, err := s.loadBlob(name, &t)
		if err != nil {
			return nil, err
		}
		s.popularity = &t
		return meta, nil
	default:
		return nil, fmt.Errorf("unknown artifact %q", name)
	}
}

// normalizeCatalog fills derived fields the offline pipeline may omit:
// the ordered ISBN slice and the "Unknown" publisher placeholder.
func normalizeCatalog(c *Catalog) {
	if c.Books == nil {
		c.Books = make(map[string]Book)
	}
	for isbn, b := range c.Books {
		if b.Publisher == "" {
			b.Publisher = "Unknown"
			c.Books[isbn] = b
		}
	}
	if len(c.ISBNs) == 0 && len(c.Books) > 0 {
		c.ISBNs = make([]string, 0, len(c.Books))
		for isbn := range c.Books {
			c.ISBNs = append(c.ISBNs, isbn)
		}
		sort.Strings(c.ISBNs)
	}
}

// normalizeRatings fills the ordered user ID slice when absent.
func normalizeRatings(r *RatingMatrix) {
	if r.Ratings == nil {
		r.Ratings = make(map[int]map[string]float64)
	}
	if len(r.UserIDs) == 0 && len(r.Ratings) > 0 {
		r.UserIDs = make([]int, 0, len(r.Ratings))
		for id := range r.Ratings {
			r.UserIDs = append(r.UserIDs, id)
		}
		sort.Ints(r.UserIDs)
	}
}

// path returns the file path for an artifact.
func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".gob.gz")
}

// Catalog returns the loaded catalog, or nil when unavailable.
func (s *Store) Catalog() *Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

// Ratings returns the loaded rating matrix, or nil when unavailable.
func (s *Store) Ratings() *RatingMatrix {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ratings
}

// Similarity returns the loaded similarity matrix, or nil when unavailable.
func (s *Store) Similarity() *SimilarityMatrix {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.similarity
}

// UserFactors returns the loaded user factor matrix, or nil when unavailable.
func (s *Store) UserFactors() *FactorMatrix {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userFactors
}

// ItemFactors returns the loaded item factor matrix, or nil when unavailable.
func (s *Store) ItemFactors() *FactorMatrix {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.itemFactors
}

// Popularity returns the loaded popularity table, or nil when unavailable.
func (s *Store) Popularity() *PopularityTable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.popularity
}

// IsReady reports whether the minimum artifacts for serving are
// loaded: the catalog plus the popularity fallback.
func (s *Store) IsReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog != nil && s.popularity != nil
}

// Status reports per-artifact availability.
func (s *Store) Status() map[string]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := make(map[string]bool, len(AllNames))
	for _, name := range AllNames {
		_, ok := s.meta[name]
		status[name] = ok
	}
	return status
}

// Meta returns the stored metadata for a loaded artifact.
func (s *Store) Meta(name string) (Metadata, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.meta[name]
	return m, ok
}
