// Bibliograph - Book Recommendation Serving API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bibliograph

package recommend

import (
	"fmt"
	"strings"

	"github.com/tomtom215/bibliograph/internal/artifact"
)

// CatalogLookup resolves item identifiers and free-text queries
// against the loaded catalog. Read-only.
type CatalogLookup struct {
	catalog *artifact.Catalog
}

// NewCatalogLookup wraps a loaded catalog. A nil catalog yields a
// lookup whose operations report ErrNotLoaded.
func NewCatalogLookup(c *artifact.Catalog) *CatalogLookup {
	return &CatalogLookup{catalog: c}
}

// FindByID returns the book for an ISBN.
func (l *CatalogLookup) FindByID(isbn string) (artifact.Book, error) {
	if l.catalog == nil {
		return artifact.Book{}, ErrNotLoaded
	}
	b, ok := l.catalog.Get(isbn)
	if !ok {
		return artifact.Book{}, fmt.Errorf("book %s: %w", isbn, ErrNotFound)
	}
	return b, nil
}

// Search performs a case-insensitive substring match against title,
// author and ISBN, in catalog iteration order, truncated to limit.
// A blank query is a caller error.
func (l *CatalogLookup) Search(query string, limit int) ([]artifact.Book, error) {
	if l.catalog == nil {
		return nil, ErrNotLoaded
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, fmt.Errorf("blank search query: %w", ErrInvalidArgument)
	}
	if limit < 1 {
		limit = 1
	}

	matches := make([]artifact.Book, 0, limit)
	for _, isbn := range l.catalog.ISBNs {
		b, ok := l.catalog.Get(isbn)
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(b.Title), q) ||
			strings.Contains(strings.ToLower(b.Author), q) ||
			strings.Contains(strings.ToLower(b.ISBN), q) {
			matches = append(matches, b)
			if len(matches) >= limit {
				break
			}
		}
	}
	return matches, nil
}

// resolveScored turns ranked candidates into items with catalog
// metadata. Candidates without catalog entries are dropped silently
// and the next candidate takes their place, so the result may be
// shorter than count only when candidates run out.
func resolveScored(lookup *CatalogLookup, candidates []scored, count int) []Item {
	items := make([]Item, 0, count)
	for _, c := range candidates {
		if len(items) >= count {
			break
		}
		b, err := lookup.FindByID(c.isbn)
		if err != nil {
			continue
		}
		items = append(items, Item{
			ISBN:      b.ISBN,
			Title:     b.Title,
			Author:    b.Author,
			Year:      b.Year,
			Publisher: b.Publisher,
			ImageURL:  b.ImageURLMedium,
			Score:     c.score,
		})
	}
	return items
}
