// Bibliograph - Book Recommendation Serving API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bibliograph

package artifact

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s
}

func testCatalog() Catalog {
	return Catalog{
		Books: map[string]Book{
			"0316666343": {ISBN: "0316666343", Title: "The Lovely Bones", Author: "Alice Sebold", Year: 2002, Publisher: "Little, Brown"},
			"0385504209": {ISBN: "0385504209", Title: "The Da Vinci Code", Author: "Dan Brown", Year: 2003},
			"0142001740": {ISBN: "0142001740", Title: "The Secret Life of Bees", Author: "Sue Monk Kidd", Year: 2003, Publisher: "Penguin"},
		},
		ISBNs: []string{"0316666343", "0385504209", "0142001740"},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	cat := testCatalog()
	if err := s.Save(NameCatalog, cat, len(cat.Books)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	pop := PopularityTable{Entries: []PopularityEntry{
		{ISBN: "0316666343", RatingCount: 120, AvgRating: 8.1, Score: 38.9},
		{ISBN: "0385504209", RatingCount: 90, AvgRating: 7.9, Score: 35.6},
	}}
	if err := s.Save(NamePopularity, pop, len(pop.Entries)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	result, err := s.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}

	if len(result.Loaded) != 2 {
		t.Errorf("Loaded = %v, want 2 artifacts", result.Loaded)
	}
	if len(result.Missing) != 4 {
		t.Errorf("Missing = %v, want 4 artifacts", result.Missing)
	}

	got := s.Catalog()
	if got == nil || got.Len() != 3 {
		t.Fatalf("Catalog() = %v, want 3 books", got)
	}
	if b, _ := got.Get("0316666343"); b.Title != "The Lovely Bones" {
		t.Errorf("book title = %q", b.Title)
	}

	if !s.IsReady() {
		t.Error("IsReady() = false with catalog and popularity loaded")
	}
}

func TestLoadAllMissingEverything(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	result, err := s.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(result.Loaded) != 0 || len(result.Missing) != len(AllNames) {
		t.Errorf("result = %+v, want everything missing", result)
	}
	if s.IsReady() {
		t.Error("IsReady() = true with nothing loaded")
	}
}

func TestCorruptBlobTreatedAsMissing(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	cat := testCatalog()
	if err := s.Save(NameCatalog, cat, cat.Len()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Truncate the blob to break the checksum.
	path := filepath.Join(s.Dir(), NameCatalog+".gob.gz")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data[:len(data)/2], 0o600); err != nil {
		t.Fatal(err)
	}

	result, err := s.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	for _, name := range result.Loaded {
		if name == NameCatalog {
			t.Error("corrupt catalog reported as loaded")
		}
	}
	if s.Catalog() != nil {
		t.Error("corrupt catalog should not be served")
	}
}

func TestNormalizeCatalogFillsDefaults(t *testing.T) {
	t.Parallel()

	c := Catalog{Books: map[string]Book{
		"b": {ISBN: "b", Title: "B"},
		"a": {ISBN: "a", Title: "A", Publisher: "Acme"},
	}}
	normalizeCatalog(&c)

	if got := c.Books["b"].Publisher; got != "Unknown" {
		t.Errorf("empty publisher = %q, want Unknown", got)
	}
	if got := c.Books["a"].Publisher; got != "Acme" {
		t.Errorf("publisher overwritten: %q", got)
	}
	if len(c.ISBNs) != 2 || c.ISBNs[0] != "a" || c.ISBNs[1] != "b" {
		t.Errorf("ISBNs = %v, want sorted [a b]", c.ISBNs)
	}
}

func TestNormalizeRatingsBuildsUserIDs(t *testing.T) {
	t.Parallel()

	r := RatingMatrix{Ratings: map[int]map[string]float64{
		42: {"a": 5},
		7:  {"b": 8},
	}}
	normalizeRatings(&r)

	if len(r.UserIDs) != 2 || r.UserIDs[0] != 7 || r.UserIDs[1] != 42 {
		t.Errorf("UserIDs = %v, want sorted [7 42]", r.UserIDs)
	}
}

func TestFactorMatrixVector(t *testing.T) {
	t.Parallel()

	m := FactorMatrix{
		Factors: [][]float64{{1, 2}, {3, 4}},
		Index:   map[string]int{"a": 0, "b": 1},
		Keys:    []string{"a", "b"},
	}

	v, ok := m.Vector("b")
	if !ok || v[0] != 3 {
		t.Errorf("Vector(b) = %v, %v", v, ok)
	}
	if _, ok := m.Vector("missing"); ok {
		t.Error("Vector(missing) should report false")
	}
	if m.Rank() != 2 {
		t.Errorf("Rank() = %d, want 2", m.Rank())
	}
}

func TestPopularityTop(t *testing.T) {
	t.Parallel()

	tbl := PopularityTable{Entries: []PopularityEntry{
		{ISBN: "a"}, {ISBN: "b"}, {ISBN: "c"},
	}}

	if got := tbl.Top(2); len(got) != 2 || got[0].ISBN != "a" {
		t.Errorf("Top(2) = %v", got)
	}
	if got := tbl.Top(10); len(got) != 3 {
		t.Errorf("Top(10) = %v, want full table", got)
	}
	if got := tbl.Top(0); got != nil {
		t.Errorf("Top(0) = %v, want nil", got)
	}
}
