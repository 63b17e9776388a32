// Bibliograph - Book Recommendation Serving API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bibliograph

package recommend

import "testing"

func TestClampCount(t *testing.T) {
	t.Parallel()

	p := DefaultPolicy()
	tests := []struct {
		in   int
		want int
	}{
		{-10, 1},
		{0, 1},
		{1, 1},
		{25, 25},
		{50, 50},
		{51, 50},
		{1000, 50},
	}
	for _, tt := range tests {
		if got := p.ClampCount(tt.in); got != tt.want {
			t.Errorf("ClampCount(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestPolicyValidate(t *testing.T) {
	t.Parallel()

	if err := DefaultPolicy().Validate(); err != nil {
		t.Fatalf("default policy invalid: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Policy)
	}{
		{"negative similarity", func(p *Policy) { p.MinSimilarity = -0.1 }},
		{"similarity at 1", func(p *Policy) { p.MinSimilarity = 1 }},
		{"zero genre min", func(p *Policy) { p.GenreMinRatings = 0 }},
		{"zero genre limit", func(p *Policy) { p.GenreLimit = 0 }},
		{"default above max", func(p *Policy) { p.DefaultCount = 99 }},
		{"zero default", func(p *Policy) { p.DefaultCount = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := DefaultPolicy()
			tt.mutate(&p)
			if err := p.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
