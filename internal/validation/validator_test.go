// Bibliograph - Book Recommendation Serving API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bibliograph

package validation

import (
	"strings"
	"testing"
)

type sampleConfig struct {
	Host  string `validate:"required"`
	Port  int    `validate:"min=1,max=65535"`
	Level string `validate:"oneof=debug info warn error"`
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   sampleConfig
		wantErr bool
	}{
		{
			name:    "valid",
			input:   sampleConfig{Host: "localhost", Port: 8080, Level: "info"},
			wantErr: false,
		},
		{
			name:    "missing host",
			input:   sampleConfig{Port: 8080, Level: "info"},
			wantErr: true,
		},
		{
			name:    "port out of range",
			input:   sampleConfig{Host: "localhost", Port: 70000, Level: "info"},
			wantErr: true,
		},
		{
			name:    "bad level",
			input:   sampleConfig{Host: "localhost", Port: 8080, Level: "loud"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateStruct(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStruct() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestVar(t *testing.T) {
	t.Parallel()

	if err := Var("0316666343", "required,max=20"); err != nil {
		t.Errorf("Var() unexpected error: %v", err)
	}
	if err := Var("", "required"); err == nil {
		t.Error("Var() expected error for empty required value")
	}
}

func TestFormatErrors(t *testing.T) {
	t.Parallel()

	err := ValidateStruct(sampleConfig{Port: 0, Level: "loud"})
	if err == nil {
		t.Fatal("expected validation failure")
	}

	msg := FormatErrors(err)
	if !strings.Contains(msg, "Host is required") {
		t.Errorf("expected required clause, got %q", msg)
	}
	if !strings.Contains(msg, "Level must be one of") {
		t.Errorf("expected oneof clause, got %q", msg)
	}

	if got := FormatErrors(nil); got != "" {
		t.Errorf("FormatErrors(nil) = %q, want empty", got)
	}
}
