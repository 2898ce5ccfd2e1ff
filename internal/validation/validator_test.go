// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

package validation

import (
	"strings"
	"testing"
)

func TestGetValidator_Singleton(t *testing.T) {
	t.Parallel()

	v1 := GetValidator()
	v2 := GetValidator()

	if v1 == nil {
		t.Fatal("GetValidator() should not return nil")
	}
	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}
}

type sampleRow struct {
	Genre      string   `validate:"required"`
	TotalGames int64    `validate:"gte=0"`
	AvgRating  *float64 `validate:"omitempty,gte=0,lte=100"`
	Backend    string   `validate:"oneof=bigquery duckdb"`
	Cutoff     string   `validate:"isodate"`
}

func ptr(f float64) *float64 { return &f }

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	valid := sampleRow{Genre: "Action", TotalGames: 3, AvgRating: ptr(81.5), Backend: "duckdb", Cutoff: "2023-01-01"}

	tests := []struct {
		name      string
		mutate    func(r *sampleRow)
		wantField string
		wantMsg   string
	}{
		{"valid", func(*sampleRow) {}, "", ""},
		{"nil rating allowed", func(r *sampleRow) { r.AvgRating = nil }, "", ""},
		{"missing genre", func(r *sampleRow) { r.Genre = "" }, "Genre", "Genre is required"},
		{"negative count", func(r *sampleRow) { r.TotalGames = -1 }, "TotalGames", "greater than or equal to 0"},
		{"rating too high", func(r *sampleRow) { r.AvgRating = ptr(101) }, "AvgRating", "less than or equal to 100"},
		{"unknown backend", func(r *sampleRow) { r.Backend = "sqlite" }, "Backend", "must be one of"},
		{"bad date", func(r *sampleRow) { r.Cutoff = "2023/01/01" }, "Cutoff", "YYYY-MM-DD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			row := valid
			tt.mutate(&row)
			err := ValidateStruct(&row)

			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error on %s", tt.wantField)
			}
			if len(err.Errors()) != 1 {
				t.Fatalf("expected 1 field error, got %d", len(err.Errors()))
			}
			fe := err.Errors()[0]
			if fe.Field() != tt.wantField {
				t.Errorf("Field() = %q, want %q", fe.Field(), tt.wantField)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Error() = %q, want to contain %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestValidateStruct_MultipleErrors(t *testing.T) {
	t.Parallel()

	err := ValidateStruct(&sampleRow{TotalGames: -5, Backend: "x", Cutoff: "x"})
	if err == nil {
		t.Fatal("expected errors")
	}
	if got := len(err.Errors()); got != 4 {
		t.Errorf("expected 4 field errors, got %d: %v", got, err)
	}
	if !strings.Contains(err.Error(), "; ") {
		t.Errorf("expected joined messages, got %q", err.Error())
	}
}

func TestValidateStruct_NotAStruct(t *testing.T) {
	t.Parallel()

	err := ValidateStruct(42)
	if err == nil {
		t.Fatal("expected an error for a non-struct value")
	}
	if got := err.Errors()[0].Tag(); got != "struct" {
		t.Errorf("Tag() = %q, want struct", got)
	}
}
