// Copyright (c) 2026 Soul of Tanzania. All rights reserved.

package slug_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/soultanzania/safari-api/pkg/slug"
)

/*
TestFrom covers the standard derivation pipeline.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Serengeti Safari", "serengeti-safari"},
		{"punctuation_and_runs", "Serengeti  Safari!!", "serengeti-safari"},
		{"accents", "Ngorongoro Cratère", "ngorongoro-cratere"},
		{"mixed_case_digits", "7-Day Kilimanjaro Trek", "7-day-kilimanjaro-trek"},
		{"leading_trailing_junk", "  --Zanzibar Beach--  ", "zanzibar-beach"},
		{"empty", "", ""},
		{"only_symbols", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}

/*
TestFrom_Truncation verifies that over-long names are cut to exactly MaxLength
characters without leaving a trailing hyphen.
*/
func TestFrom_Truncation(t *testing.T) {
	long := strings.Repeat("a", slug.MaxLength+50)
	got := slug.From(long)
	assert.Len(t, got, slug.MaxLength)

	// A hyphen landing on the cut boundary must be trimmed.
	boundary := strings.Repeat("a", slug.MaxLength-1) + " " + strings.Repeat("b", 20)
	got = slug.From(boundary)
	assert.False(t, strings.HasSuffix(got, "-"))
	assert.LessOrEqual(t, len(got), slug.MaxLength)
}
