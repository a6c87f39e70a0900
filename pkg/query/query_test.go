// Copyright (c) 2026 Soul of Tanzania. All rights reserved.

package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/soultanzania/safari-api/pkg/query"
)

func TestStringSlice(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", nil},
		{"single", "draft", []string{"draft"}},
		{"comma_separated", "draft,archived", []string{"draft", "archived"}},
		{"padded", " draft , archived ", []string{"draft", "archived"}},
		{"blank_entries", "draft,,  ,archived", []string{"draft", "archived"}},
		{"only_blanks", " , ,", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, query.StringSlice(tt.raw))
		})
	}
}
