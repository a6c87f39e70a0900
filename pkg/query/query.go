// Copyright (c) 2026 Soul of Tanzania. All rights reserved.

// Package query parses list-valued filter parameters from URL query strings.
//
// The catalog and inquiry list endpoints accept their status filters both as
// repeated parameters (?status=draft&status=archived) and as comma-separated
// values (?status=draft,archived). Handlers feed every raw value through
// [StringSlice] so the two spellings behave identically.
package query

import "strings"

// StringSlice splits one raw query value on commas, trimming each entry and
// dropping blanks. Returns nil when the value carries nothing usable.
func StringSlice(raw string) []string {
	if raw == "" {
		return nil
	}

	var values []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
