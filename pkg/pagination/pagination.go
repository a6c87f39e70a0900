// Copyright (c) 2026 Soul of Tanzania. All rights reserved.

// Package pagination implements page-based navigation for the list endpoints.
//
// Every listing in the API (packages, proposals) takes "page" and "limit"
// query parameters and answers with a metadata block alongside the data
// array, so the back office can render page controls without a second count
// request.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultLimit is the page size when the caller does not ask for one.
	DefaultLimit = 20

	// MaxLimit caps the page size; larger requests fall back to the default.
	MaxLimit = 100

	// DefaultPage is the first page. Pages are 1-indexed.
	DefaultPage = 1
)

// Params is a sanitized page request. Construct it through [FromRequest];
// the zero value would yield a zero limit.
type Params struct {
	Page  int
	Limit int
}

// Offset converts the 1-indexed page into a SQL OFFSET.
func (params Params) Offset() int {
	if params.Page <= 1 {
		return 0
	}
	return (params.Page - 1) * params.Limit
}

// Meta is the navigation block embedded in every paginated envelope.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewMeta builds the metadata for one response page. TotalPages rounds up,
// so a partial final page still counts.
func NewMeta(page, limit, total int) Meta {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// FromRequest reads "page" and "limit" from the request's query string.
// Missing, malformed, non-positive, or oversized values clamp to the
// package defaults rather than failing the request.
func FromRequest(request *http.Request) Params {
	page := intParam(request, "page", DefaultPage)
	limit := intParam(request, "limit", DefaultLimit)

	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 || limit > MaxLimit {
		limit = DefaultLimit
	}

	return Params{Page: page, Limit: limit}
}

// intParam reads one integer query parameter, falling back on any parse
// failure.
func intParam(request *http.Request, key string, fallback int) int {
	raw := request.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
