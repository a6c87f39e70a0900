// Copyright (c) 2026 Soul of Tanzania. All rights reserved.

/*
Package tour defines the core domain entities for the safari catalog.

It manages the lifecycle of sellable tour packages: metadata, day-by-day
itineraries, seasonal pricing, and publication state.

Core Responsibility:

  - Catalog: Defines publication statuses (Draft, Published, Archived).
  - Normalization: Converts loosely-typed admin payloads into canonical records.
  - Discovery: Drives the public package listing and detail pages.

This package acts as the source of truth for all package-related data models.
*/
package tour

import "time"

// # Domain Enums

// Status represents the publication status of a package.
type Status string

const (
	// StatusDraft indicates the package is being edited and is not publicly visible.
	StatusDraft Status = "draft"

	// StatusPublished indicates the package is live on the public catalog.
	StatusPublished Status = "published"

	// StatusArchived indicates the package was retired but kept for reference.
	StatusArchived Status = "archived"
)

// IsValid reports whether s is a recognised [Status] value.
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// IsDraft reports whether the status maps to the legacy is_draft flag.
//
// The flag is historically redundant with the status column but is still
// read by older clients, so every write keeps the two consistent.
func (s Status) IsDraft() bool {
	return s == StatusDraft
}

// # Canonical Structured Fields
//
// Every structured field below is always present in its canonical form after
// normalization — never nil, never a raw unparsed string. Detail pages and the
// duplicate operation index into these without existence checks.

// MealPlan holds the three meal flags for one itinerary day.
type MealPlan struct {
	Breakfast bool `json:"breakfast"`
	Lunch     bool `json:"lunch"`
	Dinner    bool `json:"dinner"`
}

// ItineraryDay describes a single day of the tour programme.
type ItineraryDay struct {
	Day           int      `json:"day"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Meals         MealPlan `json:"meals"`
	Accommodation string   `json:"accommodation"`
}

// SeasonalPrice is one entry of the season-dependent price table.
type SeasonalPrice struct {
	Season     string `json:"season"`
	Price      string `json:"price"`
	StartMonth string `json:"start_month"`
	EndMonth   string `json:"end_month"`
}

// GroupDiscount is a per-head discount granted above a minimum group size.
type GroupDiscount struct {
	MinPeople int     `json:"min_people"`
	Discount  float64 `json:"discount"`
}

// Pricing aggregates the base price with seasonal and group adjustments.
type Pricing struct {
	BasePrice       float64         `json:"base_price"`
	SeasonalPricing []SeasonalPrice `json:"seasonal_pricing"`
	GroupDiscounts  []GroupDiscount `json:"group_discounts"`
}

// AccommodationDetails describes the lodging arrangement.
type AccommodationDetails struct {
	Note       string   `json:"note"`
	Inclusions []string `json:"inclusions"`
}

// Transportation lists the in-tour activities and transfer arrangement.
type Transportation struct {
	Activities []string `json:"activities"`
	Vehicle    string   `json:"vehicle"`
	Transfer   string   `json:"transfer"`
}

// Inclusions separates what the package price covers from what it doesn't.
type Inclusions struct {
	Included []string `json:"included"`
	Excluded []string `json:"excluded"`
}

// GettingThere describes how travellers reach the starting point.
type GettingThere struct {
	Description string   `json:"description"`
	Details     []string `json:"details"`
}

// Policies holds the free-text policy blocks shown on the detail page.
type Policies struct {
	Cancellation string `json:"cancellation"`
	HealthSafety string `json:"health_safety"`
	Insurance    string `json:"insurance"`
}

// # Core Entity

// Package is the central aggregate of the safari catalog.
// It represents a single sellable tour offering.
type Package struct {
	ID   int64  `json:"id"`
	Slug string `json:"slug"` // URL-safe unique identifier

	// Scalar descriptive fields
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	LongDescription string  `json:"long_description"`
	Location        string  `json:"location"`
	TourType        string  `json:"tour_type"`
	ComfortLevel    string  `json:"comfort_level"`
	Accommodation   string  `json:"accommodation"`
	DifficultyLevel string  `json:"difficulty_level"`
	TourOperator    string  `json:"tour_operator"`
	Duration        int     `json:"duration"` // days, positive
	Price           float64 `json:"price"`    // non-negative
	Rating          float64 `json:"rating"`   // 0-5
	ReviewCount     int     `json:"review_count"`
	GroupSizeMin    int     `json:"group_size_min"`
	GroupSizeMax    int     `json:"group_size_max"`
	GroupSize       string  `json:"group_size"` // display label, e.g. "1-6 People"
	Featured        bool    `json:"featured"`
	Popular         bool    `json:"popular"`
	Availability    bool    `json:"availability"`
	Status          Status  `json:"status"`
	IsDraft         bool    `json:"is_draft"` // kept consistent with Status on every write

	// Media
	Image   string   `json:"image"`
	Gallery []string `json:"gallery"`

	// Structured fields (canonical after normalization)
	Itinerary            []ItineraryDay       `json:"itinerary"`
	Pricing              Pricing              `json:"pricing"`
	AccommodationDetails AccommodationDetails `json:"accommodation_details"`
	Transportation       Transportation       `json:"activities_transportation"`
	Inclusions           Inclusions           `json:"inclusions"`
	GettingThere         GettingThere         `json:"getting_there"`
	Policies             Policies             `json:"policies"`

	// Flat sequences
	BestSeason         []string `json:"best_season"`
	Destinations       []string `json:"destinations"`
	Highlights         []string `json:"highlights"`
	Activities         []string `json:"activities"`
	IncludedActivities []string `json:"included_activities"`
	TourFeatures       []string `json:"tour_features"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	PublishedAt *time.Time `json:"published_at,omitempty"` // set only on transition into published
}

// # Search & Filtering

// Filter holds the parameters for a filtered package list query.
type Filter struct {
	Status      []Status `json:"status,omitempty"`
	Destination string   `json:"destination,omitempty"`
	TourType    string   `json:"tour_type,omitempty"`
	Featured    *bool    `json:"featured,omitempty"`
	Popular     *bool    `json:"popular,omitempty"`
	Query       string   `json:"q,omitempty"`
	Sort        string   `json:"sort,omitempty"` // latest, price, rating
	SortDir     string   `json:"sort_dir,omitempty"`
}

// # Business Defaults (create path)

const (
	DefaultTourType      = "Safari"
	DefaultComfortLevel  = "Comfortable"
	DefaultAccommodation = "Luxury Lodge"
	DefaultTourOperator  = "Soul of Tanzania"
	DefaultDifficulty    = "Moderate"
	DefaultRating        = 4.8
	DefaultDuration      = 7
	DefaultGroupSizeMin  = 1
	DefaultGroupSizeMax  = 6
)

// # Field Identifiers

// Global field names for validation and payload extraction.
const (
	FieldName        = "name"
	FieldSlug        = "slug"
	FieldPrice       = "price"
	FieldStatus      = "status"
	FieldDuration    = "duration"
	FieldRating      = "rating"
	FieldReviewCount = "review_count"
	FieldImage       = "image"
	FieldGallery     = "gallery"
)
