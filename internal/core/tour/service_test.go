// Copyright (c) 2026 Soul of Tanzania. All rights reserved.

package tour_test

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soultanzania/safari-api/internal/core/tour"
	"github.com/soultanzania/safari-api/internal/platform/apperr"
	"github.com/soultanzania/safari-api/pkg/slug"
)

// # In-Memory Repository

// fakeRepository is an in-memory [tour.Repository] for service-level tests.
type fakeRepository struct {
	nextID  int64
	records map[int64]*tour.Package
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{records: map[int64]*tour.Package{}}
}

func (f *fakeRepository) List(_ context.Context, filter tour.Filter, limit, offset int) ([]*tour.Package, int, error) {
	var out []*tour.Package
	for _, pkg := range f.records {
		out = append(out, pkg)
	}
	return out, len(out), nil
}

func (f *fakeRepository) FindByID(_ context.Context, id int64) (*tour.Package, error) {
	pkg, ok := f.records[id]
	if !ok {
		return nil, apperr.NotFound("Package")
	}
	clone := *pkg
	return &clone, nil
}

func (f *fakeRepository) FindBySlug(_ context.Context, slug string) (*tour.Package, error) {
	for _, pkg := range f.records {
		if pkg.Slug == slug {
			clone := *pkg
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("Package")
}

func (f *fakeRepository) Create(_ context.Context, pkg *tour.Package) error {
	for _, existing := range f.records {
		if existing.Slug == pkg.Slug {
			return apperr.Conflict("Resource already exists")
		}
	}

	f.nextID++
	pkg.ID = f.nextID
	pkg.CreatedAt = time.Now().UTC()
	pkg.UpdatedAt = pkg.CreatedAt

	stored := *pkg
	f.records[pkg.ID] = &stored
	return nil
}

func (f *fakeRepository) Update(_ context.Context, pkg *tour.Package) error {
	if _, ok := f.records[pkg.ID]; !ok {
		return apperr.NotFound("Package")
	}
	pkg.UpdatedAt = time.Now().UTC()
	stored := *pkg
	f.records[pkg.ID] = &stored
	return nil
}

func (f *fakeRepository) UpdateStatus(_ context.Context, id int64, status tour.Status, isDraft bool, publishedAt *time.Time) error {
	pkg, ok := f.records[id]
	if !ok {
		return apperr.NotFound("Package")
	}
	pkg.Status = status
	pkg.IsDraft = isDraft
	pkg.PublishedAt = publishedAt
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id int64) error {
	if _, ok := f.records[id]; !ok {
		return apperr.NotFound("Package")
	}
	delete(f.records, id)
	return nil
}

// # Create

/*
TestService_CreatePackage_Defaults walks the full create pipeline with a
minimal payload and checks every documented business default.
*/
func TestService_CreatePackage_Defaults(t *testing.T) {
	service := tour.NewService(newFakeRepository())

	pkg, err := service.CreatePackage(context.Background(), tour.Document{
		"name":  "Kilimanjaro Trek",
		"price": "1200",
	})
	require.NoError(t, err)

	assert.Equal(t, "kilimanjaro-trek", pkg.Slug)
	assert.Equal(t, tour.StatusDraft, pkg.Status)
	assert.True(t, pkg.IsDraft)
	assert.Nil(t, pkg.PublishedAt)

	assert.InDelta(t, 1200, pkg.Price, 0.0001)
	assert.Equal(t, tour.DefaultDuration, pkg.Duration)
	assert.Equal(t, tour.DefaultTourType, pkg.TourType)
	assert.Equal(t, tour.DefaultComfortLevel, pkg.ComfortLevel)
	assert.Equal(t, tour.DefaultAccommodation, pkg.Accommodation)
	assert.Equal(t, "Soul of Tanzania", pkg.TourOperator)
	assert.InDelta(t, tour.DefaultRating, pkg.Rating, 0.0001)
	assert.Zero(t, pkg.ReviewCount)
	assert.Equal(t, "1-6 People", pkg.GroupSize)
	assert.True(t, pkg.Availability)

	// No pricing supplied: full default, never nil
	assert.Zero(t, pkg.Pricing.BasePrice)
	require.NotNil(t, pkg.Pricing.SeasonalPricing)
	require.NotNil(t, pkg.Itinerary)
	require.NotNil(t, pkg.Gallery)
}

/*
TestService_CreatePackage_MissingRequired checks that name and price are the
only hard requirements and that omitting either rejects the document.
*/
func TestService_CreatePackage_MissingRequired(t *testing.T) {
	tests := []struct {
		name string
		doc  tour.Document
	}{
		{"missing_price", tour.Document{"name": "Serengeti Safari"}},
		{"missing_name", tour.Document{"price": float64(900)}},
		{"blank_name", tour.Document{"name": "   ", "price": float64(900)}},
		{"non_numeric_price", tour.Document{"name": "Serengeti Safari", "price": "expensive"}},
		{"negative_price", tour.Document{"name": "Serengeti Safari", "price": float64(-10)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := tour.NewService(newFakeRepository())

			_, err := service.CreatePackage(context.Background(), tt.doc)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
		})
	}
}

/*
TestService_CreatePackage_DuplicateSlug ensures the pre-check rejects a
second create deriving the same slug with a conflict.
*/
func TestService_CreatePackage_DuplicateSlug(t *testing.T) {
	service := tour.NewService(newFakeRepository())

	_, err := service.CreatePackage(context.Background(), tour.Document{"name": "Ngorongoro Day Trip", "price": float64(450)})
	require.NoError(t, err)

	_, err = service.CreatePackage(context.Background(), tour.Document{"name": "Ngorongoro  Day   Trip!!", "price": float64(500)})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
}

/*
TestService_CreatePackage_ExplicitPublish checks the one status override the
create path honours, including the publication timestamp.
*/
func TestService_CreatePackage_ExplicitPublish(t *testing.T) {
	service := tour.NewService(newFakeRepository())

	pkg, err := service.CreatePackage(context.Background(), tour.Document{
		"name":   "Zanzibar Beach Escape",
		"price":  float64(780),
		"status": "published",
	})
	require.NoError(t, err)

	assert.Equal(t, tour.StatusPublished, pkg.Status)
	assert.False(t, pkg.IsDraft)
	require.NotNil(t, pkg.PublishedAt)
}

// # Update

/*
TestService_UpdatePackage verifies the full-replace semantics: content is
re-normalized from the document while identity, status, and the publication
timestamp stay untouched.
*/
func TestService_UpdatePackage(t *testing.T) {
	repo := newFakeRepository()
	service := tour.NewService(repo)

	created, err := service.CreatePackage(context.Background(), tour.Document{
		"name":       "Tarangire Explorer",
		"price":      float64(950),
		"status":     "published",
		"highlights": []any{"Elephants", "Baobabs"},
	})
	require.NoError(t, err)
	publishedAt := created.PublishedAt

	updated, err := service.UpdatePackage(context.Background(), created.ID, tour.Document{
		"name":  "Tarangire Explorer",
		"price": "1050",
		"pricing": map[string]any{
			"base_price": float64(1050),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.Slug, updated.Slug)
	assert.InDelta(t, 1050, updated.Price, 0.0001)
	assert.InDelta(t, 1050, updated.Pricing.BasePrice, 0.0001)

	// Full replace: the omitted highlights list resets to its default
	assert.Empty(t, updated.Highlights)

	// Lifecycle state is owned by the transition calls, not update
	assert.Equal(t, tour.StatusPublished, updated.Status)
	assert.Equal(t, publishedAt, updated.PublishedAt)
}

/*
TestService_UpdatePackage_Validation rejects updates without a usable name
and price.
*/
func TestService_UpdatePackage_Validation(t *testing.T) {
	service := tour.NewService(newFakeRepository())

	created, err := service.CreatePackage(context.Background(), tour.Document{"name": "Lake Manyara", "price": float64(400)})
	require.NoError(t, err)

	_, err = service.UpdatePackage(context.Background(), created.ID, tour.Document{"name": "Lake Manyara"})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	_, err = service.UpdatePackage(context.Background(), created.ID, tour.Document{"price": float64(400)})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

/*
TestService_UpdatePackage_NotFound surfaces a 404 for an unknown target.
*/
func TestService_UpdatePackage_NotFound(t *testing.T) {
	service := tour.NewService(newFakeRepository())

	_, err := service.UpdatePackage(context.Background(), 9999, tour.Document{"name": "Ghost", "price": float64(1)})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

// # Duplicate

/*
TestService_DuplicatePackage checks that a clone is always forced to a fresh
draft, carries a timestamped copy slug, owns its own structured data, and
leaves the source untouched.
*/
func TestService_DuplicatePackage(t *testing.T) {
	repo := newFakeRepository()
	service := tour.NewService(repo)

	source, err := service.CreatePackage(context.Background(), tour.Document{
		"name":     "Great Migration Safari",
		"price":    float64(3200),
		"status":   "published",
		"featured": true,
		"popular":  true,
		"itinerary": []any{
			map[string]any{"day": float64(1), "title": "Arrival"},
		},
	})
	require.NoError(t, err)
	sourceSnapshot := snapshot(t, source)

	clone, err := service.DuplicatePackage(context.Background(), source.ID)
	require.NoError(t, err)

	assert.NotEqual(t, source.ID, clone.ID)
	assert.True(t, strings.HasPrefix(clone.Slug, source.Slug+"-copy-"))

	// Clones always restart their lifecycle
	assert.Equal(t, tour.StatusDraft, clone.Status)
	assert.True(t, clone.IsDraft)
	assert.False(t, clone.Featured)
	assert.False(t, clone.Popular)
	assert.Nil(t, clone.PublishedAt)

	// Content carries over canonically
	require.Len(t, clone.Itinerary, 1)
	assert.Equal(t, "Arrival", clone.Itinerary[0].Title)

	// The clone owns its slices
	clone.Itinerary[0].Title = "Mutated"
	stored, err := repo.FindByID(context.Background(), source.ID)
	require.NoError(t, err)
	assert.Equal(t, "Arrival", stored.Itinerary[0].Title)

	// The source record is byte-for-byte unchanged
	assert.Equal(t, sourceSnapshot, snapshot(t, stored))
}

/*
TestService_DuplicatePackage_LongSlug duplicates a package whose slug
already sits at the maximum length. The copy marker must not push the
clone's slug past the limit the store column enforces.
*/
func TestService_DuplicatePackage_LongSlug(t *testing.T) {
	service := tour.NewService(newFakeRepository())

	source, err := service.CreatePackage(context.Background(), tour.Document{
		"name":  "Endless Plains",
		"slug":  strings.Repeat("a", slug.MaxLength),
		"price": float64(1500),
	})
	require.NoError(t, err)
	require.Len(t, source.Slug, slug.MaxLength)

	clone, err := service.DuplicatePackage(context.Background(), source.ID)
	require.NoError(t, err)

	assert.LessOrEqual(t, len(clone.Slug), slug.MaxLength)
	assert.Contains(t, clone.Slug, "-copy-")
	assert.True(t, strings.HasPrefix(clone.Slug, "aaaa"))
	assert.NotEqual(t, source.Slug, clone.Slug)
}

// # Status Transitions

/*
TestService_Transition_Isolation verifies that publishing touches only the
lifecycle fields; every other field survives byte-for-byte.
*/
func TestService_Transition_Isolation(t *testing.T) {
	repo := newFakeRepository()
	service := tour.NewService(repo)

	draft, err := service.CreatePackage(context.Background(), tour.Document{
		"name":  "Selous Fly-In",
		"price": float64(2100),
		"inclusions": map[string]any{
			"included": []any{"Charter flights", "Full board"},
			"excluded": []any{"International flights"},
		},
	})
	require.NoError(t, err)
	before := snapshot(t, draft)

	published, err := service.PublishPackage(context.Background(), draft.ID)
	require.NoError(t, err)

	assert.Equal(t, tour.StatusPublished, published.Status)
	assert.False(t, published.IsDraft)
	require.NotNil(t, published.PublishedAt)

	// Neutralize exactly the three lifecycle fields, then compare the rest
	after := snapshot(t, published)
	for _, field := range []string{"status", "is_draft", "published_at"} {
		delete(before, field)
		delete(after, field)
	}
	assert.Equal(t, before, after)
}

/*
TestService_Transition_PreservesPublishedAt checks that an unpublish and
republish cycle keeps a usable publication history: unpublishing does not
clear the timestamp, republishing refreshes it.
*/
func TestService_Transition_PreservesPublishedAt(t *testing.T) {
	service := tour.NewService(newFakeRepository())

	pkg, err := service.CreatePackage(context.Background(), tour.Document{"name": "Ruaha Expedition", "price": float64(1700)})
	require.NoError(t, err)

	published, err := service.PublishPackage(context.Background(), pkg.ID)
	require.NoError(t, err)
	firstPublish := published.PublishedAt
	require.NotNil(t, firstPublish)

	unpublished, err := service.UnpublishPackage(context.Background(), pkg.ID)
	require.NoError(t, err)
	assert.Equal(t, tour.StatusDraft, unpublished.Status)
	assert.Equal(t, firstPublish, unpublished.PublishedAt)

	archived, err := service.ArchivePackage(context.Background(), pkg.ID)
	require.NoError(t, err)
	assert.Equal(t, tour.StatusArchived, archived.Status)

	restored, err := service.RestorePackage(context.Background(), pkg.ID)
	require.NoError(t, err)
	assert.Equal(t, tour.StatusDraft, restored.Status)
	assert.True(t, restored.IsDraft)
}

// # Lookup & Delete

/*
TestService_GetPackage resolves numeric identifiers by primary key and
everything else by slug.
*/
func TestService_GetPackage(t *testing.T) {
	service := tour.NewService(newFakeRepository())

	created, err := service.CreatePackage(context.Background(), tour.Document{"name": "Mikumi Weekend", "price": float64(520)})
	require.NoError(t, err)

	byID, err := service.GetPackage(context.Background(), fmt.Sprintf("%d", created.ID))
	require.NoError(t, err)
	assert.Equal(t, created.ID, byID.ID)

	bySlug, err := service.GetPackage(context.Background(), "mikumi-weekend")
	require.NoError(t, err)
	assert.Equal(t, created.ID, bySlug.ID)

	_, err = service.GetPackage(context.Background(), "no-such-package")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestService_DeletePackage removes hard and surfaces 404 on repeat.
*/
func TestService_DeletePackage(t *testing.T) {
	service := tour.NewService(newFakeRepository())

	created, err := service.CreatePackage(context.Background(), tour.Document{"name": "Katavi Off-Grid", "price": float64(2900)})
	require.NoError(t, err)

	require.NoError(t, service.DeletePackage(context.Background(), created.ID))

	err = service.DeletePackage(context.Background(), created.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

// # Test Helpers

// snapshot renders a package as a generic JSON map for field-level diffing.
func snapshot(t *testing.T, pkg *tour.Package) map[string]any {
	t.Helper()

	raw, err := json.Marshal(pkg)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}
