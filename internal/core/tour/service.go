// Copyright (c) 2026 Soul of Tanzania. All rights reserved.

package tour

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/soultanzania/safari-api/internal/platform/apperr"
	"github.com/soultanzania/safari-api/internal/platform/validate"
	"github.com/soultanzania/safari-api/pkg/slug"
)

// # Service Layer

// Service orchestrates the business logic for the safari package catalog.
// It owns the normalization pipeline: loosely-typed admin documents in,
// canonical records out.
type Service struct {
	packageRepo Repository
}

// NewService constructs a new [Service] with its required repository.
func NewService(packageRepo Repository) *Service {
	return &Service{packageRepo: packageRepo}
}

// # Package Lookups

/*
ListPackages retrieves a paginated and filtered collection of packages.

Description: This method orchestrates the discovery phase of the catalog.
It passes filter criteria directly to the repository layer for efficient
database-level filtering and sorting.

Parameters:
  - context: context.Context
  - filter: Filter (Criteria for status, destination, search, etc.)
  - limit: int (Max records to return)
  - offset: int (Pagination cursor)

Returns:
  - []*Package: Slice of matching catalog records
  - int: Total count of records matching the filter (for pagination metadata)
  - error: System or repository level errors
*/
func (service *Service) ListPackages(context context.Context, filter Filter, limit, offset int) ([]*Package, int, error) {
	return service.packageRepo.List(context, filter, limit, offset)
}

/*
GetPackage fetches a single package by numeric ID or SEO slug.

Description: The service determines the lookup strategy from the
identifier's shape. A purely numeric identifier is treated as the primary
key; anything else resolves via the unique URL slug.

Parameters:
  - context: context.Context
  - identifier: string (Numeric ID or slug)

Returns:
  - *Package: The hydrated domain entity
  - error: NotFound if no match exists
*/
func (service *Service) GetPackage(context context.Context, identifier string) (*Package, error) {

	// Identity format detection
	if id, err := strconv.ParseInt(identifier, 10, 64); err == nil {
		return service.packageRepo.FindByID(context, id)
	}

	// Slug resolution
	return service.packageRepo.FindBySlug(context, identifier)
}

// # Package Management

/*
CreatePackage assembles and persists a new package from a raw admin document.

Description: Runs the full normalization pipeline. Scalar fields pass
through the coercers, structured fields through the total parsers, and
every omitted field takes its documented business default. The slug is
taken verbatim when the caller supplies one, otherwise derived from the
name. A best-effort uniqueness pre-check runs before the insert; the
store's unique index remains the authoritative guard and its violation
also surfaces as a conflict.

Parameters:
  - context: context.Context
  - doc: Document (Raw admin payload)

Returns:
  - *Package: The persisted record with assigned identity and timestamps
  - error: Validation, conflict, or persistence errors
*/
func (service *Service) CreatePackage(context context.Context, doc Document) (*Package, error) {

	// Required field validation: only name and price are hard requirements,
	// everything else defaults.
	name := StringOr(doc["name"], "")
	price := FloatOrNil(doc["price"])

	validator := &validate.Validator{}
	validator.Required(FieldName, name)
	validator.Custom(FieldPrice, price == nil, "Price is required and must be numeric")
	if price != nil {
		validator.NonNegative(FieldPrice, *price)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Slug assignment: caller-supplied slugs are used verbatim, derived
	// slugs go through the normalizer (which also truncates to the limit
	// BEFORE the uniqueness check, so truncated twins collide here).
	packageSlug := StringOr(doc["slug"], "")
	if packageSlug == "" {
		packageSlug = slug.From(name)
	}

	if err := service.ensureSlugFree(context, packageSlug); err != nil {
		return nil, err
	}

	// Record assembly
	pkg := &Package{Slug: packageSlug}
	applyDocument(pkg, doc)

	// Status resolves to draft unless the caller explicitly publishes.
	pkg.Status = StatusDraft
	if Status(StringOr(doc[FieldStatus], "")) == StatusPublished {
		pkg.Status = StatusPublished
		now := time.Now().UTC()
		pkg.PublishedAt = &now
	}
	pkg.IsDraft = pkg.Status.IsDraft()

	// Persistence via Repository
	if err := service.packageRepo.Create(context, pkg); err != nil {
		return nil, err
	}
	return pkg, nil
}

/*
UpdatePackage replaces the content of an existing package from a raw document.

Description: This is a full-document replace, not a patch. Every scalar
and structured field is re-normalized from the incoming document and
overwrites the stored value. Identity, status, and the publication
timestamp are NOT touched here; status moves only through the dedicated
transition calls.

Parameters:
  - context: context.Context
  - id: int64 (Primary key of the target record)
  - doc: Document (Raw admin payload)

Returns:
  - *Package: The updated record
  - error: NotFound, validation, or persistence errors
*/
func (service *Service) UpdatePackage(context context.Context, id int64, doc Document) (*Package, error) {

	// Target existence check
	pkg, err := service.packageRepo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	// Updates require a usable name and price
	name := StringOr(doc["name"], "")
	price := FloatOrNil(doc["price"])

	validator := &validate.Validator{}
	validator.Required(FieldName, name)
	validator.Custom(FieldPrice, price == nil, "Price is required and must be numeric")
	if price != nil {
		validator.NonNegative(FieldPrice, *price)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Full content replace over the loaded record
	applyDocument(pkg, doc)

	// An explicit slug is honoured verbatim; absent means unchanged.
	if newSlug := StringOr(doc[FieldSlug], ""); newSlug != "" && newSlug != pkg.Slug {
		if err := service.ensureSlugFree(context, newSlug); err != nil {
			return nil, err
		}
		pkg.Slug = newSlug
	}

	// Execute storage update
	if err := service.packageRepo.Update(context, pkg); err != nil {
		return nil, err
	}
	return pkg, nil
}

/*
DuplicatePackage clones an existing package as a fresh draft.

Description: The source record is read in full and every structured field
is pushed back through its parser. Legacy rows sometimes hold raw JSON
strings where structures belong; the re-parse guarantees the clone is
canonical even when the source was not. The clone is always forced to
draft, unfeatured, and unpopular, and receives a timestamped copy slug
that needs no store round-trip for uniqueness. The source is never
mutated.

Parameters:
  - context: context.Context
  - id: int64 (Primary key of the source record)

Returns:
  - *Package: The newly persisted clone
  - error: NotFound or persistence errors
*/
func (service *Service) DuplicatePackage(context context.Context, id int64) (*Package, error) {

	// Source record lookup
	source, err := service.packageRepo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	// Shallow copy, then replace every slice-bearing field with a fresh
	// parse so the clone shares no backing arrays with the source.
	clone := *source
	clone.ID = 0
	clone.Slug = copySlug(source.Slug)

	clone.Gallery = StringList(source.Gallery)
	clone.Itinerary = ParseItinerary(reparse(source.Itinerary))
	clone.Pricing = ParsePricing(reparse(source.Pricing))
	clone.AccommodationDetails = ParseAccommodationDetails(reparse(source.AccommodationDetails))
	clone.Transportation = ParseTransportation(reparse(source.Transportation))
	clone.Inclusions = ParseInclusions(reparse(source.Inclusions))
	clone.GettingThere = ParseGettingThere(reparse(source.GettingThere))
	clone.Policies = ParsePolicies(reparse(source.Policies))
	clone.BestSeason = StringList(source.BestSeason)
	clone.Destinations = StringList(source.Destinations)
	clone.Highlights = StringList(source.Highlights)
	clone.Activities = StringList(source.Activities)
	clone.IncludedActivities = StringList(source.IncludedActivities)
	clone.TourFeatures = StringList(source.TourFeatures)

	// Clones always start their own lifecycle
	clone.Status = StatusDraft
	clone.IsDraft = true
	clone.Featured = false
	clone.Popular = false
	clone.PublishedAt = nil
	clone.CreatedAt = time.Time{}
	clone.UpdatedAt = time.Time{}

	// Insert as a brand new record
	if err := service.packageRepo.Create(context, &clone); err != nil {
		return nil, err
	}
	return &clone, nil
}

/*
DeletePackage removes a package permanently.

Description: Hard delete by primary key. Retired packages that should
remain referenceable belong in the archived status instead.

Parameters:
  - context: context.Context
  - id: int64 (Primary key)

Returns:
  - error: NotFound or persistence errors
*/
func (service *Service) DeletePackage(context context.Context, id int64) error {
	return service.packageRepo.Delete(context, id)
}

// # Status Transitions
//
// Transitions are deliberate partial patches: they touch status, the derived
// draft flag, and (entering published only) the publication timestamp.
// Every other field is left byte-for-byte as stored.

// PublishPackage moves a package into the public catalog.
func (service *Service) PublishPackage(context context.Context, id int64) (*Package, error) {
	return service.transition(context, id, StatusPublished)
}

// UnpublishPackage pulls a package back to draft without losing content.
func (service *Service) UnpublishPackage(context context.Context, id int64) (*Package, error) {
	return service.transition(context, id, StatusDraft)
}

// ArchivePackage retires a package while keeping it for reference.
func (service *Service) ArchivePackage(context context.Context, id int64) (*Package, error) {
	return service.transition(context, id, StatusArchived)
}

// RestorePackage brings an archived package back as a draft.
func (service *Service) RestorePackage(context context.Context, id int64) (*Package, error) {
	return service.transition(context, id, StatusDraft)
}

/*
transition applies a status change to a single package.

Description: Loads the target, computes the derived draft flag, and stamps
the publication timestamp only when the record newly enters the published
state. The timestamp is preserved on every other transition so the
original publication date survives unpublish/republish cycles.

Parameters:
  - context: context.Context
  - id: int64 (Primary key)
  - target: Status (Destination state)

Returns:
  - *Package: The record with the new status applied
  - error: NotFound or persistence errors
*/
func (service *Service) transition(context context.Context, id int64, target Status) (*Package, error) {

	pkg, err := service.packageRepo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	publishedAt := pkg.PublishedAt
	if target == StatusPublished && pkg.Status != StatusPublished {
		now := time.Now().UTC()
		publishedAt = &now
	}

	if err := service.packageRepo.UpdateStatus(context, id, target, target.IsDraft(), publishedAt); err != nil {
		return nil, err
	}

	pkg.Status = target
	pkg.IsDraft = target.IsDraft()
	pkg.PublishedAt = publishedAt
	return pkg, nil
}

// # Internal Helpers

// ensureSlugFree is the best-effort application-level uniqueness pre-check.
// The unique index on the slug column is the authoritative guard; a race
// slipping past this check still surfaces as a conflict from the store.
func (service *Service) ensureSlugFree(context context.Context, candidate string) error {
	_, err := service.packageRepo.FindBySlug(context, candidate)
	if err == nil {
		return apperr.Conflict(fmt.Sprintf("A package with slug %q already exists", candidate))
	}
	if ae := apperr.As(err); ae != nil && ae.HTTPStatus == http.StatusNotFound {
		return nil
	}
	return err
}

// copySlug appends a timestamped "-copy-<nanos>" marker to a source slug.
// The base is truncated first so the result always fits within
// [slug.MaxLength], matching the column width in the store.
func copySlug(source string) string {
	suffix := fmt.Sprintf("-copy-%d", time.Now().UnixNano())
	base := source
	if len(base)+len(suffix) > slug.MaxLength {
		base = strings.TrimRight(base[:slug.MaxLength-len(suffix)], "-")
	}
	return base + suffix
}

// reparse round-trips a canonical structure through generic JSON so the
// structured-field parsers can rebuild it as fresh, independently-owned
// values. Parsing a canonical structure is idempotent, so this is a pure
// deep copy.
func reparse(v any) any {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}

	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}
