// Copyright (c) 2026 Soul of Tanzania. All rights reserved.

/*
PostgreSQL implementation of the package catalog's data access.

It leans on a handful of Postgres features to keep the catalog fast and correct:
  - JSONB Columns: All structured and list-valued fields live in JSONB,
    re-normalized through the field parsers at scan time so legacy encodings
    (raw JSON strings inside the column) never reach the domain layer.
  - Window Functions: Calculates total result counts without a separate
    'COUNT' query.
  - Unique Index: The slug column's unique index is the authoritative
    duplicate-slug guard; violations surface as conflicts.
*/
package tour

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/soultanzania/safari-api/internal/platform/apperr"
	"github.com/soultanzania/safari-api/internal/platform/dberr"
)

// # PostgreSQL Repository

// packageRepository implements the [Repository] interface using pgx.
type packageRepository struct {
	pool *pgxpool.Pool
}

// NewPackageRepository constructs a PostgreSQL backed package store.
func NewPackageRepository(pool *pgxpool.Pool) Repository {
	return &packageRepository{pool: pool}
}

// packageColumns is the canonical SELECT column order shared by every lookup.
const packageColumns = `
	p.id, p.slug, p.name, p.description, p.longdescription, p.location,
	p.tourtype, p.comfortlevel, p.accommodation, p.difficultylevel,
	p.touroperator, p.duration, p.price, p.rating, p.reviewcount,
	p.groupsizemin, p.groupsizemax, p.groupsize, p.featured, p.popular,
	p.availability, p.status, p.isdraft, p.image, p.gallery, p.itinerary,
	p.pricing, p.accommodationdetails, p.transportation, p.inclusions,
	p.gettingthere, p.policies, p.bestseason, p.destinations, p.highlights,
	p.activities, p.includedactivities, p.tourfeatures, p.createdat,
	p.updatedat, p.publishedat`

// # JSONB Codec
//
// packageJSON buffers the raw bytes of every JSONB column between the pgx
// scan and domain hydration.
type packageJSON struct {
	gallery            []byte
	itinerary          []byte
	pricing            []byte
	accommodation      []byte
	transportation     []byte
	inclusions         []byte
	gettingThere       []byte
	policies           []byte
	bestSeason         []byte
	destinations       []byte
	highlights         []byte
	activities         []byte
	includedActivities []byte
	tourFeatures       []byte
}

// scanTargets returns the pointer list for the JSONB section of a row,
// matching the column order in [packageColumns].
func (j *packageJSON) scanTargets() []any {
	return []any{
		&j.gallery, &j.itinerary, &j.pricing, &j.accommodation,
		&j.transportation, &j.inclusions, &j.gettingThere, &j.policies,
		&j.bestSeason, &j.destinations, &j.highlights, &j.activities,
		&j.includedActivities, &j.tourFeatures,
	}
}

// hydrate decodes the buffered JSONB columns onto the package through the
// structured-field parsers.
//
// Going through the parsers rather than direct unmarshalling is what makes
// legacy rows safe: a column holding a JSON-encoded string (a historical
// double-encoding) decodes to a Go string, which the parsers unwrap. The
// domain layer therefore only ever sees canonical structures.
func (j *packageJSON) hydrate(pkg *Package) {
	pkg.Gallery = StringList(decodeJSON(j.gallery))
	pkg.Itinerary = ParseItinerary(decodeJSON(j.itinerary))
	pkg.Pricing = ParsePricing(decodeJSON(j.pricing))
	pkg.AccommodationDetails = ParseAccommodationDetails(decodeJSON(j.accommodation))
	pkg.Transportation = ParseTransportation(decodeJSON(j.transportation))
	pkg.Inclusions = ParseInclusions(decodeJSON(j.inclusions))
	pkg.GettingThere = ParseGettingThere(decodeJSON(j.gettingThere))
	pkg.Policies = ParsePolicies(decodeJSON(j.policies))
	pkg.BestSeason = StringList(decodeJSON(j.bestSeason))
	pkg.Destinations = StringList(decodeJSON(j.destinations))
	pkg.Highlights = StringList(decodeJSON(j.highlights))
	pkg.Activities = StringList(decodeJSON(j.activities))
	pkg.IncludedActivities = StringList(decodeJSON(j.includedActivities))
	pkg.TourFeatures = StringList(decodeJSON(j.tourFeatures))
}

// encodePackage marshals the structured fields of pkg for JSONB binding,
// in the same order [packageJSON.scanTargets] reads them.
func encodePackage(pkg *Package) ([]any, error) {
	fields := []any{
		pkg.Gallery, pkg.Itinerary, pkg.Pricing, pkg.AccommodationDetails,
		pkg.Transportation, pkg.Inclusions, pkg.GettingThere, pkg.Policies,
		pkg.BestSeason, pkg.Destinations, pkg.Highlights, pkg.Activities,
		pkg.IncludedActivities, pkg.TourFeatures,
	}

	encoded := make([]any, 0, len(fields))
	for _, field := range fields {
		raw, err := json.Marshal(field)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to encode package field: %w", err)
		}
		encoded = append(encoded, raw)
	}
	return encoded, nil
}

// decodeJSON unmarshals a raw JSONB value into a generic shape for the
// parsers. Empty or invalid bytes come back as nil, which every parser maps
// to its full default.
func decodeJSON(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil
	}
	return value
}

// scanPackage reads one full row into a hydrated [Package]. The extra
// pointers are appended between the scalar block and the timestamps, for
// queries that select additional columns (e.g. the window-function count).
func scanPackage(row pgx.Row, extra ...any) (*Package, error) {
	pkg := &Package{}
	jsonCols := &packageJSON{}

	targets := []any{
		&pkg.ID, &pkg.Slug, &pkg.Name, &pkg.Description, &pkg.LongDescription,
		&pkg.Location, &pkg.TourType, &pkg.ComfortLevel, &pkg.Accommodation,
		&pkg.DifficultyLevel, &pkg.TourOperator, &pkg.Duration, &pkg.Price,
		&pkg.Rating, &pkg.ReviewCount, &pkg.GroupSizeMin, &pkg.GroupSizeMax,
		&pkg.GroupSize, &pkg.Featured, &pkg.Popular, &pkg.Availability,
		&pkg.Status, &pkg.IsDraft, &pkg.Image,
	}
	targets = append(targets, jsonCols.scanTargets()...)
	targets = append(targets, &pkg.CreatedAt, &pkg.UpdatedAt, &pkg.PublishedAt)
	targets = append(targets, extra...)

	if err := row.Scan(targets...); err != nil {
		return nil, err
	}

	jsonCols.hydrate(pkg)
	return pkg, nil
}

// # Repository Implementation

/*
List returns a filtered, paginated slice of packages and the total count.

Description: Uses COUNT(*) OVER() to retrieve the total record count
without a second query, and a dynamically built WHERE clause for the
optional filters. Destination filtering uses the JSONB containment
operator against the destinations column.

Parameters:
  - context: context.Context
  - filter: Filter (Status, destination, tour type, search, sorting)
  - limit: int
  - offset: int

Returns:
  - []*Package: Slice of hydrated catalog records
  - int: Total count matching filters
  - error: Database execution errors
*/
func (repository *packageRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Package, int, error) {

	// Query build initialization
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString("SELECT " + packageColumns + ", COUNT(*) OVER() AS total_count FROM catalog.package p WHERE TRUE")

	// Apply Filters (Dynamic WHERE clause construction)
	if len(filter.Status) > 0 {
		statuses := make([]string, 0, len(filter.Status))
		for _, status := range filter.Status {
			statuses = append(statuses, string(status))
		}
		queryBuilder.WriteString(fmt.Sprintf(" AND p.status = ANY($%d)", argID))
		args = append(args, statuses)
		argID++
	}

	// Destination Filtering (JSONB containment or location match)
	if filter.Destination != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND (p.destinations @> to_jsonb($%d::text) OR p.location ILIKE '%%' || $%d || '%%')", argID, argID))
		args = append(args, filter.Destination)
		argID++
	}

	// Tour Type Filtering
	if filter.TourType != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND p.tourtype = $%d", argID))
		args = append(args, filter.TourType)
		argID++
	}

	// Flag Filtering
	if filter.Featured != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND p.featured = $%d", argID))
		args = append(args, *filter.Featured)
		argID++
	}
	if filter.Popular != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND p.popular = $%d", argID))
		args = append(args, *filter.Popular)
		argID++
	}

	// Search Query Filtering
	if filter.Query != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND (p.name ILIKE '%%' || $%d || '%%' OR p.description ILIKE '%%' || $%d || '%%' OR p.location ILIKE '%%' || $%d || '%%')", argID, argID, argID))
		args = append(args, filter.Query)
		argID++
	}

	// Apply Sorting Logic
	sort := "p.createdat"
	switch filter.Sort {
	case "price":
		sort = "p.price"
	case "rating":
		sort = "p.rating"
	case "name":
		sort = "p.name"
	case "latest":
		sort = "p.createdat"
	}

	// Apply Sorting Direction
	sortDir := "DESC"
	if strings.ToLower(filter.SortDir) == "asc" {
		sortDir = "ASC"
	}
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s %s, p.id DESC", sort, sortDir))

	// Pagination injection
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	// Query Execution
	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list packages: %w", err)
	}
	defer rows.Close()

	// Non-nil even when no rows match, so an empty page renders as [].
	packages := make([]*Package, 0)
	var totalCount int

	for rows.Next() {
		pkg, err := scanPackage(rows, &totalCount)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan package: %w", err)
		}
		packages = append(packages, pkg)
	}

	return packages, totalCount, nil
}

/*
FindByID retrieves a package record by its primary key.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - *Package: The fully hydrated entity with canonical structured fields
  - error: apperr.NotFound if the package does not exist
*/
func (repository *packageRepository) FindByID(context context.Context, id int64) (*Package, error) {

	query := "SELECT " + packageColumns + " FROM catalog.package p WHERE p.id = $1"

	pkg, err := scanPackage(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Package")
		}
		return nil, fmt.Errorf("postgres: failed to find package by id: %w", err)
	}
	return pkg, nil
}

/*
FindBySlug retrieves a package record by its unique SEO URL slug.

Description: Used for public detail pages where the numeric primary key is
not part of the frontend URL schema, and by the create path's best-effort
slug uniqueness pre-check.

Parameters:
  - context: context.Context
  - slug: string

Returns:
  - *Package: The fully hydrated entity
  - error: apperr.NotFound if no package carries the slug
*/
func (repository *packageRepository) FindBySlug(context context.Context, slug string) (*Package, error) {

	query := "SELECT " + packageColumns + " FROM catalog.package p WHERE p.slug = $1"

	pkg, err := scanPackage(repository.pool.QueryRow(context, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Package")
		}
		return nil, fmt.Errorf("postgres: failed to find package by slug: %w", err)
	}
	return pkg, nil
}

/*
Create persists a new package record.

Description: Single-statement insert; the store assigns the primary key
and creation/modification timestamps, which are written back onto the
entity via RETURNING. The unique index on the slug column rejects
duplicates with SQLSTATE 23505, surfaced to the caller as a conflict.

Parameters:
  - context: context.Context
  - pkg: *Package (Canonical record to insert)

Returns:
  - error: Conflict on slug collision, or other storage failures
*/
func (repository *packageRepository) Create(context context.Context, pkg *Package) error {

	query := `
		INSERT INTO catalog.package (
			slug, name, description, longdescription, location, tourtype,
			comfortlevel, accommodation, difficultylevel, touroperator,
			duration, price, rating, reviewcount, groupsizemin, groupsizemax,
			groupsize, featured, popular, availability, status, isdraft,
			image, gallery, itinerary, pricing, accommodationdetails,
			transportation, inclusions, gettingthere, policies, bestseason,
			destinations, highlights, activities, includedactivities,
			tourfeatures, publishedat
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27,
			$28, $29, $30, $31, $32, $33, $34, $35, $36, $37, $38
		)
		RETURNING id, createdat, updatedat
	`

	jsonArgs, err := encodePackage(pkg)
	if err != nil {
		return err
	}

	args := []any{
		pkg.Slug, pkg.Name, pkg.Description, pkg.LongDescription, pkg.Location,
		pkg.TourType, pkg.ComfortLevel, pkg.Accommodation, pkg.DifficultyLevel,
		pkg.TourOperator, pkg.Duration, pkg.Price, pkg.Rating, pkg.ReviewCount,
		pkg.GroupSizeMin, pkg.GroupSizeMax, pkg.GroupSize, pkg.Featured,
		pkg.Popular, pkg.Availability, string(pkg.Status), pkg.IsDraft,
		pkg.Image,
	}
	args = append(args, jsonArgs...)
	args = append(args, pkg.PublishedAt)

	err = repository.pool.QueryRow(context, query, args...).
		Scan(&pkg.ID, &pkg.CreatedAt, &pkg.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create package")
	}
	return nil
}

/*
Update replaces the mutable content of an existing package.

Description: Full content replace. Status, the draft flag, and the
publication timestamp are deliberately excluded; those move only through
[packageRepository.UpdateStatus]. The modification timestamp is stamped
by the database.

Parameters:
  - context: context.Context
  - pkg: *Package (Target ID and replacement content)

Returns:
  - error: apperr.NotFound if the target is missing, Conflict on slug
    collision, or other storage failures
*/
func (repository *packageRepository) Update(context context.Context, pkg *Package) error {

	query := `
		UPDATE catalog.package SET
			slug = $1, name = $2, description = $3, longdescription = $4,
			location = $5, tourtype = $6, comfortlevel = $7,
			accommodation = $8, difficultylevel = $9, touroperator = $10,
			duration = $11, price = $12, rating = $13, reviewcount = $14,
			groupsizemin = $15, groupsizemax = $16, groupsize = $17,
			featured = $18, popular = $19, availability = $20, image = $21,
			gallery = $22, itinerary = $23, pricing = $24,
			accommodationdetails = $25, transportation = $26,
			inclusions = $27, gettingthere = $28, policies = $29,
			bestseason = $30, destinations = $31, highlights = $32,
			activities = $33, includedactivities = $34, tourfeatures = $35,
			updatedat = now()
		WHERE id = $36
		RETURNING updatedat
	`

	jsonArgs, err := encodePackage(pkg)
	if err != nil {
		return err
	}

	args := []any{
		pkg.Slug, pkg.Name, pkg.Description, pkg.LongDescription, pkg.Location,
		pkg.TourType, pkg.ComfortLevel, pkg.Accommodation, pkg.DifficultyLevel,
		pkg.TourOperator, pkg.Duration, pkg.Price, pkg.Rating, pkg.ReviewCount,
		pkg.GroupSizeMin, pkg.GroupSizeMax, pkg.GroupSize, pkg.Featured,
		pkg.Popular, pkg.Availability, pkg.Image,
	}
	args = append(args, jsonArgs...)
	args = append(args, pkg.ID)

	err = repository.pool.QueryRow(context, query, args...).Scan(&pkg.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("Package")
		}
		return dberr.Wrap(err, "update package")
	}
	return nil
}

/*
UpdateStatus applies a status transition as a minimal partial patch.

Description: Touches exactly three columns. The modification timestamp is
intentionally NOT stamped here so that a transition leaves every content
field, including updatedat, byte-for-byte unchanged.

Parameters:
  - context: context.Context
  - id: int64
  - status: Status
  - isDraft: bool
  - publishedAt: *time.Time

Returns:
  - error: apperr.NotFound if the target is missing, or storage failures
*/
func (repository *packageRepository) UpdateStatus(context context.Context, id int64, status Status, isDraft bool, publishedAt *time.Time) error {

	query := `
		UPDATE catalog.package
		SET status = $1, isdraft = $2, publishedat = $3
		WHERE id = $4
	`

	tag, err := repository.pool.Exec(context, query, string(status), isDraft, publishedAt, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to update package status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Package")
	}
	return nil
}

/*
Delete removes a package permanently by primary key.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - error: apperr.NotFound if the target is missing, or storage failures
*/
func (repository *packageRepository) Delete(context context.Context, id int64) error {

	tag, err := repository.pool.Exec(context, "DELETE FROM catalog.package WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete package: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Package")
	}
	return nil
}
