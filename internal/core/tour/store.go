// Copyright (c) 2026 Soul of Tanzania. All rights reserved.

package tour

import (
	"context"
	"time"
)

// # Package Data Access

// Repository defines the data access contract for the package catalog.
type Repository interface {

	/*
		List returns a filtered, paginated slice of packages and the total count.

		Parameters:
		  - context: context.Context
		  - filter: Filter (Criteria for status, destination, search, etc.)
		  - limit: int
		  - offset: int

		Returns:
		  - []*Package: Slice of matching catalog records
		  - int: Total count of records matching the filter
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Package, int, error)

	/*
		FindByID returns the package with the given primary key.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - *Package: The hydrated domain entity
		  - error: NotFound if missing
	*/
	FindByID(context context.Context, id int64) (*Package, error)

	/*
		FindBySlug returns the package matching the unique SEO identifier.

		Parameters:
		  - context: context.Context
		  - slug: string

		Returns:
		  - *Package: The hydrated domain entity
		  - error: NotFound if missing
	*/
	FindBySlug(context context.Context, slug string) (*Package, error)

	/*
		Create persists a new package and fills in its assigned identity and
		timestamps. A slug collision surfaces as a conflict error.

		Parameters:
		  - context: context.Context
		  - pkg: *Package (Canonical record to insert)

		Returns:
		  - error: Storage or constraint failures
	*/
	Create(context context.Context, pkg *Package) error

	/*
		Update replaces the mutable content of an existing package and stamps
		the modification timestamp.

		Parameters:
		  - context: context.Context
		  - pkg: *Package (Target ID and replacement content)

		Returns:
		  - error: NotFound or storage failures
	*/
	Update(context context.Context, pkg *Package) error

	/*
		UpdateStatus applies a status transition without touching any content
		field. The derived draft flag and publication timestamp travel with it.

		Parameters:
		  - context: context.Context
		  - id: int64
		  - status: Status (Destination state)
		  - isDraft: bool (Derived draft flag)
		  - publishedAt: *time.Time (Publication timestamp, nil if never published)

		Returns:
		  - error: NotFound or storage failures
	*/
	UpdateStatus(context context.Context, id int64, status Status, isDraft bool, publishedAt *time.Time) error

	/*
		Delete removes a package permanently by primary key.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - error: NotFound or storage failures
	*/
	Delete(context context.Context, id int64) error
}
