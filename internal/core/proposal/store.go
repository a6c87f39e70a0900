// Copyright (c) 2026 Soul of Tanzania. All rights reserved.

package proposal

import "context"

// # Proposal Data Access

// Repository defines the data access contract for travel inquiries.
type Repository interface {

	/*
		List returns a filtered, paginated slice of inquiries and the total count.

		Parameters:
		  - context: context.Context
		  - filter: Filter (Status and free-text criteria)
		  - limit: int
		  - offset: int

		Returns:
		  - []*Proposal: Slice of matching inquiries, newest first
		  - int: Total count of records matching the filter
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Proposal, int, error)

	/*
		FindByID returns the inquiry with the given primary key.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - *Proposal: The inquiry record
		  - error: NotFound if missing
	*/
	FindByID(context context.Context, id int64) (*Proposal, error)

	/*
		Create persists a new inquiry and fills in its assigned identity and
		timestamps.

		Parameters:
		  - context: context.Context
		  - prop: *Proposal

		Returns:
		  - error: Storage or constraint failures
	*/
	Create(context context.Context, prop *Proposal) error

	/*
		UpdateStatus moves an inquiry to a new handling state and stamps the
		modification timestamp.

		Parameters:
		  - context: context.Context
		  - id: int64
		  - status: Status

		Returns:
		  - error: NotFound or storage failures
	*/
	UpdateStatus(context context.Context, id int64, status Status) error

	/*
		Delete removes an inquiry permanently by primary key.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - error: NotFound or storage failures
	*/
	Delete(context context.Context, id int64) error
}
