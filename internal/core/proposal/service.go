// Copyright (c) 2026 Soul of Tanzania. All rights reserved.

package proposal

import (
	"context"
	"fmt"
	"strings"

	"github.com/soultanzania/safari-api/internal/platform/validate"
	"github.com/soultanzania/safari-api/pkg/slice"
	"github.com/soultanzania/safari-api/pkg/uuid"
)

// # Service Layer

// Service orchestrates the business logic for travel inquiries.
type Service struct {
	proposalRepo Repository
}

// NewService constructs a new [Service] with its required repository.
func NewService(proposalRepo Repository) *Service {
	return &Service{proposalRepo: proposalRepo}
}

// SubmitInput is the payload of the public "plan your trip" form.
type SubmitInput struct {
	FullName    string   `json:"full_name"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	Country     string   `json:"country"`
	Activities  []string `json:"activities"`
	Days        int      `json:"days"`
	Budget      string   `json:"budget"`
	ArrivalDate string   `json:"arrival_date"`
	Companion   string   `json:"companion"`
	Adults      int      `json:"adults"`
	Teens       int      `json:"teens"`
	Children    int      `json:"children"`
	AgeRanges   []string `json:"age_ranges"`
	Message     string   `json:"message"`
}

/*
Submit records a new travel inquiry from the public site.

Description: Validates the contact block, normalizes the list-valued
preferences (trimmed, blanks dropped, order preserved), assigns a
human-quotable reference code, and persists the inquiry in the "new"
state.

Parameters:
  - context: context.Context
  - input: SubmitInput (Raw form payload)

Returns:
  - *Proposal: The persisted inquiry with its assigned reference
  - error: Validation or persistence errors
*/
func (service *Service) Submit(context context.Context, input SubmitInput) (*Proposal, error) {

	// Contact block validation
	validator := &validate.Validator{}
	validator.Required(FieldFullName, input.FullName).MaxLen(FieldFullName, input.FullName, 200)
	validator.Required(FieldEmail, input.Email).Email(FieldEmail, input.Email)
	validator.Custom(FieldDays, input.Days < 0, "Day count cannot be negative")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	prop := &Proposal{
		Reference:   newReference(),
		FullName:    strings.TrimSpace(input.FullName),
		Email:       strings.TrimSpace(input.Email),
		Phone:       strings.TrimSpace(input.Phone),
		Country:     strings.TrimSpace(input.Country),
		Activities:  normalizeList(input.Activities),
		Days:        input.Days,
		Budget:      strings.TrimSpace(input.Budget),
		ArrivalDate: strings.TrimSpace(input.ArrivalDate),
		Companion:   strings.TrimSpace(input.Companion),
		Adults:      max(input.Adults, 0),
		Teens:       max(input.Teens, 0),
		Children:    max(input.Children, 0),
		AgeRanges:   normalizeList(input.AgeRanges),
		Message:     strings.TrimSpace(input.Message),
		Status:      StatusNew,
	}

	if err := service.proposalRepo.Create(context, prop); err != nil {
		return nil, err
	}
	return prop, nil
}

/*
List retrieves a paginated and filtered collection of inquiries.

Parameters:
  - context: context.Context
  - filter: Filter (Status and free-text criteria)
  - limit: int
  - offset: int

Returns:
  - []*Proposal: Slice of matching inquiries
  - int: Total count of records matching the filter
  - error: Repository level errors
*/
func (service *Service) List(context context.Context, filter Filter, limit, offset int) ([]*Proposal, int, error) {
	return service.proposalRepo.List(context, filter, limit, offset)
}

/*
Get fetches a single inquiry by primary key.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - *Proposal: The inquiry record
  - error: NotFound if no match exists
*/
func (service *Service) Get(context context.Context, id int64) (*Proposal, error) {
	return service.proposalRepo.FindByID(context, id)
}

/*
SetStatus moves an inquiry to a new handling state.

Description: Transitions are free-form; any valid state may follow any
other. Only the target state itself is validated.

Parameters:
  - context: context.Context
  - id: int64
  - target: Status

Returns:
  - *Proposal: The inquiry with the new status applied
  - error: Validation, NotFound, or persistence errors
*/
func (service *Service) SetStatus(context context.Context, id int64, target Status) (*Proposal, error) {

	validator := &validate.Validator{}
	validator.OneOf(FieldStatus, string(target),
		string(StatusNew),
		string(StatusContacted),
		string(StatusResponded),
		string(StatusClosed),
	)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	prop, err := service.proposalRepo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if err := service.proposalRepo.UpdateStatus(context, id, target); err != nil {
		return nil, err
	}

	prop.Status = target
	return prop, nil
}

/*
Delete removes an inquiry permanently.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - error: NotFound or persistence errors
*/
func (service *Service) Delete(context context.Context, id int64) error {
	return service.proposalRepo.Delete(context, id)
}

// # Internal Helpers

// newReference mints a short, human-quotable inquiry code. The code is cut
// from the random tail of a fresh UUIDv7, never the leading hex: the v7
// prefix is a timestamp, and near-simultaneous submissions would share it.
func newReference() string {
	id := strings.ReplaceAll(uuid.New(), "-", "")
	return fmt.Sprintf("SOT-%s", strings.ToUpper(id[len(id)-10:]))
}

// normalizeList trims entries and drops blanks while preserving order.
// The result is never nil so the field always encodes as a JSON array.
func normalizeList(values []string) []string {
	trimmed := slice.Map(values, strings.TrimSpace)
	kept := slice.Filter(trimmed, func(s string) bool { return s != "" })
	if kept == nil {
		return []string{}
	}
	return kept
}
