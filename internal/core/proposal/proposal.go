// Copyright (c) 2026 Soul of Tanzania. All rights reserved.

/*
Package proposal manages inbound travel inquiries from the marketing site.

A proposal is the result of the multi-step "plan your trip" form: contact
details, trip preferences, and traveller composition. The back office works
the inquiry through a simple status ladder, with free movement between any
two states.
*/
package proposal

import "time"

// # Domain Enums

// Status represents the back-office handling state of an inquiry.
type Status string

const (
	// StatusNew indicates an inquiry nobody has picked up yet.
	StatusNew Status = "new"

	// StatusContacted indicates the sales team has reached out.
	StatusContacted Status = "contacted"

	// StatusResponded indicates the traveller has replied.
	StatusResponded Status = "responded"

	// StatusClosed indicates the inquiry is resolved, won or lost.
	StatusClosed Status = "closed"
)

// IsValid reports whether s is a recognised [Status] value.
//
// Transitions between valid states are unrestricted; an admin may move an
// inquiry from any state to any other.
func (s Status) IsValid() bool {
	switch s {
	case StatusNew, StatusContacted, StatusResponded, StatusClosed:
		return true
	}
	return false
}

// # Core Entity

// Proposal is an inbound travel inquiry.
type Proposal struct {
	ID        int64  `json:"id"`
	Reference string `json:"reference"` // human-quotable inquiry code

	// Contact
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Country  string `json:"country"`

	// Trip preferences
	Activities  []string `json:"activities"`
	Days        int      `json:"days"`
	Budget      string   `json:"budget"`
	ArrivalDate string   `json:"arrival_date"`
	Companion   string   `json:"companion"` // solo, couple, family, friends, group

	// Traveller composition
	Adults    int      `json:"adults"`
	Teens     int      `json:"teens"`
	Children  int      `json:"children"`
	AgeRanges []string `json:"age_ranges"`

	Message string `json:"message"`
	Status  Status `json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Filter holds the parameters for a filtered proposal list query.
type Filter struct {
	Status []Status `json:"status,omitempty"`
	Query  string   `json:"q,omitempty"` // name, email, or reference
}

// # Field Identifiers

const (
	FieldFullName = "full_name"
	FieldEmail    = "email"
	FieldDays     = "days"
	FieldStatus   = "status"
)
