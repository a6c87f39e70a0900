// Copyright (c) 2026 Soul of Tanzania. All rights reserved.

package proposal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/soultanzania/safari-api/internal/platform/apperr"
	"github.com/soultanzania/safari-api/internal/platform/database/schema"
	"github.com/soultanzania/safari-api/internal/platform/dberr"
)

// # PostgreSQL Repository

// proposalRepository implements the [Repository] interface using pgx.
type proposalRepository struct {
	pool *pgxpool.Pool
}

// NewProposalRepository constructs a PostgreSQL backed inquiry store.
func NewProposalRepository(pool *pgxpool.Pool) Repository {
	return &proposalRepository{pool: pool}
}

// scanProposal reads one full row, decoding the JSONB list columns.
func scanProposal(row pgx.Row, extra ...any) (*Proposal, error) {
	prop := &Proposal{}
	var activitiesJSON, ageRangesJSON []byte

	targets := []any{
		&prop.ID, &prop.Reference, &prop.FullName, &prop.Email, &prop.Phone,
		&prop.Country, &activitiesJSON, &prop.Days, &prop.Budget,
		&prop.ArrivalDate, &prop.Companion, &prop.Adults, &prop.Teens,
		&prop.Children, &ageRangesJSON, &prop.Message, &prop.Status,
		&prop.CreatedAt, &prop.UpdatedAt,
	}
	targets = append(targets, extra...)

	if err := row.Scan(targets...); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(activitiesJSON, &prop.Activities); err != nil {
		return nil, fmt.Errorf("postgres: failed to decode proposal activities: %w", err)
	}
	if err := json.Unmarshal(ageRangesJSON, &prop.AgeRanges); err != nil {
		return nil, fmt.Errorf("postgres: failed to decode proposal age ranges: %w", err)
	}
	if prop.Activities == nil {
		prop.Activities = []string{}
	}
	if prop.AgeRanges == nil {
		prop.AgeRanges = []string{}
	}
	return prop, nil
}

/*
List returns a filtered, paginated slice of inquiries and the total count.

Description: Uses COUNT(*) OVER() for the total and a dynamic WHERE clause
for the optional status and free-text filters. Free text matches the
traveller's name, email, or the inquiry reference.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit: int
  - offset: int

Returns:
  - []*Proposal: Newest inquiries first
  - int: Total count matching filters
  - error: Database execution errors
*/
func (repository *proposalRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Proposal, int, error) {

	columns := strings.Join(schema.CatalogProposal.Columns(), ", ")

	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(
		"SELECT %s, COUNT(*) OVER() AS total_count FROM %s WHERE TRUE",
		columns, schema.CatalogProposal.Table,
	))

	if len(filter.Status) > 0 {
		statuses := make([]string, 0, len(filter.Status))
		for _, status := range filter.Status {
			statuses = append(statuses, string(status))
		}
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = ANY($%d)", schema.CatalogProposal.Status, argID))
		args = append(args, statuses)
		argID++
	}

	if filter.Query != "" {
		queryBuilder.WriteString(fmt.Sprintf(
			" AND (%s ILIKE '%%' || $%d || '%%' OR %s ILIKE '%%' || $%d || '%%' OR %s ILIKE '%%' || $%d || '%%')",
			schema.CatalogProposal.FullName, argID,
			schema.CatalogProposal.Email, argID,
			schema.CatalogProposal.Reference, argID,
		))
		args = append(args, filter.Query)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s DESC, %s DESC", schema.CatalogProposal.CreatedAt, schema.CatalogProposal.ID))
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list proposals: %w", err)
	}
	defer rows.Close()

	// Non-nil even when no rows match, so an empty page renders as [].
	proposals := make([]*Proposal, 0)
	var totalCount int

	for rows.Next() {
		prop, err := scanProposal(rows, &totalCount)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan proposal: %w", err)
		}
		proposals = append(proposals, prop)
	}

	return proposals, totalCount, nil
}

/*
FindByID retrieves an inquiry by its primary key.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - *Proposal: The inquiry record
  - error: apperr.NotFound if the inquiry does not exist
*/
func (repository *proposalRepository) FindByID(context context.Context, id int64) (*Proposal, error) {

	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		strings.Join(schema.CatalogProposal.Columns(), ", "),
		schema.CatalogProposal.Table,
		schema.CatalogProposal.ID,
	)

	prop, err := scanProposal(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Proposal")
		}
		return nil, fmt.Errorf("postgres: failed to find proposal by id: %w", err)
	}
	return prop, nil
}

/*
Create persists a new inquiry.

Parameters:
  - context: context.Context
  - prop: *Proposal

Returns:
  - error: Storage or constraint failures
*/
func (repository *proposalRepository) Create(context context.Context, prop *Proposal) error {

	query := fmt.Sprintf(`
		INSERT INTO %s (
			%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING %s, %s, %s`,
		schema.CatalogProposal.Table,
		schema.CatalogProposal.Reference, schema.CatalogProposal.FullName,
		schema.CatalogProposal.Email, schema.CatalogProposal.Phone,
		schema.CatalogProposal.Country, schema.CatalogProposal.Activities,
		schema.CatalogProposal.Days, schema.CatalogProposal.Budget,
		schema.CatalogProposal.ArrivalDate, schema.CatalogProposal.Companion,
		schema.CatalogProposal.Adults, schema.CatalogProposal.Teens,
		schema.CatalogProposal.Children, schema.CatalogProposal.AgeRanges,
		schema.CatalogProposal.Message, schema.CatalogProposal.Status,
		schema.CatalogProposal.ID, schema.CatalogProposal.CreatedAt, schema.CatalogProposal.UpdatedAt,
	)

	activitiesJSON, err := json.Marshal(prop.Activities)
	if err != nil {
		return fmt.Errorf("postgres: failed to encode proposal activities: %w", err)
	}
	ageRangesJSON, err := json.Marshal(prop.AgeRanges)
	if err != nil {
		return fmt.Errorf("postgres: failed to encode proposal age ranges: %w", err)
	}

	err = repository.pool.QueryRow(context, query,
		prop.Reference, prop.FullName, prop.Email, prop.Phone, prop.Country,
		activitiesJSON, prop.Days, prop.Budget, prop.ArrivalDate,
		prop.Companion, prop.Adults, prop.Teens, prop.Children,
		ageRangesJSON, prop.Message, string(prop.Status),
	).Scan(&prop.ID, &prop.CreatedAt, &prop.UpdatedAt)

	if err != nil {
		return dberr.Wrap(err, "create proposal")
	}
	return nil
}

/*
UpdateStatus moves an inquiry to a new handling state.

Parameters:
  - context: context.Context
  - id: int64
  - status: Status

Returns:
  - error: apperr.NotFound if the inquiry is missing, or storage failures
*/
func (repository *proposalRepository) UpdateStatus(context context.Context, id int64, status Status) error {

	query := fmt.Sprintf("UPDATE %s SET %s = $1, %s = now() WHERE %s = $2",
		schema.CatalogProposal.Table,
		schema.CatalogProposal.Status,
		schema.CatalogProposal.UpdatedAt,
		schema.CatalogProposal.ID,
	)

	tag, err := repository.pool.Exec(context, query, string(status), id)
	if err != nil {
		return fmt.Errorf("postgres: failed to update proposal status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Proposal")
	}
	return nil
}

/*
Delete removes an inquiry permanently by primary key.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - error: apperr.NotFound if the inquiry is missing, or storage failures
*/
func (repository *proposalRepository) Delete(context context.Context, id int64) error {

	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1",
		schema.CatalogProposal.Table, schema.CatalogProposal.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete proposal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Proposal")
	}
	return nil
}
