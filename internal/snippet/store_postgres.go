// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package snippet

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/taibuivan/snipbin/internal/platform/apperr"
	"github.com/taibuivan/snipbin/internal/platform/database/schema"
	"github.com/taibuivan/snipbin/internal/platform/dberr"
	"github.com/taibuivan/snipbin/internal/platform/postgres"
	"github.com/taibuivan/snipbin/pkg/pagination"
)

// # Repository Implementations

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db postgres.DB
}

// NewPostgresRepository creates a new Postgres implementation of [Repository].
func NewPostgresRepository(db postgres.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// scanner is satisfied by pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanSnippet reads the columns of [schema.SnippetTable.Columns] in order,
// followed by any extra destinations.
func scanSnippet(row scanner, extra ...any) (*Snippet, error) {
	snippet := &Snippet{}
	destinations := append([]any{
		&snippet.ID,
		&snippet.Owner,
		&snippet.Title,
		&snippet.Language,
		&snippet.Description,
		&snippet.Tags,
		&snippet.Content,
		&snippet.CreatedAt,
		&snippet.UpdatedAt,
	}, extra...)

	if err := row.Scan(destinations...); err != nil {
		return nil, err
	}
	if snippet.Tags == nil {
		snippet.Tags = []string{}
	}
	return snippet, nil
}

/*
Create inserts a new snippet row.

Parameters:
  - context: context.Context
  - snippet: *Snippet

Returns:
  - error: Insert failures
*/
func (repository *PostgresRepository) Create(context context.Context, snippet *Snippet) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		schema.Snippet.Table, strings.Join(schema.Snippet.Columns(), ", "),
	)

	_, err := repository.db.Exec(context, query,
		snippet.ID,
		snippet.Owner,
		snippet.Title,
		snippet.Language,
		snippet.Description,
		snippet.Tags,
		snippet.Content,
		snippet.CreatedAt,
		snippet.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_snippet_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByID retrieves a single snippet.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *Snippet: Hydrated entity
  - error: apperr.NotFound or query failures
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Snippet, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		strings.Join(schema.Snippet.Columns(), ", "), schema.Snippet.Table, schema.Snippet.ID,
	)

	snippet, err := scanSnippet(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "Snippet", "postgres_snippet_repo_find_by_id_failed")
	}

	return snippet, nil
}

/*
List returns a page of snippets ordered newest first.

Description: The total is computed in the same statement with a window
count, so the page and its total are consistent with each other.

Parameters:
  - context: context.Context
  - filter: Filter (owner and/or tag)
  - page: pagination.Params

Returns:
  - []*Snippet: Page content (never nil)
  - int: Total matches across all pages
  - error: Query failures
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, page pagination.Params) ([]*Snippet, int, error) {
	var queryBuilder strings.Builder
	args := []any{}
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`SELECT %s, COUNT(*) OVER() FROM %s WHERE 1=1`,
		strings.Join(schema.Snippet.Columns(), ", "), schema.Snippet.Table,
	))

	// Owner Filtering
	if filter.Owner != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", schema.Snippet.Owner, argID))
		args = append(args, filter.Owner)
		argID++
	}

	// Tag Filtering
	if filter.Tag != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND $%d = ANY(%s)", argID, schema.Snippet.Tags))
		args = append(args, filter.Tag)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s DESC, %s DESC", schema.Snippet.CreatedAt, schema.Snippet.ID))

	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, page.Limit, page.Offset())

	rows, err := repository.db.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_snippet_repo_list_failed: %w", err)
	}
	defer rows.Close()

	snippets := []*Snippet{}
	var totalCount int

	for rows.Next() {
		snippet, err := scanSnippet(rows, &totalCount)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_snippet_repo_scan_failed: %w", err)
		}
		snippets = append(snippets, snippet)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_snippet_repo_list_failed: %w", err)
	}

	return snippets, totalCount, nil
}

/*
Update overwrites the editable fields, matching on id and owner.

Parameters:
  - context: context.Context
  - snippet: *Snippet (ID and Owner select the row)

Returns:
  - error: apperr.NotFound when no row matched, or execution failures
*/
func (repository *PostgresRepository) Update(context context.Context, snippet *Snippet) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8
		WHERE %s = $1 AND %s = $2
		RETURNING %s`,
		schema.Snippet.Table,
		schema.Snippet.Title, schema.Snippet.Language, schema.Snippet.Description,
		schema.Snippet.Tags, schema.Snippet.Content, schema.Snippet.UpdatedAt,
		schema.Snippet.ID, schema.Snippet.Owner,
		schema.Snippet.CreatedAt,
	)

	var createdAt time.Time
	err := repository.db.QueryRow(context, query,
		snippet.ID,
		snippet.Owner,
		snippet.Title,
		snippet.Language,
		snippet.Description,
		snippet.Tags,
		snippet.Content,
		snippet.UpdatedAt,
	).Scan(&createdAt)
	if err != nil {
		return dberr.Wrap(err, "Snippet", "postgres_snippet_repo_update_failed")
	}

	snippet.CreatedAt = createdAt
	return nil
}

/*
Delete removes a snippet, matching on id and owner.

Parameters:
  - context: context.Context
  - id: string
  - owner: string

Returns:
  - error: apperr.NotFound when no row matched, or execution failures
*/
func (repository *PostgresRepository) Delete(context context.Context, id, owner string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.Snippet.Table, schema.Snippet.ID, schema.Snippet.Owner,
	)

	tag, err := repository.db.Exec(context, query, id, owner)
	if err != nil {
		return fmt.Errorf("postgres_snippet_repo_delete_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Snippet")
	}

	return nil
}
