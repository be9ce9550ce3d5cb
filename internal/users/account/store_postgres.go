// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/taibuivan/snipbin/internal/platform/apperr"
	"github.com/taibuivan/snipbin/internal/platform/database/schema"
	"github.com/taibuivan/snipbin/internal/platform/dberr"
	"github.com/taibuivan/snipbin/internal/platform/postgres"
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

/*
Create inserts a row into the account table.

Description: Uniqueness is left to the table's constraints. A collision is
translated here, by constraint name, into DuplicateUsername or
DuplicateEmail.

Parameters:
  - context: context.Context
  - account: *Account

Returns:
  - error: Duplicate-identity AppError or insert failures
*/
func (repository *PostgresRepository) Create(context context.Context, account *Account) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		schema.Account.Table, strings.Join(schema.Account.Columns(), ", "),
	)

	_, err := repository.db.Exec(context, query,
		account.ID,
		account.Username,
		account.Email,
		account.PasswordHash,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		if duplicate := translateDuplicate(err); duplicate != nil {
			return duplicate
		}
		return fmt.Errorf("postgres_account_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByUsername retrieves an account by exact username.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *Account: Hydrated entity
  - error: apperr.NotFound or query failures
*/
func (repository *PostgresRepository) FindByUsername(context context.Context, username string) (*Account, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1`,
		strings.Join(schema.Account.Columns(), ", "),
		schema.Account.Table,
		schema.Account.Username,
	)

	account := &Account{}
	err := repository.db.QueryRow(context, query, username).Scan(
		&account.ID,
		&account.Username,
		&account.Email,
		&account.PasswordHash,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Account", "postgres_account_repo_find_by_username_failed")
	}

	return account, nil
}

// translateDuplicate maps a unique violation on account to its field error.
func translateDuplicate(err error) error {
	constraint, ok := dberr.UniqueViolation(err)
	if !ok {
		return nil
	}

	switch constraint {
	case schema.Account.UsernameKey:
		return apperr.DuplicateUsername()
	case schema.Account.EmailKey:
		return apperr.DuplicateEmail()
	default:
		return nil
	}
}
