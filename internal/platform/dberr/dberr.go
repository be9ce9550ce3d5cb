// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// Repositories call into this package instead of inspecting pgx errors
// themselves, so that "no rows" and "unique violation" are classified in
// exactly one place.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/snipbin/internal/platform/apperr"
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// resource names the entity for NOT_FOUND messages; action is recorded in the
// internal cause for logs.
func Wrap(err error, resource, action string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	// 2. Unknown query errors become Internal Server Errors
	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}

// UniqueViolation reports whether err is a PostgreSQL unique_violation and, if
// so, the name of the constraint that collided.
func UniqueViolation(err error) (constraint string, ok bool) {
	var pgError *pgconn.PgError
	if !errors.As(err, &pgError) {
		return "", false
	}

	if pgError.Code != pgerrcode.UniqueViolation {
		return "", false
	}

	return pgError.ConstraintName, true
}
