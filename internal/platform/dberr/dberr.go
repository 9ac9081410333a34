// Copyright (c) 2026 CRM Local. All rights reserved.
// Author: dev@crm-local.app

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/crmlocal/api/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// ── 1. Not Found ──────────────────────────────────────────────────────
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	// ── 2. SQLSTATE Classification ────────────────────────────────────────
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return apperr.Conflict("Resource already exists")
		case pgerrcode.ForeignKeyViolation:
			return apperr.Conflict("Resource is referenced by other records")
		case pgerrcode.CheckViolation, pgerrcode.NotNullViolation:
			return apperr.ValidationError("Invalid data")
		}
	}

	// ── 3. Unknown query errors become Internal Server Errors ─────────────
	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}
