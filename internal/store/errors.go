// Copyright (c) 2026 Kodingin Dev Studio <hi@kodingin.dev>
// All rights reserved. See LICENSE for details.

// Package store provides database access methods for all Kodingin entities.
// Each store struct wraps a *sql.DB and exposes typed query methods.
package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrDuplicateSlug is returned when an insert or update violates the
	// unique constraint on posts.slug.
	ErrDuplicateSlug = errors.New("a post with this slug already exists")

	// ErrNotFound is returned by mutations that matched no rows. Reads
	// represent absence as a nil result instead.
	ErrNotFound = errors.New("not found")
)

// isUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
