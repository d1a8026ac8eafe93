// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors surfaced by store methods. Callers match them with
// errors.Is and decide presentation at the request boundary.
var (
	// ErrNotFound signals a reference to a nonexistent row, usually
	// stale client state.
	ErrNotFound = errors.New("not found")

	// ErrConflict signals a uniqueness violation on a slug or name.
	// User-correctable by choosing a different value.
	ErrConflict = errors.New("conflict")
)

// uniqueViolation is the PostgreSQL error code for unique_violation.
const uniqueViolation = "23505"

// isUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation. The check-then-insert race on slugs resolves here: the unique
// index arbitrates, and the loser surfaces ErrConflict.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
