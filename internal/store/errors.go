// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides database access methods for all folio entities.
// Each store struct wraps a *sql.DB and exposes typed query methods.
// Lookups return (nil, nil) when no row matches; callers translate that
// into a 404 at the HTTP boundary.
package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the PostgreSQL error code for unique constraint failures.
const uniqueViolation = "23505"

// IsUniqueViolation reports whether err is a unique-constraint failure.
// Slug and name collisions surface here when two writers race past the
// application-level availability check; the constraint is the final
// arbiter and the losing write must fail cleanly, not crash.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
