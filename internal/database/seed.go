// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data: a default
// author account and starter categories for both the blog and the
// portfolio. No-op when users already exist.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO users (email, password_hash, display_name, bio)
		VALUES ($1, $2, $3, $4)
	`, "author@folio.local", string(hash), "Author", "Default development account")
	if err != nil {
		return fmt.Errorf("seed insert author: %w", err)
	}

	starter := []struct {
		kind, name, slug string
	}{
		{"blog", "Engineering", "engineering"},
		{"blog", "Notes", "notes"},
		{"project", "Web", "web"},
		{"project", "Tools", "tools"},
	}
	for _, c := range starter {
		if _, err := db.Exec(`
			INSERT INTO categories (kind, name, slug)
			VALUES ($1, $2, $3)
			ON CONFLICT DO NOTHING
		`, c.kind, c.name, c.slug); err != nil {
			return fmt.Errorf("seed category %s/%s: %w", c.kind, c.slug, err)
		}
	}

	slog.Info("database seeded with default author account",
		"email", "author@folio.local",
		"password", "admin",
	)

	return nil
}
