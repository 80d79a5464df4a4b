// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"folio/internal/models"
)

// TechnologyStore handles portfolio technology database operations.
type TechnologyStore struct {
	db *sql.DB
}

// NewTechnologyStore creates a new TechnologyStore with the given database connection.
func NewTechnologyStore(db *sql.DB) *TechnologyStore {
	return &TechnologyStore{db: db}
}

// List returns all technologies alphabetically, each with the number of
// published projects using it.
func (s *TechnologyStore) List() ([]models.Technology, error) {
	rows, err := s.db.Query(`
		SELECT t.id, t.name, t.slug, t.color, t.created_at,
		       (SELECT COUNT(*) FROM project_technologies pt
		        JOIN projects pr ON pr.id = pt.project_id
		        WHERE pt.technology_id = t.id AND pr.status = 'published') AS published_count
		FROM technologies t
		ORDER BY t.name
	`)
	if err != nil {
		return nil, fmt.Errorf("list technologies: %w", err)
	}
	defer rows.Close()

	var techs []models.Technology
	for rows.Next() {
		var t models.Technology
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.Color, &t.CreatedAt, &t.PublishedCount); err != nil {
			return nil, fmt.Errorf("scan technology: %w", err)
		}
		techs = append(techs, t)
	}
	return techs, rows.Err()
}

// FindBySlug retrieves a technology by slug. Returns nil if not found.
func (s *TechnologyStore) FindBySlug(slug string) (*models.Technology, error) {
	t := &models.Technology{}
	err := s.db.QueryRow(
		`SELECT id, name, slug, color, created_at FROM technologies WHERE slug = $1`, slug,
	).Scan(&t.ID, &t.Name, &t.Slug, &t.Color, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find technology by slug: %w", err)
	}
	return t, nil
}

// FindOrCreate returns the technology with the given name, creating it
// first if needed. Matching is case-insensitive on name.
func (s *TechnologyStore) FindOrCreate(name, slug, color string) (*models.Technology, error) {
	t := &models.Technology{}
	err := s.db.QueryRow(
		`SELECT id, name, slug, color, created_at FROM technologies WHERE LOWER(name) = LOWER($1)`, name,
	).Scan(&t.ID, &t.Name, &t.Slug, &t.Color, &t.CreatedAt)
	if err == nil {
		return t, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("find technology: %w", err)
	}

	err = s.db.QueryRow(`
		INSERT INTO technologies (name, slug, color) VALUES ($1, $2, $3)
		RETURNING id, name, slug, color, created_at
	`, name, slug, color).Scan(&t.ID, &t.Name, &t.Slug, &t.Color, &t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create technology: %w", err)
	}
	return t, nil
}

// SlugExists reports whether a technology slug is already taken.
func (s *TechnologyStore) SlugExists(slug string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM technologies WHERE slug = $1)`, slug,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("technology slug exists: %w", err)
	}
	return exists, nil
}

// Delete removes a technology. Association rows cascade; projects are untouched.
func (s *TechnologyStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM technologies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete technology: %w", err)
	}
	return nil
}
