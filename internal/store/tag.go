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

// TagStore handles blog tag database operations.
type TagStore struct {
	db *sql.DB
}

// NewTagStore creates a new TagStore with the given database connection.
func NewTagStore(db *sql.DB) *TagStore {
	return &TagStore{db: db}
}

// List returns all tags alphabetically, each with the number of
// published posts carrying it.
func (s *TagStore) List() ([]models.Tag, error) {
	rows, err := s.db.Query(`
		SELECT t.id, t.name, t.slug, t.created_at,
		       (SELECT COUNT(*) FROM post_tags pt
		        JOIN posts p ON p.id = pt.post_id
		        WHERE pt.tag_id = t.id AND p.status = 'published') AS published_count
		FROM tags t
		ORDER BY t.name
	`)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	var tags []models.Tag
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt, &t.PublishedCount); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// FindBySlug retrieves a tag by slug. Returns nil if not found.
func (s *TagStore) FindBySlug(slug string) (*models.Tag, error) {
	t := &models.Tag{}
	err := s.db.QueryRow(
		`SELECT id, name, slug, created_at FROM tags WHERE slug = $1`, slug,
	).Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find tag by slug: %w", err)
	}
	return t, nil
}

// FindOrCreate returns the tag with the given name, creating it first if
// needed. Matching is case-insensitive on name.
func (s *TagStore) FindOrCreate(name, slug string) (*models.Tag, error) {
	t := &models.Tag{}
	err := s.db.QueryRow(
		`SELECT id, name, slug, created_at FROM tags WHERE LOWER(name) = LOWER($1)`, name,
	).Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt)
	if err == nil {
		return t, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("find tag: %w", err)
	}

	err = s.db.QueryRow(`
		INSERT INTO tags (name, slug) VALUES ($1, $2)
		RETURNING id, name, slug, created_at
	`, name, slug).Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create tag: %w", err)
	}
	return t, nil
}

// SlugExists reports whether a tag slug is already taken.
func (s *TagStore) SlugExists(slug string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM tags WHERE slug = $1)`, slug,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("tag slug exists: %w", err)
	}
	return exists, nil
}

// Delete removes a tag. Association rows cascade; posts are untouched.
func (s *TagStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	return nil
}
