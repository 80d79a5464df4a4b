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

// CategoryStore handles category database operations for both the blog
// and portfolio namespaces.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore creates a new CategoryStore with the given database connection.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

// publishedCountExpr counts published entities referencing the category.
// Blog categories count posts, project categories count projects.
const publishedCountExpr = `
	CASE c.kind
		WHEN 'blog' THEN (SELECT COUNT(*) FROM posts p WHERE p.category_id = c.id AND p.status = 'published')
		ELSE (SELECT COUNT(*) FROM projects pr WHERE pr.category_id = c.id AND pr.status = 'published')
	END`

// ListByKind returns all categories of a kind, alphabetically, each with
// its published-entity count.
func (s *CategoryStore) ListByKind(kind models.CategoryKind) ([]models.Category, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.kind, c.name, c.slug, c.description, c.color, c.created_at,
		       `+publishedCountExpr+` AS published_count
		FROM categories c
		WHERE c.kind = $1
		ORDER BY c.name
	`, kind)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		err := rows.Scan(&c.ID, &c.Kind, &c.Name, &c.Slug, &c.Description,
			&c.Color, &c.CreatedAt, &c.PublishedCount)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// FindBySlug retrieves a category by kind and slug. Returns nil if not found.
func (s *CategoryStore) FindBySlug(kind models.CategoryKind, slug string) (*models.Category, error) {
	c := &models.Category{}
	err := s.db.QueryRow(`
		SELECT id, kind, name, slug, description, color, created_at
		FROM categories WHERE kind = $1 AND slug = $2
	`, kind, slug).Scan(&c.ID, &c.Kind, &c.Name, &c.Slug, &c.Description, &c.Color, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by slug: %w", err)
	}
	return c, nil
}

// FindByID retrieves a category by UUID. Returns nil if not found.
func (s *CategoryStore) FindByID(id uuid.UUID) (*models.Category, error) {
	c := &models.Category{}
	err := s.db.QueryRow(`
		SELECT id, kind, name, slug, description, color, created_at
		FROM categories WHERE id = $1
	`, id).Scan(&c.ID, &c.Kind, &c.Name, &c.Slug, &c.Description, &c.Color, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// SlugExists reports whether slug is already used within the kind.
func (s *CategoryStore) SlugExists(kind models.CategoryKind, slug string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM categories WHERE kind = $1 AND slug = $2)`,
		kind, slug,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("category slug exists: %w", err)
	}
	return exists, nil
}

// Create inserts a new category. Name and slug uniqueness is scoped to
// the kind; collisions surface as unique violations.
func (s *CategoryStore) Create(c *models.Category) (*models.Category, error) {
	result := &models.Category{}
	err := s.db.QueryRow(`
		INSERT INTO categories (kind, name, slug, description, color)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, kind, name, slug, description, color, created_at
	`, c.Kind, c.Name, c.Slug, c.Description, c.Color).Scan(
		&result.ID, &result.Kind, &result.Name, &result.Slug,
		&result.Description, &result.Color, &result.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return result, nil
}

// Update modifies a category's display fields. Kind and slug stay fixed.
func (s *CategoryStore) Update(id uuid.UUID, name, description, color string) error {
	_, err := s.db.Exec(`
		UPDATE categories SET name = $1, description = $2, color = $3 WHERE id = $4
	`, name, description, color, id)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// Delete removes a category. Posts and projects referencing it keep
// existing with a null category.
func (s *CategoryStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
