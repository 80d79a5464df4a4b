// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"folio/internal/models"
)

const projectColumns = `pr.id, pr.title, pr.slug, pr.description, pr.detailed_description,
	pr.meta_title, pr.meta_description, pr.featured_image_id, pr.demo_url, pr.source_url,
	pr.owner_id, pr.category_id, pr.status, pr.featured, pr.view_count,
	pr.created_at, pr.updated_at, pr.published_at`

const projectListColumns = projectColumns + `,
	c.id, c.kind, c.name, c.slug, c.description, c.color, c.created_at`

// ProjectFilters narrows the public project listing. Zero values mean
// "no filter". The search term matches title OR description; the
// technology term matches by slug or name.
type ProjectFilters struct {
	CategorySlug string
	Technology   string
	Search       string
	Limit        int
	Offset       int
}

// ProjectStore handles all portfolio-project database operations.
type ProjectStore struct {
	db *sql.DB
}

// NewProjectStore creates a new ProjectStore with the given database connection.
func NewProjectStore(db *sql.DB) *ProjectStore {
	return &ProjectStore{db: db}
}

// SlugExists reports whether slug is already used by a project other
// than exclude. Pass uuid.Nil on create.
func (s *ProjectStore) SlugExists(slug string, exclude uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM projects WHERE slug = $1 AND id <> $2)`,
		slug, exclude,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("project slug exists: %w", err)
	}
	return exists, nil
}

// Create inserts a new project. Derived fields are computed by the
// caller before the write.
func (s *ProjectStore) Create(p *models.Project) (*models.Project, error) {
	result := &models.Project{}
	err := s.db.QueryRow(`
		INSERT INTO projects (title, slug, description, detailed_description,
		                      meta_title, meta_description, featured_image_id,
		                      demo_url, source_url, owner_id, category_id,
		                      status, featured, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING `+stripProjectAlias(projectColumns),
		p.Title, p.Slug, p.Description, p.DetailedBody,
		p.MetaTitle, p.MetaDescription, p.FeaturedImageID,
		p.DemoURL, p.SourceURL, p.OwnerID, p.CategoryID,
		p.Status, p.Featured, p.PublishedAt,
	).Scan(projectDest(result)...)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return result, nil
}

// Update modifies an existing project. The slug is not touched: slugs
// are immutable once assigned.
func (s *ProjectStore) Update(p *models.Project) error {
	_, err := s.db.Exec(`
		UPDATE projects SET
			title = $1, description = $2, detailed_description = $3,
			meta_title = $4, meta_description = $5, featured_image_id = $6,
			demo_url = $7, source_url = $8, category_id = $9,
			status = $10, featured = $11, published_at = $12, updated_at = NOW()
		WHERE id = $13
	`, p.Title, p.Description, p.DetailedBody,
		p.MetaTitle, p.MetaDescription, p.FeaturedImageID,
		p.DemoURL, p.SourceURL, p.CategoryID,
		p.Status, p.Featured, p.PublishedAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return nil
}

// Delete removes a project by ID.
func (s *ProjectStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

// FindByID retrieves a project by UUID regardless of status. Returns nil
// if not found.
func (s *ProjectStore) FindByID(id uuid.UUID) (*models.Project, error) {
	p := &models.Project{}
	err := s.db.QueryRow(
		`SELECT `+projectColumns+` FROM projects pr WHERE pr.id = $1`, id,
	).Scan(projectDest(p)...)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find project by id: %w", err)
	}
	return p, nil
}

// FindBySlug retrieves a project by slug regardless of status. Used by
// owner-only mutation endpoints. Returns nil if not found.
func (s *ProjectStore) FindBySlug(slug string) (*models.Project, error) {
	p := &models.Project{}
	err := s.db.QueryRow(
		`SELECT `+projectColumns+` FROM projects pr WHERE pr.slug = $1`, slug,
	).Scan(projectDest(p)...)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find project by slug: %w", err)
	}
	return p, nil
}

// FindPublishedBySlug retrieves a published project by slug with its
// category and technologies attached. Returns nil if not found.
func (s *ProjectStore) FindPublishedBySlug(slug string) (*models.Project, error) {
	p := &models.Project{}
	err := scanProjectWithCategory(s.db.QueryRow(`
		SELECT `+projectListColumns+`
		FROM projects pr
		LEFT JOIN categories c ON c.id = pr.category_id
		WHERE pr.slug = $1 AND pr.status = 'published'
	`, slug), p)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find published project: %w", err)
	}
	if err := s.attachTechnologies(p); err != nil {
		return nil, err
	}
	return p, nil
}

// ListPublished returns published projects matching the filters, ordered
// by featured flag then recency. Technology joins are deduplicated.
func (s *ProjectStore) ListPublished(f ProjectFilters) ([]models.Project, error) {
	query := `
		SELECT DISTINCT ` + projectListColumns + `
		FROM projects pr
		LEFT JOIN categories c ON c.id = pr.category_id`

	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if f.Technology != "" {
		query += `
		JOIN project_technologies ptx ON ptx.project_id = pr.id
		JOIN technologies tx ON tx.id = ptx.technology_id AND (tx.slug = ` + arg(f.Technology) + ` OR LOWER(tx.name) = LOWER(` + arg(f.Technology) + `))`
	}

	query += `
		WHERE pr.status = 'published'`

	if f.CategorySlug != "" {
		query += ` AND c.slug = ` + arg(f.CategorySlug)
	}
	if f.Search != "" {
		pattern := "%" + escapeLike(f.Search) + "%"
		query += ` AND (pr.title ILIKE ` + arg(pattern) + ` OR pr.description ILIKE ` + arg(pattern) + `)`
	}

	query += `
		ORDER BY pr.featured DESC, pr.published_at DESC NULLS LAST, pr.created_at DESC`

	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	query += ` LIMIT ` + arg(limit)
	if f.Offset > 0 {
		query += ` OFFSET ` + arg(f.Offset)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list published projects: %w", err)
	}
	defer rows.Close()

	projects, err := scanProjectList(rows)
	if err != nil {
		return nil, err
	}
	if err := s.attachTechnologiesAll(projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// ListFeatured returns the most recent featured published projects,
// capped at limit in SQL.
func (s *ProjectStore) ListFeatured(limit int) ([]models.Project, error) {
	rows, err := s.db.Query(`
		SELECT `+projectListColumns+`
		FROM projects pr
		LEFT JOIN categories c ON c.id = pr.category_id
		WHERE pr.status = 'published' AND pr.featured
		ORDER BY pr.published_at DESC NULLS LAST, pr.created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list featured projects: %w", err)
	}
	defer rows.Close()

	projects, err := scanProjectList(rows)
	if err != nil {
		return nil, err
	}
	if err := s.attachTechnologiesAll(projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// ListByOwner returns all projects (any status) belonging to an owner,
// newest first.
func (s *ProjectStore) ListByOwner(ownerID uuid.UUID) ([]models.Project, error) {
	rows, err := s.db.Query(`
		SELECT `+projectColumns+` FROM projects pr
		WHERE pr.owner_id = $1
		ORDER BY pr.created_at DESC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list projects by owner: %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(projectDest(&p)...); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// IncrementViewCount adds one to the project's view counter atomically
// and returns the new value.
func (s *ProjectStore) IncrementViewCount(id uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow(`
		UPDATE projects SET view_count = view_count + 1 WHERE id = $1
		RETURNING view_count
	`, id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("increment project views: %w", err)
	}
	return count, nil
}

// CountByStatus returns the number of projects in the given status.
func (s *ProjectStore) CountByStatus(status models.Status) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM projects WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count projects: %w", err)
	}
	return count, nil
}

// SetTechnologies replaces the project's technology associations.
func (s *ProjectStore) SetTechnologies(projectID uuid.UUID, techIDs []uuid.UUID) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("set technologies begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM project_technologies WHERE project_id = $1`, projectID); err != nil {
		return fmt.Errorf("clear project technologies: %w", err)
	}
	for _, techID := range techIDs {
		if _, err := tx.Exec(`
			INSERT INTO project_technologies (project_id, technology_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, projectID, techID); err != nil {
			return fmt.Errorf("insert project technology: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("set technologies commit: %w", err)
	}
	return nil
}

func (s *ProjectStore) attachTechnologies(p *models.Project) error {
	rows, err := s.db.Query(`
		SELECT t.id, t.name, t.slug, t.color, t.created_at
		FROM project_technologies pt
		JOIN technologies t ON t.id = pt.technology_id
		WHERE pt.project_id = $1
		ORDER BY t.name
	`, p.ID)
	if err != nil {
		return fmt.Errorf("load project technologies: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t models.Technology
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.Color, &t.CreatedAt); err != nil {
			return fmt.Errorf("scan technology: %w", err)
		}
		p.Technologies = append(p.Technologies, t)
	}
	return rows.Err()
}

func (s *ProjectStore) attachTechnologiesAll(projects []models.Project) error {
	for i := range projects {
		if err := s.attachTechnologies(&projects[i]); err != nil {
			return err
		}
	}
	return nil
}

func projectDest(p *models.Project) []any {
	return []any{
		&p.ID, &p.Title, &p.Slug, &p.Description, &p.DetailedBody,
		&p.MetaTitle, &p.MetaDescription, &p.FeaturedImageID, &p.DemoURL, &p.SourceURL,
		&p.OwnerID, &p.CategoryID, &p.Status, &p.Featured, &p.ViewCount,
		&p.CreatedAt, &p.UpdatedAt, &p.PublishedAt,
	}
}

func scanProjectWithCategory(sc rowScanner, p *models.Project) error {
	var cr categoryRow
	dest := projectDest(p)
	dest = append(dest,
		&cr.id, &cr.kind, &cr.name, &cr.slug,
		&cr.description, &cr.color, &cr.createdAt,
	)
	if err := sc.Scan(dest...); err != nil {
		return err
	}
	p.Category = cr.toCategory()
	return nil
}

func scanProjectList(rows *sql.Rows) ([]models.Project, error) {
	var projects []models.Project
	for rows.Next() {
		var p models.Project
		if err := scanProjectWithCategory(rows, &p); err != nil {
			return nil, fmt.Errorf("scan project row: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// stripProjectAlias removes the "pr." table alias from a column list so
// it can be reused in RETURNING clauses.
func stripProjectAlias(columns string) string {
	return strings.ReplaceAll(columns, "pr.", "")
}
