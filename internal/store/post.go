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

const postColumns = `p.id, p.title, p.slug, p.excerpt, p.body, p.meta_title, p.meta_description,
	p.featured_image_id, p.author_id, p.category_id, p.status, p.featured,
	p.view_count, p.reading_time, p.created_at, p.updated_at, p.published_at`

// postListColumns adds the joined category and the approved-comment count
// used by listing and detail queries.
const postListColumns = postColumns + `,
	c.id, c.kind, c.name, c.slug, c.description, c.color, c.created_at,
	(SELECT COUNT(*) FROM comments cm WHERE cm.post_id = p.id AND cm.approved) AS comment_count`

// PostFilters narrows the public post listing. Zero values mean "no
// filter". Filters of different kinds combine with AND; the search term
// matches title OR excerpt.
type PostFilters struct {
	CategorySlug string
	Tag          string // tag slug or name
	Search       string
	Limit        int
	Offset       int
}

// PostStore handles all blog-post database operations.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

// SlugExists reports whether slug is already used by a post other than
// exclude. Pass uuid.Nil on create.
func (s *PostStore) SlugExists(slug string, exclude uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM posts WHERE slug = $1 AND id <> $2)`,
		slug, exclude,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("post slug exists: %w", err)
	}
	return exists, nil
}

// Create inserts a new post. Derived fields (slug, meta, reading time,
// published_at) are computed by the caller before the write so the row
// persists them atomically with the content itself.
func (s *PostStore) Create(p *models.Post) (*models.Post, error) {
	result := &models.Post{}
	err := s.db.QueryRow(`
		INSERT INTO posts (title, slug, excerpt, body, meta_title, meta_description,
		                   featured_image_id, author_id, category_id, status, featured,
		                   reading_time, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING `+stripAlias(postColumns),
		p.Title, p.Slug, p.Excerpt, p.Body, p.MetaTitle, p.MetaDescription,
		p.FeaturedImageID, p.AuthorID, p.CategoryID, p.Status, p.Featured,
		p.ReadingTime, p.PublishedAt,
	).Scan(postDest(result)...)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return result, nil
}

// Update modifies an existing post. The slug is written as given: the
// caller keeps the stored slug, since slugs are immutable once assigned.
func (s *PostStore) Update(p *models.Post) error {
	_, err := s.db.Exec(`
		UPDATE posts SET
			title = $1, excerpt = $2, body = $3, meta_title = $4, meta_description = $5,
			featured_image_id = $6, category_id = $7, status = $8, featured = $9,
			reading_time = $10, published_at = $11, updated_at = NOW()
		WHERE id = $12
	`, p.Title, p.Excerpt, p.Body, p.MetaTitle, p.MetaDescription,
		p.FeaturedImageID, p.CategoryID, p.Status, p.Featured,
		p.ReadingTime, p.PublishedAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	return nil
}

// Delete removes a post by ID. Comments cascade at the schema level.
func (s *PostStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// FindByID retrieves a post by UUID regardless of status. Returns nil if
// not found.
func (s *PostStore) FindByID(id uuid.UUID) (*models.Post, error) {
	p := &models.Post{}
	err := s.db.QueryRow(
		`SELECT `+postColumns+` FROM posts p WHERE p.id = $1`, id,
	).Scan(postDest(p)...)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return p, nil
}

// FindBySlug retrieves a post by slug regardless of status. Used by
// owner-only mutation endpoints. Returns nil if not found.
func (s *PostStore) FindBySlug(slug string) (*models.Post, error) {
	p := &models.Post{}
	err := s.db.QueryRow(
		`SELECT `+postColumns+` FROM posts p WHERE p.slug = $1`, slug,
	).Scan(postDest(p)...)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by slug: %w", err)
	}
	return p, nil
}

// FindPublishedBySlug retrieves a published post by slug with its
// category, tags, and approved-comment count attached. Drafts and
// archived posts are invisible here. Returns nil if not found.
func (s *PostStore) FindPublishedBySlug(slug string) (*models.Post, error) {
	p := &models.Post{}
	err := scanPostWithCategory(s.db.QueryRow(`
		SELECT `+postListColumns+`
		FROM posts p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.slug = $1 AND p.status = 'published'
	`, slug), p)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find published post: %w", err)
	}
	if err := s.attachTags(p); err != nil {
		return nil, err
	}
	return p, nil
}

// ListPublished returns published posts matching the filters, ordered by
// featured flag then recency. Tag joins are deduplicated so a post
// matching through several tags appears once.
func (s *PostStore) ListPublished(f PostFilters) ([]models.Post, error) {
	query := `
		SELECT DISTINCT ` + postListColumns + `
		FROM posts p
		LEFT JOIN categories c ON c.id = p.category_id`

	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if f.Tag != "" {
		query += `
		JOIN post_tags pt ON pt.post_id = p.id
		JOIN tags t ON t.id = pt.tag_id AND (t.slug = ` + arg(f.Tag) + ` OR LOWER(t.name) = LOWER(` + arg(f.Tag) + `))`
	}

	query += `
		WHERE p.status = 'published'`

	if f.CategorySlug != "" {
		query += ` AND c.slug = ` + arg(f.CategorySlug)
	}
	if f.Search != "" {
		pattern := "%" + escapeLike(f.Search) + "%"
		query += ` AND (p.title ILIKE ` + arg(pattern) + ` OR p.excerpt ILIKE ` + arg(pattern) + `)`
	}

	query += `
		ORDER BY p.featured DESC, p.published_at DESC NULLS LAST, p.created_at DESC`

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
		return nil, fmt.Errorf("list published posts: %w", err)
	}
	defer rows.Close()

	posts, err := scanPostList(rows)
	if err != nil {
		return nil, err
	}
	if err := s.attachTagsAll(posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// ListFeatured returns the most recent featured published posts, capped
// at limit. The cap is applied in SQL, never after counting.
func (s *PostStore) ListFeatured(limit int) ([]models.Post, error) {
	rows, err := s.db.Query(`
		SELECT `+postListColumns+`
		FROM posts p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.status = 'published' AND p.featured
		ORDER BY p.published_at DESC NULLS LAST, p.created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list featured posts: %w", err)
	}
	defer rows.Close()

	posts, err := scanPostList(rows)
	if err != nil {
		return nil, err
	}
	if err := s.attachTagsAll(posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// ListByAuthor returns all posts (any status) belonging to an author,
// newest first. Backs the authenticated dashboard listing.
func (s *PostStore) ListByAuthor(authorID uuid.UUID) ([]models.Post, error) {
	rows, err := s.db.Query(`
		SELECT `+postColumns+` FROM posts p
		WHERE p.author_id = $1
		ORDER BY p.created_at DESC
	`, authorID)
	if err != nil {
		return nil, fmt.Errorf("list posts by author: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(postDest(&p)...); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// IncrementViewCount adds one to the post's view counter as a single
// atomic SQL update, so concurrent reads never lose increments, and
// returns the new value.
func (s *PostStore) IncrementViewCount(id uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow(`
		UPDATE posts SET view_count = view_count + 1 WHERE id = $1
		RETURNING view_count
	`, id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("increment post views: %w", err)
	}
	return count, nil
}

// TopViewed returns the most viewed published posts, capped in SQL.
func (s *PostStore) TopViewed(limit int) ([]models.Post, error) {
	rows, err := s.db.Query(`
		SELECT `+postColumns+` FROM posts p
		WHERE p.status = 'published'
		ORDER BY p.view_count DESC, p.created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("top viewed posts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(postDest(&p)...); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// CountByStatus returns the number of posts in the given status.
func (s *PostStore) CountByStatus(status models.Status) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM posts WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return count, nil
}

// SetTags replaces the post's tag associations with the given tag IDs.
func (s *PostStore) SetTags(postID uuid.UUID, tagIDs []uuid.UUID) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("set tags begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM post_tags WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("clear post tags: %w", err)
	}
	for _, tagID := range tagIDs {
		if _, err := tx.Exec(`
			INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, postID, tagID); err != nil {
			return fmt.Errorf("insert post tag: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("set tags commit: %w", err)
	}
	return nil
}

// attachTags loads the tag list for a single post.
func (s *PostStore) attachTags(p *models.Post) error {
	rows, err := s.db.Query(`
		SELECT t.id, t.name, t.slug, t.created_at
		FROM post_tags pt
		JOIN tags t ON t.id = pt.tag_id
		WHERE pt.post_id = $1
		ORDER BY t.name
	`, p.ID)
	if err != nil {
		return fmt.Errorf("load post tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt); err != nil {
			return fmt.Errorf("scan tag: %w", err)
		}
		p.Tags = append(p.Tags, t)
	}
	return rows.Err()
}

// attachTagsAll loads tags for every post in the slice.
func (s *PostStore) attachTagsAll(posts []models.Post) error {
	for i := range posts {
		if err := s.attachTags(&posts[i]); err != nil {
			return err
		}
	}
	return nil
}

// postDest returns scan destinations for the bare post columns.
func postDest(p *models.Post) []any {
	return []any{
		&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Body, &p.MetaTitle, &p.MetaDescription,
		&p.FeaturedImageID, &p.AuthorID, &p.CategoryID, &p.Status, &p.Featured,
		&p.ViewCount, &p.ReadingTime, &p.CreatedAt, &p.UpdatedAt, &p.PublishedAt,
	}
}

// categoryRow holds the nullable category half of a joined post row.
type categoryRow struct {
	id          *uuid.UUID
	kind        sql.NullString
	name        sql.NullString
	slug        sql.NullString
	description sql.NullString
	color       sql.NullString
	createdAt   sql.NullTime
}

func (c *categoryRow) toCategory() *models.Category {
	if c.id == nil || !c.kind.Valid {
		return nil
	}
	return &models.Category{
		ID:          *c.id,
		Kind:        models.CategoryKind(c.kind.String),
		Name:        c.name.String,
		Slug:        c.slug.String,
		Description: c.description.String,
		Color:       c.color.String,
		CreatedAt:   c.createdAt.Time,
	}
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanPostWithCategory scans a postListColumns row, folding the joined
// category and comment count into the model.
func scanPostWithCategory(sc rowScanner, p *models.Post) error {
	var cr categoryRow
	dest := postDest(p)
	dest = append(dest,
		&cr.id, &cr.kind, &cr.name, &cr.slug,
		&cr.description, &cr.color, &cr.createdAt,
		&p.CommentCount,
	)
	if err := sc.Scan(dest...); err != nil {
		return err
	}
	p.Category = cr.toCategory()
	return nil
}

func scanPostList(rows *sql.Rows) ([]models.Post, error) {
	var posts []models.Post
	for rows.Next() {
		var p models.Post
		if err := scanPostWithCategory(rows, &p); err != nil {
			return nil, fmt.Errorf("scan post row: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// stripAlias removes the "p." table alias from a column list so it can
// be reused in RETURNING clauses.
func stripAlias(columns string) string {
	return strings.ReplaceAll(columns, "p.", "")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike escapes LIKE/ILIKE wildcards in a user-supplied search term
// so it matches literally instead of acting as a pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
