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

const commentColumns = `id, post_id, author_name, author_email, body, approved, created_at`

// CommentStore handles comment database operations.
type CommentStore struct {
	db *sql.DB
}

// NewCommentStore creates a new CommentStore with the given database connection.
func NewCommentStore(db *sql.DB) *CommentStore {
	return &CommentStore{db: db}
}

// Create inserts a new comment. Comments always start unapproved; the
// moderation queue is the only path to visibility.
func (s *CommentStore) Create(postID uuid.UUID, name, email, body string) (*models.Comment, error) {
	c := &models.Comment{}
	err := s.db.QueryRow(`
		INSERT INTO comments (post_id, author_name, author_email, body)
		VALUES ($1, $2, $3, $4)
		RETURNING `+commentColumns,
		postID, name, email, body,
	).Scan(&c.ID, &c.PostID, &c.AuthorName, &c.AuthorEmail, &c.Body, &c.Approved, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return c, nil
}

// FindByID retrieves a comment by UUID. Returns nil if not found.
func (s *CommentStore) FindByID(id uuid.UUID) (*models.Comment, error) {
	c := &models.Comment{}
	err := s.db.QueryRow(
		`SELECT `+commentColumns+` FROM comments WHERE id = $1`, id,
	).Scan(&c.ID, &c.PostID, &c.AuthorName, &c.AuthorEmail, &c.Body, &c.Approved, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find comment by id: %w", err)
	}
	return c, nil
}

// ListApprovedByPost returns a post's approved comments, newest first.
func (s *CommentStore) ListApprovedByPost(postID uuid.UUID) ([]models.Comment, error) {
	rows, err := s.db.Query(`
		SELECT `+commentColumns+` FROM comments
		WHERE post_id = $1 AND approved
		ORDER BY created_at DESC
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("list approved comments: %w", err)
	}
	defer rows.Close()
	return scanComments(rows)
}

// ListPending returns all unapproved comments across posts, newest
// first. This is the moderation queue.
func (s *CommentStore) ListPending() ([]models.Comment, error) {
	rows, err := s.db.Query(`
		SELECT ` + commentColumns + ` FROM comments
		WHERE NOT approved
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list pending comments: %w", err)
	}
	defer rows.Close()
	return scanComments(rows)
}

// SetApproved flips the approved flag for a batch of comments and
// returns how many rows changed.
func (s *CommentStore) SetApproved(ids []uuid.UUID, approved bool) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	idStrings := make([]string, len(ids))
	for i, id := range ids {
		idStrings[i] = id.String()
	}
	res, err := s.db.Exec(
		`UPDATE comments SET approved = $1 WHERE id = ANY($2::uuid[])`,
		approved, idStrings,
	)
	if err != nil {
		return 0, fmt.Errorf("set comments approved: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("set comments approved: %w", err)
	}
	return int(n), nil
}

// Delete removes a comment by ID.
func (s *CommentStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}

// CountPending returns the size of the moderation queue.
func (s *CommentStore) CountPending() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM comments WHERE NOT approved`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count pending comments: %w", err)
	}
	return count, nil
}

func scanComments(rows *sql.Rows) ([]models.Comment, error) {
	var comments []models.Comment
	for rows.Next() {
		var c models.Comment
		err := rows.Scan(&c.ID, &c.PostID, &c.AuthorName, &c.AuthorEmail,
			&c.Body, &c.Approved, &c.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
