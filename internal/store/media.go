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

const mediaColumns = `id, key, original_name, content_type, width, height, size_bytes, uploader_id, created_at`

// MediaStore handles media metadata database operations. The files
// themselves live in object storage.
type MediaStore struct {
	db *sql.DB
}

// NewMediaStore creates a new MediaStore with the given database connection.
func NewMediaStore(db *sql.DB) *MediaStore {
	return &MediaStore{db: db}
}

// Create records an uploaded file's metadata.
func (s *MediaStore) Create(m *models.Media) (*models.Media, error) {
	result := &models.Media{}
	err := s.db.QueryRow(`
		INSERT INTO media (key, original_name, content_type, width, height, size_bytes, uploader_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+mediaColumns,
		m.Key, m.OriginalName, m.ContentType, m.Width, m.Height, m.SizeBytes, m.UploaderID,
	).Scan(mediaDest(result)...)
	if err != nil {
		return nil, fmt.Errorf("create media: %w", err)
	}
	return result, nil
}

// FindByID retrieves a media record by UUID. Returns nil if not found.
func (s *MediaStore) FindByID(id uuid.UUID) (*models.Media, error) {
	m := &models.Media{}
	err := s.db.QueryRow(
		`SELECT `+mediaColumns+` FROM media WHERE id = $1`, id,
	).Scan(mediaDest(m)...)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find media by id: %w", err)
	}
	return m, nil
}

// List returns all media records, newest first.
func (s *MediaStore) List() ([]models.Media, error) {
	rows, err := s.db.Query(
		`SELECT ` + mediaColumns + ` FROM media ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	defer rows.Close()

	var items []models.Media
	for rows.Next() {
		var m models.Media
		if err := rows.Scan(mediaDest(&m)...); err != nil {
			return nil, fmt.Errorf("scan media: %w", err)
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

// Delete removes a media record. Posts and projects referencing it fall
// back to a null featured image at the schema level. The object-storage
// file is the caller's responsibility.
func (s *MediaStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM media WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete media: %w", err)
	}
	return nil
}

func mediaDest(m *models.Media) []any {
	return []any{
		&m.ID, &m.Key, &m.OriginalName, &m.ContentType,
		&m.Width, &m.Height, &m.SizeBytes, &m.UploaderID, &m.CreatedAt,
	}
}
