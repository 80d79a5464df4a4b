// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Media represents an image uploaded to S3-compatible object storage.
// Metadata is stored in PostgreSQL; the file itself lives in the bucket.
// Images are downscaled before upload, so Width and Height reflect the
// stored dimensions, not the original upload.
type Media struct {
	ID           uuid.UUID `json:"id"`
	Key          string    `json:"key"`
	OriginalName string    `json:"original_name"`
	ContentType  string    `json:"content_type"`
	Width        int       `json:"width"`
	Height       int       `json:"height"`
	SizeBytes    int64     `json:"size_bytes"`
	UploaderID   uuid.UUID `json:"uploader_id"`
	CreatedAt    time.Time `json:"created_at"`

	// URL is populated from the storage client when serializing.
	URL string `json:"url,omitempty"`
}

// IsImage returns true if the media item is an image type.
func (m *Media) IsImage() bool {
	return strings.HasPrefix(m.ContentType, "image/")
}
