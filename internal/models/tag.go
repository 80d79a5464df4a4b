// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Tag labels blog posts. Deleting a tag removes only the association
// rows, never the posts.
type Tag struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`

	// PublishedCount is populated by list queries.
	PublishedCount int `json:"published_count"`
}

// Technology labels portfolio projects, with a display color for badges.
type Technology struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`

	// PublishedCount is populated by list queries.
	PublishedCount int `json:"published_count"`
}
