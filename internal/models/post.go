// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Post represents a blog article. The slug is assigned once at creation
// and never changed by later title edits; meta fields and reading time
// are derived on every save.
type Post struct {
	ID              uuid.UUID  `json:"id"`
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Excerpt         string     `json:"excerpt"`
	Body            string     `json:"body"`
	MetaTitle       string     `json:"meta_title"`
	MetaDescription string     `json:"meta_description"`
	FeaturedImageID *uuid.UUID `json:"featured_image_id,omitempty"`
	AuthorID        uuid.UUID  `json:"author_id"`
	CategoryID      *uuid.UUID `json:"category_id,omitempty"`
	Status          Status     `json:"status"`
	Featured        bool       `json:"featured"`
	ViewCount       int        `json:"view_count"`
	ReadingTime     int        `json:"reading_time"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`

	// Virtual fields populated by store methods.
	Category     *Category `json:"category,omitempty"`
	Tags         []Tag     `json:"tags,omitempty"`
	CommentCount int       `json:"comment_count"`
}

// IsPublished returns true if the post is publicly visible.
func (p *Post) IsPublished() bool {
	return p.Status.IsPublished()
}
