// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// CategoryKind separates the blog and portfolio category namespaces.
// Name and slug are unique within a kind, not globally.
type CategoryKind string

const (
	CategoryKindBlog    CategoryKind = "blog"
	CategoryKindProject CategoryKind = "project"
)

// Category groups posts or projects. Deleting a category does not
// cascade; dependent entities keep existing with a null category.
type Category struct {
	ID          uuid.UUID    `json:"id"`
	Kind        CategoryKind `json:"kind"`
	Name        string       `json:"name"`
	Slug        string       `json:"slug"`
	Description string       `json:"description"`
	Color       string       `json:"color"`
	CreatedAt   time.Time    `json:"created_at"`

	// PublishedCount is populated by list queries: the number of
	// published entities referencing this category.
	PublishedCount int `json:"published_count"`
}
