// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Project represents a portfolio entry: a piece of work with a short
// description for listings, an optional long write-up, and links to a
// live demo and the source code.
type Project struct {
	ID              uuid.UUID  `json:"id"`
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Description     string     `json:"description"`
	DetailedBody    string     `json:"detailed_description"`
	MetaTitle       string     `json:"meta_title"`
	MetaDescription string     `json:"meta_description"`
	FeaturedImageID *uuid.UUID `json:"featured_image_id,omitempty"`
	DemoURL         string     `json:"demo_url"`
	SourceURL       string     `json:"source_url"`
	OwnerID         uuid.UUID  `json:"owner_id"`
	CategoryID      *uuid.UUID `json:"category_id,omitempty"`
	Status          Status     `json:"status"`
	Featured        bool       `json:"featured"`
	ViewCount       int        `json:"view_count"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`

	// Virtual fields populated by store methods.
	Category     *Category    `json:"category,omitempty"`
	Technologies []Technology `json:"technologies,omitempty"`
}

// IsPublished returns true if the project is publicly visible.
func (p *Project) IsPublished() bool {
	return p.Status.IsPublished()
}
