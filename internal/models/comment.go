// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a reader-submitted comment on a blog post. Comments start
// unapproved and become publicly visible only after moderation. They are
// deleted together with their post.
type Comment struct {
	ID          uuid.UUID `json:"id"`
	PostID      uuid.UUID `json:"post_id"`
	AuthorName  string    `json:"author_name"`
	AuthorEmail string    `json:"-"` // Never serialized; moderation reads it explicitly
	Body        string    `json:"body"`
	Approved    bool      `json:"approved"`
	CreatedAt   time.Time `json:"created_at"`
}

// Public returns the comment fields safe to expose to anonymous readers.
// The author's email never leaves the moderation surface.
func (c *Comment) Public() PublicComment {
	return PublicComment{
		ID:        c.ID,
		Name:      c.AuthorName,
		Content:   c.Body,
		CreatedAt: c.CreatedAt,
	}
}

// PublicComment is the reader-facing projection of a comment.
type PublicComment struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
