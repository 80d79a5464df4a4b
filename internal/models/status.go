// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import "time"

// Status represents the publishing state of a post or project.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// Valid reports whether s is one of the known publishing states.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// IsPublished returns true if the status is "published".
func (s Status) IsPublished() bool {
	return s == StatusPublished
}

// NextPublishedAt computes the published_at value for an entity being
// saved with the given status. Entering published keeps an existing
// timestamp (re-publishing does not reset it) and stamps now otherwise;
// any other status clears the timestamp. Evaluated on every save, so
// repeated saves while published leave the timestamp untouched.
func NextPublishedAt(status Status, current *time.Time, now time.Time) *time.Time {
	if status != StatusPublished {
		return nil
	}
	if current != nil {
		return current
	}
	return &now
}
