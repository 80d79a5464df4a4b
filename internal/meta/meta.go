// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package meta derives presentation metadata from content fields:
// estimated reading time and SEO title/description fallbacks. All
// functions are pure, so recomputing on every save is idempotent.
package meta

import (
	"math"
	"regexp"
	"strings"
)

const (
	// wordsPerMinute is the assumed reading speed for time estimates.
	wordsPerMinute = 200

	// MaxTitleLen is the SEO title limit in characters.
	MaxTitleLen = 60

	// MaxDescriptionLen is the SEO description limit in characters.
	MaxDescriptionLen = 160
)

// htmlTag matches markup tags so word counts reflect visible text only.
var htmlTag = regexp.MustCompile(`<[^>]+>`)

// StripTags removes markup tags from s, leaving the visible text.
func StripTags(s string) string {
	return htmlTag.ReplaceAllString(s, "")
}

// ReadingTime estimates how many minutes it takes to read body at
// 200 words per minute. Markup tags are stripped before counting and
// the result is clamped to at least one minute.
func ReadingTime(body string) int {
	words := len(strings.Fields(StripTags(body)))
	minutes := int(math.Round(float64(words) / wordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}

// Title returns the SEO title: the explicit value when supplied,
// otherwise the content title truncated to 60 characters.
func Title(explicit, title string) string {
	explicit = strings.TrimSpace(explicit)
	if explicit != "" {
		return explicit
	}
	return truncate(title, MaxTitleLen)
}

// Description returns the SEO description: the explicit value when
// supplied, otherwise the excerpt stripped of markup and truncated to
// 160 characters at the last whitespace boundary, with a trailing
// ellipsis when truncation occurred.
func Description(explicit, excerpt string) string {
	explicit = strings.TrimSpace(explicit)
	if explicit != "" {
		return explicit
	}

	clean := strings.TrimSpace(StripTags(excerpt))
	runes := []rune(clean)
	if len(runes) <= MaxDescriptionLen {
		return clean
	}

	cut := string(runes[:MaxDescriptionLen])
	if idx := strings.LastIndexByte(cut, ' '); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimRight(cut, " ") + "..."
}

// truncate cuts s to at most limit runes.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
