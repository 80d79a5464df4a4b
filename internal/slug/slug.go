// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary strings.
package slug

import (
	"fmt"
	"regexp"
	"strings"
)

// nonAlphanumericRun matches any run of characters that aren't lowercase
// letters or digits. Each run becomes a single hyphen, so punctuation
// separates words instead of vanishing ("rock&roll" → "rock-roll",
// "Version 2.0" → "version-2-0").
var nonAlphanumericRun = regexp.MustCompile(`[^a-z0-9]+`)

// Generate creates a URL-friendly slug from the given string.
// Example: "Hello, World! 2026" → "hello-world-2026"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = nonAlphanumericRun.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return result
}

// Unique derives a slug from title and resolves collisions against the
// target collection by appending -1, -2, … until taken reports the
// candidate as free. taken is typically backed by a store lookup that
// excludes the entity's own row so updates don't collide with themselves.
//
// Two concurrent creates can still race past this check; the database
// unique constraint is the final arbiter and the losing insert fails
// with a uniqueness error.
func Unique(title string, taken func(string) (bool, error)) (string, error) {
	base := Generate(title)
	if base == "" {
		base = "untitled"
	}

	candidate := base
	for i := 1; ; i++ {
		inUse, err := taken(candidate)
		if err != nil {
			return "", fmt.Errorf("slug lookup %q: %w", candidate, err)
		}
		if !inUse {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
