// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Validation limits for content and comment fields.
const (
	maxTitleLen   = 300
	maxBodyLen    = 100_000
	maxExcerptLen = 1_000

	minCommentNameLen = 2
	minCommentBodyLen = 10
	maxCommentBodyLen = 1_000
)

// emailPattern accepts local@domain.tld with a TLD of at least two
// letters. Deliverability is not checked; this only rejects obvious junk.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[A-Za-z]{2,}$`)

// validateContent checks post/project content inputs and returns the
// first error found, or "" when valid.
func validateContent(title, body, excerpt string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return "title is required"
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "title is too long (max 300 characters)"
	}
	if utf8.RuneCountInString(body) > maxBodyLen {
		return "body is too long (max 100,000 characters)"
	}
	if utf8.RuneCountInString(excerpt) > maxExcerptLen {
		return "excerpt is too long (max 1,000 characters)"
	}
	return ""
}

// validateComment checks reader comment inputs. All fields are
// considered after whitespace trimming.
func validateComment(name, email, body string) string {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	body = strings.TrimSpace(body)

	if name == "" {
		return "name is required"
	}
	if utf8.RuneCountInString(name) < minCommentNameLen {
		return "name must be at least 2 characters"
	}
	if email == "" {
		return "email is required"
	}
	if !emailPattern.MatchString(email) {
		return "email address is not valid"
	}
	if body == "" {
		return "content is required"
	}
	if n := utf8.RuneCountInString(body); n < minCommentBodyLen {
		return "content must be at least 10 characters"
	} else if n > maxCommentBodyLen {
		return "content is too long (max 1,000 characters)"
	}
	return ""
}
