package handlers

import (
	"strings"
	"testing"
)

func TestValidateComment(t *testing.T) {
	tests := []struct {
		name    string
		author  string
		email   string
		body    string
		wantErr bool
	}{
		{"valid", "Jane Reader", "jane@example.com", "This is a thoughtful comment.", false},
		{"name too short", "J", "jane@example.com", "This is a thoughtful comment.", true},
		{"name only whitespace", "   ", "jane@example.com", "This is a thoughtful comment.", true},
		{"two char name ok", "Jo", "jane@example.com", "This is a thoughtful comment.", false},
		{"missing email", "Jane", "", "This is a thoughtful comment.", true},
		{"email without tld", "Jane", "jane@localhost", "This is a thoughtful comment.", true},
		{"email single letter tld", "Jane", "jane@example.c", "This is a thoughtful comment.", true},
		{"email with spaces", "Jane", "jane doe@example.com", "This is a thoughtful comment.", true},
		{"content too short", "Jane", "jane@example.com", "Too short", true},
		{"content exactly ten chars", "Jane", "jane@example.com", "1234567890", false},
		{"content too long", "Jane", "jane@example.com", strings.Repeat("a", 1001), true},
		{"content at limit", "Jane", "jane@example.com", strings.Repeat("a", 1000), false},
		{"content only whitespace", "Jane", "jane@example.com", "              ", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := validateComment(tt.author, tt.email, tt.body)
			if tt.wantErr && msg == "" {
				t.Error("expected a validation error")
			}
			if !tt.wantErr && msg != "" {
				t.Errorf("unexpected validation error: %q", msg)
			}
		})
	}
}

func TestValidateContent(t *testing.T) {
	if msg := validateContent("", "body", "excerpt"); msg == "" {
		t.Error("expected error for empty title")
	}
	if msg := validateContent("   ", "body", "excerpt"); msg == "" {
		t.Error("expected error for whitespace title")
	}
	if msg := validateContent(strings.Repeat("t", 301), "body", ""); msg == "" {
		t.Error("expected error for overlong title")
	}
	if msg := validateContent("ok", strings.Repeat("b", 100_001), ""); msg == "" {
		t.Error("expected error for overlong body")
	}
	if msg := validateContent("ok", "body", strings.Repeat("e", 1_001)); msg == "" {
		t.Error("expected error for overlong excerpt")
	}
	if msg := validateContent("A Title", "Some body", "An excerpt"); msg != "" {
		t.Errorf("unexpected error: %q", msg)
	}
}
