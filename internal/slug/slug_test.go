package slug

import (
	"errors"
	"testing"
)

// TestGenerate exercises the slug generator with typical titles, special
// characters, whitespace, and boundary conditions.
func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		// --- Normal titles ---
		{
			name:  "simple two words",
			input: "Hello World",
			want:  "hello-world",
		},
		{
			name:  "title with year",
			input: "Hello World 2026",
			want:  "hello-world-2026",
		},
		{
			name:  "already lowercase",
			input: "already lowercase",
			want:  "already-lowercase",
		},
		{
			name:  "mixed case sentence",
			input: "The Quick Brown Fox Jumps Over the Lazy Dog",
			want:  "the-quick-brown-fox-jumps-over-the-lazy-dog",
		},

		// --- Special characters: each non-alphanumeric run becomes one hyphen ---
		{
			name:  "punctuation marks",
			input: "Hello, World! How's it going?",
			want:  "hello-world-how-s-it-going",
		},
		{
			name:  "ampersand without spaces",
			input: "rock&roll",
			want:  "rock-roll",
		},
		{
			name:  "ampersand and at sign",
			input: "Rock & Roll @ the Arena",
			want:  "rock-roll-the-arena",
		},
		{
			name:  "dotted version number",
			input: "Version 2.0",
			want:  "version-2-0",
		},
		{
			name:  "parentheses and brackets",
			input: "Version (2.0) [Beta]",
			want:  "version-2-0-beta",
		},
		{
			name:  "hash and dollar",
			input: "Issue #42 costs $100",
			want:  "issue-42-costs-100",
		},

		// --- Whitespace handling ---
		{
			name:  "leading and trailing spaces",
			input: "  hello world  ",
			want:  "hello-world",
		},
		{
			name:  "multiple consecutive spaces collapsed",
			input: "hello    world",
			want:  "hello-world",
		},
		{
			name:  "tabs collapse to hyphen",
			input: "hello\tworld",
			want:  "hello-world",
		},
		{
			name:  "newlines collapse to hyphen",
			input: "hello\n\nworld",
			want:  "hello-world",
		},

		// --- Hyphen handling ---
		{
			name:  "leading hyphens",
			input: "---hello world",
			want:  "hello-world",
		},
		{
			name:  "trailing hyphens",
			input: "hello world---",
			want:  "hello-world",
		},
		{
			name:  "single hyphen preserved",
			input: "well-known fact",
			want:  "well-known-fact",
		},
		{
			name:  "hyphens and spaces mixed",
			input: "  --hello -- world--  ",
			want:  "hello-world",
		},

		// --- Edge cases ---
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only spaces",
			input: "     ",
			want:  "",
		},
		{
			name:  "only special characters",
			input: "!@#$%^&*()",
			want:  "",
		},
		{
			name:  "single character",
			input: "A",
			want:  "a",
		},

		// --- Numbers ---
		{
			name:  "date-like string",
			input: "2026-02-25",
			want:  "2026-02-25",
		},
		{
			name:  "mixed words and numbers",
			input: "Chapter 3 Section 14",
			want:  "chapter-3-section-14",
		},

		// --- Realistic titles ---
		{
			name:  "tech blog title",
			input: "How to Deploy Go Apps on Kubernetes (2026 Edition)",
			want:  "how-to-deploy-go-apps-on-kubernetes-2026-edition",
		},
		{
			name:  "colon separated title",
			input: "Go: The Complete Developer Guide",
			want:  "go-the-complete-developer-guide",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Generate(tt.input)
			if got != tt.want {
				t.Errorf("Generate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestGenerate_Idempotent verifies that generating a slug from an already
// valid slug produces the same result.
func TestGenerate_Idempotent(t *testing.T) {
	slugs := []string{
		"hello-world",
		"my-blog-post-2026",
		"a",
		"123",
	}

	for _, s := range slugs {
		t.Run(s, func(t *testing.T) {
			got := Generate(s)
			if got != s {
				t.Errorf("Generate(%q) = %q, want idempotent result %q", s, got, s)
			}
		})
	}
}

// takenSet builds a taken func over a fixed set of occupied slugs.
func takenSet(occupied ...string) func(string) (bool, error) {
	set := make(map[string]bool, len(occupied))
	for _, s := range occupied {
		set[s] = true
	}
	return func(candidate string) (bool, error) {
		return set[candidate], nil
	}
}

func TestUnique_NoCollision(t *testing.T) {
	got, err := Unique("My First Post", takenSet())
	if err != nil {
		t.Fatalf("Unique: %v", err)
	}
	if got != "my-first-post" {
		t.Errorf("got %q, want %q", got, "my-first-post")
	}
}

func TestUnique_AppendsCounter(t *testing.T) {
	tests := []struct {
		name     string
		occupied []string
		want     string
	}{
		{
			name:     "first collision gets -1",
			occupied: []string{"my-first-post"},
			want:     "my-first-post-1",
		},
		{
			name:     "second collision gets -2",
			occupied: []string{"my-first-post", "my-first-post-1"},
			want:     "my-first-post-2",
		},
		{
			name:     "gap in counters is reused",
			occupied: []string{"my-first-post", "my-first-post-2"},
			want:     "my-first-post-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Unique("My First Post", takenSet(tt.occupied...))
			if err != nil {
				t.Fatalf("Unique: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUnique_EmptyTitleFallsBack(t *testing.T) {
	got, err := Unique("!!!", takenSet())
	if err != nil {
		t.Fatalf("Unique: %v", err)
	}
	if got != "untitled" {
		t.Errorf("got %q, want %q", got, "untitled")
	}

	got, err = Unique("", takenSet("untitled"))
	if err != nil {
		t.Fatalf("Unique: %v", err)
	}
	if got != "untitled-1" {
		t.Errorf("got %q, want %q", got, "untitled-1")
	}
}

func TestUnique_PropagatesLookupError(t *testing.T) {
	boom := errors.New("connection refused")
	_, err := Unique("Title", func(string) (bool, error) { return false, boom })
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped lookup error, got %v", err)
	}
}
