package meta

import (
	"strings"
	"testing"
)

// words builds a plain-text body with exactly n whitespace-delimited words.
func words(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = "word"
	}
	return strings.Join(parts, " ")
}

func TestReadingTime(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "one word clamps to one minute", body: "hello", want: 1},
		{name: "empty body clamps to one minute", body: "", want: 1},
		{name: "99 words rounds down to zero then clamps", body: words(99), want: 1},
		{name: "100 words rounds up to one", body: words(100), want: 1},
		{name: "200 words is one minute", body: words(200), want: 1},
		{name: "400 words is two minutes", body: words(400), want: 2},
		{name: "500 words rounds half away to three", body: words(500), want: 3},
		{name: "1000 words is five minutes", body: words(1000), want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReadingTime(tt.body); got != tt.want {
				t.Errorf("ReadingTime = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestReadingTime_StripsMarkup(t *testing.T) {
	// 400 visible words wrapped in tags; tags must not count as words.
	body := "<article><p>" + words(400) + "</p></article>"
	if got := ReadingTime(body); got != 2 {
		t.Errorf("ReadingTime = %d, want 2", got)
	}
}

func TestReadingTime_Idempotent(t *testing.T) {
	body := words(350)
	first := ReadingTime(body)
	second := ReadingTime(body)
	if first != second {
		t.Errorf("ReadingTime not stable: %d then %d", first, second)
	}
}

func TestStripTags(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"<p>hello</p>", "hello"},
		{"no markup at all", "no markup at all"},
		{`<a href="/x">link</a> text`, "link text"},
		{"<br/><br/>", ""},
	}

	for _, tt := range tests {
		if got := StripTags(tt.input); got != tt.want {
			t.Errorf("StripTags(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestTitle(t *testing.T) {
	long := strings.Repeat("abcde ", 20) // 120 chars

	tests := []struct {
		name     string
		explicit string
		title    string
		want     string
	}{
		{name: "explicit wins", explicit: "SEO Title", title: "Post Title", want: "SEO Title"},
		{name: "falls back to title", explicit: "", title: "Post Title", want: "Post Title"},
		{name: "whitespace explicit is ignored", explicit: "   ", title: "Post Title", want: "Post Title"},
		{name: "long title hard-truncated to 60", explicit: "", title: long, want: long[:60]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Title(tt.explicit, tt.title); got != tt.want {
				t.Errorf("Title = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDescription(t *testing.T) {
	t.Run("explicit wins", func(t *testing.T) {
		if got := Description("custom", "excerpt"); got != "custom" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("short excerpt passes through", func(t *testing.T) {
		if got := Description("", "A short excerpt."); got != "A short excerpt." {
			t.Errorf("got %q", got)
		}
	})

	t.Run("markup stripped before measuring", func(t *testing.T) {
		if got := Description("", "<p>A short excerpt.</p>"); got != "A short excerpt." {
			t.Errorf("got %q", got)
		}
	})

	t.Run("long excerpt cut at word boundary with ellipsis", func(t *testing.T) {
		excerpt := strings.Repeat("seven77 ", 30) // 240 chars, words of 7+space
		got := Description("", excerpt)

		if !strings.HasSuffix(got, "...") {
			t.Fatalf("expected trailing ellipsis, got %q", got)
		}
		trimmed := strings.TrimSuffix(got, "...")
		if len(trimmed) > MaxDescriptionLen {
			t.Errorf("description body too long: %d runes", len(trimmed))
		}
		if strings.HasSuffix(trimmed, " ") {
			t.Errorf("trailing space before ellipsis: %q", got)
		}
		// Cut must land on a word boundary, not mid-word.
		for _, w := range strings.Fields(trimmed) {
			if w != "seven77" {
				t.Errorf("word split mid-token: %q", w)
			}
		}
	})

	t.Run("idempotent for unchanged input", func(t *testing.T) {
		excerpt := strings.Repeat("stable word ", 40)
		if Description("", excerpt) != Description("", excerpt) {
			t.Error("Description not stable across calls")
		}
	})
}
