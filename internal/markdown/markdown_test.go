package markdown

import (
	"strings"
	"testing"
)

func TestToHTMLBasic(t *testing.T) {
	out, err := ToHTML("# Heading\n\nSome **bold** text.")
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}
	if !strings.Contains(out, "<h1") {
		t.Errorf("expected heading in output, got %q", out)
	}
	if !strings.Contains(out, "<strong>bold</strong>") {
		t.Errorf("expected bold text in output, got %q", out)
	}
}

func TestToHTMLFencedCodeHighlighting(t *testing.T) {
	out, err := ToHTML("```go\nfunc main() {}\n```")
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}
	// Highlighted code renders with inline styles from the chroma theme.
	if !strings.Contains(out, "<pre") {
		t.Errorf("expected pre block in output, got %q", out)
	}
}

func TestToHTMLPassesRawHTML(t *testing.T) {
	out, err := ToHTML("before\n\n<div class=\"embed\">x</div>\n\nafter")
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}
	if !strings.Contains(out, `<div class="embed">`) {
		t.Errorf("expected raw HTML passthrough, got %q", out)
	}
}
