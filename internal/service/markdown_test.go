package service_test

import (
	"strings"
	"testing"

	"github.com/penmark/penmark/internal/service"
)

func TestMarkdownRenderer_AllowedTagsSurvive(t *testing.T) {
	r := service.NewMarkdownRenderer()

	html, err := r.Render("# Heading\n\nSome *emphasis* and **strength**.")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	out := string(html)
	for _, want := range []string{"<h1>", "<em>", "<strong>", "<p>"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %s, got %s", want, out)
		}
	}
}

func TestMarkdownRenderer_DisallowedTagsStripped(t *testing.T) {
	r := service.NewMarkdownRenderer()

	tests := []struct {
		name   string
		input  string
		badTag string
		keeps  string
	}{
		{"script", "hello <script>alert(1)</script> world", "<script", "hello"},
		{"link tag stripped, text kept", "[click me](https://example.com)", "<a", "click me"},
		{"image", "![alt text](https://example.com/x.png)", "<img", ""},
		{"h2 not on allow-list", "## Second level", "<h2", "Second level"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			html, err := r.Render(tc.input)
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			out := string(html)
			if strings.Contains(out, tc.badTag) {
				t.Fatalf("expected %s to be stripped, got %s", tc.badTag, out)
			}
			if tc.keeps != "" && !strings.Contains(out, tc.keeps) {
				t.Fatalf("expected text %q to survive, got %s", tc.keeps, out)
			}
		})
	}
}

func TestMarkdownRenderer_NoAttributesPermitted(t *testing.T) {
	r := service.NewMarkdownRenderer()

	// Raw HTML with attributes on an allowed tag.
	html, err := r.Render(`<p onclick="alert(1)" class="x">text</p>`)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	out := string(html)
	if strings.Contains(out, "onclick") || strings.Contains(out, "class=") {
		t.Fatalf("expected attributes to be stripped, got %s", out)
	}
}

func TestMarkdownRenderer_ListItemTagsStripped(t *testing.T) {
	r := service.NewMarkdownRenderer()

	html, err := r.Render("- one\n- two\n")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	out := string(html)
	if strings.Contains(out, "<li>") {
		t.Fatalf("li is not on the allow-list, got %s", out)
	}
	if !strings.Contains(out, "one") || !strings.Contains(out, "two") {
		t.Fatalf("expected item text to survive, got %s", out)
	}
}

func TestStripToPlainText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"tags removed", "<b>hello</b> world", "hello world"},
		{"script removed", "title<script>alert(1)</script>", "title"},
		{"markdown syntax untouched", "# still markdown", "# still markdown"},
		{"plain text untouched", "just a title", "just a title"},
		{"surrounding whitespace trimmed", "  padded  ", "padded"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := service.StripToPlainText(tc.input); got != tc.want {
				t.Fatalf("StripToPlainText(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}
