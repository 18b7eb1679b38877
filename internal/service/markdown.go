package service

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

// allowedTags is the fixed set of HTML tags permitted to survive markdown
// rendering. Everything else, and every attribute, is stripped. Note that
// list items are not on the list; their text survives, the tags do not.
var allowedTags = []string{
	"p", "br", "ul", "ol", "strong", "b", "i", "em", "h1", "h3", "h4", "h5",
}

var strictPolicy = bluemonday.StrictPolicy()

// MarkdownRenderer converts untrusted markdown into the restricted HTML
// subset that may appear on a page. Rendering happens at display time on
// every read, so policy changes apply retroactively to stored posts.
type MarkdownRenderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewMarkdownRenderer creates a renderer with the allow-list policy.
func NewMarkdownRenderer() *MarkdownRenderer {
	policy := bluemonday.NewPolicy()
	policy.AllowElements(allowedTags...)
	return &MarkdownRenderer{
		md:     goldmark.New(),
		policy: policy,
	}
}

// Render converts markdown to sanitized HTML. The returned value is the only
// template.HTML produced anywhere in the application.
func (r *MarkdownRenderer) Render(raw string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(raw), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return template.HTML(r.policy.SanitizeBytes(buf.Bytes())), nil
}

// StripToPlainText removes all HTML tags and attributes from raw, returning
// the remaining text with entities unescaped. Used for titles and for post
// bodies before they are persisted.
func StripToPlainText(raw string) string {
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(raw)))
}
