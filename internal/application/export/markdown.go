package export

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer turns ticket descriptions (markdown) into sanitized HTML for
// the report. Sanitization runs after conversion, so markup smuggled into
// a description never reaches the report.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Strikethrough,
			extension.TaskList,
			extension.Linkify,
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			// Raw HTML passes through the converter so inline markdown
			// around it survives; bluemonday strips it afterwards.
			html.WithUnsafe(),
		),
	)

	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "span", "pre")

	return &Renderer{md: md, policy: policy}
}

// DescriptionHTML converts and sanitizes one description. The returned
// value is safe to interpolate into the report template unescaped.
func (r *Renderer) DescriptionHTML(markdown string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("convert description: %w", err)
	}
	return template.HTML(r.policy.Sanitize(buf.String())), nil
}
