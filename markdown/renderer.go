// Package markdown converts post bodies to HTML.
package markdown

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/goliatone/go-blog-content/internal/logger"
)

// Renderer turns markdown source into HTML.
type Renderer interface {
	ToHTML(ctx context.Context, src string) (string, error)
}

// GoldmarkRenderer renders GitHub flavoured markdown with goldmark.
// Raw HTML in the source is dropped.
type GoldmarkRenderer struct {
	md goldmark.Markdown
}

var _ Renderer = (*GoldmarkRenderer)(nil)

// DefaultHighlightStyle is the chroma style used for fenced code blocks.
const DefaultHighlightStyle = "github"

type options struct {
	highlight bool
	style     string
}

// Option configures a GoldmarkRenderer.
type Option func(*options)

// WithHighlightStyle selects the chroma style of highlighted code blocks.
func WithHighlightStyle(style string) Option {
	return func(o *options) {
		if style != "" {
			o.style = style
		}
	}
}

// WithoutHighlighting renders fenced code as plain <code class="language-*"> blocks.
func WithoutHighlighting() Option {
	return func(o *options) {
		o.highlight = false
	}
}

// New returns a renderer with the GFM extensions (tables, strikethrough,
// autolinks, task lists), generated heading IDs and syntax highlighted code.
func New(opts ...Option) *GoldmarkRenderer {
	o := options{highlight: true, style: DefaultHighlightStyle}
	for _, opt := range opts {
		opt(&o)
	}

	extensions := []goldmark.Extender{extension.GFM}
	if o.highlight {
		extensions = append(extensions, highlighting.NewHighlighting(highlighting.WithStyle(o.style)))
	}

	return &GoldmarkRenderer{
		md: goldmark.New(
			goldmark.WithExtensions(extensions...),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(html.WithXHTML()),
		),
	}
}

// ToHTML implements Renderer.
func (r *GoldmarkRenderer) ToHTML(ctx context.Context, src string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("markdown: convert: %w", err)
	}
	return buf.String(), nil
}

// SafeHTML renders src and swallows failures: any error yields "".
// A nil logger discards the failure.
func SafeHTML(ctx context.Context, r Renderer, src string, log *slog.Logger) string {
	if r == nil || src == "" {
		return ""
	}
	out, err := r.ToHTML(ctx, src)
	if err != nil {
		if log == nil {
			log = logger.Discard()
		}
		log.Warn("markdown rendering failed", "error", err)
		return ""
	}
	return out
}
