package usecase

import (
	"context"
	"log/slog"

	"github.com/goliatone/go-blog-content/blog"
	"github.com/goliatone/go-blog-content/internal/logger"
	"github.com/goliatone/go-blog-content/markdown"
)

// RenderedPost is a post together with its body rendered to HTML.
type RenderedPost struct {
	Post *blog.BlogPost
	HTML string
}

// RenderPost loads a post and renders its body.
type RenderPost struct {
	get      *GetPostBySlug
	renderer markdown.Renderer
	logger   *slog.Logger
}

func NewRenderPost(repo blog.PostReader, renderer markdown.Renderer, log *slog.Logger) *RenderPost {
	if log == nil {
		log = logger.Discard()
	}
	return &RenderPost{get: NewGetPostBySlug(repo), renderer: renderer, logger: log}
}

// Execute returns nil when the post does not exist. A rendering failure leaves
// HTML empty instead of failing the call.
func (u *RenderPost) Execute(ctx context.Context, rawSlug string) (*RenderedPost, error) {
	post, err := u.get.Execute(ctx, rawSlug)
	if err != nil || post == nil {
		return nil, err
	}

	html := markdown.SafeHTML(ctx, u.renderer, post.Content(), u.logger.With("slug", post.Slug().String()))
	return &RenderedPost{Post: post, HTML: html}, nil
}
