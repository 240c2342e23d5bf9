// Package usecase holds one orchestrator per read the blog offers. Each validates
// its raw input into value objects, delegates to a repository and returns the
// domain objects unchanged.
package usecase

import (
	"context"

	"github.com/goliatone/go-blog-content/blog"
)

// GetPostBySlug loads one post.
type GetPostBySlug struct {
	repo blog.PostReader
}

func NewGetPostBySlug(repo blog.PostReader) *GetPostBySlug {
	return &GetPostBySlug{repo: repo}
}

// Execute validates rawSlug and returns the post, or nil when there is none.
// Invalid input fails with a *blog.InvalidSlugError.
func (u *GetPostBySlug) Execute(ctx context.Context, rawSlug string) (*blog.BlogPost, error) {
	slug, err := blog.NewSlug(rawSlug)
	if err != nil {
		return nil, err
	}
	return u.repo.FindBySlug(ctx, slug)
}

// GetAllPosts lists every post, newest first.
type GetAllPosts struct {
	repo blog.PostReader
}

func NewGetAllPosts(repo blog.PostReader) *GetAllPosts {
	return &GetAllPosts{repo: repo}
}

func (u *GetAllPosts) Execute(ctx context.Context) ([]blog.BlogPostMeta, error) {
	return u.repo.FindAll(ctx)
}

// SearchPosts finds posts by title, excerpt or tag. The query is passed through
// as is; a blank query finds nothing.
type SearchPosts struct {
	repo blog.PostReader
}

func NewSearchPosts(repo blog.PostReader) *SearchPosts {
	return &SearchPosts{repo: repo}
}

func (u *SearchPosts) Execute(ctx context.Context, query string) ([]blog.BlogPostMeta, error) {
	return u.repo.Search(ctx, query)
}

// GetAllSlugs lists the slug of every post.
type GetAllSlugs struct {
	repo blog.PostReader
}

func NewGetAllSlugs(repo blog.PostReader) *GetAllSlugs {
	return &GetAllSlugs{repo: repo}
}

func (u *GetAllSlugs) Execute(ctx context.Context) ([]blog.Slug, error) {
	return u.repo.GetAllSlugs(ctx)
}
