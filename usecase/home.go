package usecase

import (
	"context"

	"github.com/goliatone/go-blog-content/blog"
)

// DefaultRecentCount is the number of posts GetRecentPosts returns for a
// non-positive count.
const DefaultRecentCount = 3

// GetFeaturedPost returns the newest post.
type GetFeaturedPost struct {
	repo blog.PostReader
}

func NewGetFeaturedPost(repo blog.PostReader) *GetFeaturedPost {
	return &GetFeaturedPost{repo: repo}
}

// Execute returns the newest post, or nil when there are none.
func (u *GetFeaturedPost) Execute(ctx context.Context) (*blog.BlogPostMeta, error) {
	posts, err := u.repo.FindAll(ctx)
	if err != nil || len(posts) == 0 {
		return nil, err
	}
	featured := posts[0]
	return &featured, nil
}

// GetRecentPosts returns the posts that follow the featured one.
type GetRecentPosts struct {
	repo blog.PostReader
}

func NewGetRecentPosts(repo blog.PostReader) *GetRecentPosts {
	return &GetRecentPosts{repo: repo}
}

// Execute returns at most count posts after the newest. A count below one
// means DefaultRecentCount.
func (u *GetRecentPosts) Execute(ctx context.Context, count int) ([]blog.BlogPostMeta, error) {
	if count < 1 {
		count = DefaultRecentCount
	}

	posts, err := u.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(posts) <= 1 {
		return make([]blog.BlogPostMeta, 0), nil
	}

	end := min(len(posts), count+1)
	return append([]blog.BlogPostMeta(nil), posts[1:end]...), nil
}
