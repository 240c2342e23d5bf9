package usecase

import (
	"context"

	"github.com/goliatone/go-blog-content/blog"
)

// GetPostsByTag lists the posts carrying a tag.
type GetPostsByTag struct {
	repo blog.TagRepository
}

func NewGetPostsByTag(repo blog.TagRepository) *GetPostsByTag {
	return &GetPostsByTag{repo: repo}
}

// Execute validates rawTag and returns the matching posts, newest first.
// Invalid input fails with a *blog.InvalidTagError.
func (u *GetPostsByTag) Execute(ctx context.Context, rawTag string) ([]blog.BlogPostMeta, error) {
	tag, err := blog.NewTag(rawTag)
	if err != nil {
		return nil, err
	}
	return u.repo.FindByTag(ctx, tag)
}

// GetAllTags lists every tag with its post count.
type GetAllTags struct {
	repo blog.TagRepository
}

func NewGetAllTags(repo blog.TagRepository) *GetAllTags {
	return &GetAllTags{repo: repo}
}

func (u *GetAllTags) Execute(ctx context.Context) ([]blog.TagCount, error) {
	return u.repo.GetAllTags(ctx)
}
