package blog

import (
	"cmp"
	"context"
	"slices"
)

// PostReader reads posts.
type PostReader interface {
	// FindBySlug returns the post stored under slug, or nil when there is none.
	FindBySlug(ctx context.Context, slug Slug) (*BlogPost, error)
	// FindAll returns every post, newest first.
	FindAll(ctx context.Context) ([]BlogPostMeta, error)
	// GetAllSlugs returns the slug of every stored post, in no particular order.
	GetAllSlugs(ctx context.Context) ([]Slug, error)
	// Search returns the posts matching query. A blank query returns no posts.
	Search(ctx context.Context, query string) ([]BlogPostMeta, error)
}

// TagRepository reads tag aggregates.
type TagRepository interface {
	// GetAllTags returns every tag with its post count, most used first.
	GetAllTags(ctx context.Context) ([]TagCount, error)
	// FindByTag returns the posts carrying tag, newest first.
	FindByTag(ctx context.Context, tag Tag) ([]BlogPostMeta, error)
}

// PostRepository is the full read contract shared by every content store and by
// the caching decorator.
type PostRepository interface {
	PostReader
	TagRepository
}

func sortMetaByDate(posts []BlogPostMeta) {
	slices.SortStableFunc(posts, func(a, b BlogPostMeta) int {
		return b.date.Compare(a.date)
	})
}

func sortTagCounts(counts []TagCount) {
	slices.SortStableFunc(counts, func(a, b TagCount) int {
		return cmp.Compare(b.Count, a.Count)
	})
}
