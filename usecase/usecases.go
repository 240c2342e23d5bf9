package usecase

import (
	"log/slog"

	"github.com/goliatone/go-blog-content/blog"
	"github.com/goliatone/go-blog-content/markdown"
)

// UseCases bundles every use case built over one repository.
type UseCases struct {
	GetPostBySlug   *GetPostBySlug
	GetAllPosts     *GetAllPosts
	GetPostsByTag   *GetPostsByTag
	SearchPosts     *SearchPosts
	GetAllTags      *GetAllTags
	GetAllSlugs     *GetAllSlugs
	GetFeaturedPost *GetFeaturedPost
	GetRecentPosts  *GetRecentPosts
	RenderPost      *RenderPost
}

// New wires every use case to repo.
func New(repo blog.PostRepository, renderer markdown.Renderer, logger *slog.Logger) *UseCases {
	return &UseCases{
		GetPostBySlug:   NewGetPostBySlug(repo),
		GetAllPosts:     NewGetAllPosts(repo),
		GetPostsByTag:   NewGetPostsByTag(repo),
		SearchPosts:     NewSearchPosts(repo),
		GetAllTags:      NewGetAllTags(repo),
		GetAllSlugs:     NewGetAllSlugs(repo),
		GetFeaturedPost: NewGetFeaturedPost(repo),
		GetRecentPosts:  NewGetRecentPosts(repo),
		RenderPost:      NewRenderPost(repo, renderer, logger),
	}
}
