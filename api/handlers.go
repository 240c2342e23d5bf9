package api

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-blog-content/blog"
)

const (
	// DefaultPageSize is the page size of /posts without a limit parameter.
	DefaultPageSize = 6
	// MaxPageSize caps the limit parameter.
	MaxPageSize = 100
	// SearchFallbackSize is how many recent posts /search returns without a query.
	SearchFallbackSize = 5
)

// HealthResponse is the body of /health.
type HealthResponse struct {
	Status string `json:"status"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	success(w, HealthResponse{Status: "healthy"}, s.logger)
}

// handleListPosts serves every post, or the matches of ?q=, one page at a time.
func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	var (
		posts []blog.BlogPostMeta
		err   error
	)
	if q := query.Get("q"); q != "" {
		posts, err = s.uc.SearchPosts.Execute(ctx, q)
	} else {
		posts, err = s.uc.GetAllPosts.Execute(ctx)
	}
	if err != nil {
		internalError(w, err, s.logger)
		return
	}

	page := positiveInt(query.Get("page"), 1)
	limit := min(positiveInt(query.Get("limit"), DefaultPageSize), MaxPageSize)

	success(w, paginate(toSummaries(posts), page, limit), s.logger)
}

func (s *Server) handleFeaturedPost(w http.ResponseWriter, r *http.Request) {
	featured, err := s.uc.GetFeaturedPost.Execute(r.Context())
	if err != nil {
		internalError(w, err, s.logger)
		return
	}
	if featured == nil {
		notFound(w, "no posts", s.logger)
		return
	}
	success(w, toSummary(*featured), s.logger)
}

func (s *Server) handleRecentPosts(w http.ResponseWriter, r *http.Request) {
	count := positiveInt(r.URL.Query().Get("count"), 0)

	posts, err := s.uc.GetRecentPosts.Execute(r.Context(), count)
	if err != nil {
		internalError(w, err, s.logger)
		return
	}
	success(w, toSummaries(posts), s.logger)
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	rendered, err := s.uc.RenderPost.Execute(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		s.handleError(w, err)
		return
	}
	if rendered == nil {
		notFound(w, "post not found", s.logger)
		return
	}
	success(w, toDetail(rendered.Post, rendered.HTML), s.logger)
}

func (s *Server) handleListSlugs(w http.ResponseWriter, r *http.Request) {
	slugs, err := s.uc.GetAllSlugs.Execute(r.Context())
	if err != nil {
		internalError(w, err, s.logger)
		return
	}

	out := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		out = append(out, slug.String())
	}
	success(w, out, s.logger)
}

func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request) {
	counts, err := s.uc.GetAllTags.Execute(r.Context())
	if err != nil {
		internalError(w, err, s.logger)
		return
	}
	success(w, toTagSummaries(counts), s.logger)
}

func (s *Server) handlePostsByTag(w http.ResponseWriter, r *http.Request) {
	tag, err := pathParam(r, "tag")
	if err != nil {
		badRequest(w, "invalid tag encoding", s.logger)
		return
	}
	posts, err := s.uc.GetPostsByTag.Execute(r.Context(), tag)
	if err != nil {
		s.handleError(w, err)
		return
	}
	success(w, toSummaries(posts), s.logger)
}

// handleSearch matches ?q= against posts. Without a query it returns the most
// recent posts instead.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query().Get("q")

	if q == "" {
		posts, err := s.uc.GetAllPosts.Execute(ctx)
		if err != nil {
			internalError(w, err, s.logger)
			return
		}
		success(w, toSummaries(posts[:min(len(posts), SearchFallbackSize)]), s.logger)
		return
	}

	posts, err := s.uc.SearchPosts.Execute(ctx, q)
	if err != nil {
		internalError(w, err, s.logger)
		return
	}
	success(w, toSummaries(posts), s.logger)
}

// handleError maps validation errors to 400 and everything else to 500.
func (s *Server) handleError(w http.ResponseWriter, err error) {
	if blog.IsValidationError(err) {
		badRequest(w, err.Error(), s.logger)
		return
	}
	internalError(w, err, s.logger)
}

// positiveInt parses raw, returning fallback for anything but a positive integer.
func positiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// pathParam returns the decoded URL parameter. chi matches on RawPath when the
// request kept escapes such as %2F or %2B, and then hands back the escaped text.
func pathParam(r *http.Request, name string) (string, error) {
	value := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return value, nil
	}
	return url.PathUnescape(value)
}
