package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-blog-content/blog"
)

type fakeRepository struct {
	posts []*blog.BlogPost
	err   error

	calls     []string
	lastSlug  blog.Slug
	lastTag   blog.Tag
	lastQuery string
}

func newFakeRepository(n int) *fakeRepository {
	repo := &fakeRepository{}
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		slug := string(rune('a'+i)) + "-post"
		repo.posts = append(repo.posts, blog.PostFromPersistence(blog.PostData{
			Slug:               slug,
			Title:              strings.ToUpper(slug),
			Content:            "# " + slug + "\n\nbody",
			Date:               base.AddDate(0, 0, n-i),
			ReadingTimeMinutes: 1,
			Tags:               []string{"Go"},
		}))
	}
	return repo
}

func (f *fakeRepository) metas() []blog.BlogPostMeta {
	out := make([]blog.BlogPostMeta, 0, len(f.posts))
	for _, p := range f.posts {
		out = append(out, p.ToMeta())
	}
	return out
}

func (f *fakeRepository) FindBySlug(ctx context.Context, slug blog.Slug) (*blog.BlogPost, error) {
	f.calls = append(f.calls, "FindBySlug")
	f.lastSlug = slug
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.posts {
		if p.Slug().Equals(slug) {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeRepository) FindAll(ctx context.Context) ([]blog.BlogPostMeta, error) {
	f.calls = append(f.calls, "FindAll")
	if f.err != nil {
		return nil, f.err
	}
	return f.metas(), nil
}

func (f *fakeRepository) GetAllSlugs(ctx context.Context) ([]blog.Slug, error) {
	f.calls = append(f.calls, "GetAllSlugs")
	slugs := make([]blog.Slug, 0, len(f.posts))
	for _, p := range f.posts {
		slugs = append(slugs, p.Slug())
	}
	return slugs, f.err
}

func (f *fakeRepository) Search(ctx context.Context, query string) ([]blog.BlogPostMeta, error) {
	f.calls = append(f.calls, "Search")
	f.lastQuery = query
	return blog.FilterBySearch(f.metas(), query), f.err
}

func (f *fakeRepository) GetAllTags(ctx context.Context) ([]blog.TagCount, error) {
	f.calls = append(f.calls, "GetAllTags")
	return blog.CountTags(f.metas()), f.err
}

func (f *fakeRepository) FindByTag(ctx context.Context, tag blog.Tag) ([]blog.BlogPostMeta, error) {
	f.calls = append(f.calls, "FindByTag")
	f.lastTag = tag
	return blog.FilterByTag(f.metas(), tag), f.err
}

type stubRenderer struct {
	err   error
	calls int
}

func (s *stubRenderer) ToHTML(ctx context.Context, src string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return "<p>" + src + "</p>", nil
}

func TestGetPostBySlug(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository(2)
	uc := NewGetPostBySlug(repo)

	post, err := uc.Execute(ctx, "  A-Post ")
	require.NoError(t, err)
	require.NotNil(t, post)
	assert.Equal(t, "a-post", post.Slug().String())
	assert.Equal(t, "a-post", repo.lastSlug.String())

	missing, err := uc.Execute(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestGetPostBySlug_InvalidInput(t *testing.T) {
	repo := newFakeRepository(1)
	uc := NewGetPostBySlug(repo)

	for _, raw := range []string{"", "   ", "hello world", "-lead", "trail-", strings.Repeat("a", 201)} {
		_, err := uc.Execute(context.Background(), raw)
		assert.ErrorIs(t, err, blog.ErrInvalidSlug, "input %q", raw)

		var slugErr *blog.InvalidSlugError
		assert.ErrorAs(t, err, &slugErr)
	}
	assert.Empty(t, repo.calls, "invalid input must not reach the repository")
}

func TestGetPostsByTag(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository(3)
	uc := NewGetPostsByTag(repo)

	posts, err := uc.Execute(ctx, " go ")
	require.NoError(t, err)
	assert.Len(t, posts, 3)
	assert.Equal(t, "go", repo.lastTag.Value())

	_, err = uc.Execute(ctx, "  ")
	assert.ErrorIs(t, err, blog.ErrInvalidTag)

	_, err = uc.Execute(ctx, strings.Repeat("x", blog.MaxTagLength+1))
	var tagErr *blog.InvalidTagError
	require.ErrorAs(t, err, &tagErr)
	assert.Equal(t, blog.RuleMaxLength, tagErr.Rule)
}

func TestSearchPosts_PassesQueryThrough(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository(2)
	uc := NewSearchPosts(repo)

	posts, err := uc.Execute(ctx, "A-POST")
	require.NoError(t, err)
	assert.Len(t, posts, 1)
	assert.Equal(t, "A-POST", repo.lastQuery)

	posts, err = uc.Execute(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestListingUseCases(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository(3)

	all, err := NewGetAllPosts(repo).Execute(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	slugs, err := NewGetAllSlugs(repo).Execute(ctx)
	require.NoError(t, err)
	assert.Len(t, slugs, 3)

	tags, err := NewGetAllTags(repo).Execute(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, 3, tags[0].Count)

	assert.Equal(t, []string{"FindAll", "GetAllSlugs", "GetAllTags"}, repo.calls)
}

func TestUseCases_PropagateRepositoryErrors(t *testing.T) {
	ctx := context.Background()
	failure := errors.New("store unavailable")
	repo := newFakeRepository(1)
	repo.err = failure
	ucs := New(repo, &stubRenderer{}, nil)

	_, err := ucs.GetPostBySlug.Execute(ctx, "a-post")
	assert.ErrorIs(t, err, failure)
	_, err = ucs.GetAllPosts.Execute(ctx)
	assert.ErrorIs(t, err, failure)
	_, err = ucs.GetFeaturedPost.Execute(ctx)
	assert.ErrorIs(t, err, failure)
	_, err = ucs.GetRecentPosts.Execute(ctx, 2)
	assert.ErrorIs(t, err, failure)
	_, err = ucs.RenderPost.Execute(ctx, "a-post")
	assert.ErrorIs(t, err, failure)
}

func TestGetFeaturedPost(t *testing.T) {
	ctx := context.Background()

	featured, err := NewGetFeaturedPost(newFakeRepository(3)).Execute(ctx)
	require.NoError(t, err)
	require.NotNil(t, featured)
	assert.Equal(t, "a-post", featured.Slug().String())

	none, err := NewGetFeaturedPost(newFakeRepository(0)).Execute(ctx)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestGetRecentPosts(t *testing.T) {
	ctx := context.Background()
	slugsOf := func(posts []blog.BlogPostMeta) []string {
		out := make([]string, 0, len(posts))
		for _, p := range posts {
			out = append(out, p.Slug().String())
		}
		return out
	}

	tests := []struct {
		name  string
		posts int
		count int
		want  []string
	}{
		{"default count", 6, 0, []string{"b-post", "c-post", "d-post"}},
		{"negative count", 6, -2, []string{"b-post", "c-post", "d-post"}},
		{"explicit count", 6, 2, []string{"b-post", "c-post"}},
		{"fewer posts than count", 3, 5, []string{"b-post", "c-post"}},
		{"only featured", 1, 3, []string{}},
		{"empty", 0, 3, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts, err := NewGetRecentPosts(newFakeRepository(tt.posts)).Execute(ctx, tt.count)
			require.NoError(t, err)
			assert.NotNil(t, posts)
			assert.Equal(t, tt.want, slugsOf(posts))
		})
	}
}

func TestRenderPost(t *testing.T) {
	ctx := context.Background()
	renderer := &stubRenderer{}
	uc := NewRenderPost(newFakeRepository(1), renderer, nil)

	rendered, err := uc.Execute(ctx, "a-post")
	require.NoError(t, err)
	require.NotNil(t, rendered)
	assert.Equal(t, "a-post", rendered.Post.Slug().String())
	assert.Equal(t, "<p># a-post\n\nbody</p>", rendered.HTML)

	missing, err := uc.Execute(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
	assert.Equal(t, 1, renderer.calls)

	_, err = uc.Execute(ctx, "Not Valid!")
	assert.ErrorIs(t, err, blog.ErrInvalidSlug)
}

func TestRenderPost_RendererFailureYieldsEmptyHTML(t *testing.T) {
	uc := NewRenderPost(newFakeRepository(1), &stubRenderer{err: errors.New("boom")}, nil)

	rendered, err := uc.Execute(context.Background(), "a-post")
	require.NoError(t, err)
	require.NotNil(t, rendered)
	assert.Equal(t, "", rendered.HTML)
}
