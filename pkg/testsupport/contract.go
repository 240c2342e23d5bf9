package testsupport

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-blog-content/blog"
)

// RepositoryFactory builds a repository holding exactly the given posts.
type RepositoryFactory func(t *testing.T, posts []PostFixture) blog.PostRepository

// RunRepositoryContract checks the read behaviour every blog.PostRepository must
// share, so implementations and decorators can replace one another.
func RunRepositoryContract(t *testing.T, factory RepositoryFactory) {
	t.Helper()

	t.Run("FindAll orders by date descending", func(t *testing.T) {
		repo := factory(t, []PostFixture{
			{Slug: "third", Title: "Third", Date: "2025-01-03", Body: "c"},
			{Slug: "first", Title: "First", Date: "2025-01-01", Body: "a"},
			{Slug: "second", Title: "Second", Date: "2025-01-02", Body: "b"},
		})

		posts, err := repo.FindAll(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"third", "second", "first"}, metaSlugs(posts))
		assert.True(t, posts[0].Date().Equal(Day(2025, time.January, 3)))
	})

	t.Run("FindAll keeps name order for equal dates", func(t *testing.T) {
		repo := factory(t, []PostFixture{
			{Slug: "b-post", Title: "B", Date: "2025-02-01"},
			{Slug: "a-post", Title: "A", Date: "2025-02-01"},
			{Slug: "c-post", Title: "C", Date: "2025-03-01"},
		})

		posts, err := repo.FindAll(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"c-post", "a-post", "b-post"}, metaSlugs(posts))
	})

	t.Run("empty store yields empty results", func(t *testing.T) {
		repo := factory(t, nil)
		ctx := context.Background()

		posts, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.NotNil(t, posts)
		assert.Empty(t, posts)

		slugs, err := repo.GetAllSlugs(ctx)
		require.NoError(t, err)
		assert.NotNil(t, slugs)
		assert.Empty(t, slugs)

		tags, err := repo.GetAllTags(ctx)
		require.NoError(t, err)
		assert.NotNil(t, tags)
		assert.Empty(t, tags)

		byTag, err := repo.FindByTag(ctx, blog.TagFromPersistence("go"))
		require.NoError(t, err)
		assert.NotNil(t, byTag)
		assert.Empty(t, byTag)
	})

	t.Run("FindBySlug returns the full post", func(t *testing.T) {
		repo := factory(t, []PostFixture{{
			Slug:       "hooks-guide",
			Title:      "React Hooks Guide",
			Excerpt:    "All about hooks",
			CoverImage: "/images/hooks.png",
			Date:       "2025-01-05",
			Tags:       []string{"React", "Frontend"},
			AuthorName: "Grace",
			Body:       Words(400),
		}})

		post, err := repo.FindBySlug(context.Background(), blog.MustSlug("hooks-guide"))
		require.NoError(t, err)
		require.NotNil(t, post)

		assert.Equal(t, "hooks-guide", post.Slug().String())
		assert.Equal(t, "React Hooks Guide", post.Title())
		assert.Equal(t, "All about hooks", post.Excerpt())
		assert.Equal(t, "/images/hooks.png", post.CoverImage())
		assert.Equal(t, "Grace", post.AuthorName())
		assert.Equal(t, Words(400), post.Content())
		assert.Equal(t, 2, post.ReadingTimeMinutes())
		assert.True(t, post.Date().Equal(Day(2025, time.January, 5)))
		assert.Equal(t, []string{"React", "Frontend"}, tagValues(post.Tags()))
	})

	t.Run("FindBySlug returns nil for a missing post", func(t *testing.T) {
		repo := factory(t, []PostFixture{{Slug: "present", Title: "Present"}})

		post, err := repo.FindBySlug(context.Background(), blog.MustSlug("absent"))
		require.NoError(t, err)
		assert.Nil(t, post)
	})

	t.Run("missing fields fall back to defaults", func(t *testing.T) {
		repo := factory(t, []PostFixture{{Slug: "bare", Body: "just a body"}})
		before := time.Now().Add(-time.Minute)

		post, err := repo.FindBySlug(context.Background(), blog.MustSlug("bare"))
		require.NoError(t, err)
		require.NotNil(t, post)

		assert.Equal(t, "Untitled", post.Title())
		assert.Equal(t, "", post.Excerpt())
		assert.Equal(t, "/images/default-cover.jpg", post.CoverImage())
		assert.Equal(t, "Anonymous", post.AuthorName())
		assert.NotNil(t, post.Tags())
		assert.Empty(t, post.Tags())
		assert.Equal(t, 1, post.ReadingTimeMinutes())
		assert.True(t, post.Date().After(before), "expected the read time as date, got %v", post.Date())
	})

	t.Run("GetAllSlugs lists every post", func(t *testing.T) {
		repo := factory(t, []PostFixture{
			{Slug: "alpha", Date: "2025-01-01"},
			{Slug: "beta", Date: "2025-01-02"},
			{Slug: "gamma", Date: "2025-01-03"},
		})

		slugs, err := repo.GetAllSlugs(context.Background())
		require.NoError(t, err)

		values := make([]string, 0, len(slugs))
		for _, s := range slugs {
			values = append(values, s.String())
		}
		assert.ElementsMatch(t, []string{"alpha", "beta", "gamma"}, values)
	})

	t.Run("FindByTag ignores case", func(t *testing.T) {
		repo := factory(t, []PostFixture{
			{Slug: "hooks", Title: "Hooks", Date: "2025-01-02", Tags: []string{"React"}},
			{Slug: "state", Title: "State", Date: "2025-01-01", Tags: []string{"react", "Redux"}},
			{Slug: "vue", Title: "Vue", Date: "2025-01-03", Tags: []string{"Vue"}},
		})

		posts, err := repo.FindByTag(context.Background(), blog.TagFromPersistence("REACT"))
		require.NoError(t, err)
		assert.Equal(t, []string{"hooks", "state"}, metaSlugs(posts))
	})

	t.Run("GetAllTags groups case-insensitively", func(t *testing.T) {
		repo := factory(t, []PostFixture{
			{Slug: "one", Date: "2025-01-02", Tags: []string{"React", "Vue"}},
			{Slug: "two", Date: "2025-01-01", Tags: []string{"react"}},
		})

		counts, err := repo.GetAllTags(context.Background())
		require.NoError(t, err)
		require.Len(t, counts, 2)
		assert.Equal(t, "React", counts[0].Tag.Value())
		assert.Equal(t, 2, counts[0].Count)
		assert.Equal(t, "Vue", counts[1].Tag.Value())
		assert.Equal(t, 1, counts[1].Count)
	})

	t.Run("Search matches title excerpt and tags", func(t *testing.T) {
		repo := factory(t, []PostFixture{
			{Slug: "hooks", Title: "React Hooks Guide", Date: "2025-01-02", Tags: []string{"React"}},
			{Slug: "cooking", Title: "Cooking Tips", Date: "2025-01-01", Excerpt: "pasta"},
		})
		ctx := context.Background()

		posts, err := repo.Search(ctx, "react")
		require.NoError(t, err)
		assert.Equal(t, []string{"hooks"}, metaSlugs(posts))

		posts, err = repo.Search(ctx, "PASTA")
		require.NoError(t, err)
		assert.Equal(t, []string{"cooking"}, metaSlugs(posts))

		posts, err = repo.Search(ctx, "nothing matches this")
		require.NoError(t, err)
		assert.NotNil(t, posts)
		assert.Empty(t, posts)
	})

	t.Run("blank Search returns no posts", func(t *testing.T) {
		repo := factory(t, []PostFixture{{Slug: "hooks", Title: "React Hooks Guide"}})

		for _, q := range []string{"", "   "} {
			posts, err := repo.Search(context.Background(), q)
			require.NoError(t, err)
			assert.NotNil(t, posts)
			assert.Empty(t, posts, "query %q", q)
		}
	})

	t.Run("reading time comes from the body", func(t *testing.T) {
		repo := factory(t, []PostFixture{{Slug: "long", Title: "Long", Date: "2025-01-01", Body: Words(401)}})

		posts, err := repo.FindAll(context.Background())
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, 3, posts[0].ReadingTimeMinutes())
	})
}

func metaSlugs(posts []blog.BlogPostMeta) []string {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.Slug().String())
	}
	return out
}

func tagValues(tags []blog.Tag) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, t.Value())
	}
	return out
}
