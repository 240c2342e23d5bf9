package blog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePost() *BlogPost {
	return PostFromPersistence(PostData{
		Slug:               "react-hooks-guide",
		Title:              "React Hooks Guide",
		Excerpt:            "Everything about useEffect",
		Content:            "# Hooks\n\nBody text.",
		CoverImage:         "/images/hooks.jpg",
		Date:               time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC),
		ReadingTimeMinutes: 2,
		Tags:               []string{"React", "Frontend"},
		AuthorName:         "Jane",
	})
}

func TestPostFromPersistence(t *testing.T) {
	p := samplePost()

	assert.Equal(t, "react-hooks-guide", p.Slug().String())
	assert.True(t, p.Identity().Equals(p.Slug()))
	assert.Equal(t, "React Hooks Guide", p.Title())
	assert.Equal(t, "Everything about useEffect", p.Excerpt())
	assert.Equal(t, "# Hooks\n\nBody text.", p.Content())
	assert.Equal(t, "/images/hooks.jpg", p.CoverImage())
	assert.Equal(t, 2, p.ReadingTimeMinutes())
	assert.Equal(t, "Jane", p.AuthorName())
	require.Len(t, p.Tags(), 2)
	assert.Equal(t, "React", p.Tags()[0].Value())
}

func TestBlogPost_TagsAreCopied(t *testing.T) {
	p := samplePost()
	tags := p.Tags()
	tags[0] = TagFromPersistence("Mutated")
	assert.Equal(t, "React", p.Tags()[0].Value())

	m := p.ToMeta()
	mt := m.Tags()
	mt[0] = TagFromPersistence("Mutated")
	assert.Equal(t, "React", m.Tags()[0].Value())
	assert.Equal(t, "React", p.Tags()[0].Value())
}

func TestBlogPost_ToMeta(t *testing.T) {
	p := samplePost()
	m := p.ToMeta()

	assert.True(t, m.Slug().Equals(p.Slug()))
	assert.Equal(t, p.Title(), m.Title())
	assert.Equal(t, p.Excerpt(), m.Excerpt())
	assert.Equal(t, p.CoverImage(), m.CoverImage())
	assert.True(t, p.Date().Equal(m.Date()))
	assert.True(t, p.ReadingTime().Equals(m.ReadingTime()))
	assert.Equal(t, p.Tags(), m.Tags())
}

func TestBlogPost_EqualsByIdentity(t *testing.T) {
	a := samplePost()
	b := PostFromPersistence(PostData{Slug: "react-hooks-guide", Title: "Different title"})
	c := PostFromPersistence(PostData{Slug: "other", Title: "React Hooks Guide"})

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
	assert.False(t, a.Equals(nil))
	assert.True(t, a.ToMeta().Equals(b.ToMeta()))
}

func TestMatchesSearch(t *testing.T) {
	p := samplePost()

	tests := []struct {
		query string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"react", true},
		{"HOOKS", true},
		{"useeffect", true},
		{"front", true},
		{"  guide  ", true},
		{"vue", false},
		{"body", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, p.MatchesSearch(tt.query), "query %q", tt.query)
		assert.Equal(t, tt.want, p.ToMeta().MatchesSearch(tt.query), "meta query %q", tt.query)
	}
}

func TestHasTag(t *testing.T) {
	p := samplePost()
	assert.True(t, p.HasTag(TagFromPersistence("react")))
	assert.True(t, p.HasTag(TagFromPersistence("FRONTEND")))
	assert.False(t, p.HasTag(TagFromPersistence("vue")))
}

func meta(slug string, date time.Time, tags ...string) BlogPostMeta {
	return MetaFromPersistence(MetaData{Slug: slug, Title: slug, Date: date, ReadingTimeMinutes: 1, Tags: tags})
}

func TestSortByDateDesc_Stable(t *testing.T) {
	d1 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	d3 := time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC)

	posts := []BlogPostMeta{
		meta("c", d3),
		meta("a", d1),
		meta("b1", d2),
		meta("b2", d2),
	}
	SortByDateDesc(posts)

	var got []string
	for _, p := range posts {
		got = append(got, p.Slug().String())
	}
	assert.Equal(t, []string{"c", "b1", "b2", "a"}, got)
}

func TestCountTags(t *testing.T) {
	now := time.Now()
	posts := []BlogPostMeta{
		meta("one", now, "React", "Vue"),
		meta("two", now, "react"),
	}

	counts := CountTags(posts)
	require.Len(t, counts, 2)
	assert.Equal(t, "React", counts[0].Tag.Value())
	assert.Equal(t, 2, counts[0].Count)
	assert.Equal(t, "Vue", counts[1].Tag.Value())
	assert.Equal(t, 1, counts[1].Count)
}

func TestCountTags_TiesKeepFirstSeenOrder(t *testing.T) {
	now := time.Now()
	posts := []BlogPostMeta{
		meta("one", now, "Go", "Rust"),
		meta("two", now, "Zig", "rust"),
	}

	counts := CountTags(posts)
	require.Len(t, counts, 3)
	assert.Equal(t, "Rust", counts[0].Tag.Value())
	assert.Equal(t, "Go", counts[1].Tag.Value())
	assert.Equal(t, "Zig", counts[2].Tag.Value())

	assert.NotNil(t, CountTags(nil))
	assert.Empty(t, CountTags(nil))
}

func TestFilterBySearch_BlankQueryMatchesNothing(t *testing.T) {
	now := time.Now()
	posts := []BlogPostMeta{meta("one", now, "Go"), meta("two", now)}

	assert.Empty(t, FilterBySearch(posts, ""))
	assert.Empty(t, FilterBySearch(posts, "  "))
	assert.Len(t, FilterBySearch(posts, "one"), 1)
	assert.Len(t, FilterByTag(posts, TagFromPersistence("GO")), 1)
}
