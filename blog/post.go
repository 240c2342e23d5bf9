package blog

import (
	"strings"
	"time"
)

// PostData is the already-parsed persistence record of a post.
type PostData struct {
	Slug               string
	Title              string
	Excerpt            string
	Content            string
	CoverImage         string
	Date               time.Time
	ReadingTimeMinutes int
	Tags               []string
	AuthorName         string
}

// MetaData is the persistence record of a post listing entry.
type MetaData struct {
	Slug               string
	Title              string
	Excerpt            string
	CoverImage         string
	Date               time.Time
	ReadingTimeMinutes int
	Tags               []string
}

// BlogPost is a full post, identified by its slug.
type BlogPost struct {
	meta       BlogPostMeta
	content    string
	authorName string
}

// PostFromPersistence rebuilds a post from a trusted record.
func PostFromPersistence(data PostData) *BlogPost {
	return &BlogPost{
		meta: MetaFromPersistence(MetaData{
			Slug:               data.Slug,
			Title:              data.Title,
			Excerpt:            data.Excerpt,
			CoverImage:         data.CoverImage,
			Date:               data.Date,
			ReadingTimeMinutes: data.ReadingTimeMinutes,
			Tags:               data.Tags,
		}),
		content:    data.Content,
		authorName: data.AuthorName,
	}
}

func (p *BlogPost) Slug() Slug { return p.meta.slug }
func (p *BlogPost) Identity() Slug { return p.meta.slug }
func (p *BlogPost) Title() string { return p.meta.title }
func (p *BlogPost) Excerpt() string { return p.meta.excerpt }
func (p *BlogPost) Content() string { return p.content }
func (p *BlogPost) CoverImage() string { return p.meta.coverImage }
func (p *BlogPost) Date() time.Time { return p.meta.date }
func (p *BlogPost) ReadingTime() ReadingTime { return p.meta.readingTime }
func (p *BlogPost) ReadingTimeMinutes() int { return p.meta.readingTime.Minutes() }
func (p *BlogPost) Tags() []Tag { return p.meta.Tags() }
func (p *BlogPost) AuthorName() string { return p.authorName }
func (p *BlogPost) HasTag(tag Tag) bool { return p.meta.HasTag(tag) }
func (p *BlogPost) MatchesSearch(q string) bool { return p.meta.MatchesSearch(q) }

// ToMeta drops content and author, keeping everything a listing needs.
func (p *BlogPost) ToMeta() BlogPostMeta {
	m := p.meta
	m.tags = p.meta.Tags()
	return m
}

// Equals compares posts by identity, not by content.
func (p *BlogPost) Equals(other *BlogPost) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.meta.slug.Equals(other.meta.slug)
}

// BlogPostMeta is the content-free projection of a post used by listings,
// tag pages and search results.
type BlogPostMeta struct {
	slug        Slug
	title       string
	excerpt     string
	coverImage  string
	date        time.Time
	readingTime ReadingTime
	tags        []Tag
}

// MetaFromPersistence rebuilds a listing entry from a trusted record.
func MetaFromPersistence(data MetaData) BlogPostMeta {
	return BlogPostMeta{
		slug:        SlugFromPersistence(data.Slug),
		title:       data.Title,
		excerpt:     data.Excerpt,
		coverImage:  data.CoverImage,
		date:        data.Date,
		readingTime: ReadingTimeFromPersistence(data.ReadingTimeMinutes),
		tags:        tagsFromPersistence(data.Tags),
	}
}

func (m BlogPostMeta) Slug() Slug { return m.slug }
func (m BlogPostMeta) Title() string { return m.title }
func (m BlogPostMeta) Excerpt() string { return m.excerpt }
func (m BlogPostMeta) CoverImage() string { return m.coverImage }
func (m BlogPostMeta) Date() time.Time { return m.date }
func (m BlogPostMeta) ReadingTime() ReadingTime { return m.readingTime }
func (m BlogPostMeta) ReadingTimeMinutes() int { return m.readingTime.Minutes() }

// Tags returns a copy of the post's tags in display order.
func (m BlogPostMeta) Tags() []Tag {
	tags := make([]Tag, len(m.tags))
	copy(tags, m.tags)
	return tags
}

// HasTag reports whether the post carries tag, ignoring case.
func (m BlogPostMeta) HasTag(tag Tag) bool {
	for _, t := range m.tags {
		if t.Equals(tag) {
			return true
		}
	}
	return false
}

// MatchesSearch reports whether query occurs, ignoring case, in the title, the
// excerpt or any tag. A blank query matches every post.
func (m BlogPostMeta) MatchesSearch(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(m.title), q) || strings.Contains(strings.ToLower(m.excerpt), q) {
		return true
	}
	for _, t := range m.tags {
		if strings.Contains(t.Key(), q) {
			return true
		}
	}
	return false
}

// Equals compares listing entries by identity.
func (m BlogPostMeta) Equals(other BlogPostMeta) bool {
	return m.slug.Equals(other.slug)
}

// TagCount pairs a tag with the number of posts that carry it.
type TagCount struct {
	Tag   Tag
	Count int
}

// CountTags groups the tags of posts case-insensitively. The first spelling seen
// is kept for display; results are ordered by count, descending, with ties kept in
// first-seen order.
func CountTags(posts []BlogPostMeta) []TagCount {
	counts := make([]TagCount, 0)
	index := make(map[string]int)
	for _, p := range posts {
		for _, t := range p.tags {
			if i, ok := index[t.Key()]; ok {
				counts[i].Count++
				continue
			}
			index[t.Key()] = len(counts)
			counts = append(counts, TagCount{Tag: t, Count: 1})
		}
	}
	sortTagCounts(counts)
	return counts
}

// FilterByTag returns the posts carrying tag, preserving order.
func FilterByTag(posts []BlogPostMeta, tag Tag) []BlogPostMeta {
	out := make([]BlogPostMeta, 0)
	for _, p := range posts {
		if p.HasTag(tag) {
			out = append(out, p)
		}
	}
	return out
}

// FilterBySearch returns the posts matching query, preserving order. Unlike
// MatchesSearch, a blank query matches nothing.
func FilterBySearch(posts []BlogPostMeta, query string) []BlogPostMeta {
	out := make([]BlogPostMeta, 0)
	if strings.TrimSpace(query) == "" {
		return out
	}
	for _, p := range posts {
		if p.MatchesSearch(query) {
			out = append(out, p)
		}
	}
	return out
}

// SortByDateDesc orders posts newest first, keeping the input order for equal dates.
func SortByDateDesc(posts []BlogPostMeta) {
	sortMetaByDate(posts)
}
