package api

import (
	"time"

	"github.com/goliatone/go-blog-content/blog"
)

// PostSummary is the listing projection of a post.
type PostSummary struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Excerpt     string   `json:"excerpt"`
	CoverImage  string   `json:"coverImage"`
	Date        string   `json:"date"`
	ReadingTime int      `json:"readingTime"`
	Tags        []string `json:"tags"`
}

// PostDetail is a full post with its rendered body.
type PostDetail struct {
	PostSummary
	AuthorName string `json:"authorName"`
	Content    string `json:"content"`
	HTML       string `json:"html"`
}

// TagSummary is one entry of the tag cloud.
type TagSummary struct {
	Tag   string `json:"tag"`
	Path  string `json:"path"`
	Count int    `json:"count"`
}

// Pagination describes one page of a listing.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	TotalPosts int  `json:"totalPosts"`
	TotalPages int  `json:"totalPages"`
	HasMore    bool `json:"hasMore"`
}

// PostPage is a paginated listing.
type PostPage struct {
	Posts      []PostSummary `json:"posts"`
	Pagination Pagination    `json:"pagination"`
}

func formatDate(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

func tagValues(tags []blog.Tag) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, t.Value())
	}
	return out
}

func toSummary(meta blog.BlogPostMeta) PostSummary {
	return PostSummary{
		Slug:        meta.Slug().String(),
		Title:       meta.Title(),
		Excerpt:     meta.Excerpt(),
		CoverImage:  meta.CoverImage(),
		Date:        formatDate(meta.Date()),
		ReadingTime: meta.ReadingTimeMinutes(),
		Tags:        tagValues(meta.Tags()),
	}
}

func toSummaries(posts []blog.BlogPostMeta) []PostSummary {
	out := make([]PostSummary, 0, len(posts))
	for _, p := range posts {
		out = append(out, toSummary(p))
	}
	return out
}

func toDetail(post *blog.BlogPost, html string) PostDetail {
	return PostDetail{
		PostSummary: toSummary(post.ToMeta()),
		AuthorName:  post.AuthorName(),
		Content:     post.Content(),
		HTML:        html,
	}
}

func toTagSummaries(counts []blog.TagCount) []TagSummary {
	out := make([]TagSummary, 0, len(counts))
	for _, c := range counts {
		out = append(out, TagSummary{Tag: c.Tag.Value(), Path: c.Tag.URLSafe(), Count: c.Count})
	}
	return out
}

func paginate(posts []PostSummary, page, limit int) PostPage {
	total := len(posts)
	totalPages := (total + limit - 1) / limit

	start := total
	if page-1 <= total/limit {
		start = (page - 1) * limit
	}
	end := min(start+limit, total)

	return PostPage{
		Posts: posts[start:end],
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			TotalPosts: total,
			TotalPages: totalPages,
			HasMore:    page < totalPages,
		},
	}
}
