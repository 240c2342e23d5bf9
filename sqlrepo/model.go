package sqlrepo

import (
	"time"

	"github.com/google/uuid"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-blog-content/blog"
)

// postRecord is one row of the posts table. Seq keeps the order of the source
// listing so posts with equal dates come back in the same order.
type postRecord struct {
	bun.BaseModel `bun:"table:posts,alias:p"`

	ID                 uuid.UUID `bun:"id,pk,notnull"`
	Slug               string    `bun:"slug,notnull,unique"`
	Seq                int       `bun:"seq,notnull"`
	Title              string    `bun:"title,notnull"`
	Excerpt            string    `bun:"excerpt,notnull"`
	Content            string    `bun:"content,notnull"`
	CoverImage         string    `bun:"cover_image,notnull"`
	Date               time.Time `bun:"date,notnull"`
	ReadingTimeMinutes int       `bun:"reading_time_minutes,notnull"`
	Tags               []string  `bun:"tags"`
	AuthorName         string    `bun:"author_name,notnull"`
}

// postNamespace seeds the name-based ids of post rows.
var postNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("urn:go-blog-content:posts"))

// PostID is the row id of slug. It is derived from the slug, so a post keeps its
// id across imports.
func PostID(slug blog.Slug) uuid.UUID {
	return uuid.NewSHA1(postNamespace, []byte(slug.String()))
}

func postHandlers() repository.ModelHandlers[*postRecord] {
	return repository.ModelHandlers[*postRecord]{
		NewRecord: func() *postRecord {
			return &postRecord{}
		},
		GetID: func(record *postRecord) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return record.ID
		},
		SetID: func(record *postRecord, id uuid.UUID) {
			record.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
	}
}

func newRecord(seq int, meta blog.BlogPostMeta, post *blog.BlogPost) *postRecord {
	tags := make([]string, 0, len(post.Tags()))
	for _, t := range post.Tags() {
		tags = append(tags, t.Value())
	}

	return &postRecord{
		ID:                 PostID(post.Slug()),
		Slug:               post.Slug().String(),
		Seq:                seq,
		Title:              post.Title(),
		Excerpt:            post.Excerpt(),
		Content:            post.Content(),
		CoverImage:         post.CoverImage(),
		Date:               meta.Date(),
		ReadingTimeMinutes: post.ReadingTimeMinutes(),
		Tags:               tags,
		AuthorName:         post.AuthorName(),
	}
}

func (r *postRecord) toPost() *blog.BlogPost {
	return blog.PostFromPersistence(blog.PostData{
		Slug:               r.Slug,
		Title:              r.Title,
		Excerpt:            r.Excerpt,
		Content:            r.Content,
		CoverImage:         r.CoverImage,
		Date:               r.Date,
		ReadingTimeMinutes: r.ReadingTimeMinutes,
		Tags:               r.Tags,
		AuthorName:         r.AuthorName,
	})
}

func (r *postRecord) toMeta() blog.BlogPostMeta {
	return blog.MetaFromPersistence(blog.MetaData{
		Slug:               r.Slug,
		Title:              r.Title,
		Excerpt:            r.Excerpt,
		CoverImage:         r.CoverImage,
		Date:               r.Date,
		ReadingTimeMinutes: r.ReadingTimeMinutes,
		Tags:               r.Tags,
	})
}
