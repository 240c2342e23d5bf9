// Package filerepo reads blog posts from a directory of markdown files.
//
// Each post lives in <dir>/<slug>.md: an optional YAML front matter block
// delimited by "---" lines, followed by the markdown body. Every read scans the
// directory again; wrap the repository with repositorycache to avoid that.
package filerepo

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goliatone/go-blog-content/blog"
	"github.com/goliatone/go-blog-content/internal/logger"
)

// Defaults applied to missing front matter fields.
const (
	DefaultTitle      = "Untitled"
	DefaultCoverImage = "/images/default-cover.jpg"
	DefaultAuthor     = "Anonymous"
)

const extension = ".md"

var _ blog.PostRepository = (*Repository)(nil)

// Repository is a blog.PostRepository over a content directory. I/O failures are
// logged and reported as empty results.
type Repository struct {
	dir           string
	logger        *slog.Logger
	now           func() time.Time
	defaultCover  string
	defaultAuthor string
}

// Option configures a Repository.
type Option func(*Repository)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Repository) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithClock sets the source of the date used when a post has none.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		if now != nil {
			r.now = now
		}
	}
}

func WithDefaultCoverImage(path string) Option {
	return func(r *Repository) {
		if path != "" {
			r.defaultCover = path
		}
	}
}

func WithDefaultAuthor(name string) Option {
	return func(r *Repository) {
		if name != "" {
			r.defaultAuthor = name
		}
	}
}

// New returns a repository reading from dir. The directory is created on first access.
func New(dir string, opts ...Option) *Repository {
	r := &Repository{
		dir:           dir,
		logger:        logger.Discard(),
		now:           time.Now,
		defaultCover:  DefaultCoverImage,
		defaultAuthor: DefaultAuthor,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Dir returns the content directory.
func (r *Repository) Dir() string {
	return r.dir
}

// FindBySlug reads <dir>/<slug>.md. A missing or unreadable file yields nil.
func (r *Repository) FindBySlug(ctx context.Context, slug blog.Slug) (*blog.BlogPost, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.ensureDir()

	name := slug.String()
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return nil, nil
	}

	path := filepath.Join(r.dir, name+extension)
	raw, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			r.logger.Warn("failed to read post", "path", path, "error", err)
		}
		return nil, nil
	}

	return blog.PostFromPersistence(r.parse(name, path, raw)), nil
}

// FindAll parses every post, newest first. Posts with equal dates keep directory order.
func (r *Repository) FindAll(ctx context.Context) ([]blog.BlogPostMeta, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.ensureDir()

	posts := make([]blog.BlogPostMeta, 0)
	for _, name := range r.postFiles() {
		path := filepath.Join(r.dir, name)
		raw, err := os.ReadFile(path)
		if err != nil {
			r.logger.Warn("skipping unreadable post", "path", path, "error", err)
			continue
		}
		slug := strings.TrimSuffix(name, extension)
		posts = append(posts, blog.PostFromPersistence(r.parse(slug, path, raw)).ToMeta())
	}

	blog.SortByDateDesc(posts)
	return posts, nil
}

// FindByTag returns the posts carrying tag, ignoring case.
func (r *Repository) FindByTag(ctx context.Context, tag blog.Tag) ([]blog.BlogPostMeta, error) {
	posts, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return blog.FilterByTag(posts, tag), nil
}

// GetAllSlugs returns the name of every post file without its extension.
func (r *Repository) GetAllSlugs(ctx context.Context) ([]blog.Slug, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.ensureDir()

	files := r.postFiles()
	slugs := make([]blog.Slug, 0, len(files))
	for _, name := range files {
		slugs = append(slugs, blog.SlugFromPersistence(strings.TrimSuffix(name, extension)))
	}
	return slugs, nil
}

// GetAllTags counts tags across all posts.
func (r *Repository) GetAllTags(ctx context.Context) ([]blog.TagCount, error) {
	posts, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return blog.CountTags(posts), nil
}

// Search returns posts matching query. A blank query returns no posts.
func (r *Repository) Search(ctx context.Context, query string) ([]blog.BlogPostMeta, error) {
	if strings.TrimSpace(query) == "" {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return make([]blog.BlogPostMeta, 0), nil
	}
	posts, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return blog.FilterBySearch(posts, query), nil
}

func (r *Repository) ensureDir() {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		r.logger.Warn("failed to create content directory", "dir", r.dir, "error", err)
	}
}

// postFiles lists the *.md entries of the directory in name order.
func (r *Repository) postFiles() []string {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		r.logger.Warn("failed to list content directory", "dir", r.dir, "error", err)
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), extension) {
			continue
		}
		names = append(names, entry.Name())
	}
	return names
}

// parse maps a file to a post record, applying defaults for missing fields.
// Reading time always comes from the body.
func (r *Repository) parse(slug, path string, raw []byte) blog.PostData {
	doc, err := parseDocument(string(raw))
	if err != nil {
		r.logger.Warn("ignoring invalid front matter", "path", path, "error", err)
	}

	return blog.PostData{
		Slug:               slug,
		Title:              doc.text("title", DefaultTitle),
		Excerpt:            doc.text("excerpt", ""),
		Content:            doc.body,
		CoverImage:         doc.text("coverImage", r.defaultCover),
		Date:               doc.date(r.now),
		ReadingTimeMinutes: blog.ReadingTimeFromContent(doc.body).Minutes(),
		Tags:               doc.tags(),
		AuthorName:         doc.text("authorName", r.defaultAuthor),
	}
}
