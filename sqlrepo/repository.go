// Package sqlrepo mirrors posts into a SQL table through bun and serves the
// blog.PostRepository reads from it. SQLite (mattn/go-sqlite3) and PostgreSQL
// (lib/pq) are supported.
package sqlrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	repository "github.com/goliatone/go-repository-bun"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/schema"

	"github.com/goliatone/go-blog-content/blog"
	"github.com/goliatone/go-blog-content/internal/logger"
)

// Supported driver names.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// ErrUnsupportedDriver is returned by Open for drivers other than DriverSQLite and DriverPostgres.
var ErrUnsupportedDriver = errors.New("sqlrepo: unsupported driver")

var _ blog.PostRepository = (*Repository)(nil)

// Repository is a blog.PostRepository backed by the posts table. Query failures
// are logged and reported as empty results, like the file repository does.
type Repository struct {
	db     *bun.DB
	posts  repository.Repository[*postRecord]
	logger *slog.Logger
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

// Open connects to dsn with the named driver, checks the connection and creates
// the posts table when it is missing.
func Open(ctx context.Context, driver, dsn string, opts ...Option) (*Repository, error) {
	dialect, err := dialectFor(driver)
	if err != nil {
		return nil, err
	}

	sqldb, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlrepo: open %s: %w", driver, err)
	}
	if driver == DriverSQLite {
		// in-memory databases live only as long as their connection
		sqldb.SetMaxOpenConns(1)
	}

	db := bun.NewDB(sqldb, dialect)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlrepo: ping %s: %w", driver, err)
	}

	repo := New(db, opts...)
	if err := repo.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return repo, nil
}

// New wraps an existing bun database. Call Migrate before the first read.
func New(db *bun.DB, opts ...Option) *Repository {
	r := &Repository{
		db:     db,
		posts:  repository.NewRepository(db, postHandlers()),
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func dialectFor(driver string) (schema.Dialect, error) {
	switch driver {
	case DriverSQLite:
		return sqlitedialect.New(), nil
	case DriverPostgres:
		return pgdialect.New(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
}

// DB exposes the underlying bun database.
func (r *Repository) DB() *bun.DB {
	return r.db
}

// Close closes the database.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Migrate creates the posts table if it does not exist.
func (r *Repository) Migrate(ctx context.Context) error {
	_, err := r.db.NewCreateTable().Model((*postRecord)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return fmt.Errorf("sqlrepo: create posts table: %w", err)
	}
	return nil
}

// Import replaces the table contents with every post of src in one transaction.
// Rows keep the order of src.FindAll. It returns the number of posts stored.
func (r *Repository) Import(ctx context.Context, src blog.PostReader) (int, error) {
	metas, err := src.FindAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("sqlrepo: list source posts: %w", err)
	}

	records := make([]*postRecord, 0, len(metas))
	for i, meta := range metas {
		post, err := src.FindBySlug(ctx, meta.Slug())
		if err != nil {
			return 0, fmt.Errorf("sqlrepo: load %q: %w", meta.Slug(), err)
		}
		if post == nil {
			// removed between the listing and the read
			continue
		}
		records = append(records, newRecord(i, meta, post))
	}

	err = r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		// DeleteWhereTx, not DeleteManyTx: the latter runs outside tx.
		if err := r.posts.DeleteWhereTx(ctx, tx, deleteAll); err != nil {
			return fmt.Errorf("clear posts: %w", err)
		}
		if _, err := r.posts.CreateManyTx(ctx, tx, records); err != nil {
			return fmt.Errorf("insert posts: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("sqlrepo: import: %w", err)
	}

	r.logger.Debug("posts imported", "count", len(records))
	return len(records), nil
}

func deleteAll(q *bun.DeleteQuery) *bun.DeleteQuery {
	return q.Where("1 = 1")
}

// unpaged lifts the default page size of repository lists.
func unpaged() repository.SelectCriteria {
	return repository.SelectPaginate(0, 0)
}

// Count returns the number of stored posts.
func (r *Repository) Count(ctx context.Context) (int, error) {
	return r.posts.Count(ctx)
}

// FindBySlug returns the stored post, or nil when there is none.
func (r *Repository) FindBySlug(ctx context.Context, slug blog.Slug) (*blog.BlogPost, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		record *postRecord
		err    error
	)
	if _, parseErr := uuid.Parse(slug.String()); parseErr == nil {
		// GetByIdentifier would match a UUID shaped slug against the id column.
		record, err = r.posts.Get(ctx, repository.SelectBy("slug", "=", slug.String()))
	} else {
		record, err = r.posts.GetByIdentifier(ctx, slug.String())
	}
	if err != nil {
		if !repository.IsRecordNotFound(err) && !errors.Is(err, sql.ErrNoRows) {
			r.logger.Warn("failed to load post", "slug", slug.String(), "error", err)
		}
		return nil, nil
	}

	return record.toPost(), nil
}

// FindAll returns every post, newest first, ties in import order.
func (r *Repository) FindAll(ctx context.Context) ([]blog.BlogPostMeta, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records, _, err := r.posts.List(ctx,
		unpaged(),
		repository.ExcludeColumns("content", "author_name"),
		repository.SelectOrderAsc("seq"),
	)
	if err != nil {
		r.logger.Warn("failed to list posts", "error", err)
		return make([]blog.BlogPostMeta, 0), nil
	}

	posts := make([]blog.BlogPostMeta, 0, len(records))
	for _, record := range records {
		posts = append(posts, record.toMeta())
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

// GetAllSlugs returns every stored slug.
func (r *Repository) GetAllSlugs(ctx context.Context) ([]blog.Slug, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records, _, err := r.posts.List(ctx,
		unpaged(),
		repository.SelectColumns("slug"),
		repository.SelectOrderAsc("seq"),
	)
	if err != nil {
		r.logger.Warn("failed to list slugs", "error", err)
		return make([]blog.Slug, 0), nil
	}

	slugs := make([]blog.Slug, 0, len(records))
	for _, record := range records {
		slugs = append(slugs, blog.SlugFromPersistence(record.Slug))
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
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(query) == "" {
		return make([]blog.BlogPostMeta, 0), nil
	}
	posts, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return blog.FilterBySearch(posts, query), nil
}
