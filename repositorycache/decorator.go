package repositorycache

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strconv"

	"github.com/goliatone/go-blog-content/blog"
	"github.com/goliatone/go-blog-content/cache"
	"github.com/goliatone/go-blog-content/internal/logger"
	"github.com/puzpuzpuz/xsync/v3"
)

// DefaultNamespace prefixes every key of a decorator built without WithNamespace.
const DefaultNamespace = "posts"

// Interface assertion to ensure CachedRepository implements blog.PostRepository
var _ blog.PostRepository = (*CachedRepository)(nil)

// CachedRepository decorates a base repository with read-through caching.
// Every read is served from the cache while the entry is younger than the cache
// service TTL; errors from the base repository are returned as is and never cached.
type CachedRepository struct {
	base          blog.PostRepository
	cache         cache.CacheService
	keySerializer cache.KeySerializer
	namespace     string
	keyRegistry   *xsync.MapOf[string, struct{}]
	logger        *slog.Logger
}

// Option configures a CachedRepository.
type Option func(*CachedRepository)

// WithNamespace sets the key namespace. Decorators sharing a cache service must use
// different namespaces; a decorator wrapping other decorators gets a numeric suffix
// when its name is already taken below it. The name is converted to snake_case; a
// name with no letters or digits keeps the default.
func WithNamespace(name string) Option {
	return func(c *CachedRepository) {
		if ns := toSnake(name); ns != "" {
			c.namespace = ns
		}
	}
}

// WithLogger sets the logger used to report invalidation failures.
func WithLogger(logger *slog.Logger) Option {
	return func(c *CachedRepository) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a new CachedRepository that wraps the base repository with caching
func New(base blog.PostRepository, cacheService cache.CacheService, keySerializer cache.KeySerializer, opts ...Option) *CachedRepository {
	c := &CachedRepository{
		base:          base,
		cache:         cacheService,
		keySerializer: keySerializer,
		namespace:     DefaultNamespace,
		keyRegistry:   xsync.NewMapOf[string, struct{}](),
		logger:        logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.namespace = nestedNamespace(c.namespace, base)
	return c
}

// nestedNamespace keeps a decorator stacked on other decorators off their
// namespaces. An outer fetch holds its key in flight while the inner decorator
// runs, so a shared key would make the inner call wait on itself. Taken names
// get the first free numeric suffix: posts, posts_2, posts_3.
func nestedNamespace(namespace string, base blog.PostRepository) string {
	taken := map[string]bool{}
	for inner, ok := base.(*CachedRepository); ok; inner, ok = inner.base.(*CachedRepository) {
		taken[inner.namespace] = true
	}
	if !taken[namespace] {
		return namespace
	}
	for i := 2; ; i++ {
		candidate := namespace + "_" + strconv.Itoa(i)
		if !taken[candidate] {
			return candidate
		}
	}
}

// Namespace returns the prefix shared by every key of this decorator.
func (c *CachedRepository) Namespace() string {
	return c.namespace
}

// FindBySlug returns the post stored under slug, or nil. Absent posts are cached too.
func (c *CachedRepository) FindBySlug(ctx context.Context, slug blog.Slug) (*blog.BlogPost, error) {
	post, err := cache.GetOrFetch(ctx, c.cache, c.track(SlugKey(slug)), func(ctx context.Context) (*blog.BlogPost, error) {
		post, err := c.base.FindBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		if post == nil {
			return nil, cache.ErrNotFound
		}
		return post, nil
	})
	if errors.Is(err, cache.ErrNotFound) {
		return nil, nil
	}
	return post, err
}

// FindAll returns every post, newest first.
func (c *CachedRepository) FindAll(ctx context.Context) ([]blog.BlogPostMeta, error) {
	return c.metaList(ctx, AllPostsKey(), c.base.FindAll)
}

// FindByTag returns the posts carrying tag, newest first.
func (c *CachedRepository) FindByTag(ctx context.Context, tag blog.Tag) ([]blog.BlogPostMeta, error) {
	return c.metaList(ctx, TagKey(tag), func(ctx context.Context) ([]blog.BlogPostMeta, error) {
		return c.base.FindByTag(ctx, tag)
	})
}

// Search returns the posts matching query. Queries differing only in case or
// surrounding blanks share one entry.
func (c *CachedRepository) Search(ctx context.Context, query string) ([]blog.BlogPostMeta, error) {
	return c.metaList(ctx, SearchKey(query), func(ctx context.Context) ([]blog.BlogPostMeta, error) {
		return c.base.Search(ctx, query)
	})
}

// GetAllSlugs returns the slug of every stored post.
func (c *CachedRepository) GetAllSlugs(ctx context.Context) ([]blog.Slug, error) {
	slugs, err := cache.GetOrFetch(ctx, c.cache, c.track(AllSlugsKey()), c.base.GetAllSlugs)
	if err != nil {
		return nil, err
	}
	return slices.Clone(slugs), nil
}

// GetAllTags returns every tag with its post count, most used first.
func (c *CachedRepository) GetAllTags(ctx context.Context) ([]blog.TagCount, error) {
	counts, err := cache.GetOrFetch(ctx, c.cache, c.track(AllTagsKey()), c.base.GetAllTags)
	if err != nil {
		return nil, err
	}
	return slices.Clone(counts), nil
}

// Invalidate drops the entry stored for key, if any.
func (c *CachedRepository) Invalidate(ctx context.Context, key Key) error {
	serialized := c.serialize(key)
	c.keyRegistry.Delete(serialized)
	return c.cache.Delete(ctx, serialized)
}

// InvalidateAll drops every entry this decorator has stored. Entries written by
// other decorators sharing the cache service are left alone.
func (c *CachedRepository) InvalidateAll(ctx context.Context) error {
	var keys []string
	c.keyRegistry.Range(func(key string, _ struct{}) bool {
		keys = append(keys, key)
		return true
	})
	if len(keys) == 0 {
		return nil
	}

	for _, key := range keys {
		c.keyRegistry.Delete(key)
	}

	if err := c.cache.InvalidateKeys(ctx, keys); err != nil {
		c.logger.Warn("cache invalidation failed", "namespace", c.namespace, "keys", len(keys), "error", err)
		return err
	}

	c.logger.Debug("cache invalidated", "namespace", c.namespace, "keys", len(keys))
	return nil
}

// TrackedKeys returns the serialized keys this decorator has handed to the cache.
func (c *CachedRepository) TrackedKeys() []string {
	keys := make([]string, 0, c.keyRegistry.Size())
	c.keyRegistry.Range(func(key string, _ struct{}) bool {
		keys = append(keys, key)
		return true
	})
	slices.Sort(keys)
	return keys
}

// metaList caches a listing. Callers receive their own copy of the slice so
// reordering it cannot corrupt the cached entry.
func (c *CachedRepository) metaList(ctx context.Context, key Key, fetch cache.FetchFn[[]blog.BlogPostMeta]) ([]blog.BlogPostMeta, error) {
	posts, err := cache.GetOrFetch(ctx, c.cache, c.track(key), fetch)
	if err != nil {
		return nil, err
	}
	return slices.Clone(posts), nil
}

func (c *CachedRepository) serialize(key Key) string {
	return c.keySerializer.SerializeKey(c.namespace, key.Op.String(), key.Arg)
}

// track registers a cache key in the key registry for later invalidation
func (c *CachedRepository) track(key Key) string {
	serialized := c.serialize(key)
	c.keyRegistry.Store(serialized, struct{}{})
	return serialized
}
