// Package di wires the blog content components together once at start.
package di

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/goliatone/go-blog-content/api"
	"github.com/goliatone/go-blog-content/blog"
	"github.com/goliatone/go-blog-content/cache"
	"github.com/goliatone/go-blog-content/config"
	"github.com/goliatone/go-blog-content/filerepo"
	"github.com/goliatone/go-blog-content/internal/logger"
	"github.com/goliatone/go-blog-content/markdown"
	"github.com/goliatone/go-blog-content/repositorycache"
	"github.com/goliatone/go-blog-content/sqlrepo"
	"github.com/goliatone/go-blog-content/usecase"
	"github.com/goliatone/go-blog-content/watch"
)

// Container holds the singleton components of the blog content service.
// The read path is source, then the optional SQL index, then the optional cache.
type Container struct {
	config config.Config
	logger *slog.Logger

	cacheService  cache.CacheService
	keySerializer cache.KeySerializer

	source     *filerepo.Repository
	index      *sqlrepo.Repository
	cached     *repositorycache.CachedRepository
	repository blog.PostRepository

	renderer markdown.Renderer
	useCases *usecase.UseCases
	watcher  *watch.Watcher
	server   *api.Server
}

// NewContainer validates cfg and builds every component. When the SQL index is
// enabled it is filled from the content directory before returning.
func NewContainer(ctx context.Context, cfg config.Config, log *slog.Logger) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("di: invalid config: %w", err)
	}
	if log == nil {
		log = logger.Discard()
	}

	cacheService, err := cache.NewCacheService(cfg.Cache.CacheServiceConfig())
	if err != nil {
		return nil, fmt.Errorf("di: cache service: %w", err)
	}

	c := &Container{
		config:        cfg,
		logger:        log,
		cacheService:  cacheService,
		keySerializer: cache.NewDefaultKeySerializer(),
		renderer:      markdown.New(),
	}

	c.source = filerepo.New(cfg.Content.Dir,
		filerepo.WithLogger(log.With("component", "filerepo")),
		filerepo.WithDefaultCoverImage(cfg.Content.DefaultCoverImage),
		filerepo.WithDefaultAuthor(cfg.Content.DefaultAuthor),
	)
	c.repository = c.source

	if cfg.Index.Enabled {
		index, err := sqlrepo.Open(ctx, cfg.Index.Driver, cfg.Index.DSN,
			sqlrepo.WithLogger(log.With("component", "sqlrepo")))
		if err != nil {
			return nil, fmt.Errorf("di: open index: %w", err)
		}
		c.index = index
		c.repository = index

		if err := c.reimport(ctx); err != nil {
			_ = index.Close()
			return nil, err
		}
	}

	if cfg.Cache.Enabled {
		c.cached = c.NewCachedRepository(c.repository, cfg.Cache.Namespace)
		c.repository = c.cached
	}

	c.useCases = usecase.New(c.repository, c.renderer, log.With("component", "usecase"))
	c.server = api.NewServer(c.useCases,
		api.WithLogger(log.With("component", "api")),
		api.WithCORSOrigins(cfg.Server.CORSOrigins),
	)

	if cfg.Content.Watch {
		w, err := watch.New(cfg.Content.Dir, c.onContentChange,
			watch.WithDebounce(cfg.Content.WatchDebounce),
			watch.WithLogger(log.With("component", "watch")),
		)
		if err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("di: content watcher: %w", err)
		}
		c.watcher = w
	}

	return c, nil
}

// NewContainerWithDefaults builds a container from the default configuration
// reading posts from contentDir.
func NewContainerWithDefaults(ctx context.Context, contentDir string) (*Container, error) {
	cfg, err := config.Load("")
	if err != nil {
		return nil, err
	}
	cfg.Content.Dir = contentDir
	return NewContainer(ctx, *cfg, nil)
}

// CacheService returns the singleton cache service instance.
func (c *Container) CacheService() cache.CacheService {
	return c.cacheService
}

// KeySerializer returns the singleton key serializer instance.
func (c *Container) KeySerializer() cache.KeySerializer {
	return c.keySerializer
}

// Config returns a copy of the configuration used by this container.
func (c *Container) Config() config.Config {
	return c.config
}

func (c *Container) Logger() *slog.Logger {
	return c.logger
}

// Source returns the file-backed repository over the content directory.
func (c *Container) Source() *filerepo.Repository {
	return c.source
}

// Index returns the SQL mirror, or nil when the index is disabled.
func (c *Container) Index() *sqlrepo.Repository {
	return c.index
}

// CachedRepository returns the caching decorator, or nil when caching is disabled.
func (c *Container) CachedRepository() *repositorycache.CachedRepository {
	return c.cached
}

// Repository returns the outermost repository the use cases read from.
func (c *Container) Repository() blog.PostRepository {
	return c.repository
}

func (c *Container) Renderer() markdown.Renderer {
	return c.renderer
}

func (c *Container) UseCases() *usecase.UseCases {
	return c.useCases
}

// Handler returns the HTTP API.
func (c *Container) Handler() http.Handler {
	return c.server
}

// Watcher returns the content watcher, or nil when watching is disabled.
func (c *Container) Watcher() *watch.Watcher {
	return c.watcher
}

// NewCachedRepository wraps base with a decorator sharing the container's cache
// service. Each decorator over the same service needs its own namespace.
func (c *Container) NewCachedRepository(base blog.PostRepository, namespace string) *repositorycache.CachedRepository {
	return repositorycache.New(base, c.cacheService, c.keySerializer,
		repositorycache.WithNamespace(namespace),
		repositorycache.WithLogger(c.logger.With("component", "repositorycache", "namespace", namespace)),
	)
}

// Reindex refreshes derived state after the content directory changed: the SQL
// index is rebuilt and every cached read is dropped.
func (c *Container) Reindex(ctx context.Context) error {
	if err := c.reimport(ctx); err != nil {
		return err
	}
	if c.cached != nil {
		if err := c.cached.InvalidateAll(ctx); err != nil {
			return fmt.Errorf("di: invalidate cache: %w", err)
		}
	}
	return nil
}

func (c *Container) reimport(ctx context.Context) error {
	if c.index == nil {
		return nil
	}
	n, err := c.index.Import(ctx, c.source)
	if err != nil {
		return fmt.Errorf("di: import index: %w", err)
	}
	c.logger.Info("content indexed", "posts", n)
	return nil
}

func (c *Container) onContentChange(ctx context.Context) {
	if err := c.Reindex(ctx); err != nil {
		c.logger.Error("reindex failed", "error", err)
	}
}

// Run blocks until ctx is cancelled, processing content changes when the
// watcher is enabled.
func (c *Container) Run(ctx context.Context) error {
	if c.watcher == nil {
		<-ctx.Done()
		return nil
	}
	return c.watcher.Run(ctx)
}

// Close releases the watcher and the SQL index.
func (c *Container) Close() error {
	var errs []error
	if c.watcher != nil {
		errs = append(errs, c.watcher.Close())
	}
	if c.index != nil {
		errs = append(errs, c.index.Close())
	}
	return errors.Join(errs...)
}
