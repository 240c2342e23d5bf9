// Package repositorycache provides a caching decorator for blog.PostRepository.
//
// # Overview
//
// CachedRepository wraps any blog.PostRepository and serves every read through a
// cache.CacheService. An entry is reused until it is older than the service TTL;
// after that the next read goes to the wrapped repository again. The decorator
// never invalidates on its own: content changes become visible once entries expire,
// or immediately when the owner calls InvalidateAll.
//
// # Basic Usage
//
//	service, err := cache.NewCacheService(cache.DefaultConfig())
//	base := filerepo.New("./content")
//	cached := repositorycache.New(base, service, cache.NewDefaultKeySerializer())
//
//	post, err := cached.FindBySlug(ctx, slug)
//
// # Keys
//
// Each read maps to a Key, one Operation and one argument, serialized as
// namespace::operation::argument:
//
//   - FindBySlug: posts::post::<slug>
//   - FindAll: posts::posts::all
//   - FindByTag: posts::tag::<tag as given>
//   - GetAllSlugs: posts::slugs::all
//   - GetAllTags: posts::tags::all
//   - Search: posts::search::<lowercased, trimmed query>
//
// # Missing Posts
//
// A FindBySlug that finds nothing is stored as a missing record, so repeated
// lookups of an unknown slug are answered from the cache as (nil, nil).
//
// # Errors
//
// Errors from the wrapped repository are returned unchanged and nothing is cached
// for them; the next call retries.
//
// # Sharing A Cache Service
//
// Several decorators may share one cache service as long as each uses its own
// namespace (WithNamespace). A decorator wrapping other decorators renames itself
// when its namespace is already used below it, so New(New(base, svc, ks), svc, ks)
// keys the outer layer under "posts_2".
// InvalidateAll only removes keys registered by the decorator it is called on.
package repositorycache
