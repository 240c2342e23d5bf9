// Package cache provides the read-through caching port used by repository decorators.
//
// # Overview
//
// The package exports two interfaces and their default implementations:
//
//   - CacheService: get-or-fetch with TTL expiry, plus key and prefix deletion
//   - KeySerializer: builds stable string keys from a namespace, an operation and its arguments
//
// NewCacheService returns the sturdyc-backed implementation. Every entry lives for
// Config.TTL; concurrent fetches for the same cold key share a single call to the source.
//
// # Basic Usage
//
//	service, err := cache.NewCacheService(cache.DefaultConfig())
//	serializer := cache.NewDefaultKeySerializer()
//	key := serializer.SerializeKey("posts", "tag", "react")
//
//	posts, err := cache.GetOrFetch(ctx, service, key, func(ctx context.Context) ([]blog.BlogPostMeta, error) {
//		return repo.FindByTag(ctx, tag)
//	})
//
// # Missing Records
//
// A fetch function may return ErrNotFound to report that the source has nothing for
// the key. With Config.MissingRecordStorage enabled the answer is remembered for the
// TTL and later lookups return ErrNotFound without calling the source.
//
// # Background Refresh
//
// Config.RefreshAfter is zero by default, so an entry is served unchanged until its
// TTL runs out. A positive value, at most TTL, serves older entries as they are
// while a background fetch replaces them. Failed refreshes are retried after
// RefreshRetryDelay.
//
// # Keys
//
// Keys have the form namespace::operation::arg. Arguments longer than
// DefaultMaxArgLength bytes are replaced with an xxhash digest prefixed by "h:".
// Colons and percent signs inside arguments are percent-encoded so the separator
// stays unambiguous. Prefix returns the prefix shared by all keys of a namespace,
// which DeleteByPrefix uses to drop them together.
//
// Errors returned by a fetch function, other than ErrNotFound, are propagated
// unchanged and never cached.
package cache
