package cache

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by a FetchFn to report that the source has no record
	// for the key. Services that store missing records remember it until the TTL
	// expires and keep answering ErrNotFound without calling the source again.
	ErrNotFound = errors.New("cache: record not found")

	// ErrInvalidResultType is returned by GetOrFetch when a cached value does not
	// have the type the caller asked for.
	ErrInvalidResultType = errors.New("cache: cached value has unexpected type")
)

// FetchFn is the function signature CacheService expects when fetching from the source of truth.
type FetchFn[T any] func(ctx context.Context) (T, error)

// CacheService exposes the read-through caching operations we need when decorating repositories.
type CacheService interface {
	GetOrFetch(ctx context.Context, key string, fetchFn func(context.Context) (any, error)) (any, error)
	Delete(ctx context.Context, key string) error
	DeleteByPrefix(ctx context.Context, prefix string) error
	InvalidateKeys(ctx context.Context, keys []string) error
}

// GetOrFetch is a type-safe wrapper function that provides generic support for CacheService.
func GetOrFetch[T any](ctx context.Context, service CacheService, key string, fetchFn FetchFn[T]) (T, error) {
	var zero T

	result, err := service.GetOrFetch(ctx, key, func(ctx context.Context) (any, error) {
		return fetchFn(ctx)
	})
	if err != nil {
		return zero, err
	}

	// A nil interface is the zero value of interface and pointer types.
	if result == nil {
		return zero, nil
	}

	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("%w: key %q holds %T", ErrInvalidResultType, key, result)
	}
	return typed, nil
}
