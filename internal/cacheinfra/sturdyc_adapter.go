package cacheinfra

import (
	"context"
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/viccon/sturdyc"
)

// Config holds the configuration for the sturdyc cache adapter.
type Config struct {
	// Capacity defines the maximum number of entries that the cache can store.
	Capacity int

	// NumShards determines the number of cache shards for concurrent access.
	// Default: 256
	NumShards int

	// TTL is the time-to-live of every cached entry. Expired entries are fetched again.
	TTL time.Duration

	// EvictionPercentage specifies what percentage of entries to evict
	// when the cache reaches its capacity. Must be between 1-100.
	EvictionPercentage int

	// EarlyRefresh enables stale-while-revalidate refreshes. Nil keeps TTL a hard bound.
	EarlyRefresh *EarlyRefreshConfig

	// MissingRecordStorage remembers keys whose fetch reported not found,
	// so repeated lookups of absent posts do not rescan the source.
	MissingRecordStorage bool

	// EvictionInterval sets how often the cache checks for expired entries.
	// Zero value uses the default interval.
	EvictionInterval time.Duration
}

// EarlyRefreshConfig configures early refresh behavior.
type EarlyRefreshConfig struct {
	MinAsyncRefreshTime time.Duration
	MaxAsyncRefreshTime time.Duration
	SyncRefreshTime     time.Duration
	RetryBaseDelay      time.Duration
}

// ToSturdycOptions converts the Config to sturdyc.Option slice.
// Capacity, NumShards, TTL and EvictionPercentage go to sturdyc.New directly.
func (c Config) ToSturdycOptions() []sturdyc.Option {
	var options []sturdyc.Option

	if c.EarlyRefresh != nil {
		options = append(options, sturdyc.WithEarlyRefreshes(
			c.EarlyRefresh.MinAsyncRefreshTime,
			c.EarlyRefresh.MaxAsyncRefreshTime,
			c.EarlyRefresh.SyncRefreshTime,
			c.EarlyRefresh.RetryBaseDelay,
		))
	}

	if c.MissingRecordStorage {
		options = append(options, sturdyc.WithMissingRecordStorage())
	}

	if c.EvictionInterval > 0 {
		options = append(options, sturdyc.WithEvictionInterval(c.EvictionInterval))
	}

	return options
}

type fieldCheck struct {
	field string
	value any
	rules []validation.Rule
}

// Validate checks if the configuration values are valid.
// The first invalid field is reported as a *ConfigError.
func (c Config) Validate() error {
	positive := func(min any) []validation.Rule {
		return []validation.Rule{validation.Required, validation.Min(min)}
	}
	nonNegative := []validation.Rule{validation.Min(time.Duration(0))}

	checks := []fieldCheck{
		{"Capacity", c.Capacity, positive(1)},
		{"NumShards", c.NumShards, positive(1)},
		{"TTL", c.TTL, positive(time.Nanosecond)},
		{"EvictionPercentage", c.EvictionPercentage, append(positive(1), validation.Max(100))},
		{"EvictionInterval", c.EvictionInterval, nonNegative},
	}
	if e := c.EarlyRefresh; e != nil {
		// sturdyc panics unless min <= max <= sync.
		checks = append(checks,
			fieldCheck{"EarlyRefresh.MinAsyncRefreshTime", e.MinAsyncRefreshTime, nonNegative},
			fieldCheck{"EarlyRefresh.MaxAsyncRefreshTime", e.MaxAsyncRefreshTime, []validation.Rule{validation.Min(e.MinAsyncRefreshTime)}},
			fieldCheck{"EarlyRefresh.SyncRefreshTime", e.SyncRefreshTime, []validation.Rule{validation.Min(e.MaxAsyncRefreshTime)}},
			fieldCheck{"EarlyRefresh.RetryBaseDelay", e.RetryBaseDelay, nonNegative},
		)
	}

	for _, check := range checks {
		if err := validation.Validate(check.value, check.rules...); err != nil {
			return &ConfigError{Field: check.field, Message: err.Error()}
		}
	}

	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "config error in field " + e.Field + ": " + e.Message
}

// sturdycService wraps a sturdyc client providing caching behaviour.
type sturdycService struct {
	client   *sturdyc.Client[any]
	notFound error
}

// NewSturdycService creates a new sturdyc cache service adapter.
//
// notFound is the caller's not-found sentinel. A fetch failing with an error that
// matches it is translated to sturdyc.ErrNotFound, so missing-record storage can
// remember it, and every not-found answer from sturdyc is reported back as notFound.
func NewSturdycService(cfg Config, notFound error) (*sturdycService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := sturdyc.New[any](
		cfg.Capacity,
		cfg.NumShards,
		cfg.TTL,
		cfg.EvictionPercentage,
		cfg.ToSturdycOptions()...,
	)

	return &sturdycService{client: client, notFound: notFound}, nil
}

// GetOrFetch implements cache.CacheService.GetOrFetch.
// Concurrent calls for the same cold key share one fetch. Fetch errors other than
// not found are returned unchanged and nothing is cached for them.
func (s *sturdycService) GetOrFetch(ctx context.Context, key string, fetchFn func(context.Context) (any, error)) (any, error) {
	if fetchFn == nil {
		return nil, &ConfigError{Field: "fetchFn", Message: "cannot be nil"}
	}

	value, err := s.client.GetOrFetch(ctx, key, func(ctx context.Context) (any, error) {
		v, err := fetchFn(ctx)
		if err != nil && s.notFound != nil && errors.Is(err, s.notFound) {
			err = sturdyc.ErrNotFound
		}
		// sturdyc rejects an untyped nil result, hiding err behind ErrInvalidType.
		if v == nil {
			return nilValue{}, err
		}
		return v, err
	})
	if err != nil {
		if s.isNotFound(err) {
			return nil, s.notFound
		}
		return nil, err
	}

	if _, ok := value.(nilValue); ok {
		return nil, nil
	}
	return value, nil
}

// nilValue stands in for a nil fetch result inside the sturdyc client.
type nilValue struct{}

func (s *sturdycService) isNotFound(err error) bool {
	if s.notFound == nil {
		return false
	}
	return errors.Is(err, sturdyc.ErrNotFound) || errors.Is(err, sturdyc.ErrMissingRecord)
}

// Delete implements cache.CacheService.Delete.
func (s *sturdycService) Delete(ctx context.Context, key string) error {
	s.client.Delete(key)
	return nil
}

// DeleteByPrefix implements cache.CacheService.DeleteByPrefix.
// An empty prefix removes every entry.
func (s *sturdycService) DeleteByPrefix(ctx context.Context, prefix string) error {
	for _, key := range s.client.ScanKeys() {
		if strings.HasPrefix(key, prefix) {
			s.client.Delete(key)
		}
	}

	return nil
}

// InvalidateKeys implements cache.CacheService.InvalidateKeys.
func (s *sturdycService) InvalidateKeys(ctx context.Context, keys []string) error {
	for _, key := range keys {
		s.client.Delete(key)
	}
	return nil
}

// Len returns the number of entries currently held, including missing-record markers.
func (s *sturdycService) Len() int {
	return s.client.Size()
}
