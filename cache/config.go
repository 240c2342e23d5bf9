package cache

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-blog-content/internal/cacheinfra"
)

// RefreshRetryDelay is the base backoff after a failed background refresh.
const RefreshRetryDelay = time.Second

// Config sizes the cache service. Every entry lives for TTL.
type Config struct {
	TTL                time.Duration
	Capacity           int
	NumShards          int
	EvictionPercentage int

	// MissingRecordStorage remembers ErrNotFound answers for the TTL.
	MissingRecordStorage bool

	// RefreshAfter turns on stale-while-revalidate: a hit on an entry older than
	// RefreshAfter is served as is and fetched again in the background. Zero keeps
	// TTL a hard staleness bound. It cannot exceed TTL.
	RefreshAfter time.Duration
}

// DefaultConfig returns a five minute TTL over 10000 entries in 256 shards, with
// missing records stored and background refreshes off.
func DefaultConfig() Config {
	return Config{
		TTL:                  5 * time.Minute,
		Capacity:             10000,
		NumShards:            256,
		EvictionPercentage:   10,
		MissingRecordStorage: true,
	}
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	if err := validation.Validate(c.RefreshAfter,
		validation.Min(time.Duration(0)),
		validation.Max(c.TTL),
	); err != nil {
		return fmt.Errorf("cache: RefreshAfter: %w", err)
	}
	return c.adapterConfig().Validate()
}

// NewCacheService constructs the sturdyc-backed cache service.
func NewCacheService(cfg Config) (CacheService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cacheinfra.NewSturdycService(cfg.adapterConfig(), ErrNotFound)
}

func (c Config) adapterConfig() cacheinfra.Config {
	cfg := cacheinfra.Config{
		Capacity:             c.Capacity,
		NumShards:            c.NumShards,
		TTL:                  c.TTL,
		EvictionPercentage:   c.EvictionPercentage,
		MissingRecordStorage: c.MissingRecordStorage,
	}
	if c.RefreshAfter > 0 {
		cfg.EarlyRefresh = &cacheinfra.EarlyRefreshConfig{
			MinAsyncRefreshTime: c.RefreshAfter,
			MaxAsyncRefreshTime: c.RefreshAfter,
			SyncRefreshTime:     c.TTL,
			RetryBaseDelay:      RefreshRetryDelay,
		}
	}
	return cfg
}
