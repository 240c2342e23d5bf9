// Package config loads the blog content service configuration from defaults,
// an optional YAML file and BLOG_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/viper"

	"github.com/goliatone/go-blog-content/cache"
	"github.com/goliatone/go-blog-content/internal/logger"
	"github.com/goliatone/go-blog-content/sqlrepo"
)

// EnvPrefix prefixes every environment override, e.g. BLOG_CONTENT_DIR.
const EnvPrefix = "BLOG"

// Config holds all application configuration.
type Config struct {
	Content ContentConfig `mapstructure:"content"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Index   IndexConfig   `mapstructure:"index"`
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
}

// ContentConfig describes the markdown source directory.
type ContentConfig struct {
	Dir               string        `mapstructure:"dir"`
	DefaultCoverImage string        `mapstructure:"default_cover_image"`
	DefaultAuthor     string        `mapstructure:"default_author"`
	Watch             bool          `mapstructure:"watch"`
	WatchDebounce     time.Duration `mapstructure:"watch_debounce"`
}

// CacheConfig configures the read-through cache in front of the repository.
type CacheConfig struct {
	Enabled              bool          `mapstructure:"enabled"`
	TTL                  time.Duration `mapstructure:"ttl"`
	Capacity             int           `mapstructure:"capacity"`
	NumShards            int           `mapstructure:"num_shards"`
	EvictionPercentage   int           `mapstructure:"eviction_percentage"`
	MissingRecordStorage bool          `mapstructure:"missing_record_storage"`
	RefreshAfter         time.Duration `mapstructure:"refresh_after"`
	Namespace            string        `mapstructure:"namespace"`
}

// IndexConfig configures the optional SQL mirror of the content directory.
type IndexConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Driver  string `mapstructure:"driver"`
	DSN     string `mapstructure:"dsn"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("content.dir", "./content")
	v.SetDefault("content.default_cover_image", "/images/default-cover.jpg")
	v.SetDefault("content.default_author", "Anonymous")
	v.SetDefault("content.watch", false)
	v.SetDefault("content.watch_debounce", "250ms")

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl", "5m")
	v.SetDefault("cache.capacity", 10000)
	v.SetDefault("cache.num_shards", 256)
	v.SetDefault("cache.eviction_percentage", 10)
	v.SetDefault("cache.missing_record_storage", true)
	v.SetDefault("cache.refresh_after", "0s")
	v.SetDefault("cache.namespace", "posts")

	v.SetDefault("index.enabled", false)
	v.SetDefault("index.driver", sqlrepo.DriverSQLite)
	v.SetDefault("index.dsn", "file:blog_index?mode=memory&cache=shared")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.cors_origins", []string{"*"})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", logger.FormatJSON)
}

// Load reads configuration from defaults, the YAML file at path (optional) and
// the environment, in increasing precedence. A file that does not exist is not an
// error; one that cannot be read or parsed is.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var parseErr viper.ConfigParseError
			switch {
			case errors.Is(err, fs.ErrNotExist):
			case errors.As(err, &parseErr):
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			default:
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Validate checks every section and returns ozzo validation.Errors keyed by
// section name.
func (c Config) Validate() error {
	return validation.Errors{
		"content": c.Content.Validate(),
		"cache":   c.Cache.Validate(),
		"index":   c.Index.Validate(),
		"server":  c.Server.Validate(),
		"log":     c.Log.Validate(),
	}.Filter()
}

func (c ContentConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Dir, validation.Required),
		validation.Field(&c.WatchDebounce, validation.When(c.Watch, validation.Required, validation.Min(time.Millisecond))),
	)
}

func (c CacheConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.TTL, validation.When(c.Enabled, validation.Required, validation.Min(time.Millisecond))),
		validation.Field(&c.Capacity, validation.When(c.Enabled, validation.Required, validation.Min(1))),
		validation.Field(&c.NumShards, validation.When(c.Enabled, validation.Required, validation.Min(1))),
		validation.Field(&c.EvictionPercentage, validation.When(c.Enabled, validation.Required, validation.Min(1), validation.Max(100))),
		validation.Field(&c.RefreshAfter, validation.Min(time.Duration(0)), validation.When(c.Enabled, validation.Max(c.TTL))),
	)
}

func (c IndexConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Driver, validation.When(c.Enabled, validation.Required, validation.In(sqlrepo.DriverSQLite, sqlrepo.DriverPostgres))),
		validation.Field(&c.DSN, validation.When(c.Enabled, validation.Required)),
	)
}

func (c ServerConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Addr, validation.Required),
		validation.Field(&c.ReadTimeout, validation.Min(time.Duration(0))),
		validation.Field(&c.WriteTimeout, validation.Min(time.Duration(0))),
		validation.Field(&c.ShutdownTimeout, validation.Required),
	)
}

func (c LogConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Level, validation.By(func(value any) error {
			level, _ := value.(string)
			if level != "" && !logger.ValidLevel(level) {
				return fmt.Errorf("unknown level %q", level)
			}
			return nil
		})),
		validation.Field(&c.Format, validation.In(logger.FormatJSON, logger.FormatText)),
	)
}

// CacheServiceConfig converts the section into the cache package configuration,
// keeping cache defaults for anything the section does not expose.
func (c CacheConfig) CacheServiceConfig() cache.Config {
	cfg := cache.DefaultConfig()
	cfg.TTL = c.TTL
	cfg.Capacity = c.Capacity
	cfg.NumShards = c.NumShards
	cfg.EvictionPercentage = c.EvictionPercentage
	cfg.MissingRecordStorage = c.MissingRecordStorage
	cfg.RefreshAfter = c.RefreshAfter
	return cfg
}

// LoggerConfig converts the section into logger settings.
func (c LogConfig) LoggerConfig() logger.Config {
	return logger.Config{Level: c.Level, Format: c.Format}
}
