package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config is the top-level application configuration.
type Config struct {
	Services ServicesConfig `koanf:"services"`
	HTTP     HTTPConfig     `koanf:"http"`
	Cache    CacheConfig    `koanf:"cache"`
	Store    StoreConfig    `koanf:"store"`
	Log      LogConfig      `koanf:"log"`
}

// ServicesConfig holds the base URL of each REST microservice.
type ServicesConfig struct {
	CourseURL  string `koanf:"course_url"`
	ProfileURL string `koanf:"profile_url"`
	ChatURL    string `koanf:"chat_url"`
}

// HTTPConfig holds outbound HTTP client settings.
type HTTPConfig struct {
	Timeout       string `koanf:"timeout"`
	RetryMax      int    `koanf:"retry_max"`
	RetryInterval string `koanf:"retry_interval"`
	PageSize      int    `koanf:"page_size"`
}

// CacheConfig holds query cache settings.
type CacheConfig struct {
	TTL        string `koanf:"ttl"`
	MaxEntries int    `koanf:"max_entries"`
}

// StoreConfig holds local storage settings (session persistence).
type StoreConfig struct {
	Path string `koanf:"path"`
}

// LogConfig holds logging settings. The console stream writes to stderr so
// rendered screens keep stdout; Quiet silences it. Format applies to the
// log file.
type LogConfig struct {
	Level           string `koanf:"level"`
	Format          string `koanf:"format"`
	Quiet           bool   `koanf:"quiet"`
	FilePath        string `koanf:"file_path"`
	MaxSizeMB       int    `koanf:"max_size_mb"`
	RetentionDays   int    `koanf:"retention_days"`
	MaxBackups      int    `koanf:"max_backups"`
	CompressRotated *bool  `koanf:"compress_rotated"`
}

// Load reads configuration from a YAML file and overlays environment
// variables. Environment variables use the prefix "AULA__" and
// double-underscore as the hierarchy separator. Single underscores are
// preserved as part of the key name. For example, AULA__HTTP__TIMEOUT=5s
// overrides http.timeout and AULA__SERVICES__COURSE_URL overrides
// services.course_url.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	// Load YAML config file.
	if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
	}

	// Overlay environment variables with prefix AULA__.
	// AULA__HTTP__TIMEOUT -> http.timeout
	// AULA__SERVICES__COURSE_URL -> services.course_url
	if err := k.Load(env.Provider("AULA__", ".", func(s string) string {
		key := strings.TrimPrefix(s, "AULA__")
		key = strings.ToLower(key)
		key = strings.ReplaceAll(key, "__", ".")
		return key
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cross-field constraints and supported values.
func (c *Config) Validate() error {
	// Validate service base URLs.
	urls := []struct {
		name  string
		value *string
	}{
		{"services.course_url", &c.Services.CourseURL},
		{"services.profile_url", &c.Services.ProfileURL},
		{"services.chat_url", &c.Services.ChatURL},
	}
	for _, u := range urls {
		v := strings.TrimSpace(*u.value)
		if v == "" {
			return fmt.Errorf("%s is required", u.name)
		}
		parsed, err := url.Parse(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", u.name, *u.value, err)
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return fmt.Errorf("invalid %s %q: scheme must be http or https", u.name, *u.value)
		}
		if parsed.Host == "" {
			return fmt.Errorf("invalid %s %q: host is required", u.name, *u.value)
		}
		*u.value = strings.TrimRight(v, "/")
	}

	// Normalize optional duration fields: whitespace-only means unset.
	c.HTTP.Timeout = strings.TrimSpace(c.HTTP.Timeout)
	c.HTTP.RetryInterval = strings.TrimSpace(c.HTTP.RetryInterval)
	c.Cache.TTL = strings.TrimSpace(c.Cache.TTL)

	// Validate http.timeout (optional; must be a valid positive duration if set).
	if t := c.HTTP.Timeout; t != "" {
		d, err := time.ParseDuration(t)
		if err != nil {
			return fmt.Errorf("invalid http.timeout %q: %w", c.HTTP.Timeout, err)
		}
		if d <= 0 {
			return fmt.Errorf("invalid http.timeout %q: must be greater than 0", c.HTTP.Timeout)
		}
	}

	// Validate http.retry_max.
	if c.HTTP.RetryMax < 0 {
		return fmt.Errorf("invalid http.retry_max %d: must not be negative", c.HTTP.RetryMax)
	}

	// Validate http.retry_interval (optional; must be a valid positive duration if set).
	if ri := c.HTTP.RetryInterval; ri != "" {
		d, err := time.ParseDuration(ri)
		if err != nil {
			return fmt.Errorf("invalid http.retry_interval %q: %w", c.HTTP.RetryInterval, err)
		}
		if d <= 0 {
			return fmt.Errorf("invalid http.retry_interval %q: must be greater than 0", c.HTTP.RetryInterval)
		}
	}

	// Validate http.page_size.
	if c.HTTP.PageSize < 0 || c.HTTP.PageSize > 100 {
		return fmt.Errorf("invalid http.page_size %d: must be between 0 and 100", c.HTTP.PageSize)
	}

	// Validate cache.ttl (optional; must be a valid positive duration if set).
	if t := c.Cache.TTL; t != "" {
		d, err := time.ParseDuration(t)
		if err != nil {
			return fmt.Errorf("invalid cache.ttl %q: %w", c.Cache.TTL, err)
		}
		if d <= 0 {
			return fmt.Errorf("invalid cache.ttl %q: must be greater than 0", c.Cache.TTL)
		}
	}

	// Validate cache.max_entries.
	if c.Cache.MaxEntries < 0 {
		return fmt.Errorf("invalid cache.max_entries %d: must not be negative", c.Cache.MaxEntries)
	}

	// Validate store.path.
	storePath := strings.TrimSpace(c.Store.Path)
	if storePath == "" {
		return fmt.Errorf("store.path is required")
	}
	c.Store.Path = storePath

	// Validate log.level.
	level := strings.ToLower(strings.TrimSpace(c.Log.Level))
	switch level {
	case "debug", "info", "warn", "error":
		c.Log.Level = level
	default:
		return fmt.Errorf("invalid log.level %q: must be one of %q, %q, %q, %q", c.Log.Level, "debug", "info", "warn", "error")
	}

	// Validate log.format.
	format := strings.ToLower(strings.TrimSpace(c.Log.Format))
	switch format {
	case "text", "json":
		c.Log.Format = format
	default:
		return fmt.Errorf("invalid log.format %q: must be one of %q, %q", c.Log.Format, "text", "json")
	}

	return nil
}

// TimeoutDuration returns the per-request timeout, defaulting to 10s.
func (c *HTTPConfig) TimeoutDuration() time.Duration {
	return parseDurationOr(c.Timeout, 10*time.Second)
}

// RetryIntervalDuration returns the initial retry backoff, defaulting to 500ms.
func (c *HTTPConfig) RetryIntervalDuration() time.Duration {
	return parseDurationOr(c.RetryInterval, 500*time.Millisecond)
}

// EffectivePageSize returns the list page size, defaulting to 10.
func (c *HTTPConfig) EffectivePageSize() int {
	if c.PageSize <= 0 {
		return 10
	}
	return c.PageSize
}

// TTLDuration returns the cache freshness window, defaulting to 2 minutes.
func (c *CacheConfig) TTLDuration() time.Duration {
	return parseDurationOr(c.TTL, 2*time.Minute)
}

// EffectiveMaxEntries returns the cache size bound, defaulting to 256.
func (c *CacheConfig) EffectiveMaxEntries() int {
	if c.MaxEntries <= 0 {
		return 256
	}
	return c.MaxEntries
}

// parseDurationOr parses v, falling back to def when v is empty or invalid.
// Validate rejects invalid values earlier; the fallback keeps these accessors
// total when called with an unchecked config.
func parseDurationOr(v string, def time.Duration) time.Duration {
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
