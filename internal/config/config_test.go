package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const testYAML = `services:
  course_url: "http://courses.example.com"
  profile_url: "http://profile.example.com"
  chat_url: "http://chat.example.com"
http:
  timeout: "5s"
  retry_max: 2
  retry_interval: "250ms"
  page_size: 20
cache:
  ttl: "90s"
  max_entries: 128
store:
  path: "data/test.db"
log:
  level: "info"
  format: "json"
`

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

func TestLoad_FullYAML(t *testing.T) {
	path := writeTestConfig(t, testYAML)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	// Services
	if cfg.Services.CourseURL != "http://courses.example.com" {
		t.Errorf("Services.CourseURL = %q", cfg.Services.CourseURL)
	}
	if cfg.Services.ProfileURL != "http://profile.example.com" {
		t.Errorf("Services.ProfileURL = %q", cfg.Services.ProfileURL)
	}
	if cfg.Services.ChatURL != "http://chat.example.com" {
		t.Errorf("Services.ChatURL = %q", cfg.Services.ChatURL)
	}

	// HTTP
	if cfg.HTTP.TimeoutDuration() != 5*time.Second {
		t.Errorf("TimeoutDuration = %v, want 5s", cfg.HTTP.TimeoutDuration())
	}
	if cfg.HTTP.RetryMax != 2 {
		t.Errorf("RetryMax = %d, want 2", cfg.HTTP.RetryMax)
	}
	if cfg.HTTP.RetryIntervalDuration() != 250*time.Millisecond {
		t.Errorf("RetryIntervalDuration = %v, want 250ms", cfg.HTTP.RetryIntervalDuration())
	}
	if cfg.HTTP.EffectivePageSize() != 20 {
		t.Errorf("EffectivePageSize = %d, want 20", cfg.HTTP.EffectivePageSize())
	}

	// Cache
	if cfg.Cache.TTLDuration() != 90*time.Second {
		t.Errorf("TTLDuration = %v, want 90s", cfg.Cache.TTLDuration())
	}
	if cfg.Cache.EffectiveMaxEntries() != 128 {
		t.Errorf("EffectiveMaxEntries = %d, want 128", cfg.Cache.EffectiveMaxEntries())
	}

	// Store and log
	if cfg.Store.Path != "data/test.db" {
		t.Errorf("Store.Path = %q", cfg.Store.Path)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v", cfg.Log)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeTestConfig(t, testYAML)

	t.Setenv("AULA__HTTP__TIMEOUT", "3s")
	t.Setenv("AULA__LOG__LEVEL", "error")

	// Keys with single underscores must survive the __ split.
	t.Setenv("AULA__SERVICES__COURSE_URL", "http://override.example.com")
	t.Setenv("AULA__HTTP__RETRY_MAX", "5")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.HTTP.TimeoutDuration() != 3*time.Second {
		t.Errorf("TimeoutDuration = %v, want 3s (env override)", cfg.HTTP.TimeoutDuration())
	}
	if cfg.Log.Level != "error" {
		t.Errorf("Log.Level = %q, want error (env override)", cfg.Log.Level)
	}
	if cfg.Services.CourseURL != "http://override.example.com" {
		t.Errorf("Services.CourseURL = %q (env override)", cfg.Services.CourseURL)
	}
	if cfg.HTTP.RetryMax != 5 {
		t.Errorf("HTTP.RetryMax = %d, want 5 (env override)", cfg.HTTP.RetryMax)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantSub string
	}{
		{"missing course url", func(c *Config) { c.Services.CourseURL = "" }, "services.course_url is required"},
		{"bad url scheme", func(c *Config) { c.Services.ChatURL = "ftp://chat" }, "scheme must be http or https"},
		{"url without host", func(c *Config) { c.Services.ProfileURL = "http://" }, "host is required"},
		{"bad timeout", func(c *Config) { c.HTTP.Timeout = "fast" }, "invalid http.timeout"},
		{"negative timeout", func(c *Config) { c.HTTP.Timeout = "-1s" }, "must be greater than 0"},
		{"negative retry max", func(c *Config) { c.HTTP.RetryMax = -1 }, "invalid http.retry_max"},
		{"bad retry interval", func(c *Config) { c.HTTP.RetryInterval = "soon" }, "invalid http.retry_interval"},
		{"page size too large", func(c *Config) { c.HTTP.PageSize = 101 }, "invalid http.page_size"},
		{"bad cache ttl", func(c *Config) { c.Cache.TTL = "long" }, "invalid cache.ttl"},
		{"negative max entries", func(c *Config) { c.Cache.MaxEntries = -1 }, "invalid cache.max_entries"},
		{"missing store path", func(c *Config) { c.Store.Path = "  " }, "store.path is required"},
		{"bad log level", func(c *Config) { c.Log.Level = "verbose" }, "invalid log.level"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "invalid log.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error = %q, want substring %q", err.Error(), tt.wantSub)
			}
		})
	}
}

func TestValidate_NormalizesValues(t *testing.T) {
	cfg := validConfig()
	cfg.Services.CourseURL = "http://courses.example.com/"
	cfg.Log.Level = " INFO "
	cfg.Log.Format = "Text"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if cfg.Services.CourseURL != "http://courses.example.com" {
		t.Errorf("trailing slash not trimmed: %q", cfg.Services.CourseURL)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want normalized info", cfg.Log.Level)
	}
	if cfg.Log.Format != "text" {
		t.Errorf("Log.Format = %q, want normalized text", cfg.Log.Format)
	}
}

func TestDefaults(t *testing.T) {
	var h HTTPConfig
	if h.TimeoutDuration() != 10*time.Second {
		t.Errorf("default timeout = %v, want 10s", h.TimeoutDuration())
	}
	if h.RetryIntervalDuration() != 500*time.Millisecond {
		t.Errorf("default retry interval = %v, want 500ms", h.RetryIntervalDuration())
	}
	if h.EffectivePageSize() != 10 {
		t.Errorf("default page size = %d, want 10", h.EffectivePageSize())
	}

	var c CacheConfig
	if c.TTLDuration() != 2*time.Minute {
		t.Errorf("default ttl = %v, want 2m", c.TTLDuration())
	}
	if c.EffectiveMaxEntries() != 256 {
		t.Errorf("default max entries = %d, want 256", c.EffectiveMaxEntries())
	}
}

func validConfig() *Config {
	return &Config{
		Services: ServicesConfig{
			CourseURL:  "http://courses.example.com",
			ProfileURL: "http://profile.example.com",
			ChatURL:    "http://chat.example.com",
		},
		HTTP:  HTTPConfig{Timeout: "10s", RetryMax: 3, RetryInterval: "500ms", PageSize: 10},
		Cache: CacheConfig{TTL: "2m", MaxEntries: 256},
		Store: StoreConfig{Path: "data/aula.db"},
		Log:   LogConfig{Level: "info", Format: "text"},
	}
}
