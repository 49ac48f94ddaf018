// Package config provides configuration management for m3ugen using Viper.
// It supports configuration from files, environment variables, and defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// Default configuration values.
const (
	DefaultOutput = "output/playlist.m3u"

	defaultHTTPTimeout     = 60 * time.Second
	defaultRetryAttempts   = 3
	defaultRetryDelay      = 5 * time.Second
	defaultMaxResponseSize = 50 * 1024 * 1024 // 50MB
	defaultWatchSchedule   = "0 */6 * * *"    // every 6 hours
	defaultGroup           = "General"
	defaultExtension       = "ts"
)

// Config holds all configuration for the application.
type Config struct {
	// Output is the playlist file path the generator writes to.
	Output string `mapstructure:"output"`

	// Channels are static channel definitions converted as-is.
	Channels []StaticChannel `mapstructure:"channels"`

	// Servers are Xtream-Codes panels to fetch live streams from.
	Servers []ServerConfig `mapstructure:"servers"`

	// Text configures the delimited-text channel list source.
	Text TextConfig `mapstructure:"text"`

	Logging LoggingConfig `mapstructure:"logging"`
	Ingest  IngestConfig  `mapstructure:"ingest"`
	Watch   WatchConfig   `mapstructure:"watch"`
}

// StaticChannel is a channel defined directly in the configuration file.
// Title/Name and Logo/StreamIcon are accepted interchangeably; Title and
// Logo win when both are present.
type StaticChannel struct {
	Title      string `mapstructure:"title"`
	Name       string `mapstructure:"name"`
	Logo       string `mapstructure:"logo"`
	StreamIcon string `mapstructure:"stream_icon"`
	URL        string `mapstructure:"url"`
	Group      string `mapstructure:"group"`
}

// DisplayName resolves the title/name alias pair.
func (c *StaticChannel) DisplayName() string {
	if c.Title != "" {
		return c.Title
	}
	return c.Name
}

// LogoURL resolves the logo/stream_icon alias pair.
func (c *StaticChannel) LogoURL() string {
	if c.Logo != "" {
		return c.Logo
	}
	return c.StreamIcon
}

// ServerConfig identifies one Xtream-Codes panel.
type ServerConfig struct {
	// Name is a label used in logs and source stats.
	Name string `mapstructure:"name"`

	// Host is the panel base URL. A trailing slash is stripped on load.
	Host string `mapstructure:"host"`

	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// TextConfig configures the delimited "name,url" channel list source.
type TextConfig struct {
	// Path is the text file location. Empty disables the source.
	Path string `mapstructure:"path"`

	// Extension is appended to rebuilt stream URLs: "ts", "m3u8" or "none".
	Extension string `mapstructure:"extension"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`  // debug, info, warn, error
	Format     string `mapstructure:"format"` // json, text
	AddSource  bool   `mapstructure:"add_source"`
	TimeFormat string `mapstructure:"time_format"`
}

// IngestConfig holds source ingestion configuration.
type IngestConfig struct {
	HTTPTimeout     Duration `mapstructure:"http_timeout"`
	RetryAttempts   int      `mapstructure:"retry_attempts"`
	RetryDelay      Duration `mapstructure:"retry_delay"`
	UserAgent       string   `mapstructure:"user_agent"`
	MaxResponseSize ByteSize `mapstructure:"max_response_size"`
}

// WatchConfig holds the watch-mode regeneration schedule.
type WatchConfig struct {
	// Schedule is a standard 5-field cron expression.
	Schedule string `mapstructure:"schedule"`
}

// Load reads configuration from file and environment variables.
// Environment variables take precedence over file configuration and are
// prefixed with M3UGEN_, using underscores for nesting.
// Example: M3UGEN_LOGGING_LEVEL=debug.
//
// When configPath is non-empty the file must exist and parse; otherwise
// config.{json,yaml} is searched for in the usual locations and a missing
// file falls back to defaults and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	SetDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/m3ugen")
		v.AddConfigPath("$HOME/.m3ugen")
	}

	v.SetEnvPrefix("M3UGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// No config file found on the search path; defaults and env vars apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(decodeHook())); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.sanitize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// decodeHook composes the mapstructure hooks needed for the custom
// Duration and ByteSize types on top of viper's defaults.
func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}

// SetDefaults configures default values for all configuration options.
// This should be called before reading the config file to ensure defaults are in place.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("output", DefaultOutput)

	// Text source defaults
	v.SetDefault("text.path", "")
	v.SetDefault("text.extension", defaultExtension)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.add_source", false)
	v.SetDefault("logging.time_format", time.RFC3339)

	// Ingest defaults
	v.SetDefault("ingest.http_timeout", defaultHTTPTimeout)
	v.SetDefault("ingest.retry_attempts", defaultRetryAttempts)
	v.SetDefault("ingest.retry_delay", defaultRetryDelay)
	v.SetDefault("ingest.user_agent", "")
	v.SetDefault("ingest.max_response_size", defaultMaxResponseSize)

	// Watch defaults
	v.SetDefault("watch.schedule", defaultWatchSchedule)
}

// sanitize trims whitespace and strips trailing slashes from server hosts.
func (c *Config) sanitize() {
	c.Output = strings.TrimSpace(c.Output)
	c.Text.Path = strings.TrimSpace(c.Text.Path)
	c.Text.Extension = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(c.Text.Extension)), ".")

	for i := range c.Servers {
		s := &c.Servers[i]
		s.Name = strings.TrimSpace(s.Name)
		s.Host = strings.TrimSuffix(strings.TrimSpace(s.Host), "/")
		s.Username = strings.TrimSpace(s.Username)
		s.Password = strings.TrimSpace(s.Password)
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Output == "" {
		return fmt.Errorf("output path is required")
	}

	if !c.HasSources() {
		return fmt.Errorf("no channel sources configured: set channels, servers or text.path")
	}

	for i, s := range c.Servers {
		if s.Host == "" {
			return fmt.Errorf("servers[%d]: host is required", i)
		}
		if s.Username == "" || s.Password == "" {
			return fmt.Errorf("servers[%d]: username and password are required", i)
		}
	}

	switch c.Text.Extension {
	case "ts", "m3u8", "none", "":
	default:
		return fmt.Errorf("text.extension must be one of: ts, m3u8, none")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	if c.Ingest.RetryAttempts < 0 {
		return fmt.Errorf("ingest.retry_attempts must not be negative")
	}

	return nil
}

// HasSources reports whether at least one channel source is configured.
func (c *Config) HasSources() bool {
	return len(c.Channels) > 0 || len(c.Servers) > 0 || c.Text.Path != ""
}

// StreamExtension returns the URL suffix for rebuilt text-source stream URLs.
func (t TextConfig) StreamExtension() string {
	switch t.Extension {
	case "none":
		return ""
	case "":
		return "." + defaultExtension
	default:
		return "." + t.Extension
	}
}
