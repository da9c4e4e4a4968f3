package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Bounds for caller-supplied audit knobs. Out-of-range input is clamped,
// never rejected, so the engine always runs with a sane configuration.
const (
	MinPosts = 5
	MaxPosts = 60

	MinCommentsPerPost = 0
	MaxCommentsPerPost = 80

	MinSampleSize = 50
	MaxSampleSize = 500

	MinDelayMS = 300
	MaxDelayMS = 2000
)

// Config holds all configuration options for the audit engine
type Config struct {
	Session SessionConfig `yaml:"session" json:"session"`
	Audit   AuditConfig   `yaml:"audit" json:"audit"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// SessionConfig holds browser session configuration. SessionDir is the
// persisted profile directory produced out-of-band by the login bootstrap;
// the engine only reads it.
type SessionConfig struct {
	SessionDir        string        `yaml:"session_dir" json:"session_dir"`
	Proxy             string        `yaml:"proxy" json:"proxy"`
	Headless          bool          `yaml:"headless" json:"headless"`
	NavigationTimeout time.Duration `yaml:"navigation_timeout" json:"navigation_timeout"`
	SettleDelay       time.Duration `yaml:"settle_delay" json:"settle_delay"`
}

// AuditConfig holds default audit bounds; all are clamped on use
type AuditConfig struct {
	Posts           int `yaml:"posts" json:"posts"`
	CommentsPerPost int `yaml:"comments_per_post" json:"comments_per_post"`
	SampleSize      int `yaml:"sample_size" json:"sample_size"`
	DelayMS         int `yaml:"delay_ms" json:"delay_ms"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Session: SessionConfig{
			SessionDir:        defaultSessionDir(),
			Headless:          true,
			NavigationTimeout: 30 * time.Second,
			SettleDelay:       850 * time.Millisecond,
		},
		Audit: AuditConfig{
			Posts:           30,
			CommentsPerPost: 30,
			SampleSize:      200,
			DelayMS:         700,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

func defaultSessionDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".igaudit/session"
	}
	return filepath.Join(home, ".igaudit", "session")
}

// LoadFromEnv loads configuration overrides from environment variables.
// A .env file in the working directory is honored when present.
func (c *Config) LoadFromEnv() error {
	_ = godotenv.Load()

	if dir := os.Getenv("IGAUDIT_SESSION_DIR"); dir != "" {
		c.Session.SessionDir = dir
	}
	if proxy := os.Getenv("IGAUDIT_PROXY"); proxy != "" {
		c.Session.Proxy = proxy
	}
	if headless := os.Getenv("IGAUDIT_HEADLESS"); headless != "" {
		c.Session.Headless = strings.ToLower(headless) != "false"
	}
	if posts := os.Getenv("IGAUDIT_POSTS"); posts != "" {
		var val int
		fmt.Sscanf(posts, "%d", &val)
		if val > 0 {
			c.Audit.Posts = val
		}
	}
	if sample := os.Getenv("IGAUDIT_SAMPLE_SIZE"); sample != "" {
		var val int
		fmt.Sscanf(sample, "%d", &val)
		if val > 0 {
			c.Audit.SampleSize = val
		}
	}
	if delay := os.Getenv("IGAUDIT_DELAY_MS"); delay != "" {
		var val int
		fmt.Sscanf(delay, "%d", &val)
		if val > 0 {
			c.Audit.DelayMS = val
		}
	}
	if level := os.Getenv("IGAUDIT_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}

	return nil
}

// LoadFromFile loads configuration from a YAML file. An empty path searches
// the standard locations; a missing file is not an error.
func (c *Config) LoadFromFile(path string) error {
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	locations := []string{
		".igaudit.yaml",
		".igaudit.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "igaudit", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".igaudit.yaml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.Session.SessionDir == "" {
		errs = append(errs, errors.New("session directory is required"))
	}
	if c.Session.NavigationTimeout <= 0 {
		errs = append(errs, errors.New("navigation timeout must be positive"))
	}
	if c.Session.SettleDelay < 0 {
		errs = append(errs, errors.New("settle delay must not be negative"))
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error", "fatal", "disabled", "":
	default:
		errs = append(errs, fmt.Errorf("unknown log level: %s", c.Logging.Level))
	}

	if len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, err := range errs {
			msgs[i] = err.Error()
		}
		return fmt.Errorf("config validation failed: %s", strings.Join(msgs, "; "))
	}

	return nil
}

// Load builds the effective configuration: defaults, then file, then env
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := cfg.LoadFromFile(path); err != nil {
		return nil, err
	}
	if err := cfg.LoadFromEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ClampPosts clamps a requested post count into [MinPosts, MaxPosts].
// Non-positive input falls back to the configured default.
func (c *Config) ClampPosts(n int) int {
	if n <= 0 {
		n = c.Audit.Posts
	}
	return clamp(n, MinPosts, MaxPosts)
}

// ClampCommentsPerPost clamps a per-post comment cap into its bounds.
// Negative input falls back to the configured default; zero is a valid
// request for no comment scraping.
func (c *Config) ClampCommentsPerPost(n int) int {
	if n < 0 {
		n = c.Audit.CommentsPerPost
	}
	return clamp(n, MinCommentsPerPost, MaxCommentsPerPost)
}

// ClampSampleSize clamps a follower sample size into [MinSampleSize, MaxSampleSize]
func (c *Config) ClampSampleSize(n int) int {
	if n <= 0 {
		n = c.Audit.SampleSize
	}
	return clamp(n, MinSampleSize, MaxSampleSize)
}

// ClampDelay clamps the inter-item delay into [MinDelayMS, MaxDelayMS]
// and returns it as a duration.
func (c *Config) ClampDelay(ms int) time.Duration {
	if ms <= 0 {
		ms = c.Audit.DelayMS
	}
	return time.Duration(clamp(ms, MinDelayMS, MaxDelayMS)) * time.Millisecond
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
