package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Content
	ContentDir string
	OutputDir  string
	SiteTitle  string
	SiteURL    string

	// Auth
	BuildAPIKey string

	// Theme preference store
	ThemeDBPath string

	// Build worker pool
	WorkerCount         int
	MaxQueueSize        int
	MaxConcurrentRender int
	JobTTL              time.Duration

	// Enhancements
	TOCMinHeadings int
	WordsPerMinute int
	CopyResetAfter time.Duration

	// Markdown
	HighlightStyle string
	AutoHeadingID  bool
	SanitizeHTML   bool

	StatsWindow time.Duration

	// Rebuild on content changes
	WatchContent  bool
	WatchDebounce time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		ContentDir: envOr("CONTENT_DIR", "./content"),
		OutputDir:  envOr("OUTPUT_DIR", "./_site"),
		SiteTitle:  envOr("SITE_TITLE", "Notes"),
		SiteURL:    os.Getenv("SITE_BASE_URL"),

		BuildAPIKey: os.Getenv("BUILD_API_KEY"),

		ThemeDBPath: envOr("THEME_DB_PATH", "./inkpost.db"),

		WorkerCount:         envInt("WORKER_COUNT", 2),
		MaxQueueSize:        envInt("MAX_QUEUE_SIZE", 16),
		MaxConcurrentRender: envInt("MAX_CONCURRENT_RENDER", 8),
		JobTTL:              envDuration("JOB_TTL", 1*time.Hour),

		TOCMinHeadings: envInt("TOC_MIN_HEADINGS", 3),
		WordsPerMinute: envInt("WORDS_PER_MINUTE", 200),
		CopyResetAfter: envDuration("COPY_RESET", 2*time.Second),

		HighlightStyle: envOr("HIGHLIGHT_STYLE", "github"),
		AutoHeadingID:  envBool("AUTO_HEADING_ID", false),
		SanitizeHTML:   envBool("SANITIZE_HTML", false),

		StatsWindow: envDuration("STATS_WINDOW", 1*time.Hour),

		WatchContent:  envBool("WATCH_CONTENT", false),
		WatchDebounce: envDuration("WATCH_DEBOUNCE", 500*time.Millisecond),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 16
	}
	if cfg.MaxConcurrentRender <= 0 {
		cfg.MaxConcurrentRender = 8
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}
	if cfg.TOCMinHeadings <= 0 {
		cfg.TOCMinHeadings = 3
	}
	if cfg.WordsPerMinute <= 0 {
		cfg.WordsPerMinute = 200
	}
	if cfg.CopyResetAfter <= 0 {
		cfg.CopyResetAfter = 2 * time.Second
	}
	if cfg.StatsWindow <= 0 {
		cfg.StatsWindow = 1 * time.Hour
	}
	if cfg.WatchDebounce <= 0 {
		cfg.WatchDebounce = 500 * time.Millisecond
	}

	return cfg
}

func (c Config) Validate() error {
	if c.ContentDir == "" {
		return fmt.Errorf("CONTENT_DIR is required")
	}
	if c.BuildAPIKey == "" {
		return fmt.Errorf("BUILD_API_KEY is required")
	}
	if c.SiteURL != "" {
		if _, err := url.Parse(c.SiteURL); err != nil {
			return fmt.Errorf("SITE_BASE_URL: %w", err)
		}
	}
	return nil
}

// SiteHost returns the host part of SiteURL, or "" when unset.
func (c Config) SiteHost() string {
	if c.SiteURL == "" {
		return ""
	}
	u, err := url.Parse(c.SiteURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
