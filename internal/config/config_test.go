package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("WORKER_COUNT", "")
	t.Setenv("TOC_MIN_HEADINGS", "")
	t.Setenv("WATCH_CONTENT", "")
	t.Setenv("WATCH_DEBOUNCE", "")
	cfg := Load()
	if cfg.Port != "8090" {
		t.Errorf("expected port 8090, got %q", cfg.Port)
	}
	if cfg.TOCMinHeadings != 3 {
		t.Errorf("expected 3 min headings, got %d", cfg.TOCMinHeadings)
	}
	if cfg.WordsPerMinute != 200 {
		t.Errorf("expected 200 wpm, got %d", cfg.WordsPerMinute)
	}
	if cfg.CopyResetAfter != 2*time.Second {
		t.Errorf("expected 2s copy reset, got %v", cfg.CopyResetAfter)
	}
	if cfg.WatchContent || cfg.WatchDebounce != 500*time.Millisecond {
		t.Errorf("expected watching off with 500ms debounce, got %v %v", cfg.WatchContent, cfg.WatchDebounce)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("WORKER_COUNT", "5")
	t.Setenv("TOC_MIN_HEADINGS", "-1")
	t.Setenv("COPY_RESET", "500ms")
	t.Setenv("SANITIZE_HTML", "true")
	t.Setenv("JOB_TTL", "not-a-duration")
	cfg := Load()
	if cfg.WorkerCount != 5 {
		t.Errorf("expected 5 workers, got %d", cfg.WorkerCount)
	}
	if cfg.TOCMinHeadings != 3 {
		t.Errorf("expected non-positive threshold to fall back to 3, got %d", cfg.TOCMinHeadings)
	}
	if cfg.CopyResetAfter != 500*time.Millisecond {
		t.Errorf("expected 500ms, got %v", cfg.CopyResetAfter)
	}
	if !cfg.SanitizeHTML {
		t.Error("expected sanitize enabled")
	}
	if cfg.JobTTL != time.Hour {
		t.Errorf("expected invalid duration to fall back, got %v", cfg.JobTTL)
	}
}

func TestValidate(t *testing.T) {
	cfg := Config{ContentDir: "content"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error without BUILD_API_KEY")
	}
	cfg.BuildAPIKey = "k"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSiteHost(t *testing.T) {
	cfg := Config{SiteURL: "https://blog.example.com:8443/base"}
	if got := cfg.SiteHost(); got != "blog.example.com" {
		t.Errorf("expected host, got %q", got)
	}
	if got := (Config{}).SiteHost(); got != "" {
		t.Errorf("expected empty host, got %q", got)
	}
}
