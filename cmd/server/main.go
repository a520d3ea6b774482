package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/inkpost/internal/api"
	"github.com/dgallion1/inkpost/internal/config"
	"github.com/dgallion1/inkpost/internal/enhance"
	"github.com/dgallion1/inkpost/internal/parser"
	"github.com/dgallion1/inkpost/internal/pipeline"
	"github.com/dgallion1/inkpost/internal/site"
	"github.com/dgallion1/inkpost/internal/stats"
	"github.com/dgallion1/inkpost/internal/theme"
	"github.com/dgallion1/inkpost/internal/watch"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Theme preferences.
	prefs, err := theme.OpenSQLite(cfg.ThemeDBPath)
	if err != nil {
		log.Error("open theme store", "path", cfg.ThemeDBPath, "error", err)
		os.Exit(1)
	}

	// Posts.
	lib := site.NewLibrary(cfg.ContentDir, parser.Options{
		HighlightStyle: cfg.HighlightStyle,
		AutoHeadingID:  cfg.AutoHeadingID,
		Sanitize:       cfg.SanitizeHTML,
	}, log)
	if _, err := lib.Load(ctx); err != nil {
		log.Error("load posts", "dir", cfg.ContentDir, "error", err)
		os.Exit(1)
	}

	reg := stats.NewRegistry(cfg.StatsWindow)
	enhancer := enhance.New(enhance.Options{
		ContentClass:   "post",
		SiteHost:       cfg.SiteHost(),
		MinHeadings:    cfg.TOCMinHeadings,
		WordsPerMinute: cfg.WordsPerMinute,
		CopyResetAfter: cfg.CopyResetAfter,
	}, log)
	renderer, err := site.NewRenderer(cfg.SiteTitle, enhancer, reg.For("render"))
	if err != nil {
		log.Error("init renderer", "error", err)
		os.Exit(1)
	}

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg, lib, renderer, reg.For("build"), log)
	orch.Start(ctx)

	if cfg.WatchContent {
		w, err := watch.New(cfg.ContentDir, cfg.WatchDebounce, parser.IsSupportedExtension, log)
		if err != nil {
			log.Error("watch content", "dir", cfg.ContentDir, "error", err)
			os.Exit(1)
		}
		go w.Run(ctx, func(paths []string) {
			job := pipeline.NewJob(false, true)
			if err := orch.Submit(job); err != nil {
				log.Warn("rebuild not queued", "error", err)
				return
			}
			log.Info("content changed, rebuild queued", "job_id", job.ID, "files", len(paths))
		})
	}

	// Initialize HTTP server.
	srv := api.NewServer(orch, lib, renderer, prefs, reg, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown. Stop intake first: the watcher and the HTTP server
	// both submit jobs, so they go down before the pipeline does.
	done := make(chan struct{})
	go func() {
		defer close(done)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Warn("http shutdown", "error", err)
		}

		orch.Stop()
		prefs.Close()
	}()

	log.Info("starting inkpost", "port", cfg.Port, "content", cfg.ContentDir)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	<-done
}
