package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bnema/vcomp/config"
	"github.com/bnema/vcomp/internal/adapter/converter/ffmpeg"
	HTTPAdapter "github.com/bnema/vcomp/internal/adapter/http"
	sqlitestore "github.com/bnema/vcomp/internal/adapter/storage/sqlite"
	"github.com/bnema/vcomp/internal/infrastructure/logger"
	"github.com/bnema/vcomp/internal/service"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		logger.Error.Printf("%v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.SetLevel(cfg.LogLevel, nil); err != nil {
		return err
	}

	logger.Info.Printf("starting vcomp on port %d, files=%s", cfg.Port, cfg.FilesDir)

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := os.MkdirAll(cfg.FilesDir, 0o755); err != nil {
		return fmt.Errorf("failed to create files directory: %w", err)
	}

	store, err := sqlitestore.NewStore(cfg.DatabasePath())
	if err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}
	defer func() { _ = store.Close() }()

	eventBus := service.NewEventBus()

	jobs, err := service.NewJobManager(service.JobManagerOptions{
		Store:       store,
		Compressor:  ffmpeg.NewConverter(cfg.FFmpegPath),
		ArtifactDir: cfg.FilesDir,
		Events:      eventBus,
		Retention:   cfg.Jobs.Retention,
		JobTimeout:  cfg.Jobs.Timeout,
	})
	if err != nil {
		return err
	}

	reaper, err := service.NewArtifactReaper(service.ArtifactReaperOptions{
		Jobs:         jobs,
		Dir:          cfg.FilesDir,
		Interval:     cfg.Reaper.Interval,
		OrphanMaxAge: cfg.Reaper.OrphanMaxAge,
	})
	if err != nil {
		return err
	}

	server := HTTPAdapter.NewServer(HTTPAdapter.ServerOptions{
		Jobs:            jobs,
		Stats:           service.NewStatisticsService(store),
		Media:           service.NewMediaService(cfg.FilesDir),
		Keys:            service.NewAPIKeyService(store, cfg.APISecretRoot),
		Events:          eventBus,
		MaxUploadSizeMB: cfg.MaxUploadSizeMB,
		BehindProxy:     cfg.BehindProxy,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       5 * time.Minute,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return jobs.Run(ctx)
	})
	g.Go(func() error {
		return reaper.Run(ctx)
	})
	g.Go(func() error {
		logger.Info.Printf("server listening on %s", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info.Printf("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error.Printf("http shutdown error: %v", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info.Printf("shutdown complete")
	return nil
}
