package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"txboard/internal/config"
	"txboard/internal/dataset"
	apphttp "txboard/internal/http"
	applog "txboard/internal/log"
)

func main() {
	// Optional .env for local development. Missing file is fine.
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", applog.FieldError, err)
		os.Exit(1)
	}

	logger := applog.New(applog.ComponentApp, applog.Options{
		Level: logLevel(cfg.LogLevel),
		JSON:  cfg.LogJSON,
	})
	applog.SetDefault(logger)

	var source dataset.Source
	switch cfg.DataSource {
	case "file":
		source = dataset.FileSource{Path: cfg.CSVPath}
	default:
		source = dataset.EmbedSource{}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := dataset.NewStore(source, logger)
	snap, err := store.Load(ctx)
	if err != nil {
		logger.Error("failed to load dataset",
			applog.FieldOperation, applog.OpStartup,
			applog.FieldSource, source.Name(),
			applog.FieldError, err)
		os.Exit(1)
	}

	srv := apphttp.NewServer(":"+cfg.Port, store, apphttp.Options{
		CacheSize: cfg.CacheSize,
		CacheTTL:  cfg.CacheTTL,
		Logger:    logger,
	})
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server listening",
			applog.FieldOperation, applog.OpStartup,
			"port", cfg.Port,
			applog.FieldSource, source.Name(),
			applog.FieldRows, len(snap.Transactions))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutdown requested", applog.FieldOperation, applog.OpShutdown)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server error", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("server stopped gracefully", applog.FieldOperation, applog.OpShutdown)
}

func logLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
