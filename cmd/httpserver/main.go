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

	"movietrack/httpserver"
	"movietrack/memory"
	"movietrack/mongodb"
	"movietrack/movie"
	"movietrack/pkg/config"
	"movietrack/pkg/logger"
	"movietrack/pkg/sentry"

	sentrygo "github.com/getsentry/sentry-go"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot load config:", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot init logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Errorw("server stopped with error", "error", err)
		sentry.Fatal(err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zap.SugaredLogger) error {
	err := sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		AttachStacktrace: true,
	})
	if err != nil {
		return fmt.Errorf("init sentry: %w", err)
	}
	defer sentrygo.Flush(sentry.FlushTime)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := newMovieRepository(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeRepo()

	server := httpserver.Default(cfg)
	server.Addr = fmt.Sprintf(":%d", cfg.Port)
	server.Logger = log
	server.MovieService = movie.NewUsecase(repo)

	errCh := make(chan error, 1)
	go func() {
		log.Infow("server started", "addr", server.Addr, "storage", cfg.StorageDriver)
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// newMovieRepository picks the backend named by STORAGE_DRIVER. The returned
// func releases whatever the backend holds.
func newMovieRepository(ctx context.Context, cfg *config.Config, log *zap.SugaredLogger) (movie.Repository, func(), error) {
	if cfg.StorageDriver == config.StorageMemory {
		log.Warn("using in-memory storage, movies will not survive a restart")
		return memory.NewMovieRepository(), func() {}, nil
	}

	client, err := mongodb.NewClient(ctx, mongodb.Options{
		URI:     cfg.MongoDB.ConnectionString,
		AppName: "movietrack",
	})
	if err != nil {
		return nil, nil, err
	}
	closeClient := func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Errorw("cannot disconnect mongodb", "error", err)
		}
	}

	repo, err := mongodb.NewMovieRepository(client, cfg.MongoDB.DatabaseName, cfg.MongoDB.Collection)
	if err != nil {
		closeClient()
		return nil, nil, err
	}
	if err := repo.EnsureIndexes(ctx); err != nil {
		closeClient()
		return nil, nil, err
	}

	log.Infow("connected to mongodb", "database", cfg.MongoDB.DatabaseName, "collection", cfg.MongoDB.Collection)
	return repo, closeClient, nil
}
