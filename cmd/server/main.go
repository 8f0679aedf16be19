package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/playperu/spinwin/internal/catalog"
	"github.com/playperu/spinwin/internal/config"
	"github.com/playperu/spinwin/internal/database"
	"github.com/playperu/spinwin/internal/handler/health"
	"github.com/playperu/spinwin/internal/migrations"
	"github.com/playperu/spinwin/internal/prizewheel"
	"github.com/playperu/spinwin/internal/registration"
	"github.com/playperu/spinwin/internal/server"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- Games ---
	games, err := catalog.Load(cfg.GamesFile)
	if err != nil {
		return fmt.Errorf("loading games: %w", err)
	}
	for _, g := range games.List() {
		logger.Info("game loaded", "slug", g.Slug, "mechanic", g.Mechanic, "prizes", g.Table.Len())
	}

	// --- SQLite ---
	db, err := database.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("connecting to sqlite: %w", err)
	}
	defer db.Close()

	if err := migrations.Run(ctx, logger, db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	logger.Info("connected to sqlite", "path", cfg.DBPath)

	store := server.NewSQLiteStore(db)
	if err := server.SeedAdmin(ctx, logger, store, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return fmt.Errorf("seeding admin: %w", err)
	}

	checks := map[string]health.Checker{"sqlite": dbChecker{db}}
	registrars := registration.Fanout{store}

	// --- Redis (optional) ---
	if cfg.RedisURL != "" {
		rdb, err := registration.OpenRedis(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer rdb.Close()
		logger.Info("connected to redis", "stream", cfg.RedisStream)

		checks["redis"] = redisChecker{rdb}
		registrars = append(registrars, registration.NewRedisStream(rdb, cfg.RedisStream))
	}

	dispatcher := registration.NewDispatcher(logger, registrars, cfg.RegistrationTimeout)
	sessions := server.NewSessions()

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, logger, server.Deps{
		Games:     games,
		Sessions:  sessions,
		Broker:    server.NewBroker(),
		Admin:     store,
		Registrar: dispatcher,
		Scheduler: prizewheel.TimerScheduler(),
		Source:    prizewheel.CryptoSource(),
		Health:    health.NewHandler(logger, checks).Routes(),
		SPADir:    cfg.SPADir,
	})

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		return sessions.Run(gctx, logger, cfg.SessionTTL)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		err := srv.Shutdown(context.Background())
		dispatcher.Wait()
		return err
	})

	return g.Wait()
}

// dbChecker adapts *sql.DB to health.Checker.
type dbChecker struct{ db *sql.DB }

func (d dbChecker) Check(ctx context.Context) error { return d.db.PingContext(ctx) }

// redisChecker adapts *redis.Client to health.Checker.
type redisChecker struct{ client *redis.Client }

func (r redisChecker) Check(ctx context.Context) error { return r.client.Ping(ctx).Err() }
