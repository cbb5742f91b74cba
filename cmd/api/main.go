package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"yellowduck-gpx/internal/config"
	"yellowduck-gpx/internal/db"
	"yellowduck-gpx/internal/logging"
	"yellowduck-gpx/internal/server"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

var mainDepsProvider = defaultDeps
var mainRunner = realMain

func main() {
	mainRunner(mainDepsProvider())
}

type mainDeps struct {
	loadConfig   func() config.Config
	setupLogging func(level, format string)
	connectRedis func(config.Config) *redis.Client
	notify       func(chan<- os.Signal, ...os.Signal)
	run          func(context.Context, config.Config, *redis.Client, <-chan os.Signal, ListenFunc) error
}

func defaultDeps() mainDeps {
	return mainDeps{
		loadConfig:   config.Load,
		setupLogging: logging.Setup,
		connectRedis: db.ConnectRedis,
		notify:       signal.Notify,
		run:          Run,
	}
}

func realMain(deps mainDeps) {
	cfg := deps.loadConfig()
	deps.setupLogging(cfg.LogLevel, cfg.LogFormat)

	rdb := deps.connectRedis(cfg)
	if rdb != nil {
		if err := db.PingRedis(context.Background(), rdb); err != nil {
			slog.Warn("redis unreachable, streaming stays process-local", "addr", cfg.RedisAddr, "error", err)
		}
	}

	signals := make(chan os.Signal, 1)
	deps.notify(signals, syscall.SIGINT, syscall.SIGTERM)

	if err := deps.run(context.Background(), cfg, rdb, signals, nil); err != nil {
		slog.Error("server exited with error", "error", err)
	}
}

type ListenFunc func(app *fiber.App, addr string) error

var defaultListen ListenFunc = func(app *fiber.App, addr string) error {
	return app.Listen(addr)
}

var shutdownFn = func(app *fiber.App, ctx context.Context) error {
	return app.ShutdownWithContext(ctx)
}

// Run starts the HTTP server and waits for termination signals.
func Run(ctx context.Context, cfg config.Config, rdb *redis.Client, signals <-chan os.Signal, listen ListenFunc) error {
	srv := server.NewServer(cfg, rdb)

	if listen == nil {
		listen = defaultListen
	}

	slog.Info("gpx server starting", "addr", cfg.ServerPort, "redis", rdb != nil, "metrics", cfg.MetricsEnabled)

	errCh := make(chan error, 1)
	go func() {
		errCh <- listen(srv.App, cfg.ServerPort)
	}()

	select {
	case sig := <-signals:
		slog.Info("shutdown requested", "signal", sig)
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			_ = srv.Stream.Close()
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := shutdownFn(srv.App, shutdownCtx); err != nil {
		return err
	}
	if err := srv.Stream.Close(); err != nil {
		slog.Warn("stream hub close failed", "error", err)
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	return nil
}
