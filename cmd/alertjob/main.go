// Package main runs one alert cycle and exits. It is meant to be invoked
// daily by cron or a scheduler; the optional Redis lock keeps the cycle
// single-flight when several replicas fire at once.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Relo2France/france-relocation-assistant-sub001/internal/cache"
	"github.com/Relo2France/france-relocation-assistant-sub001/internal/config"
	"github.com/Relo2France/france-relocation-assistant-sub001/internal/notify"
	"github.com/Relo2France/france-relocation-assistant-sub001/internal/repo"
	"github.com/Relo2France/france-relocation-assistant-sub001/internal/service"
)

const (
	cycleLockName = "alert-cycle"
	cycleLockTTL  = 30 * time.Minute
	cycleTimeout  = 25 * time.Minute
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), cycleTimeout)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	redisClient, err := cache.New(cfg.RedisURL)
	if err != nil {
		logger.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	// A nil Redis client grants the lock unconditionally, so single-replica
	// deployments run without Redis at all.
	acquired, err := redisClient.AcquireLock(ctx, cycleLockName, cycleLockTTL)
	if err != nil {
		logger.Error("failed to acquire cycle lock", "error", err)
		os.Exit(1)
	}
	if !acquired {
		logger.Info("another replica holds the cycle lock, skipping this run")
		return
	}
	defer func() {
		if err := redisClient.ReleaseLock(context.Background(), cycleLockName); err != nil {
			logger.Warn("failed to release cycle lock", "error", err)
		}
	}()

	var dispatcher notify.Dispatcher = notify.NewLogDispatcher(logger)
	if cfg.SMTPHost != "" {
		dispatcher = notify.NewSMTPDispatcher(notify.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		}, logger)
	}

	scheduler := service.NewAlertScheduler(
		repo.NewAlertRepo(pool),
		repo.NewTripRepo(pool),
		repo.NewSettingsRepo(pool),
		dispatcher,
		nil, // metrics are scraped from the API server, not the one-shot job
		logger,
		nil,
	)

	if err := scheduler.RunCycle(ctx); err != nil {
		// Per-owner failures: logged in detail inside the cycle, non-zero
		// exit so the scheduler's monitoring notices.
		logger.Error("alert cycle finished with failures", "error", err)
		os.Exit(1)
	}
	logger.Info("alert cycle finished")
}
