// Package main is the entry point for the compliance API server.
// Its sole responsibility is wiring dependencies together and starting the
// server. No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Relo2France/france-relocation-assistant-sub001/internal/cache"
	"github.com/Relo2France/france-relocation-assistant-sub001/internal/config"
	"github.com/Relo2France/france-relocation-assistant-sub001/internal/handler"
	"github.com/Relo2France/france-relocation-assistant-sub001/internal/metrics"
	"github.com/Relo2France/france-relocation-assistant-sub001/internal/middleware"
	"github.com/Relo2France/france-relocation-assistant-sub001/internal/notify"
	"github.com/Relo2France/france-relocation-assistant-sub001/internal/premium"
	"github.com/Relo2France/france-relocation-assistant-sub001/internal/repo"
	"github.com/Relo2France/france-relocation-assistant-sub001/internal/service"
)

// maxBodyBytes caps incoming request bodies; the largest legitimate payload
// is a settings update of a few hundred bytes.
const maxBodyBytes = 64 << 10

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	// pgxpool manages a pool of Postgres connections.
	// New() does not open connections immediately — the first query does.
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	// --- Redis (optional) -------------------------------------------------
	redisClient, err := cache.New(cfg.RedisURL)
	if err != nil {
		slog.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		slog.Info("redis connection established")
	}
	summaryCache := cache.NewSummaryCache(redisClient)

	// --- Dependencies -----------------------------------------------------
	m := metrics.New()

	tripRepo := repo.NewTripRepo(pool)
	settingsRepo := repo.NewSettingsRepo(pool)
	alertRepo := repo.NewAlertRepo(pool)

	gate := premium.NewSettingsGate(settingsRepo)

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

	tripService := service.NewTripService(tripRepo, gate, summaryCache)
	complianceService := service.NewComplianceService(tripRepo, settingsRepo, summaryCache, m, nil)
	simulationService := service.NewSimulationService(tripRepo, gate, m, nil)
	settingsService := service.NewSettingsService(settingsRepo, summaryCache)
	reportService := service.NewReportService(tripRepo, settingsRepo, gate, nil)
	alertScheduler := service.NewAlertScheduler(alertRepo, tripRepo, settingsRepo, dispatcher, m, logger, nil)

	server := handler.NewServer(
		tripService, complianceService, simulationService,
		settingsService, reportService, alertScheduler,
		logger,
	)
	verifier := middleware.NewTokenVerifier(cfg.JWTSecret)

	// --- Router -----------------------------------------------------------
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMetrics(m))
	r.Use(middleware.NewMaxBodySizeHandler(maxBodyBytes))

	r.Get("/healthz", handler.HealthHandler())
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(verifier, logger))
		server.Routes(r)
	})

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
