package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clinicavoz/voice-scheduler/internal/api/router"
	appconfig "github.com/clinicavoz/voice-scheduler/internal/config"
	"github.com/clinicavoz/voice-scheduler/internal/http/handlers"
	"github.com/clinicavoz/voice-scheduler/internal/observability/metrics"
	"github.com/clinicavoz/voice-scheduler/internal/patients"
	"github.com/clinicavoz/voice-scheduler/internal/schedule"
	"github.com/clinicavoz/voice-scheduler/internal/session"
	"github.com/clinicavoz/voice-scheduler/pkg/logging"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting voice-scheduler API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	roster, aliases, err := schedule.LoadRoster(cfg.DoctorsJSON)
	if err != nil {
		logger.Error("invalid DOCTORS_JSON", "error", err)
		os.Exit(1)
	}
	store, err := schedule.NewStore(roster, aliases)
	if err != nil {
		logger.Error("invalid roster", "error", err)
		os.Exit(1)
	}
	registry := patients.NewRegistry()

	var sessions session.Store
	switch cfg.SessionStore {
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Error("failed to connect to redis", "addr", cfg.RedisAddr, "error", err)
			os.Exit(1)
		}
		sessions = session.NewRedisStore(rdb, cfg.SessionTTL)
		logger.Info("using redis session store", "addr", cfg.RedisAddr)
	default:
		sessions = session.NewMemoryStore(cfg.SessionTTL)
		logger.Info("using in-memory session store")
	}

	turnMetrics := metrics.NewTurnMetrics(nil)
	engine := session.NewEngine(session.EngineConfig{
		Store:      store,
		Patients:   registry,
		Logger:     logger,
		Metrics:    turnMetrics,
		MaxOptions: cfg.MaxOptions,
	})

	turnHandler := handlers.NewTurnHandler(engine, sessions, turnMetrics, logger)
	doctorsHandler := handlers.NewDoctorsHandler(store, logger)

	r := router.New(&router.Config{
		Logger:         logger,
		TurnHandler:    turnHandler,
		DoctorsHandler: doctorsHandler,
		MetricsHandler: promhttp.Handler(),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
