package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/vytor/codedrill/internal/api"
	"github.com/vytor/codedrill/internal/config"
	"github.com/vytor/codedrill/internal/db"
	"github.com/vytor/codedrill/internal/jobs"
	"github.com/vytor/codedrill/internal/judge"
	"github.com/vytor/codedrill/internal/logger"
	"github.com/vytor/codedrill/internal/metrics"
	"github.com/vytor/codedrill/internal/repository/sqlite"
	"github.com/vytor/codedrill/internal/services"
	"github.com/vytor/codedrill/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}

	log.Info("codedrill server starting")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("backend_url=%s", cfg.BackendURL)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("request_timeout=%s", cfg.RequestTimeout())
	log.Debug("tick_interval=%s", cfg.TickInterval())
	log.Debug("record_worker_count=%d", cfg.RecordWorkerCount)
	log.Debug("record_queue_size=%d", cfg.RecordQueueSize)
	log.Debug("max_sessions=%d", cfg.MaxSessions)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	if err := metrics.Register(registry); err != nil {
		log.Error("failed to register metrics: %v", err)
		os.Exit(1)
	}

	historyService := services.NewHistoryService(sqlite.NewSolveRepository(database.DB))

	recordPool := worker.NewPool(cfg.RecordWorkerCount, cfg.RecordQueueSize)
	queue := jobs.NewWorkerQueue(recordPool, historyService)

	sessions, err := services.NewSessionService(services.SessionConfig{
		Client:       judge.New(cfg.BackendURL, cfg.RequestTimeout()),
		Recorder:     queue,
		MaxSessions:  cfg.MaxSessions,
		TickInterval: cfg.TickInterval(),
	})
	if err != nil {
		log.Error("failed to create session service: %v", err)
		os.Exit(1)
	}

	srv := api.NewServer(sessions, historyService, database, registry, []byte(cfg.JWTSecret))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	recordPool.Start(ctx)

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: srv.Routes(),
		// submissions wait on the judge
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.RequestTimeout() + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("closing sessions")
	sessions.Close()

	log.Debug("draining solve recorder")
	recordPool.Stop()

	log.Info("codedrill server stopped")
}
