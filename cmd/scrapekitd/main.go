package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/scrapekit/scrapekit/pkg/async"
	"github.com/scrapekit/scrapekit/pkg/config"
	"github.com/scrapekit/scrapekit/pkg/observability"
	"github.com/scrapekit/scrapekit/pkg/settings"
	"github.com/scrapekit/scrapekit/pkg/sources"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	logger := observability.NewLogger(cfg.Observability.LogLevel, os.Stdout)
	logger.Info("Starting scrapekitd")

	// The engine packages log through logrus; mirror the configured level.
	engineLog := logrus.New()
	if lvl, err := logrus.ParseLevel(cfg.Observability.LogLevel.String()); err == nil {
		engineLog.SetLevel(lvl)
	}

	store, err := settings.New(cfg.Settings)
	if err != nil {
		logger.WithError(err).Error("Failed to open settings store")
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	var metrics *observability.Metrics
	poolOpts := []async.Option{async.WithLogger(engineLog)}
	if cfg.Observability.MetricsEnabled {
		metrics = observability.NewMetrics(registry)
		poolOpts = append(poolOpts, async.WithMetrics(registry))
	}

	pool := async.NewPool(cfg.Pool.Capacity, poolOpts...)

	policy := sources.FailOpen
	if cfg.Discovery.FailClosed {
		policy = sources.FailClosed
	}
	oracle := sources.NewOracle(store, policy, engineLog)
	loader := sources.NewLoader(engineLog, cfg.Discovery.Diagnostics)
	disco := sources.NewDiscovery(cfg.Discovery.ProviderRoot, oracle, loader, engineLog)
	disco.SetParallelism(cfg.Discovery.Parallelism)
	if cfg.Discovery.Diagnostics {
		disco.SetLoadPolicy(sources.Propagate)
	}

	var (
		loadedMu sync.RWMutex
		loaded   []sources.Loaded
	)

	runDiscovery := func(trigger string) {
		cycleID := uuid.NewString()
		ctx := observability.WithCycleID(context.Background(), cycleID)
		log := observability.FromContext(observability.WithLogger(ctx, logger))

		start := time.Now()
		result, err := disco.Discover(ctx, cfg.Discovery.Categories, false)
		if err != nil {
			log.WithError(err).Error("Discovery cycle failed")
			return
		}
		enumerated := len(disco.Descriptors(ctx, cfg.Discovery.Categories, true))

		loadedMu.Lock()
		loaded = result
		loadedMu.Unlock()

		if metrics != nil {
			metrics.ObserveCycle(trigger, len(result), enumerated, time.Since(start))
		}
		log.WithFields(map[string]interface{}{
			"trigger": trigger,
			"loaded":  len(result),
			"elapsed": time.Since(start).String(),
		}).Info("Discovery cycle complete")
	}

	runDiscovery("startup")

	// Periodic re-discovery picks up manifest and enablement changes.
	var scheduler *cron.Cron
	if cfg.Discovery.RefreshSchedule != "" {
		scheduler = cron.New()
		if _, err := scheduler.AddFunc(cfg.Discovery.RefreshSchedule, func() {
			defer observability.RecoverPanic(logger, "discovery refresh")
			runDiscovery("schedule")
		}); err != nil {
			logger.WithError(err).Error("Invalid refresh schedule")
			os.Exit(1)
		}
		scheduler.Start()
		logger.Infof("Discovery refresh scheduled: %s", cfg.Discovery.RefreshSchedule)
	}

	health := observability.NewHealthChecker(store, pool)

	router := mux.NewRouter()
	router.HandleFunc("/healthz", health.Liveness).Methods(http.MethodGet)
	router.HandleFunc("/readyz", health.Readiness).Methods(http.MethodGet)
	router.HandleFunc("/sources", func(w http.ResponseWriter, r *http.Request) {
		loadedMu.RLock()
		names := make([]string, 0, len(loaded))
		for _, l := range loaded {
			names = append(names, l.Name)
		}
		loadedMu.RUnlock()

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]interface{}{
			"count":   len(names),
			"sources": names,
		}); err != nil {
			logger.WithError(err).Error("Failed to encode sources response")
		}
	}).Methods(http.MethodGet)
	if metrics != nil {
		router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	}

	server := &http.Server{
		Addr:         ":" + cfg.Observability.HealthPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("Health server listening on :%s", cfg.Observability.HealthPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("Health server failed")
		}
	}()

	sm := observability.NewShutdownManager(logger, server, cfg.Pool.ShutdownTimeout)
	sm.RegisterShutdownFunc(func(ctx context.Context) error {
		if scheduler != nil {
			<-scheduler.Stop().Done()
		}
		return nil
	})
	sm.RegisterShutdownFunc(func(ctx context.Context) error {
		pool.Shutdown()
		return nil
	})
	sm.RegisterShutdownFunc(func(ctx context.Context) error {
		return store.Close()
	})

	if err := sm.WaitForShutdown(); err != nil {
		logger.WithError(err).Error("Shutdown finished with errors")
		os.Exit(1)
	}
}
