package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"flightplan-service/internal/adapters/export"
	"flightplan-service/internal/api"
	"flightplan-service/internal/config"
	"flightplan-service/internal/platform/logging"
	"flightplan-service/internal/platform/obs"
	"flightplan-service/internal/ports"
)

// main is the application composition root.
// It wires the conversion pipeline behind the HTTP API, starts a separate
// metrics listener, and shuts both down cleanly on SIGINT/SIGTERM.
func main() {
	envLoaded := godotenv.Load() == nil

	log := logging.NewFromEnv()
	ctx := context.Background()

	if !envLoaded {
		log.Info(ctx, "no .env file found, using environment variables")
	}

	port := config.Get("PORT", "8080")
	metricsPort := config.Get("METRICS_PORT", "9090")
	plansDir := config.Get("PLANS_DIR", "")

	collector, err := obs.NewCollector(nil)
	if err != nil {
		log.Error(ctx, "failed to initialise metrics collector", logging.Err(err))
		os.Exit(1)
	}
	metricsSrv := serveMetrics(":"+metricsPort, collector, log)

	// Persisting plans server-side is opt-in; without PLANS_DIR the service
	// only hands documents back to the caller.
	var writer ports.PlanWriter
	if plansDir != "" {
		writer = export.NewFileWriter(plansDir)
		log.Info(ctx, "persisting converted plans", logging.String("dir", plansDir))
	}

	router := api.NewRouter(log, collector, writer)

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info(ctx, "server listening", logging.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "server exited", logging.Err(err))
			os.Exit(1)
		}
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-stopCtx.Done()

	log.Info(ctx, "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn(ctx, "shutdown incomplete", logging.Err(err))
	}
	if metricsSrv != nil {
		_ = metricsSrv.Shutdown(shutdownCtx)
	}
}

// serveMetrics exposes Prometheus metrics on their own listener so the
// operational surface stays off the public port.
func serveMetrics(addr string, collector *obs.Collector, log logging.Logger) *http.Server {
	if collector == nil {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Warn(context.Background(), "metrics server exited", logging.Err(err))
		}
	}()

	log.Info(context.Background(), "serving Prometheus metrics", logging.String("addr", addr))
	return srv
}
