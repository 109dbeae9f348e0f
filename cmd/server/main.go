package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	flimhandler "flims/internal/flim/handler"
	flimmetrics "flims/internal/flim/metrics"
	flimservice "flims/internal/flim/service"
	flimstore "flims/internal/flim/store"
	indexhandler "flims/internal/index/handler"
	"flims/internal/platform/config"
	"flims/internal/platform/httpserver"
	"flims/internal/platform/logger"
	"flims/internal/platform/metrics"
	httptransport "flims/internal/transport/http"
)

const shutdownTimeout = 10 * time.Second

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	reg := prometheus.DefaultRegisterer
	httpMetrics := metrics.New(reg)
	flimMetrics := flimmetrics.New(reg)

	store := flimstore.NewSeeded()
	svc, err := flimservice.New(store,
		flimservice.WithLogger(log),
		flimservice.WithMetrics(flimMetrics),
	)
	if err != nil {
		log.Error("failed to build flim service", "error", err)
		os.Exit(1)
	}

	routerCfg := httptransport.Config{
		PrettyJSON:     cfg.PrettyJSON,
		RequestTimeout: cfg.RequestTimeout,
	}
	if cfg.MetricsEnabled {
		routerCfg.MetricsHandler = promhttp.Handler()
	}
	router := httptransport.NewRouter(log, httpMetrics, routerCfg,
		indexhandler.New(log),
		flimhandler.New(svc, log, flimMetrics, flimhandler.WithTitleMaxEnforced(cfg.EnforceTitleMax)),
	)

	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("flims server started", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
