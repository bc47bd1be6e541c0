package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/danielhkuo/majority/cliparse"
	"github.com/danielhkuo/majority/db"
	"github.com/danielhkuo/majority/middleware"
	"github.com/danielhkuo/majority/router"
	"github.com/danielhkuo/majority/store"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the database
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err, "type", cfg.DatabaseType)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	storeMetrics := store.NewMetrics()
	httpMetrics := middleware.NewMetrics()
	if err := storeMetrics.Register(reg); err != nil {
		slog.Error("metrics registration failed", "error", err)
		os.Exit(1)
	}
	if err := httpMetrics.Register(reg); err != nil {
		slog.Error("metrics registration failed", "error", err)
		os.Exit(1)
	}

	polls := store.New(dbConn, cfg.DatabaseType, storeMetrics)

	// Closed polls are not kept between runs
	if cfg.PurgeClosed {
		purged, err := polls.PurgeClosed(context.Background())
		if err != nil {
			slog.Error("purging closed polls failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Closed polls purged", "count", purged)
	}

	// Create router
	mux := router.NewRouter(polls, cfg, httpMetrics, reg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Shutdown(context.Background())
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "max_judgment", cfg.MaxJudgment)
	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
