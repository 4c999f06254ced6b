package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/marmos91/staticd/internal/logger"
	"github.com/marmos91/staticd/pkg/config"
	"github.com/marmos91/staticd/pkg/loader"
	"github.com/marmos91/staticd/pkg/metrics"
	metricsProm "github.com/marmos91/staticd/pkg/metrics/prometheus"
	"github.com/marmos91/staticd/pkg/pool"
	"github.com/marmos91/staticd/pkg/server"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (default: $XDG_CONFIG_HOME/staticd/config.yaml)")
	logLevel := flag.String("log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [root] [port]\n\n", os.Args[0])
		fmt.Fprintf(flag.CommandLine.Output(),
			"Serves the files beneath root (default ./public) over HTTP on port (default 8080).\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Positional arguments and flags override the config file.
	if root := flag.Arg(0); root != "" {
		cfg.Serve.Root = root
	}
	if portArg := flag.Arg(1); portArg != "" {
		port, err := strconv.Atoi(portArg)
		if err != nil || port < 1 || port > 65535 {
			log.Fatalf("Invalid port %q", portArg)
		}
		cfg.Server.Port = port
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}

	logger.SetLevel(cfg.Logging.Level)
	logWriter, logCloser, err := cfg.LogWriter()
	if err != nil {
		log.Fatalf("Failed to configure logging: %v", err)
	}
	if logCloser != nil {
		defer logCloser.Close()
	}
	logger.SetOutput(logWriter)

	// Create cancellable context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The worker pool is process-wide state: built once here, torn down on
	// exit, and handed to the server explicitly.
	workers := pool.New[*loader.File](cfg.Pool.Workers, cfg.Pool.MaxQueue)
	defer workers.Close()

	logger.Info("Worker pool started: %d workers", cfg.Pool.Workers)
	if cfg.Pool.MaxQueue > 0 {
		logger.Info("Job queue bounded at %d (excess dispatches get 503)", cfg.Pool.MaxQueue)
	}

	// Metrics are optional; without InitRegistry every recorder is a no-op.
	httpMetrics := metrics.NewNoopHTTPMetrics()
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		httpMetrics = metricsProm.NewHTTPMetrics()

		metricsServer := metrics.NewServer(metrics.ServerConfig{Port: cfg.Metrics.Port})
		go func() {
			if err := metricsServer.Start(ctx); err != nil {
				logger.Error("Metrics server error: %v", err)
			}
		}()
	}

	srv, err := server.New(cfg, workers, httpMetrics)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	// Start server in background
	serverDone := make(chan error, 1)
	go func() {
		serverDone <- srv.Serve(ctx)
	}()

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Received %v, initiating graceful shutdown...", sig)
		cancel()

		if err := <-serverDone; err != nil {
			logger.Error("Server shutdown error: %v", err)
			os.Exit(1)
		}

	case err := <-serverDone:
		if err != nil {
			logger.Error("Server error: %v", err)
			os.Exit(1)
		}
	}
}
