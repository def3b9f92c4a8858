package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	planninggrpc "github.com/andrescamacho/voyageplanner-go/internal/adapters/grpc"
	"github.com/andrescamacho/voyageplanner-go/internal/adapters/metrics"
	"github.com/andrescamacho/voyageplanner-go/internal/application/logging"
	"github.com/andrescamacho/voyageplanner-go/internal/application/mediator"
	"github.com/andrescamacho/voyageplanner-go/internal/application/setup"
	"github.com/andrescamacho/voyageplanner-go/internal/domain/shared"
	"github.com/andrescamacho/voyageplanner-go/internal/domain/voyage"
	"github.com/andrescamacho/voyageplanner-go/internal/infrastructure/config"
	infralogging "github.com/andrescamacho/voyageplanner-go/internal/infrastructure/logging"
	"github.com/andrescamacho/voyageplanner-go/internal/infrastructure/pidfile"
	"github.com/andrescamacho/voyageplanner-go/internal/infrastructure/storage"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (default: search ./config.yaml, ./configs, /etc/voyageplanner)")
	forceFlag := flag.Bool("force", false, "Stop any existing daemon and start a new one")
	flag.Parse()

	cfg := config.MustLoadConfig(*configPath)

	logger, err := infralogging.New(&cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	// Single instance per PID file
	pf := pidfile.New(cfg.Daemon.PIDFile)
	if err := pf.Acquire(); err != nil {
		if !*forceFlag {
			log.Fatalf("Failed to acquire PID file lock: %v\nUse --force to stop the existing daemon", err)
		}
		logger.Log("WARN", "Force mode enabled, stopping existing daemon", map[string]interface{}{
			"pid_file": pf.Path(),
		})
		if err := pf.KillExisting(cfg.Daemon.ShutdownTimeout); err != nil {
			log.Fatalf("Failed to stop existing daemon: %v", err)
		}
		if err := pf.Acquire(); err != nil {
			log.Fatalf("Failed to acquire PID file lock after stopping existing daemon: %v", err)
		}
	}
	defer func() {
		if err := pf.Release(); err != nil {
			logger.Log("WARN", "Failed to release PID file", map[string]interface{}{"error": err.Error()})
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Log("ERROR", "Daemon stopped with error", map[string]interface{}{"error": err.Error()})
		pf.Release()
		os.Exit(1)
	}
	logger.Log("INFO", "Daemon stopped", nil)
}

func run(ctx context.Context, cfg *config.Config, logger *infralogging.SlogLogger) error {
	ctx = logging.WithLogger(ctx, logger)

	// 1. Storage
	backend, err := storage.Open(&cfg.Database)
	if err != nil {
		return err
	}
	defer backend.Close()
	logger.Log("INFO", "Storage opened", map[string]interface{}{"backend": backend.Kind})

	// 2. Metrics
	middlewares := []mediator.Middleware{logging.Middleware(logger)}
	metricsErr := make(chan error, 1)
	if cfg.Metrics.Enabled {
		commandCollector, err := initMetrics()
		if err != nil {
			return err
		}
		middlewares = append(middlewares, metrics.PrometheusMiddleware(commandCollector))

		metricsServer, err := metrics.NewServer(&cfg.Metrics)
		if err != nil {
			return err
		}
		go func() {
			metricsErr <- metricsServer.ListenAndServe(ctx)
		}()
		logger.Log("INFO", "Metrics endpoint enabled", map[string]interface{}{
			"address": metricsServer.Addr(),
			"path":    cfg.Metrics.Path,
		})
	}

	// 3. Application
	clock := shared.NewRealClock()
	registry := setup.NewHandlerRegistry(
		backend.Vessels,
		backend.Voyages,
		backend.Waypoints,
		backend.Calibration,
		backend.Runs,
		voyage.NewScheduler(cfg.Planning.Policy(), clock),
		clock,
	)
	med, err := registry.CreateConfiguredMediator(middlewares...)
	if err != nil {
		return fmt.Errorf("failed to configure mediator: %w", err)
	}

	// 4. gRPC server on the unix socket
	server := planninggrpc.NewPlanningServer(med, &cfg.Daemon, logger)
	listener, err := planninggrpc.Listen(cfg.Daemon.SocketPath)
	if err != nil {
		return err
	}
	logger.Log("INFO", "Planning daemon listening", map[string]interface{}{
		"socket":          cfg.Daemon.SocketPath,
		"request_timeout": cfg.Daemon.RequestTimeout.String(),
		"rate_limit":      cfg.Daemon.RateLimit,
	})

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Serve(ctx, listener)
	}()

	select {
	case err := <-serveErr:
		return err
	case err := <-metricsErr:
		if err != nil {
			return err
		}
		return <-serveErr
	}
}

// initMetrics creates the registry and registers every collector
func initMetrics() (*metrics.CommandMetricsCollector, error) {
	metrics.InitRegistry()

	planningCollector := metrics.NewPlanningMetricsCollector()
	if err := planningCollector.Register(); err != nil {
		return nil, fmt.Errorf("failed to register planning metrics: %w", err)
	}
	metrics.SetGlobalPlanningCollector(planningCollector)

	commandCollector := metrics.NewCommandMetricsCollector()
	if err := commandCollector.Register(); err != nil {
		return nil, fmt.Errorf("failed to register command metrics: %w", err)
	}
	return commandCollector, nil
}
