package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/franztrierweiler/colonie-ia-sub000/internal/adapters/cli"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/adapters/metrics"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/application/orchestration"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/infrastructure/config"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/infrastructure/pidfile"
)

func main() {
	fmt.Println("Colonie Daemon v0.1.0")
	fmt.Println("=====================")

	fmt.Println("Loading configuration...")
	cfg := config.MustLoadConfig("") // Empty string = search default paths

	// PID file lock prevents two daemons fighting over the same games
	fmt.Printf("Acquiring PID file lock: %s\n", cfg.Daemon.PIDFile)
	pf := pidfile.New(cfg.Daemon.PIDFile)
	if err := pf.Acquire(); err != nil {
		log.Fatalf("Failed to acquire PID file lock: %v", err)
	}
	defer func() {
		if err := pf.Release(); err != nil {
			log.Printf("Warning: failed to release PID file: %v", err)
		}
	}()
	fmt.Println("PID file lock acquired")

	if err := run(cfg); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run(cfg *config.Config) error {
	var collector orchestration.Metrics = orchestration.NoopMetrics{}
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		simMetrics := metrics.NewSimulationMetricsCollector()
		if err := simMetrics.Register(); err != nil {
			return fmt.Errorf("failed to register metrics: %w", err)
		}
		collector = simMetrics

		addr := metrics.ListenAddress(cfg.Metrics.Host, cfg.Metrics.Port)
		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, metrics.Handler())
		go func() {
			fmt.Printf("Metrics server listening on %s%s\n", addr, cfg.Metrics.Path)
			if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
				log.Printf("Metrics server error: %v", err)
			}
		}()
	}

	fmt.Printf("Connecting to %s database...\n", cfg.Database.Type)
	app, err := cli.NewApp(cfg, collector)
	if err != nil {
		return err
	}
	defer app.Close()
	fmt.Println("Database connected")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Ticking every %s\n", cfg.Simulation.TickInterval)
	ticker := time.NewTicker(cfg.Simulation.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			fmt.Println("Shutting down...")
			return nil
		case <-ticker.C:
			if err := app.Orchestrator.RunAll(ctx); err != nil {
				log.Printf("Tick error: %v", err)
			}
		}
	}
}
