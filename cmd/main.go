package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/helpdeskai/intake-engine/pkg/api"
	"github.com/helpdeskai/intake-engine/pkg/classification"
	"github.com/helpdeskai/intake-engine/pkg/config"
	"github.com/helpdeskai/intake-engine/pkg/observability"
)

func main() {
	var (
		configPath  = flag.String("config", "config/config.yaml", "Path to the configuration file")
		apiPort     = flag.Int("api-port", 8080, "Port for the intake classification API")
		metricsPort = flag.Int("metrics-port", 9190, "Port for Prometheus metrics")
		warmup      = flag.Bool("warmup", false, "Train or load all models at startup instead of on first call")
	)
	flag.Parse()

	// Initialize logging (zap) from environment.
	if _, err := observability.InitLoggerFromEnv(); err != nil {
		// Fallback to stderr since logger initialization failed
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
	}
	defer observability.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		observability.Warnf("Failed to load config %s, using defaults: %v", *configPath, err)
		cfg = config.Default()
	}

	// Start metrics server
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		metricsAddr := fmt.Sprintf(":%d", *metricsPort)
		observability.Infof("Starting metrics server on %s", metricsAddr)
		if err := http.ListenAndServe(metricsAddr, nil); err != nil {
			observability.Errorf("Metrics server error: %v", err)
		}
	}()

	engine := classification.NewEngine(cfg)
	if *warmup || cfg.Warmup {
		observability.Infof("Warming up: training or loading all models")
		if err := engine.Init(); err != nil {
			observability.Fatalf("Engine initialization failed: %v", err)
		}
	}

	server := api.NewServer(engine, cfg)
	if err := server.Start(*apiPort); err != nil {
		observability.Fatalf("Intake API server error: %v", err)
	}
}
