package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/alerts"
	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/analysis"
	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/api"
	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/auth"
	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/cleaner"
	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/collector"
	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/config"
	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/metrics"
	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/monitor"
	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/predictor"
	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/report"
	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/storage"
	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/websocket"
)

const version = "1.0.0"

var configFile string

func init() {
	flag.StringVar(&configFile, "config", "configs/monitor.yaml", "path to the configuration file")
}

func main() {
	flag.Parse()

	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		log.Printf("failed to load config, using defaults: %v", err)
		cfg = config.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// storage: Redis when configured, in-memory otherwise
	store := newStorage(cfg)
	defer store.Close()

	// collectors
	metricsCollector := collector.NewMetricsCollector(cfg)
	metricsCollector.RegisterCollector("cpu", collector.NewCPUCollector(cfg))
	metricsCollector.RegisterCollector("memory", collector.NewMemoryCollector(cfg))
	metricsCollector.RegisterCollector("disk", collector.NewDiskCollector(cfg))
	if cfg.Monitor.EnableNetwork {
		metricsCollector.RegisterCollector("network", collector.NewNetworkCollector(cfg))
	}
	if cfg.Monitor.EnableProcessCount {
		metricsCollector.RegisterCollector("process", collector.NewProcessCollector(cfg))
	}

	if err := metricsCollector.Start(ctx); err != nil {
		log.Fatalf("failed to start collectors: %v", err)
	}
	defer metricsCollector.Stop()

	// analysis and alerting
	analyzer := analysis.NewAnalyzer(cfg)
	engine := alerts.NewEngine(&cfg.Alerts, buildChannels(cfg)...)
	defer engine.Close()

	pred := predictor.NewPredictor(&cfg.Predict)

	// instrumentation
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	monMetrics := metrics.New(registry)

	// live push
	var wsServer *websocket.Server
	if cfg.WebSocket.Enabled {
		wsServer = websocket.NewServer(&cfg.WebSocket)
		wsServer.Start()
		defer wsServer.Stop()
	}

	reporter := report.NewGenerator(&cfg.Report, store)
	memCleaner := cleaner.NewCleaner(&cfg.Cleaner)

	// HTTP server
	hostInfo := collector.CollectHostInfo(ctx)
	apiHandler := api.NewAPIHandler(store, hostInfo, version)

	jwtAuth := auth.NewJWTAuth(&cfg.Auth)
	authHandler := auth.NewHandler(&cfg.Auth, jwtAuth)

	router := mux.NewRouter()
	authHandler.RegisterRoutes(router)
	apiHandler.RegisterPublic(router)
	apiHandler.RegisterPrometheus(router, registry)

	protected := router.PathPrefix("/").Subrouter()
	protected.Use(jwtAuth.Middleware)
	apiHandler.RegisterRoutes(protected)
	if wsServer != nil {
		protected.HandleFunc(cfg.WebSocket.Path, wsServer.HandleWebSocket)
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Printf("dashboard API listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// sampling loop
	mon := monitor.New(cfg, metricsCollector, analyzer, engine, pred, store, wsServer, monMetrics, reporter, memCleaner)
	go mon.Run(ctx)

	fmt.Println("system health monitor started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	fmt.Println("shutting down system health monitor...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown: %v", err)
	}

	fmt.Println("system health monitor stopped")
}

// newStorage selects Redis storage when enabled, falling back to the
// in-memory store when the connection fails
func newStorage(cfg *config.Config) storage.Storage {
	if cfg.Redis.Enabled {
		store, err := storage.NewRedisStorage(&cfg.Redis, cfg.Monitor.HistorySize)
		if err == nil {
			log.Printf("using redis storage")
			return store
		}
		log.Printf("redis unavailable, falling back to memory storage: %v", err)
	}
	return storage.NewMemoryStorage(cfg.Monitor.HistorySize)
}

// buildChannels creates the configured alert delivery channels
func buildChannels(cfg *config.Config) []alerts.Channel {
	var channels []alerts.Channel
	if cfg.Alerts.Channels.Console {
		channels = append(channels, alerts.NewConsoleChannel())
	}
	if cfg.Alerts.Channels.Email {
		channels = append(channels, alerts.NewEmailChannel(&cfg.Email))
	}
	if cfg.Alerts.Channels.Kafka {
		channels = append(channels, alerts.NewKafkaChannel(&cfg.Kafka))
	}
	return channels
}
