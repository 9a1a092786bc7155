package monitor

import (
	"context"
	"log"
	"time"

	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/alerts"
	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/analysis"
	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/cleaner"
	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/collector"
	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/config"
	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/metrics"
	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/models"
	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/predictor"
	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/report"
	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/storage"
	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/websocket"
)

// Monitor the sampling loop. Collects one sample per interval, runs
// analysis, alerting and prediction over it, and fans the results out
// to storage, WebSocket clients and Prometheus.
type Monitor struct {
	config    *config.Config
	collector *collector.MetricsCollector
	analyzer  *analysis.Analyzer
	engine    *alerts.Engine
	predictor *predictor.Predictor
	store     storage.Storage
	ws        *websocket.Server
	metrics   *metrics.Metrics
	reporter  *report.Generator
	cleaner   *cleaner.Cleaner
}

// New creates a monitor. The WebSocket server, metrics, reporter and
// cleaner are optional and may be nil.
func New(
	cfg *config.Config,
	mc *collector.MetricsCollector,
	analyzer *analysis.Analyzer,
	engine *alerts.Engine,
	pred *predictor.Predictor,
	store storage.Storage,
	ws *websocket.Server,
	m *metrics.Metrics,
	reporter *report.Generator,
	cl *cleaner.Cleaner,
) *Monitor {
	return &Monitor{
		config:    cfg,
		collector: mc,
		analyzer:  analyzer,
		engine:    engine,
		predictor: pred,
		store:     store,
		ws:        ws,
		metrics:   m,
		reporter:  reporter,
		cleaner:   cl,
	}
}

// Run executes the sampling loop until the context is cancelled.
// One sample is collected immediately on start.
func (m *Monitor) Run(ctx context.Context) error {
	log.Printf("monitor loop started, interval %s", m.config.Monitor.Interval)

	m.tick(ctx)

	ticker := time.NewTicker(m.config.Monitor.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("monitor loop stopped")
			return ctx.Err()
		case <-ticker.C:
			m.tick(ctx)
		}
	}
}

// tick runs one full sampling iteration.
// A failed collection skips the iteration; the previous stored
// snapshot stays visible to the API.
func (m *Monitor) tick(ctx context.Context) {
	start := time.Now()
	sample, err := m.collector.CollectSample(ctx)
	if err != nil {
		log.Printf("sample collection failed: %v", err)
		if m.metrics != nil {
			m.metrics.CollectErrors.Inc()
		}
		return
	}
	if m.metrics != nil {
		m.metrics.ObserveCollect(time.Since(start))
	}

	if err := m.store.SaveSample(ctx, sample); err != nil {
		log.Printf("failed to save sample: %v", err)
	}

	result := m.analyzer.Analyze(sample)

	events := m.engine.Evaluate(sample, result.Results)
	result.Alerts = events
	m.engine.Dispatch(ctx, events)

	if err := m.store.SaveAnalysis(ctx, result); err != nil {
		log.Printf("failed to save analysis: %v", err)
	}

	prediction := m.predict(ctx)

	m.updateMetrics(result, events)
	m.broadcast(sample, result, prediction)

	if m.reporter != nil {
		m.reporter.Tick(ctx)
	}
	m.maybeClean(result)

	if m.metrics != nil {
		m.metrics.Ticks.Inc()
	}
}

// predict runs the failure predictor over the stored history
func (m *Monitor) predict(ctx context.Context) *models.PredictionResult {
	history, err := m.store.RecentSamples(ctx, m.config.Predict.WindowSize)
	if err != nil {
		log.Printf("failed to read history for prediction: %v", err)
		history = nil
	}

	prediction := m.predictor.Predict(history)
	if err := m.store.SavePrediction(ctx, prediction); err != nil {
		log.Printf("failed to save prediction: %v", err)
	}
	return prediction
}

// updateMetrics publishes the iteration results to Prometheus
func (m *Monitor) updateMetrics(result *models.AnalysisResult, events []models.AlertEvent) {
	if m.metrics == nil {
		return
	}

	m.metrics.HealthScore.Set(float64(result.HealthScore))
	m.metrics.FailureRisk.Set(float64(result.FailureRisk))

	for _, e := range events {
		m.metrics.AlertsFired.WithLabelValues(e.Metric, string(e.Status)).Inc()
	}

	// non-normal statuses that produced no event were cooldown suppressed
	abnormal := 0
	for _, r := range result.Results {
		if r.Status != models.StatusNormal {
			abnormal++
		}
	}
	if suppressed := abnormal - len(events); suppressed > 0 {
		m.metrics.AlertsSuppressed.Add(float64(suppressed))
	}

	if m.ws != nil {
		m.metrics.WSClients.Set(float64(m.ws.ClientCount()))
	}
}

// broadcast pushes the snapshot to WebSocket clients
func (m *Monitor) broadcast(sample *models.MetricSample, result *models.AnalysisResult, prediction *models.PredictionResult) {
	if m.ws == nil {
		return
	}
	m.ws.Broadcast(&websocket.Snapshot{
		Type:       "snapshot",
		Sample:     sample,
		Analysis:   result,
		Prediction: prediction,
	})
}

// maybeClean triggers memory cleanup when RAM reaches critical
func (m *Monitor) maybeClean(result *models.AnalysisResult) {
	if m.cleaner == nil {
		return
	}
	for _, r := range result.Results {
		if r.Metric == "ram" && r.Status == models.StatusCritical {
			if m.cleaner.Run() {
				log.Printf("auto cleanup triggered by critical RAM usage")
			}
			return
		}
	}
}
