package collector

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/config"
	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/models"
	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/pkg/interfaces"
)

// Collector alias for the shared collector contract
type Collector = interfaces.Collector

// MetricsCollector runs the registered per-resource collectors and
// assembles their output into one MetricSample per tick
type MetricsCollector struct {
	config     *config.Config
	collectors map[string]Collector
	mu         sync.Mutex
	now        func() time.Time
}

// NewMetricsCollector creates a new metrics collector
func NewMetricsCollector(cfg *config.Config) *MetricsCollector {
	return &MetricsCollector{
		config:     cfg,
		collectors: make(map[string]Collector),
		now:        time.Now,
	}
}

// RegisterCollector registers a per-resource collector
func (mc *MetricsCollector) RegisterCollector(name string, c Collector) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.collectors[name] = c
}

// Start starts all registered collectors
func (mc *MetricsCollector) Start(ctx context.Context) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	for name, c := range mc.collectors {
		if err := c.Start(ctx); err != nil {
			return fmt.Errorf("start %s collector: %w", name, err)
		}
	}
	return nil
}

// Stop stops all registered collectors
func (mc *MetricsCollector) Stop() error {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	var firstErr error
	for _, c := range mc.collectors {
		if err := c.Stop(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// CollectSample collects one sample from all registered collectors.
// A failing collector is skipped for the tick; the sample is returned
// with whatever the remaining collectors produced. An error is returned
// only when every collector failed.
func (mc *MetricsCollector) CollectSample(ctx context.Context) (*models.MetricSample, error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	sample := &models.MetricSample{Timestamp: mc.now()}
	collected := 0
	var lastErr error

	for name, c := range mc.collectors {
		metrics, err := c.Collect(ctx)
		if err != nil {
			lastErr = fmt.Errorf("%s: %w", name, err)
			continue
		}
		collected++
		applyMetrics(sample, metrics)
	}

	if collected == 0 {
		if lastErr == nil {
			lastErr = fmt.Errorf("no collectors registered")
		}
		return nil, fmt.Errorf("collect sample: %w", lastErr)
	}
	return sample, nil
}

// applyMetrics maps named collector metrics onto the sample fields
func applyMetrics(sample *models.MetricSample, metrics []interfaces.Metric) {
	for _, m := range metrics {
		switch m.Name {
		case "cpu.usage":
			sample.CPUPercent = m.Value
		case "cpu.temperature":
			v := m.Value
			sample.Temperature = &v
		case "cpu.load_avg_1":
			ensureLoad(sample).Load1 = m.Value
		case "cpu.load_avg_5":
			ensureLoad(sample).Load5 = m.Value
		case "cpu.load_avg_15":
			ensureLoad(sample).Load15 = m.Value
		case "memory.usage":
			sample.RAMPercent = m.Value
		case "memory.total":
			sample.RAMTotalGB = m.Value
		case "memory.used":
			sample.RAMUsedGB = m.Value
		case "disk.usage":
			sample.DiskPercent = m.Value
		case "disk.total":
			sample.DiskTotalGB = m.Value
		case "disk.used":
			sample.DiskUsedGB = m.Value
		case "network.tx_rate":
			sample.NetworkTxMBs = m.Value
		case "network.rx_rate":
			sample.NetworkRxMBs = m.Value
		case "process.count":
			sample.ProcessCount = int(m.Value)
		}
	}
}

func ensureLoad(sample *models.MetricSample) *models.LoadAverage {
	if sample.LoadAverage == nil {
		sample.LoadAverage = &models.LoadAverage{}
	}
	return sample.LoadAverage
}
