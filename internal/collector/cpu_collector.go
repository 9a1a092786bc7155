package collector

import (
	"context"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"

	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/config"
	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/pkg/interfaces"
)

// CPUCollector CPU usage, load average and temperature collector
type CPUCollector struct {
	config            *config.Config
	stopCh            chan struct{}
	mu                sync.RWMutex
	cacheDuration     time.Duration
	lastCollect       time.Time
	cachedMetrics     []interfaces.Metric
	enableTemperature bool
}

// NewCPUCollector creates a CPU collector
func NewCPUCollector(cfg *config.Config) *CPUCollector {
	c := &CPUCollector{
		config:            cfg,
		stopCh:            make(chan struct{}),
		cacheDuration:     1 * time.Second,
		enableTemperature: cfg.Monitor.EnableTemperature,
	}

	// warm-up read so the first real Collect returns a delta, not zero
	_, _ = cpu.Percent(0, false)

	return c
}

// Start starts the collector
func (c *CPUCollector) Start(ctx context.Context) error {
	return nil
}

// Stop stops the collector
func (c *CPUCollector) Stop() error {
	close(c.stopCh)
	return nil
}

// Collect collects CPU metrics
func (c *CPUCollector) Collect(ctx context.Context) ([]interfaces.Metric, error) {
	c.mu.RLock()
	if time.Since(c.lastCollect) < c.cacheDuration && len(c.cachedMetrics) > 0 {
		cached := c.cachedMetrics
		c.mu.RUnlock()
		return cached, nil
	}
	c.mu.RUnlock()

	percents, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return nil, err
	}

	metrics := make([]interfaces.Metric, 0, 5)
	if len(percents) > 0 {
		metrics = append(metrics, interfaces.Metric{Name: "cpu.usage", Value: percents[0], Unit: "%"})
	}

	// load averages are unavailable on some platforms, skip silently
	if avg, err := load.AvgWithContext(ctx); err == nil && avg != nil {
		metrics = append(metrics,
			interfaces.Metric{Name: "cpu.load_avg_1", Value: avg.Load1},
			interfaces.Metric{Name: "cpu.load_avg_5", Value: avg.Load5},
			interfaces.Metric{Name: "cpu.load_avg_15", Value: avg.Load15},
		)
	}

	if c.enableTemperature {
		if t, ok := readTemperature(ctx); ok {
			metrics = append(metrics, interfaces.Metric{Name: "cpu.temperature", Value: t, Unit: "C"})
		}
	}

	c.mu.Lock()
	c.cachedMetrics = metrics
	c.lastCollect = time.Now()
	c.mu.Unlock()

	return metrics, nil
}

// readTemperature returns the first sensor reading, if any
func readTemperature(ctx context.Context) (float64, bool) {
	temps, err := host.SensorsTemperaturesWithContext(ctx)
	if err != nil || len(temps) == 0 {
		return 0, false
	}
	for _, t := range temps {
		if t.Temperature > 0 {
			return t.Temperature, true
		}
	}
	return 0, false
}
