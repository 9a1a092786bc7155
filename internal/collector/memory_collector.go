package collector

import (
	"context"

	"github.com/shirou/gopsutil/v3/mem"

	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/config"
	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/pkg/interfaces"
)

const bytesPerGB = 1024 * 1024 * 1024

// MemoryCollector virtual memory collector
type MemoryCollector struct {
	config *config.Config
	stopCh chan struct{}
}

// NewMemoryCollector creates a memory collector
func NewMemoryCollector(cfg *config.Config) *MemoryCollector {
	return &MemoryCollector{
		config: cfg,
		stopCh: make(chan struct{}),
	}
}

// Start starts the collector
func (c *MemoryCollector) Start(ctx context.Context) error {
	return nil
}

// Stop stops the collector
func (c *MemoryCollector) Stop() error {
	close(c.stopCh)
	return nil
}

// Collect collects memory metrics
func (c *MemoryCollector) Collect(ctx context.Context) ([]interfaces.Metric, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, err
	}

	return []interfaces.Metric{
		{Name: "memory.usage", Value: vm.UsedPercent, Unit: "%"},
		{Name: "memory.total", Value: float64(vm.Total) / bytesPerGB, Unit: "GB"},
		{Name: "memory.used", Value: float64(vm.Used) / bytesPerGB, Unit: "GB"},
	}, nil
}
