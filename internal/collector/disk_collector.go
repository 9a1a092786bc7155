package collector

import (
	"context"

	"github.com/shirou/gopsutil/v3/disk"

	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/config"
	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/pkg/interfaces"
)

// DiskCollector disk usage collector for the configured mount point
type DiskCollector struct {
	config *config.Config
	path   string
	stopCh chan struct{}
}

// NewDiskCollector creates a disk collector
func NewDiskCollector(cfg *config.Config) *DiskCollector {
	return &DiskCollector{
		config: cfg,
		path:   cfg.Monitor.DiskPath,
		stopCh: make(chan struct{}),
	}
}

// Start starts the collector
func (c *DiskCollector) Start(ctx context.Context) error {
	return nil
}

// Stop stops the collector
func (c *DiskCollector) Stop() error {
	close(c.stopCh)
	return nil
}

// Collect collects disk metrics
func (c *DiskCollector) Collect(ctx context.Context) ([]interfaces.Metric, error) {
	usage, err := disk.UsageWithContext(ctx, c.path)
	if err != nil {
		return nil, err
	}

	return []interfaces.Metric{
		{Name: "disk.usage", Value: usage.UsedPercent, Unit: "%"},
		{Name: "disk.total", Value: float64(usage.Total) / bytesPerGB, Unit: "GB"},
		{Name: "disk.used", Value: float64(usage.Used) / bytesPerGB, Unit: "GB"},
	}, nil
}
