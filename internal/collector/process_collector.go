package collector

import (
	"context"
	"runtime"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/config"
	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/models"
	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/pkg/interfaces"
)

// ProcessCollector process count collector
type ProcessCollector struct {
	config *config.Config
	stopCh chan struct{}
}

// NewProcessCollector creates a process collector
func NewProcessCollector(cfg *config.Config) *ProcessCollector {
	return &ProcessCollector{
		config: cfg,
		stopCh: make(chan struct{}),
	}
}

// Start starts the collector
func (c *ProcessCollector) Start(ctx context.Context) error {
	return nil
}

// Stop stops the collector
func (c *ProcessCollector) Stop() error {
	close(c.stopCh)
	return nil
}

// Collect collects the process count
func (c *ProcessCollector) Collect(ctx context.Context) ([]interfaces.Metric, error) {
	pids, err := process.PidsWithContext(ctx)
	if err != nil {
		return nil, err
	}
	return []interfaces.Metric{
		{Name: "process.count", Value: float64(len(pids))},
	}, nil
}

// CollectHostInfo reads static host information once at startup
func CollectHostInfo(ctx context.Context) models.HostInfo {
	info := models.HostInfo{
		OS:           runtime.GOOS,
		Architecture: runtime.GOARCH,
		CPUCores:     runtime.NumCPU(),
	}

	if hi, err := host.InfoWithContext(ctx); err == nil {
		info.Hostname = hi.Hostname
		info.Platform = hi.Platform
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		info.TotalMemory = vm.Total
	}

	return info
}
