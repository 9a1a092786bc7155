package collector

import (
	"context"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/net"

	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/config"
	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/pkg/interfaces"
)

const bytesPerMB = 1024 * 1024

// NetworkCollector network throughput collector.
// Rates are derived from the counter delta between two consecutive ticks.
type NetworkCollector struct {
	config      *config.Config
	stopCh      chan struct{}
	mu          sync.Mutex
	prevSent    uint64
	prevRecv    uint64
	prevAt      time.Time
	initialized bool
}

// NewNetworkCollector creates a network collector
func NewNetworkCollector(cfg *config.Config) *NetworkCollector {
	return &NetworkCollector{
		config: cfg,
		stopCh: make(chan struct{}),
	}
}

// Start primes the counter baseline
func (c *NetworkCollector) Start(ctx context.Context) error {
	counters, err := net.IOCountersWithContext(ctx, false)
	if err != nil || len(counters) == 0 {
		// first Collect will prime instead
		return nil
	}
	c.mu.Lock()
	c.prevSent = counters[0].BytesSent
	c.prevRecv = counters[0].BytesRecv
	c.prevAt = time.Now()
	c.initialized = true
	c.mu.Unlock()
	return nil
}

// Stop stops the collector
func (c *NetworkCollector) Stop() error {
	close(c.stopCh)
	return nil
}

// Collect collects network throughput metrics
func (c *NetworkCollector) Collect(ctx context.Context) ([]interfaces.Metric, error) {
	counters, err := net.IOCountersWithContext(ctx, false)
	if err != nil {
		return nil, err
	}
	if len(counters) == 0 {
		return nil, nil
	}

	now := time.Now()
	total := counters[0]

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		c.prevSent = total.BytesSent
		c.prevRecv = total.BytesRecv
		c.prevAt = now
		c.initialized = true
		return []interfaces.Metric{
			{Name: "network.tx_rate", Value: 0, Unit: "MB/s"},
			{Name: "network.rx_rate", Value: 0, Unit: "MB/s"},
		}, nil
	}

	elapsed := now.Sub(c.prevAt).Seconds()
	if elapsed <= 0 {
		elapsed = 1
	}

	txRate := float64(total.BytesSent-c.prevSent) / elapsed / bytesPerMB
	rxRate := float64(total.BytesRecv-c.prevRecv) / elapsed / bytesPerMB

	// counters reset on interface restart, report zero for that tick
	if total.BytesSent < c.prevSent || total.BytesRecv < c.prevRecv {
		txRate, rxRate = 0, 0
	}

	c.prevSent = total.BytesSent
	c.prevRecv = total.BytesRecv
	c.prevAt = now

	return []interfaces.Metric{
		{Name: "network.tx_rate", Value: txRate, Unit: "MB/s"},
		{Name: "network.rx_rate", Value: rxRate, Unit: "MB/s"},
	}, nil
}
