// Package interfaces defines the core contracts shared across the monitor.
package interfaces

import "context"

// Metric represents a single collected metric value
type Metric struct {
	Name  string
	Value float64
	Unit  string
}

// Collector defines the contract every metric collector implements
type Collector interface {
	// Start starts the collector
	Start(ctx context.Context) error

	// Stop stops the collector
	Stop() error

	// Collect collects the current metric values
	Collect(ctx context.Context) ([]Metric, error)
}
