package models

import (
	"time"
)

// Status severity level of a single metric
type Status string

const (
	StatusNormal   Status = "normal"
	StatusWarning  Status = "warning"
	StatusHigh     Status = "high"
	StatusCritical Status = "critical"
)

// Priority alert priority derived from a metric status
type Priority string

const (
	PriorityLow      Priority = "LOW"
	PriorityMedium   Priority = "MEDIUM"
	PriorityHigh     Priority = "HIGH"
	PriorityCritical Priority = "CRITICAL"
)

// PriorityFor maps a metric status to an alert priority
func PriorityFor(status Status) Priority {
	switch status {
	case StatusCritical:
		return PriorityCritical
	case StatusHigh:
		return PriorityHigh
	case StatusWarning:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// LoadAverage system load averages
type LoadAverage struct {
	Load1  float64 `json:"1_min"`
	Load5  float64 `json:"5_min"`
	Load15 float64 `json:"15_min"`
}

// MetricSample one snapshot of host metrics, immutable once captured
type MetricSample struct {
	Timestamp    time.Time    `json:"timestamp"`
	CPUPercent   float64      `json:"cpu_percent"`
	RAMPercent   float64      `json:"ram_percent"`
	RAMTotalGB   float64      `json:"ram_total_gb"`
	RAMUsedGB    float64      `json:"ram_used_gb"`
	DiskPercent  float64      `json:"disk_percent"`
	DiskTotalGB  float64      `json:"disk_total_gb"`
	DiskUsedGB   float64      `json:"disk_used_gb"`
	NetworkTxMBs float64      `json:"network_tx_mb_s"`
	NetworkRxMBs float64      `json:"network_rx_mb_s"`
	Temperature  *float64     `json:"temperature"` // nil when no sensor is available
	ProcessCount int          `json:"process_count"`
	LoadAverage  *LoadAverage `json:"load_average"` // nil on unsupported platforms
}

// NetworkMBs combined network throughput in MB/s
func (s *MetricSample) NetworkMBs() float64 {
	return s.NetworkTxMBs + s.NetworkRxMBs
}

// HealthScore derived overall system health, 0-100
type HealthScore struct {
	Value     int       `json:"value"`
	Timestamp time.Time `json:"timestamp"`
}

// MetricStatus analysis result for a single metric.
// Threshold is the ladder step the value crossed, zero when normal.
type MetricStatus struct {
	Metric    string  `json:"metric"`
	Value     float64 `json:"value"`
	Status    Status  `json:"status"`
	Threshold float64 `json:"threshold"`
}

// AlertRule a configured alert trigger
type AlertRule struct {
	Kind      string        `json:"kind"`
	Metric    string        `json:"metric"`
	Status    Status        `json:"status"`
	Threshold float64       `json:"threshold"`
	Cooldown  time.Duration `json:"cooldown"`
}

// AlertEvent a fired alert
type AlertEvent struct {
	Kind      string    `json:"kind"`
	Metric    string    `json:"metric"`
	Status    Status    `json:"status"`
	Priority  Priority  `json:"priority"`
	Value     float64   `json:"value"`
	Threshold float64   `json:"threshold"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// AnalysisResult full analysis of one metric sample
type AnalysisResult struct {
	Timestamp   time.Time      `json:"timestamp"`
	Results     []MetricStatus `json:"analysis"`
	HealthScore int            `json:"health_score"`
	FailureRisk int            `json:"failure_risk"`
	Suggestions []string       `json:"suggestions"`
	Alerts      []AlertEvent   `json:"alerts"`
}

// Prediction modes
const (
	PredictionModeML          = "ml"
	PredictionModeRuleBased   = "rule_based"
	PredictionModeUnavailable = "unavailable"
)

// PredictionResult failure prediction output.
// FailureProbability is in [0,1] and nil when no prediction is possible.
type PredictionResult struct {
	FailureProbability *float64  `json:"failure_probability"`
	Confidence         float64   `json:"confidence"`
	Mode               string    `json:"mode"`
	HighRisk           bool      `json:"high_risk"`
	Message            string    `json:"message"`
	Timestamp          time.Time `json:"timestamp"`
}

// HostInfo static host information
type HostInfo struct {
	Hostname     string `json:"hostname"`
	OS           string `json:"os"`
	Platform     string `json:"platform"`
	Architecture string `json:"architecture"`
	CPUCores     int    `json:"cpu_cores"`
	TotalMemory  uint64 `json:"total_memory"`
}
