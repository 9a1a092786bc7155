package analysis

import (
	"log"
	"math"
	"time"

	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/config"
	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/models"
)

// severityPenalty score penalty per metric status
var severityPenalty = map[models.Status]float64{
	models.StatusNormal:   0,
	models.StatusWarning:  25,
	models.StatusHigh:     50,
	models.StatusCritical: 100,
}

// failure risk added per non-normal metric status
var severityRisk = map[models.Status]int{
	models.StatusWarning:  10,
	models.StatusHigh:     20,
	models.StatusCritical: 35,
}

// StatusFor maps a metric value onto a threshold ladder
func StatusFor(value float64, ladder config.ThresholdLadder) models.Status {
	switch {
	case value >= ladder.Critical:
		return models.StatusCritical
	case value >= ladder.High:
		return models.StatusHigh
	case value >= ladder.Warning:
		return models.StatusWarning
	default:
		return models.StatusNormal
	}
}

// Analyzer analyzes metric samples against the configured thresholds
type Analyzer struct {
	config      *config.Config
	suggestions *SuggestionEngine
	windows     map[string]*Window
}

// NewAnalyzer creates an analyzer
func NewAnalyzer(cfg *config.Config) *Analyzer {
	windowSize := cfg.Monitor.HistorySize
	if windowSize <= 0 {
		windowSize = 720
	}
	maxAge := time.Duration(windowSize) * cfg.Monitor.Interval

	windows := make(map[string]*Window)
	for _, metric := range []string{"cpu", "ram", "disk", "network", "temperature"} {
		windows[metric] = NewWindow(windowSize, maxAge)
	}

	return &Analyzer{
		config:      cfg,
		suggestions: NewSuggestionEngine(),
		windows:     windows,
	}
}

// Analyze analyzes one sample and returns statuses, health score,
// failure risk and suggestions. Alerts are filled in by the alert engine.
func (a *Analyzer) Analyze(sample *models.MetricSample) *models.AnalysisResult {
	results := a.statuses(sample)

	score := Score(results, a.config.Health.Weights)
	risk := estimateFailureRisk(results)
	suggestions := a.suggestions.Generate(results)

	log.Printf("analysis completed | health score: %d | failure risk: %d%%", score, risk)

	return &models.AnalysisResult{
		Timestamp:   sample.Timestamp,
		Results:     results,
		HealthScore: score,
		FailureRisk: risk,
		Suggestions: suggestions,
	}
}

// statuses evaluates every monitored metric against its ladder
func (a *Analyzer) statuses(sample *models.MetricSample) []models.MetricStatus {
	t := &a.config.Thresholds
	results := make([]models.MetricStatus, 0, 7)

	add := func(metric string, value float64, ladder config.ThresholdLadder) {
		status := StatusFor(value, ladder)
		results = append(results, models.MetricStatus{
			Metric:    metric,
			Value:     value,
			Status:    status,
			Threshold: crossedThreshold(status, ladder),
		})
		if w, ok := a.windows[metric]; ok {
			w.Add(value)
		}
	}

	add("cpu", clampPercent(sample.CPUPercent), t.CPU)
	add("ram", clampPercent(sample.RAMPercent), t.RAM)
	add("disk", clampPercent(sample.DiskPercent), t.Disk)

	if a.config.Monitor.EnableNetwork {
		add("network", math.Max(sample.NetworkMBs(), 0), t.Network)
	}
	if sample.Temperature != nil {
		add("temperature", *sample.Temperature, t.Temperature)
	}
	if a.config.Monitor.EnableProcessCount && sample.ProcessCount > 0 {
		add("process_count", float64(sample.ProcessCount), t.ProcessCount)
	}
	if sample.LoadAverage != nil {
		add("load_average", sample.LoadAverage.Load1, t.LoadAverage)
	}

	return results
}

// crossedThreshold returns the ladder step the status corresponds to
func crossedThreshold(status models.Status, ladder config.ThresholdLadder) float64 {
	switch status {
	case models.StatusCritical:
		return ladder.Critical
	case models.StatusHigh:
		return ladder.High
	case models.StatusWarning:
		return ladder.Warning
	}
	return 0
}

// Score calculates the weighted health score, clamped to [0,100].
// Metrics without a configured weight do not contribute.
func Score(results []models.MetricStatus, weights map[string]float64) int {
	const maxScore, minScore = 100, 0

	if len(results) == 0 {
		return maxScore
	}

	totalPenalty := 0.0
	totalWeight := 0.0
	for _, r := range results {
		weight, ok := weights[r.Metric]
		if !ok {
			continue
		}
		totalPenalty += weight * severityPenalty[r.Status]
		totalWeight += weight
	}

	if totalWeight == 0 {
		return maxScore
	}

	raw := float64(maxScore) - totalPenalty/totalWeight
	score := int(raw)
	if score > maxScore {
		score = maxScore
	}
	if score < minScore {
		score = minScore
	}
	return score
}

// estimateFailureRisk estimates a 0-100 failure risk from severity counts
func estimateFailureRisk(results []models.MetricStatus) int {
	risk := 0
	for _, r := range results {
		risk += severityRisk[r.Status]
	}
	if risk > 100 {
		risk = 100
	}
	return risk
}

// MetricAverage returns the windowed average for a metric
func (a *Analyzer) MetricAverage(metric string) (float64, bool) {
	w, ok := a.windows[metric]
	if !ok || w.Len() == 0 {
		return 0, false
	}
	return w.Avg(), true
}

func clampPercent(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
