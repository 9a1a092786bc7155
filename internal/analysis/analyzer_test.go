package analysis

import (
	"testing"
	"time"

	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/config"
	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/models"
)

func TestStatusFor(t *testing.T) {
	ladder := config.ThresholdLadder{Warning: 60, High: 75, Critical: 90}

	tests := []struct {
		value float64
		want  models.Status
	}{
		{0, models.StatusNormal},
		{59.9, models.StatusNormal},
		{60, models.StatusWarning},
		{74.9, models.StatusWarning},
		{75, models.StatusHigh},
		{89.9, models.StatusHigh},
		{90, models.StatusCritical},
		{100, models.StatusCritical},
	}

	for _, tt := range tests {
		if got := StatusFor(tt.value, ladder); got != tt.want {
			t.Errorf("StatusFor(%v) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestScoreAllNormal(t *testing.T) {
	results := []models.MetricStatus{
		{Metric: "cpu", Value: 10, Status: models.StatusNormal},
		{Metric: "ram", Value: 20, Status: models.StatusNormal},
		{Metric: "disk", Value: 30, Status: models.StatusNormal},
	}
	weights := map[string]float64{"cpu": 0.30, "ram": 0.30, "disk": 0.25}

	if got := Score(results, weights); got != 100 {
		t.Errorf("Score = %d, want 100", got)
	}
}

func TestScoreAllCritical(t *testing.T) {
	results := []models.MetricStatus{
		{Metric: "cpu", Value: 99, Status: models.StatusCritical},
		{Metric: "ram", Value: 99, Status: models.StatusCritical},
		{Metric: "disk", Value: 99, Status: models.StatusCritical},
	}
	weights := map[string]float64{"cpu": 0.30, "ram": 0.30, "disk": 0.25}

	if got := Score(results, weights); got != 0 {
		t.Errorf("Score = %d, want 0", got)
	}
}

func TestScoreBounds(t *testing.T) {
	weights := map[string]float64{"cpu": 0.30, "ram": 0.30, "disk": 0.25}

	statuses := []models.Status{
		models.StatusNormal, models.StatusWarning, models.StatusHigh, models.StatusCritical,
	}
	for _, cpu := range statuses {
		for _, ram := range statuses {
			for _, disk := range statuses {
				results := []models.MetricStatus{
					{Metric: "cpu", Status: cpu},
					{Metric: "ram", Status: ram},
					{Metric: "disk", Status: disk},
				}
				got := Score(results, weights)
				if got < 0 || got > 100 {
					t.Fatalf("Score(%v,%v,%v) = %d, out of [0,100]", cpu, ram, disk, got)
				}
			}
		}
	}
}

func TestScoreEmptyResults(t *testing.T) {
	if got := Score(nil, map[string]float64{"cpu": 1}); got != 100 {
		t.Errorf("Score(nil) = %d, want 100", got)
	}
}

func TestScoreUnweightedMetricIgnored(t *testing.T) {
	results := []models.MetricStatus{
		{Metric: "cpu", Status: models.StatusNormal},
		{Metric: "process_count", Status: models.StatusCritical},
	}
	weights := map[string]float64{"cpu": 0.30}

	if got := Score(results, weights); got != 100 {
		t.Errorf("Score = %d, want 100 when only unweighted metric is abnormal", got)
	}
}

func TestScoreMonotonic(t *testing.T) {
	weights := map[string]float64{"cpu": 0.30, "ram": 0.30}

	base := Score([]models.MetricStatus{
		{Metric: "cpu", Status: models.StatusNormal},
		{Metric: "ram", Status: models.StatusNormal},
	}, weights)
	worse := Score([]models.MetricStatus{
		{Metric: "cpu", Status: models.StatusCritical},
		{Metric: "ram", Status: models.StatusNormal},
	}, weights)

	if worse >= base {
		t.Errorf("worsening a metric did not lower the score: %d >= %d", worse, base)
	}
}

func TestAnalyzeHealthySample(t *testing.T) {
	cfg := config.Default()
	analyzer := NewAnalyzer(cfg)

	sample := &models.MetricSample{
		Timestamp:   time.Now(),
		CPUPercent:  10,
		RAMPercent:  20,
		DiskPercent: 30,
	}

	result := analyzer.Analyze(sample)
	if result.HealthScore != 100 {
		t.Errorf("HealthScore = %d, want 100", result.HealthScore)
	}
	if result.FailureRisk != 0 {
		t.Errorf("FailureRisk = %d, want 0", result.FailureRisk)
	}
	if len(result.Suggestions) != 0 {
		t.Errorf("Suggestions = %v, want none", result.Suggestions)
	}
}

func TestAnalyzeCriticalCPU(t *testing.T) {
	cfg := config.Default()
	analyzer := NewAnalyzer(cfg)

	sample := &models.MetricSample{
		Timestamp:   time.Now(),
		CPUPercent:  95,
		RAMPercent:  20,
		DiskPercent: 30,
	}

	result := analyzer.Analyze(sample)

	var cpuStatus models.Status
	for _, r := range result.Results {
		if r.Metric == "cpu" {
			cpuStatus = r.Status
		}
	}
	if cpuStatus != models.StatusCritical {
		t.Errorf("cpu status = %v, want critical", cpuStatus)
	}
	if result.HealthScore >= 100 {
		t.Errorf("HealthScore = %d, want below 100", result.HealthScore)
	}
	if result.FailureRisk != 35 {
		t.Errorf("FailureRisk = %d, want 35", result.FailureRisk)
	}
	if len(result.Suggestions) == 0 {
		t.Error("expected suggestions for critical cpu")
	}
}

func TestAnalyzeOptionalMetrics(t *testing.T) {
	cfg := config.Default()
	cfg.Monitor.EnableNetwork = true
	cfg.Monitor.EnableProcessCount = true
	analyzer := NewAnalyzer(cfg)

	temp := 70.0
	sample := &models.MetricSample{
		Timestamp:    time.Now(),
		CPUPercent:   10,
		RAMPercent:   20,
		DiskPercent:  30,
		NetworkTxMBs: 3,
		NetworkRxMBs: 4,
		Temperature:  &temp,
		ProcessCount: 250,
		LoadAverage:  &models.LoadAverage{Load1: 2.0},
	}

	result := analyzer.Analyze(sample)

	want := map[string]models.Status{
		"network":       models.StatusWarning, // 7 MB/s combined
		"temperature":   models.StatusWarning, // 70 C
		"process_count": models.StatusWarning, // 250
		"load_average":  models.StatusWarning, // 2.0
	}
	got := make(map[string]models.Status)
	for _, r := range result.Results {
		got[r.Metric] = r.Status
	}
	for metric, status := range want {
		if got[metric] != status {
			t.Errorf("%s status = %v, want %v", metric, got[metric], status)
		}
	}
}

func TestAnalyzeSkipsAbsentOptionalMetrics(t *testing.T) {
	cfg := config.Default()
	analyzer := NewAnalyzer(cfg)

	sample := &models.MetricSample{
		Timestamp:   time.Now(),
		CPUPercent:  10,
		RAMPercent:  20,
		DiskPercent: 30,
	}

	result := analyzer.Analyze(sample)
	for _, r := range result.Results {
		switch r.Metric {
		case "temperature", "load_average", "network", "process_count":
			t.Errorf("metric %s evaluated without data", r.Metric)
		}
	}
}

func TestSuggestionDeduplication(t *testing.T) {
	engine := NewSuggestionEngine()

	results := []models.MetricStatus{
		{Metric: "cpu", Status: models.StatusWarning},
		{Metric: "cpu", Status: models.StatusWarning},
	}

	suggestions := engine.Generate(results)
	seen := make(map[string]int)
	for _, s := range suggestions {
		seen[s]++
		if seen[s] > 1 {
			t.Errorf("duplicate suggestion: %q", s)
		}
	}
	if len(suggestions) != 2 {
		t.Errorf("got %d suggestions, want 2", len(suggestions))
	}
}

func TestEstimateFailureRisk(t *testing.T) {
	tests := []struct {
		statuses []models.Status
		want     int
	}{
		{[]models.Status{models.StatusNormal}, 0},
		{[]models.Status{models.StatusWarning}, 10},
		{[]models.Status{models.StatusHigh}, 20},
		{[]models.Status{models.StatusCritical}, 35},
		{[]models.Status{models.StatusCritical, models.StatusCritical, models.StatusCritical}, 100},
	}

	for _, tt := range tests {
		var results []models.MetricStatus
		for _, s := range tt.statuses {
			results = append(results, models.MetricStatus{Status: s})
		}
		if got := estimateFailureRisk(results); got != tt.want {
			t.Errorf("estimateFailureRisk(%v) = %d, want %d", tt.statuses, got, tt.want)
		}
	}
}

func TestWindowRolling(t *testing.T) {
	w := NewWindow(3, 0)

	for _, v := range []float64{1, 2, 3, 4} {
		w.Add(v)
	}

	if w.Len() != 3 {
		t.Errorf("Len = %d, want 3", w.Len())
	}
	if got := w.Avg(); got != 3 {
		t.Errorf("Avg = %v, want 3", got)
	}
	if got := w.Max(); got != 4 {
		t.Errorf("Max = %v, want 4", got)
	}
	if last, ok := w.Last(); !ok || last != 4 {
		t.Errorf("Last = %v,%v, want 4,true", last, ok)
	}
}
