package predictor

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/config"
	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/models"
)

func testConfig() *config.PredictConfig {
	return &config.PredictConfig{
		Enabled:             true,
		ModelPath:           "does-not-exist.json",
		WindowSize:          12,
		ConfidenceThreshold: 0.75,
	}
}

func samplesWith(cpu, ram, disk float64, n int) []models.MetricSample {
	samples := make([]models.MetricSample, n)
	for i := range samples {
		samples[i] = models.MetricSample{
			Timestamp:   time.Now(),
			CPUPercent:  cpu,
			RAMPercent:  ram,
			DiskPercent: disk,
		}
	}
	return samples
}

func TestPredictEmptyHistory(t *testing.T) {
	p := NewPredictor(testConfig())

	result := p.Predict(nil)
	if result.FailureProbability != nil {
		t.Errorf("FailureProbability = %v, want nil", *result.FailureProbability)
	}
	if result.Mode != models.PredictionModeUnavailable {
		t.Errorf("Mode = %q, want unavailable", result.Mode)
	}
	if result.Message == "" {
		t.Error("expected explanatory message")
	}
}

func TestPredictRuleBasedHealthy(t *testing.T) {
	p := NewPredictor(testConfig())

	result := p.Predict(samplesWith(10, 20, 30, 5))
	if result.Mode != models.PredictionModeRuleBased {
		t.Fatalf("Mode = %q, want rule_based", result.Mode)
	}
	if result.FailureProbability == nil || *result.FailureProbability != 0 {
		t.Errorf("FailureProbability = %v, want 0", result.FailureProbability)
	}
	if result.Confidence != 0.60 {
		t.Errorf("Confidence = %v, want 0.60", result.Confidence)
	}
	if result.HighRisk {
		t.Error("HighRisk = true for a healthy system")
	}
}

func TestPredictRuleBasedStressed(t *testing.T) {
	p := NewPredictor(testConfig())

	// cpu > 85 (+40), ram > 90 (+40), disk > 85 (+20) => risk 100
	result := p.Predict(samplesWith(95, 95, 95, 5))
	if result.FailureProbability == nil || *result.FailureProbability != 1.0 {
		t.Errorf("FailureProbability = %v, want 1.0", result.FailureProbability)
	}
	if result.Confidence != 0.85 {
		t.Errorf("Confidence = %v, want 0.85", result.Confidence)
	}
	if !result.HighRisk {
		t.Error("HighRisk = false at maximum risk")
	}
}

func TestPredictRuleBasedMidTier(t *testing.T) {
	p := NewPredictor(testConfig())

	// cpu > 70 (+20), ram > 75 (+20) => risk 40
	result := p.Predict(samplesWith(75, 80, 50, 5))
	if result.FailureProbability == nil || *result.FailureProbability != 0.40 {
		t.Errorf("FailureProbability = %v, want 0.40", result.FailureProbability)
	}
	if result.Confidence != 0.70 {
		t.Errorf("Confidence = %v, want 0.70", result.Confidence)
	}
}

func TestPredictProbabilityRange(t *testing.T) {
	p := NewPredictor(testConfig())

	for _, load := range []float64{0, 50, 72, 80, 88, 95, 100} {
		result := p.Predict(samplesWith(load, load, load, 3))
		if result.FailureProbability == nil {
			t.Fatalf("nil probability for load %v", load)
		}
		prob := *result.FailureProbability
		if prob < 0 || prob > 1 {
			t.Errorf("probability %v out of [0,1] for load %v", prob, load)
		}
	}
}

func TestPredictWithModel(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "model.json")

	model := map[string]interface{}{
		"bias": -6.5,
		"weights": map[string]float64{
			"cpu":  0.045,
			"ram":  0.038,
			"disk": 0.021,
		},
	}
	data, _ := json.Marshal(model)
	if err := os.WriteFile(modelPath, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg := testConfig()
	cfg.ModelPath = modelPath
	p := NewPredictor(cfg)

	if !p.ModelLoaded() {
		t.Fatal("model not loaded")
	}

	result := p.Predict(samplesWith(95, 95, 95, 5))
	if result.Mode != models.PredictionModeML {
		t.Fatalf("Mode = %q, want ml", result.Mode)
	}
	if result.FailureProbability == nil {
		t.Fatal("nil probability")
	}

	// z = -6.5 + 95*(0.045+0.038+0.021) = 3.38
	want := 1 / (1 + math.Exp(-3.38))
	if math.Abs(*result.FailureProbability-want) > 1e-9 {
		t.Errorf("probability = %v, want %v", *result.FailureProbability, want)
	}
	if math.Abs(result.Confidence-math.Max(want, 1-want)) > 1e-9 {
		t.Errorf("confidence = %v", result.Confidence)
	}
}

func TestPredictBrokenModelFallsBack(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "model.json")
	if err := os.WriteFile(modelPath, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := testConfig()
	cfg.ModelPath = modelPath
	p := NewPredictor(cfg)

	if p.ModelLoaded() {
		t.Fatal("broken model reported as loaded")
	}

	result := p.Predict(samplesWith(10, 20, 30, 5))
	if result.Mode != models.PredictionModeRuleBased {
		t.Errorf("Mode = %q, want rule_based", result.Mode)
	}
}

func TestPredictAppendsDataFile(t *testing.T) {
	dir := t.TempDir()

	cfg := testConfig()
	cfg.DataFile = filepath.Join(dir, "data", "predictions.jsonl")
	p := NewPredictor(cfg)

	p.Predict(samplesWith(10, 20, 30, 5))
	p.Predict(samplesWith(95, 95, 95, 5))

	data, err := os.ReadFile(cfg.DataFile)
	if err != nil {
		t.Fatalf("data file not written: %v", err)
	}

	lines := 0
	for _, b := range data {
		if b == '\n' {
			lines++
		}
	}
	if lines != 2 {
		t.Errorf("data file has %d lines, want 2", lines)
	}
}

func TestAssembleFeaturesWindow(t *testing.T) {
	cfg := testConfig()
	cfg.WindowSize = 2
	p := NewPredictor(cfg)

	history := []models.MetricSample{
		{CPUPercent: 100, RAMPercent: 100, DiskPercent: 100},
		{CPUPercent: 10, RAMPercent: 20, DiskPercent: 30},
		{CPUPercent: 20, RAMPercent: 40, DiskPercent: 50},
	}

	f := p.assembleFeatures(history)
	if f.cpu != 15 || f.ram != 30 || f.disk != 40 {
		t.Errorf("features = %+v, want averages over the last 2 samples", f)
	}
}
