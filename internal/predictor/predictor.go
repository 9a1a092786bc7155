package predictor

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/config"
	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/models"
)

// logisticModel trained logistic-regression coefficients over
// (cpu, ram, disk) percent features
type logisticModel struct {
	Bias    float64 `json:"bias"`
	Weights struct {
		CPU  float64 `json:"cpu"`
		RAM  float64 `json:"ram"`
		Disk float64 `json:"disk"`
	} `json:"weights"`
}

// features averaged feature vector assembled from recent samples
type features struct {
	cpu  float64
	ram  float64
	disk float64
}

// Predictor hybrid failure predictor: trained model when available,
// rule-based estimate otherwise
type Predictor struct {
	config   *config.PredictConfig
	model    *logisticModel
	dataFile string
	mu       sync.Mutex
	now      func() time.Time
}

// NewPredictor creates a predictor, loading the model file if present.
// A missing or broken model is not an error; prediction falls back to
// the rule-based estimate.
func NewPredictor(cfg *config.PredictConfig) *Predictor {
	p := &Predictor{
		config:   cfg,
		dataFile: cfg.DataFile,
		now:      time.Now,
	}

	if cfg.Enabled {
		p.loadModel()
	}

	return p
}

// loadModel loads the JSON model file
func (p *Predictor) loadModel() {
	data, err := os.ReadFile(p.config.ModelPath)
	if err != nil {
		log.Printf("ML model not found, using rule-based prediction: %v", err)
		return
	}

	model := &logisticModel{}
	if err := json.Unmarshal(data, model); err != nil {
		log.Printf("failed to parse ML model: %v", err)
		return
	}

	p.model = model
	log.Printf("ML model loaded from %s", p.config.ModelPath)
}

// ModelLoaded reports whether a trained model is in use
func (p *Predictor) ModelLoaded() bool {
	return p.model != nil
}

// Predict estimates the failure probability from recent metric history.
// Empty history yields a sentinel result with a nil probability; the
// caller never receives an error.
func (p *Predictor) Predict(history []models.MetricSample) *models.PredictionResult {
	now := p.now()

	if len(history) == 0 {
		return &models.PredictionResult{
			FailureProbability: nil,
			Mode:               models.PredictionModeUnavailable,
			Message:            "insufficient metric history",
			Timestamp:          now,
		}
	}

	f := p.assembleFeatures(history)

	var result *models.PredictionResult
	if p.model != nil {
		result = p.modelPrediction(f, now)
	} else {
		result = p.rulePrediction(f, now)
	}

	p.appendRecord(result)
	return result
}

// assembleFeatures averages the most recent window of samples
func (p *Predictor) assembleFeatures(history []models.MetricSample) features {
	window := p.config.WindowSize
	if window <= 0 || window > len(history) {
		window = len(history)
	}

	recent := history[len(history)-window:]
	f := features{}
	for _, s := range recent {
		f.cpu += s.CPUPercent
		f.ram += s.RAMPercent
		f.disk += s.DiskPercent
	}
	n := float64(len(recent))
	f.cpu /= n
	f.ram /= n
	f.disk /= n
	return f
}

// modelPrediction runs logistic inference over the feature vector
func (p *Predictor) modelPrediction(f features, now time.Time) *models.PredictionResult {
	z := p.model.Bias +
		p.model.Weights.CPU*f.cpu +
		p.model.Weights.RAM*f.ram +
		p.model.Weights.Disk*f.disk

	prob := sigmoid(z)
	confidence := math.Max(prob, 1-prob)

	return &models.PredictionResult{
		FailureProbability: &prob,
		Confidence:         confidence,
		Mode:               models.PredictionModeML,
		HighRisk:           prob >= p.config.ConfidenceThreshold,
		Message:            fmt.Sprintf("ML-based failure prediction (risk %.0f%%)", prob*100),
		Timestamp:          now,
	}
}

// rulePrediction estimates risk from fixed thresholds
func (p *Predictor) rulePrediction(f features, now time.Time) *models.PredictionResult {
	risk := 0

	switch {
	case f.cpu > 85:
		risk += 40
	case f.cpu > 70:
		risk += 20
	}
	switch {
	case f.ram > 90:
		risk += 40
	case f.ram > 75:
		risk += 20
	}
	if f.disk > 85 {
		risk += 20
	}
	if risk > 100 {
		risk = 100
	}

	prob := float64(risk) / 100
	confidence := (60 + float64(risk)/4) / 100

	return &models.PredictionResult{
		FailureProbability: &prob,
		Confidence:         confidence,
		Mode:               models.PredictionModeRuleBased,
		HighRisk:           prob >= p.config.ConfidenceThreshold,
		Message:            fmt.Sprintf("Rule-based failure prediction (risk %d%%)", risk),
		Timestamp:          now,
	}
}

// predictionRecord one JSONL line in the prediction data file
type predictionRecord struct {
	Timestamp          string   `json:"timestamp"`
	Mode               string   `json:"mode"`
	FailureProbability *float64 `json:"failure_probability"`
	Confidence         float64  `json:"confidence"`
}

// appendRecord appends the prediction to the data file, best effort
func (p *Predictor) appendRecord(result *models.PredictionResult) {
	if p.dataFile == "" {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	record := predictionRecord{
		Timestamp:          result.Timestamp.Format("2006-01-02 15:04:05"),
		Mode:               result.Mode,
		FailureProbability: result.FailureProbability,
		Confidence:         result.Confidence,
	}
	data, err := json.Marshal(record)
	if err != nil {
		return
	}

	if err := os.MkdirAll(filepath.Dir(p.dataFile), 0755); err != nil {
		log.Printf("failed to create prediction data dir: %v", err)
		return
	}

	f, err := os.OpenFile(p.dataFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Printf("failed to open prediction data file: %v", err)
		return
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		log.Printf("failed to write prediction data: %v", err)
	}
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
