package storage

import (
	"context"
	"sync"

	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/models"
)

// MemoryStorage in-process storage with a bounded sample history.
// Used when Redis is disabled or unreachable.
type MemoryStorage struct {
	mu         sync.RWMutex
	maxHistory int
	samples    []models.MetricSample
	analysis   *models.AnalysisResult
	prediction *models.PredictionResult
}

// NewMemoryStorage creates an in-memory storage holding up to maxHistory samples
func NewMemoryStorage(maxHistory int) *MemoryStorage {
	if maxHistory <= 0 {
		maxHistory = 720
	}
	return &MemoryStorage{
		maxHistory: maxHistory,
		samples:    make([]models.MetricSample, 0, maxHistory),
	}
}

// SaveSample stores a sample
func (s *MemoryStorage) SaveSample(ctx context.Context, sample *models.MetricSample) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.samples) >= s.maxHistory {
		copy(s.samples, s.samples[1:])
		s.samples[len(s.samples)-1] = *sample
	} else {
		s.samples = append(s.samples, *sample)
	}
	return nil
}

// LatestSample returns the most recent sample
func (s *MemoryStorage) LatestSample(ctx context.Context) (*models.MetricSample, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.samples) == 0 {
		return nil, nil
	}
	latest := s.samples[len(s.samples)-1]
	return &latest, nil
}

// RecentSamples returns up to n samples, oldest first
func (s *MemoryStorage) RecentSamples(ctx context.Context, n int) ([]models.MetricSample, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n <= 0 || n > len(s.samples) {
		n = len(s.samples)
	}
	out := make([]models.MetricSample, n)
	copy(out, s.samples[len(s.samples)-n:])
	return out, nil
}

// SaveAnalysis stores the latest analysis result
func (s *MemoryStorage) SaveAnalysis(ctx context.Context, result *models.AnalysisResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analysis = result
	return nil
}

// LatestAnalysis returns the most recent analysis
func (s *MemoryStorage) LatestAnalysis(ctx context.Context) (*models.AnalysisResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.analysis, nil
}

// SavePrediction stores the latest prediction
func (s *MemoryStorage) SavePrediction(ctx context.Context, result *models.PredictionResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prediction = result
	return nil
}

// LatestPrediction returns the most recent prediction
func (s *MemoryStorage) LatestPrediction(ctx context.Context) (*models.PredictionResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prediction, nil
}

// Close is a no-op for memory storage
func (s *MemoryStorage) Close() error {
	return nil
}
