package storage

import (
	"context"

	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/models"
)

// Storage snapshot and history store for the monitor.
// The monitor loop is the only writer; the API and report generator read.
type Storage interface {
	// SaveSample stores a sample as the latest and appends it to history
	SaveSample(ctx context.Context, sample *models.MetricSample) error

	// LatestSample returns the most recent sample, or nil when none exists
	LatestSample(ctx context.Context) (*models.MetricSample, error)

	// RecentSamples returns up to n samples, oldest first
	RecentSamples(ctx context.Context, n int) ([]models.MetricSample, error)

	// SaveAnalysis stores the latest analysis result
	SaveAnalysis(ctx context.Context, result *models.AnalysisResult) error

	// LatestAnalysis returns the most recent analysis, or nil
	LatestAnalysis(ctx context.Context) (*models.AnalysisResult, error)

	// SavePrediction stores the latest prediction
	SavePrediction(ctx context.Context, result *models.PredictionResult) error

	// LatestPrediction returns the most recent prediction, or nil
	LatestPrediction(ctx context.Context) (*models.PredictionResult, error)

	// Close closes the storage
	Close() error
}
