package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/config"
	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/models"
)

// RedisStorage Redis-backed storage implementation.
// Latest values are plain keys, the sample history is a capped list.
type RedisStorage struct {
	client     redis.UniversalClient
	keyPrefix  string
	keyTTL     time.Duration
	maxHistory int
}

// NewRedisStorage creates a Redis storage from the configuration.
// Sentinel and cluster modes are supported like the single-node mode.
func NewRedisStorage(cfg *config.RedisConfig, maxHistory int) (*RedisStorage, error) {
	var client redis.UniversalClient

	if cfg.EnableSentinel && len(cfg.SentinelAddrs) > 0 {
		client = redis.NewFailoverClient(&redis.FailoverOptions{
			MasterName:    cfg.SentinelMaster,
			SentinelAddrs: cfg.SentinelAddrs,
			Password:      cfg.Password,
			DB:            cfg.DB,
			PoolSize:      cfg.PoolSize,
		})
	} else if cfg.EnableCluster && len(cfg.Addresses) > 1 {
		client = redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:        cfg.Addresses,
			Password:     cfg.Password,
			PoolSize:     cfg.PoolSize,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
		})
	} else {
		addr := cfg.Address
		if addr == "" && len(cfg.Addresses) > 0 {
			addr = cfg.Addresses[0]
		}
		client = redis.NewClient(&redis.Options{
			Addr:         addr,
			Password:     cfg.Password,
			DB:           cfg.DB,
			PoolSize:     cfg.PoolSize,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	if maxHistory <= 0 {
		maxHistory = 720
	}

	return &RedisStorage{
		client:     client,
		keyPrefix:  cfg.KeyPrefix,
		keyTTL:     cfg.DefaultTTL,
		maxHistory: maxHistory,
	}, nil
}

func (s *RedisStorage) key(name string) string {
	return s.keyPrefix + name
}

// setJSON stores a JSON-encoded value under the prefixed key
func (s *RedisStorage) setJSON(ctx context.Context, name string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	return s.client.Set(ctx, s.key(name), data, s.keyTTL).Err()
}

// getJSON loads a JSON-encoded value; found is false when the key is absent
func (s *RedisStorage) getJSON(ctx context.Context, name string, value interface{}) (bool, error) {
	data, err := s.client.Get(ctx, s.key(name)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("get %s: %w", name, err)
	}
	if err := json.Unmarshal(data, value); err != nil {
		return false, fmt.Errorf("unmarshal %s: %w", name, err)
	}
	return true, nil
}

// SaveSample stores the latest sample and appends it to the capped history list
func (s *RedisStorage) SaveSample(ctx context.Context, sample *models.MetricSample) error {
	if err := s.setJSON(ctx, "sample:latest", sample); err != nil {
		return err
	}

	data, err := json.Marshal(sample)
	if err != nil {
		return fmt.Errorf("marshal sample: %w", err)
	}

	histKey := s.key("sample:history")
	pipe := s.client.Pipeline()
	pipe.LPush(ctx, histKey, data)
	pipe.LTrim(ctx, histKey, 0, int64(s.maxHistory-1))
	if s.keyTTL > 0 {
		pipe.Expire(ctx, histKey, s.keyTTL)
	}
	_, err = pipe.Exec(ctx)
	return err
}

// LatestSample returns the most recent sample
func (s *RedisStorage) LatestSample(ctx context.Context) (*models.MetricSample, error) {
	sample := &models.MetricSample{}
	found, err := s.getJSON(ctx, "sample:latest", sample)
	if err != nil || !found {
		return nil, err
	}
	return sample, nil
}

// RecentSamples returns up to n samples, oldest first
func (s *RedisStorage) RecentSamples(ctx context.Context, n int) ([]models.MetricSample, error) {
	if n <= 0 || n > s.maxHistory {
		n = s.maxHistory
	}

	// history list is newest-first
	raw, err := s.client.LRange(ctx, s.key("sample:history"), 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}

	samples := make([]models.MetricSample, 0, len(raw))
	for i := len(raw) - 1; i >= 0; i-- {
		var sample models.MetricSample
		if err := json.Unmarshal([]byte(raw[i]), &sample); err != nil {
			continue
		}
		samples = append(samples, sample)
	}
	return samples, nil
}

// SaveAnalysis stores the latest analysis result
func (s *RedisStorage) SaveAnalysis(ctx context.Context, result *models.AnalysisResult) error {
	return s.setJSON(ctx, "analysis:latest", result)
}

// LatestAnalysis returns the most recent analysis
func (s *RedisStorage) LatestAnalysis(ctx context.Context) (*models.AnalysisResult, error) {
	result := &models.AnalysisResult{}
	found, err := s.getJSON(ctx, "analysis:latest", result)
	if err != nil || !found {
		return nil, err
	}
	return result, nil
}

// SavePrediction stores the latest prediction
func (s *RedisStorage) SavePrediction(ctx context.Context, result *models.PredictionResult) error {
	return s.setJSON(ctx, "prediction:latest", result)
}

// LatestPrediction returns the most recent prediction
func (s *RedisStorage) LatestPrediction(ctx context.Context) (*models.PredictionResult, error) {
	result := &models.PredictionResult{}
	found, err := s.getJSON(ctx, "prediction:latest", result)
	if err != nil || !found {
		return nil, err
	}
	return result, nil
}

// Close closes the Redis client
func (s *RedisStorage) Close() error {
	return s.client.Close()
}
