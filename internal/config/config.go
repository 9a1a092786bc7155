package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config monitor configuration
type Config struct {
	Monitor    MonitorConfig    `yaml:"monitor"`
	Thresholds ThresholdsConfig `yaml:"thresholds"`
	Health     HealthConfig     `yaml:"health"`
	Alerts     AlertsConfig     `yaml:"alerts"`
	Email      EmailConfig      `yaml:"email"`
	Kafka      KafkaConfig      `yaml:"kafka"`
	Redis      RedisConfig      `yaml:"redis"`
	Predict    PredictConfig    `yaml:"predict"`
	Server     ServerConfig     `yaml:"server"`
	WebSocket  WebSocketConfig  `yaml:"websocket"`
	Auth       AuthConfig       `yaml:"auth"`
	Report     ReportConfig     `yaml:"report"`
	Cleaner    CleanerConfig    `yaml:"cleaner"`
	Log        LogConfig        `yaml:"log"`
}

// MonitorConfig sampling loop configuration
type MonitorConfig struct {
	Interval           time.Duration `yaml:"interval"`            // sampling period
	HistorySize        int           `yaml:"history_size"`        // samples kept in memory/storage
	DiskPath           string        `yaml:"disk_path"`           // mount point to watch
	EnableNetwork      bool          `yaml:"enable_network"`      // collect network throughput
	EnableTemperature  bool          `yaml:"enable_temperature"`  // collect sensor temperature
	EnableProcessCount bool          `yaml:"enable_process_count"`
}

// ThresholdLadder severity thresholds for one metric
type ThresholdLadder struct {
	Warning  float64 `yaml:"warning"`
	High     float64 `yaml:"high"`
	Critical float64 `yaml:"critical"`
}

// ThresholdsConfig per-metric threshold ladders
type ThresholdsConfig struct {
	CPU          ThresholdLadder `yaml:"cpu"`           // percent
	RAM          ThresholdLadder `yaml:"ram"`           // percent
	Disk         ThresholdLadder `yaml:"disk"`          // percent
	Network      ThresholdLadder `yaml:"network"`       // MB/s
	Temperature  ThresholdLadder `yaml:"temperature"`   // celsius
	ProcessCount ThresholdLadder `yaml:"process_count"` // count
	LoadAverage  ThresholdLadder `yaml:"load_average"`  // 1-minute load
}

// ForMetric returns the ladder for a metric name
func (t *ThresholdsConfig) ForMetric(metric string) (ThresholdLadder, bool) {
	switch metric {
	case "cpu":
		return t.CPU, true
	case "ram":
		return t.RAM, true
	case "disk":
		return t.Disk, true
	case "network":
		return t.Network, true
	case "temperature":
		return t.Temperature, true
	case "process_count":
		return t.ProcessCount, true
	case "load_average":
		return t.LoadAverage, true
	}
	return ThresholdLadder{}, false
}

// HealthConfig health score configuration
type HealthConfig struct {
	Weights map[string]float64 `yaml:"weights"` // per-metric score weights
}

// AlertsConfig alert engine configuration
type AlertsConfig struct {
	Enabled   bool                     `yaml:"enabled"`
	Cooldown  time.Duration            `yaml:"cooldown"`  // default cooldown per alert kind
	Cooldowns map[string]time.Duration `yaml:"cooldowns"` // per-kind overrides, e.g. cpu_critical: 60s
	Channels  ChannelsConfig           `yaml:"channels"`
}

// ChannelsConfig alert delivery channels
type ChannelsConfig struct {
	Console bool `yaml:"console"`
	Email   bool `yaml:"email"`
	Kafka   bool `yaml:"kafka"`
}

// EmailConfig SMTP alert channel configuration
type EmailConfig struct {
	SMTPServer    string `yaml:"smtp_server"`
	SMTPPort      int    `yaml:"smtp_port"`
	SenderEmail   string `yaml:"sender_email"`
	ReceiverEmail string `yaml:"receiver_email"`
	Password      string `yaml:"password"`
}

// KafkaConfig Kafka alert channel configuration
type KafkaConfig struct {
	Brokers      []string      `yaml:"brokers"`
	Topic        string        `yaml:"topic"`
	BatchSize    int           `yaml:"batch_size"`
	BatchTimeout time.Duration `yaml:"batch_timeout"`
	MaxRetry     int           `yaml:"max_retry"`
}

// RedisConfig history storage configuration
type RedisConfig struct {
	Enabled        bool          `yaml:"enabled"`
	Address        string        `yaml:"address"`
	Addresses      []string      `yaml:"addresses"`
	Password       string        `yaml:"password"`
	DB             int           `yaml:"db"`
	PoolSize       int           `yaml:"pool_size"`
	KeyPrefix      string        `yaml:"key_prefix"`
	DefaultTTL     time.Duration `yaml:"default_ttl"`
	EnableCluster  bool          `yaml:"enable_cluster"`
	EnableSentinel bool          `yaml:"enable_sentinel"`
	SentinelAddrs  []string      `yaml:"sentinel_addrs"`
	SentinelMaster string        `yaml:"sentinel_master"`
}

// PredictConfig failure predictor configuration
type PredictConfig struct {
	Enabled             bool    `yaml:"enabled"`
	ModelPath           string  `yaml:"model_path"`
	DataFile            string  `yaml:"data_file"` // JSONL prediction log
	WindowSize          int     `yaml:"window_size"`
	ConfidenceThreshold float64 `yaml:"confidence_threshold"`
}

// ServerConfig dashboard API server configuration
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

// WebSocketConfig live push configuration
type WebSocketConfig struct {
	Enabled         bool          `yaml:"enabled"`
	Path            string        `yaml:"path"`
	ReadBufferSize  int           `yaml:"read_buffer_size"`
	WriteBufferSize int           `yaml:"write_buffer_size"`
	BufferSize      int           `yaml:"buffer_size"`
	PingInterval    time.Duration `yaml:"ping_interval"`
	PongTimeout     time.Duration `yaml:"pong_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
}

// AuthConfig dashboard authentication configuration
type AuthConfig struct {
	Enabled        bool          `yaml:"enabled"`
	JWTSecret      string        `yaml:"jwt_secret"`
	TokenExpiry    time.Duration `yaml:"token_expiration"`
	CookieName     string        `yaml:"cookie_name"`
	CookieSecure   bool          `yaml:"cookie_secure"`
	CookieHTTPOnly bool          `yaml:"cookie_http_only"`
	Username       string        `yaml:"username"`
	PasswordHash   string        `yaml:"password_hash"` // bcrypt hash
}

// ReportConfig report generation configuration
type ReportConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

// CleanerConfig auto cleaner configuration
type CleanerConfig struct {
	Enabled     bool          `yaml:"enabled"`
	MinInterval time.Duration `yaml:"min_interval"`
}

// LogConfig logging configuration
type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

// LoadConfig loads the configuration file and fills in defaults
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Default returns a configuration with all defaults applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	// monitor defaults
	if c.Monitor.Interval == 0 {
		c.Monitor.Interval = 5 * time.Second
	}
	if c.Monitor.HistorySize == 0 {
		c.Monitor.HistorySize = 720
	}
	if c.Monitor.DiskPath == "" {
		c.Monitor.DiskPath = "/"
	}

	// threshold ladder defaults
	if c.Thresholds.CPU == (ThresholdLadder{}) {
		c.Thresholds.CPU = ThresholdLadder{Warning: 60, High: 75, Critical: 90}
	}
	if c.Thresholds.RAM == (ThresholdLadder{}) {
		c.Thresholds.RAM = ThresholdLadder{Warning: 65, High: 80, Critical: 90}
	}
	if c.Thresholds.Disk == (ThresholdLadder{}) {
		c.Thresholds.Disk = ThresholdLadder{Warning: 70, High: 85, Critical: 95}
	}
	if c.Thresholds.Network == (ThresholdLadder{}) {
		c.Thresholds.Network = ThresholdLadder{Warning: 5, High: 10, Critical: 20}
	}
	if c.Thresholds.Temperature == (ThresholdLadder{}) {
		c.Thresholds.Temperature = ThresholdLadder{Warning: 60, High: 75, Critical: 85}
	}
	if c.Thresholds.ProcessCount == (ThresholdLadder{}) {
		c.Thresholds.ProcessCount = ThresholdLadder{Warning: 200, High: 300, Critical: 400}
	}
	if c.Thresholds.LoadAverage == (ThresholdLadder{}) {
		c.Thresholds.LoadAverage = ThresholdLadder{Warning: 1.5, High: 3.0, Critical: 5.0}
	}

	// health score weights
	if len(c.Health.Weights) == 0 {
		c.Health.Weights = map[string]float64{
			"cpu":         0.30,
			"ram":         0.30,
			"disk":        0.25,
			"network":     0.10,
			"temperature": 0.05,
		}
	}

	// alert defaults
	if c.Alerts.Cooldown == 0 {
		c.Alerts.Cooldown = 300 * time.Second
	}

	// kafka defaults
	if c.Kafka.Topic == "" {
		c.Kafka.Topic = "health-alerts"
	}
	if c.Kafka.BatchSize == 0 {
		c.Kafka.BatchSize = 100
	}
	if c.Kafka.BatchTimeout == 0 {
		c.Kafka.BatchTimeout = 1 * time.Second
	}
	if c.Kafka.MaxRetry == 0 {
		c.Kafka.MaxRetry = 3
	}

	// redis defaults
	if c.Redis.Address == "" && len(c.Redis.Addresses) == 0 {
		c.Redis.Address = "localhost:6379"
	}
	if c.Redis.PoolSize == 0 {
		c.Redis.PoolSize = 10
	}
	if c.Redis.KeyPrefix == "" {
		c.Redis.KeyPrefix = "healthmon:"
	}
	if c.Redis.DefaultTTL == 0 {
		c.Redis.DefaultTTL = 24 * time.Hour
	}

	// predictor defaults
	if c.Predict.ModelPath == "" {
		c.Predict.ModelPath = "ml/model.json"
	}
	if c.Predict.WindowSize == 0 {
		c.Predict.WindowSize = 12
	}
	if c.Predict.ConfidenceThreshold == 0 {
		c.Predict.ConfidenceThreshold = 0.75
	}

	// server defaults
	if c.Server.Host == "" {
		c.Server.Host = "127.0.0.1"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 5000
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10 * time.Second
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60 * time.Second
	}

	// websocket defaults
	if c.WebSocket.Path == "" {
		c.WebSocket.Path = "/ws"
	}
	if c.WebSocket.ReadBufferSize == 0 {
		c.WebSocket.ReadBufferSize = 1024
	}
	if c.WebSocket.WriteBufferSize == 0 {
		c.WebSocket.WriteBufferSize = 1024
	}
	if c.WebSocket.BufferSize == 0 {
		c.WebSocket.BufferSize = 256
	}
	if c.WebSocket.PingInterval == 0 {
		c.WebSocket.PingInterval = 30 * time.Second
	}
	if c.WebSocket.PongTimeout == 0 {
		c.WebSocket.PongTimeout = 60 * time.Second
	}
	if c.WebSocket.WriteTimeout == 0 {
		c.WebSocket.WriteTimeout = 10 * time.Second
	}

	// auth defaults
	if c.Auth.TokenExpiry == 0 {
		c.Auth.TokenExpiry = 1 * time.Hour
	}
	if c.Auth.CookieName == "" {
		c.Auth.CookieName = "token"
	}
	if c.Auth.Username == "" {
		c.Auth.Username = "admin"
	}

	// email defaults
	if c.Email.SMTPPort == 0 {
		c.Email.SMTPPort = 587
	}

	// report defaults
	if c.Report.Dir == "" {
		c.Report.Dir = "reports"
	}

	// cleaner defaults
	if c.Cleaner.MinInterval == 0 {
		c.Cleaner.MinInterval = 10 * time.Minute
	}

	// predictor data file
	if c.Predict.DataFile == "" {
		c.Predict.DataFile = "data/prediction_data.jsonl"
	}

	// log defaults
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// CooldownFor returns the cooldown for an alert kind
func (a *AlertsConfig) CooldownFor(kind string) time.Duration {
	if d, ok := a.Cooldowns[kind]; ok && d > 0 {
		return d
	}
	return a.Cooldown
}
