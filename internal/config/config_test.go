package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	content := `
monitor:
  interval: 10s
  history_size: 100
  disk_path: "/data"
  enable_network: true

thresholds:
  cpu:
    warning: 50
    high: 70
    critical: 85

alerts:
  enabled: true
  cooldown: 120s
  cooldowns:
    cpu_critical: 30s
  channels:
    console: true

server:
  host: "0.0.0.0"
  port: 8080
`
	dir := t.TempDir()
	path := filepath.Join(dir, "monitor.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Monitor.Interval != 10*time.Second {
		t.Errorf("Interval = %v, want 10s", cfg.Monitor.Interval)
	}
	if cfg.Monitor.HistorySize != 100 {
		t.Errorf("HistorySize = %d, want 100", cfg.Monitor.HistorySize)
	}
	if cfg.Monitor.DiskPath != "/data" {
		t.Errorf("DiskPath = %q, want /data", cfg.Monitor.DiskPath)
	}
	if !cfg.Monitor.EnableNetwork {
		t.Error("EnableNetwork = false, want true")
	}

	if cfg.Thresholds.CPU.Critical != 85 {
		t.Errorf("CPU critical = %v, want 85", cfg.Thresholds.CPU.Critical)
	}
	// unset ladders take defaults
	if cfg.Thresholds.RAM.Critical != 90 {
		t.Errorf("RAM critical = %v, want default 90", cfg.Thresholds.RAM.Critical)
	}

	if cfg.Alerts.Cooldown != 120*time.Second {
		t.Errorf("Cooldown = %v, want 120s", cfg.Alerts.Cooldown)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Server.Port)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig("no-such-file.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	if cfg.Monitor.Interval != 5*time.Second {
		t.Errorf("Interval = %v, want 5s", cfg.Monitor.Interval)
	}
	if cfg.Monitor.HistorySize != 720 {
		t.Errorf("HistorySize = %d, want 720", cfg.Monitor.HistorySize)
	}
	if cfg.Alerts.Cooldown != 300*time.Second {
		t.Errorf("Cooldown = %v, want 300s", cfg.Alerts.Cooldown)
	}
	if cfg.Server.Port != 5000 {
		t.Errorf("Port = %d, want 5000", cfg.Server.Port)
	}
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Host = %q, want 127.0.0.1", cfg.Server.Host)
	}
	if cfg.Kafka.Topic != "health-alerts" {
		t.Errorf("Topic = %q, want health-alerts", cfg.Kafka.Topic)
	}
	if cfg.Redis.KeyPrefix != "healthmon:" {
		t.Errorf("KeyPrefix = %q, want healthmon:", cfg.Redis.KeyPrefix)
	}
	if cfg.Predict.WindowSize != 12 {
		t.Errorf("WindowSize = %d, want 12", cfg.Predict.WindowSize)
	}
	if cfg.Predict.ConfidenceThreshold != 0.75 {
		t.Errorf("ConfidenceThreshold = %v, want 0.75", cfg.Predict.ConfidenceThreshold)
	}

	weights := cfg.Health.Weights
	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	if sum < 0.999 || sum > 1.001 {
		t.Errorf("weight sum = %v, want 1.0", sum)
	}
	if weights["cpu"] != 0.30 || weights["disk"] != 0.25 {
		t.Errorf("unexpected weights: %v", weights)
	}
}

func TestForMetric(t *testing.T) {
	cfg := Default()

	ladder, ok := cfg.Thresholds.ForMetric("cpu")
	if !ok {
		t.Fatal("cpu ladder not found")
	}
	if ladder.Warning != 60 {
		t.Errorf("cpu warning = %v, want 60", ladder.Warning)
	}

	if _, ok := cfg.Thresholds.ForMetric("unknown"); ok {
		t.Error("unknown metric should not resolve")
	}
}

func TestCooldownFor(t *testing.T) {
	cfg := AlertsConfig{
		Cooldown: 300 * time.Second,
		Cooldowns: map[string]time.Duration{
			"cpu_critical": 60 * time.Second,
		},
	}

	if got := cfg.CooldownFor("cpu_critical"); got != 60*time.Second {
		t.Errorf("CooldownFor(cpu_critical) = %v, want 60s", got)
	}
	if got := cfg.CooldownFor("ram_high"); got != 300*time.Second {
		t.Errorf("CooldownFor(ram_high) = %v, want default 300s", got)
	}
}
