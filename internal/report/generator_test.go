package report

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/config"
	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/models"
	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/storage"
)

func TestGenerateDailyReport(t *testing.T) {
	dir := t.TempDir()
	store := storage.NewMemoryStorage(100)
	ctx := context.Background()

	now := time.Now()
	for i := 0; i < 10; i++ {
		store.SaveSample(ctx, &models.MetricSample{
			Timestamp:   now.Add(-time.Duration(i) * time.Minute),
			CPUPercent:  50,
			RAMPercent:  60,
			DiskPercent: 70,
		})
	}

	g := NewGenerator(&config.ReportConfig{Enabled: true, Dir: dir}, store)
	if err := g.Generate(ctx, "daily", 24*time.Hour); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d report files, want 1", len(entries))
	}
	if !strings.HasPrefix(entries[0].Name(), "daily_report_") {
		t.Errorf("unexpected report name %q", entries[0].Name())
	}

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if !strings.Contains(content, "Samples: 10") {
		t.Errorf("report missing sample count:\n%s", content)
	}
	if !strings.Contains(content, "avg 50.0%") {
		t.Errorf("report missing cpu average:\n%s", content)
	}
}

func TestGenerateEmptyHistory(t *testing.T) {
	dir := t.TempDir()
	store := storage.NewMemoryStorage(100)

	g := NewGenerator(&config.ReportConfig{Enabled: true, Dir: dir}, store)
	if err := g.Generate(context.Background(), "weekly", 7*24*time.Hour); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("got %d report files, want 1", len(entries))
	}
	data, _ := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	if !strings.Contains(string(data), "No samples collected") {
		t.Errorf("empty report missing placeholder:\n%s", data)
	}
}

func TestTickRespectsDayBoundary(t *testing.T) {
	dir := t.TempDir()
	store := storage.NewMemoryStorage(100)

	g := NewGenerator(&config.ReportConfig{Enabled: true, Dir: dir}, store)
	base := time.Date(2026, 8, 24, 23, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return base }

	ctx := context.Background()

	// first tick only records the baseline
	g.Tick(ctx)
	if entries, _ := os.ReadDir(dir); len(entries) != 0 {
		t.Fatalf("report written on first tick")
	}

	// same day: nothing
	base = base.Add(30 * time.Minute)
	g.Tick(ctx)
	if entries, _ := os.ReadDir(dir); len(entries) != 0 {
		t.Fatalf("report written before day boundary")
	}

	// next day: daily report
	base = base.Add(2 * time.Hour)
	g.Tick(ctx)
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("got %d reports after day boundary, want 1", len(entries))
	}
}

func TestTickDisabled(t *testing.T) {
	dir := t.TempDir()
	store := storage.NewMemoryStorage(100)

	g := NewGenerator(&config.ReportConfig{Enabled: false, Dir: dir}, store)
	g.Tick(context.Background())
	g.Tick(context.Background())

	if entries, _ := os.ReadDir(dir); len(entries) != 0 {
		t.Error("disabled generator wrote a report")
	}
}
