package report

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/config"
	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/models"
	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/storage"
)

// Generator writes plain-text daily and weekly summaries of the
// collected metric history
type Generator struct {
	config   *config.ReportConfig
	store    storage.Storage
	lastDay  time.Time
	lastWeek time.Time
	now      func() time.Time
}

// NewGenerator creates a report generator
func NewGenerator(cfg *config.ReportConfig, store storage.Storage) *Generator {
	return &Generator{
		config: cfg,
		store:  store,
		now:    time.Now,
	}
}

// Tick generates reports when a day or week boundary has passed since
// the previous generation. Called once per monitor iteration.
func (g *Generator) Tick(ctx context.Context) {
	if !g.config.Enabled {
		return
	}

	now := g.now()

	day := now.Truncate(24 * time.Hour)
	if g.lastDay.IsZero() {
		g.lastDay = day
	} else if day.After(g.lastDay) {
		if err := g.Generate(ctx, "daily", 24*time.Hour); err != nil {
			log.Printf("daily report failed: %v", err)
		}
		g.lastDay = day
	}

	year, week := now.ISOWeek()
	lastYear, lastWeek := g.lastWeek.ISOWeek()
	if g.lastWeek.IsZero() {
		g.lastWeek = now
	} else if year != lastYear || week != lastWeek {
		if err := g.Generate(ctx, "weekly", 7*24*time.Hour); err != nil {
			log.Printf("weekly report failed: %v", err)
		}
		g.lastWeek = now
	}
}

// Generate writes one report covering samples within the period
func (g *Generator) Generate(ctx context.Context, kind string, period time.Duration) error {
	samples, err := g.store.RecentSamples(ctx, 0)
	if err != nil {
		return fmt.Errorf("read history: %w", err)
	}

	now := g.now()
	cutoff := now.Add(-period)
	var window []models.MetricSample
	for _, s := range samples {
		if s.Timestamp.After(cutoff) {
			window = append(window, s)
		}
	}

	analysis, err := g.store.LatestAnalysis(ctx)
	if err != nil {
		analysis = nil
	}

	content := g.render(kind, now, window, analysis)

	if err := os.MkdirAll(g.config.Dir, 0755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}

	name := fmt.Sprintf("%s_report_%s.txt", kind, now.Format("2006-01-02"))
	path := filepath.Join(g.config.Dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	log.Printf("%s report written to %s", kind, path)
	return nil
}

// render formats one report
func (g *Generator) render(kind string, now time.Time, samples []models.MetricSample, analysis *models.AnalysisResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "System Health Report (%s)\n", kind)
	fmt.Fprintf(&b, "Generated: %s\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Samples: %d\n\n", len(samples))

	if len(samples) == 0 {
		b.WriteString("No samples collected in this period.\n")
		return b.String()
	}

	var cpuSum, cpuMax, ramSum, ramMax, diskSum, diskMax, netSum, netMax float64
	for _, s := range samples {
		cpuSum += s.CPUPercent
		ramSum += s.RAMPercent
		diskSum += s.DiskPercent
		net := s.NetworkMBs()
		netSum += net
		if s.CPUPercent > cpuMax {
			cpuMax = s.CPUPercent
		}
		if s.RAMPercent > ramMax {
			ramMax = s.RAMPercent
		}
		if s.DiskPercent > diskMax {
			diskMax = s.DiskPercent
		}
		if net > netMax {
			netMax = net
		}
	}
	n := float64(len(samples))

	fmt.Fprintf(&b, "CPU usage:      avg %.1f%%  max %.1f%%\n", cpuSum/n, cpuMax)
	fmt.Fprintf(&b, "RAM usage:      avg %.1f%%  max %.1f%%\n", ramSum/n, ramMax)
	fmt.Fprintf(&b, "Disk usage:     avg %.1f%%  max %.1f%%\n", diskSum/n, diskMax)
	fmt.Fprintf(&b, "Network (MB/s): avg %.2f   max %.2f\n", netSum/n, netMax)

	if analysis != nil {
		fmt.Fprintf(&b, "\nHealth score:   %d\n", analysis.HealthScore)
		fmt.Fprintf(&b, "Failure risk:   %d%%\n", analysis.FailureRisk)
		for _, r := range analysis.Results {
			if r.Status != models.StatusNormal {
				fmt.Fprintf(&b, "  %-14s %s (%.1f)\n", r.Metric+":", r.Status, r.Value)
			}
		}
	}

	first := samples[0].Timestamp
	last := samples[len(samples)-1].Timestamp
	fmt.Fprintf(&b, "\nPeriod: %s to %s\n",
		first.Format("2006-01-02 15:04:05"), last.Format("2006-01-02 15:04:05"))

	return b.String()
}
