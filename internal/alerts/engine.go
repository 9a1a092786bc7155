package alerts

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/config"
	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/models"
)

// alertState cooldown state for one alert kind.
// A kind is ARMED when it may fire and COOLING until its cooldown elapses.
type alertState struct {
	lastFiredAt time.Time
	cooldown    time.Duration
}

// Engine threshold alert engine with per-kind cooldown suppression.
// All state is owned by the engine and mutated only through Evaluate,
// which is called from the single monitor loop.
type Engine struct {
	config   *config.AlertsConfig
	states   map[string]*alertState
	channels []Channel
	now      func() time.Time
}

// NewEngine creates an alert engine
func NewEngine(cfg *config.AlertsConfig, channels ...Channel) *Engine {
	return &Engine{
		config:   cfg,
		states:   make(map[string]*alertState),
		channels: channels,
		now:      time.Now,
	}
}

// Evaluate emits at most one AlertEvent per alert kind whose metric is
// outside its normal range and whose cooldown has elapsed. The kind is
// "<metric>_<status>"; a kind that fires will not fire again until its
// cooldown window has passed, no matter how many samples cross the
// threshold in between.
func (e *Engine) Evaluate(sample *models.MetricSample, statuses []models.MetricStatus) []models.AlertEvent {
	var events []models.AlertEvent
	now := e.now()

	for _, s := range statuses {
		if s.Status == models.StatusNormal {
			continue
		}

		kind := fmt.Sprintf("%s_%s", s.Metric, s.Status)
		if !e.arm(kind, now) {
			continue
		}

		events = append(events, models.AlertEvent{
			Kind:      kind,
			Metric:    s.Metric,
			Status:    s.Status,
			Priority:  models.PriorityFor(s.Status),
			Value:     s.Value,
			Threshold: s.Threshold,
			Message: fmt.Sprintf("Metric: %s | Status: %s | Current Value: %.1f",
				strings.ToUpper(s.Metric), strings.ToUpper(string(s.Status)), s.Value),
			Timestamp: now,
		})
	}

	return events
}

// arm reports whether the kind may fire now, and if so marks it cooling
func (e *Engine) arm(kind string, now time.Time) bool {
	state, ok := e.states[kind]
	if !ok {
		e.states[kind] = &alertState{
			lastFiredAt: now,
			cooldown:    e.config.CooldownFor(kind),
		}
		return true
	}

	if now.Sub(state.lastFiredAt) >= state.cooldown {
		state.lastFiredAt = now
		return true
	}
	return false
}

// Dispatch delivers events to all configured channels.
// Channel failures are logged, never propagated; a broken channel must
// not stall the monitor loop.
func (e *Engine) Dispatch(ctx context.Context, events []models.AlertEvent) {
	if !e.config.Enabled || len(events) == 0 {
		return
	}
	for _, event := range events {
		for _, ch := range e.channels {
			if err := ch.Send(ctx, event); err != nil {
				log.Printf("alert channel %s failed: %v", ch.Name(), err)
			}
		}
	}
}

// Close closes all channels
func (e *Engine) Close() error {
	var firstErr error
	for _, ch := range e.channels {
		if err := ch.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
