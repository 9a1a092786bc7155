package analysis

import (
	"sync"
	"time"
)

// Window fixed-size sliding window of metric values with age-based expiry
type Window struct {
	size       int
	values     []float64
	timestamps []time.Time
	sum        float64
	maxAge     time.Duration
	mu         sync.RWMutex
}

// NewWindow creates a sliding window
func NewWindow(size int, maxAge time.Duration) *Window {
	return &Window{
		size:       size,
		values:     make([]float64, 0, size),
		timestamps: make([]time.Time, 0, size),
		maxAge:     maxAge,
	}
}

// Add adds a value to the window
func (w *Window) Add(value float64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := time.Now()
	w.expire(now)

	if len(w.values) >= w.size {
		w.sum -= w.values[0]
		w.values = w.values[1:]
		w.timestamps = w.timestamps[1:]
	}

	w.values = append(w.values, value)
	w.timestamps = append(w.timestamps, now)
	w.sum += value
}

// expire drops values older than maxAge, caller holds the lock
func (w *Window) expire(now time.Time) {
	if w.maxAge <= 0 {
		return
	}
	cutoff := now.Add(-w.maxAge)
	for len(w.timestamps) > 0 && w.timestamps[0].Before(cutoff) {
		w.sum -= w.values[0]
		w.values = w.values[1:]
		w.timestamps = w.timestamps[1:]
	}
}

// Len returns the number of values currently in the window
func (w *Window) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.values)
}

// Avg returns the average of the window values
func (w *Window) Avg() float64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if len(w.values) == 0 {
		return 0
	}
	return w.sum / float64(len(w.values))
}

// Max returns the maximum value in the window
func (w *Window) Max() float64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	max := 0.0
	for i, v := range w.values {
		if i == 0 || v > max {
			max = v
		}
	}
	return max
}

// Last returns the most recent value
func (w *Window) Last() (float64, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if len(w.values) == 0 {
		return 0, false
	}
	return w.values[len(w.values)-1], true
}
