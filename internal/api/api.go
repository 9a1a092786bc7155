package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/models"
	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/storage"
)

// APIHandler dashboard API handlers.
// All endpoints read the latest snapshots from storage; the monitor
// loop is the only writer.
type APIHandler struct {
	store     storage.Storage
	hostInfo  models.HostInfo
	startedAt time.Time
	version   string
}

// NewAPIHandler creates the API handler
func NewAPIHandler(store storage.Storage, hostInfo models.HostInfo, version string) *APIHandler {
	return &APIHandler{
		store:     store,
		hostInfo:  hostInfo,
		startedAt: time.Now(),
		version:   version,
	}
}

// RegisterRoutes registers the API routes
func (h *APIHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/metrics", h.handleMetrics).Methods(http.MethodGet)
	r.HandleFunc("/api/metrics/history", h.handleMetricsHistory).Methods(http.MethodGet)
	r.HandleFunc("/api/analysis", h.handleAnalysis).Methods(http.MethodGet)
	r.HandleFunc("/api/prediction", h.handlePrediction).Methods(http.MethodGet)
	r.HandleFunc("/api/system/status", h.handleSystemStatus).Methods(http.MethodGet)
}

// RegisterPublic registers routes that stay reachable without a token
func (h *APIHandler) RegisterPublic(r *mux.Router) {
	r.HandleFunc("/healthz", h.handleHealthz).Methods(http.MethodGet)
}

// RegisterPrometheus exposes the Prometheus scrape endpoint
func (h *APIHandler) RegisterPrometheus(r *mux.Router, gatherer prometheus.Gatherer) {
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
}

// handleMetrics returns the latest metric sample
func (h *APIHandler) handleMetrics(w http.ResponseWriter, r *http.Request) {
	sample, err := h.store.LatestSample(r.Context())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "failed to read metrics")
		return
	}
	if sample == nil {
		h.writeError(w, http.StatusNotFound, "no metrics collected yet")
		return
	}
	h.writeJSON(w, sample)
}

// handleMetricsHistory returns recent samples, oldest first.
// The limit query parameter caps the number of samples returned.
func (h *APIHandler) handleMetricsHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			h.writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	samples, err := h.store.RecentSamples(r.Context(), limit)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "failed to read history")
		return
	}
	if samples == nil {
		samples = []models.MetricSample{}
	}
	h.writeJSON(w, map[string]interface{}{
		"count":   len(samples),
		"samples": samples,
	})
}

// handleAnalysis returns the latest analysis result
func (h *APIHandler) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	result, err := h.store.LatestAnalysis(r.Context())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "failed to read analysis")
		return
	}
	if result == nil {
		h.writeError(w, http.StatusNotFound, "no analysis available yet")
		return
	}
	h.writeJSON(w, result)
}

// handlePrediction returns the latest failure prediction
func (h *APIHandler) handlePrediction(w http.ResponseWriter, r *http.Request) {
	result, err := h.store.LatestPrediction(r.Context())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "failed to read prediction")
		return
	}
	if result == nil {
		h.writeError(w, http.StatusNotFound, "no prediction available yet")
		return
	}
	h.writeJSON(w, result)
}

// handleSystemStatus returns host info and monitor uptime
func (h *APIHandler) handleSystemStatus(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, map[string]interface{}{
		"host":           h.hostInfo,
		"version":        h.version,
		"started_at":     h.startedAt.Format(time.RFC3339),
		"uptime_seconds": int64(time.Since(h.startedAt).Seconds()),
	})
}

// handleHealthz liveness probe
func (h *APIHandler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, map[string]string{"status": "ok"})
}

func (h *APIHandler) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func (h *APIHandler) writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
