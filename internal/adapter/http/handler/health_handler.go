package handler

import (
	"net/http"

	"github.com/iho/paymentsengine/internal/adapter/http/dto"
	"github.com/iho/paymentsengine/internal/usecase"
)

// ProgressReporter exposes the progress of a running engine.
type ProgressReporter interface {
	RunID() string
	Stats() usecase.Stats
}

// HealthHandler handles health and progress requests.
type HealthHandler struct {
	progress ProgressReporter
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(progress ProgressReporter) *HealthHandler {
	return &HealthHandler{progress: progress}
}

// Liveness returns 200 if the process is alive.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Status returns the dispatcher counters of the current run.
func (h *HealthHandler) Status(w http.ResponseWriter, r *http.Request) {
	if h.progress == nil {
		writeError(w, http.StatusServiceUnavailable, "no run in progress", "")
		return
	}

	writeJSON(w, http.StatusOK, dto.StatusFromStats(h.progress.RunID(), h.progress.Stats()))
}
