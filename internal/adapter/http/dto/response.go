package dto

import (
	"github.com/iho/paymentsengine/internal/usecase"
)

// StatusResponse reports the progress of the current run.
type StatusResponse struct {
	RunID     string `json:"run_id"`
	Processed int64  `json:"processed"`
	Applied   int64  `json:"applied"`
	Ignored   int64  `json:"ignored"`
	Accounts  int64  `json:"accounts"`
}

// StatusFromStats converts dispatcher stats to a response.
func StatusFromStats(runID string, s usecase.Stats) *StatusResponse {
	return &StatusResponse{
		RunID:     runID,
		Processed: s.Processed,
		Applied:   s.Applied,
		Ignored:   s.Ignored,
		Accounts:  s.Accounts,
	}
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
