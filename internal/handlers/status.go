package handlers

import (
	"net/http"
	"time"

	"forexcal/internal/calendar"
	"forexcal/internal/common"
)

// StatusHandler reports the refresh state machine's observable state.
type StatusHandler struct {
	logger *common.Logger
	svc    CalendarService
}

// NewStatusHandler creates a new status handler.
func NewStatusHandler(logger *common.Logger, svc CalendarService) *StatusHandler {
	return &StatusHandler{logger: logger, svc: svc}
}

type statusResponse struct {
	Status     calendar.Status `json:"status"`
	LastUpdate *time.Time      `json:"lastUpdate"`
	EventCount int             `json:"eventCount"`
	LastError  *string         `json:"lastError"`
	Uptime     float64         `json:"uptime"`
	Provenance string          `json:"provenance"`
}

// ServeHTTP handles GET /api/status.
func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	snap := h.svc.Snapshot()

	var lastUpdate *time.Time
	if snap.HasUpdate {
		lastUpdate = &snap.LastUpdate
	}

	var lastError *string
	if snap.LastError != "" {
		lastError = &snap.LastError
	}

	WriteJSON(w, http.StatusOK, statusResponse{
		Status:     snap.Status,
		LastUpdate: lastUpdate,
		EventCount: len(snap.Events),
		LastError:  lastError,
		Uptime:     h.svc.Uptime().Seconds(),
		Provenance: snap.Provenance,
	})
}
