package handlers

import (
	"net/http"
	"time"

	"forexcal/internal/common"
	"forexcal/internal/config"
)

// InfoHandler serves the API directory at the root path.
type InfoHandler struct {
	logger *common.Logger
	svc    CalendarService
}

// NewInfoHandler creates a new info handler.
func NewInfoHandler(logger *common.Logger, svc CalendarService) *InfoHandler {
	return &InfoHandler{logger: logger, svc: svc}
}

var endpointDirectory = map[string]string{
	"GET /api/events":       "All events",
	"GET /api/events/high":  "High impact only",
	"GET /api/events/today": "Today's events",
	"GET /api/events/week":  "This week's events",
	"GET /api/status":       "API status",
	"POST /api/refresh":     "Force refresh",
	"GET /health":           "Health check",
}

// ServeHTTP handles GET /. The root pattern catches every otherwise
// unmatched path, so anything but "/" gets a JSON 404.
func (h *InfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		WriteJSON(w, http.StatusNotFound, map[string]string{
			"error":   "Not Found",
			"message": "The requested endpoint does not exist",
		})
		return
	}
	if !RequireMethod(w, r, "GET") {
		return
	}

	snap := h.svc.Snapshot()

	var lastUpdate *time.Time
	if snap.HasUpdate {
		lastUpdate = &snap.LastUpdate
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"name":       "Forex Economic Calendar API",
		"version":    config.GetVersion(),
		"endpoints":  endpointDirectory,
		"lastUpdate": lastUpdate,
		"eventCount": len(snap.Events),
	})
}
