package handlers

import (
	"errors"
	"net/http"
	"time"

	"forexcal/internal/calendar"
	"forexcal/internal/common"
)

// RefreshHandler triggers a manual scrape refresh.
type RefreshHandler struct {
	logger *common.Logger
	svc    CalendarService
}

// NewRefreshHandler creates a new refresh handler.
func NewRefreshHandler(logger *common.Logger, svc CalendarService) *RefreshHandler {
	return &RefreshHandler{logger: logger, svc: svc}
}

type refreshResponse struct {
	Success   bool      `json:"success"`
	Source    string    `json:"source"`
	Count     int       `json:"count"`
	Timestamp time.Time `json:"timestamp"`
}

type refreshRejected struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ServeHTTP handles POST /api/refresh. A trigger while a refresh is already
// running is an idempotent no-op reported as non-success, not an error;
// only a pipeline-level failure surfaces as 500.
func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	result, err := h.svc.Refresh(r.Context())
	if errors.Is(err, calendar.ErrRefreshInProgress) {
		WriteJSON(w, http.StatusOK, refreshRejected{
			Success: false,
			Message: "Scrape already in progress",
		})
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Msg("manual refresh failed")
		WriteJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	h.logger.Info().
		Str("source", result.Source).
		Int("events", len(result.Events)).
		Msg("manual refresh complete")

	WriteJSON(w, http.StatusOK, refreshResponse{
		Success:   true,
		Source:    result.Source,
		Count:     len(result.Events),
		Timestamp: time.Now().UTC(),
	})
}
