package handlers

import (
	"context"
	"net/http"
	"time"

	"forexcal/internal/calendar"
	"forexcal/internal/common"
	"forexcal/internal/models"
	"forexcal/internal/scraper"
)

// CalendarService is the surface of the cache/refresh state machine the
// handlers consume.
type CalendarService interface {
	Snapshot() calendar.Snapshot
	Refresh(ctx context.Context) (scraper.Result, error)
	Uptime() time.Duration
}

// EventsHandler serves the read-only event endpoints. All of them answer
// from the current in-memory snapshot and always return 200.
type EventsHandler struct {
	logger *common.Logger
	svc    CalendarService
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(logger *common.Logger, svc CalendarService) *EventsHandler {
	return &EventsHandler{logger: logger, svc: svc}
}

type eventsResponse struct {
	Success    bool           `json:"success"`
	Timestamp  time.Time      `json:"timestamp"`
	LastUpdate *time.Time     `json:"lastUpdate"`
	Source     string         `json:"source"`
	Provenance string         `json:"provenance"`
	Count      int            `json:"count"`
	Events     []models.Event `json:"events"`
}

type windowResponse struct {
	Success   bool           `json:"success"`
	Date      string         `json:"date,omitempty"`
	StartDate string         `json:"startDate,omitempty"`
	EndDate   string         `json:"endDate,omitempty"`
	Count     int            `json:"count"`
	Events    []models.Event `json:"events"`
}

type filterResponse struct {
	Success   bool           `json:"success"`
	Timestamp time.Time      `json:"timestamp"`
	Count     int            `json:"count"`
	Events    []models.Event `json:"events"`
}

// ServeAll handles GET /api/events.
func (h *EventsHandler) ServeAll(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	snap := h.svc.Snapshot()

	// "live" once a refresh has succeeded; "cache" while one has not (yet).
	source := "cache"
	if snap.Status == calendar.StatusSuccess {
		source = "live"
	}

	var lastUpdate *time.Time
	if snap.HasUpdate {
		lastUpdate = &snap.LastUpdate
	}

	WriteJSON(w, http.StatusOK, eventsResponse{
		Success:    true,
		Timestamp:  time.Now().UTC(),
		LastUpdate: lastUpdate,
		Source:     source,
		Provenance: snap.Provenance,
		Count:      len(snap.Events),
		Events:     nonNil(snap.Events),
	})
}

// ServeToday handles GET /api/events/today: events whose datetime falls in
// [today 00:00, tomorrow 00:00).
func (h *EventsHandler) ServeToday(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	events := filterEvents(h.svc.Snapshot().Events, func(e models.Event) bool {
		return !e.Datetime.Before(dayStart) && e.Datetime.Before(dayEnd)
	})

	WriteJSON(w, http.StatusOK, windowResponse{
		Success: true,
		Date:    dayStart.Format(time.RFC3339),
		Count:   len(events),
		Events:  events,
	})
}

// ServeWeek handles GET /api/events/week: events whose datetime falls in
// [now, now+7d].
func (h *EventsHandler) ServeWeek(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	now := time.Now()
	weekEnd := now.AddDate(0, 0, 7)

	events := filterEvents(h.svc.Snapshot().Events, func(e models.Event) bool {
		return !e.Datetime.Before(now) && !e.Datetime.After(weekEnd)
	})

	WriteJSON(w, http.StatusOK, windowResponse{
		Success:   true,
		StartDate: now.Format(time.RFC3339),
		EndDate:   weekEnd.Format(time.RFC3339),
		Count:     len(events),
		Events:    events,
	})
}

// ServeHigh handles GET /api/events/high. Construction guarantees every
// cached event is high impact, so this filter is a compatibility shim for
// consumers of the original API shape.
func (h *EventsHandler) ServeHigh(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	events := filterEvents(h.svc.Snapshot().Events, func(e models.Event) bool {
		return e.Impact == models.ImpactHigh || e.Volatility == models.ImpactHigh
	})

	WriteJSON(w, http.StatusOK, filterResponse{
		Success:   true,
		Timestamp: time.Now().UTC(),
		Count:     len(events),
		Events:    events,
	})
}

func filterEvents(events []models.Event, keep func(models.Event) bool) []models.Event {
	filtered := []models.Event{}
	for _, e := range events {
		if keep(e) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

func nonNil(events []models.Event) []models.Event {
	if events == nil {
		return []models.Event{}
	}
	return events
}
