package server

import "net/http"

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// Event read endpoints (always 200, served from the cached snapshot)
	mux.HandleFunc("/api/events", s.app.EventsHandler.ServeAll)
	mux.HandleFunc("/api/events/today", s.app.EventsHandler.ServeToday)
	mux.HandleFunc("/api/events/week", s.app.EventsHandler.ServeWeek)
	mux.HandleFunc("/api/events/high", s.app.EventsHandler.ServeHigh)

	// Control and observability
	mux.HandleFunc("/api/status", s.app.StatusHandler.ServeHTTP)
	mux.HandleFunc("/api/refresh", s.app.RefreshHandler.ServeHTTP)
	mux.HandleFunc("/health", s.app.HealthHandler.ServeHTTP)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.handleNotFound)

	// API info document (and JSON 404 for every other unmatched path)
	mux.HandleFunc("/", s.app.InfoHandler.ServeHTTP)

	return mux
}

// handleNotFound returns a JSON 404 for unmatched API routes.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"error":"Not Found","message":"The requested endpoint does not exist"}`))
}
