// Package app wires the scrape pipeline, cache service, and HTTP handlers.
package app

import (
	"time"

	"forexcal/internal/calendar"
	"forexcal/internal/common"
	"forexcal/internal/config"
	"forexcal/internal/handlers"
	"forexcal/internal/scraper"
)

// App holds all application components and dependencies.
type App struct {
	Config   *config.Config
	Logger   *common.Logger
	Calendar *calendar.Service

	// HTTP handlers
	EventsHandler  *handlers.EventsHandler
	StatusHandler  *handlers.StatusHandler
	RefreshHandler *handlers.RefreshHandler
	HealthHandler  *handlers.HealthHandler
	InfoHandler    *handlers.InfoHandler
}

// New initializes the application with all dependencies.
func New(cfg *config.Config, logger *common.Logger) (*App, error) {
	a := &App{
		Config: cfg,
		Logger: logger,
	}

	timeout := time.Duration(cfg.Refresh.TimeoutSeconds) * time.Second
	sources := scraper.BuildSources(cfg.Scrape.Sources, timeout, logger)
	if len(sources) == 0 {
		logger.Warn().Msg("no scrape sources configured, only static events will be served")
	}

	orchestrator := scraper.NewOrchestrator(sources, scraper.GenerateEvents, logger)
	a.Calendar = calendar.NewService(orchestrator, logger)

	a.initHandlers()

	logger.Info().
		Int("sources", len(sources)).
		Str("schedule", cfg.Refresh.Schedule).
		Msg("application initialization complete")

	return a, nil
}

// initHandlers initializes all HTTP handlers.
func (a *App) initHandlers() {
	a.EventsHandler = handlers.NewEventsHandler(a.Logger, a.Calendar)
	a.StatusHandler = handlers.NewStatusHandler(a.Logger, a.Calendar)
	a.RefreshHandler = handlers.NewRefreshHandler(a.Logger, a.Calendar)
	a.HealthHandler = handlers.NewHealthHandler(a.Logger)
	a.InfoHandler = handlers.NewInfoHandler(a.Logger, a.Calendar)

	a.Logger.Debug().Msg("HTTP handlers initialized")
}

// Start launches the initial scrape and the periodic refresh schedule.
func (a *App) Start() error {
	return a.Calendar.Start(a.Config.Refresh.Schedule)
}

// Close closes all application resources.
func (a *App) Close() error {
	a.Calendar.Stop()
	return nil
}
