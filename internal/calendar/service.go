// Package calendar owns the cached event snapshot and the refresh state
// machine that drives the scrape pipeline on startup, on a cron schedule,
// and on manual trigger.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"forexcal/internal/common"
	"forexcal/internal/models"
	"forexcal/internal/scraper"
)

// Status is the refresh lifecycle state: idle -> running -> success|error,
// with running re-entered on every trigger.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusRunning Status = "running"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// ErrRefreshInProgress is returned when a refresh is requested while
// another one is still running. At most one refresh runs at a time;
// concurrent triggers are rejected, never queued.
var ErrRefreshInProgress = errors.New("refresh already in progress")

// Pipeline produces the next event set. Implemented by scraper.Orchestrator.
type Pipeline interface {
	Run(ctx context.Context) scraper.Result
}

// Snapshot is a point-in-time copy of the cache record. HasUpdate is false
// until the first successful replacement (lastUpdate is null until then).
type Snapshot struct {
	Events     []models.Event
	Status     Status
	LastUpdate time.Time
	HasUpdate  bool
	LastError  string
	Provenance string
}

// Service is the process-wide cache record. The event list is replaced
// wholesale by each successful refresh, never merged or mutated in place,
// so readers holding a previous snapshot observe consistent data while a
// refresh is in flight. Mutation happens only inside the single active
// refresh, serialized by the running flag.
type Service struct {
	pipeline Pipeline
	log      *common.Logger

	running atomic.Bool
	cron    *cron.Cron
	started time.Time

	mu         sync.RWMutex
	events     []models.Event
	status     Status
	lastUpdate time.Time
	hasUpdate  bool
	lastError  string
	provenance string
}

func NewService(pipeline Pipeline, log *common.Logger) *Service {
	return &Service{
		pipeline: pipeline,
		log:      log,
		status:   StatusIdle,
		started:  time.Now(),
	}
}

// Start kicks off the initial scrape in the background and schedules
// periodic refreshes with the given cron expression.
func (s *Service) Start(schedule string) error {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		if _, err := s.Refresh(context.Background()); err != nil {
			s.log.Debug().Err(err).Msg("scheduled refresh skipped")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", schedule, err)
	}
	s.cron = c
	c.Start()

	go s.initialRefresh(context.Background())

	return nil
}

// Stop halts the refresh schedule. In-flight refreshes run to completion.
func (s *Service) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// initialRefresh performs the cold-start scrape. Unlike later refreshes a
// pipeline-level failure here still leaves the API serving data: the cache
// is seeded with the built-in fixture set.
func (s *Service) initialRefresh(ctx context.Context) {
	if !s.running.CompareAndSwap(false, true) {
		return
	}
	defer s.running.Store(false)

	s.setStatus(StatusRunning)
	s.log.Info().Msg("starting initial scrape")

	defer func() {
		if r := recover(); r != nil {
			now := time.Now()
			s.mu.Lock()
			s.status = StatusError
			s.lastError = fmt.Sprintf("pipeline panic: %v", r)
			s.events = scraper.BuiltinEvents(now)
			s.provenance = scraper.BuiltinSource
			s.lastUpdate = now
			s.hasUpdate = true
			s.mu.Unlock()

			s.log.Error().
				Str("error", fmt.Sprintf("%v", r)).
				Msg("initial scrape failed, serving built-in events")
		}
	}()

	result := s.pipeline.Run(ctx)
	s.apply(result, true)

	s.log.Info().
		Str("source", result.Source).
		Int("events", len(result.Events)).
		Msg("initial scrape complete")
}

// Refresh runs one scrape cycle, used by both the cron schedule and the
// manual trigger. Returns ErrRefreshInProgress immediately when another
// refresh holds the single-flight guard.
func (s *Service) Refresh(ctx context.Context) (scraper.Result, error) {
	if !s.running.CompareAndSwap(false, true) {
		return scraper.Result{}, ErrRefreshInProgress
	}
	defer s.running.Store(false)

	s.setStatus(StatusRunning)

	var result scraper.Result
	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("pipeline panic: %v", r)
			}
		}()
		result = s.pipeline.Run(ctx)
		return nil
	}()
	if err != nil {
		s.mu.Lock()
		s.status = StatusError
		s.lastError = err.Error()
		s.mu.Unlock()

		s.log.Error().Err(err).Msg("refresh failed")
		return scraper.Result{}, err
	}

	s.apply(result, false)
	return result, nil
}

// apply installs a pipeline result into the cache record. Outside the
// initial scrape an empty result is a no-op for the event list and
// lastUpdate, so a transient empty scrape never wipes a good cache.
//
// Static-fallback results count as success; their reason annotation is
// recorded in lastError, which a live success clears.
func (s *Service) apply(result scraper.Result, initial bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.status = StatusSuccess

	if len(result.Events) == 0 && !initial {
		s.lastError = ""
		return
	}

	s.events = result.Events
	s.provenance = result.Source
	s.lastError = result.Err
	s.lastUpdate = time.Now()
	s.hasUpdate = true
}

// Snapshot returns a copy of the current cache record. Never blocks on a
// refresh in progress.
func (s *Service) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := make([]models.Event, len(s.events))
	copy(events, s.events)

	return Snapshot{
		Events:     events,
		Status:     s.status,
		LastUpdate: s.lastUpdate,
		HasUpdate:  s.hasUpdate,
		LastError:  s.lastError,
		Provenance: s.provenance,
	}
}

// Uptime reports how long the service has been alive.
func (s *Service) Uptime() time.Duration {
	return time.Since(s.started)
}

func (s *Service) setStatus(status Status) {
	s.mu.Lock()
	s.status = status
	s.mu.Unlock()
}
