package scraper

import (
	"context"
	"sort"
	"time"

	"forexcal/internal/common"
	"forexcal/internal/models"
)

// Provenance tags for non-live event sets.
const (
	StaticSource  = "static"
	BuiltinSource = "builtin"
)

// Result is the outcome of one pipeline run. Source names the adapter that
// produced the events, or "static" for generated ones; Err carries the
// annotation explaining why live sourcing was unavailable.
type Result struct {
	Events []models.Event
	Source string
	Err    string
}

// Generator produces placeholder events anchored at the given time.
type Generator func(now time.Time) []models.Event

// Orchestrator walks the configured sources in priority order. The first
// source returning a non-empty event list wins and later sources are never
// invoked. A failing source is logged and skipped; a successful-but-empty
// source is insufficient and also skipped. When the list is exhausted the
// generator supplies placeholder data, so callers always receive a non-nil,
// non-empty event list and never a panic.
type Orchestrator struct {
	sources  []Source
	generate Generator
	log      *common.Logger
}

func NewOrchestrator(sources []Source, generate Generator, log *common.Logger) *Orchestrator {
	if generate == nil {
		generate = GenerateEvents
	}
	return &Orchestrator{
		sources:  sources,
		generate: generate,
		log:      log,
	}
}

func (o *Orchestrator) Run(ctx context.Context) Result {
	var lastErr error

	for _, src := range o.sources {
		events, err := src.Fetch(ctx)
		if err != nil {
			lastErr = err
			o.log.Warn().
				Str("source", src.Name()).
				Err(err).
				Msg("source failed, trying next")
			continue
		}
		if len(events) == 0 {
			o.log.Info().
				Str("source", src.Name()).
				Msg("source yielded no events, trying next")
			continue
		}

		sortEvents(events)
		o.log.Info().
			Str("source", src.Name()).
			Int("events", len(events)).
			Msg("scrape succeeded")
		return Result{Events: events, Source: src.Name()}
	}

	annotation := "all sources yielded no events"
	if lastErr != nil {
		annotation = lastErr.Error()
	}

	events := o.generate(time.Now())
	sortEvents(events)

	o.log.Warn().
		Str("reason", annotation).
		Int("events", len(events)).
		Msg("all sources exhausted, falling back to static events")

	return Result{Events: events, Source: StaticSource, Err: annotation}
}

// sortEvents orders events by datetime ascending, the authoritative
// ordering key.
func sortEvents(events []models.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Datetime.Before(events[j].Datetime)
	})
}
