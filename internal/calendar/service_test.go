package calendar

import (
	"context"
	"errors"
	"testing"
	"time"

	"forexcal/internal/common"
	"forexcal/internal/models"
	"forexcal/internal/scraper"
)

// stubPipeline returns a canned result, optionally panicking.
type stubPipeline struct {
	result scraper.Result
	panics bool
	calls  int
}

func (p *stubPipeline) Run(_ context.Context) scraper.Result {
	p.calls++
	if p.panics {
		panic("selector engine exploded")
	}
	return p.result
}

// blockingPipeline parks until released so tests can overlap refreshes.
type blockingPipeline struct {
	started chan struct{}
	release chan struct{}
	result  scraper.Result
}

func (p *blockingPipeline) Run(_ context.Context) scraper.Result {
	close(p.started)
	<-p.release
	return p.result
}

func liveResult(titles ...string) scraper.Result {
	events := make([]models.Event, len(titles))
	for i, title := range titles {
		events[i] = models.Event{
			Datetime:   time.Now(),
			Event:      title,
			Impact:     models.ImpactHigh,
			Volatility: models.ImpactHigh,
		}
	}
	return scraper.Result{Events: events, Source: "investing"}
}

func TestService_RefreshReplacesCacheWholesale(t *testing.T) {
	pipeline := &stubPipeline{result: liveResult("NFP", "CPI m/m")}
	svc := NewService(pipeline, common.NewSilentLogger())

	result, err := svc.Refresh(context.Background())
	if err != nil {
		t.Fatalf("unexpected refresh error: %v", err)
	}
	if result.Source != "investing" {
		t.Errorf("expected source investing, got %q", result.Source)
	}

	snap := svc.Snapshot()
	if snap.Status != StatusSuccess {
		t.Errorf("expected status success, got %q", snap.Status)
	}
	if len(snap.Events) != 2 {
		t.Errorf("expected 2 cached events, got %d", len(snap.Events))
	}
	if !snap.HasUpdate {
		t.Error("expected lastUpdate to be set after successful refresh")
	}
	if snap.LastError != "" {
		t.Errorf("expected lastError cleared on success, got %q", snap.LastError)
	}
	if snap.Provenance != "investing" {
		t.Errorf("expected provenance investing, got %q", snap.Provenance)
	}
}

func TestService_EmptyRefreshPreservesCache(t *testing.T) {
	pipeline := &stubPipeline{result: liveResult("NFP")}
	svc := NewService(pipeline, common.NewSilentLogger())

	if _, err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("seed refresh failed: %v", err)
	}
	before := svc.Snapshot()

	pipeline.result = scraper.Result{Source: "investing"}
	if _, err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("empty refresh failed: %v", err)
	}

	after := svc.Snapshot()
	if len(after.Events) != len(before.Events) {
		t.Errorf("empty refresh changed cached events: %d -> %d", len(before.Events), len(after.Events))
	}
	if !after.LastUpdate.Equal(before.LastUpdate) {
		t.Errorf("empty refresh changed lastUpdate: %v -> %v", before.LastUpdate, after.LastUpdate)
	}
	if after.Status != StatusSuccess {
		t.Errorf("expected status success after empty refresh, got %q", after.Status)
	}
}

func TestService_ConcurrentRefreshRejected(t *testing.T) {
	pipeline := &blockingPipeline{
		started: make(chan struct{}),
		release: make(chan struct{}),
		result:  liveResult("NFP"),
	}
	svc := NewService(pipeline, common.NewSilentLogger())

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := svc.Refresh(context.Background()); err != nil {
			t.Errorf("first refresh failed: %v", err)
		}
	}()

	<-pipeline.started

	before := svc.Snapshot()
	_, err := svc.Refresh(context.Background())
	if !errors.Is(err, ErrRefreshInProgress) {
		t.Errorf("expected ErrRefreshInProgress, got %v", err)
	}

	after := svc.Snapshot()
	if len(after.Events) != len(before.Events) || !after.LastUpdate.Equal(before.LastUpdate) {
		t.Error("rejected refresh mutated the cache record")
	}

	close(pipeline.release)
	<-done

	if svc.Snapshot().Status != StatusSuccess {
		t.Errorf("expected first refresh to finish with success, got %q", svc.Snapshot().Status)
	}
}

func TestService_PipelinePanicBecomesError(t *testing.T) {
	pipeline := &stubPipeline{panics: true}
	svc := NewService(pipeline, common.NewSilentLogger())

	_, err := svc.Refresh(context.Background())
	if err == nil {
		t.Fatal("expected error from panicking pipeline")
	}

	snap := svc.Snapshot()
	if snap.Status != StatusError {
		t.Errorf("expected status error, got %q", snap.Status)
	}
	if snap.LastError == "" {
		t.Error("expected lastError recorded")
	}
	if snap.HasUpdate {
		t.Error("failed refresh should not set lastUpdate")
	}
}

func TestService_InitialRefreshSeedsBuiltinOnPanic(t *testing.T) {
	pipeline := &stubPipeline{panics: true}
	svc := NewService(pipeline, common.NewSilentLogger())

	svc.initialRefresh(context.Background())

	snap := svc.Snapshot()
	if snap.Status != StatusError {
		t.Errorf("expected status error, got %q", snap.Status)
	}
	if len(snap.Events) == 0 {
		t.Fatal("expected built-in events to be served after cold-start failure")
	}
	if snap.Provenance != scraper.BuiltinSource {
		t.Errorf("expected provenance %q, got %q", scraper.BuiltinSource, snap.Provenance)
	}
	if !snap.HasUpdate {
		t.Error("expected lastUpdate set when built-in dataset installed")
	}
}

func TestService_InitialRefreshInstallsResult(t *testing.T) {
	pipeline := &stubPipeline{result: scraper.Result{
		Events: liveResult("NFP").Events,
		Source: scraper.StaticSource,
		Err:    "all sources yielded no events",
	}}
	svc := NewService(pipeline, common.NewSilentLogger())

	svc.initialRefresh(context.Background())

	snap := svc.Snapshot()
	if snap.Status != StatusSuccess {
		t.Errorf("static fallback resolution should be success, got %q", snap.Status)
	}
	if snap.Provenance != scraper.StaticSource {
		t.Errorf("expected static provenance, got %q", snap.Provenance)
	}
	if snap.LastError == "" {
		t.Error("expected the fallback annotation recorded in lastError")
	}
}

func TestService_StartRejectsBadSchedule(t *testing.T) {
	svc := NewService(&stubPipeline{result: liveResult("NFP")}, common.NewSilentLogger())

	if err := svc.Start("not a cron expression"); err == nil {
		t.Error("expected error for invalid cron expression")
	}
}

func TestService_SnapshotIsACopy(t *testing.T) {
	pipeline := &stubPipeline{result: liveResult("NFP")}
	svc := NewService(pipeline, common.NewSilentLogger())

	if _, err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	snap := svc.Snapshot()
	snap.Events[0].Event = "mutated"

	if svc.Snapshot().Events[0].Event != "NFP" {
		t.Error("snapshot mutation leaked into the cache record")
	}
}
