package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/renato0307/prmonitor/internal/domain"
	"github.com/renato0307/prmonitor/internal/logging"
	"github.com/renato0307/prmonitor/internal/ports"
)

const (
	defaultFetchTimeout         = 15 * time.Second
	defaultMaxConcurrentFetches = 4
	maxConcurrentFetchesLimit   = 8
)

// SchedulerConfig tunes the polling loop
type SchedulerConfig struct {
	FetchTimeout         time.Duration
	MaxConcurrentFetches int
	StopOnUnauthorized   bool
}

func (c SchedulerConfig) withDefaults() SchedulerConfig {
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = defaultFetchTimeout
	}
	if c.MaxConcurrentFetches <= 0 {
		c.MaxConcurrentFetches = defaultMaxConcurrentFetches
	}
	if c.MaxConcurrentFetches > maxConcurrentFetchesLimit {
		c.MaxConcurrentFetches = maxConcurrentFetchesLimit
	}
	return c
}

// timerFunc returns a channel firing after d and a function that stops it
type timerFunc func(d time.Duration) (<-chan time.Time, func() bool)

func realTimer(d time.Duration) (<-chan time.Time, func() bool) {
	t := time.NewTimer(d)
	return t.C, t.Stop
}

// Scheduler polls every open tracked pull request on a fixed interval,
// applies open -> closed transitions to the store and publishes events.
//
// At most one loop runs at a time. Each Start begins a new generation;
// a cycle whose generation is no longer current discards its results.
type Scheduler struct {
	bus        ports.EventPublisher
	cancel     context.CancelFunc
	cfg        SchedulerConfig
	done       chan struct{}
	fetcher    ports.StateFetcher
	generation uint64
	mu         sync.Mutex
	newTimer   timerFunc
	now        func() time.Time
	reschedule chan struct{}
	running    bool
	store      *StateStore
}

// NewScheduler creates a stopped scheduler
func NewScheduler(
	store *StateStore,
	fetcher ports.StateFetcher,
	bus ports.EventPublisher,
	cfg SchedulerConfig,
) *Scheduler {
	return &Scheduler{
		bus:        bus,
		cfg:        cfg.withDefaults(),
		fetcher:    fetcher,
		newTimer:   realTimer,
		now:        time.Now,
		reschedule: make(chan struct{}, 1),
		store:      store,
	}
}

// Start launches the polling loop. Calling Start while running is a no-op.
// The loop outlives ctx cancellation; use Stop to end it.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		logging.Logger.Debug("Scheduler already running", "generation", s.generation)
		return nil
	}

	s.generation++
	s.running = true

	loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel
	s.done = make(chan struct{})

	go s.loop(loopCtx, s.generation, s.done)

	logging.Logger.Info("Scheduler started",
		"generation", s.generation,
		"interval", s.store.RefreshInterval().String())
	return nil
}

// Stop ends the current loop. It cancels the pending wait and in-flight
// fetches and returns without waiting for them. Stopping a stopped
// scheduler is a no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.stopLocked()
	logging.Logger.Info("Scheduler stopped", "generation", s.generation)
}

// stopLocked must be called with s.mu held. Bumping the generation keeps
// in-flight cycles from applying or publishing; events already published
// by an applied cycle are still delivered.
func (s *Scheduler) stopLocked() {
	s.running = false
	s.generation++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// IsRunning reports whether a loop is active
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Generation returns the current run generation
func (s *Scheduler) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// Reschedule makes the pending wait pick up a changed interval. The next
// cycle is then due interval after the previous cycle ended.
func (s *Scheduler) Reschedule() {
	select {
	case s.reschedule <- struct{}{}:
	default:
	}
}

// Wait blocks until the most recently started loop has exited or ctx is done
func (s *Scheduler) Wait(ctx context.Context) error {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()

	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) loop(ctx context.Context, generation uint64, done chan struct{}) {
	defer close(done)

	for {
		result := s.runCycle(ctx, generation)
		cycleEnd := s.now()

		if result.stop {
			s.stopGeneration(generation)
			return
		}
		if ctx.Err() != nil {
			return
		}
		if !s.waitNext(ctx, cycleEnd, result.retryAfter) {
			return
		}
	}
}

// waitNext sleeps until cycleEnd + max(interval, retryAfter). The interval
// is re-read whenever Reschedule is called.
func (s *Scheduler) waitNext(ctx context.Context, cycleEnd time.Time, retryAfter time.Duration) bool {
	for {
		delay := max(s.store.RefreshInterval(), retryAfter)
		remaining := cycleEnd.Add(delay).Sub(s.now())
		if remaining <= 0 {
			return true
		}

		timerC, stopTimer := s.newTimer(remaining)
		select {
		case <-ctx.Done():
			stopTimer()
			return false
		case <-timerC:
			return true
		case <-s.reschedule:
			stopTimer()
			logging.Logger.Debug("Pending tick rescheduled", "interval", s.store.RefreshInterval().String())
		}
	}
}

// stopGeneration stops the scheduler only if generation is still current
func (s *Scheduler) stopGeneration(generation uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running || s.generation != generation {
		return
	}
	s.stopLocked()
	logging.Logger.Warn("Scheduler stopped after unauthorized response", "generation", generation)
}

type cycleResult struct {
	retryAfter time.Duration
	stop       bool
}

type fetchOutcome struct {
	err     error
	remote  domain.RemoteState
	skipped bool
}

type cycleStats struct {
	failures    int
	polled      int
	skipped     int
	transitions int
}

func (s *Scheduler) runCycle(ctx context.Context, generation uint64) cycleResult {
	cycleID := uuid.NewString()
	started := s.now()

	entries := s.store.OpenEntries()
	credential, ok := s.store.Credential()

	if !ok {
		event := domain.NewFailureEvent(domain.PRIdentity{}, "unauthorized: no credential configured")
		s.publishIfCurrent(generation, cycleID, []domain.Event{event})
		logging.Logger.Warn("Poll cycle skipped, no credential configured", "cycle_id", cycleID)
		return cycleResult{}
	}
	if len(entries) == 0 {
		logging.Logger.Debug("Poll cycle has nothing to do", "cycle_id", cycleID)
		return cycleResult{}
	}

	outcomes := s.fetchAll(ctx, entries, credential)
	if ctx.Err() != nil {
		logging.Logger.Debug("Poll cycle cancelled, results discarded", "cycle_id", cycleID)
		return cycleResult{}
	}

	result, stats, applied := s.apply(ctx, generation, cycleID, entries, outcomes)
	if !applied {
		logging.Logger.Debug("Stale poll cycle discarded", "cycle_id", cycleID, "generation", generation)
		return cycleResult{}
	}

	logging.Logger.Info("Poll cycle finished",
		"cycle_id", cycleID,
		"generation", generation,
		"polled", stats.polled,
		"transitions", stats.transitions,
		"failures", stats.failures,
		"skipped", stats.skipped,
		"duration", s.now().Sub(started).String())
	return result
}

// fetchAll queries every entry with bounded concurrency. Once a request is
// rate limited, requests that have not started yet are skipped.
func (s *Scheduler) fetchAll(ctx context.Context, entries []domain.TrackedPullRequest, credential string) []fetchOutcome {
	outcomes := make([]fetchOutcome, len(entries))
	var limited atomic.Bool

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.MaxConcurrentFetches)

	for i, pr := range entries {
		g.Go(func() error {
			if limited.Load() || gctx.Err() != nil {
				outcomes[i].skipped = true
				return nil
			}

			fetchCtx, cancel := context.WithTimeout(gctx, s.cfg.FetchTimeout)
			defer cancel()

			remote, err := s.fetcher.FetchState(fetchCtx, pr.Identity(), credential)
			outcomes[i] = fetchOutcome{err: err, remote: remote}
			if errors.Is(err, domain.ErrRateLimited) {
				limited.Store(true)
			}
			return nil
		})
	}

	_ = g.Wait()
	return outcomes
}

// apply writes the outcomes to the store and publishes the resulting events,
// in snapshot order, only if generation is still the running one
func (s *Scheduler) apply(
	ctx context.Context,
	generation uint64,
	cycleID string,
	entries []domain.TrackedPullRequest,
	outcomes []fetchOutcome,
) (cycleResult, cycleStats, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running || s.generation != generation {
		return cycleResult{}, cycleStats{}, false
	}

	var (
		events       []domain.Event
		result       cycleResult
		stats        cycleStats
		unauthorized bool
	)

	for i, pr := range entries {
		out := outcomes[i]
		id := pr.Identity()

		if out.skipped {
			stats.skipped++
			continue
		}
		stats.polled++

		if out.err != nil {
			stats.failures++
			events = append(events, domain.NewFailureEvent(id, fmt.Sprintf("%s: %v", id, out.err)))
			if errors.Is(out.err, domain.ErrUnauthorized) {
				unauthorized = true
			}
			if d, ok := domain.RetryAfter(out.err); ok && d > result.retryAfter {
				result.retryAfter = d
			}
			logging.Logger.Debug("Fetch failed", "pr", id.String(), "error", out.err)
			continue
		}

		if out.remote.Title != "" {
			if err := s.store.UpdateTitle(ctx, pr.Number, out.remote.Title); err != nil {
				logging.Logger.Error("Failed to refresh title", "pr", id.String(), "error", err)
			}
		}

		changed, err := s.store.SetState(ctx, pr.Number, out.remote.State, out.remote.Merged, out.remote.ClosedAt)
		if err != nil {
			stats.failures++
			events = append(events, domain.NewFailureEvent(id, fmt.Sprintf("%s: %v", id, err)))
			logging.Logger.Error("Failed to record transition", "pr", id.String(), "error", err)
			continue
		}
		if !changed {
			if event, ok := s.checkMergeable(ctx, pr, out.remote); ok {
				events = append(events, event)
			}
			continue
		}

		stats.transitions++
		updated, ok := s.store.Find(pr.Number)
		if !ok {
			updated = pr
		}
		events = append(events, domain.NewStateChangedEvent(updated))
		logging.Logger.Info("Pull request closed", "pr", id.String(), "merged", updated.Merged)
	}

	s.publishLocked(generation, cycleID, events)
	result.stop = unauthorized && s.cfg.StopOnUnauthorized
	return result, stats, true
}

// checkMergeable records the mergeable state of an entry that is still open
// and returns an attention event when it just entered a state that needs
// the user. Unknown states are ignored while GitHub computes them.
func (s *Scheduler) checkMergeable(ctx context.Context, pr domain.TrackedPullRequest, remote domain.RemoteState) (domain.Event, bool) {
	id := pr.Identity()
	if remote.State != domain.StateOpen || !remote.Mergeable.Known() {
		return domain.Event{}, false
	}

	changed, err := s.store.SetMergeable(ctx, pr.Number, remote.Mergeable)
	if err != nil {
		logging.Logger.Error("Failed to record mergeable state", "pr", id.String(), "error", err)
		return domain.Event{}, false
	}
	if !changed {
		return domain.Event{}, false
	}

	logging.Logger.Debug("Mergeable state changed", "pr", id.String(), "mergeable", remote.Mergeable)
	if remote.Mergeable == domain.MergeableBehind {
		logging.Logger.Info("Pull request is behind its base branch", "pr", id.String())
	}
	if remote.Mergeable.Attention() == "" {
		return domain.Event{}, false
	}

	updated, ok := s.store.Find(pr.Number)
	if !ok {
		return domain.Event{}, false
	}
	logging.Logger.Info("Pull request needs attention", "pr", id.String(), "mergeable", remote.Mergeable)
	return domain.NewAttentionEvent(updated), true
}

func (s *Scheduler) publishIfCurrent(generation uint64, cycleID string, events []domain.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running || s.generation != generation {
		return
	}
	s.publishLocked(generation, cycleID, events)
}

// publishLocked must be called with s.mu held
func (s *Scheduler) publishLocked(generation uint64, cycleID string, events []domain.Event) {
	if len(events) == 0 {
		return
	}
	for i := range events {
		events[i].CycleID = cycleID
		events[i].Generation = generation
	}
	s.bus.Publish(events...)
}
