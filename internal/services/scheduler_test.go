package services

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/prmonitor/internal/domain"
	"github.com/renato0307/prmonitor/internal/events"
	"github.com/renato0307/prmonitor/internal/ports"
	portsmocks "github.com/renato0307/prmonitor/internal/ports/mocks"
)

type schedulerHarness struct {
	bus       *recordingBus
	clock     *fakeClock
	fetcher   *portsmocks.MockStateFetcher
	repo      *memoryRepo
	scheduler *Scheduler
	store     *StateStore
}

func newSchedulerHarness(t *testing.T, cfg SchedulerConfig, prs ...domain.TrackedPullRequest) *schedulerHarness {
	t.Helper()
	bus := &recordingBus{}
	h := newSchedulerHarnessWithBus(t, cfg, bus, prs...)
	h.bus = bus
	return h
}

// newSchedulerHarnessWithBus publishes to bus; h.bus stays nil
func newSchedulerHarnessWithBus(
	t *testing.T,
	cfg SchedulerConfig,
	bus ports.EventPublisher,
	prs ...domain.TrackedPullRequest,
) *schedulerHarness {
	t.Helper()

	repo := newMemoryRepo(prs...)
	repo.settings.Credential = "ghp_test"
	store := newTestStore(t, repo)
	fetcher := portsmocks.NewMockStateFetcher(t)
	clock := newFakeClock()

	scheduler := NewScheduler(store, fetcher, bus, cfg)
	scheduler.now = clock.Now
	scheduler.newTimer = clock.NewTimer
	t.Cleanup(scheduler.Stop)

	return &schedulerHarness{
		clock:     clock,
		fetcher:   fetcher,
		repo:      repo,
		scheduler: scheduler,
		store:     store,
	}
}

func closedRemote(merged bool) domain.RemoteState {
	closedAt := time.Date(2024, 5, 1, 11, 30, 0, 0, time.UTC)
	return domain.RemoteState{ClosedAt: &closedAt, Merged: merged, State: domain.StateClosed, Title: "Fix widget"}
}

func openRemote() domain.RemoteState {
	return domain.RemoteState{State: domain.StateOpen, Title: "Fix widget"}
}

func TestScheduler_ClosedTransitionPublishedOnce(t *testing.T) {
	h := newSchedulerHarness(t, SchedulerConfig{}, openPR(42))
	h.fetcher.EXPECT().FetchState(mock.Anything, openPR(42).Identity(), "ghp_test").
		Return(closedRemote(true), nil).Once()

	require.NoError(t, h.scheduler.Start(context.Background()))
	assert.Equal(t, 5*time.Minute, h.clock.nextWait(t))

	// closed entries are no longer polled
	h.clock.Tick(t)
	h.clock.nextWait(t)

	events := h.bus.Events()
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventStateChanged, events[0].Kind)
	assert.Equal(t, 42, events[0].Number)
	assert.True(t, events[0].Merged)
	assert.Equal(t, uint64(1), events[0].Generation)
	assert.NotEmpty(t, events[0].CycleID)
	assert.Equal(t, domain.WireEvent{Event: "pr-closed", Payload: "42"}, events[0].Wire())

	pr, _ := h.store.Find(42)
	assert.Equal(t, domain.StateClosed, pr.State)
	assert.Equal(t, domain.StateClosed, h.repo.tracked[0].State)
}

func TestScheduler_OpenStaysOpenWithoutEvents(t *testing.T) {
	h := newSchedulerHarness(t, SchedulerConfig{}, openPR(1), openPR(2))
	h.fetcher.EXPECT().FetchState(mock.Anything, mock.Anything, "ghp_test").Return(openRemote(), nil).Times(2)

	require.NoError(t, h.scheduler.Start(context.Background()))
	h.clock.nextWait(t)

	assert.Empty(t, h.bus.Events())
	assert.Len(t, h.store.OpenEntries(), 2)
}

func TestScheduler_DoubleStartRunsOneLoop(t *testing.T) {
	h := newSchedulerHarness(t, SchedulerConfig{}, openPR(1))
	h.fetcher.EXPECT().FetchState(mock.Anything, mock.Anything, mock.Anything).Return(openRemote(), nil).Once()

	require.NoError(t, h.scheduler.Start(context.Background()))
	require.NoError(t, h.scheduler.Start(context.Background()))

	h.clock.nextWait(t)
	h.clock.noWait(t)
	assert.True(t, h.scheduler.IsRunning())
	assert.Equal(t, uint64(1), h.scheduler.Generation())
}

func TestScheduler_StopDiscardsInFlightResults(t *testing.T) {
	h := newSchedulerHarness(t, SchedulerConfig{}, openPR(42))

	entered := make(chan struct{})
	release := make(chan struct{})
	h.fetcher.EXPECT().FetchState(mock.Anything, mock.Anything, mock.Anything).
		RunAndReturn(func(context.Context, domain.PRIdentity, string) (domain.RemoteState, error) {
			close(entered)
			<-release
			return closedRemote(false), nil
		}).Once()

	require.NoError(t, h.scheduler.Start(context.Background()))
	<-entered

	h.scheduler.Stop()
	assert.False(t, h.scheduler.IsRunning())
	close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, h.scheduler.Wait(ctx))

	assert.Empty(t, h.bus.Events())
	assert.Len(t, h.store.OpenEntries(), 1, "stale cycle must not mutate the store")
}

func TestScheduler_RestartDiscardsPreviousGeneration(t *testing.T) {
	h := newSchedulerHarness(t, SchedulerConfig{}, openPR(42))

	var calls atomic.Int32
	entered := make(chan struct{})
	release := make(chan struct{})
	h.fetcher.EXPECT().FetchState(mock.Anything, mock.Anything, mock.Anything).
		RunAndReturn(func(context.Context, domain.PRIdentity, string) (domain.RemoteState, error) {
			if calls.Add(1) == 1 {
				close(entered)
				<-release
				return closedRemote(false), nil
			}
			return openRemote(), nil
		})

	require.NoError(t, h.scheduler.Start(context.Background()))
	<-entered
	h.scheduler.Stop()
	require.NoError(t, h.scheduler.Start(context.Background()))

	// the new generation completes its first cycle
	h.clock.nextWait(t)
	close(release)
	h.clock.noWait(t)

	assert.Empty(t, h.bus.Events())
	assert.Len(t, h.store.OpenEntries(), 1)
	assert.Equal(t, uint64(3), h.scheduler.Generation())
}

func TestScheduler_IntervalChangeMovesPendingTick(t *testing.T) {
	h := newSchedulerHarness(t, SchedulerConfig{}, openPR(1))
	h.fetcher.EXPECT().FetchState(mock.Anything, mock.Anything, mock.Anything).Return(openRemote(), nil)

	require.NoError(t, h.scheduler.Start(context.Background()))
	assert.Equal(t, 300*time.Second, h.clock.nextWait(t))

	// set_refresh_time(10) while waiting
	tenMinutes := 600
	_, err := h.store.UpdateSettings(context.Background(), domain.SettingsPatch{RefreshIntervalSeconds: &tenMinutes})
	require.NoError(t, err)
	h.clock.Advance(100 * time.Second)
	h.scheduler.Reschedule()

	assert.Equal(t, 500*time.Second, h.clock.nextWait(t), "deadline is cycle end + new interval")

	h.clock.Tick(t)
	assert.Equal(t, 600*time.Second, h.clock.nextWait(t))
}

func TestScheduler_RateLimitSkipsRemainingAndExtendsDelay(t *testing.T) {
	h := newSchedulerHarness(t, SchedulerConfig{MaxConcurrentFetches: 1}, openPR(1), openPR(2), openPR(3))

	limited := &domain.FetchError{Kind: domain.ErrRateLimited, RetryAfter: 15 * time.Minute}
	h.fetcher.EXPECT().FetchState(mock.Anything, openPR(1).Identity(), mock.Anything).
		Return(domain.RemoteState{}, limited).Once()

	require.NoError(t, h.scheduler.Start(context.Background()))
	assert.Equal(t, 15*time.Minute, h.clock.nextWait(t))

	events := h.bus.Events()
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventFailure, events[0].Kind)
	assert.Contains(t, events[0].Message, "acme/widgets#1: rate limited")
	assert.Len(t, h.store.OpenEntries(), 3)
}

func TestScheduler_MissingCredentialReportsOncePerCycle(t *testing.T) {
	h := newSchedulerHarness(t, SchedulerConfig{}, openPR(1), openPR(2))
	require.NoError(t, h.store.SetCredential(context.Background(), ""))

	require.NoError(t, h.scheduler.Start(context.Background()))
	h.clock.nextWait(t)

	events := h.bus.Events()
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventFailure, events[0].Kind)
	assert.Equal(t, "unauthorized: no credential configured", events[0].Message)
	h.fetcher.AssertNotCalled(t, "FetchState", mock.Anything, mock.Anything, mock.Anything)

	h.clock.Tick(t)
	h.clock.nextWait(t)
	assert.Len(t, h.bus.Events(), 2)
}

func TestScheduler_UnauthorizedKeepsPollingByDefault(t *testing.T) {
	h := newSchedulerHarness(t, SchedulerConfig{}, openPR(1), openPR(2))
	h.fetcher.EXPECT().FetchState(mock.Anything, mock.Anything, mock.Anything).
		Return(domain.RemoteState{}, domain.NewFetchError(domain.ErrUnauthorized, nil))

	require.NoError(t, h.scheduler.Start(context.Background()))
	h.clock.nextWait(t)

	events := h.bus.Events()
	require.Len(t, events, 2)
	assert.Equal(t, "acme/widgets#1: unauthorized", events[0].Message)
	assert.Equal(t, "acme/widgets#2: unauthorized", events[1].Message)
	assert.True(t, h.scheduler.IsRunning())
}

func TestScheduler_StopOnUnauthorized(t *testing.T) {
	h := newSchedulerHarness(t, SchedulerConfig{StopOnUnauthorized: true}, openPR(1))
	h.fetcher.EXPECT().FetchState(mock.Anything, mock.Anything, mock.Anything).
		Return(domain.RemoteState{}, domain.NewFetchError(domain.ErrUnauthorized, nil)).Once()

	require.NoError(t, h.scheduler.Start(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, h.scheduler.Wait(ctx))

	assert.False(t, h.scheduler.IsRunning())
	require.Len(t, h.bus.Events(), 1)
	h.clock.noWait(t)
}

func TestScheduler_FailureDoesNotAffectOtherEntries(t *testing.T) {
	h := newSchedulerHarness(t, SchedulerConfig{}, openPR(1), openPR(2))
	h.fetcher.EXPECT().FetchState(mock.Anything, openPR(1).Identity(), mock.Anything).
		Return(domain.RemoteState{}, domain.NewFetchError(domain.ErrNotFound, nil))
	h.fetcher.EXPECT().FetchState(mock.Anything, openPR(2).Identity(), mock.Anything).
		Return(closedRemote(false), nil)

	require.NoError(t, h.scheduler.Start(context.Background()))
	h.clock.nextWait(t)

	events := h.bus.Events()
	require.Len(t, events, 2)
	assert.Equal(t, domain.EventFailure, events[0].Kind)
	assert.Equal(t, 1, events[0].Number)
	assert.Equal(t, domain.EventStateChanged, events[1].Kind)
	assert.Equal(t, 2, events[1].Number)
}

func TestScheduler_RefreshesTitle(t *testing.T) {
	h := newSchedulerHarness(t, SchedulerConfig{}, openPR(1))
	h.fetcher.EXPECT().FetchState(mock.Anything, mock.Anything, mock.Anything).
		Return(domain.RemoteState{State: domain.StateOpen, Title: "Fix widget (v2)"}, nil)

	require.NoError(t, h.scheduler.Start(context.Background()))
	h.clock.nextWait(t)

	pr, _ := h.store.Find(1)
	assert.Equal(t, "Fix widget (v2)", pr.Title)
}

func TestScheduler_StopIsIdempotent(t *testing.T) {
	h := newSchedulerHarness(t, SchedulerConfig{})

	h.scheduler.Stop()
	require.NoError(t, h.scheduler.Start(context.Background()))
	h.clock.nextWait(t)
	h.scheduler.Stop()
	h.scheduler.Stop()

	assert.False(t, h.scheduler.IsRunning())
	assert.Equal(t, uint64(2), h.scheduler.Generation())
}

// gatedSubscriber blocks in its handler until released and records the
// numbers it was handed
type gatedSubscriber struct {
	mu       sync.Mutex
	numbers  []int
	release  chan struct{}
	received chan struct{}
}

func newGatedSubscriber(bus ports.EventSubscriber) *gatedSubscriber {
	g := &gatedSubscriber{
		release:  make(chan struct{}),
		received: make(chan struct{}, 16),
	}
	bus.Subscribe("gated", func(e domain.Event) {
		g.received <- struct{}{}
		<-g.release
		g.mu.Lock()
		defer g.mu.Unlock()
		g.numbers = append(g.numbers, e.Number)
	})
	return g
}

func (g *gatedSubscriber) Numbers() []int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]int(nil), g.numbers...)
}

func TestScheduler_StopKeepsEventsOfAppliedCycle(t *testing.T) {
	bus := events.NewBus()
	t.Cleanup(bus.Close)
	h := newSchedulerHarnessWithBus(t, SchedulerConfig{}, bus, openPR(42), openPR(43))
	h.fetcher.EXPECT().FetchState(mock.Anything, mock.Anything, "ghp_test").
		Return(closedRemote(false), nil).Times(2)
	sub := newGatedSubscriber(bus)

	require.NoError(t, h.scheduler.Start(context.Background()))
	h.clock.nextWait(t)

	// #42 is in the handler, #43 is still queued
	<-sub.received
	h.scheduler.Stop()
	close(sub.release)
	bus.Close()

	assert.Equal(t, []int{42, 43}, sub.Numbers())
	assert.Empty(t, h.store.OpenEntries())
}

func TestScheduler_RestartDiscardsPreviousGenerationOnBus(t *testing.T) {
	bus := events.NewBus()
	t.Cleanup(bus.Close)
	h := newSchedulerHarnessWithBus(t, SchedulerConfig{}, bus, openPR(42))

	var calls atomic.Int32
	entered := make(chan struct{})
	release := make(chan struct{})
	h.fetcher.EXPECT().FetchState(mock.Anything, mock.Anything, mock.Anything).
		RunAndReturn(func(context.Context, domain.PRIdentity, string) (domain.RemoteState, error) {
			if calls.Add(1) == 1 {
				close(entered)
				<-release
				return closedRemote(false), nil
			}
			return openRemote(), nil
		})

	var mu sync.Mutex
	var delivered []domain.Event
	bus.Subscribe("log", func(e domain.Event) {
		mu.Lock()
		defer mu.Unlock()
		delivered = append(delivered, e)
	})

	require.NoError(t, h.scheduler.Start(context.Background()))
	<-entered
	h.scheduler.Stop()
	require.NoError(t, h.scheduler.Start(context.Background()))

	h.clock.nextWait(t)
	close(release)
	h.clock.noWait(t)
	bus.Close()

	mu.Lock()
	defer mu.Unlock()
	assert.Empty(t, delivered)
	assert.Len(t, h.store.OpenEntries(), 1)
}

func TestScheduler_SlowCycleDelaysNextTick(t *testing.T) {
	h := newSchedulerHarness(t, SchedulerConfig{}, openPR(1))

	entered := make(chan struct{})
	release := make(chan struct{})
	h.fetcher.EXPECT().FetchState(mock.Anything, mock.Anything, mock.Anything).
		RunAndReturn(func(context.Context, domain.PRIdentity, string) (domain.RemoteState, error) {
			close(entered)
			<-release
			return openRemote(), nil
		}).Once()

	require.NoError(t, h.scheduler.Start(context.Background()))
	<-entered

	// the cycle outlives two intervals and nothing else is scheduled meanwhile
	h.clock.Advance(12 * time.Minute)
	h.clock.noWait(t)
	h.fetcher.AssertNumberOfCalls(t, "FetchState", 1)

	close(release)
	assert.Equal(t, 5*time.Minute, h.clock.nextWait(t), "next tick counts from the end of the slow cycle")
	h.fetcher.AssertNumberOfCalls(t, "FetchState", 1)
}

func TestScheduler_MergeableStateRaisesAttentionOnChange(t *testing.T) {
	h := newSchedulerHarness(t, SchedulerConfig{}, openPR(1))

	states := []domain.MergeableState{
		domain.MergeableDirty,
		domain.MergeableDirty,
		domain.MergeableUnknown,
		domain.MergeableDirty,
		domain.MergeableClean,
		domain.MergeableBehind,
		domain.MergeableBlocked,
	}
	var calls atomic.Int32
	h.fetcher.EXPECT().FetchState(mock.Anything, mock.Anything, mock.Anything).
		RunAndReturn(func(context.Context, domain.PRIdentity, string) (domain.RemoteState, error) {
			remote := openRemote()
			remote.Mergeable = states[calls.Add(1)-1]
			return remote, nil
		}).Times(len(states))

	require.NoError(t, h.scheduler.Start(context.Background()))
	h.clock.nextWait(t)
	for range states[1:] {
		h.clock.Tick(t)
		h.clock.nextWait(t)
	}

	events := h.bus.Events()
	require.Len(t, events, 2)
	assert.Equal(t, domain.EventNeedsAttention, events[0].Kind)
	assert.Equal(t, "acme/widgets#1 has conflicts", events[0].Message)
	assert.Equal(t, domain.EventNeedsAttention, events[1].Kind)
	assert.Equal(t, "acme/widgets#1 is blocked", events[1].Message)
	assert.NotEqual(t, events[0].CycleID, events[1].CycleID)

	pr, _ := h.store.Find(1)
	assert.Equal(t, domain.MergeableBlocked, pr.Mergeable)
	assert.True(t, pr.IsOpen())
}

func TestScheduler_ClosingPullRequestRaisesNoAttention(t *testing.T) {
	h := newSchedulerHarness(t, SchedulerConfig{}, openPR(1))
	remote := closedRemote(false)
	remote.Mergeable = domain.MergeableDirty
	h.fetcher.EXPECT().FetchState(mock.Anything, mock.Anything, mock.Anything).Return(remote, nil).Once()

	require.NoError(t, h.scheduler.Start(context.Background()))
	h.clock.nextWait(t)

	events := h.bus.Events()
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventStateChanged, events[0].Kind)
}
