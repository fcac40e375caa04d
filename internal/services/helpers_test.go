package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/renato0307/prmonitor/internal/domain"
)

// memoryRepo is an in-memory ports.StateRepository
type memoryRepo struct {
	mu       sync.Mutex
	settings domain.Settings
	tracked  []domain.TrackedPullRequest
}

func newMemoryRepo(prs ...domain.TrackedPullRequest) *memoryRepo {
	return &memoryRepo{settings: domain.DefaultSettings(), tracked: prs}
}

func (r *memoryRepo) ListTracked(context.Context) ([]domain.TrackedPullRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.TrackedPullRequest(nil), r.tracked...), nil
}

func (r *memoryRepo) AddTracked(_ context.Context, pr domain.TrackedPullRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tracked = append(r.tracked, pr)
	return nil
}

func (r *memoryRepo) DeleteTracked(_ context.Context, number int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, pr := range r.tracked {
		if pr.Number == number {
			r.tracked = append(r.tracked[:i], r.tracked[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *memoryRepo) MarkClosed(_ context.Context, number int, merged bool, closedAt *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.tracked {
		if r.tracked[i].Number == number {
			r.tracked[i].State = domain.StateClosed
			r.tracked[i].Merged = merged
			r.tracked[i].ClosedAt = closedAt
		}
	}
	return nil
}

func (r *memoryRepo) UpdateTitle(_ context.Context, number int, title string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.tracked {
		if r.tracked[i].Number == number {
			r.tracked[i].Title = title
		}
	}
	return nil
}

func (r *memoryRepo) UpdateMergeable(_ context.Context, number int, state domain.MergeableState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.tracked {
		if r.tracked[i].Number == number {
			r.tracked[i].Mergeable = state
		}
	}
	return nil
}

func (r *memoryRepo) LoadSettings(context.Context) (domain.Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.settings, nil
}

func (r *memoryRepo) SaveSettings(_ context.Context, settings domain.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settings = settings
	return nil
}

func (r *memoryRepo) Close() error { return nil }

// recordingBus is a synchronous ports.EventPublisher
type recordingBus struct {
	mu     sync.Mutex
	events []domain.Event
}

func (b *recordingBus) Publish(events ...domain.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, events...)
}

func (b *recordingBus) Events() []domain.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]domain.Event(nil), b.events...)
}

func (b *recordingBus) Subscribe(_ string, _ func(domain.Event)) func() {
	return func() {}
}

// fakeClock freezes time and hands every timer request to the test
type fakeClock struct {
	fire     chan time.Time
	mu       sync.Mutex
	now      time.Time
	requests chan time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{
		fire:     make(chan time.Time),
		now:      time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		requests: make(chan time.Duration, 16),
	}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *fakeClock) NewTimer(d time.Duration) (<-chan time.Time, func() bool) {
	c.requests <- d
	return c.fire, func() bool { return true }
}

// nextWait returns the delay of the next timer the scheduler arms
func (c *fakeClock) nextWait(t *testing.T) time.Duration {
	t.Helper()
	select {
	case d := <-c.requests:
		return d
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not arm a timer")
		return 0
	}
}

// noWait asserts no timer is armed for a short while
func (c *fakeClock) noWait(t *testing.T) {
	t.Helper()
	select {
	case d := <-c.requests:
		t.Fatalf("unexpected timer armed for %s", d)
	case <-time.After(50 * time.Millisecond):
	}
}

// Tick fires the pending timer
func (c *fakeClock) Tick(t *testing.T) {
	t.Helper()
	select {
	case c.fire <- c.Now():
	case <-time.After(2 * time.Second):
		t.Fatal("no pending timer to fire")
	}
}

func openPR(number int) domain.TrackedPullRequest {
	return domain.TrackedPullRequest{
		AddedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		Number:  number,
		Owner:   "acme",
		Repo:    "widgets",
		State:   domain.StateOpen,
		Title:   "Fix widget",
	}
}

func newTestStore(t *testing.T, repo *memoryRepo) *StateStore {
	t.Helper()
	store, err := OpenStateStore(context.Background(), repo)
	require.NoError(t, err)
	return store
}
