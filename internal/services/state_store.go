package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/renato0307/prmonitor/internal/domain"
	"github.com/renato0307/prmonitor/internal/logging"
	"github.com/renato0307/prmonitor/internal/ports"
)

// StateStore owns the tracked pull requests and the user settings.
// Every mutation is written to the repository first and applied to memory
// only when persistence succeeded, all under one lock.
type StateStore struct {
	mu       sync.Mutex
	repo     ports.StateRepository
	settings domain.Settings
	tracked  []domain.TrackedPullRequest
}

// OpenStateStore loads the persisted state once
func OpenStateStore(ctx context.Context, repo ports.StateRepository) (*StateStore, error) {
	tracked, err := repo.ListTracked(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tracked pull requests: %w", err)
	}

	settings, err := repo.LoadSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	logging.Logger.Debug("State store loaded",
		"tracked", len(tracked),
		"interval_seconds", settings.RefreshIntervalSeconds,
		"has_credential", settings.HasCredential())

	return &StateStore{
		repo:     repo,
		settings: settings,
		tracked:  tracked,
	}, nil
}

// ListTracked returns a copy of every entry in insertion order
func (s *StateStore) ListTracked() []domain.TrackedPullRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.TrackedPullRequest, len(s.tracked))
	copy(out, s.tracked)
	return out
}

// OpenEntries returns a snapshot of the entries that still need polling
func (s *StateStore) OpenEntries() []domain.TrackedPullRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.TrackedPullRequest
	for _, pr := range s.tracked {
		if pr.IsOpen() {
			out = append(out, pr)
		}
	}
	return out
}

// Find returns the entry with the given number
func (s *StateStore) Find(number int) (domain.TrackedPullRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(number); i >= 0 {
		return s.tracked[i], true
	}
	return domain.TrackedPullRequest{}, false
}

// Contains reports whether number is already tracked
func (s *StateStore) Contains(number int) bool {
	_, ok := s.Find(number)
	return ok
}

// Add inserts a new entry. The number must not be tracked yet, under any repository.
func (s *StateStore) Add(ctx context.Context, pr domain.TrackedPullRequest) error {
	if pr.Number <= 0 {
		return fmt.Errorf("%w: number must be positive", domain.ErrInvalidURL)
	}
	if pr.State == "" {
		pr.State = domain.StateOpen
	}
	if pr.AddedAt.IsZero() {
		pr.AddedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(pr.Number); i >= 0 {
		return fmt.Errorf("%w: #%d (%s)", domain.ErrDuplicateIdentity, pr.Number, s.tracked[i].Identity())
	}

	if err := s.repo.AddTracked(ctx, pr); err != nil {
		return fmt.Errorf("failed to save pull request: %w", err)
	}
	s.tracked = append(s.tracked, pr)

	logging.Logger.Info("Pull request tracked", "pr", pr.Identity().String(), "state", pr.State)
	return nil
}

// Remove deletes the entry with the given number. Removing an absent number is a no-op.
func (s *StateStore) Remove(ctx context.Context, number int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(number)
	if i < 0 {
		logging.Logger.Debug("Remove of untracked number ignored", "number", number)
		return nil
	}

	if err := s.repo.DeleteTracked(ctx, number); err != nil {
		return fmt.Errorf("failed to delete pull request: %w", err)
	}
	s.tracked = append(s.tracked[:i], s.tracked[i+1:]...)

	logging.Logger.Info("Pull request untracked", "number", number)
	return nil
}

// SetState records a state for the entry. Only open -> closed is applied;
// changed is false when the entry is absent or already closed.
func (s *StateStore) SetState(
	ctx context.Context,
	number int,
	state domain.PRState,
	merged bool,
	closedAt *time.Time,
) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(number)
	if i < 0 {
		return false, nil
	}
	if domain.Decide(s.tracked[i].State, state) != domain.TransitionToClosed {
		return false, nil
	}

	if closedAt == nil {
		now := time.Now().UTC()
		closedAt = &now
	}
	if err := s.repo.MarkClosed(ctx, number, merged, closedAt); err != nil {
		return false, fmt.Errorf("failed to mark #%d closed: %w", number, err)
	}

	s.tracked[i].State = domain.StateClosed
	s.tracked[i].Merged = merged
	s.tracked[i].ClosedAt = closedAt
	return true, nil
}

// SetMergeable records the mergeable state of an open entry. changed is
// false when the entry is absent, closed or already in that state.
func (s *StateStore) SetMergeable(ctx context.Context, number int, state domain.MergeableState) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(number)
	if i < 0 || !s.tracked[i].IsOpen() || s.tracked[i].Mergeable == state {
		return false, nil
	}

	if err := s.repo.UpdateMergeable(ctx, number, state); err != nil {
		return false, fmt.Errorf("failed to update mergeable state of #%d: %w", number, err)
	}
	s.tracked[i].Mergeable = state
	return true, nil
}

// UpdateTitle refreshes the title of an entry; absent entries are ignored
func (s *StateStore) UpdateTitle(ctx context.Context, number int, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(number)
	if i < 0 || s.tracked[i].Title == title {
		return nil
	}

	if err := s.repo.UpdateTitle(ctx, number, title); err != nil {
		return fmt.Errorf("failed to update title of #%d: %w", number, err)
	}
	s.tracked[i].Title = title
	return nil
}

// Settings returns the current settings
func (s *StateStore) Settings() domain.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// RefreshInterval returns the polling interval
func (s *StateStore) RefreshInterval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Duration(s.settings.RefreshIntervalSeconds) * time.Second
}

// UpdateSettings validates and persists a partial update
func (s *StateStore) UpdateSettings(ctx context.Context, patch domain.SettingsPatch) (domain.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := patch.Apply(s.settings)
	if err := next.Validate(); err != nil {
		return s.settings, fmt.Errorf("%w: %v", domain.ErrInvalidSettings, err)
	}

	if err := s.repo.SaveSettings(ctx, next); err != nil {
		return s.settings, fmt.Errorf("failed to save settings: %w", err)
	}
	s.settings = next
	return next, nil
}

// Credential returns the stored credential, if any
func (s *StateStore) Credential() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings.Credential, s.settings.HasCredential()
}

// SetCredential replaces the credential; an empty value clears it
func (s *StateStore) SetCredential(ctx context.Context, value string) error {
	value = strings.TrimSpace(value)
	if _, err := s.UpdateSettings(ctx, domain.SettingsPatch{Credential: &value}); err != nil {
		return err
	}
	logging.Logger.Info("Credential updated", "has_credential", value != "")
	return nil
}

// indexOf must be called with s.mu held
func (s *StateStore) indexOf(number int) int {
	for i, pr := range s.tracked {
		if pr.Number == number {
			return i
		}
	}
	return -1
}
