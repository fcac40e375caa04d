package services

import (
	"context"
	"fmt"

	"github.com/renato0307/prmonitor/internal/domain"
	"github.com/renato0307/prmonitor/internal/logging"
	"github.com/renato0307/prmonitor/internal/ports"
)

// MonitorService is the command surface used by the CLI and the HTTP API.
// It validates input, mutates the store and controls the scheduler.
type MonitorService struct {
	bus       ports.EventSubscriber
	fetcher   ports.StateFetcher
	scheduler *Scheduler
	store     *StateStore
	webHost   string
}

// NewMonitorService creates a new MonitorService
func NewMonitorService(
	store *StateStore,
	scheduler *Scheduler,
	fetcher ports.StateFetcher,
	bus ports.EventSubscriber,
	webHost string,
) *MonitorService {
	if webHost == "" {
		webHost = domain.DefaultWebHost
	}
	return &MonitorService{
		bus:       bus,
		fetcher:   fetcher,
		scheduler: scheduler,
		store:     store,
		webHost:   webHost,
	}
}

// AddTracked parses the link, fetches the pull request once and starts
// tracking it. Nothing is stored when any step fails.
func (s *MonitorService) AddTracked(ctx context.Context, rawURL string) ([]domain.TrackedPullRequest, error) {
	logging.Logger.Info("Adding pull request", "url", rawURL)

	id, err := domain.ParsePullRequestURL(rawURL, s.webHost)
	if err != nil {
		return nil, err
	}

	if existing, ok := s.store.Find(id.Number); ok {
		return nil, fmt.Errorf("%w: #%d (%s)", domain.ErrDuplicateIdentity, id.Number, existing.Identity())
	}

	credential, ok := s.store.Credential()
	if !ok {
		return nil, fmt.Errorf("%w: no credential configured", domain.ErrUnauthorized)
	}

	remote, err := s.fetcher.FetchState(ctx, id, credential)
	if err != nil {
		logging.Logger.Warn("Failed to fetch pull request", "pr", id.String(), "error", err)
		return nil, fmt.Errorf("failed to fetch %s: %w", id, err)
	}

	pr := domain.TrackedPullRequest{
		ClosedAt: remote.ClosedAt,
		Merged:   remote.Merged,
		Number:   id.Number,
		Owner:    id.Owner,
		Repo:     id.Repo,
		State:    remote.State,
		Title:    remote.Title,
	}
	if err := s.store.Add(ctx, pr); err != nil {
		return nil, err
	}

	return s.store.ListTracked(), nil
}

// RemoveTracked stops tracking a pull request; unknown numbers are ignored
func (s *MonitorService) RemoveTracked(ctx context.Context, number int) error {
	logging.Logger.Info("Removing pull request", "number", number)
	return s.store.Remove(ctx, number)
}

// ListTracked returns every tracked pull request in insertion order
func (s *MonitorService) ListTracked() []domain.TrackedPullRequest {
	return s.store.ListTracked()
}

// PullRequestURL rebuilds the browsable link of a tracked pull request
func (s *MonitorService) PullRequestURL(number int) (string, error) {
	pr, ok := s.store.Find(number)
	if !ok {
		return "", fmt.Errorf("%w: #%d is not tracked", domain.ErrNotFound, number)
	}
	return pr.Identity().URL(s.webHost), nil
}

// WebHost is the host used to build and accept pull request links
func (s *MonitorService) WebHost() string {
	return s.webHost
}

// GetSettings returns the current settings
func (s *MonitorService) GetSettings() domain.Settings {
	return s.store.Settings()
}

// UpdateSettings applies a partial update and reschedules the pending tick
// when the interval changed
func (s *MonitorService) UpdateSettings(ctx context.Context, patch domain.SettingsPatch) (domain.Settings, error) {
	before := s.store.Settings()

	after, err := s.store.UpdateSettings(ctx, patch)
	if err != nil {
		return after, err
	}

	if after.RefreshIntervalSeconds != before.RefreshIntervalSeconds {
		logging.Logger.Info("Refresh interval changed",
			"from_seconds", before.RefreshIntervalSeconds,
			"to_seconds", after.RefreshIntervalSeconds)
		s.scheduler.Reschedule()
	}
	return after, nil
}

// HasCredential reports whether a credential is stored
func (s *MonitorService) HasCredential() bool {
	_, ok := s.store.Credential()
	return ok
}

// SetCredential replaces the stored credential
func (s *MonitorService) SetCredential(ctx context.Context, value string) error {
	return s.store.SetCredential(ctx, value)
}

// StartTask starts the scheduler; it is a no-op when already running
func (s *MonitorService) StartTask(ctx context.Context) error {
	return s.scheduler.Start(ctx)
}

// StopTask stops the scheduler; it is a no-op when not running
func (s *MonitorService) StopTask() {
	s.scheduler.Stop()
}

// IsRunning reports whether the scheduler is active
func (s *MonitorService) IsRunning() bool {
	return s.scheduler.IsRunning()
}

// GetTheme returns the theme preference
func (s *MonitorService) GetTheme() domain.Theme {
	return s.store.Settings().Theme
}

// SetTheme validates and stores the theme preference
func (s *MonitorService) SetTheme(ctx context.Context, value string) error {
	theme, err := domain.ParseTheme(value)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidSettings, err)
	}
	_, err = s.UpdateSettings(ctx, domain.SettingsPatch{Theme: &theme})
	return err
}

// GetRefreshMinutes returns the polling interval in minutes, rounded up so a
// sub-minute remainder is never hidden
func (s *MonitorService) GetRefreshMinutes() int {
	return (s.store.Settings().RefreshIntervalSeconds + 59) / 60
}

// SetRefreshMinutes stores minutes*60 seconds and applies it to the pending tick
func (s *MonitorService) SetRefreshMinutes(ctx context.Context, minutes int) error {
	if minutes <= 0 {
		return fmt.Errorf("%w: refresh time must be at least one minute, got %d", domain.ErrInvalidSettings, minutes)
	}
	seconds := minutes * 60
	_, err := s.UpdateSettings(ctx, domain.SettingsPatch{RefreshIntervalSeconds: &seconds})
	return err
}

// GetShowNotification reports whether desktop notifications are enabled
func (s *MonitorService) GetShowNotification() bool {
	return s.store.Settings().NotificationsEnabled
}

// SetShowNotification enables or disables desktop notifications
func (s *MonitorService) SetShowNotification(ctx context.Context, enabled bool) error {
	_, err := s.UpdateSettings(ctx, domain.SettingsPatch{NotificationsEnabled: &enabled})
	return err
}

// Subscribe registers an observer of scheduler events
func (s *MonitorService) Subscribe(name string, handler func(domain.Event)) (unsubscribe func()) {
	return s.bus.Subscribe(name, handler)
}
