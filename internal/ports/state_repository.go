package ports

import (
	"context"
	"time"

	"github.com/renato0307/prmonitor/internal/domain"
)

// TrackedReader reads tracked pull requests
type TrackedReader interface {
	ListTracked(ctx context.Context) ([]domain.TrackedPullRequest, error)
}

// TrackedWriter creates, deletes and updates tracked pull requests
type TrackedWriter interface {
	AddTracked(ctx context.Context, pr domain.TrackedPullRequest) error
	DeleteTracked(ctx context.Context, number int) error
	MarkClosed(ctx context.Context, number int, merged bool, closedAt *time.Time) error
	UpdateMergeable(ctx context.Context, number int, state domain.MergeableState) error
	UpdateTitle(ctx context.Context, number int, title string) error
}

// SettingsStore persists user settings, including the credential
type SettingsStore interface {
	LoadSettings(ctx context.Context) (domain.Settings, error)
	SaveSettings(ctx context.Context, settings domain.Settings) error
}

// StateRepository is the composite interface
type StateRepository interface {
	TrackedReader
	TrackedWriter
	SettingsStore
	Close() error
}
