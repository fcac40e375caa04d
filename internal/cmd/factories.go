package cmd

import (
	"context"
	"errors"

	adapterbrowser "github.com/renato0307/prmonitor/internal/adapters/browser"
	adaptergithub "github.com/renato0307/prmonitor/internal/adapters/github"
	adapternotify "github.com/renato0307/prmonitor/internal/adapters/notify"
	adapterstorage "github.com/renato0307/prmonitor/internal/adapters/storage"
	"github.com/renato0307/prmonitor/internal/config"
	"github.com/renato0307/prmonitor/internal/events"
	"github.com/renato0307/prmonitor/internal/ports"
	"github.com/renato0307/prmonitor/internal/services"
)

// Container holds all dependencies for the application
type Container struct {
	// Services
	MonitorService      *services.MonitorService
	NotificationService *services.NotificationService
	Scheduler           *services.Scheduler

	// Adapters used directly by commands
	Bus    *events.Bus
	Opener ports.BrowserOpener

	// Internal - for cleanup only
	repo *adapterstorage.SQLiteRepository
}

// NewContainer creates a new Container with all dependencies wired
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	// Create adapters
	repo, err := adapterstorage.NewSQLiteRepositoryForHome(cfg.Home)
	if err != nil {
		return nil, err
	}

	bus := events.NewBus()
	fetcher := adaptergithub.NewClient(cfg.GitHubAPIURL, cfg.FetchTimeout)
	notifier := adapternotify.NewNotifier(!cfg.MuteSound)
	opener := adapterbrowser.NewOpener()

	// Create services
	store, err := services.OpenStateStore(ctx, repo)
	if err != nil {
		bus.Close()
		return nil, errors.Join(err, repo.Close())
	}

	scheduler := services.NewScheduler(store, fetcher, bus, services.SchedulerConfig{
		FetchTimeout:         cfg.FetchTimeout,
		MaxConcurrentFetches: cfg.MaxConcurrentFetches,
		StopOnUnauthorized:   cfg.StopOnUnauthorized,
	})
	monitorService := services.NewMonitorService(store, scheduler, fetcher, bus, cfg.GitHubWebHost)
	notificationService := services.NewNotificationService(store, notifier)

	return &Container{
		Bus:                 bus,
		MonitorService:      monitorService,
		NotificationService: notificationService,
		Opener:              opener,
		Scheduler:           scheduler,
		repo:                repo,
	}, nil
}

// Close stops the scheduler and releases the event bus and the database
func (c *Container) Close() error {
	if c.Scheduler != nil {
		c.Scheduler.Stop()
	}
	if c.Bus != nil {
		c.Bus.Close()
	}
	if c.repo != nil {
		return c.repo.Close()
	}
	return nil
}
