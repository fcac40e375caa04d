package services

import (
	"fmt"
	"sync"

	"github.com/renato0307/prmonitor/internal/domain"
	"github.com/renato0307/prmonitor/internal/logging"
	"github.com/renato0307/prmonitor/internal/ports"
)

// Notification titles
const (
	TitleAttention = "Pull request needs attention"
	TitleClosed    = "Pull request closed"
	TitleError     = "Pull request monitor error"
	TitleMerged    = "Pull request merged"
)

// SettingsReader exposes the current settings
type SettingsReader interface {
	Settings() domain.Settings
}

// NotificationService turns bus events into desktop notifications
type NotificationService struct {
	cycleID  string
	mu       sync.Mutex
	notifier ports.Notifier
	seen     map[string]bool
	settings SettingsReader
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(settings SettingsReader, notifier ports.Notifier) *NotificationService {
	return &NotificationService{
		notifier: notifier,
		seen:     make(map[string]bool),
		settings: settings,
	}
}

// Attach subscribes the service to the bus
func (s *NotificationService) Attach(bus ports.EventSubscriber) (unsubscribe func()) {
	return bus.Subscribe("desktop-notifications", s.HandleEvent)
}

// HandleEvent shows a notification for the event when notifications are enabled.
// A failure message is shown at most once per poll cycle.
func (s *NotificationService) HandleEvent(event domain.Event) {
	if !s.settings.Settings().NotificationsEnabled {
		logging.Logger.Debug("Notifications disabled, skipping", "kind", event.Kind, "number", event.Number)
		return
	}

	var title, body string
	switch event.Kind {
	case domain.EventStateChanged:
		title = TitleClosed
		if event.Merged {
			title = TitleMerged
		}
		body = event.Identity.String()
		if event.Title != "" {
			body = fmt.Sprintf("%s %s", body, event.Title)
		}
	case domain.EventNeedsAttention:
		title = TitleAttention
		body = event.Message
		if event.Title != "" {
			body = fmt.Sprintf("%s: %s", body, event.Title)
		}
	case domain.EventFailure:
		if !s.firstInCycle(event) {
			logging.Logger.Debug("Duplicate failure notification suppressed", "message", event.Message)
			return
		}
		title = TitleError
		body = event.Message
	default:
		logging.Logger.Warn("Unknown event kind", "kind", event.Kind)
		return
	}

	if err := s.notifier.Notify(title, body, event.Kind); err != nil {
		logging.Logger.Warn("Failed to show notification", "title", title, "error", err)
	}
}

func (s *NotificationService) firstInCycle(event domain.Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if event.CycleID != s.cycleID {
		s.cycleID = event.CycleID
		s.seen = make(map[string]bool)
	}
	if s.seen[event.Message] {
		return false
	}
	s.seen[event.Message] = true
	return true
}
