package ports

import "github.com/renato0307/prmonitor/internal/domain"

// Notifier shows desktop notifications
type Notifier interface {
	// Notify shows a notification and plays the sound matching the event kind
	Notify(title, body string, kind domain.EventKind) error
}
